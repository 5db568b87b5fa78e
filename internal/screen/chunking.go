// internal/screen/chunking.go
package screen

import "fmt"

// ValidateChunking decides whether database chunking is usable for a spacer
// of the given length and returns (chunkSize, overlap, warnings).
//   - chunkSize <= 0 → no chunking
//   - chunkSize <= overlap → chunking disabled with a warning
//
// The overlap is spacerLen-1 so every window lies wholly inside some chunk.
func ValidateChunking(chunkSize, spacerLen int) (int, int, []string) {
	if chunkSize <= 0 {
		return 0, 0, nil
	}
	ov := spacerLen - 1
	if ov < 0 {
		ov = 0
	}
	if chunkSize <= ov {
		return 0, 0, []string{fmt.Sprintf("--chunk-size %d must exceed the spacer length - 1 (%d); disabling chunking", chunkSize, ov)}
	}
	return chunkSize, ov, nil
}
