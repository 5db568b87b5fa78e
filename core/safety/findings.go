package safety

import (
	"fmt"

	"guidesafe-core/offtarget"
)

// CriticalFindings lists the hits a reviewer must look at: non-target hits
// in coding regions, and essential entities hit within the essential
// mismatch tolerance. Hits on target itself are not findings. A hit can
// produce both lines.
func CriticalFindings(hits []offtarget.Hit, target string) []string {
	var out []string
	for _, h := range hits {
		if h.Entity == target {
			continue
		}
		if h.Region.Coding() {
			out = append(out, fmt.Sprintf("%s hit in %s at %d (%d mismatches)", h.Region, h.Entity, h.Position, h.Mismatches))
		}
		if h.Essential && h.Mismatches <= essentialMaxMismatches {
			out = append(out, fmt.Sprintf("essential entity %s hit at %d with %d mismatches", h.Entity, h.Position, h.Mismatches))
		}
	}
	return out
}
