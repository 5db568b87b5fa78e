package seqops

// Edit sets the symbol at Offset to Base.
type Edit struct {
	Offset int
	Base   byte
}

// ApplyEdits returns a copy of seq with edits applied in order, leaving seq
// untouched. applied[i] reports whether edits[i] fell inside seq; edits
// outside are skipped.
func ApplyEdits(seq string, edits []Edit) (string, []bool) {
	buf := []byte(seq)
	applied := make([]bool, len(edits))
	for i, e := range edits {
		if e.Offset < 0 || e.Offset >= len(buf) {
			continue
		}
		buf[e.Offset] = e.Base
		applied[i] = true
	}
	return string(buf), applied
}
