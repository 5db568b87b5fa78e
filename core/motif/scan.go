// core/motif/scan.go
package motif

import (
	"sort"

	"guidesafe-core/seqops"
)

// SpacerLen is the guide length taken beside each motif.
const SpacerLen = 20

// Strand of a motif occurrence.
type Strand string

const (
	Forward Strand = "+"
	Reverse Strand = "-"
)

// Candidate is one motif occurrence near the target with its derived cut site
// and spacer (5'→3' on its own strand).
type Candidate struct {
	Strand      Strand `json:"strand"`
	Motif       string `json:"motif"`
	MotifStart  int    `json:"motif_start"`
	CutSite     int    `json:"cut_site"`
	CutDistance int    `json:"cut_distance"`
	Spacer      string `json:"spacer"`
}

// Options bounds the scan. Fields are taken literally, so a zero Options
// finds nothing; start from DefaultOptions.
type Options struct {
	Window      int // search [target-Window, target+Window)
	MaxDistance int // keep cut sites within this distance of the target
}

// DefaultOptions returns the standard NGG scan bounds.
func DefaultOptions() Options { return Options{Window: 20, MaxDistance: 15} }

// Scan finds every forward NGG and reverse CCN occurrence (overlapping)
// inside the window around target and returns those whose cut site lies
// within MaxDistance, stably sorted by cut distance. On ties forward
// candidates precede reverse ones, each group in position order.
func Scan(seq string, target int, opt Options) []Candidate {
	if opt.Window <= 0 || opt.MaxDistance < 0 {
		return nil
	}
	lo := target - opt.Window
	if lo < 0 {
		lo = 0
	}
	hi := target + opt.Window
	if hi > len(seq) {
		hi = len(seq)
	}
	if hi-lo < 3 {
		return nil
	}

	var out []Candidate
	keep := func(c Candidate) {
		c.CutDistance = abs(c.CutSite - target)
		if c.CutDistance <= opt.MaxDistance {
			out = append(out, c)
		}
	}

	// + strand: [ACGT]GG
	for p := lo; p+3 <= hi; p++ {
		if !isACGT(seq[p]) || seq[p+1] != 'G' || seq[p+2] != 'G' {
			continue
		}
		keep(Candidate{
			Strand:     Forward,
			Motif:      seq[p : p+3],
			MotifStart: p,
			CutSite:    p - 3,
			Spacer:     clip(seq, p-SpacerLen, p),
		})
	}

	// - strand: CC[ACGT]
	for p := lo; p+3 <= hi; p++ {
		if seq[p] != 'C' || seq[p+1] != 'C' || !isACGT(seq[p+2]) {
			continue
		}
		keep(Candidate{
			Strand:     Reverse,
			Motif:      seq[p : p+3],
			MotifStart: p,
			CutSite:    p + 6,
			Spacer:     seqops.RevComp(clip(seq, p+3, p+3+SpacerLen)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].CutDistance < out[j].CutDistance })
	return out
}

// clip returns seq[lo:hi] with both bounds clamped to the sequence.
func clip(seq string, lo, hi int) string {
	if lo < 0 {
		lo = 0
	}
	if hi > len(seq) {
		hi = len(seq)
	}
	if lo >= hi {
		return ""
	}
	return seq[lo:hi]
}

func isACGT(b byte) bool { return b == 'A' || b == 'C' || b == 'G' || b == 'T' }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
