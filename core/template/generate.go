// core/template/generate.go
package template

import (
	"errors"
	"fmt"
	"sort"

	"guidesafe-core/seqops"
)

const (
	WindowLen = 120
	MaxShift  = 20
	Keep      = 3
	// ShieldBase replaces the motif's terminal G.
	ShieldBase = 'A'
)

// ErrInvalidReplacement is returned when the correction is not one of A/C/G/T.
var ErrInvalidReplacement = errors.New("replacement must be one of A, C, G, T")

// Candidate is one repair-template window with both edits attempted.
type Candidate struct {
	Sequence          string `json:"sequence"`
	Start             int    `json:"start"` // absolute offset of Sequence[0]
	LeftArm           int    `json:"left_arm_length"`
	RightArm          int    `json:"right_arm_length"`
	Shift             int    `json:"shift"`
	Clipped           bool   `json:"clipped,omitempty"`
	HairpinScore      int    `json:"hairpin_score"`
	CorrectionApplied bool   `json:"correction_applied"`
	ShieldApplied     bool   `json:"shield_applied"`
}

// Result pairs the feasibility verdict with the ranked templates; Templates
// is empty whenever Feasibility is not OK.
type Result struct {
	Feasibility Feasibility `json:"feasibility"`
	Templates   []Candidate `json:"templates"`
}

// Plan checks feasibility and, when it passes, generates templates.
func Plan(seq string, correction, motifStart int, replacement byte) (Result, error) {
	f := CheckFeasibility(seq, motifStart)
	if !f.OK() {
		if err := checkReplacement(replacement); err != nil {
			return Result{}, err
		}
		return Result{Feasibility: f, Templates: []Candidate{}}, nil
	}
	ts, err := Generate(seq, correction, motifStart, replacement)
	if err != nil {
		return Result{}, err
	}
	return Result{Feasibility: f, Templates: ts}, nil
}

// Generate slides a 120-nt window across the cut site (motifStart-3) with
// arm shifts in [-20,20], applies the correction and the shield edit, and
// returns the best three by (hairpin score, |shift|). Windows are clipped to
// the sequence bounds; LeftArm and RightArm are the arms actually present
// and Clipped marks windows shorter than WindowLen.
func Generate(seq string, correction, motifStart int, replacement byte) ([]Candidate, error) {
	if err := checkReplacement(replacement); err != nil {
		return nil, err
	}
	cut := motifStart - 3
	half := WindowLen / 2

	cands := make([]Candidate, 0, 2*MaxShift+1)
	for shift := -MaxShift; shift <= MaxShift; shift++ {
		start, end := cut-(half+shift), cut+(half-shift)
		clipped := start < 0 || end > len(seq)
		if start < 0 {
			start = 0
		}
		if end > len(seq) {
			end = len(seq)
		}
		if start >= end {
			continue
		}
		window, applied := seqops.ApplyEdits(seq[start:end], []seqops.Edit{
			{Offset: correction - start, Base: upper(replacement)},
			{Offset: motifStart + 2 - start, Base: ShieldBase},
		})
		cands = append(cands, Candidate{
			Sequence:          window,
			Start:             start,
			LeftArm:           cut - start,
			RightArm:          end - cut,
			Shift:             shift,
			Clipped:           clipped,
			HairpinScore:      seqops.HairpinScore(window, 0),
			CorrectionApplied: applied[0],
			ShieldApplied:     applied[1],
		})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].HairpinScore != cands[j].HairpinScore {
			return cands[i].HairpinScore < cands[j].HairpinScore
		}
		return abs(cands[i].Shift) < abs(cands[j].Shift)
	})
	if len(cands) > Keep {
		cands = cands[:Keep]
	}
	return cands, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func checkReplacement(b byte) error {
	switch upper(b) {
	case 'A', 'C', 'G', 'T':
		return nil
	}
	return fmt.Errorf("%w: got %q", ErrInvalidReplacement, b)
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
