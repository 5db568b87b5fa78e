// Package design assembles per-candidate metrics for a target mutation:
// motif scan, manufacturability, expression patch, and repair templates.
package design

import (
	"errors"
	"fmt"

	"guidesafe-core/manufacture"
	"guidesafe-core/motif"
	"guidesafe-core/safety"
	"guidesafe-core/seqops"
	"guidesafe-core/template"
)

// ErrTargetOutOfRange is returned when the mutation index is not inside the sequence.
var ErrTargetOutOfRange = errors.New("target index out of range")

// Candidate is one motif with everything needed to choose between guides.
type Candidate struct {
	motif.Candidate
	Safety     manufacture.Safety          `json:"safety"`
	Patch      manufacture.Patch           `json:"patch"`
	Binding    manufacture.BindingStrength `json:"binding"`
	Structural safety.StructuralRisk       `json:"structural_risk"`
	Templates  template.Result             `json:"templates"`
	Truncated  bool                        `json:"truncated,omitempty"` // spacer shorter than SpacerLen
}

// Report is the full analysis of one target.
type Report struct {
	Length      int         `json:"length"`
	Target      int         `json:"target"`
	Replacement string      `json:"replacement"`
	Candidates  []Candidate `json:"candidates"`
}

// Constructible reports whether any candidate has repair templates. Spacer
// quality does not enter into it; rank.Excluded applies that filter.
func (r Report) Constructible() bool {
	for _, c := range r.Candidates {
		if len(c.Templates.Templates) > 0 {
			return true
		}
	}
	return false
}

// Analyze validates seq, scans around target, and evaluates each candidate.
// Candidates keep the scan order (by cut distance).
func Analyze(seq string, target int, replacement byte, opts motif.Options) (Report, error) {
	s, err := seqops.Validate(seq)
	if err != nil {
		return Report{}, err
	}
	if target < 0 || target >= len(s) {
		return Report{}, fmt.Errorf("%w: %d not in [0,%d)", ErrTargetOutOfRange, target, len(s))
	}
	rep := Report{Length: len(s), Target: target, Replacement: string(replacement), Candidates: []Candidate{}}
	for _, mc := range motif.Scan(s, target, opts) {
		c := Candidate{Candidate: mc, Truncated: len(mc.Spacer) < motif.SpacerLen}
		if mc.Spacer != "" {
			if c.Safety, err = manufacture.Evaluate(mc.Spacer); err != nil {
				return Report{}, err
			}
			c.Patch = manufacture.PatchForExpression(mc.Spacer)
			c.Binding = manufacture.Binding(c.Safety.LastBase)
			c.Structural = safety.AnalyzeStructure(c.Safety)
		}
		if c.Templates, err = template.Plan(s, target, mc.MotifStart, replacement); err != nil {
			return Report{}, err
		}
		rep.Candidates = append(rep.Candidates, c)
	}
	return rep, nil
}
