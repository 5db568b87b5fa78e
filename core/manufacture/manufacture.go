// Package manufacture checks whether a spacer can be produced and expressed
// from a Pol III promoter.
package manufacture

import (
	"strings"

	"guidesafe-core/seqops"
)

const (
	// Terminator is the poly-T run that ends Pol III transcription early.
	Terminator = "TTTT"
	// HairpinCap bounds the end-pairing walk on short spacers.
	HairpinCap = 6
)

// Safety is derived purely from a spacer.
type Safety struct {
	GCContent     float64 `json:"gc_content"`
	HasTerminator bool    `json:"has_terminator"`
	HairpinCount  int     `json:"hairpin_count"`
	StartsWithG   bool    `json:"starts_with_g"`
	LastBase      string  `json:"last_base"`
}

// Evaluate computes the manufacturability metrics of spacer.
func Evaluate(spacer string) (Safety, error) {
	s := strings.ToUpper(spacer)
	gc, err := seqops.GCContent(s)
	if err != nil {
		return Safety{}, err
	}
	return Safety{
		GCContent:     gc,
		HasTerminator: strings.Contains(s, Terminator),
		HairpinCount:  seqops.HairpinScore(s, HairpinCap),
		StartsWithG:   s[0] == 'G',
		LastBase:      s[len(s)-1:],
	}, nil
}

// Patch is the result of PatchForExpression.
type Patch struct {
	Original string `json:"original"`
	Final    string `json:"final"`
	Modified bool   `json:"modified"`
	Note     string `json:"note,omitempty"`
}

// PatchForExpression prepends a G when the spacer does not already start
// with one, as the U6 promoter initiates transcription on G.
func PatchForExpression(spacer string) Patch {
	s := strings.ToUpper(spacer)
	if strings.HasPrefix(s, "G") {
		return Patch{Original: s, Final: s}
	}
	return Patch{Original: s, Final: "G" + s, Modified: true, Note: "prepended G for U6 expression"}
}

// BindingStrength classifies the spacer's 3' base.
type BindingStrength string

const (
	BindingStrong BindingStrength = "STRONG" // G or C
	BindingMedium BindingStrength = "MEDIUM" // A
	BindingWeak   BindingStrength = "WEAK"   // T
)

// Binding maps the last spacer base to its binding strength. Anything that
// is not T counts as at least medium.
func Binding(last string) BindingStrength {
	switch strings.ToUpper(last) {
	case "G", "C":
		return BindingStrong
	case "T":
		return BindingWeak
	default:
		return BindingMedium
	}
}
