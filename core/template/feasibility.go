// core/template/feasibility.go
package template

import "strings"

const (
	// MinContext is the sequence required on each side of the cut site.
	MinContext = 40
	// UnshieldableMotif is the TGG codon (tryptophan); any shield edit changes the protein.
	UnshieldableMotif = "TGG"
)

// Feasibility explains why a repair template can or cannot be built.
type Feasibility struct {
	Unshieldable        bool `json:"unshieldable"`
	InsufficientContext bool `json:"insufficient_context"`
}

// OK reports whether template generation may proceed.
func (f Feasibility) OK() bool { return !f.Unshieldable && !f.InsufficientContext }

// Reason describes the failed checks, or "" when OK.
func (f Feasibility) Reason() string {
	var r []string
	if f.Unshieldable {
		r = append(r, "motif is TGG (tryptophan) and cannot be shielded silently")
	}
	if f.InsufficientContext {
		r = append(r, "less than 40 nt of context on one side of the cut site")
	}
	return strings.Join(r, "; ")
}

// CheckFeasibility evaluates the motif at motifStart and the context
// available around its cut site (motifStart-3).
func CheckFeasibility(seq string, motifStart int) Feasibility {
	var f Feasibility
	if motifStart >= 0 && motifStart+3 <= len(seq) {
		f.Unshieldable = strings.ToUpper(seq[motifStart:motifStart+3]) == UnshieldableMotif
	}
	cut := motifStart - 3
	f.InsufficientContext = cut < MinContext || len(seq)-cut < MinContext
	return f
}
