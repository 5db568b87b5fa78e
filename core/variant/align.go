// Package variant compares a patient sequence against a reference.
package variant

import "strings"

// Variant is a single-base difference at Index.
type Variant struct {
	Index int    `json:"index"`
	Ref   string `json:"ref"`
	Alt   string `json:"alt"`
}

// Align compares reference and patient position by position over their
// common prefix, case-insensitively. Length differences past the shorter
// sequence are not reported.
func Align(reference, patient string) []Variant {
	ref := strings.ToUpper(reference)
	pat := strings.ToUpper(patient)
	n := len(ref)
	if len(pat) < n {
		n = len(pat)
	}
	var out []Variant
	for i := 0; i < n; i++ {
		if ref[i] != pat[i] {
			out = append(out, Variant{Index: i, Ref: ref[i : i+1], Alt: pat[i : i+1]})
		}
	}
	return out
}

// LengthDelta is len(patient)-len(reference); non-zero means Align saw
// only a prefix.
func LengthDelta(reference, patient string) int { return len(patient) - len(reference) }
