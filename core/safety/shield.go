package safety

import (
	"guidesafe-core/motif"
	"guidesafe-core/template"
)

type ShieldStatus string

const (
	Unshielded ShieldStatus = "UNSHIELDED"
	Verified   ShieldStatus = "VERIFIED"
	Unclear    ShieldStatus = "UNCLEAR"
)

// VerifyShield inspects the 3-nt motif window of c inside tpl. A motif that
// still matches its strand pattern (NGG / CCN) is UNSHIELDED. A terminal
// GG→GA (+) or leading CC→TC (-) style disruption is VERIFIED. Anything
// else, including a window outside the template, is UNCLEAR.
func VerifyShield(tpl template.Candidate, c motif.Candidate) ShieldStatus {
	rel := c.MotifStart - tpl.Start
	if rel < 0 || rel+3 > len(tpl.Sequence) {
		return Unclear
	}
	w := upper3(tpl.Sequence[rel : rel+3])
	switch c.Strand {
	case motif.Forward:
		if isACGT(w[0]) && w[1] == 'G' && w[2] == 'G' {
			return Unshielded
		}
		if isACGT(w[0]) && w[1] == 'G' && isACGT(w[2]) {
			return Verified
		}
	case motif.Reverse:
		if w[0] == 'C' && w[1] == 'C' && isACGT(w[2]) {
			return Unshielded
		}
		if isACGT(w[0]) && w[1] == 'C' && isACGT(w[2]) {
			return Verified
		}
	}
	return Unclear
}

func isACGT(b byte) bool { return b == 'A' || b == 'C' || b == 'G' || b == 'T' }

func upper3(s string) [3]byte {
	var w [3]byte
	for i := 0; i < 3; i++ {
		b := s[i]
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		w[i] = b
	}
	return w
}
