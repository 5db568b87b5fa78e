// Package seqops holds the primitive nucleotide operations every other core
// package builds on. All functions are pure.
package seqops

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/bebop/poly/checks"
)

var (
	// ErrEmptySequence is returned by metrics that need at least one symbol.
	ErrEmptySequence = errors.New("empty sequence")
	// ErrInvalidBase is returned by Validate for symbols outside A/C/G/T/N.
	ErrInvalidBase = errors.New("invalid base")
)

// Normalize removes whitespace and quotes and uppercases bases.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsSpace(r) || r == '\'' || r == '"' {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Validate returns the normalized sequence or an error if any symbol is not
// one of A, C, G, T, N.
func Validate(raw string) (string, error) {
	s := Normalize(raw)
	if s == "" {
		return "", ErrEmptySequence
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'A', 'C', 'G', 'T', 'N':
		default:
			return "", fmt.Errorf("%w %q at %d; allowed: A C G T N", ErrInvalidBase, s[i], i+1)
		}
	}
	return s, nil
}

// GCContent returns the G+C share of seq as a percentage in [0,100].
func GCContent(seq string) (float64, error) {
	if len(seq) == 0 {
		return 0, ErrEmptySequence
	}
	return checks.GcContent(seq) * 100, nil
}

// HairpinScore counts consecutive complementary pairs walking inward from
// the outermost pair (seq[0], seq[len-1]). It stops at the first
// non-complementary pair or after maxPairs pairs. maxPairs <= 0 means len/2.
func HairpinScore(seq string, maxPairs int) int {
	n := len(seq)
	limit := n / 2
	if maxPairs > 0 && maxPairs < limit {
		limit = maxPairs
	}
	count := 0
	for i := 0; i < limit; i++ {
		if !isWC(seq[i], seq[n-1-i]) {
			break
		}
		count++
	}
	return count
}

func isWC(p, t byte) bool {
	switch upper(p) {
	case 'A':
		return upper(t) == 'T'
	case 'T':
		return upper(t) == 'A'
	case 'C':
		return upper(t) == 'G'
	case 'G':
		return upper(t) == 'C'
	default:
		return false
	}
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
