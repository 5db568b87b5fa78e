// Package rank orders design candidates with an explicit rule set. The
// order is advisory: callers that only need the metrics can ignore it.
package rank

import (
	"math"
	"sort"

	"guidesafe-core/design"
	"guidesafe-core/manufacture"
)

// Rule compares two candidates: negative when a should come first,
// positive when b should, zero when the rule cannot decide.
type Rule struct {
	Name    string
	Compare func(a, b design.Candidate) int
}

const (
	// GoldenZone is the cut distance within which binding strength dominates.
	GoldenZone = 8
	// DistanceSlack is the cut-distance gap the distance rule tolerates.
	DistanceSlack = 2
	// MaxHairpin excludes candidates above this hairpin count.
	MaxHairpin = 3
)

// Default is the standard rule set, applied in order.
func Default() []Rule {
	return []Rule{
		{"exclude", Exclude},
		{"golden-zone", GoldenZoneBinding},
		{"same-ending", SameEnding},
		{"distance", DistanceGap},
		{"hairpin", Hairpin},
		{"native-g", NativeG},
		{"gc", GCBalance},
		{"distance", Distance},
	}
}

// Sort orders cands in place by rules. It is stable.
func Sort(cands []design.Candidate, rules []Rule) {
	sort.SliceStable(cands, func(i, j int) bool {
		return Compare(cands[i], cands[j], rules) < 0
	})
}

// Compare returns the first non-zero rule result.
func Compare(a, b design.Candidate, rules []Rule) int {
	for _, r := range rules {
		if c := r.Compare(a, b); c != 0 {
			return c
		}
	}
	return 0
}

// Decide returns the name of the rule that separated a and b, or "".
func Decide(a, b design.Candidate, rules []Rule) string {
	for _, r := range rules {
		if r.Compare(a, b) != 0 {
			return r.Name
		}
	}
	return ""
}

// Excluded reports whether c cannot be used.
func Excluded(c design.Candidate) bool {
	return c.Safety.HasTerminator || len(c.Templates.Templates) == 0 || c.Safety.HairpinCount > MaxHairpin
}

func Exclude(a, b design.Candidate) int { return boolFirst(!Excluded(a), !Excluded(b)) }

// GoldenZoneBinding prefers a non-T 3' base when both cuts are close.
func GoldenZoneBinding(a, b design.Candidate) int {
	if a.CutDistance > GoldenZone || b.CutDistance > GoldenZone {
		return 0
	}
	return boolFirst(a.Binding != manufacture.BindingWeak, b.Binding != manufacture.BindingWeak)
}

// SameEnding prefers the closer cut outright when both spacers end in the
// same base. The slack of DistanceGap does not apply.
func SameEnding(a, b design.Candidate) int {
	if a.Safety.LastBase == "" || a.Safety.LastBase != b.Safety.LastBase {
		return 0
	}
	return a.CutDistance - b.CutDistance
}

// DistanceGap prefers the closer cut only when the gap exceeds DistanceSlack.
func DistanceGap(a, b design.Candidate) int {
	if d := a.CutDistance - b.CutDistance; d > DistanceSlack || d < -DistanceSlack {
		return d
	}
	return 0
}

func Hairpin(a, b design.Candidate) int { return a.Safety.HairpinCount - b.Safety.HairpinCount }

// NativeG prefers spacers that already start with G.
func NativeG(a, b design.Candidate) int { return boolFirst(a.Safety.StartsWithG, b.Safety.StartsWithG) }

// GCBalance prefers GC content closer to 50%.
func GCBalance(a, b design.Candidate) int {
	da := math.Abs(a.Safety.GCContent - 50)
	db := math.Abs(b.Safety.GCContent - 50)
	switch {
	case da < db:
		return -1
	case da > db:
		return 1
	}
	return 0
}

func Distance(a, b design.Candidate) int { return a.CutDistance - b.CutDistance }

// boolFirst orders true before false.
func boolFirst(a, b bool) int {
	switch {
	case a && !b:
		return -1
	case !a && b:
		return 1
	}
	return 0
}
