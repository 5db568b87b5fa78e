package safety

import "guidesafe-core/manufacture"

type StructuralRisk string

const (
	StructLow      StructuralRisk = "LOW"
	StructModerate StructuralRisk = "MODERATE"
	StructHigh     StructuralRisk = "HIGH"
)

// GC bounds outside which a spacer is considered structurally risky.
const (
	GCLow  = 30.0
	GCHigh = 70.0
)

func AnalyzeStructure(s manufacture.Safety) StructuralRisk {
	switch {
	case s.HasTerminator || s.HairpinCount > 3:
		return StructHigh
	case s.HairpinCount >= 2 || s.GCContent < GCLow || s.GCContent > GCHigh:
		return StructModerate
	default:
		return StructLow
	}
}
