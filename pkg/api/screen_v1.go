// pkg/api/screen_v1.go
package api

// HitV1 is one off-target site in database coordinates.
type HitV1 struct {
	SourceFile  string `json:"source_file,omitempty"`
	SequenceID  string `json:"sequence_id"`
	Position    int    `json:"position"`
	Entity      string `json:"entity"`
	Region      string `json:"region"`
	Mismatches  int    `json:"mismatches"`
	MismatchIdx []int  `json:"mismatch_idx,omitempty"`
	Matched     string `json:"matched"`
	Essential   bool   `json:"essential"`

	Essentiality *EssentialityV1 `json:"essentiality,omitempty"`
}

// EssentialityV1 is the registry record of a hit's entity. It is present
// only when a registry was loaded.
type EssentialityV1 struct {
	Function string `json:"function"`
	Risk     string `json:"risk"`
	Category string `json:"category"`
}

// VerdictV1 is the final safety decision.
type VerdictV1 struct {
	Score          int      `json:"score"`
	RiskLevel      string   `json:"risk_level"`
	Recommendation string   `json:"recommendation"` // APPROVE | WARNING | REJECT
	Issues         []string `json:"issues"`
	Shield         string   `json:"shield"`
	Structural     string   `json:"structural_risk"`
}

// ScreenReportV1 is the output of `guidesafe screen`.
type ScreenReportV1 struct {
	RunID        string    `json:"run_id"`
	Spacer       string    `json:"spacer"`
	TargetEntity string    `json:"target_entity"`
	Hits         []HitV1   `json:"hits"`
	CodingHits   int       `json:"coding_hits"`
	Verdict      VerdictV1 `json:"verdict"`

	CriticalFindings []string `json:"critical_findings,omitempty"`
}

// VariantV1 is one reference/patient difference.
type VariantV1 struct {
	Index int    `json:"index"`
	Ref   string `json:"ref"`
	Alt   string `json:"alt"`
	Site  string `json:"site,omitempty"` // SPLICE_SITE | EXON | INTRON
}

// VariantReportV1 is the output of `guidesafe variants`.
type VariantReportV1 struct {
	RunID       string      `json:"run_id"`
	Reference   string      `json:"reference"`
	Patient     string      `json:"patient"`
	LengthDelta int         `json:"length_delta,omitempty"`
	Variants    []VariantV1 `json:"variants"`
}
