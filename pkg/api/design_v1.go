// pkg/api/design_v1.go
package api

// Stable JSON/JSONL schemas. Keep fields, names, and types stable.
// Add new fields only with ",omitempty".

// SafetyV1 mirrors the manufacturability metrics of a spacer.
type SafetyV1 struct {
	GCContent     float64 `json:"gc_content"`
	HasTerminator bool    `json:"has_terminator"`
	HairpinCount  int     `json:"hairpin_count"`
	StartsWithG   bool    `json:"starts_with_g"`
	LastBase      string  `json:"last_base"`
}

// TemplateV1 is one ranked repair template.
type TemplateV1 struct {
	Sequence          string `json:"sequence"`
	Start             int    `json:"start"`
	LeftArm           int    `json:"left_arm_length"`
	RightArm          int    `json:"right_arm_length"`
	HairpinScore      int    `json:"hairpin_score"`
	CorrectionApplied bool   `json:"correction_applied"`
	ShieldApplied     bool   `json:"shield_applied"`
	Clipped           bool   `json:"clipped,omitempty"`
	Shield            string `json:"shield,omitempty"` // VERIFIED | UNSHIELDED | UNCLEAR
}

// CandidateV1 is one guide candidate near the target.
type CandidateV1 struct {
	Rank           int          `json:"rank,omitempty"`
	Strand         string       `json:"strand"` // "+" | "-"
	Motif          string       `json:"motif"`
	MotifStart     int          `json:"motif_start"`
	CutSite        int          `json:"cut_site"`
	CutDistance    int          `json:"cut_distance"`
	Spacer         string       `json:"spacer"`
	Truncated      bool         `json:"truncated,omitempty"`
	Safety         SafetyV1     `json:"safety"`
	ExpressedGuide string       `json:"expressed_guide"`
	PatchNote      string       `json:"patch_note,omitempty"`
	Binding        string       `json:"binding"`
	Structural     string       `json:"structural_risk"`
	Unshieldable   bool         `json:"unshieldable"`
	ShortContext   bool         `json:"insufficient_context"`
	Infeasible     string       `json:"infeasible_reason,omitempty"`
	Templates      []TemplateV1 `json:"templates"`
	DecidedBy      string       `json:"decided_by,omitempty"` // rule that placed it below the previous rank
	Screening      *ScreeningV1 `json:"screening,omitempty"`
}

// ScreeningV1 is the off-target assessment of one candidate's spacer, present
// when design runs with databases.
type ScreeningV1 struct {
	Hits             []HitV1   `json:"hits"`
	CodingHits       int       `json:"coding_hits"`
	CriticalFindings []string  `json:"critical_findings,omitempty"`
	Verdict          VerdictV1 `json:"verdict"`
}

// DesignReportV1 is the output of `guidesafe design`.
type DesignReportV1 struct {
	RunID         string        `json:"run_id"`
	Reference     string        `json:"reference"`
	Length        int           `json:"length"`
	Target        int           `json:"target"`
	Replacement   string        `json:"replacement"`
	Constructible bool          `json:"constructible"`
	Candidates    []CandidateV1 `json:"candidates"`
}
