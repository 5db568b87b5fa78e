package safety

import (
	"strings"
	"testing"

	"guidesafe-core/annotate"
	"guidesafe-core/manufacture"
	"guidesafe-core/motif"
	"guidesafe-core/offtarget"
	"guidesafe-core/template"
)

func hit(entity string, kind annotate.RegionKind, mm int, essential bool) offtarget.Hit {
	return offtarget.Hit{Entity: entity, Region: kind, Mismatches: mm, Essential: essential}
}

func TestScoreLadder(t *testing.T) {
	tests := []struct {
		name   string
		hits   []offtarget.Hit
		shield ShieldStatus
		struc  StructuralRisk
		score  int
		rec    Recommendation
		risk   RiskLevel
		issues int
	}{
		{"clean", nil, Verified, StructLow, 100, Approve, RiskLow, 0},
		{"essential near-exact", []offtarget.Hit{hit("GAPDH", annotate.Intron, 2, true)}, Verified, StructLow, 0, Reject, RiskCritical, 1},
		{"essential 3mm ignored", []offtarget.Hit{hit("GAPDH", annotate.Intron, 3, true)}, Verified, StructLow, 100, Approve, RiskLow, 0},
		{"essential target exempt", []offtarget.Hit{hit("TP53", annotate.Exon, 0, true)}, Verified, StructLow, 100, Approve, RiskLow, 0},
		{"unshielded", nil, Unshielded, StructLow, 0, Reject, RiskCritical, 1},
		{"exon 1mm", []offtarget.Hit{hit("MYC", annotate.Exon, 1, false)}, Verified, StructLow, 50, Reject, RiskHigh, 1},
		{"cds 2mm", []offtarget.Hit{hit("MYC", annotate.CDS, 2, false)}, Verified, StructLow, 70, Warning, RiskModerate, 1},
		{"exon 3mm free", []offtarget.Hit{hit("MYC", annotate.Exon, 3, false)}, Verified, StructLow, 100, Approve, RiskLow, 0},
		{"intron 0mm free", []offtarget.Hit{hit("MYC", annotate.Intron, 0, false)}, Verified, StructLow, 100, Approve, RiskLow, 0},
		{"unclear", nil, Unclear, StructLow, 80, Approve, RiskLow, 1},
		{"moderate", nil, Verified, StructModerate, 85, Approve, RiskLow, 1},
		{"high", nil, Verified, StructHigh, 70, Warning, RiskModerate, 1},
		{"unclear+high", nil, Unclear, StructHigh, 50, Reject, RiskHigh, 2},
		{"clamped", []offtarget.Hit{
			hit("A", annotate.Exon, 0, false),
			hit("B", annotate.Exon, 1, false),
			hit("C", annotate.CDS, 2, false),
		}, Unclear, StructHigh, 0, Reject, RiskHigh, 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := Score(tc.hits, tc.shield, tc.struc, "TP53")
			if v.Score != tc.score || v.Recommendation != tc.rec || v.RiskLevel != tc.risk {
				t.Fatalf("got %d/%s/%s, want %d/%s/%s", v.Score, v.Recommendation, v.RiskLevel, tc.score, tc.rec, tc.risk)
			}
			if len(v.Issues) != tc.issues {
				t.Fatalf("issues = %q, want %d", v.Issues, tc.issues)
			}
		})
	}
}

func TestScoreEssentialBeatsEverything(t *testing.T) {
	hits := []offtarget.Hit{
		hit("MYC", annotate.Intron, 3, false),
		hit("ACTB", annotate.Exon, 1, true),
	}
	for _, sh := range []ShieldStatus{Verified, Unclear, Unshielded} {
		for _, st := range []StructuralRisk{StructLow, StructModerate, StructHigh} {
			v := Score(hits, sh, st, "TP53")
			if v.Score != 0 || v.Recommendation != Reject {
				t.Fatalf("shield=%s struct=%s: %+v", sh, st, v)
			}
			if !strings.Contains(v.Issues[0], "ACTB") {
				t.Fatalf("issue = %q", v.Issues[0])
			}
		}
	}
}

func TestScoreIssueOrder(t *testing.T) {
	v := Score([]offtarget.Hit{hit("MYC", annotate.Exon, 2, false)}, Unclear, StructModerate, "TP53")
	if v.Score != 35 {
		t.Fatalf("score = %d", v.Score)
	}
	want := []string{"EXON hit", "shield", "moderate"}
	for i, w := range want {
		if !strings.Contains(v.Issues[i], w) {
			t.Errorf("issue %d = %q, want contains %q", i, v.Issues[i], w)
		}
	}
}

func TestCodingHits(t *testing.T) {
	hits := []offtarget.Hit{
		hit("TP53", annotate.Exon, 0, false),
		hit("MYC", annotate.CDS, 3, false),
		hit("MYC", annotate.Intron, 0, false),
	}
	if n := CodingHits(hits, "TP53"); n != 1 {
		t.Fatalf("CodingHits = %d", n)
	}
}

func TestVerifyShield(t *testing.T) {
	fwd := motif.Candidate{Strand: motif.Forward, MotifStart: 14}
	rev := motif.Candidate{Strand: motif.Reverse, MotifStart: 14}
	tpl := func(mid string) template.Candidate {
		return template.Candidate{Sequence: "AAAA" + mid + "AAAA", Start: 10}
	}
	tests := []struct {
		name string
		tpl  template.Candidate
		c    motif.Candidate
		want ShieldStatus
	}{
		{"fwd active", tpl("AGG"), fwd, Unshielded},
		{"fwd shielded", tpl("AGA"), fwd, Verified},
		{"fwd lower", tpl("tgg"), fwd, Unshielded},
		{"fwd lost", tpl("ATT"), fwd, Unclear},
		{"fwd N", tpl("AGN"), fwd, Unclear},
		{"rev active", tpl("CCA"), rev, Unshielded},
		{"rev shielded", tpl("TCA"), rev, Verified},
		{"rev lost", tpl("GGA"), rev, Unclear},
		{"outside left", template.Candidate{Sequence: "AGGAAAA", Start: 15}, fwd, Unclear},
		{"outside right", template.Candidate{Sequence: "AAAAA", Start: 10}, fwd, Unclear},
	}
	for _, tc := range tests {
		if got := VerifyShield(tc.tpl, tc.c); got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestAnalyzeStructure(t *testing.T) {
	tests := []struct {
		s    manufacture.Safety
		want StructuralRisk
	}{
		{manufacture.Safety{GCContent: 50}, StructLow},
		{manufacture.Safety{GCContent: 50, HasTerminator: true}, StructHigh},
		{manufacture.Safety{GCContent: 50, HairpinCount: 4}, StructHigh},
		{manufacture.Safety{GCContent: 50, HairpinCount: 3}, StructModerate},
		{manufacture.Safety{GCContent: 50, HairpinCount: 2}, StructModerate},
		{manufacture.Safety{GCContent: 25}, StructModerate},
		{manufacture.Safety{GCContent: 75}, StructModerate},
		{manufacture.Safety{GCContent: 30, HairpinCount: 1}, StructLow},
		{manufacture.Safety{GCContent: 70}, StructLow},
	}
	for _, tc := range tests {
		if got := AnalyzeStructure(tc.s); got != tc.want {
			t.Errorf("AnalyzeStructure(%+v) = %s, want %s", tc.s, got, tc.want)
		}
	}
}

func TestEndToEndShieldVerified(t *testing.T) {
	// ACGT background has no GG/CC; plant AGG at 74.
	b := []byte(strings.Repeat("ACGT", 50))
	copy(b[74:], "AGG")
	seq := string(b)
	cands := motif.Scan(seq, 70, motif.DefaultOptions())
	if len(cands) != 1 {
		t.Fatalf("candidates = %+v", cands)
	}
	res, err := template.Plan(seq, 70, cands[0].MotifStart, 'A')
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Templates) == 0 {
		t.Fatalf("no templates: %s", res.Feasibility.Reason())
	}
	for _, tp := range res.Templates {
		if got := VerifyShield(tp, cands[0]); got != Verified {
			t.Errorf("template at %d: shield %s", tp.Start, got)
		}
	}
}

func TestCriticalFindings(t *testing.T) {
	hits := []offtarget.Hit{
		hit("TP53", annotate.Exon, 0, true),
		hit("MYC", annotate.CDS, 3, false),
		hit("GAPDH", annotate.Intron, 1, true),
		hit("ACTB", annotate.Exon, 2, true),
		hit("ALB", annotate.Intron, 3, true),
	}
	got := CriticalFindings(hits, "TP53")
	want := []string{"CDS hit in MYC", "essential entity GAPDH", "EXON hit in ACTB", "essential entity ACTB"}
	if len(got) != len(want) {
		t.Fatalf("findings = %q", got)
	}
	for i, w := range want {
		if !strings.HasPrefix(got[i], w) {
			t.Errorf("finding %d = %q, want prefix %q", i, got[i], w)
		}
	}
	if f := CriticalFindings(nil, "TP53"); len(f) != 0 {
		t.Errorf("no hits gave %q", f)
	}
}
