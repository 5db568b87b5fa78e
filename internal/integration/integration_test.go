// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"guidesafe/internal/app"
	"guidesafe/pkg/api"
)

func write(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

// reference is 200 nt of ACGT repeats (no GG or CC) with a single AGG at 74.
func reference() string {
	b := []byte(strings.Repeat("ACGT", 50))
	copy(b[74:], "AGG")
	return string(b)
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errb bytes.Buffer
	code := app.Run(args, &out, &errb)
	return code, out.String(), errb.String()
}

func TestDesignEndToEnd(t *testing.T) {
	ref := write(t, "ref.fa", ">HBB test\n"+reference()+"\n")
	code, out, errs := run(t, "design", "-r", ref, "-t", "70", "--replacement", "A", "-o", "json", "-q")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errs)
	}
	var rep api.DesignReportV1
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if rep.RunID == "" || rep.Reference != "HBB" || !rep.Constructible {
		t.Fatalf("report = %+v", rep)
	}
	if len(rep.Candidates) != 1 {
		t.Fatalf("candidates = %d", len(rep.Candidates))
	}
	c := rep.Candidates[0]
	if c.CutDistance != 1 || c.Strand != "+" || len(c.Templates) != 3 {
		t.Fatalf("candidate = %+v", c)
	}
	for _, tp := range c.Templates {
		if tp.Shield != "VERIFIED" || !tp.CorrectionApplied {
			t.Errorf("template = %+v", tp)
		}
		if tp.Sequence[70-tp.Start] != 'A' || tp.Sequence[76-tp.Start] != 'A' {
			t.Errorf("edits missing in template at %d", tp.Start)
		}
	}
}

func TestDesignTextAndRank(t *testing.T) {
	ref := write(t, "ref.fa", ">HBB\n"+reference()+"\n")
	code, out, errs := run(t, "design", "-r", ref, "-t", "70", "--replacement", "A", "--rank")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errs)
	}
	if !strings.Contains(out, "rank\tstrand\tmotif") || !strings.Contains(out, "\n1\t+\tAGG\t74\t71\t1\t") {
		t.Fatalf("text output:\n%s", out)
	}
	if !strings.Contains(errs, "design finished") {
		t.Errorf("expected info log, got %q", errs)
	}
}

// designSpacer is the forward spacer upstream of the AGG at 74 in reference().
const designSpacer = "GTACGTACGTACGTACGTAC"

func TestDesignScreensCandidates(t *testing.T) {
	ref := write(t, "ref.fa", ">HBB\n"+reference()+"\n")
	near := designSpacer[:5] + "A" + designSpacer[6:]
	db := write(t, "db.fa", ">chr1\n"+strings.Repeat("T", 100)+designSpacer+strings.Repeat("T", 100)+
		"\n>chr2\n"+strings.Repeat("T", 50)+near+strings.Repeat("T", 50)+"\n")
	ann := write(t, "ann.tsv", "chr1 90 140 HBB exon\nchr2 40 100 GAPDH exon\n")
	reg := write(t, "reg.yaml", "GAPDH:\n  function: glycolysis\n  risk: HIGH\n  category: Housekeeping\n")

	base := []string{"design", "-r", ref, "-t", "70", "--replacement", "A", "-d", db, "-m", "1", "--target-entity", "HBB", "-q"}
	code, out, errs := run(t, append(base, "-a", ann, "--registry", reg, "-o", "json")...)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errs)
	}
	var rep api.DesignReportV1
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(rep.Candidates) != 1 || rep.Candidates[0].Spacer != designSpacer {
		t.Fatalf("candidates = %+v", rep.Candidates)
	}
	s := rep.Candidates[0].Screening
	if s == nil {
		t.Fatal("candidate was not screened")
	}
	if len(s.Hits) != 2 || s.Hits[0].Entity != "HBB" || s.Hits[1].Entity != "GAPDH" || s.CodingHits != 1 {
		t.Fatalf("screening hits = %+v", s)
	}
	if e := s.Hits[1].Essentiality; e == nil || e.Category != "Housekeeping" {
		t.Errorf("essentiality = %+v", e)
	}
	if s.Verdict.Recommendation != "REJECT" || s.Verdict.Score != 0 || s.Verdict.Shield != "VERIFIED" {
		t.Errorf("verdict = %+v", s.Verdict)
	}
	if len(s.CriticalFindings) != 2 || !strings.Contains(s.CriticalFindings[1], "essential entity GAPDH hit at 50") {
		t.Errorf("critical findings = %q", s.CriticalFindings)
	}

	// without annotation every hit is intergenic and nothing is critical
	code, out, errs = run(t, base...)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errs)
	}
	if !strings.Contains(out, "# candidate 1  spacer "+designSpacer+"  hits 2  coding_hits 0") || strings.Contains(out, "critical:") {
		t.Fatalf("text output:\n%s", out)
	}

	// without --database no candidate is screened
	if _, out, _ = run(t, "design", "-r", ref, "-t", "70", "--replacement", "A", "-o", "json", "-q"); strings.Contains(out, `"screening"`) {
		t.Errorf("unscreened design carries screening: %s", out)
	}
}

func TestDesignNoCandidates(t *testing.T) {
	ref := write(t, "ref.fa", ">x\n"+strings.Repeat("ACGT", 50)+"\n")
	if code, _, _ := run(t, "design", "-r", ref, "-t", "100", "--replacement", "A", "-q"); code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if code, _, _ := run(t, "design", "-r", ref, "-t", "100", "--replacement", "A", "-q", "--no-match-exit-code", "0"); code != 0 {
		t.Fatalf("exit %d, want 0", code)
	}
}

func TestUsageAndInputErrors(t *testing.T) {
	ref := write(t, "ref.fa", ">x\n"+reference()+"\n")
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"missing flag", []string{"design", "-r", ref}, 2},
		{"bad replacement", []string{"design", "-r", ref, "-t", "1", "--replacement", "Z"}, 2},
		{"missing reference", []string{"design", "-r", filepath.Join(t.TempDir(), "none.fa"), "-t", "1", "--replacement", "A"}, 2},
		{"target out of range", []string{"design", "-r", ref, "-t", "500", "--replacement", "A"}, 2},
		{"bad spacer", []string{"screen", "-s", "ACXT", "-d", ref, "--target-entity", "HBB"}, 2},
		{"design missing database", []string{"design", "-r", ref, "-t", "70", "--replacement", "A", "-d", filepath.Join(t.TempDir(), "none.fa"), "-q"}, 2},
		{"missing database", []string{"screen", "-s", "ACGT", "-d", filepath.Join(t.TempDir(), "none.fa"), "--target-entity", "HBB", "-q"}, 2},
		{"help", []string{"--help"}, 0},
		{"no args", []string{}, 0},
		{"version", []string{"version"}, 0},
	}
	for _, tc := range tests {
		if code, _, errs := run(t, tc.args...); code != tc.code {
			t.Errorf("%s: exit %d, want %d (%s)", tc.name, code, tc.code, errs)
		}
	}
}

// spacer has no complementary outer pair, 50% GC, and no TTTT, so its
// structural risk is LOW.
const spacer = "ACGATCGTAGCTAGCATGCA"

func database(t *testing.T, gz bool) string {
	a := strings.Repeat("T", 100) + spacer + strings.Repeat("T", 300)
	b := strings.Repeat("T", 50) + spacer[:10] + "A" + spacer[11:] + strings.Repeat("T", 50)
	body := ">chr1\n" + a + "\n>chr2\n" + b + "\n"
	if !gz {
		return write(t, "db.fa", body)
	}
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, _ = gw.Write([]byte(body))
	_ = gw.Close()
	return write(t, "db.fa.gz", buf.String())
}

func TestScreenVerdicts(t *testing.T) {
	db := database(t, true)
	ann := write(t, "ann.tsv", "chr1 90 140 HBB exon\nchr2 40 100 GAPDH exon\n")
	reg := write(t, "reg.yaml", "GAPDH:\n  function: glycolysis\n  risk: HIGH\n  category: Housekeeping\n")
	tpl := reference()[20:140]
	tplFlags := []string{"--template", tpl[:54] + "AGA" + tpl[57:], "--template-start", "20", "--motif-start", "74"}

	tests := []struct {
		name  string
		extra []string
		rec   string
		score int
	}{
		// chr2 carries a 1-mismatch copy inside essential GAPDH
		{"essential rejects", append([]string{"-a", ann, "--registry", reg}, tplFlags...), "REJECT", 0},
		// without the registry GAPDH is only a coding hit: -50
		{"coding penalty", append([]string{"-a", ann}, tplFlags...), "REJECT", 50},
		// no annotation: every hit is intergenic, shield verified
		{"clean", tplFlags, "APPROVE", 100},
		// no template: shield UNCLEAR
		{"unclear shield", nil, "APPROVE", 80},
	}
	for _, tc := range tests {
		args := append([]string{"screen", "-s", spacer, "-d", db, "--target-entity", "HBB", "-o", "json", "-q", "-m", "1"}, tc.extra...)
		code, out, errs := run(t, args...)
		if code != 0 {
			t.Fatalf("%s: exit %d: %s", tc.name, code, errs)
		}
		var rep api.ScreenReportV1
		if err := json.Unmarshal([]byte(out), &rep); err != nil {
			t.Fatalf("%s: decode: %v", tc.name, err)
		}
		if rep.Verdict.Recommendation != tc.rec || rep.Verdict.Score != tc.score {
			t.Errorf("%s: verdict = %+v", tc.name, rep.Verdict)
		}
		if len(rep.Hits) != 2 || rep.Hits[0].SequenceID != "chr1" || rep.Hits[0].Position != 100 || rep.Hits[1].Position != 50 {
			t.Errorf("%s: hits = %+v", tc.name, rep.Hits)
		}
	}
}

func TestScreenParallelEqualsSerial(t *testing.T) {
	db := database(t, false)
	runJSONL := func(threads, chunk int) string {
		code, out, errs := run(t, "screen", "-s", spacer, "-d", db, "--target-entity", "HBB",
			"-o", "jsonl", "-q", "-T", fmt.Sprint(threads), "--chunk-size", fmt.Sprint(chunk))
		if code != 0 {
			t.Fatalf("exit %d: %s", code, errs)
		}
		return out
	}
	serial := runJSONL(1, 0)
	for _, cfg := range [][2]int{{4, 0}, {1, 48}, {4, 48}} {
		if got := runJSONL(cfg[0], cfg[1]); got != serial {
			t.Fatalf("threads=%d chunk=%d differs\nserial: %s\ngot:    %s", cfg[0], cfg[1], serial, got)
		}
	}
}

func TestVariants(t *testing.T) {
	ref := write(t, "ref.fa", ">g\nACGTACGTACGTACGT\n")
	pat := write(t, "pat.fa", ">g\nACGTACCTACGTACGA\n")
	ann := write(t, "ann.gff3", "g\tsrc\texon\t9\t12\t.\t+\t.\tgene=G\n")
	code, out, errs := run(t, "variants", "-r", ref, "-p", pat, "-a", ann, "-o", "jsonl", "-q")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errs)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	var v0, v1 api.VariantV1
	_ = json.Unmarshal([]byte(lines[0]), &v0)
	_ = json.Unmarshal([]byte(lines[1]), &v1)
	// exon is 0-based [8,12): 6 is within 2 of its first base, 15 is past it
	if v0.Index != 6 || v0.Site != "SPLICE_SITE" || v1.Index != 15 || v1.Site != "INTRON" {
		t.Fatalf("variants = %+v %+v", v0, v1)
	}

	same := write(t, "same.fa", ">g\nACGTACGTACGTACGT\n")
	if code, _, _ := run(t, "variants", "-r", ref, "-p", same, "-q"); code != 1 {
		t.Fatalf("identical sequences exit %d, want 1", code)
	}
}
