package motif

import (
	"strings"
	"testing"

	"guidesafe-core/seqops"
)

// background returns an ACGT repeat, which contains neither GG nor CC.
func background(n int) []byte {
	b := []byte(strings.Repeat("ACGT", n/4+1))
	return b[:n]
}

func TestScanSingleForwardMotif(t *testing.T) {
	seq := background(200)
	copy(seq[74:], "AGG")

	got := Scan(string(seq), 70, DefaultOptions())
	if len(got) != 1 {
		t.Fatalf("want 1 candidate, got %d: %+v", len(got), got)
	}
	c := got[0]
	if c.Strand != Forward || c.Motif != "AGG" || c.MotifStart != 74 || c.CutSite != 71 || c.CutDistance != 1 {
		t.Errorf("unexpected candidate %+v", c)
	}
	if c.Spacer != string(seq[54:74]) || len(c.Spacer) != SpacerLen {
		t.Errorf("spacer %q, want %q", c.Spacer, seq[54:74])
	}
}

func TestScanReverseMotif(t *testing.T) {
	seq := background(200)
	copy(seq[60:], "CCA")

	got := Scan(string(seq), 70, DefaultOptions())
	if len(got) != 1 {
		t.Fatalf("want 1 candidate, got %d: %+v", len(got), got)
	}
	c := got[0]
	if c.Strand != Reverse || c.CutSite != 66 || c.CutDistance != 4 {
		t.Errorf("unexpected candidate %+v", c)
	}
	if want := seqops.RevComp(string(seq[63:83])); c.Spacer != want {
		t.Errorf("spacer %q, want %q", c.Spacer, want)
	}
}

func TestScanOverlappingMatches(t *testing.T) {
	seq := background(200)
	copy(seq[70:], "AGGG") // AGG at 70 and GGG at 71

	got := Scan(string(seq), 72, DefaultOptions())
	starts := map[int]bool{}
	for _, c := range got {
		if c.Strand == Forward {
			starts[c.MotifStart] = true
		}
	}
	if !starts[70] || !starts[71] {
		t.Fatalf("expected overlapping forward motifs at 70 and 71, got %+v", got)
	}
}

func TestScanStableTies(t *testing.T) {
	seq := background(200)
	// forward AGG at 80 cuts at 77; reverse CCA at 57 cuts at 63; target 70 → both distance 7
	copy(seq[80:], "AGG")
	copy(seq[57:], "CCA")

	got := Scan(string(seq), 70, DefaultOptions())
	if len(got) != 2 {
		t.Fatalf("want 2 candidates, got %+v", got)
	}
	if got[0].Strand != Forward || got[1].Strand != Reverse {
		t.Errorf("tie must keep forward before reverse: %+v", got)
	}
}

func TestScanDistanceInvariant(t *testing.T) {
	seq := "TTGGCCAGGTCCGGAGGCCTTGGCCGGAAGGTTCCAGGCCTGGACCGTAGGCCTTAGGCCAGG"
	for target := 0; target < len(seq); target += 5 {
		got := Scan(seq, target, Options{Window: 20, MaxDistance: 6})
		prev := -1
		for _, c := range got {
			if c.CutDistance > 6 {
				t.Fatalf("target %d: distance %d beyond max", target, c.CutDistance)
			}
			if c.CutDistance < prev {
				t.Fatalf("target %d: not sorted: %+v", target, got)
			}
			prev = c.CutDistance
		}
	}
}

func TestScanShortSpacerNearStart(t *testing.T) {
	seq := background(60)
	copy(seq[8:], "TGG")

	got := Scan(string(seq), 6, DefaultOptions())
	if len(got) == 0 {
		t.Fatal("expected a candidate")
	}
	if got[0].Spacer != string(seq[0:8]) {
		t.Errorf("truncated spacer %q, want %q", got[0].Spacer, seq[0:8])
	}
}

func TestScanOutsideWindowIgnored(t *testing.T) {
	seq := background(200)
	copy(seq[100:], "AGG")
	if got := Scan(string(seq), 70, DefaultOptions()); len(got) != 0 {
		t.Fatalf("motif outside window reported: %+v", got)
	}
}

func TestScanOptionsAreLiteral(t *testing.T) {
	seq := background(200)
	copy(seq[74:], "AGG") // cut site 71

	if got := Scan(string(seq), 71, Options{}); got != nil {
		t.Fatalf("zero Options found %+v", got)
	}
	exact := Options{Window: 20, MaxDistance: 0}
	if got := Scan(string(seq), 71, exact); len(got) != 1 || got[0].CutDistance != 0 {
		t.Fatalf("MaxDistance 0 at the cut site: %+v", got)
	}
	if got := Scan(string(seq), 70, exact); len(got) != 0 {
		t.Fatalf("MaxDistance 0 one base off: %+v", got)
	}
}
