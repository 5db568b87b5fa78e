// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"guidesafe/pkg/api"
)

// WriteCandidates prints one TSV line per candidate.
func WriteCandidates(w io.Writer, list []api.CandidateV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, CandidateHeader); err != nil {
			return err
		}
	}
	for i, c := range list {
		rank := c.Rank
		if rank == 0 {
			rank = i + 1
		}
		note := c.Infeasible
		if c.Truncated {
			note = join(note, "truncated spacer")
		}
		if note == "" {
			note = "-"
		}
		rec, score := "-", "-"
		if c.Screening != nil {
			rec, score = c.Screening.Verdict.Recommendation, strconv.Itoa(c.Screening.Verdict.Score)
		}
		_, err := fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%s\t%.1f\t%t\t%d\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			rank, c.Strand, c.Motif, c.MotifStart, c.CutSite, c.CutDistance, dash(c.Spacer),
			c.Safety.GCContent, c.Safety.HasTerminator, c.Safety.HairpinCount,
			dash(c.Binding), dash(c.Structural), len(c.Templates), rec, score, dash(c.DecidedBy), note)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteTemplates prints the templates of every candidate.
func WriteTemplates(w io.Writer, list []api.CandidateV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TemplateHeader); err != nil {
			return err
		}
	}
	for i, c := range list {
		for j, t := range c.Templates {
			_, err := fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%d\t%s\t%s\n",
				i+1, j+1, t.Start, t.LeftArm, t.RightArm, t.HairpinScore, dash(t.Shield), t.Sequence)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteScreenings prints the verdict and findings of every screened
// candidate, numbered as in WriteCandidates.
func WriteScreenings(w io.Writer, list []api.CandidateV1) error {
	for i, c := range list {
		if c.Screening == nil {
			continue
		}
		rank := c.Rank
		if rank == 0 {
			rank = i + 1
		}
		if _, err := fmt.Fprintf(w, "\n# candidate %d  spacer %s  hits %d  coding_hits %d\n",
			rank, c.Spacer, len(c.Screening.Hits), c.Screening.CodingHits); err != nil {
			return err
		}
		if err := WriteVerdict(w, c.Screening.Verdict); err != nil {
			return err
		}
		if err := WriteFindings(w, c.Screening.CriticalFindings); err != nil {
			return err
		}
	}
	return nil
}

// WriteFindings prints critical findings, one per line.
func WriteFindings(w io.Writer, findings []string) error {
	for _, f := range findings {
		if _, err := fmt.Fprintf(w, "critical: %s\n", f); err != nil {
			return err
		}
	}
	return nil
}

// WriteHits prints one TSV line per hit.
func WriteHits(w io.Writer, list []api.HitV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, HitHeader); err != nil {
			return err
		}
	}
	for _, h := range list {
		category := "-"
		if h.Essentiality != nil {
			category = dash(h.Essentiality.Category)
		}
		_, err := fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%d\t%s\t%s\t%t\t%s\n",
			dash(h.SourceFile), h.SequenceID, h.Position, h.Entity, h.Region,
			h.Mismatches, ints(h.MismatchIdx), h.Matched, h.Essential, category)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteVerdict prints the verdict as "key: value" lines, issues indented.
func WriteVerdict(w io.Writer, v api.VerdictV1) error {
	_, err := fmt.Fprintf(w, "recommendation: %s\nscore: %d\nrisk_level: %s\nshield: %s\nstructural_risk: %s\n",
		v.Recommendation, v.Score, v.RiskLevel, v.Shield, v.Structural)
	if err != nil {
		return err
	}
	for _, is := range v.Issues {
		if _, err := fmt.Fprintf(w, "  - %s\n", is); err != nil {
			return err
		}
	}
	return nil
}

// WriteVariants prints one TSV line per variant.
func WriteVariants(w io.Writer, list []api.VariantV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, VariantHeader); err != nil {
			return err
		}
	}
	for _, v := range list {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", v.Index, v.Ref, v.Alt, dash(v.Site)); err != nil {
			return err
		}
	}
	return nil
}

func ints(xs []int) string {
	if len(xs) == 0 {
		return "-"
	}
	s := make([]string, len(xs))
	for i, x := range xs {
		s[i] = strconv.Itoa(x)
	}
	return strings.Join(s, ",")
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func join(a, b string) string {
	if a == "" {
		return b
	}
	return a + "; " + b
}
