// internal/output/report.go
package output

import (
	"fmt"
	"io"

	"guidesafe/pkg/api"
)

// Options selects the report layout.
type Options struct {
	Format string // text | json | jsonl
	Header bool
}

// WriteDesign renders a design report. jsonl emits one candidate per line.
func WriteDesign(w io.Writer, rep api.DesignReportV1, o Options) error {
	switch o.Format {
	case "json":
		return EncodePretty(w, rep)
	case "jsonl":
		return WriteJSONL(w, rep.Candidates)
	}
	if _, err := fmt.Fprintf(w, "# run %s  reference %s  length %d  target %d  replacement %s  constructible %t\n",
		rep.RunID, rep.Reference, rep.Length, rep.Target, rep.Replacement, rep.Constructible); err != nil {
		return err
	}
	if err := WriteCandidates(w, rep.Candidates, o.Header); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if err := WriteTemplates(w, rep.Candidates, o.Header); err != nil {
		return err
	}
	return WriteScreenings(w, rep.Candidates)
}

// WriteScreen renders a screen report. jsonl emits one hit per line and
// the verdict last.
func WriteScreen(w io.Writer, rep api.ScreenReportV1, o Options) error {
	switch o.Format {
	case "json":
		return EncodePretty(w, rep)
	case "jsonl":
		if err := WriteJSONL(w, rep.Hits); err != nil {
			return err
		}
		return WriteJSONL(w, []api.VerdictV1{rep.Verdict})
	}
	if _, err := fmt.Fprintf(w, "# run %s  spacer %s  target %s  hits %d  coding_hits %d\n",
		rep.RunID, rep.Spacer, rep.TargetEntity, len(rep.Hits), rep.CodingHits); err != nil {
		return err
	}
	if err := WriteHits(w, rep.Hits, o.Header); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if err := WriteVerdict(w, rep.Verdict); err != nil {
		return err
	}
	return WriteFindings(w, rep.CriticalFindings)
}

// WriteVariantReport renders a variants report. jsonl emits one variant per line.
func WriteVariantReport(w io.Writer, rep api.VariantReportV1, o Options) error {
	switch o.Format {
	case "json":
		return EncodePretty(w, rep)
	case "jsonl":
		return WriteJSONL(w, rep.Variants)
	}
	if _, err := fmt.Fprintf(w, "# run %s  reference %s  patient %s  length_delta %d\n",
		rep.RunID, rep.Reference, rep.Patient, rep.LengthDelta); err != nil {
		return err
	}
	return WriteVariants(w, rep.Variants, o.Header)
}
