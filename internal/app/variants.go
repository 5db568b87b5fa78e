// internal/app/variants.go
package app

import (
	"guidesafe-core/annotate"
	"guidesafe-core/variant"
	"guidesafe/internal/cli"
	"guidesafe/internal/output"
	"guidesafe/internal/refseq"
	"guidesafe/pkg/api"
)

func (e *runEnv) variants(o cli.VariantOptions) error {
	ref, err := refseq.Load(o.Reference, o.Record)
	if err != nil {
		return inputErr(err)
	}
	pat, err := refseq.Load(o.Patient, o.Record)
	if err != nil {
		return inputErr(err)
	}

	var exons []annotate.Interval
	if o.Annotation != "" {
		ivs, err := annotate.Load(o.Annotation)
		if err != nil {
			return inputErr(err)
		}
		for _, iv := range annotate.NewIndex(ivs).Filter(annotate.Exon) {
			if iv.SeqID == "" || iv.SeqID == ref.Name {
				exons = append(exons, iv)
			}
		}
		e.log.Debug("exons loaded", "file", o.Annotation, "exons", len(exons))
	}

	vs := variant.Align(ref.Sequence, pat.Sequence)
	delta := variant.LengthDelta(ref.Sequence, pat.Sequence)
	if delta != 0 {
		e.log.Warn("sequence lengths differ; compared the common prefix only", "delta", delta)
	}
	e.log.Info("variants finished", "reference", ref.Name, "patient", pat.Name, "variants", len(vs))

	rep := api.VariantReportV1{
		RunID:       e.runID,
		Reference:   ref.Name,
		Patient:     pat.Name,
		LengthDelta: delta,
		Variants:    output.ToVariantsV1(vs, exons),
	}
	if err := output.WriteVariantReport(e.out, rep, e.opts); err != nil {
		return err
	}
	if len(vs) == 0 {
		return errNoResult
	}
	return nil
}
