// internal/app/design.go
package app

import (
	"time"

	"guidesafe-core/design"
	"guidesafe-core/motif"
	"guidesafe-core/rank"
	"guidesafe-core/safety"
	"guidesafe/internal/cli"
	"guidesafe/internal/config"
	"guidesafe/internal/output"
	"guidesafe/internal/refseq"
	"guidesafe/internal/screen"
	"guidesafe/pkg/api"
)

func (e *runEnv) design(o cli.DesignOptions, c config.Config) error {
	start := time.Now()
	ref, err := refseq.Load(o.Reference, o.Record)
	if err != nil {
		return inputErr(err)
	}
	e.log.Debug("reference loaded", "record", ref.Name, "length", len(ref.Sequence))

	rep, err := design.Analyze(ref.Sequence, o.Target, o.Replacement[0], motif.Options{
		Window:      c.Scan.Window,
		MaxDistance: c.Scan.MaxDistance,
	})
	if err != nil {
		return inputErr(err)
	}
	var rules []rank.Rule
	if c.Design.Rank {
		rules = rank.Default()
		rank.Sort(rep.Candidates, rules)
	}
	e.log.Info("design finished",
		"reference", ref.Name,
		"candidates", len(rep.Candidates),
		"constructible", rep.Constructible(),
		"elapsed", time.Since(start))

	out := output.ToDesignReportV1(e.runID, ref.Name, rep, rules)
	if len(o.Databases) > 0 {
		if err := e.screenCandidates(o, c, rep.Candidates, out.Candidates); err != nil {
			return err
		}
	}
	if err := output.WriteDesign(e.out, out, e.opts); err != nil {
		return err
	}
	if len(rep.Candidates) == 0 {
		return errNoResult
	}
	return nil
}

// screenCandidates screens each spacer and attaches its verdict to the
// matching entry of out. The shield is checked against the top template.
func (e *runEnv) screenCandidates(o cli.DesignOptions, c config.Config, cands []design.Candidate, out []api.CandidateV1) error {
	idx, reg, err := e.loadScreening(o.Annotation, o.Registry, o.TargetEntity)
	if err != nil {
		return err
	}
	cfg := e.screenConfig(c, idx, reg)
	for i, cand := range cands {
		if cand.Spacer == "" {
			e.log.Debug("candidate has no spacer; not screened", "candidate", i+1)
			continue
		}
		hits, err := screen.Run(e.ctx, cfg, cand.Spacer, o.Databases)
		if err != nil {
			return screenErr(err)
		}
		shield := safety.Unclear
		if len(cand.Templates.Templates) > 0 {
			shield = safety.VerifyShield(cand.Templates.Templates[0], cand.Candidate)
		}
		v := safety.Score(screen.Plain(hits), shield, cand.Structural, o.TargetEntity)
		out[i].Screening = output.ToScreeningV1(hits, v, shield, cand.Structural, o.TargetEntity, reg)
		e.log.Info("candidate screened",
			"candidate", i+1,
			"spacer", cand.Spacer,
			"hits", len(hits),
			"recommendation", v.Recommendation,
			"score", v.Score)
	}
	return nil
}
