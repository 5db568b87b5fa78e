// internal/output/convert.go
package output

import (
	"guidesafe-core/annotate"
	"guidesafe-core/design"
	"guidesafe-core/offtarget"
	"guidesafe-core/rank"
	"guidesafe-core/safety"
	"guidesafe-core/variant"
	"guidesafe/internal/screen"
	"guidesafe/pkg/api"
)

// ToCandidateV1 converts one design candidate; rank 0 means unranked.
func ToCandidateV1(c design.Candidate, rank int) api.CandidateV1 {
	out := api.CandidateV1{
		Rank:        rank,
		Strand:      string(c.Strand),
		Motif:       c.Motif,
		MotifStart:  c.MotifStart,
		CutSite:     c.CutSite,
		CutDistance: c.CutDistance,
		Spacer:      c.Spacer,
		Truncated:   c.Truncated,
		Safety: api.SafetyV1{
			GCContent:     c.Safety.GCContent,
			HasTerminator: c.Safety.HasTerminator,
			HairpinCount:  c.Safety.HairpinCount,
			StartsWithG:   c.Safety.StartsWithG,
			LastBase:      c.Safety.LastBase,
		},
		ExpressedGuide: c.Patch.Final,
		PatchNote:      c.Patch.Note,
		Binding:        string(c.Binding),
		Structural:     string(c.Structural),
		Unshieldable:   c.Templates.Feasibility.Unshieldable,
		ShortContext:   c.Templates.Feasibility.InsufficientContext,
		Infeasible:     c.Templates.Feasibility.Reason(),
		Templates:      make([]api.TemplateV1, 0, len(c.Templates.Templates)),
	}
	for _, t := range c.Templates.Templates {
		out.Templates = append(out.Templates, api.TemplateV1{
			Sequence:          t.Sequence,
			Start:             t.Start,
			LeftArm:           t.LeftArm,
			RightArm:          t.RightArm,
			HairpinScore:      t.HairpinScore,
			CorrectionApplied: t.CorrectionApplied,
			ShieldApplied:     t.ShieldApplied,
			Clipped:           t.Clipped,
			Shield:            string(safety.VerifyShield(t, c.Candidate)),
		})
	}
	return out
}

// ToDesignReportV1 converts a design report. With rules, candidates are
// already sorted by them; each is numbered from 1 and carries the rule that
// separated it from its predecessor.
func ToDesignReportV1(runID, reference string, rep design.Report, rules []rank.Rule) api.DesignReportV1 {
	out := api.DesignReportV1{
		RunID:         runID,
		Reference:     reference,
		Length:        rep.Length,
		Target:        rep.Target,
		Replacement:   rep.Replacement,
		Constructible: rep.Constructible(),
		Candidates:    make([]api.CandidateV1, 0, len(rep.Candidates)),
	}
	for i, c := range rep.Candidates {
		if rules == nil {
			out.Candidates = append(out.Candidates, ToCandidateV1(c, 0))
			continue
		}
		cv := ToCandidateV1(c, i+1)
		if i > 0 {
			cv.DecidedBy = rank.Decide(rep.Candidates[i-1], c, rules)
		}
		out.Candidates = append(out.Candidates, cv)
	}
	return out
}

// ToHitV1 converts a hit. With a registry, the entity's record is attached.
func ToHitV1(h offtarget.Hit, source string, reg annotate.Registry) api.HitV1 {
	out := api.HitV1{
		SourceFile:  source,
		SequenceID:  h.SequenceID,
		Position:    h.Position,
		Entity:      h.Entity,
		Region:      string(h.Region),
		Mismatches:  h.Mismatches,
		MismatchIdx: h.MismatchIdx,
		Matched:     h.Matched,
		Essential:   h.Essential,
	}
	if reg != nil {
		e := reg.Check(h.Entity)
		out.Essentiality = &api.EssentialityV1{Function: e.Function, Risk: e.Risk, Category: e.Category}
	}
	return out
}

// ToScreeningV1 summarises the screen of one design candidate.
func ToScreeningV1(hits []screen.Hit, v safety.Verdict, sh safety.ShieldStatus, st safety.StructuralRisk, target string, reg annotate.Registry) *api.ScreeningV1 {
	plain := screen.Plain(hits)
	out := &api.ScreeningV1{
		Hits:             make([]api.HitV1, 0, len(hits)),
		CodingHits:       safety.CodingHits(plain, target),
		CriticalFindings: safety.CriticalFindings(plain, target),
		Verdict:          toVerdictV1(v, sh, st),
	}
	for _, h := range hits {
		out.Hits = append(out.Hits, ToHitV1(h.Hit, h.SourceFile, reg))
	}
	return out
}

func toVerdictV1(v safety.Verdict, sh safety.ShieldStatus, st safety.StructuralRisk) api.VerdictV1 {
	return api.VerdictV1{
		Score:          v.Score,
		RiskLevel:      string(v.RiskLevel),
		Recommendation: string(v.Recommendation),
		Issues:         v.Issues,
		Shield:         string(sh),
		Structural:     string(st),
	}
}

// ToScreenReportV1 converts screening results and their verdict.
func ToScreenReportV1(runID, spacer, target string, hits []screen.Hit, v safety.Verdict, sh safety.ShieldStatus, st safety.StructuralRisk, reg annotate.Registry) api.ScreenReportV1 {
	s := ToScreeningV1(hits, v, sh, st, target, reg)
	return api.ScreenReportV1{
		RunID:            runID,
		Spacer:           spacer,
		TargetEntity:     target,
		Hits:             s.Hits,
		CodingHits:       s.CodingHits,
		Verdict:          s.Verdict,
		CriticalFindings: s.CriticalFindings,
	}
}

// ToVariantsV1 converts variants, classifying each against exons when given.
func ToVariantsV1(vs []variant.Variant, exons []annotate.Interval) []api.VariantV1 {
	out := make([]api.VariantV1, 0, len(vs))
	for _, v := range vs {
		x := api.VariantV1{Index: v.Index, Ref: v.Ref, Alt: v.Alt}
		if len(exons) > 0 {
			x.Site = string(annotate.ClassifySite(v.Index, exons))
		}
		out = append(out, x)
	}
	return out
}
