// internal/app/screen.go
package app

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"guidesafe-core/annotate"
	"guidesafe-core/manufacture"
	"guidesafe-core/motif"
	"guidesafe-core/safety"
	"guidesafe-core/seqops"
	"guidesafe-core/template"
	"guidesafe/internal/cli"
	"guidesafe/internal/config"
	"guidesafe/internal/output"
	"guidesafe/internal/screen"
)

func (e *runEnv) screen(o cli.ScreenOptions, c config.Config) error {
	start := time.Now()
	spacer, err := seqops.Validate(o.Spacer)
	if err != nil {
		return inputErr(fmt.Errorf("--spacer: %w", err))
	}

	idx, reg, err := e.loadScreening(o.Annotation, o.Registry, o.TargetEntity)
	if err != nil {
		return err
	}

	shield := safety.Unclear
	if o.Template != "" {
		tpl, err := seqops.Validate(o.Template)
		if err != nil {
			return inputErr(fmt.Errorf("--template: %w", err))
		}
		shield = safety.VerifyShield(
			template.Candidate{Sequence: tpl, Start: o.TemplateAt},
			motif.Candidate{Strand: motif.Strand(o.Strand), MotifStart: o.MotifStart},
		)
	} else {
		e.log.Warn("no --template given; shield status is UNCLEAR")
	}

	metrics, err := manufacture.Evaluate(spacer)
	if err != nil {
		return inputErr(err)
	}
	structural := safety.AnalyzeStructure(metrics)

	hits, err := screen.Run(e.ctx, e.screenConfig(c, idx, reg), spacer, o.Databases)
	if err != nil {
		return screenErr(err)
	}

	v := safety.Score(screen.Plain(hits), shield, structural, o.TargetEntity)
	e.log.Info("screen finished",
		"hits", len(hits),
		"recommendation", v.Recommendation,
		"score", v.Score,
		"elapsed", time.Since(start))

	rep := output.ToScreenReportV1(e.runID, spacer, o.TargetEntity, hits, v, shield, structural, reg)
	return output.WriteScreen(e.out, rep, e.opts)
}

// loadScreening reads the optional annotation and registry files.
func (e *runEnv) loadScreening(annotation, registry, target string) (*annotate.Index, annotate.Registry, error) {
	var idx *annotate.Index
	if annotation != "" {
		ivs, err := annotate.Load(annotation)
		if err != nil {
			return nil, nil, inputErr(err)
		}
		idx = annotate.NewIndex(ivs)
		e.log.Debug("annotation loaded", "file", annotation, "intervals", idx.Len())
	}
	var reg annotate.Registry
	if registry != "" {
		var err error
		if reg, err = annotate.LoadRegistry(registry); err != nil {
			return nil, nil, inputErr(err)
		}
		e.log.Debug("registry loaded", "file", registry, "entities", len(reg))
	}
	if reg != nil && !reg.IsEssential(target) {
		e.log.Debug("target entity is not in the registry", "entity", target)
	}
	return idx, reg, nil
}

func (e *runEnv) screenConfig(c config.Config, idx *annotate.Index, reg annotate.Registry) screen.Config {
	return screen.Config{
		Threads:       c.OffTarget.Threads,
		ChunkSize:     c.OffTarget.ChunkSize,
		MaxMismatches: c.OffTarget.MaxMismatches,
		Index:         idx,
		Registry:      reg,
		Logger:        e.log,
	}
}

// screenErr maps unreadable database files to input errors.
func screenErr(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return inputErr(err)
	}
	return err
}
