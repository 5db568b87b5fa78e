// Package cli parses the command line into an Invocation. It never runs
// the analyses itself.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"guidesafe/internal/config"
	"guidesafe/internal/version"
)

// Command names.
const (
	CmdDesign   = "design"
	CmdScreen   = "screen"
	CmdVariants = "variants"
	CmdVersion  = "version"
)

type DesignOptions struct {
	Reference   string
	Record      string
	Target      int
	Replacement string

	// With Databases set, every candidate spacer is screened.
	Databases    []string
	Annotation   string
	Registry     string
	TargetEntity string
}

type ScreenOptions struct {
	Spacer       string
	Databases    []string
	Annotation   string
	Registry     string
	TargetEntity string
	Template     string // optional repair template for the shield check
	TemplateAt   int    // absolute offset of Template[0]
	MotifStart   int
	Strand       string
}

type VariantOptions struct {
	Reference  string
	Patient    string
	Record     string
	Annotation string
}

// Invocation is the parsed command line plus the merged configuration.
type Invocation struct {
	Command  string
	Config   config.Config
	Design   DesignOptions
	Screen   ScreenOptions
	Variants VariantOptions
}

// NewRoot builds the command tree. On successful execution inv is filled
// in; inv.Command stays empty after --help or --version. Every error
// returned by Execute is a usage or configuration error.
func NewRoot(stdout, stderr io.Writer, inv *Invocation) *cobra.Command {
	v := config.New()
	var cfgFile string

	root := &cobra.Command{
		Use:   "guidesafe",
		Short: "Design CRISPR guides and repair templates, and screen them for off-target risk",
		Long: `guidesafe finds NGG-adjacent cut sites near a target mutation, ranks
repair templates that carry the correction and a shield edit, and screens a
spacer against sequence databases for essential or coding off-targets.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.ReadFile(v, cfgFile)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("guidesafe version {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "settings file (YAML, JSON, or TOML)")
	pf.StringP("output", "o", config.FormatText, "output format: text | json | jsonl")
	pf.Bool("header", true, "print a header row in text output")
	pf.String("log-level", "info", "log level: debug | info | warn | error")
	pf.BoolP("quiet", "q", false, "only log warnings and errors")
	pf.Int("no-match-exit-code", 1, "exit code when nothing is found")
	bind(v, pf, map[string]string{
		"output.format":             "output",
		"output.header":             "header",
		"log.level":                 "log-level",
		"log.quiet":                 "quiet",
		"output.no-match-exit-code": "no-match-exit-code",
	})

	finish := func(name string) error {
		c, err := config.Load(v)
		if err != nil {
			return err
		}
		inv.Command = name
		inv.Config = c
		return nil
	}

	root.AddCommand(
		newDesignCmd(v, inv, finish),
		newScreenCmd(v, inv, finish),
		newVariantsCmd(v, inv, finish),
		&cobra.Command{
			Use:   CmdVersion,
			Short: "Print the version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				inv.Command = CmdVersion
				return nil
			},
		},
	)
	return root
}

func newDesignCmd(v *viper.Viper, inv *Invocation, finish func(string) error) *cobra.Command {
	o := &inv.Design
	cmd := &cobra.Command{
		Use:   CmdDesign,
		Short: "Find guide candidates and repair templates around a target position",
		Long: `Scan the window around --target for NGG (forward) and CCN (reverse) motifs,
evaluate each spacer for manufacturability, and synthesize up to three ranked
120-nt repair templates carrying --replacement plus a motif-disrupting shield edit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.Target < 0 {
				return errors.New("--target must be ≥ 0")
			}
			r := strings.ToUpper(strings.TrimSpace(o.Replacement))
			if len(r) != 1 || !strings.Contains("ACGT", r) {
				return fmt.Errorf("--replacement must be one of A, C, G, T (got %q)", o.Replacement)
			}
			o.Replacement = r
			if len(o.Databases) == 0 {
				for _, name := range []string{"annotation", "registry", "target-entity"} {
					if cmd.Flags().Changed(name) {
						return fmt.Errorf("--%s requires --database", name)
					}
				}
			}
			for _, d := range o.Databases {
				if d == "-" {
					return errors.New(`design rereads each --database per spacer; "-" (stdin) is not accepted`)
				}
			}
			bind(v, cmd.Flags(), offTargetKeys)
			return finish(CmdDesign)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.Reference, "reference", "r", "", "reference FASTA file")
	f.StringVar(&o.Record, "record", "", "record ID in the reference (default: first)")
	f.IntVarP(&o.Target, "target", "t", -1, "0-based index of the mutation")
	f.StringVar(&o.Replacement, "replacement", "", "corrected base (A, C, G, or T)")
	f.Int("window", 20, "search half-width around the target")
	f.Int("max-distance", 15, "maximum cut-site distance from the target")
	f.Bool("rank", false, "order candidates with the deterministic rule set")
	f.StringSliceVarP(&o.Databases, "database", "d", nil, "screen every spacer against this FASTA database (repeatable)")
	f.StringVarP(&o.Annotation, "annotation", "a", "", "annotation intervals for screening hits")
	f.StringVar(&o.Registry, "registry", "", "essential-entity registry for screening")
	f.StringVar(&o.TargetEntity, "target-entity", "", "entity exempt from off-target penalties")
	offTargetFlags(f)
	_ = cmd.MarkFlagRequired("reference")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("replacement")
	bind(v, f, map[string]string{
		"scan.window":       "window",
		"scan.max-distance": "max-distance",
		"design.rank":       "rank",
	})
	return cmd
}

func newScreenCmd(v *viper.Viper, inv *Invocation, finish func(string) error) *cobra.Command {
	o := &inv.Screen
	cmd := &cobra.Command{
		Use:   CmdScreen,
		Short: "Screen a spacer against sequence databases and score its safety",
		Long: `Slide --spacer across every record of each --database (plain, gzip, or "-"
for stdin), report sites within the mismatch budget annotated with entity and
region, and issue an APPROVE / WARNING / REJECT verdict. Pass --template with
--motif-start to verify the shield edit; without it the shield is UNCLEAR.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(o.Spacer) == "" {
				return errors.New("--spacer must not be empty")
			}
			if o.Template != "" && !cmd.Flags().Changed("motif-start") {
				return errors.New("--template requires --motif-start")
			}
			switch o.Strand {
			case "+", "-":
			default:
				return fmt.Errorf("invalid --strand %q", o.Strand)
			}
			if err := checkStdin(o.Databases); err != nil {
				return err
			}
			bind(v, cmd.Flags(), offTargetKeys)
			return finish(CmdScreen)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.Spacer, "spacer", "s", "", "guide spacer sequence")
	f.StringSliceVarP(&o.Databases, "database", "d", nil, "FASTA database to screen (repeatable, .gz ok, - for stdin)")
	f.StringVarP(&o.Annotation, "annotation", "a", "", "annotation intervals (GFF3 or TSV)")
	f.StringVar(&o.Registry, "registry", "", "essential-entity registry (YAML or JSON)")
	f.StringVar(&o.TargetEntity, "target-entity", "", "entity exempt from off-target penalties")
	f.StringVar(&o.Template, "template", "", "repair template sequence for the shield check")
	f.IntVar(&o.TemplateAt, "template-start", 0, "absolute offset of the template's first base")
	f.IntVar(&o.MotifStart, "motif-start", 0, "absolute offset of the recognition motif")
	f.StringVar(&o.Strand, "strand", "+", "motif strand: + or -")
	offTargetFlags(f)
	_ = cmd.MarkFlagRequired("spacer")
	_ = cmd.MarkFlagRequired("database")
	_ = cmd.MarkFlagRequired("target-entity")
	return cmd
}

// offTargetKeys is bound in RunE: design and screen share the flag names,
// and a viper key follows only the last flag bound to it.
var offTargetKeys = map[string]string{
	"offtarget.max-mismatches": "mismatches",
	"offtarget.threads":        "threads",
	"offtarget.chunk-size":     "chunk-size",
}

func offTargetFlags(f *pflag.FlagSet) {
	f.IntP("mismatches", "m", 3, "maximum mismatches per site")
	f.IntP("threads", "T", 0, "worker goroutines (0 = all CPUs)")
	f.Int("chunk-size", 1<<20, "database chunk length (0 = whole records)")
}

func checkStdin(dbs []string) error {
	n := 0
	for _, d := range dbs {
		if d == "-" {
			n++
		}
	}
	if n > 1 {
		return errors.New(`"-" (stdin) may be given only once`)
	}
	return nil
}

func newVariantsCmd(v *viper.Viper, inv *Invocation, finish func(string) error) *cobra.Command {
	o := &inv.Variants
	cmd := &cobra.Command{
		Use:   CmdVariants,
		Short: "List single-base differences between a reference and a patient sequence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return finish(CmdVariants)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.Reference, "reference", "r", "", "reference FASTA file")
	f.StringVarP(&o.Patient, "patient", "p", "", "patient FASTA file")
	f.StringVar(&o.Record, "record", "", "record ID in both files (default: first)")
	f.StringVarP(&o.Annotation, "annotation", "a", "", "annotation with exons for splice-site classification")
	_ = cmd.MarkFlagRequired("reference")
	_ = cmd.MarkFlagRequired("patient")
	return cmd
}

func bind(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for key, flag := range keys {
		_ = v.BindPFlag(key, fs.Lookup(flag))
	}
}
