// Package config is for run-wide settings unmarshalled from Viper: built-in
// defaults, an optional guidesafe.yaml, GUIDESAFE_* environment variables,
// and bound command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ScanConfig bounds the motif scan around a target.
type ScanConfig struct {
	// half-width of the region searched around the target
	Window int `mapstructure:"window"`
	// largest accepted |cut site - target|
	MaxDistance int `mapstructure:"max-distance"`
}

// OffTargetConfig controls database screening.
type OffTargetConfig struct {
	MaxMismatches int `mapstructure:"max-mismatches"`
	// worker goroutines; 0 means one per CPU
	Threads int `mapstructure:"threads"`
	// database chunk length; 0 scans whole records
	ChunkSize int `mapstructure:"chunk-size"`
}

// OutputConfig selects the report format.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Header bool   `mapstructure:"header"`
	// exit code when a run finds nothing
	NoMatchExitCode int `mapstructure:"no-match-exit-code"`
}

// DesignConfig controls candidate presentation.
type DesignConfig struct {
	// order candidates with the deterministic rule set instead of cut distance
	Rank bool `mapstructure:"rank"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Quiet bool   `mapstructure:"quiet"`
}

// Config is the root-level settings struct.
type Config struct {
	Scan      ScanConfig      `mapstructure:"scan"`
	OffTarget OffTargetConfig `mapstructure:"offtarget"`
	Output    OutputConfig    `mapstructure:"output"`
	Design    DesignConfig    `mapstructure:"design"`
	Log       LogConfig       `mapstructure:"log"`
}

const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"

	// EnvPrefix is prepended to upper-cased keys, e.g. GUIDESAFE_OFFTARGET_THREADS.
	EnvPrefix = "GUIDESAFE"
)

// SetDefaults registers the built-in values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("scan.window", 20)
	v.SetDefault("scan.max-distance", 15)
	v.SetDefault("offtarget.max-mismatches", 3)
	v.SetDefault("offtarget.threads", 0)
	v.SetDefault("offtarget.chunk-size", 1<<20)
	v.SetDefault("output.format", FormatText)
	v.SetDefault("output.header", true)
	v.SetDefault("output.no-match-exit-code", 1)
	v.SetDefault("design.rank", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.quiet", false)
}

// New returns a Viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile merges a YAML/JSON/TOML settings file into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// Load unmarshals v and validates the result.
func Load(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("unable to decode config: %w", err)
	}
	c.Output.Format = strings.ToLower(c.Output.Format)
	return c, c.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.Scan.Window <= 0:
		return errors.New("--window must be > 0")
	case c.Scan.MaxDistance <= 0:
		return errors.New("--max-distance must be > 0")
	case c.OffTarget.MaxMismatches < 0:
		return errors.New("--mismatches must be ≥ 0")
	case c.OffTarget.Threads < 0:
		return errors.New("--threads must be ≥ 0")
	case c.OffTarget.ChunkSize < 0:
		return errors.New("--chunk-size must be ≥ 0")
	}
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatJSONL:
	default:
		return fmt.Errorf("invalid --output %q", c.Output.Format)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid --log-level %q", c.Log.Level)
	}
	return nil
}
