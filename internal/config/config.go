package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/mpstats/internal/molprobity"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Malformed-row handling: reject | fail | pad.
	RowPolicy string `mapstructure:"row_policy" yaml:"row_policy"`
	// Column delimiter of the oneline input.
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	// Digits after the decimal point in report output.
	OutputPrecision int `mapstructure:"output_precision" yaml:"output_precision"`

	// Run manifests
	WriteManifest bool   `mapstructure:"write_manifest" yaml:"write_manifest"`
	ManifestDir   string `mapstructure:"manifest_dir" yaml:"manifest_dir"`
}

const appDir = ".mpstats"

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.mpstats/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, appDir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env (MPSTATS_*, optionally from ./.env) > config file > defaults.
// Command-line flags are applied on top by the caller.
func Load(cfgFile string) (*Global, error) {
	// A missing .env is normal; anything else is worth reporting.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("MPSTATS")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("row_policy", "reject")
	v.SetDefault("delimiter", ":")
	v.SetDefault("output_precision", 6)
	v.SetDefault("write_manifest", false)
	v.SetDefault("manifest_dir", "")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, appDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	// Resolve manifest_dir default: ~/.mpstats/runs
	if c.ManifestDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		c.ManifestDir = filepath.Join(home, appDir, "runs")
	}
	return &c, nil
}

// DelimiterRune returns the configured delimiter as a single rune.
func (c *Global) DelimiterRune() rune {
	r := []rune(c.Delimiter)
	if len(r) != 1 {
		return ':'
	}
	return r[0]
}

// Validate checks values that viper cannot type-check.
func (c *Global) Validate() error {
	if _, err := molprobity.ParseRowPolicy(c.RowPolicy); err != nil {
		return fmt.Errorf("invalid row_policy: %w", err)
	}
	if n := len([]rune(c.Delimiter)); n != 1 {
		return fmt.Errorf("invalid delimiter: %q (must be a single character)", c.Delimiter)
	}
	if c.OutputPrecision < 0 || c.OutputPrecision > 12 {
		return fmt.Errorf("invalid output_precision: %d (use 0-12)", c.OutputPrecision)
	}
	return nil
}
