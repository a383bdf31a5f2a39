package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	if cfg.Pipeline.Profile != "" && !cfg.Pipeline.Profile.IsValid() {
		errs = append(errs, fmt.Errorf("pipeline.profile %q is invalid; valid values: standard, legacy", cfg.Pipeline.Profile))
	}
	if t := cfg.Pipeline.NameThreshold; t < 0 || t > 100 {
		errs = append(errs, fmt.Errorf("pipeline.name_threshold %.1f is out of range [0, 100]", t))
	}
	if n := cfg.Pipeline.MaxCandidates; n < 0 {
		errs = append(errs, fmt.Errorf("pipeline.max_candidates %d must not be negative", n))
	}

	if cfg.Lexicon.Path != "" && cfg.Lexicon.PostgresDSN != "" {
		errs = append(errs, errors.New("lexicon.path and lexicon.postgres_dsn are mutually exclusive"))
	}
	if cfg.Lexicon.Path == "" && cfg.Lexicon.PostgresDSN == "" {
		slog.Warn("no lexicon configured; name correction will pass all tokens through")
	}

	return errors.Join(errs...)
}
