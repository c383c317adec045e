// Package config loads the CLI's optional charly.yml document, the same
// way the teacher's pkg/driver loads package.yml: a yaml.Decoder that
// rejects unknown fields decodes into a struct, then a small validation pass.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config configures the CLI wrapper around the evaluator. It has no bearing
// on evaluator semantics (spec.md §§2-9 are unaffected by any field here) —
// it only decides whether the CLI wires up prelude loading and where
// $CHARLYDIR resolves to. TraceDepth is parsed and validated but is not read
// by the CLI; a rendered trace always lists every frame.
type Config struct {
	LoadPrelude bool   `yaml:"load_prelude"`
	CharlyDir   string `yaml:"charly_dir"`
	TraceDepth  int    `yaml:"trace_depth"`
}

// Default returns the configuration the CLI uses when no charly.yml is
// present: prelude loading on, $CHARLYDIR taken from the environment, and
// TraceDepth 0.
func Default() Config {
	return Config{LoadPrelude: true, CharlyDir: os.Getenv("CHARLYDIR"), TraceDepth: 0}
}

// ValidationError aggregates configuration validation failures, mirroring
// driver.ValidationError's multi-issue message shape.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

func (c Config) validate() error {
	var errs ValidationError
	if c.TraceDepth < 0 {
		errs.Issues = append(errs.Issues, "trace_depth must not be negative")
	}
	if c.LoadPrelude && c.CharlyDir == "" {
		errs.Issues = append(errs.Issues, "charly_dir must be set when load_prelude is true")
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// Load parses path as YAML into a Config, filling unset fields from
// Default() and validating the result. A missing file is not an error: it
// returns Default() unchanged, the same way a missing package.yml only
// becomes an error at the call site that requires one.
func Load(path string) (Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
