// Package fixtures generates and verifies java.util.Random test fixture files.
package fixtures

import (
	"errors"
	"fmt"
	"slices"

	"github.com/caarlos0/env/v11"
)

// Variant selects the set of kinds written when no explicit kinds are configured.
type Variant string

const (
	// VariantBasic writes integers, longs, floats, doubles, booleans and bytes.
	VariantBasic Variant = "basic"
	// VariantExtended adds bounded_integers and gaussians.
	VariantExtended Variant = "extended"
)

// Kinds returns the kinds of the variant in file order.
func (v Variant) Kinds() []Kind {
	if v == VariantBasic {
		return slices.Clone(allKinds[:6])
	}
	return Kinds()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(text []byte) error {
	switch Variant(text) {
	case VariantBasic, VariantExtended:
		*v = Variant(text)
		return nil
	}
	return fmt.Errorf("unknown variant %q, want one of: basic, extended", string(text))
}

// Config holds configuration for fixture generation.
type Config struct {
	Seed      int64   `env:"JRAND_SEED"    envDefault:"12345"`
	Count     int     `env:"JRAND_COUNT"   envDefault:"10"`
	OutputDir string  `env:"OUT_DIR"       envDefault:"./generated"`
	Variant   Variant `env:"JRAND_VARIANT" envDefault:"extended"`

	// Kinds restricts generation to a subset; empty means every kind of Variant.
	Kinds []Kind `env:"JRAND_KINDS" envSeparator:","`

	// Manifest writes manifest.yaml next to the fixtures.
	Manifest bool `env:"JRAND_MANIFEST"`
}

// NewConfig returns a Config with the defaults the generator has always used.
func NewConfig() *Config {
	return &Config{
		Seed:      12345,
		Count:     10,
		OutputDir: "./generated",
		Variant:   VariantExtended,
		Kinds:     []Kind{},
		Manifest:  false,
	}
}

// ConfigFromEnv returns a Config populated from the environment, with defaults for
// unset variables.
func ConfigFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks the Config for correctness.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Count < 0 {
		return errors.New("count must be non-negative")
	}
	if c.OutputDir == "" {
		return errors.New("output directory must not be empty")
	}
	if c.Variant != VariantBasic && c.Variant != VariantExtended {
		return fmt.Errorf("unknown variant %q", c.Variant)
	}
	for _, k := range c.Kinds {
		if !k.Valid() {
			return fmt.Errorf("unknown kind %q", k)
		}
	}
	return nil
}

// SelectedKinds returns the kinds to process, in file order and without duplicates.
func (c *Config) SelectedKinds() []Kind {
	if len(c.Kinds) == 0 {
		return c.Variant.Kinds()
	}
	var out []Kind
	for _, k := range allKinds {
		if slices.Contains(c.Kinds, k) {
			out = append(out, k)
		}
	}
	return out
}
