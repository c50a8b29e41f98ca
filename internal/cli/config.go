package cli

import (
	"errors"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/medxops/jrand-gen/internal/fixtures"
)

// buildConfig starts from the environment and overlays every flag that was set
// on the command line or by the config file.
func buildConfig(c *cli.Context) (*fixtures.Config, error) {
	cfg, err := fixtures.ConfigFromEnv()
	if err != nil {
		return nil, err
	}

	if c.IsSet("seed") {
		cfg.Seed = c.Int64("seed")
	}
	if c.IsSet("count") {
		cfg.Count = c.Int("count")
	}
	if c.IsSet("out-dir") {
		cfg.OutputDir = c.String("out-dir")
	}
	if c.IsSet("variant") {
		if err := cfg.Variant.UnmarshalText([]byte(c.String("variant"))); err != nil {
			return nil, err
		}
	}
	if kinds := c.StringSlice("kind"); c.IsSet("kind") && len(kinds) > 0 {
		cfg.Kinds = make([]fixtures.Kind, 0, len(kinds))
		for _, s := range kinds {
			var k fixtures.Kind
			if err := k.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
				return nil, err
			}
			cfg.Kinds = append(cfg.Kinds, k)
		}
	}
	if c.IsSet("manifest") {
		cfg.Manifest = c.Bool("manifest")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseHeaders(values []string) (map[string]string, error) {
	headers := make(map[string]string)
	for _, h := range values {
		kv := strings.SplitN(h, "=", 2)
		if len(kv) != 2 || kv[0] == "" {
			return nil, errors.New("header format must be 'key=value'")
		}
		headers[kv[0]] = kv[1]
	}
	return headers, nil
}
