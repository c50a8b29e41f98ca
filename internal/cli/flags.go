package cli

import (
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

// Fixture flags carry no Value so that unset flags fall through to the
// environment and its defaults.
func getGlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML file providing values for the global flags",
		},
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:  "log-level",
			Usage: "log level used by the logger, one of: debug, info, warn, error",
			Value: "info",
		}),
		altsrc.NewInt64Flag(&cli.Int64Flag{
			Name:    "seed",
			Aliases: []string{"s"},
			Usage:   "seed for every generator (env JRAND_SEED, default 12345)",
		}),
		altsrc.NewIntFlag(&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "values per fixture file (env JRAND_COUNT, default 10)",
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    "out-dir",
			Aliases: []string{"o"},
			Usage:   "output directory (env OUT_DIR, default ./generated)",
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:  "variant",
			Usage: "kind set, one of: basic, extended (env JRAND_VARIANT, default extended)",
		}),
		altsrc.NewStringSliceFlag(&cli.StringSliceFlag{
			Name:    "kind",
			Aliases: []string{"k"},
			Usage:   "restrict to these kinds, see 'list' (env JRAND_KINDS)",
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:  "otel-exporter-otlp-endpoint",
			Usage: "target URL to exporter endpoint, tracing is disabled when empty",
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    "protocol",
			Usage:   "the transport protocol, one of: grpc, http",
			Aliases: []string{"p"},
			Value:   "grpc",
		}),
		altsrc.NewBoolFlag(&cli.BoolFlag{
			Name:    "insecure",
			Usage:   "whether to enable client transport security",
			Aliases: []string{"i"},
			Value:   false,
		}),
		altsrc.NewStringSliceFlag(&cli.StringSliceFlag{
			Name:  "header",
			Usage: "additional headers in 'key=value' format",
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:  "service-name",
			Usage: "service name to use",
			Value: "jrand-gen",
		}),
	}
}
