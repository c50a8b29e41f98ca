package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/medxops/jrand-gen/internal/fixtures"
)

func genGenerateCommand() *cli.Command {
	return &cli.Command{
		Name:    "generate",
		Usage:   "Write one fixture file per kind (the default command)",
		Aliases: []string{"gen", "g"},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "manifest",
				Aliases: []string{"m"},
				Usage:   "also write manifest.yaml with the run settings and file checksums (env JRAND_MANIFEST)",
			},
		},
		Action: runGenerate,
	}
}

// runGenerate never fails on file system errors; those are logged per file.
func runGenerate(c *cli.Context) error {
	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}

	shutdown, err := setupTelemetry(c.Context, c)
	if err != nil {
		return err
	}
	defer shutdownWithTimeout(shutdown)

	report, err := fixtures.Run(c.Context, cfg, logger)
	if err != nil {
		logger.Error("fixture generation failed", zap.Error(err))
		return err
	}

	w := c.App.Writer
	for _, f := range report.Files {
		if f.Err != nil {
			fmt.Fprintf(w, "%s %s\n", red("skipped"), f.Path)
			continue
		}
		fmt.Fprintf(w, "%s %s (%d values)\n", green("wrote"), f.Path, f.Tokens)
	}
	return nil
}
