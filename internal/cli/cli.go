// Package cli wires the jrand-gen command line application.
package cli

import (
	"fmt"
	"math/rand/v2"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	appVersion = "dev"
)

func initLogger(c *cli.Context) error {
	var cfg zap.Config

	switch c.String("log-level") {
	case "debug":
		cfg = zap.NewDevelopmentConfig()
	default:
		cfg = zap.NewProductionConfig()
		if lvl := c.String("log-level"); lvl != "" {
			level, err := zap.ParseAtomicLevel(lvl)
			if err != nil {
				return fmt.Errorf("invalid log level: %w", err)
			}
			cfg.Level = level
		}
	}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	logger = l
	return nil
}

// loadConfigFile applies values from the YAML file named by --config to the
// global flags that were not given on the command line.
func loadConfigFile(c *cli.Context) error {
	return altsrc.InitInputSourceWithContext(c.App.Flags, altsrc.NewYamlSourceFromFlagFunc("config"))(c)
}

func before(c *cli.Context) error {
	if err := loadConfigFile(c); err != nil {
		return err
	}
	return initLogger(c)
}

func after(_ *cli.Context) error {
	if logger != nil {
		_ = logger.Sync()
	}
	return nil
}

func New(version, commit, date string) *cli.App {
	// Rainbow
	c := []color.Attribute{color.FgRed, color.FgGreen, color.FgYellow, color.FgMagenta, color.FgCyan, color.FgHiRed, color.FgHiGreen, color.FgHiYellow, color.FgHiBlue, color.FgHiMagenta, color.FgHiCyan}
	rand.Shuffle(len(c), func(i, j int) { c[i], c[j] = c[j], c[i] })
	var name string
	for i, r := range "jrand-gen" {
		name += color.New(c[i%len(c)]).Sprint(string(r))
	}

	if version != "" {
		appVersion = version
	}

	app := &cli.App{
		Name:    name,
		Usage:   "Generate java.util.Random reference data for cross-language tests",
		Version: fmt.Sprintf("v%v-%v (%v)", version, commit, date),
		Flags:   getGlobalFlags(),
		Commands: []*cli.Command{
			genGenerateCommand(),
			genVerifyCommand(),
			genListCommand(),
			genStreamCommand(),
			genSlimeCommand(),
		},
		Action: runGenerate,
		Before: before,
		After:  after,
	}

	app.EnableBashCompletion = true

	return app
}
