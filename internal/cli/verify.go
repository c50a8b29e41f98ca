package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/medxops/jrand-gen/internal/fixtures"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

// errVerifyFailed makes the process exit non-zero when a fixture does not match.
type errVerifyFailed struct {
	failed int
}

func (e errVerifyFailed) Error() string {
	return fmt.Sprintf("%d fixture file(s) do not match", e.failed)
}

func genVerifyCommand() *cli.Command {
	return &cli.Command{
		Name:    "verify",
		Usage:   "Check fixture files against freshly generated values",
		Aliases: []string{"v"},
		Action:  runVerify,
	}
}

func runVerify(c *cli.Context) error {
	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}

	shutdown, err := setupTelemetry(c.Context, c)
	if err != nil {
		return err
	}
	defer shutdownWithTimeout(shutdown)

	results, err := fixtures.Verify(c.Context, cfg, logger)
	if err != nil {
		return err
	}

	w := c.App.Writer
	failed := 0
	for _, r := range results {
		switch {
		case r.OK():
			fmt.Fprintf(w, "%s %s\n", green("ok"), r.Path)
		case r.Err != nil:
			failed++
			fmt.Fprintf(w, "%s %s: %v\n", red("FAIL"), r.Path, r.Err)
		default:
			failed++
			fmt.Fprintf(w, "%s %s: value %d: want %s, got %s\n",
				red("FAIL"), r.Path, r.Index, yellow(r.Want), yellow(r.Got))
		}
	}
	if failed > 0 {
		return errVerifyFailed{failed: failed}
	}
	return nil
}
