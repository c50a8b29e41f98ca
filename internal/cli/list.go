package cli

import (
	"fmt"
	"slices"

	"github.com/urfave/cli/v2"

	"github.com/medxops/jrand-gen/internal/fixtures"
)

func genListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Usage:   "List the fixture kinds",
		Aliases: []string{"ls"},
		Action: func(c *cli.Context) error {
			cfg, err := buildConfig(c)
			if err != nil {
				return err
			}
			selected := cfg.SelectedKinds()
			for _, k := range fixtures.Kinds() {
				mark := " "
				if slices.Contains(selected, k) {
					mark = green("*")
				}
				fmt.Fprintf(c.App.Writer, "%s %-22s %-16s %s\n", mark, k.FileName(), k, k.Description())
			}
			return nil
		},
	}
}
