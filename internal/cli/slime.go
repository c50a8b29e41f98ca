package cli

import (
	"errors"
	"fmt"
	"math"

	"github.com/urfave/cli/v2"

	"github.com/medxops/jrand-gen/internal/slime"
)

func genSlimeCommand() *cli.Command {
	return &cli.Command{
		Name:  "slime",
		Usage: "Tell whether a Minecraft chunk is a slime chunk",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:    "world-seed",
				Aliases: []string{"w"},
				Usage:   "world seed",
				Value:   12345,
			},
			&cli.IntFlag{
				Name:  "x",
				Usage: "chunk x coordinate",
			},
			&cli.IntFlag{
				Name:  "z",
				Usage: "chunk z coordinate",
			},
			&cli.IntFlag{
				Name:  "radius",
				Usage: "list the slime chunks within this many chunks of (x, z)",
			},
		},
		Action: func(c *cli.Context) error {
			seed := c.Int64("world-seed")
			for _, name := range []string{"x", "z"} {
				if v := c.Int(name); v < math.MinInt32 || v > math.MaxInt32 {
					return fmt.Errorf("'%s' must fit a 32-bit chunk coordinate, got %d", name, v)
				}
			}
			x, z := int32(c.Int("x")), int32(c.Int("z"))
			w := c.App.Writer

			radius := c.Int("radius")
			if radius < 0 || radius > math.MaxInt32 {
				return errors.New("'radius' must be between 0 and 2147483647")
			}
			if radius == 0 {
				if slime.IsSlimeChunk(seed, x, z) {
					fmt.Fprintf(w, "chunk %d,%d: %s\n", x, z, green("slime chunk"))
				} else {
					fmt.Fprintf(w, "chunk %d,%d: not a slime chunk\n", x, z)
				}
				return nil
			}

			chunks, err := slime.Scan(seed, x, z, int32(radius))
			if err != nil {
				return err
			}
			for _, ch := range chunks {
				fmt.Fprintf(w, "%d,%d\n", ch.X, ch.Z)
			}
			logger.Debug("slime scan finished")
			fmt.Fprintf(w, "%s slime chunks\n", green(len(chunks)))
			return nil
		},
	}
}
