package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/medxops/jrand-gen/internal/fixtures"
)

func genStreamCommand() *cli.Command {
	return &cli.Command{
		Name:  "stream",
		Usage: "Print values of one kind, one per line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "kind",
				Usage: "kind to stream, see 'list'",
				Value: string(fixtures.Integers),
			},
			&cli.IntFlag{
				Name:  "number",
				Usage: "number of values to print, 0 means until interrupted",
				Value: 0,
			},
			&cli.Float64Flag{
				Name:    "rate",
				Aliases: []string{"r"},
				Usage:   "values per second, 0 means no throttling",
				Value:   0,
			},
		},
		Action: runStream,
	}
}

func runStream(c *cli.Context) error {
	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}

	var kind fixtures.Kind
	if err := kind.UnmarshalText([]byte(c.String("kind"))); err != nil {
		return err
	}
	if c.Float64("rate") < 0 {
		return errors.New("'rate' must be non-negative")
	}
	if c.Int("number") < 0 {
		return errors.New("'number' must be non-negative")
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	limit := rate.Inf
	if r := c.Float64("rate"); r > 0 {
		limit = rate.Limit(r)
	}

	n, err := stream(ctx, c.App.Writer, kind, cfg.Seed, c.Int("number"), rate.NewLimiter(limit, 1))
	logger.Debug("stream finished", zap.String("kind", string(kind)), zap.Int("values", n))
	return err
}

// stream writes up to number tokens of kind, or until ctx is done when number is
// zero, waiting on limiter before each one. It returns how many were written.
func stream(ctx context.Context, w io.Writer, kind fixtures.Kind, seed int64, number int, limiter *rate.Limiter) (int, error) {
	s, err := fixtures.NewStream(kind, seed)
	if err != nil {
		return 0, err
	}
	n := 0
	for number == 0 || n < number {
		if err := limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return n, nil
			}
			return n, err
		}
		tok, err := s.Next()
		if err != nil {
			return n, err
		}
		if _, err := fmt.Fprintln(w, tok); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
