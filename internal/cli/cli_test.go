package cli

import (
	"context"
	"testing"
	"time"

	"github.com/urfave/cli/v2"
)

func TestInitLogger_DebugLevel(t *testing.T) {
	// Use context with timeout to prevent hanging tests
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	app := cli.NewApp()
	app.Flags = []cli.Flag{
		&cli.StringFlag{Name: "log-level"},
	}
	app.Before = initLogger
	app.Action = func(_ *cli.Context) error {
		if logger == nil {
			t.Error("logger should be initialized")
		}
		if !logger.Core().Enabled(-1) {
			t.Error("debug level should be enabled")
		}
		return nil
	}
	if err := app.RunContext(ctx, []string{"test", "--log-level", "debug"}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestInitLogger_DefaultLevel(t *testing.T) {
	// Use context with timeout to prevent hanging tests
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	app := cli.NewApp()
	app.Flags = []cli.Flag{
		&cli.StringFlag{Name: "log-level"},
	}
	app.Before = initLogger
	app.Action = func(_ *cli.Context) error {
		if logger == nil {
			t.Error("logger should be initialized")
		}
		return nil
	}
	if err := app.RunContext(ctx, []string{"test"}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestInitLogger_InvalidLevel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	app := cli.NewApp()
	app.Flags = []cli.Flag{
		&cli.StringFlag{Name: "log-level"},
	}
	app.Before = initLogger
	app.Action = func(_ *cli.Context) error { return nil }
	if err := app.RunContext(ctx, []string{"test", "--log-level", "loud"}); err == nil {
		t.Error("expected an error for an unknown log level")
	}
}

func TestNewAppStructure(t *testing.T) {
	app := New("1.0.0", "abc123", "2024-01-01")
	if app.Name == "" {
		t.Error("expected app name to be set")
	}
	if app.Usage == "" {
		t.Error("expected app usage to be set")
	}
	if app.Version != "v1.0.0-abc123 (2024-01-01)" {
		t.Errorf("unexpected version %q", app.Version)
	}
	if app.Action == nil {
		t.Error("expected a default action")
	}
	if app.Before == nil {
		t.Error("expected Before hook to be set")
	}
	names := map[string]bool{}
	for _, cmd := range app.Commands {
		names[cmd.Name] = true
	}
	for _, name := range []string{"generate", "verify", "list", "stream", "slime"} {
		if !names[name] {
			t.Errorf("expected command %q", name)
		}
	}
}
