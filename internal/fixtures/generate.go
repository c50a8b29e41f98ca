package fixtures

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/medxops/jrand-gen/internal/fixtures"

var (
	// ErrCreateDir wraps failures to create the output directory.
	ErrCreateDir = errors.New("create output directory")
	// ErrWriteFixture wraps failures to write a fixture file.
	ErrWriteFixture = errors.New("write fixture")
)

// FileResult describes the outcome for one kind.
type FileResult struct {
	Kind   Kind
	Path   string
	Tokens int
	SHA256 string
	Err    error
}

// Report describes one generation run.
type Report struct {
	RunID       string
	GeneratedAt time.Time
	Config      Config
	Files       []FileResult
}

// Written returns the number of files written successfully.
func (r *Report) Written() int {
	n := 0
	for _, f := range r.Files {
		if f.Err == nil {
			n++
		}
	}
	return n
}

// Run writes one fixture file per selected kind into c.OutputDir.
//
// Every kind is generated from its own generator seeded with c.Seed. Failing to
// create the directory or to write a file is logged and the run moves on to the
// next kind; those failures are recorded in the Report, never returned. Run only
// returns an error for an invalid Config.
func Run(ctx context.Context, c *Config, logger *zap.Logger) (*Report, error) {
	if err := c.Validate(); err != nil {
		logger.Error("invalid config", zap.Error(err))
		return nil, err
	}

	report := &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Config:      *c,
	}
	logger = logger.With(zap.String("run_id", report.RunID))
	logger.Info("running random data generator",
		zap.Int64("seed", c.Seed),
		zap.Int("count", c.Count),
		zap.String("output_dir", c.OutputDir),
	)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "fixtures.run", trace.WithAttributes(
		attribute.String("fixture.run_id", report.RunID),
		attribute.Int64("fixture.seed", c.Seed),
		attribute.Int("fixture.count", c.Count),
	))
	defer span.End()

	if err := ensureDir(c.OutputDir); err != nil {
		logger.Error("couldn't create the output folder", zap.Error(err))
		span.RecordError(err)
	}

	in := newInstruments()
	for _, k := range c.SelectedKinds() {
		start := time.Now()
		res := writeKind(ctx, c, k)
		in.recordWrite(ctx, res, time.Since(start))
		if res.Err != nil {
			logger.Error("writing generated test data failed", zap.String("kind", string(k)), zap.Error(res.Err))
		} else {
			logger.Debug("fixture written", zap.String("kind", string(k)), zap.String("path", res.Path))
		}
		report.Files = append(report.Files, res)
	}

	if c.Manifest {
		if err := WriteManifest(c.OutputDir, NewManifest(report)); err != nil {
			logger.Error("writing manifest failed", zap.Error(err))
			span.RecordError(err)
		}
	}

	logger.Info("fixture generation completed", zap.Int("files", report.Written()))
	return report, nil
}

func ensureDir(dir string) error {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w %s: %w", ErrCreateDir, dir, err)
	}
	return nil
}

func writeKind(ctx context.Context, c *Config, k Kind) FileResult {
	res := FileResult{Kind: k, Path: filepath.Join(c.OutputDir, k.FileName())}

	_, span := otel.Tracer(tracerName).Start(ctx, "fixtures.write", trace.WithAttributes(
		attribute.String("fixture.kind", string(k)),
		attribute.String("fixture.path", res.Path),
	))
	defer span.End()

	seq, err := Draw(k, c.Seed, c.Count)
	if err == nil {
		res.SHA256, err = writeSequence(res.Path, seq)
	}
	if err != nil {
		res.Err = err
		res.SHA256 = ""
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res
	}

	res.Tokens = len(seq.Tokens)
	span.SetAttributes(attribute.Int("fixture.tokens", res.Tokens))
	return res
}

// writeSequence replaces the file at path with seq and returns the SHA-256 of what
// was written. The file is closed on every path.
func writeSequence(path string, seq Sequence) (sum string, err error) {
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteFixture, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrWriteFixture, cerr)
		}
	}()

	h := sha256.New()
	w := bufio.NewWriter(f)
	if _, err := seq.WriteTo(io.MultiWriter(w, h)); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteFixture, err)
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteFixture, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
