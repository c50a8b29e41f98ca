package fixtures

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Missing stands in for a token that one side does not have.
const Missing = "<missing>"

// VerifyResult is the outcome of checking one fixture file.
type VerifyResult struct {
	Kind Kind
	Path string

	// Index is the first mismatching token, or -1.
	Index int
	Want  string
	Got   string

	// Err is set when the file could not be read or parsed, or its checksum
	// disagrees with the manifest.
	Err error
}

// OK reports whether the file matched.
func (r VerifyResult) OK() bool {
	return r.Index < 0 && r.Err == nil
}

// Verify checks the fixture files in c.OutputDir against fresh draws.
//
// When the directory holds a manifest, its seed, count and kinds are used instead
// of those in c and the file checksums are compared as well. An error is returned
// only when the configuration or the manifest cannot be used.
func Verify(ctx context.Context, c *Config, logger *zap.Logger) ([]VerifyResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	seed, count, kinds := c.Seed, c.Count, c.SelectedKinds()
	sums := map[Kind]string{}

	m, err := ReadManifest(c.OutputDir)
	switch {
	case err == nil:
		logger.Info("verifying against manifest", zap.String("run_id", m.RunID))
		seed, count, kinds = m.Seed, m.Count, m.Kinds()
		for _, f := range m.Files {
			sums[f.Kind] = f.SHA256
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "fixtures.verify", trace.WithAttributes(
		attribute.Int64("fixture.seed", seed),
		attribute.Int("fixture.count", count),
	))
	defer span.End()

	in := newInstruments()
	results := make([]VerifyResult, 0, len(kinds))
	for _, k := range kinds {
		res := verifyKind(filepath.Join(c.OutputDir, k.FileName()), k, seed, count, sums[k])
		if !res.OK() {
			span.AddEvent("mismatch", trace.WithAttributes(attribute.String("fixture.kind", string(k))))
			span.SetStatus(codes.Error, "fixture mismatch")
			in.recordMismatch(ctx, res)
			logger.Warn("fixture mismatch",
				zap.String("kind", string(k)),
				zap.Int("index", res.Index),
				zap.String("want", res.Want),
				zap.String("got", res.Got),
				zap.Error(res.Err),
			)
		}
		results = append(results, res)
	}
	return results, nil
}

func verifyKind(path string, k Kind, seed int64, count int, sum string) VerifyResult {
	res := VerifyResult{Kind: k, Path: path, Index: -1}

	want, err := Draw(k, seed, count)
	if err != nil {
		res.Err = err
		return res
	}
	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = err
		return res
	}
	if sum != "" {
		got := sha256.Sum256(data)
		if hex.EncodeToString(got[:]) != sum {
			res.Err = errors.New("checksum does not match manifest")
		}
	}
	if bytes.Equal(data, want.Bytes()) {
		return res
	}

	got, err := Parse(k, data)
	if err != nil {
		res.Err = err
		return res
	}
	n := max(len(want.Tokens), len(got.Tokens))
	for i := range n {
		w, g := tokenAt(want.Tokens, i), tokenAt(got.Tokens, i)
		if w != g {
			res.Index, res.Want, res.Got = i, w, g
			return res
		}
	}
	res.Err = fmt.Errorf("%w: %s: same tokens, different layout", ErrMalformed, k)
	return res
}

func tokenAt(tokens []string, i int) string {
	if i < len(tokens) {
		return tokens[i]
	}
	return Missing
}
