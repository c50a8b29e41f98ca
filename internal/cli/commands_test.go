//go:build !integration
// +build !integration

package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goldenDir = "../fixtures/testdata/seed12345"

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	app := New("1.0.0", "abc123", "2024-01-01")
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.RunContext(ctx, append([]string{"jrand-gen", "--log-level", "error"}, args...))
	return out.String(), err
}

func fileNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestDefaultActionGenerates(t *testing.T) {
	dir := t.TempDir()

	out, err := runApp(t, "--out-dir", dir)
	require.NoError(t, err)
	assert.Len(t, fileNames(t, dir), 8)
	assert.Contains(t, out, "wrote")

	for _, name := range fileNames(t, dir) {
		want, err := os.ReadFile(filepath.Join(goldenDir, name))
		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got), name)
	}
}

func TestGenerateUsesOutDirFromEnv(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "from-env")
	t.Setenv("OUT_DIR", dir)

	_, err := runApp(t)
	require.NoError(t, err)
	assert.Len(t, fileNames(t, dir), 8)
}

func TestGenerateBasicWithManifest(t *testing.T) {
	dir := t.TempDir()

	_, err := runApp(t, "--out-dir", dir, "--variant", "basic", "generate", "--manifest")
	require.NoError(t, err)
	names := fileNames(t, dir)
	assert.Len(t, names, 7)
	assert.Contains(t, names, "manifest.yaml")
	assert.NotContains(t, names, "gaussians.data")
}

func TestGenerateKindSubset(t *testing.T) {
	dir := t.TempDir()

	_, err := runApp(t, "--out-dir", dir, "--kind", "bytes,gaussians", "generate")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"bytes.data", "gaussians.data"}, fileNames(t, dir))
}

func TestGenerateFlagBeatsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("JRAND_SEED", "1")

	_, err := runApp(t, "--out-dir", dir, "--seed", "12345", "--kind", "integers")
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "integers.data"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(got), "[1553932502,"), string(got))
}

func TestGenerateConfigFileBeatsEnv(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	cfgPath := filepath.Join(dir, "jrand.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("count: 3\nout-dir: "+outDir+"\n"), 0o644))
	t.Setenv("JRAND_COUNT", "7")

	_, err := runApp(t, "--config", cfgPath, "--kind", "integers")
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(outDir, "integers.data"))
	require.NoError(t, err)
	assert.Equal(t, "[1553932502,-2090749135,-287790814]", string(got))
}

func TestGenerateMissingConfigFile(t *testing.T) {
	_, err := runApp(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGenerateInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"variant", []string{"--variant", "huge"}},
		{"kind", []string{"--kind", "shorts"}},
		{"count", []string{"--count", "-1"}},
		{"protocol", []string{"--protocol", "udp"}},
		{"header", []string{"--header", "novalue"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--out-dir", t.TempDir()}, tt.args...)
			_, err := runApp(t, append(args, "generate")...)
			assert.Error(t, err)
		})
	}
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	_, err := runApp(t, "--out-dir", dir, "generate")
	require.NoError(t, err)

	out, err := runApp(t, "--out-dir", dir, "verify")
	require.NoError(t, err)
	assert.Equal(t, 8, strings.Count(out, "ok"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "longs.data"), []byte("[1,2]"), 0o644))
	out, err = runApp(t, "--out-dir", dir, "verify")
	require.Error(t, err)
	var failed errVerifyFailed
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, 1, failed.failed)
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "6674089274190705457")
}

func TestList(t *testing.T) {
	out, err := runApp(t, "--variant", "basic", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	assert.Contains(t, out, "bounded_integers.data")
	assert.Contains(t, lines[0], "integers")
}

func TestStream(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"integers", []string{"--kind", "integers", "--number", "3"}, "1553932502\n-2090749135\n-287790814\n"},
		{"bytes", []string{"--kind", "bytes", "--number", "5"}, "-42\n32\n-97\n92\n49\n"},
		{"booleans throttled", []string{"--kind", "booleans", "--number", "2", "--rate", "1000"}, "false\ntrue\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runApp(t, append([]string{"--seed", "12345", "stream"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestStream_InvalidArgs(t *testing.T) {
	_, err := runApp(t, "stream", "--kind", "shorts", "--number", "1")
	assert.Error(t, err)
	_, err = runApp(t, "stream", "--number", "1", "--rate", "-1")
	assert.Error(t, err)
}

func TestSlime(t *testing.T) {
	out, err := runApp(t, "slime", "--world-seed", "12345", "--x=-3", "--z", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "slime chunk")
	assert.NotContains(t, out, "not a")

	out, err = runApp(t, "slime", "--world-seed", "12345", "--x", "0", "--z", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "not a slime chunk")

	out, err = runApp(t, "slime", "--world-seed", "12345", "--radius", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "-5,2\n")
	assert.Contains(t, out, "13")
}

func TestSlime_GridEdges(t *testing.T) {
	out, err := runApp(t, "slime", "--x", "2147483646", "--radius", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "slime chunks")

	tests := []struct {
		name string
		args []string
	}{
		{"square leaves the grid", []string{"--x", "2147483647", "--radius", "1"}},
		{"x beyond int32", []string{"--x", "3000000000"}},
		{"z beyond int32", []string{"--z=-3000000000"}},
		{"radius beyond int32", []string{"--radius", "4294967296"}},
		{"negative radius", []string{"--radius=-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, append([]string{"slime"}, tt.args...)...)
			assert.Error(t, err)
		})
	}
}

func TestDefaultActionSucceedsWhenEveryWriteFails(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	t.Setenv("OUT_DIR", filepath.Join(blocker, "generated"))

	out, err := runApp(t)
	require.NoError(t, err)
	assert.Equal(t, 8, strings.Count(out, "skipped"))
	assert.NotContains(t, out, "wrote")
}
