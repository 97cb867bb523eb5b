package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Note: tests using t.Setenv cannot call t.Parallel().

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("rsmeta", pflag.ContinueOnError)
	fs.String("tier", "auto", "")
	fs.String("heuristic-mode", "pattern", "")
	fs.String("format", "json", "")
	fs.Bool("indent", false, "")
	fs.BoolP("verbose", "v", false, "")
	fs.String("query", "", "")
	fs.String("sqlite", "", "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_DefaultFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".rsmeta.yaml", "tier: heuristic\nheuristic_mode: lines\nindent: true\n")

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, "heuristic", cfg.Tier)
	assert.Equal(t, "lines", cfg.HeuristicMode)
	assert.True(t, cfg.Indent)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "custom.yaml", "format: yaml\nsqlite: out.db\n")

	cfg, err := NewLoader(t.TempDir(), WithConfigFile(path)).Load()
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "out.db", cfg.SQLite)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := NewLoader(t.TempDir(), WithConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))).Load()
	assert.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".rsmeta.yaml", "tier: [unclosed\n")

	_, err := NewLoader(dir).Load()
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".rsmeta.yaml", "tier: exact\nformat: yaml\n")
	t.Setenv("RSMETA_TIER", "heuristic")
	t.Setenv("RSMETA_HEURISTIC_MODE", "lines")

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, "heuristic", cfg.Tier)
	assert.Equal(t, "lines", cfg.HeuristicMode)
	assert.Equal(t, "yaml", cfg.Format)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("RSMETA_TIER", "heuristic")
	t.Setenv("RSMETA_FORMAT", "yaml")

	fs := newFlags(t, "--tier", "exact", "-v")
	cfg, err := NewLoader(t.TempDir(), WithFlags(fs)).Load()
	require.NoError(t, err)
	assert.Equal(t, "exact", cfg.Tier)
	assert.True(t, cfg.Verbose)
	// Unset flags do not mask the environment.
	assert.Equal(t, "yaml", cfg.Format)
}

func TestLoad_UnsetFlagsKeepFileValues(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".rsmeta.yaml", "format: text\n")

	cfg, err := NewLoader(dir, WithFlags(newFlags(t))).Load()
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Format)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("RSMETA_FORMAT", "xml")

	_, err := NewLoader(t.TempDir()).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr []error
	}{
		{"defaults", func(*Config) {}, nil},
		{"heuristic lines yaml", func(c *Config) {
			c.Tier, c.HeuristicMode, c.Format = "heuristic", "lines", "yaml"
		}, nil},
		{"bad tier", func(c *Config) { c.Tier = "fast" }, []error{ErrInvalidTier}},
		{"bad mode", func(c *Config) { c.HeuristicMode = "regex" }, []error{ErrInvalidMode}},
		{"bad format", func(c *Config) { c.Format = "xml" }, []error{ErrInvalidFormat}},
		{"several", func(c *Config) {
			c.Tier, c.Format = "fast", "xml"
		}, []error{ErrInvalidTier, ErrInvalidFormat}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}
