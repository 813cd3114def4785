package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir is a stand-in for t.Chdir, which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultPattern, cfg.Pattern)
	assert.Equal(t, DefaultStaleMargin, cfg.StaleMarginMs)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.False(t, cfg.Strict)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
pattern: "reports/**/*.html"
stale_margin_ms: 5000
strict: true
workers: 4
entities:
  eacute: "\u00e9"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "reports/**/*.html", cfg.Pattern)
	assert.Equal(t, 5000, cfg.StaleMarginMs)
	assert.True(t, cfg.Strict)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "\u00e9", cfg.Entities["eacute"])
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("pattern: [oops"), 0o644))
	chdir(t, dir)

	_, err := Load()
	assert.Error(t, err)
}
