package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
document:
  page_size: Letter
  strict: true
  palette:
    accent: "#112233"
server:
  read_timeout: 5s
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Letter", cfg.Document.PageSize)
	assert.True(t, cfg.Document.Strict)
	assert.Equal(t, "#112233", cfg.Document.Palette["accent"])
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	// untouched fields keep their defaults
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.Progress.Driver)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("document:\n  page_size: B7\n"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("document: [\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "A4", cfg.Document.PageSize)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	cfg.ApplyEnv(env(map[string]string{
		"ROADMAP_PAGE_SIZE":       "A5",
		"ROADMAP_DEBUG":           "true",
		"ROADMAP_PROGRESS_DRIVER": "redis",
		"REDIS_ADDR":              "cache:6380",
		"REDIS_DB":                "2",
		"DATABASE_URL":            "postgres://u@db/roadmap",
		"ROADMAP_STRICT":          "not-a-bool",
	}))
	assert.Equal(t, "A5", cfg.Document.PageSize)
	assert.True(t, cfg.Debug)
	assert.False(t, cfg.Document.Strict)
	assert.Equal(t, "redis", cfg.Progress.Driver)
	assert.Equal(t, "cache:6380", cfg.Progress.RedisAddr)
	assert.Equal(t, 2, cfg.Progress.RedisDB)
	require.NoError(t, cfg.Validate())

	opts := cfg.ProgressOptions(nil)
	assert.Equal(t, "redis", opts.Driver)
	assert.Equal(t, "postgres://u@db/roadmap", opts.DatabaseURL)
}

func TestValidate_DriverRequirements(t *testing.T) {
	cfg := Default()
	cfg.Progress.Driver = "postgres"
	assert.True(t, errors.Is(cfg.Validate(), ErrInvalid))

	cfg.Progress.DatabaseURL = "postgres://localhost/roadmap"
	assert.NoError(t, cfg.Validate())

	cfg.Progress.Driver = "sqlite"
	assert.Error(t, cfg.Validate())
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Document.Logo = "logo.png"
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "logo.png", got.Document.Logo)
}
