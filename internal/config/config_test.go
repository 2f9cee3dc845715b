package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[gbif]
base_url = "http://localhost:9999/v1"
limit = 5000

[batch]
concurrency = 4

[aggregation]
skip_keyless_groups = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/v1", cfg.GBIF.BaseURL)
	assert.Equal(t, MaxLimit, cfg.GBIF.Limit, "limit is capped")
	assert.Equal(t, 60, cfg.GBIF.TimeoutSeconds)
	assert.Equal(t, 4, cfg.Batch.Concurrency)
	assert.True(t, cfg.Aggregation.SkipKeylessGroups)
	assert.Equal(t, "GBIF Reconciliation Service", cfg.Service.Name)
	assert.Equal(t, 700, cfg.Service.PreviewWidth)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[gbif\nbase_url = "), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GBIF_BASE_URL", "http://gbif.test/v1")
	t.Setenv("BATCH_CONCURRENCY", "0")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "http://gbif.test/v1", cfg.GBIF.BaseURL)
	assert.Equal(t, 1, cfg.Batch.Concurrency)
}
