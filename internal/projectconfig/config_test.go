package projectconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".parley.yaml"), []byte(content), 0o644))
}

func TestLoadNoFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultNotebooksDir, cfg.Paths.Notebooks)
	assert.Equal(t, DefaultBaseURL, cfg.Gateway.BaseURL)
	assert.Equal(t, DefaultModel, cfg.Gateway.Model)
	assert.Equal(t, DefaultTurnMaxTokens, cfg.Gateway.TurnMaxTokens)
	assert.Equal(t, DefaultReflectionMaxTokens, cfg.Gateway.ReflectionMaxTokens)
	assert.InDelta(t, DefaultTemperature, cfg.Gateway.Temperature, 1e-9)
	assert.Equal(t, DefaultNotebookThreshold, cfg.Notebook.Threshold)
	require.NotNil(t, cfg.Notebook.Retries)
	assert.Equal(t, DefaultRefreshRetries, *cfg.Notebook.Retries)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
gateway:
  model: gpt-4o
  turn_max_tokens: 300
notebook:
  threshold: 6
server:
  port: 8080
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.Gateway.Model)
	assert.Equal(t, 300, cfg.Gateway.TurnMaxTokens)
	assert.Equal(t, 6, cfg.Notebook.Threshold)
	assert.Equal(t, 8080, cfg.Server.Port)

	// Unset fields keep defaults.
	assert.Equal(t, DefaultBaseURL, cfg.Gateway.BaseURL)
	assert.Equal(t, DefaultReflectionMaxTokens, cfg.Gateway.ReflectionMaxTokens)
	assert.Equal(t, DefaultNotebooksDir, cfg.Paths.Notebooks)
}

func TestLoadRetriesZeroIsRespected(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
notebook:
  retries: 0
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg.Notebook.Retries)
	assert.Zero(t, *cfg.Notebook.Retries, "an explicit zero disables retries rather than falling back to the default")
}

func TestLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "server:\n  port: 9999\n")
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := Load(nested)
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
}

func TestLoadNearestFileWins(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "server:\n  port: 1111\n")
	nested := filepath.Join(root, "sub")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	writeConfig(t, nested, "server:\n  port: 2222\n")

	cfg, err := Load(nested)
	require.NoError(t, err)
	assert.Equal(t, 2222, cfg.Server.Port)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "gateway: [not a mapping")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".parley.yaml")
}
