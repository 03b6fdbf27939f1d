package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedConfig_MergesOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, "pyproject.toml", `
[tool.cloneradar.analysis]
min_lines = 7
similarity_threshold = 0.7

[tool.cloneradar.grouping]
mode = "connected"
`)

	cfg, err := LoadEmbeddedConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Analysis.MinLines)
	assert.Equal(t, 0.7, cfg.Analysis.SimilarityThreshold)
	assert.Equal(t, "connected", cfg.Grouping.Mode)
	// Untouched sections keep their defaults.
	assert.Equal(t, DefaultConfig().Input.Paths, cfg.Input.Paths)
}

func TestLoadEmbeddedConfig_IgnoresUnrelatedToolTables(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, "pyproject.toml", `
[tool.black]
line-length = 88
`)

	cfg, err := LoadEmbeddedConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadEmbeddedConfig_NonexistentPathYieldsDefaults(t *testing.T) {
	cfg, err := LoadEmbeddedConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
