package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestConfig_Validate_RejectsEmptyPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Input.Paths = nil
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_RejectsOutOfRangeSimilarityThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Analysis.SimilarityThreshold = 1.5
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_RejectsNegativeRenameCost(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Analysis.RenameCost = -0.1
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_RejectsUnknownFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_RejectsUnknownSortBy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.SortBy = "alphabetical"
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_IgnoresGroupingWhenDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grouping.Enabled = false
	cfg.Grouping.Mode = "nonsense"
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_RejectsUnknownGroupingModeWhenEnabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grouping.Enabled = true
	cfg.Grouping.Mode = "star"
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_RejectsKCoreModeWithoutK(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grouping.Enabled = true
	cfg.Grouping.Mode = "k-core"
	cfg.Grouping.KCoreK = 0
	assert.Error(t, cfg.Validate())
}
