package service

import (
	"github.com/cloneradar/cloneradar/domain"
	"github.com/cloneradar/cloneradar/internal/config"
)

// ConfigurationLoaderImpl implements domain.ConfigurationLoader on top of
// internal/config's layered loader (defaults, .cloneradar.toml, CLONERADAR_
// environment, then whatever pflag.FlagSet the caller already merged in).
// cmd/cloneradar is expected to call internal/config.Load directly so it can
// pass its own *pflag.FlagSet; this type exists for callers (the mcp
// package, tests, library consumers) that only need LoadConfig's simpler
// path-to-Request shape.
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader.
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads layered configuration starting from path (a directory to
// search upward from for .cloneradar.toml) and returns it as a Request.
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.Request, error) {
	cfg, _, err := config.Load(path, nil)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}
	req := cfg.ToRequest()
	req.ConfigPath = path
	return req, nil
}

// LoadDefaultConfig returns the compiled-in defaults as a Request.
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *domain.Request {
	return config.DefaultConfig().ToRequest()
}

// MergeConfig merges override onto base: a non-zero-value field in override
// wins, otherwise base's value is kept. Callers needing precise
// explicitly-set-flag tracking (distinguishing an intentional `--group=false`
// from a flag the user never touched) should use internal/config.Load with a
// populated pflag.FlagSet instead, which merges via internal/config.FlagTracker.
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.Request, override *domain.Request) *domain.Request {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	merged := *base

	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}
	if override.Recursive {
		merged.Recursive = override.Recursive
	}
	if len(override.IncludePatterns) > 0 {
		merged.IncludePatterns = override.IncludePatterns
	}
	if len(override.ExcludePatterns) > 0 {
		merged.ExcludePatterns = override.ExcludePatterns
	}
	if len(override.Languages) > 0 {
		merged.Languages = override.Languages
	}
	if override.ProfilePath != "" {
		merged.ProfilePath = override.ProfilePath
	}

	if override.MinLines != 0 {
		merged.MinLines = override.MinLines
	}
	if override.MinNodes != 0 {
		merged.MinNodes = override.MinNodes
	}

	if override.SimilarityThreshold != 0 {
		merged.SimilarityThreshold = override.SimilarityThreshold
	}
	if override.RenameCost != 0 {
		merged.RenameCost = override.RenameCost
	}
	if override.DisableSizePenalty {
		merged.DisableSizePenalty = override.DisableSizePenalty
	}
	if override.CrossFile {
		merged.CrossFile = override.CrossFile
	}
	if override.SkipTestLike {
		merged.SkipTestLike = override.SkipTestLike
	}
	if override.FilterIdentifier != "" {
		merged.FilterIdentifier = override.FilterIdentifier
	}
	if override.FilterBodyText != "" {
		merged.FilterBodyText = override.FilterBodyText
	}

	if override.DisableLSH {
		merged.DisableLSH = override.DisableLSH
	}

	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.ShowContent {
		merged.ShowContent = override.ShowContent
	}
	if override.SortBy != "" {
		merged.SortBy = override.SortBy
	}

	if override.Group {
		merged.Group = override.Group
	}
	if override.GroupMode != "" {
		merged.GroupMode = override.GroupMode
	}
	if override.GroupThreshold != 0 {
		merged.GroupThreshold = override.GroupThreshold
	}
	if override.KCoreK != 0 {
		merged.KCoreK = override.KCoreK
	}

	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	return &merged
}
