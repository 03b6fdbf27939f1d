package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// configFileName is the project config file TomlConfigLoader searches for,
// walking from a starting directory up to the filesystem root.
const configFileName = ".cloneradar.toml"

// embeddedTable lets a project that already keeps a shared multi-tool TOML
// file embed cloneradar's settings under a [tool.cloneradar] table, the same
// convention other Go project-config tools use for their own [tool.*] table
// inside pyproject.toml. It is read from the same file as the flat
// top-level fields and, when present, overrides them.
type embeddedTable struct {
	Tool struct {
		Cloneradar *Config `toml:"cloneradar"`
	} `toml:"tool"`
}

// TomlConfigLoader locates and parses .cloneradar.toml, merging it onto
// DefaultConfig.
type TomlConfigLoader struct{}

// NewTomlConfigLoader builds a loader with no state of its own; it exists so
// callers can inject a mock in tests without touching the package-level
// functions.
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig searches startDir and its ancestors for .cloneradar.toml and
// returns the merged result. A missing file is not an error — it yields
// DefaultConfig unchanged, since the CLI flags and environment are always
// free to supply everything a run needs.
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, error) {
	path, err := FindConfigFile(startDir)
	if err != nil {
		return DefaultConfig(), nil
	}
	return l.loadFromFile(path)
}

func (l *TomlConfigLoader) loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	merged := DefaultConfig()
	var flat Config
	if err := toml.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	mergeConfigs(merged, &flat)

	var embedded embeddedTable
	if err := toml.Unmarshal(data, &embedded); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	if embedded.Tool.Cloneradar != nil {
		mergeConfigs(merged, embedded.Tool.Cloneradar)
	}

	return merged, nil
}

// FindConfigFile walks from startDir up to the filesystem root looking for
// .cloneradar.toml.
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, configFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// mergeConfigs overlays override onto base, only replacing a field when
// override carries a non-zero value for it. Boolean fields (Recursive,
// CrossFile, SkipTestLike, and so on) are never merged here: go-toml decodes
// an absent bool the same as an explicit "false", so a .cloneradar.toml that
// never mentions cross_file would otherwise silently flip it off. Those
// fields are left to the CLI flag / environment layer, which tracks explicit
// sets via FlagTracker and viper.IsSet and so can tell "false" from "never
// set" correctly.
func mergeConfigs(base, override *Config) {
	if len(override.Input.Paths) > 0 {
		base.Input.Paths = override.Input.Paths
	}
	if len(override.Input.IncludePatterns) > 0 {
		base.Input.IncludePatterns = override.Input.IncludePatterns
	}
	if len(override.Input.ExcludePatterns) > 0 {
		base.Input.ExcludePatterns = override.Input.ExcludePatterns
	}
	if len(override.Input.Languages) > 0 {
		base.Input.Languages = override.Input.Languages
	}
	if override.Input.ProfilePath != "" {
		base.Input.ProfilePath = override.Input.ProfilePath
	}

	if override.Analysis.MinLines > 0 {
		base.Analysis.MinLines = override.Analysis.MinLines
	}
	if override.Analysis.MinNodes > 0 {
		base.Analysis.MinNodes = override.Analysis.MinNodes
	}
	if override.Analysis.SimilarityThreshold > 0 {
		base.Analysis.SimilarityThreshold = override.Analysis.SimilarityThreshold
	}
	if override.Analysis.RenameCost > 0 {
		base.Analysis.RenameCost = override.Analysis.RenameCost
	}

	if override.Filtering.FilterIdentifier != "" {
		base.Filtering.FilterIdentifier = override.Filtering.FilterIdentifier
	}
	if override.Filtering.FilterBodyText != "" {
		base.Filtering.FilterBodyText = override.Filtering.FilterBodyText
	}

	if override.Output.Format != "" {
		base.Output.Format = override.Output.Format
	}
	if override.Output.SortBy != "" {
		base.Output.SortBy = override.Output.SortBy
	}

	if override.Grouping.Mode != "" {
		base.Grouping.Mode = override.Grouping.Mode
	}
	if override.Grouping.Threshold > 0 {
		base.Grouping.Threshold = override.Grouping.Threshold
	}
	if override.Grouping.KCoreK > 0 {
		base.Grouping.KCoreK = override.Grouping.KCoreK
	}
}
