// Package config implements SPEC_FULL.md's layered configuration: compiled-in
// defaults, overridden by a project's .cloneradar.toml, overridden by
// CLONERADAR_-prefixed environment variables, overridden by explicit CLI
// flags. Precedence is enforced by Load (mergeConfigs overlays the project
// file, then ApplyViper applies only the keys v.IsSet reports and records
// each one on FlagTracker), not by viper's own merge order, since viper
// treats "flag has its zero value" the same as "flag was never set".
package config

import (
	"fmt"
	"io"

	"github.com/cloneradar/cloneradar/internal/constants"
)

// Config is the unified clone-detection configuration, the in-process
// counterpart of domain.Request before paths are resolved to files.
type Config struct {
	Input     InputConfig     `mapstructure:"input" toml:"input" yaml:"input" json:"input"`
	Analysis  AnalysisConfig  `mapstructure:"analysis" toml:"analysis" yaml:"analysis" json:"analysis"`
	Filtering FilteringConfig `mapstructure:"filtering" toml:"filtering" yaml:"filtering" json:"filtering"`
	Output    OutputConfig    `mapstructure:"output" toml:"output" yaml:"output" json:"output"`
	Grouping  GroupingConfig  `mapstructure:"grouping" toml:"grouping" yaml:"grouping" json:"grouping"`
	LSH       LSHConfig       `mapstructure:"lsh" toml:"lsh" yaml:"lsh" json:"lsh"`
}

// InputConfig holds file-selection settings (internal/discovery.Options is
// built from this plus internal/langprofile's known languages).
type InputConfig struct {
	Paths           []string `mapstructure:"paths" toml:"paths" yaml:"paths" json:"paths"`
	Recursive       bool     `mapstructure:"recursive" toml:"recursive" yaml:"recursive" json:"recursive"`
	IncludePatterns []string `mapstructure:"include_patterns" toml:"include_patterns" yaml:"include_patterns" json:"include_patterns"`
	ExcludePatterns []string `mapstructure:"exclude_patterns" toml:"exclude_patterns" yaml:"exclude_patterns" json:"exclude_patterns"`
	Languages       []string `mapstructure:"languages" toml:"languages" yaml:"languages" json:"languages"`
	ProfilePath     string   `mapstructure:"profile_path" toml:"profile_path" yaml:"profile_path" json:"profile_path"`
}

// AnalysisConfig holds fragment-extraction floors and comparison knobs
// (spec.md §4.1, §4.2-§4.6).
type AnalysisConfig struct {
	MinLines            int     `mapstructure:"min_lines" toml:"min_lines" yaml:"min_lines" json:"min_lines"`
	MinNodes            int     `mapstructure:"min_nodes" toml:"min_nodes" yaml:"min_nodes" json:"min_nodes"`
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" toml:"similarity_threshold" yaml:"similarity_threshold" json:"similarity_threshold"`
	RenameCost          float64 `mapstructure:"rename_cost" toml:"rename_cost" yaml:"rename_cost" json:"rename_cost"`
	DisableSizePenalty  bool    `mapstructure:"disable_size_penalty" toml:"disable_size_penalty" yaml:"disable_size_penalty" json:"disable_size_penalty"`
	CrossFile           bool    `mapstructure:"cross_file" toml:"cross_file" yaml:"cross_file" json:"cross_file"`
	SkipTestLike        bool    `mapstructure:"skip_test_like" toml:"skip_test_like" yaml:"skip_test_like" json:"skip_test_like"`
}

// FilteringConfig holds the identifier/body-text substring filters spec.md
// §6 exposes as --filter-function / --filter-function-body.
type FilteringConfig struct {
	FilterIdentifier string `mapstructure:"filter_identifier" toml:"filter_identifier" yaml:"filter_identifier" json:"filter_identifier"`
	FilterBodyText   string `mapstructure:"filter_body_text" toml:"filter_body_text" yaml:"filter_body_text" json:"filter_body_text"`
}

// OutputConfig holds report formatting settings.
type OutputConfig struct {
	Format      string    `mapstructure:"format" toml:"format" yaml:"format" json:"format"`
	ShowContent bool      `mapstructure:"show_content" toml:"show_content" yaml:"show_content" json:"show_content"`
	SortBy      string    `mapstructure:"sort_by" toml:"sort_by" yaml:"sort_by" json:"sort_by"`
	Writer      io.Writer `mapstructure:"-" toml:"-" yaml:"-" json:"-"`
}

// GroupingConfig holds clone-group formation settings (SPEC_FULL.md restricts
// grouping strategy to "connected" and "k-core" only).
type GroupingConfig struct {
	Enabled   bool    `mapstructure:"enabled" toml:"enabled" yaml:"enabled" json:"enabled"`
	Mode      string  `mapstructure:"mode" toml:"mode" yaml:"mode" json:"mode"`
	Threshold float64 `mapstructure:"threshold" toml:"threshold" yaml:"threshold" json:"threshold"`
	KCoreK    int     `mapstructure:"k_core_k" toml:"k_core_k" yaml:"k_core_k" json:"k_core_k"`
}

// LSHConfig holds the fingerprint-prefilter's acceleration knob. The
// orchestrator treats this as a single disable switch mirroring
// domain.Request.DisableLSH.
type LSHConfig struct {
	Disabled bool `mapstructure:"disabled" toml:"disabled" yaml:"disabled" json:"disabled"`
}

// DefaultConfig returns the same defaults domain.DefaultRequest documents,
// split into sections.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Paths:           []string{"."},
			Recursive:       true,
			IncludePatterns: []string{"**/*"},
			ExcludePatterns: []string{"**/.git/**", "**/node_modules/**", "**/vendor/**"},
			Languages:       []string{"go", "python", "javascript", "css"},
		},
		Analysis: AnalysisConfig{
			MinLines:            constants.DefaultCloneMinLines,
			MinNodes:            constants.DefaultCloneMinNodes,
			SimilarityThreshold: 0.85,
			RenameCost:          0.3,
			CrossFile:           true,
		},
		Filtering: FilteringConfig{},
		Output: OutputConfig{
			Format: "text",
			SortBy: "priority",
		},
		Grouping: GroupingConfig{
			Enabled:   false,
			Mode:      "connected",
			Threshold: 0.85,
			KCoreK:    2,
		},
		LSH: LSHConfig{},
	}
}

// Validate checks the configuration for the errors domain.Request.Validate
// also rejects, plus the grouping-mode restriction this package adds.
func (c *Config) Validate() error {
	if err := c.Input.Validate(); err != nil {
		return fmt.Errorf("input config invalid: %w", err)
	}
	if err := c.Analysis.Validate(); err != nil {
		return fmt.Errorf("analysis config invalid: %w", err)
	}
	if err := c.Filtering.Validate(); err != nil {
		return fmt.Errorf("filtering config invalid: %w", err)
	}
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output config invalid: %w", err)
	}
	if err := c.Grouping.Validate(); err != nil {
		return fmt.Errorf("grouping config invalid: %w", err)
	}
	return nil
}

func (i *InputConfig) Validate() error {
	if len(i.Paths) == 0 {
		return fmt.Errorf("paths cannot be empty")
	}
	return nil
}

func (a *AnalysisConfig) Validate() error {
	if a.MinLines < 1 {
		return fmt.Errorf("min_lines must be >= 1, got %d", a.MinLines)
	}
	if a.MinNodes < 1 {
		return fmt.Errorf("min_nodes must be >= 1, got %d", a.MinNodes)
	}
	if a.SimilarityThreshold < 0.0 || a.SimilarityThreshold > 1.0 {
		return fmt.Errorf("similarity_threshold must be between 0.0 and 1.0, got %f", a.SimilarityThreshold)
	}
	if a.RenameCost < 0.0 {
		return fmt.Errorf("rename_cost must be >= 0.0, got %f", a.RenameCost)
	}
	return nil
}

func (f *FilteringConfig) Validate() error {
	return nil
}

func (o *OutputConfig) Validate() error {
	validFormats := []string{"text", "json", "yaml", "csv", "html"}
	valid := false
	for _, format := range validFormats {
		if o.Format == format {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("format must be one of %v, got %s", validFormats, o.Format)
	}

	validSortBy := []string{"priority", "similarity", "size", "location"}
	valid = false
	for _, sort := range validSortBy {
		if o.SortBy == sort {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("sort_by must be one of %v, got %s", validSortBy, o.SortBy)
	}
	return nil
}

func (g *GroupingConfig) Validate() error {
	if !g.Enabled {
		return nil
	}
	validModes := []string{"connected", "k-core"}
	valid := false
	for _, mode := range validModes {
		if g.Mode == mode {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("grouping mode must be one of %v, got %s", validModes, g.Mode)
	}
	if g.Threshold < 0.0 || g.Threshold > 1.0 {
		return fmt.Errorf("grouping threshold must be between 0.0 and 1.0, got %f", g.Threshold)
	}
	if g.Mode == "k-core" && g.KCoreK < 1 {
		return fmt.Errorf("k_core_k must be >= 1, got %d", g.KCoreK)
	}
	return nil
}
