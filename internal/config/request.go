package config

import (
	"github.com/cloneradar/cloneradar/domain"
)

// ToRequest converts a fully-merged Config into the domain.Request the
// engine actually runs against. GroupMode/GroupThreshold/KCoreK are only
// meaningful when Grouping.Enabled, but are copied regardless — an
// orchestrator that never looks at them when Group is false pays nothing for
// it, and a caller flipping Group on later doesn't need to repopulate them.
func (c *Config) ToRequest() *domain.Request {
	return &domain.Request{
		Paths:           c.Input.Paths,
		Recursive:       c.Input.Recursive,
		IncludePatterns: c.Input.IncludePatterns,
		ExcludePatterns: c.Input.ExcludePatterns,
		Languages:       c.Input.Languages,
		ProfilePath:     c.Input.ProfilePath,

		MinLines: c.Analysis.MinLines,
		MinNodes: c.Analysis.MinNodes,

		SimilarityThreshold: c.Analysis.SimilarityThreshold,
		RenameCost:          c.Analysis.RenameCost,
		DisableSizePenalty:  c.Analysis.DisableSizePenalty,
		CrossFile:           c.Analysis.CrossFile,
		SkipTestLike:        c.Analysis.SkipTestLike,
		FilterIdentifier:    c.Filtering.FilterIdentifier,
		FilterBodyText:      c.Filtering.FilterBodyText,

		DisableLSH: c.LSH.Disabled,

		OutputFormat: domain.OutputFormat(c.Output.Format),
		OutputWriter: c.Output.Writer,
		ShowContent:  c.Output.ShowContent,
		SortBy:       domain.SortCriteria(c.Output.SortBy),

		Group:          c.Grouping.Enabled,
		GroupMode:      c.Grouping.Mode,
		GroupThreshold: c.Grouping.Threshold,
		KCoreK:         c.Grouping.KCoreK,
	}
}

// FromRequest builds a Config from an already-populated domain.Request, the
// inverse of ToRequest. Its only caller is this package's round-trip test.
func FromRequest(r *domain.Request) *Config {
	return &Config{
		Input: InputConfig{
			Paths:           r.Paths,
			Recursive:       r.Recursive,
			IncludePatterns: r.IncludePatterns,
			ExcludePatterns: r.ExcludePatterns,
			Languages:       r.Languages,
			ProfilePath:     r.ProfilePath,
		},
		Analysis: AnalysisConfig{
			MinLines:            r.MinLines,
			MinNodes:            r.MinNodes,
			SimilarityThreshold: r.SimilarityThreshold,
			RenameCost:          r.RenameCost,
			DisableSizePenalty:  r.DisableSizePenalty,
			CrossFile:           r.CrossFile,
			SkipTestLike:        r.SkipTestLike,
		},
		Filtering: FilteringConfig{
			FilterIdentifier: r.FilterIdentifier,
			FilterBodyText:   r.FilterBodyText,
		},
		Output: OutputConfig{
			Format:      string(r.OutputFormat),
			ShowContent: r.ShowContent,
			SortBy:      string(r.SortBy),
			Writer:      r.OutputWriter,
		},
		Grouping: GroupingConfig{
			Enabled:   r.Group,
			Mode:      r.GroupMode,
			Threshold: r.GroupThreshold,
			KCoreK:    r.KCoreK,
		},
		LSH: LSHConfig{
			Disabled: r.DisableLSH,
		},
	}
}
