package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envPrefix is the prefix cmd/cloneradar's environment variables carry,
// e.g. CLONERADAR_SIMILARITY_THRESHOLD overrides analysis.similarity_threshold.
const envPrefix = "CLONERADAR"

// flagBinding maps one pflag/viper key onto the Config field it controls.
// key uses the flag's own dashed spelling (viper.BindPFlags is keyed by flag
// name, not by the mapstructure tag), since that's what both AutomaticEnv
// and BindPFlags resolve against.
type flagBinding struct {
	key   string
	apply func(v *viper.Viper, cfg *Config)
}

var flagBindings = []flagBinding{
	{"min-lines", func(v *viper.Viper, c *Config) { c.Analysis.MinLines = v.GetInt("min-lines") }},
	{"min-nodes", func(v *viper.Viper, c *Config) { c.Analysis.MinNodes = v.GetInt("min-nodes") }},
	{"similarity-threshold", func(v *viper.Viper, c *Config) { c.Analysis.SimilarityThreshold = v.GetFloat64("similarity-threshold") }},
	{"rename-cost", func(v *viper.Viper, c *Config) { c.Analysis.RenameCost = v.GetFloat64("rename-cost") }},
	{"disable-size-penalty", func(v *viper.Viper, c *Config) { c.Analysis.DisableSizePenalty = v.GetBool("disable-size-penalty") }},
	{"cross-file", func(v *viper.Viper, c *Config) { c.Analysis.CrossFile = v.GetBool("cross-file") }},
	{"skip-test-like", func(v *viper.Viper, c *Config) { c.Analysis.SkipTestLike = v.GetBool("skip-test-like") }},
	{"filter-identifier", func(v *viper.Viper, c *Config) { c.Filtering.FilterIdentifier = v.GetString("filter-identifier") }},
	{"filter-body-text", func(v *viper.Viper, c *Config) { c.Filtering.FilterBodyText = v.GetString("filter-body-text") }},
	{"disable-lsh", func(v *viper.Viper, c *Config) { c.LSH.Disabled = v.GetBool("disable-lsh") }},
	{"format", func(v *viper.Viper, c *Config) { c.Output.Format = v.GetString("format") }},
	{"show-content", func(v *viper.Viper, c *Config) { c.Output.ShowContent = v.GetBool("show-content") }},
	{"sort-by", func(v *viper.Viper, c *Config) { c.Output.SortBy = v.GetString("sort-by") }},
	{"group", func(v *viper.Viper, c *Config) { c.Grouping.Enabled = v.GetBool("group") }},
	{"group-mode", func(v *viper.Viper, c *Config) { c.Grouping.Mode = v.GetString("group-mode") }},
	{"group-threshold", func(v *viper.Viper, c *Config) { c.Grouping.Threshold = v.GetFloat64("group-threshold") }},
	{"k-core-k", func(v *viper.Viper, c *Config) { c.Grouping.KCoreK = v.GetInt("k-core-k") }},
	{"recursive", func(v *viper.Viper, c *Config) { c.Input.Recursive = v.GetBool("recursive") }},
	{"include", func(v *viper.Viper, c *Config) { c.Input.IncludePatterns = v.GetStringSlice("include") }},
	{"exclude", func(v *viper.Viper, c *Config) { c.Input.ExcludePatterns = v.GetStringSlice("exclude") }},
	{"languages", func(v *viper.Viper, c *Config) { c.Input.Languages = v.GetStringSlice("languages") }},
	{"profile", func(v *viper.Viper, c *Config) { c.Input.ProfilePath = v.GetString("profile") }},
}

// NewViper builds a viper instance that reads CLONERADAR_-prefixed
// environment variables and, when flags is non-nil, the command's own
// pflag.FlagSet — the same layer SPEC_FULL.md's config design calls for
// between the project file and the CLI flags themselves.
func NewViper(flags *pflag.FlagSet) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if flags != nil {
		_ = v.BindPFlags(flags)
	}
	return v
}

// ApplyViper overlays onto cfg every binding viper considers "set" — either
// because the corresponding environment variable is present or because
// flags (if bound into v) were parsed with a pflag.Flag.Changed of true.
// Every key actually applied is recorded on tracker so a caller merging this
// layer with one before it (the project file) and one after it (nothing;
// this already includes flags) knows what was explicit.
func ApplyViper(v *viper.Viper, cfg *Config, tracker *FlagTracker) {
	for _, b := range flagBindings {
		if !v.IsSet(b.key) {
			continue
		}
		b.apply(v, cfg)
		if tracker != nil {
			tracker.Set(b.key)
		}
	}
}

// RegisterFlags declares every flag flagBindings knows about onto fs, using
// defaults' current values as each flag's default.
func RegisterFlags(fs *pflag.FlagSet, defaults *Config) {
	fs.Int("min-lines", defaults.Analysis.MinLines, "minimum fragment size in source lines")
	fs.Int("min-nodes", defaults.Analysis.MinNodes, "minimum fragment size in canonical tree nodes")
	fs.Float64("similarity-threshold", defaults.Analysis.SimilarityThreshold, "minimum similarity score to report a pair")
	fs.Float64("rename-cost", defaults.Analysis.RenameCost, "substitution cost for a renamed identifier or literal")
	fs.Bool("disable-size-penalty", defaults.Analysis.DisableSizePenalty, "report raw similarity without the size-ratio penalty")
	fs.Bool("cross-file", defaults.Analysis.CrossFile, "compare fragments across different files")
	fs.Bool("skip-test-like", defaults.Analysis.SkipTestLike, "exclude test-looking fragments from comparison")
	fs.String("filter-identifier", defaults.Filtering.FilterIdentifier, "only compare fragments whose identifier contains this substring")
	fs.String("filter-body-text", defaults.Filtering.FilterBodyText, "only compare fragments whose source contains this substring")
	fs.Bool("disable-lsh", defaults.LSH.Disabled, "disable the MinHash/LSH candidate prefilter")
	fs.String("format", defaults.Output.Format, "output format: text, json, yaml, csv, html")
	fs.Bool("show-content", defaults.Output.ShowContent, "include fragment source text in the report")
	fs.String("sort-by", defaults.Output.SortBy, "sort pairs by: priority, similarity, size, location")
	fs.Bool("group", defaults.Grouping.Enabled, "group overlapping clone pairs")
	fs.String("group-mode", defaults.Grouping.Mode, "grouping strategy: connected, k-core")
	fs.Float64("group-threshold", defaults.Grouping.Threshold, "minimum similarity for group membership")
	fs.Int("k-core-k", defaults.Grouping.KCoreK, "minimum neighbor count for k-core grouping")
	fs.Bool("recursive", defaults.Input.Recursive, "descend into subdirectories")
	fs.StringSlice("include", defaults.Input.IncludePatterns, "glob patterns a file must match")
	fs.StringSlice("exclude", defaults.Input.ExcludePatterns, "glob patterns that exclude a file")
	fs.StringSlice("languages", defaults.Input.Languages, "languages to scan for")
	fs.String("profile", defaults.Input.ProfilePath, "path to a JSON extraction profile overriding a built-in language profile")
}
