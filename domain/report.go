package domain

import (
	"fmt"
	"io"

	"github.com/cloneradar/cloneradar/internal/constants"
)

// Tier buckets a similarity score into the standard four-tier clone
// taxonomy (Type-1 through Type-4). It is a supplemented, informative-only
// label (SPEC_FULL.md §3.5) that never gates emission — the single
// threshold τ does.
type Tier int

const (
	// TierNone means the pair did not qualify for any tier (below Tier4).
	TierNone Tier = iota
	// Tier1 - near-identical fragments (whitespace/comments only).
	Tier1
	// Tier2 - syntactically identical modulo renamed identifiers/literals.
	Tier2
	// Tier3 - near-miss: same shape with local modifications.
	Tier3
	// Tier4 - structurally distant but still above τ; loosest tier.
	Tier4
)

// String returns the conventional clone-type label for a tier.
func (t Tier) String() string {
	switch t {
	case Tier1:
		return "Type-1"
	case Tier2:
		return "Type-2"
	case Tier3:
		return "Type-3"
	case Tier4:
		return "Type-4"
	default:
		return "none"
	}
}

// ClassifyTier buckets a similarity score using the package's four default
// thresholds. It never rejects a pair; a score below Tier4's threshold still
// returns TierNone while the pair itself may still be emitted if it cleared
// the caller's own τ.
func ClassifyTier(similarity float64) Tier {
	switch {
	case similarity >= constants.DefaultType1CloneThreshold:
		return Tier1
	case similarity >= constants.DefaultType2CloneThreshold:
		return Tier2
	case similarity >= constants.DefaultType3CloneThreshold:
		return Tier3
	case similarity >= constants.DefaultType4CloneThreshold:
		return Tier4
	default:
		return TierNone
	}
}

// ThresholdSet bundles the four tier thresholds for callers (the analyzer's
// CloneClassifier) that need to pass them around as a value rather than
// reaching into internal/constants directly.
type ThresholdSet struct {
	Type1 float64
	Type2 float64
	Type3 float64
	Type4 float64
}

// DefaultThresholdSet returns the package's default tier thresholds.
func DefaultThresholdSet() ThresholdSet {
	return ThresholdSet{
		Type1: constants.DefaultType1CloneThreshold,
		Type2: constants.DefaultType2CloneThreshold,
		Type3: constants.DefaultType3CloneThreshold,
		Type4: constants.DefaultType4CloneThreshold,
	}
}

// PairReport is the engine's unit of output: two fragments, their similarity
// and priority, and the tier label. fragment_a.location always sorts before
// fragment_b.location (spec.md §3).
type PairReport struct {
	ID           int       `json:"id" yaml:"id" csv:"id"`
	FragmentA    *Fragment `json:"fragment_a" yaml:"fragment_a" csv:"fragment_a"`
	FragmentB    *Fragment `json:"fragment_b" yaml:"fragment_b" csv:"fragment_b"`
	Similarity   float64   `json:"similarity" yaml:"similarity" csv:"similarity"`
	Distance     float64   `json:"distance" yaml:"distance" csv:"distance"`
	Priority     float64   `json:"priority" yaml:"priority" csv:"priority"`
	OverlapLines int       `json:"overlap_lines" yaml:"overlap_lines" csv:"overlap_lines"`
	Tier         Tier      `json:"tier" yaml:"tier" csv:"tier"`
}

// String renders a short diagnostic form of the pair.
func (p *PairReport) String() string {
	return fmt.Sprintf("%s pair: %s <-> %s (similarity=%.3f, priority=%.1f)",
		p.Tier, p.FragmentA.Location, p.FragmentB.Location, p.Similarity, p.Priority)
}

// Group is an optional, consumer-side collection of transitively-related
// pairs (SPEC_FULL.md §3.4 — grouping lives in service, not the engine).
type Group struct {
	ID         int         `json:"id" yaml:"id" csv:"id"`
	Fragments  []*Fragment `json:"fragments" yaml:"fragments" csv:"fragments"`
	Similarity float64     `json:"similarity" yaml:"similarity" csv:"similarity"`
}

// Statistics summarizes a run.
type Statistics struct {
	FragmentsExtracted int            `json:"fragments_extracted" yaml:"fragments_extracted" csv:"fragments_extracted"`
	PairsCompared      int            `json:"pairs_compared" yaml:"pairs_compared" csv:"pairs_compared"`
	PairsReported      int            `json:"pairs_reported" yaml:"pairs_reported" csv:"pairs_reported"`
	PairsByTier        map[string]int `json:"pairs_by_tier" yaml:"pairs_by_tier" csv:"pairs_by_tier"`
	AverageSimilarity  float64        `json:"average_similarity" yaml:"average_similarity" csv:"average_similarity"`
	FilesAnalyzed      int            `json:"files_analyzed" yaml:"files_analyzed" csv:"files_analyzed"`
	FilesSkipped       int            `json:"files_skipped" yaml:"files_skipped" csv:"files_skipped"`
}

// NewStatistics returns a zero-value Statistics with its map initialized.
func NewStatistics() *Statistics {
	return &Statistics{PairsByTier: make(map[string]int)}
}

// Request bundles the engine's options for a single run: input selection,
// thresholds, filters and output shape (spec.md §6 CLI surface).
type Request struct {
	// Input
	Paths           []string `json:"paths"`
	Recursive       bool     `json:"recursive"`
	IncludePatterns []string `json:"include_patterns"`
	ExcludePatterns []string `json:"exclude_patterns"`
	Languages       []string `json:"languages"`
	ProfilePath     string   `json:"profile_path"`

	// Extraction floors (spec.md §4.1)
	MinLines int `json:"min_lines"`
	MinNodes int `json:"min_tokens"`

	// Comparison (spec.md §4.2-4.6)
	SimilarityThreshold float64 `json:"similarity_threshold"`
	RenameCost          float64 `json:"rename_cost"`
	DisableSizePenalty  bool    `json:"disable_size_penalty"`
	CrossFile           bool    `json:"cross_file"`
	SkipTestLike        bool    `json:"skip_test_like"`
	FilterIdentifier    string  `json:"filter_function"`
	FilterBodyText      string  `json:"filter_function_body"`

	// Acceleration (SPEC_FULL.md §3.5)
	DisableLSH bool `json:"disable_lsh"`

	// Output
	OutputFormat OutputFormat `json:"output_format"`
	OutputWriter io.Writer    `json:"-"`
	ShowContent  bool         `json:"show_content"`
	SortBy       SortCriteria `json:"sort_by"`
	Group          bool    `json:"group"`
	GroupMode      string  `json:"group_mode"`
	GroupThreshold float64 `json:"group_threshold"`
	KCoreK         int     `json:"k_core_k"`

	ConfigPath string `json:"config_path"`
}

// Response is the result of a run.
type Response struct {
	Pairs      []*PairReport `json:"pairs" yaml:"pairs" csv:"pairs"`
	Groups     []*Group      `json:"groups,omitempty" yaml:"groups,omitempty" csv:"-"`
	Statistics *Statistics   `json:"statistics" yaml:"statistics" csv:"statistics"`

	Request  *Request `json:"request,omitempty" yaml:"request,omitempty" csv:"-"`
	Duration int64    `json:"duration_ms" yaml:"duration_ms" csv:"duration_ms"`
	Success  bool     `json:"success" yaml:"success" csv:"success"`
	Error    string   `json:"error,omitempty" yaml:"error,omitempty" csv:"error"`
}

// Validate checks a Request for the configuration errors spec.md §7 requires
// to be fatal with exit code 2.
func (r *Request) Validate() error {
	if len(r.Paths) == 0 {
		return NewValidationError("paths cannot be empty")
	}
	if r.MinLines < 1 {
		return NewValidationError("min_lines must be >= 1")
	}
	if r.MinNodes < 1 {
		return NewValidationError("min_tokens must be >= 1")
	}
	if r.SimilarityThreshold < 0.0 || r.SimilarityThreshold > 1.0 {
		return NewValidationError("similarity_threshold must be between 0.0 and 1.0")
	}
	if r.RenameCost < 0.0 {
		return NewValidationError("rename_cost must be >= 0.0")
	}
	return nil
}

// DefaultRequest returns spec.md's documented defaults.
func DefaultRequest() *Request {
	return &Request{
		Paths:               []string{"."},
		Recursive:           true,
		IncludePatterns:     []string{"**/*"},
		ExcludePatterns:     []string{"**/.git/**", "**/node_modules/**", "**/vendor/**"},
		Languages:           []string{"go", "python", "javascript", "css"},
		MinLines:            constants.DefaultCloneMinLines,
		MinNodes:            constants.DefaultCloneMinNodes,
		SimilarityThreshold: 0.85,
		RenameCost:          0.3,
		CrossFile:           true,
		OutputFormat:        OutputFormatText,
		SortBy:              SortByPriority,
		Group:               false,
		GroupMode:           "connected",
		GroupThreshold:      0.85,
		KCoreK:              2,
	}
}
