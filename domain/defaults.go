package domain

// Clone-tier thresholds live in internal/constants (ClassifyTier in report.go
// consumes them); this file holds the LSH and performance defaults that are
// purely domain-layer concerns.

// ============================================================================
// LSH (Locality-Sensitive Hashing) acceleration defaults
// ============================================================================

const (
	// DefaultLSHAutoThreshold is the fragment-count threshold past which the
	// orchestrator consults the LSH candidate index ahead of the fingerprint
	// prefilter (SPEC_FULL.md §3.5).
	DefaultLSHAutoThreshold = 2000

	// DefaultLSHBands is the number of bands in the LSH banding scheme.
	DefaultLSHBands = 32

	// DefaultLSHRows is the number of rows per band.
	DefaultLSHRows = 4

	// DefaultLSHHashes is the total number of MinHash functions (bands*rows).
	DefaultLSHHashes = DefaultLSHBands * DefaultLSHRows
)

// ============================================================================
// Performance defaults
// ============================================================================

const (
	// DefaultMaxGoroutines bounds the parsing/comparison worker pool.
	DefaultMaxGoroutines = 4

	// DefaultTimeoutSeconds is the default run timeout.
	DefaultTimeoutSeconds = 300

	// DefaultKernelNodeCeiling is the safety ceiling past which a tree is
	// skipped rather than compared (spec.md §7, "kernel overflow").
	DefaultKernelNodeCeiling = 10000
)
