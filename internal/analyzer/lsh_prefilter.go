package analyzer

import (
	"strconv"

	"github.com/cloneradar/cloneradar/domain"
)

// shouldUseLSH reports whether lshCandidatePairs should narrow a comparison
// group down to index pairs an LSH index judges plausible, ahead of the exact
// fingerprint prefilter and kernel comparison (SPEC_FULL.md §3.5). It is only worth the MinHash
// signature overhead once a group is large enough that the full O(n^2) scan
// would dominate; below domain.DefaultLSHAutoThreshold fragments,
// shouldUseLSH returns false and the orchestrator falls back to the full
// cross product unchanged.
func shouldUseLSH(req *domain.Request, groupSize int) bool {
	return !req.DisableLSH && groupSize >= domain.DefaultLSHAutoThreshold
}

// lshCandidatePairs returns the (i, j) index pairs, i<j, that share at least
// one LSH band over group's fragments. A fragment without a canonical tree,
// with no extractable features, or whose signature the index rejects, is
// paired against every other fragment in the group instead of being silently
// dropped. Two indexed fragments that share no band are not paired.
func lshCandidatePairs(group []*domain.Fragment) [][2]int {
	extractor := NewASTFeatureExtractor()
	hasher := NewMinHasherWithSeed(domain.DefaultLSHHashes, 0)
	index := NewLSHIndex(LSHConfig{Bands: domain.DefaultLSHBands, Rows: domain.DefaultLSHRows})

	signatures := make([]*MinHashSignature, len(group))
	fallback := make([]int, 0)

	for i, f := range group {
		tree := treeOf(f)
		if tree == nil {
			fallback = append(fallback, i)
			continue
		}
		features, err := extractor.ExtractFeatures(tree)
		if err != nil || len(features) == 0 {
			fallback = append(fallback, i)
			continue
		}
		sig := hasher.ComputeSignature(features)
		signatures[i] = sig
		if err := index.AddFragment(strconv.Itoa(i), sig); err != nil {
			fallback = append(fallback, i)
		}
	}

	seen := make(map[[2]int]bool)
	var pairs [][2]int
	addPair := func(i, j int) {
		if i == j {
			return
		}
		if i > j {
			i, j = j, i
		}
		key := [2]int{i, j}
		if !seen[key] {
			seen[key] = true
			pairs = append(pairs, key)
		}
	}

	for i, sig := range signatures {
		if sig == nil {
			continue
		}
		for _, idStr := range index.FindCandidates(sig) {
			j, err := strconv.Atoi(idStr)
			if err != nil {
				continue
			}
			addPair(i, j)
		}
	}

	// Fragments LSH couldn't index are compared against the whole group so
	// indexing failure degrades to brute force for them, not silent omission.
	for _, i := range fallback {
		for j := range group {
			addPair(i, j)
		}
	}

	return pairs
}
