package analyzer

// SizePenalty computes penalty(s1,s2) = min(s1,s2)/max(s1,s2) when enabled,
// or 1 otherwise (spec.md §4.6) — a raw kernel similarity is multiplied by
// this to discourage matching a one-line fragment against a thousand-line
// one just because the smaller is a structural subset.
func SizePenalty(size1, size2 int, enabled bool) float64 {
	if !enabled {
		return 1.0
	}
	if size1 == 0 || size2 == 0 {
		return 0
	}
	minS, maxS := size1, size2
	if minS > maxS {
		minS, maxS = maxS, minS
	}
	return float64(minS) / float64(maxS)
}

// AdjustedSimilarity applies the size penalty to a raw similarity score:
// s_adj = s * penalty(s1, s2).
func AdjustedSimilarity(raw float64, size1, size2 int, penaltyEnabled bool) float64 {
	return raw * SizePenalty(size1, size2, penaltyEnabled)
}

// Priority computes priority = lines(fragment_a) * s_adj (spec.md §4.6),
// used to rank pairs for display — the more lines at stake and the higher
// the adjusted similarity, the more worth a reviewer's attention.
func Priority(fragmentALines int, adjustedSimilarity float64) float64 {
	return float64(fragmentALines) * adjustedSimilarity
}
