package analyzer

import "sort"

// StructuralComparator computes weighted-Jaccard similarity over the
// top-level members of two "unordered" fragments — type declarations and
// CSS rule blocks — per spec.md §4.4. Ordered fragments (functions) always
// go through the TSED kernel directly; this comparator is only consulted
// when domain.Fragment.Unordered is set on both sides.
type StructuralComparator struct {
	kernel *TSEDKernel

	// MemberThreshold is τ_member (spec.md §4.4, suggested 0.5): a member
	// with no partner scoring at least this high counts only against the
	// denominator, not the numerator.
	MemberThreshold float64
}

// NewStructuralComparator builds a comparator using the given kernel (the
// same kernel instance — and so the same cost model — that compares whole
// fragments elsewhere) and spec.md's suggested member threshold.
func NewStructuralComparator(kernel *TSEDKernel) *StructuralComparator {
	return &StructuralComparator{kernel: kernel, MemberThreshold: 0.5}
}

// candidatePair is one scored (A member, B member) edge considered for the
// one-to-one matching in Compare.
type candidatePair struct {
	a, b  *CanonicalNode
	score float64
}

// Compare computes the weighted-Jaccard similarity of a.Children against
// b.Children, per spec.md §4.4's formula:
//
//	sim = Σ min(weight(mᵢ), weight(m'ⱼ))·match(mᵢ,m'ⱼ) / Σ weight(mᵢ ∪ m'ⱼ)
//
// weight defaults to a member's node count. The matching is a single
// global greedy maximum-weight one-to-one assignment over every scored
// (A member, B member) pair — built once from the symmetric set of pair
// scores rather than independently per side — so Compare(a, b) and
// Compare(b, a) always agree. A matched pair's union weight is
// max(weight(mᵢ), weight(m'ⱼ)); an unmatched member on either side counts
// its own weight toward the denominator only. Members without a partner
// at or above MemberThreshold are left unmatched.
func (c *StructuralComparator) Compare(a, b *CanonicalNode) float64 {
	if a == nil || b == nil {
		return 0
	}
	if len(a.Children) == 0 && len(b.Children) == 0 {
		return 1.0
	}

	pairs := c.scorePairs(a.Children, b.Children)
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].score > pairs[j].score })

	usedA := make(map[*CanonicalNode]bool, len(a.Children))
	usedB := make(map[*CanonicalNode]bool, len(b.Children))
	var numerator, denominator float64

	for _, p := range pairs {
		if p.score < c.MemberThreshold {
			break
		}
		if usedA[p.a] || usedB[p.b] {
			continue
		}
		usedA[p.a] = true
		usedB[p.b] = true
		wa, wb := memberWeight(p.a), memberWeight(p.b)
		numerator += min(wa, wb) * p.score
		denominator += max(wa, wb)
	}

	for _, m := range a.Children {
		if !usedA[m] {
			denominator += memberWeight(m)
		}
	}
	for _, m := range b.Children {
		if !usedB[m] {
			denominator += memberWeight(m)
		}
	}

	if denominator == 0 {
		return 1.0
	}
	return numerator / denominator
}

// scorePairs computes the TSED score for every same-label (A member, B
// member) combination. The result is symmetric in (members, candidates):
// scoring is independent of which side is passed first.
func (c *StructuralComparator) scorePairs(members, candidates []*CanonicalNode) []candidatePair {
	pairs := make([]candidatePair, 0, len(members))
	for _, m := range members {
		for _, cand := range candidates {
			if m.Label != cand.Label {
				continue
			}
			pairs = append(pairs, candidatePair{a: m, b: cand, score: c.kernel.TSED(m, cand)})
		}
	}
	return pairs
}

// memberWeight defaults to the member's node count, per spec.md §4.4;
// derive/annotation attribute members get a fixed small weight since
// spec.md §4.1 treats them as regular members but calls out that they
// should not dominate the comparison the way a large method body would.
func memberWeight(node *CanonicalNode) float64 {
	if node == nil {
		return 0
	}
	if isBoilerplateLabel(node.Label) {
		return 1.0
	}
	return float64(node.Size())
}
