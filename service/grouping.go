package service

import (
	"container/list"
	"sort"

	"github.com/cloneradar/cloneradar/domain"
)

// GroupingMode selects which consumer-side grouping strategy collapses a flat
// pair list into transitively-related clusters (SPEC_FULL.md §3.4 — grouping
// is a consumer concern, never performed by internal/analyzer.Orchestrator).
type GroupingMode string

const (
	// GroupingModeConnected groups every pair transitively reachable via an
	// edge at or above the threshold (union-find), favoring recall.
	GroupingModeConnected GroupingMode = "connected"
	// GroupingModeKCore additionally requires every member to have at least
	// K similar neighbors within its component, favoring precision on large,
	// noisy result sets.
	GroupingModeKCore GroupingMode = "k-core"
)

// GroupPairs collapses pairs into domain.Group clusters using mode, dropping
// pairs below threshold from consideration as grouping edges (the caller's
// reported pairs are unaffected; grouping is purely an additional view).
func GroupPairs(pairs []*domain.PairReport, mode GroupingMode, threshold float64, kCoreK int) []*domain.Group {
	switch mode {
	case GroupingModeKCore:
		return groupByKCore(pairs, threshold, kCoreK)
	default:
		return groupByConnectedComponents(pairs, threshold)
	}
}

// GroupResponse runs GroupPairs over resp.Pairs according to req's grouping
// options and attaches the result to resp.Groups.
// It is a no-op when req.Group is false.
func GroupResponse(resp *domain.Response, req *domain.Request) {
	if resp == nil || req == nil || !req.Group {
		return
	}
	threshold := req.GroupThreshold
	if threshold <= 0 {
		threshold = req.SimilarityThreshold
	}
	resp.Groups = GroupPairs(resp.Pairs, GroupingMode(req.GroupMode), threshold, req.KCoreK)
}

// groupByConnectedComponents implements the union-find strategy: every pair
// whose similarity clears threshold is an edge; connected components with 2+
// members become a Group.
func groupByConnectedComponents(pairs []*domain.PairReport, threshold float64) []*domain.Group {
	fragments, simMap := collectFragments(pairs)
	if len(fragments) == 0 {
		return nil
	}

	parent := make(map[*domain.Fragment]*domain.Fragment, len(fragments))
	rank := make(map[*domain.Fragment]int, len(fragments))
	for _, f := range fragments {
		parent[f] = f
	}

	var find func(*domain.Fragment) *domain.Fragment
	find = func(x *domain.Fragment) *domain.Fragment {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b *domain.Fragment) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		switch {
		case rank[ra] < rank[rb]:
			parent[ra] = rb
		case rank[ra] > rank[rb]:
			parent[rb] = ra
		default:
			parent[rb] = ra
			rank[ra]++
		}
	}

	for _, p := range pairs {
		if p == nil || p.FragmentA == nil || p.FragmentB == nil {
			continue
		}
		if p.Similarity >= threshold {
			union(p.FragmentA, p.FragmentB)
		}
	}

	components := make(map[*domain.Fragment][]*domain.Fragment)
	for _, f := range fragments {
		root := find(f)
		components[root] = append(components[root], f)
	}

	return buildGroups(components, simMap)
}

// groupByKCore peels nodes whose degree in the threshold-filtered adjacency
// graph falls below k, then takes connected components of what remains.
func groupByKCore(pairs []*domain.PairReport, threshold float64, k int) []*domain.Group {
	if k < 2 {
		k = 2
	}

	fragments, simMap := collectFragments(pairs)
	if len(fragments) == 0 {
		return nil
	}

	adj := make(map[*domain.Fragment]map[*domain.Fragment]float64, len(fragments))
	for _, f := range fragments {
		adj[f] = make(map[*domain.Fragment]float64)
	}
	for _, p := range pairs {
		if p == nil || p.FragmentA == nil || p.FragmentB == nil {
			continue
		}
		if p.Similarity >= threshold {
			adj[p.FragmentA][p.FragmentB] = p.Similarity
			adj[p.FragmentB][p.FragmentA] = p.Similarity
		}
	}

	degree := make(map[*domain.Fragment]int, len(fragments))
	for n, nbrs := range adj {
		degree[n] = len(nbrs)
	}

	queue := list.New()
	queued := make(map[*domain.Fragment]bool)
	for n, d := range degree {
		if d < k {
			queue.PushBack(n)
			queued[n] = true
		}
	}

	removed := make(map[*domain.Fragment]bool)
	for queue.Len() > 0 {
		front := queue.Front()
		queue.Remove(front)
		v := front.Value.(*domain.Fragment)
		if removed[v] {
			continue
		}
		removed[v] = true
		for u := range adj[v] {
			if removed[u] {
				continue
			}
			degree[u]--
			delete(adj[u], v)
			if degree[u] < k && !queued[u] {
				queue.PushBack(u)
				queued[u] = true
			}
		}
		delete(adj, v)
	}

	sort.Slice(fragments, func(i, j int) bool { return fragmentLess(fragments[i], fragments[j]) })

	components := make(map[*domain.Fragment][]*domain.Fragment)
	visited := make(map[*domain.Fragment]bool)
	for _, start := range fragments {
		if removed[start] || visited[start] || adj[start] == nil {
			continue
		}
		stack := []*domain.Fragment{start}
		visited[start] = true
		var members []*domain.Fragment
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			members = append(members, v)
			for u := range adj[v] {
				if !removed[u] && !visited[u] {
					visited[u] = true
					stack = append(stack, u)
				}
			}
		}
		components[start] = members
	}

	return buildGroups(components, simMap)
}

// collectFragments gathers the distinct fragments referenced by pairs and a
// fragment-pair-key → best-observed-similarity cache used to score groups.
func collectFragments(pairs []*domain.PairReport) ([]*domain.Fragment, map[string]float64) {
	seen := make(map[*domain.Fragment]struct{})
	var fragments []*domain.Fragment
	simMap := make(map[string]float64)

	for _, p := range pairs {
		if p == nil || p.FragmentA == nil || p.FragmentB == nil {
			continue
		}
		if _, ok := seen[p.FragmentA]; !ok {
			seen[p.FragmentA] = struct{}{}
			fragments = append(fragments, p.FragmentA)
		}
		if _, ok := seen[p.FragmentB]; !ok {
			seen[p.FragmentB] = struct{}{}
			fragments = append(fragments, p.FragmentB)
		}
		key := pairKey(p.FragmentA, p.FragmentB)
		if old, ok := simMap[key]; !ok || p.Similarity > old {
			simMap[key] = p.Similarity
		}
	}
	return fragments, simMap
}

// buildGroups converts component membership into sorted, scored
// domain.Group values, dropping singleton components.
func buildGroups(components map[*domain.Fragment][]*domain.Fragment, simMap map[string]float64) []*domain.Group {
	var groups []*domain.Group
	groupID := 0
	for _, members := range components {
		if len(members) < 2 {
			continue
		}
		sort.Slice(members, func(i, j int) bool { return fragmentLess(members[i], members[j]) })
		groupID++
		groups = append(groups, &domain.Group{
			ID:         groupID,
			Fragments:  members,
			Similarity: averageGroupSimilarity(simMap, members),
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Similarity != groups[j].Similarity {
			return groups[i].Similarity > groups[j].Similarity
		}
		if len(groups[i].Fragments) != len(groups[j].Fragments) {
			return len(groups[i].Fragments) > len(groups[j].Fragments)
		}
		if len(groups[i].Fragments) == 0 || len(groups[j].Fragments) == 0 {
			return false
		}
		return fragmentLess(groups[i].Fragments[0], groups[j].Fragments[0])
	})

	// Renumber after sorting so group IDs reflect final report order.
	for i, g := range groups {
		g.ID = i + 1
	}

	return groups
}

// averageGroupSimilarity averages the cached pairwise similarity across every
// within-group edge observed in simMap; pairs never directly compared
// (members joined only transitively, in either grouping mode) simply don't
// contribute.
func averageGroupSimilarity(simMap map[string]float64, members []*domain.Fragment) float64 {
	var sum float64
	var count int
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			if sim, ok := simMap[pairKey(members[i], members[j])]; ok {
				sum += sim
				count++
			}
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// pairKey builds an order-independent cache key for two fragments from their
// locations (Location.String()), not from pointer identity.
func pairKey(a, b *domain.Fragment) string {
	if fragmentLess(a, b) {
		return fragmentKeyPart(a) + "|" + fragmentKeyPart(b)
	}
	return fragmentKeyPart(b) + "|" + fragmentKeyPart(a)
}

func fragmentKeyPart(f *domain.Fragment) string {
	if f == nil || f.Location == nil {
		return ""
	}
	return f.Location.String()
}

// fragmentLess orders two fragments by location, matching the ordering
// PairReport.FragmentA/FragmentB already respects.
func fragmentLess(a, b *domain.Fragment) bool {
	if a == nil || b == nil {
		return a != nil
	}
	if a.Location == nil || b.Location == nil {
		return a.Location != nil
	}
	return a.Location.Less(b.Location)
}
