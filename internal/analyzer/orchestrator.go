package analyzer

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/cloneradar/cloneradar/domain"
)

// Orchestrator implements spec.md §4.5's pair orchestrator: it buckets
// fragments by kind, walks every ordered pair within (or across) files,
// applies the self-overlap check, the caller's filters, the fingerprint
// prefilter and the appropriate comparator, then scores and reports.
type Orchestrator struct {
	kernel      *TSEDKernel
	structural  *StructuralComparator
	costModel   CostModel
	idGenerator int
}

// NewOrchestrator builds an orchestrator using a cost model derived from
// req.RenameCost; callers that want the label-aware StructuralCostModel
// instead of the uniform default should use NewOrchestratorWithCostModel.
func NewOrchestrator(renameCost float64) *Orchestrator {
	return NewOrchestratorWithCostModel(NewDefaultCostModel(renameCost))
}

// NewOrchestratorWithCostModel builds an orchestrator over a caller-supplied
// cost model.
func NewOrchestratorWithCostModel(costModel CostModel) *Orchestrator {
	kernel := NewTSEDKernel(costModel)
	return &Orchestrator{
		kernel:     kernel,
		structural: NewStructuralComparator(kernel),
		costModel:  costModel,
	}
}

// Run executes the full pipeline over an already-extracted fragment set and
// returns a populated Response. Run is pure with respect to its inputs: it
// never mutates a Fragment and never touches the filesystem.
func (o *Orchestrator) Run(ctx context.Context, fragments []*domain.Fragment, req *domain.Request) (*domain.Response, error) {
	start := time.Now()
	stats := domain.NewStatistics()
	stats.FragmentsExtracted = len(fragments)

	buckets := bucketByKind(fragments)

	var pairs []*domain.PairReport
	for _, bucket := range buckets {
		groups := bucketForComparison(bucket, req.CrossFile)
		for _, group := range groups {
			found, compared, err := o.comparePairsInGroup(ctx, group, req, &stats.PairsCompared)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, found...)
			_ = compared
		}
	}

	sortPairReports(pairs)
	for _, p := range pairs {
		p.ID = o.nextID()
		stats.PairsByTier[p.Tier.String()]++
	}
	stats.PairsReported = len(pairs)
	if len(pairs) > 0 {
		var sum float64
		for _, p := range pairs {
			sum += p.Similarity
		}
		stats.AverageSimilarity = sum / float64(len(pairs))
	}

	return &domain.Response{
		Pairs:      pairs,
		Statistics: stats,
		Request:    req,
		Duration:   time.Since(start).Milliseconds(),
		Success:    true,
	}, nil
}

func (o *Orchestrator) nextID() int {
	o.idGenerator++
	return o.idGenerator
}

// bucketByKind groups fragments by their syntactic kind; only fragments of
// the same kind are ever compared (spec.md §4.5 step 1).
func bucketByKind(fragments []*domain.Fragment) map[domain.FragmentKind][]*domain.Fragment {
	buckets := make(map[domain.FragmentKind][]*domain.Fragment)
	for _, f := range fragments {
		buckets[f.Kind] = append(buckets[f.Kind], f)
	}
	return buckets
}

// bucketForComparison further splits a kind bucket by file (within-file
// mode) or returns it as a single group (cross-file mode), per spec.md
// §4.5 step 2.
func bucketForComparison(fragments []*domain.Fragment, crossFile bool) [][]*domain.Fragment {
	if crossFile {
		return [][]*domain.Fragment{fragments}
	}
	byFile := make(map[string][]*domain.Fragment)
	var order []string
	for _, f := range fragments {
		path := f.Location.FilePath
		if _, ok := byFile[path]; !ok {
			order = append(order, path)
		}
		byFile[path] = append(byFile[path], f)
	}
	groups := make([][]*domain.Fragment, 0, len(order))
	for _, path := range order {
		groups = append(groups, byFile[path])
	}
	return groups
}

// comparePairsInGroup walks every unordered pair once within group (spec.md
// §4.5 step 3 runs ordered pairs a!=b, but since similarity/comparators here
// are symmetric the orchestrator only ever computes and emits one report
// per unordered pair — fragment_a/fragment_b are then assigned by location
// order, satisfying §3's pair ordering invariant without duplicate work).
func (o *Orchestrator) comparePairsInGroup(ctx context.Context, group []*domain.Fragment, req *domain.Request, comparedCount *int) ([]*domain.PairReport, int, error) {
	var reports []*domain.PairReport
	compared := 0

	evaluate := func(i, j int) (*domain.PairReport, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		a, b := group[i], group[j]

		if a.Location.Overlaps(b.Location) {
			return nil, nil
		}
		if !o.passesFilters(a, b, req) {
			return nil, nil
		}
		if !o.passesPrefilter(a, b, req.SimilarityThreshold) {
			return nil, nil
		}

		compared++
		*comparedCount++

		similarity, distance := o.compare(a, b)
		adjusted := AdjustedSimilarity(similarity, a.SourceSize, b.SourceSize, !req.DisableSizePenalty)
		if adjusted < req.SimilarityThreshold {
			return nil, nil
		}

		return buildPairReport(a, b, adjusted, distance), nil
	}

	if shouldUseLSH(req, len(group)) {
		for _, pair := range lshCandidatePairs(group) {
			report, err := evaluate(pair[0], pair[1])
			if err != nil {
				return reports, compared, err
			}
			if report != nil {
				reports = append(reports, report)
			}
		}
		return reports, compared, nil
	}

	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			report, err := evaluate(i, j)
			if err != nil {
				return reports, compared, err
			}
			if report != nil {
				reports = append(reports, report)
			}
		}
	}

	return reports, compared, nil
}

// passesFilters applies spec.md §4.5's optional filters: test-skip,
// inheritance, name-substring, body-substring.
func (o *Orchestrator) passesFilters(a, b *domain.Fragment, req *domain.Request) bool {
	if req.SkipTestLike && (a.IsTestLike || b.IsTestLike) {
		return false
	}
	if req.FilterIdentifier != "" {
		if !strings.Contains(a.Identifier, req.FilterIdentifier) && !strings.Contains(b.Identifier, req.FilterIdentifier) {
			return false
		}
	}
	if req.FilterBodyText != "" {
		if !strings.Contains(a.Content, req.FilterBodyText) && !strings.Contains(b.Content, req.FilterBodyText) {
			return false
		}
	}
	return true
}

// passesPrefilter runs spec.md §4.2's fingerprint prefilter when both
// fragments carry one.
func (o *Orchestrator) passesPrefilter(a, b *domain.Fragment, tau float64) bool {
	fpA, okA := a.Fingerprint.(*Fingerprint)
	fpB, okB := b.Fingerprint.(*Fingerprint)
	if !okA || !okB || fpA == nil || fpB == nil {
		return true
	}
	return fpA.MayExceedThreshold(fpB, tau)
}

// compare dispatches to the TSED kernel for ordered fragments or the
// multiset structural comparator for unordered ones (spec.md §4.5 step 3's
// "comparator (§4.3 or §4.4)"). A pair whose larger tree exceeds
// domain.DefaultKernelNodeCeiling is skipped outright (spec.md §7, "kernel
// overflow") rather than run through APTED's O(n^3) worst case.
func (o *Orchestrator) compare(a, b *domain.Fragment) (similarity, distance float64) {
	treeA, treeB := treeOf(a), treeOf(b)
	if treeA == nil || treeB == nil {
		return 0, 0
	}
	if sizeOf(treeA) > domain.DefaultKernelNodeCeiling || sizeOf(treeB) > domain.DefaultKernelNodeCeiling {
		return 0, 0
	}
	if a.Unordered && b.Unordered {
		return o.structural.Compare(treeA, treeB), 0
	}
	detail := o.kernel.ComputeDetailed(treeA, treeB)
	return detail.Similarity, detail.Distance
}

// buildPairReport assembles a PairReport with fragment_a/fragment_b
// assigned by location order (spec.md §3) and the tier label and priority
// computed from the adjusted similarity.
func buildPairReport(x, y *domain.Fragment, similarity, distance float64) *domain.PairReport {
	a, b := x, y
	if !a.Location.Less(b.Location) {
		a, b = b, a
	}
	overlap := overlapLines(a.Location, b.Location)
	return &domain.PairReport{
		FragmentA:    a,
		FragmentB:    b,
		Similarity:   similarity,
		Distance:     distance,
		Priority:     Priority(a.Location.LineCount(), similarity),
		OverlapLines: overlap,
		Tier:         domain.ClassifyTier(similarity),
	}
}

func overlapLines(a, b *domain.Location) int {
	if a.FilePath != b.FilePath {
		return 0
	}
	start := a.StartLine
	if b.StartLine > start {
		start = b.StartLine
	}
	end := a.EndLine
	if b.EndLine < end {
		end = b.EndLine
	}
	if end < start {
		return 0
	}
	return end - start + 1
}

// sortPairReports applies spec.md §4.5's ordering guarantee: grouped by
// fragment_a's file, sorted within a file by descending priority, ties
// broken by ascending fragment_a.line_start.
func sortPairReports(pairs []*domain.PairReport) {
	sort.SliceStable(pairs, func(i, j int) bool {
		pi, pj := pairs[i], pairs[j]
		if pi.FragmentA.Location.FilePath != pj.FragmentA.Location.FilePath {
			return pi.FragmentA.Location.FilePath < pj.FragmentA.Location.FilePath
		}
		if pi.Priority != pj.Priority {
			return pi.Priority > pj.Priority
		}
		return pi.FragmentA.Location.StartLine < pj.FragmentA.Location.StartLine
	})
}
