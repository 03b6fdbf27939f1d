package analyzer

import "github.com/cloneradar/cloneradar/domain"

// SyntacticSimilarityAnalyzer computes similarity using the TSED kernel over
// a StructuralCostModel configured to ignore identifier/literal differences —
// the Type-2 "renamed" comparator (spec.md §4.3, §8 scenario 2).
type SyntacticSimilarityAnalyzer struct {
	kernel *TSEDKernel
}

// NewSyntacticSimilarityAnalyzer builds an analyzer that ignores both
// literal and identifier differences.
func NewSyntacticSimilarityAnalyzer(renameCost float64) *SyntacticSimilarityAnalyzer {
	return NewSyntacticSimilarityAnalyzerWithOptions(renameCost, true, true)
}

// NewSyntacticSimilarityAnalyzerWithOptions builds an analyzer with
// configurable identifier/literal normalization.
func NewSyntacticSimilarityAnalyzerWithOptions(renameCost float64, ignoreLiterals, ignoreIdentifiers bool) *SyntacticSimilarityAnalyzer {
	costModel := NewStructuralCostModel(renameCost, ignoreLiterals, ignoreIdentifiers)
	return &SyntacticSimilarityAnalyzer{kernel: NewTSEDKernel(costModel)}
}

// ComputeSimilarity computes the syntactic similarity between two fragments,
// ignoring identifier/literal value differences, focusing on structure.
func (s *SyntacticSimilarityAnalyzer) ComputeSimilarity(f1, f2 *domain.Fragment) float64 {
	a, b := treeOf(f1), treeOf(f2)
	if a == nil || b == nil {
		return 0.0
	}
	return s.kernel.TSED(a, b)
}

// ComputeDistance computes the syntactic edit distance between two fragments.
func (s *SyntacticSimilarityAnalyzer) ComputeDistance(f1, f2 *domain.Fragment) float64 {
	a, b := treeOf(f1), treeOf(f2)
	if a == nil || b == nil {
		return 0.0
	}
	return s.kernel.ComputeDistance(a, b)
}

// GetName identifies this comparator for diagnostics.
func (s *SyntacticSimilarityAnalyzer) GetName() string {
	return "syntactic"
}

// GetKernel returns the underlying TSED kernel for advanced use.
func (s *SyntacticSimilarityAnalyzer) GetKernel() *TSEDKernel {
	return s.kernel
}
