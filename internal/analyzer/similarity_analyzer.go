package analyzer

import "github.com/cloneradar/cloneradar/domain"

// SimilarityAnalyzer is implemented by each of the engine's comparators
// (textual, syntactic, structural). Each clone tier is associated with one.
type SimilarityAnalyzer interface {
	// ComputeSimilarity returns a similarity score in [0,1].
	ComputeSimilarity(f1, f2 *domain.Fragment) float64

	// ComputeDistance returns a distance score (0.0 for identical, higher
	// for more different); not every analyzer makes this meaningful.
	ComputeDistance(f1, f2 *domain.Fragment) float64

	// GetName identifies this analyzer for diagnostics.
	GetName() string
}

// CloneClassifier cascades the engine's three ordered-fragment comparators
// from cheapest to most expensive — textual (Type-1) before syntactic
// (Type-2) before structural (Type-3/4) — stopping as soon as a tier's
// threshold is met, so the TSED kernel is only invoked when the cheap
// checks fail to classify a pair (spec.md §4.5 step 4: "each pair falling
// through cheaper checks runs the TSED kernel once").
type CloneClassifier struct {
	textualAnalyzer    SimilarityAnalyzer
	syntacticAnalyzer  SimilarityAnalyzer
	structuralAnalyzer SimilarityAnalyzer

	thresholds domain.ThresholdSet

	enableTextualAnalysis bool
}

// CloneClassifierConfig configures a CloneClassifier.
type CloneClassifierConfig struct {
	Thresholds            domain.ThresholdSet
	EnableTextualAnalysis bool
	RenameCost            float64
}

// NewCloneClassifier builds a classifier wired to this package's three
// comparators.
func NewCloneClassifier(config *CloneClassifierConfig) *CloneClassifier {
	classifier := &CloneClassifier{
		thresholds:            config.Thresholds,
		enableTextualAnalysis: config.EnableTextualAnalysis,
	}

	if config.EnableTextualAnalysis {
		classifier.textualAnalyzer = NewTextualSimilarityAnalyzer()
	}
	classifier.syntacticAnalyzer = NewSyntacticSimilarityAnalyzer(config.RenameCost)
	classifier.structuralAnalyzer = NewStructuralSimilarityAnalyzer(config.RenameCost)

	return classifier
}

// ClassificationResult holds the result of cascading clone classification.
type ClassificationResult struct {
	Tier       domain.Tier
	Similarity float64
	Confidence float64
	Analyzer   string
}

// ClassifyClone cascades Type-1 through Type-3 comparators, returning the
// first tier whose threshold the pair clears, or nil if the pair clears
// none of them.
func (c *CloneClassifier) ClassifyClone(f1, f2 *domain.Fragment) *ClassificationResult {
	if f1 == nil || f2 == nil {
		return nil
	}

	if c.textualAnalyzer != nil && c.enableTextualAnalysis {
		sim := c.textualAnalyzer.ComputeSimilarity(f1, f2)
		if sim >= c.thresholds.Type1 {
			return &ClassificationResult{Tier: domain.Tier1, Similarity: sim, Confidence: 1.0, Analyzer: c.textualAnalyzer.GetName()}
		}
	}

	if c.syntacticAnalyzer != nil {
		sim := c.syntacticAnalyzer.ComputeSimilarity(f1, f2)
		if sim >= c.thresholds.Type2 {
			return &ClassificationResult{Tier: domain.Tier2, Similarity: sim, Confidence: 0.95, Analyzer: c.syntacticAnalyzer.GetName()}
		}
	}

	var structuralSim float64
	if c.structuralAnalyzer != nil {
		structuralSim = c.structuralAnalyzer.ComputeSimilarity(f1, f2)
		if structuralSim >= c.thresholds.Type3 {
			return &ClassificationResult{Tier: domain.Tier3, Similarity: structuralSim, Confidence: 0.9, Analyzer: c.structuralAnalyzer.GetName()}
		}
		if structuralSim >= c.thresholds.Type4 {
			return &ClassificationResult{Tier: domain.Tier4, Similarity: structuralSim, Confidence: 0.8, Analyzer: c.structuralAnalyzer.GetName()}
		}
	}

	return nil
}

// SetTextualAnalyzer overrides the textual analyzer (for testing).
func (c *CloneClassifier) SetTextualAnalyzer(analyzer SimilarityAnalyzer) { c.textualAnalyzer = analyzer }

// SetSyntacticAnalyzer overrides the syntactic analyzer (for testing).
func (c *CloneClassifier) SetSyntacticAnalyzer(analyzer SimilarityAnalyzer) {
	c.syntacticAnalyzer = analyzer
}

// SetStructuralAnalyzer overrides the structural analyzer (for testing).
func (c *CloneClassifier) SetStructuralAnalyzer(analyzer SimilarityAnalyzer) {
	c.structuralAnalyzer = analyzer
}
