package analyzer

import (
	"testing"

	"github.com/cloneradar/cloneradar/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildFragment wraps a CanonicalNode tree in a domain.Fragment the way the
// extractor would, so TFIDFCalculator can be exercised without a real parser.
func buildFragment(id int, file string, tree *CanonicalNode) *domain.Fragment {
	return &domain.Fragment{
		ID:            id,
		Kind:          domain.FunctionFragment,
		Identifier:    tree.Label,
		Language:      "go",
		Location:      &domain.Location{FilePath: file, StartLine: 1, EndLine: tree.Size()},
		SourceSize:    tree.Size(),
		CanonicalTree: tree,
	}
}

// boilerplateTree builds a FunctionDecl with a shared decorator-like prefix
// (common to every fragment) plus one distinguishing child label, standing
// in for the "shared boilerplate, different domain label" scenario TF-IDF is
// meant to down-weight.
func boilerplateTree(domainLabel string) *CanonicalNode {
	root := NewCanonicalNode(1, "FunctionDecl")
	root.AddChild(NewCanonicalNode(2, "Annotation:dataclass"))
	root.AddChild(NewCanonicalNode(3, "Param:username"))
	root.AddChild(NewCanonicalNode(4, "Param:email"))
	root.AddChild(NewCanonicalNode(5, domainLabel))
	return root
}

func TestTFIDFIntegration_DownweightsSharedBoilerplate(t *testing.T) {
	treeA := boilerplateTree("Identifier:UserProfile")
	treeB := boilerplateTree("Identifier:ProductEntry")

	fragA := buildFragment(1, "test1.go", treeA)
	fragB := buildFragment(2, "test2.go", treeB)

	calc := NewTFIDFCalculator()
	calc.ComputeIDF([]*domain.Fragment{fragA, fragB})
	require.Equal(t, 2, calc.TotalDocuments)

	extractor := NewASTFeatureExtractor()
	featuresA, err := extractor.ExtractFeatures(treeA)
	require.NoError(t, err)
	featuresB, err := extractor.ExtractFeatures(treeB)
	require.NoError(t, err)

	weighted := CosineSimilarity(calc.ToWeightedVector(featuresA), calc.ToWeightedVector(featuresB))

	plainA := make(map[string]float64)
	for _, f := range featuresA {
		plainA[f]++
	}
	plainB := make(map[string]float64)
	for _, f := range featuresB {
		plainB[f]++
	}
	unweighted := CosineSimilarity(plainA, plainB)

	assert.NotEqual(t, unweighted, weighted, "TF-IDF weighting should shift cosine similarity away from plain term-frequency")
}

func TestTFIDF_TrueClones_HighSimilarity(t *testing.T) {
	// Structurally identical trees modulo a renamed identifier leaf.
	build := func(name string) *CanonicalNode {
		root := NewCanonicalNode(1, "FunctionDecl")
		forNode := NewCanonicalNode(2, "For")
		ident := NewCanonicalNode(3, "Identifier:"+name)
		forNode.AddChild(ident)
		root.AddChild(forNode)
		root.AddChild(NewCanonicalNode(4, "Return"))
		return root
	}

	treeA := build("total")
	treeB := build("sum_all")

	fragA := buildFragment(1, "test1.go", treeA)
	fragB := buildFragment(2, "test2.go", treeB)

	calc := NewTFIDFCalculator()
	calc.ComputeIDF([]*domain.Fragment{fragA, fragB})

	extractor := NewASTFeatureExtractor()
	featuresA, err := extractor.ExtractFeatures(treeA)
	require.NoError(t, err)
	featuresB, err := extractor.ExtractFeatures(treeB)
	require.NoError(t, err)

	similarity := CosineSimilarity(calc.ToWeightedVector(featuresA), calc.ToWeightedVector(featuresB))
	assert.Greater(t, similarity, 0.8, "structurally identical trees should score highly similar under TF-IDF cosine")
}

func TestTFIDF_PartialSimilarity_InBounds(t *testing.T) {
	treeA := NewCanonicalNode(1, "FunctionDecl")
	loopA := NewCanonicalNode(2, "For")
	ifA := NewCanonicalNode(3, "If")
	loopA.AddChild(ifA)
	treeA.AddChild(loopA)
	treeA.AddChild(NewCanonicalNode(4, "Return"))

	treeB := NewCanonicalNode(1, "FunctionDecl")
	loopB := NewCanonicalNode(2, "For")
	ifB := NewCanonicalNode(3, "If")
	loopB.AddChild(ifB)
	treeB.AddChild(loopB)
	treeB.AddChild(NewCanonicalNode(4, "Try"))
	treeB.AddChild(NewCanonicalNode(5, "Return"))

	fragA := buildFragment(1, "test1.go", treeA)
	fragB := buildFragment(2, "test2.go", treeB)

	calc := NewTFIDFCalculator()
	calc.ComputeIDF([]*domain.Fragment{fragA, fragB})

	extractor := NewASTFeatureExtractor()
	featuresA, err := extractor.ExtractFeatures(treeA)
	require.NoError(t, err)
	featuresB, err := extractor.ExtractFeatures(treeB)
	require.NoError(t, err)

	similarity := CosineSimilarity(calc.ToWeightedVector(featuresA), calc.ToWeightedVector(featuresB))
	assert.True(t, similarity > 0.0 && similarity < 1.0, "partially shared structure should score strictly between 0 and 1")
}

func TestTFIDF_IDF_PenalizesCommonFeatures(t *testing.T) {
	// Three documents share identical boilerplate; only the third carries an
	// extra Lambda node, so its distinguishing features have lower document
	// frequency than the shared boilerplate features.
	shared := boilerplateTree("Identifier:A")
	rare := boilerplateTree("Identifier:A")
	rare.AddChild(NewCanonicalNode(6, "Lambda"))

	fragments := []*domain.Fragment{
		buildFragment(1, "a.go", shared),
		buildFragment(2, "b.go", boilerplateTree("Identifier:A")),
		buildFragment(3, "c.go", rare),
	}
	calc := NewTFIDFCalculator()
	calc.ComputeIDF(fragments)
	require.Equal(t, 3, calc.TotalDocuments)

	extractor := NewASTFeatureExtractor()
	sharedFeatures, err := extractor.ExtractFeatures(shared)
	require.NoError(t, err)
	rareFeatures, err := extractor.ExtractFeatures(rare)
	require.NoError(t, err)

	sharedSet := make(map[string]bool, len(sharedFeatures))
	for _, f := range sharedFeatures {
		sharedSet[f] = true
	}

	var onlyInRare []string
	for _, f := range rareFeatures {
		if !sharedSet[f] {
			onlyInRare = append(onlyInRare, f)
		}
	}
	require.NotEmpty(t, onlyInRare, "the Lambda-bearing document should carry at least one feature absent from the boilerplate-only documents")

	for _, f := range onlyInRare {
		assert.Equal(t, 1, calc.DocumentFrequency[f], "a feature unique to one document should have document frequency 1")
	}
	for _, f := range sharedFeatures {
		if sharedSet[f] && calc.DocumentFrequency[f] == 3 {
			assert.LessOrEqual(t, calc.IDF(f), calc.IDF(onlyInRare[0]), "a feature common to every document must not score a higher IDF than one confined to a single document")
		}
	}
}

func TestCosineSimilarity_EmptyVectors(t *testing.T) {
	assert.Equal(t, 0.0, CosineSimilarity(map[string]float64{}, map[string]float64{"x": 1.0}))
	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
}

func TestCosineSimilarity_IdenticalVectors(t *testing.T) {
	v := map[string]float64{"a": 2.0, "b": 3.0}
	assert.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-9)
}
