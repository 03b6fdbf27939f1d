package analyzer

import (
	"testing"

	"github.com/cloneradar/cloneradar/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClassifier(enableTextual bool) *CloneClassifier {
	return NewCloneClassifier(&CloneClassifierConfig{
		Thresholds:            domain.DefaultThresholdSet(),
		EnableTextualAnalysis: enableTextual,
		RenameCost:            0.3,
	})
}

func fragmentWithTree(content string, tree *CanonicalNode) *domain.Fragment {
	return &domain.Fragment{
		Content:       content,
		CanonicalTree: tree,
		SourceSize:    tree.Size(),
	}
}

func TestCloneClassifier_NilFragmentsReturnNil(t *testing.T) {
	c := newClassifier(true)
	assert.Nil(t, c.ClassifyClone(nil, nil))
}

func TestCloneClassifier_IdenticalTextIsType1(t *testing.T) {
	c := newClassifier(true)

	tree := NewCanonicalNode(1, "FunctionDecl")
	f1 := fragmentWithTree("func add(a, b int) int {\n\treturn a + b\n}\n", tree)
	f2 := fragmentWithTree("func add(a, b int) int {\n\treturn a + b\n}\n", tree)

	result := c.ClassifyClone(f1, f2)
	require.NotNil(t, result)
	assert.Equal(t, domain.Tier1, result.Tier)
	assert.Equal(t, "textual", result.Analyzer)
}

func TestCloneClassifier_SkipsTextualWhenDisabled(t *testing.T) {
	c := newClassifier(false)

	tree := NewCanonicalNode(1, "FunctionDecl")
	f1 := fragmentWithTree("func add(a, b int) int {\n\treturn a + b\n}\n", tree)
	f2 := fragmentWithTree("func add(a, b int) int {\n\treturn a + b\n}\n", tree)

	result := c.ClassifyClone(f1, f2)
	require.NotNil(t, result)
	assert.NotEqual(t, "textual", result.Analyzer)
}

func TestCloneClassifier_StructurallyDistantFragmentsClassifyNone(t *testing.T) {
	c := newClassifier(true)

	treeA := NewCanonicalNode(1, "FunctionDecl")
	treeA.AddChild(NewCanonicalNode(2, "Return"))

	treeB := NewCanonicalNode(1, "TypeDecl")
	treeB.AddChild(NewCanonicalNode(2, "Field:x"))
	treeB.AddChild(NewCanonicalNode(3, "Field:y"))
	treeB.AddChild(NewCanonicalNode(4, "Field:z"))

	f1 := fragmentWithTree("func noop() {\n\treturn\n}\n", treeA)
	f2 := fragmentWithTree("type Point struct {\n\tx, y, z int\n}\n", treeB)

	result := c.ClassifyClone(f1, f2)
	assert.Nil(t, result)
}

func TestCloneClassifier_SettersOverrideAnalyzers(t *testing.T) {
	c := newClassifier(true)

	stub := &stubAnalyzer{name: "stub", similarity: 1.0}
	c.SetTextualAnalyzer(stub)

	tree := NewCanonicalNode(1, "FunctionDecl")
	f1 := fragmentWithTree("a", tree)
	f2 := fragmentWithTree("b", tree)

	result := c.ClassifyClone(f1, f2)
	require.NotNil(t, result)
	assert.Equal(t, "stub", result.Analyzer)
	assert.Equal(t, domain.Tier1, result.Tier)
}

type stubAnalyzer struct {
	name       string
	similarity float64
}

func (s *stubAnalyzer) ComputeSimilarity(f1, f2 *domain.Fragment) float64 { return s.similarity }
func (s *stubAnalyzer) ComputeDistance(f1, f2 *domain.Fragment) float64  { return 0 }
func (s *stubAnalyzer) GetName() string                                  { return s.name }
