package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree(labels ...string) *CanonicalNode {
	root := NewCanonicalNode(0, "Root")
	for i, l := range labels {
		root.AddChild(NewCanonicalNode(i+1, l))
	}
	return root
}

func TestNewFingerprint_NilTree(t *testing.T) {
	fp := NewFingerprint(nil)
	require.NotNil(t, fp)
	assert.Equal(t, 0, fp.NodeCount)
	assert.Equal(t, 0, fp.PopCount())
}

func TestNewFingerprint_NodeCountMatchesSize(t *testing.T) {
	tree := buildTree("A", "B", "C")
	fp := NewFingerprint(tree)
	assert.Equal(t, tree.Size(), fp.NodeCount)
	assert.Greater(t, fp.PopCount(), 0)
}

func TestNewFingerprint_IdenticalTreesHaveIdenticalBits(t *testing.T) {
	fp1 := NewFingerprint(buildTree("A", "B"))
	fp2 := NewFingerprint(buildTree("A", "B"))
	assert.Equal(t, fp1.Bits, fp2.Bits)
}

func TestNewFingerprint_DifferentTreesDifferentBits(t *testing.T) {
	fp1 := NewFingerprint(buildTree("A", "B"))
	fp2 := NewFingerprint(buildTree("X", "Y", "Z"))
	assert.NotEqual(t, fp1.Bits, fp2.Bits)
}

func TestSizeRatioThreshold(t *testing.T) {
	assert.InDelta(t, 1.0, SizeRatioThreshold(1.0, 4), 1e-9)
	assert.InDelta(t, 0.4, SizeRatioThreshold(0.85, 4), 1e-9)
	// a very low tau should clamp to 0, never go negative
	assert.Equal(t, 0.0, SizeRatioThreshold(0.0, 4))
}

func TestSizeRatioThreshold_DefaultK(t *testing.T) {
	withDefault := SizeRatioThreshold(0.85, 0)
	withExplicit := SizeRatioThreshold(0.85, 4)
	assert.Equal(t, withExplicit, withDefault)
}

func TestPassesSizeGate_SimilarSizes(t *testing.T) {
	fp1 := NewFingerprint(buildTree("A", "B", "C", "D", "E"))
	fp2 := NewFingerprint(buildTree("A", "B", "C", "D", "E"))
	assert.True(t, fp1.PassesSizeGate(fp2, 0.85))
}

func TestPassesSizeGate_VeryDifferentSizes(t *testing.T) {
	small := NewFingerprint(buildTree("A"))
	large := NewFingerprint(buildTree("A", "B", "C", "D", "E", "F", "G", "H", "I", "J"))
	assert.False(t, small.PassesSizeGate(large, 0.85))
}

func TestPassesSizeGate_NilReceiverOrOther(t *testing.T) {
	var nilFP *Fingerprint
	fp := NewFingerprint(buildTree("A"))
	assert.False(t, nilFP.PassesSizeGate(fp, 0.85))
	assert.False(t, fp.PassesSizeGate(nil, 0.85))
}

func TestJaccardLowerBound_IdenticalTrees(t *testing.T) {
	fp1 := NewFingerprint(buildTree("A", "B", "C"))
	fp2 := NewFingerprint(buildTree("A", "B", "C"))
	assert.InDelta(t, 1.0, fp1.JaccardLowerBound(fp2), 1e-9)
}

func TestJaccardLowerBound_DisjointTrees(t *testing.T) {
	fp1 := NewFingerprint(buildTree("A"))
	fp2 := NewFingerprint(buildTree("X"))
	bound := fp1.JaccardLowerBound(fp2)
	assert.Less(t, bound, 1.0)
}

func TestPassesJaccardGate(t *testing.T) {
	fp1 := NewFingerprint(buildTree("A", "B", "C"))
	fp2 := NewFingerprint(buildTree("A", "B", "C"))
	assert.True(t, fp1.PassesJaccardGate(fp2, 0.85))
}

func TestMayExceedThreshold_IdenticalTreesPass(t *testing.T) {
	fp1 := NewFingerprint(buildTree("A", "B", "C"))
	fp2 := NewFingerprint(buildTree("A", "B", "C"))
	assert.True(t, fp1.MayExceedThreshold(fp2, 0.85))
}

func TestMayExceedThreshold_WildlyDifferentSizesRejected(t *testing.T) {
	small := NewFingerprint(buildTree("A"))
	var labels []string
	for i := 0; i < 20; i++ {
		labels = append(labels, "Label")
	}
	large := NewFingerprint(buildTree(labels...))
	assert.False(t, small.MayExceedThreshold(large, 0.85))
}
