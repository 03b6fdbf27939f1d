package analyzer

import (
	"math"
	"sort"
)

// TSEDKernel computes the ordered tree edit distance between two
// CanonicalNode trees using an APTED-style dynamic program over key-root
// decompositions (Pawlik & Augsten), per spec.md §4.3. Distance uses an
// |A|×|B| tree-distance table and is computed exactly for every
// pair the kernel is asked to handle — the orchestrator's kernel-overflow
// ceiling (spec.md §7, domain.DefaultKernelNodeCeiling) keeps trees above
// that ceiling from ever reaching this kernel, so there is no approximate
// fallback path here to silently under- or over-report a similarity.
type TSEDKernel struct {
	costModel CostModel
}

// NewTSEDKernel creates a kernel using the given cost model.
func NewTSEDKernel(costModel CostModel) *TSEDKernel {
	return &TSEDKernel{costModel: costModel}
}

// ComputeDistance computes ted(A,B), the raw (unnormalized) tree edit
// distance, via the exact APTED dynamic program.
func (k *TSEDKernel) ComputeDistance(a, b *CanonicalNode) float64 {
	if a == nil && b == nil {
		return 0.0
	}
	if a == nil {
		return k.subtreeInsertCost(b)
	}
	if b == nil {
		return k.subtreeDeleteCost(a)
	}

	keyRoots1 := PrepareForAPTED(a)
	keyRoots2 := PrepareForAPTED(b)
	sort.Ints(keyRoots1)
	sort.Ints(keyRoots2)

	return k.apted(a, b, keyRoots1, keyRoots2)
}

// apted runs the key-root double loop and returns the tree distance.
func (k *TSEDKernel) apted(a, b *CanonicalNode, keyRoots1, keyRoots2 []int) float64 {
	nodes1 := postOrderNodes(a)
	nodes2 := postOrderNodes(b)
	size1, size2 := len(nodes1), len(nodes2)

	td := make([][]float64, size1+1)
	for i := range td {
		td[i] = make([]float64, size2+1)
	}

	for _, i := range keyRoots1 {
		for _, j := range keyRoots2 {
			k.computeForestDistance(nodes1, nodes2, i, j, td)
		}
	}

	return td[size1][size2]
}

// computeForestDistance fills the forest-distance table fd for the subtrees
// rooted at nodes1[i] and nodes2[j], writing the tree-distance entries into
// td as it goes (the standard APTED single-path DP).
func (k *TSEDKernel) computeForestDistance(nodes1, nodes2 []*CanonicalNode, i, j int, td [][]float64) {
	lmlI := nodes1[i].LeftMostLeaf
	lmlJ := nodes2[j].LeftMostLeaf

	fd := make([][]float64, i+2)
	for x := range fd {
		fd[x] = make([]float64, j+2)
	}

	for x := lmlI; x <= i; x++ {
		fd[x+1][lmlJ] = fd[x][lmlJ] + k.costModel.Delete(nodes1[x])
	}
	for y := lmlJ; y <= j; y++ {
		fd[lmlI][y+1] = fd[lmlI][y] + k.costModel.Insert(nodes2[y])
	}

	for x := lmlI; x <= i; x++ {
		for y := lmlJ; y <= j; y++ {
			lmlX := nodes1[x].LeftMostLeaf
			lmlY := nodes2[y].LeftMostLeaf

			deleteCost := fd[x][y+1] + k.costModel.Delete(nodes1[x])
			insertCost := fd[x+1][y] + k.costModel.Insert(nodes2[y])

			if lmlX == lmlI && lmlY == lmlJ {
				renameCost := fd[x][y] + k.costModel.Rename(nodes1[x], nodes2[y])
				fd[x+1][y+1] = minOf3(deleteCost, insertCost, renameCost)
				td[x+1][y+1] = fd[x+1][y+1]
			} else {
				subtreeCost := fd[lmlX][lmlY] + td[x+1][y+1]
				fd[x+1][y+1] = minOf3(deleteCost, insertCost, subtreeCost)
			}
		}
	}
}

func minOf3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

// postOrderNodes returns every node of root's subtree ordered by PostOrderID
// (root must already have been through PrepareForAPTED).
func postOrderNodes(root *CanonicalNode) []*CanonicalNode {
	nodes := SubtreeNodes(root)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].PostOrderID < nodes[j].PostOrderID })
	return nodes
}

func (k *TSEDKernel) subtreeInsertCost(root *CanonicalNode) float64 {
	if root == nil {
		return 0
	}
	cost := k.costModel.Insert(root)
	for _, c := range root.Children {
		cost += k.subtreeInsertCost(c)
	}
	return cost
}

func (k *TSEDKernel) subtreeDeleteCost(root *CanonicalNode) float64 {
	if root == nil {
		return 0
	}
	cost := k.costModel.Delete(root)
	for _, c := range root.Children {
		cost += k.subtreeDeleteCost(c)
	}
	return cost
}

// TSED computes spec.md §4.3's normalized similarity:
// 1 - ted(A,B)/max(|A|,|B|), clamped to [0,1].
func (k *TSEDKernel) TSED(a, b *CanonicalNode) float64 {
	distance := k.ComputeDistance(a, b)
	maxSize := math.Max(float64(sizeOf(a)), float64(sizeOf(b)))
	if maxSize == 0 {
		return 1.0
	}
	sim := 1.0 - distance/maxSize
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}

func sizeOf(n *CanonicalNode) int {
	if n == nil {
		return 0
	}
	return n.Size()
}

// DetailedDistance bundles a distance computation with its inputs' sizes,
// useful for diagnostics and tests.
type DetailedDistance struct {
	Distance   float64
	Similarity float64
	SizeA      int
	SizeB      int
}

// ComputeDetailed returns distance and similarity together with sizes.
func (k *TSEDKernel) ComputeDetailed(a, b *CanonicalNode) *DetailedDistance {
	return &DetailedDistance{
		Distance:   k.ComputeDistance(a, b),
		Similarity: k.TSED(a, b),
		SizeA:      sizeOf(a),
		SizeB:      sizeOf(b),
	}
}
