package analyzer

import (
	"crypto/md5"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FeatureExtractor extracts a bag of string features from a canonical tree,
// feeding the MinHash signatures the LSH candidate index buckets on
// (SPEC_FULL.md §3.5).
type FeatureExtractor interface {
	// ExtractFeatures extracts a set of string features from a canonical tree.
	ExtractFeatures(tree *CanonicalNode) ([]string, error)

	// ExtractSubtreeHashes extracts hashes of subtrees up to a maximum height.
	ExtractSubtreeHashes(tree *CanonicalNode, maxHeight int) []string

	// ExtractNodeSequences extracts k-gram sequences from pre-order traversal.
	ExtractNodeSequences(tree *CanonicalNode, k int) []string
}

// ASTFeatureExtractor implements feature extraction over CanonicalNode trees.
type ASTFeatureExtractor struct {
	maxSubtreeHeight int
	kGramSize        int
	includeTypes     bool
	includeLiterals  bool
	includeStructure bool
}

// NewASTFeatureExtractor creates an extractor with default settings.
func NewASTFeatureExtractor() *ASTFeatureExtractor {
	return &ASTFeatureExtractor{
		maxSubtreeHeight: 3,
		kGramSize:        4,
		includeTypes:     true,
		includeLiterals:  false,
		includeStructure: true,
	}
}

// NewASTFeatureExtractorWithConfig creates an extractor with custom configuration.
func NewASTFeatureExtractorWithConfig(maxHeight, kGramSize int, includeTypes, includeLiterals, includeStructure bool) *ASTFeatureExtractor {
	return &ASTFeatureExtractor{
		maxSubtreeHeight: maxHeight,
		kGramSize:        kGramSize,
		includeTypes:     includeTypes,
		includeLiterals:  includeLiterals,
		includeStructure: includeStructure,
	}
}

// ExtractFeatures extracts all configured feature families from tree.
func (fe *ASTFeatureExtractor) ExtractFeatures(tree *CanonicalNode) ([]string, error) {
	if tree == nil {
		return []string{}, nil
	}

	var features []string

	if fe.includeTypes {
		for _, hash := range fe.ExtractSubtreeHashes(tree, fe.maxSubtreeHeight) {
			features = append(features, "subtree:"+hash)
		}
		for _, seq := range fe.ExtractNodeSequences(tree, fe.kGramSize) {
			features = append(features, "kgram:"+seq)
		}
		for label, count := range fe.extractNodeTypeDistribution(tree) {
			features = append(features, fmt.Sprintf("type_count:%s:%d", label, count))
		}
	}

	if fe.includeStructure {
		for _, pattern := range fe.extractStructuralPatterns(tree) {
			features = append(features, "pattern:"+pattern)
		}
	}

	if fe.includeLiterals {
		for _, literal := range fe.extractLiterals(tree) {
			features = append(features, "literal:"+literal)
		}
	}

	sort.Strings(features)
	return features, nil
}

// ExtractSubtreeHashes extracts hashes of subtrees up to maxHeight.
func (fe *ASTFeatureExtractor) ExtractSubtreeHashes(tree *CanonicalNode, maxHeight int) []string {
	if tree == nil || maxHeight <= 0 {
		return []string{}
	}

	var hashes []string
	fe.extractSubtreeHashesRecursive(tree, maxHeight, &hashes)
	return sortedUnique(hashes)
}

func (fe *ASTFeatureExtractor) extractSubtreeHashesRecursive(node *CanonicalNode, maxHeight int, hashes *[]string) {
	if node == nil || maxHeight <= 0 {
		return
	}
	*hashes = append(*hashes, fe.computeSubtreeHash(node, maxHeight))
	for _, child := range node.Children {
		fe.extractSubtreeHashesRecursive(child, maxHeight-1, hashes)
	}
}

func (fe *ASTFeatureExtractor) computeSubtreeHash(node *CanonicalNode, maxDepth int) string {
	if node == nil || maxDepth <= 0 {
		return ""
	}
	var builder strings.Builder
	fe.buildSubtreeString(node, maxDepth, &builder)
	hash := md5.Sum([]byte(builder.String()))
	return fmt.Sprintf("%x", hash)
}

func (fe *ASTFeatureExtractor) buildSubtreeString(node *CanonicalNode, maxDepth int, builder *strings.Builder) {
	if node == nil || maxDepth <= 0 {
		return
	}
	builder.WriteString(node.Label)
	builder.WriteString(fmt.Sprintf("(%d)", len(node.Children)))
	for i, child := range node.Children {
		if i > 0 {
			builder.WriteString(",")
		}
		builder.WriteString("[")
		fe.buildSubtreeString(child, maxDepth-1, builder)
		builder.WriteString("]")
	}
}

// ExtractNodeSequences extracts k-gram sequences from a pre-order traversal
// of node labels.
func (fe *ASTFeatureExtractor) ExtractNodeSequences(tree *CanonicalNode, k int) []string {
	if tree == nil || k <= 0 {
		return []string{}
	}

	var nodeSequence []string
	fe.preOrderTraversal(tree, &nodeSequence)

	var kgrams []string
	for i := 0; i <= len(nodeSequence)-k; i++ {
		kgrams = append(kgrams, strings.Join(nodeSequence[i:i+k], "_"))
	}
	return sortedUnique(kgrams)
}

func (fe *ASTFeatureExtractor) preOrderTraversal(node *CanonicalNode, sequence *[]string) {
	if node == nil {
		return
	}
	*sequence = append(*sequence, fe.normalizeLabel(node.Label))
	for _, child := range node.Children {
		fe.preOrderTraversal(child, sequence)
	}
}

func (fe *ASTFeatureExtractor) normalizeLabel(label string) string {
	normalized := strings.ToLower(label)
	normalized = strings.TrimPrefix(normalized, "node")
	normalized = strings.TrimSuffix(normalized, "node")
	return normalized
}

func (fe *ASTFeatureExtractor) extractStructuralPatterns(tree *CanonicalNode) []string {
	var patterns []string

	for structure, count := range fe.countControlStructures(tree) {
		patterns = append(patterns, fmt.Sprintf("control:%s:%d", structure, count))
	}

	patterns = append(patterns, fmt.Sprintf("depth:%d", tree.Depth()))

	avgBranching := fe.computeAverageBranchingFactor(tree)
	patterns = append(patterns, fmt.Sprintf("avg_branching:%.2f", avgBranching))

	return patterns
}

func (fe *ASTFeatureExtractor) countControlStructures(node *CanonicalNode) map[string]int {
	counts := make(map[string]int)
	fe.countControlStructuresRecursive(node, counts)
	return counts
}

func (fe *ASTFeatureExtractor) countControlStructuresRecursive(node *CanonicalNode, counts map[string]int) {
	if node == nil {
		return
	}
	label := strings.ToLower(node.Label)
	switch {
	case strings.Contains(label, "if"):
		counts["if"]++
	case strings.Contains(label, "for"):
		counts["for"]++
	case strings.Contains(label, "while"):
		counts["while"]++
	case strings.Contains(label, "try"):
		counts["try"]++
	case strings.Contains(label, "functiondecl"):
		counts["function"]++
	case strings.Contains(label, "typedecl"):
		counts["type"]++
	}
	for _, child := range node.Children {
		fe.countControlStructuresRecursive(child, counts)
	}
}

func (fe *ASTFeatureExtractor) computeAverageBranchingFactor(node *CanonicalNode) float64 {
	totalNodes, totalChildren := 0, 0
	fe.computeBranchingFactorRecursive(node, &totalNodes, &totalChildren)
	if totalNodes == 0 {
		return 0.0
	}
	return float64(totalChildren) / float64(totalNodes)
}

func (fe *ASTFeatureExtractor) computeBranchingFactorRecursive(node *CanonicalNode, totalNodes, totalChildren *int) {
	if node == nil {
		return
	}
	*totalNodes++
	*totalChildren += len(node.Children)
	for _, child := range node.Children {
		fe.computeBranchingFactorRecursive(child, totalNodes, totalChildren)
	}
}

func (fe *ASTFeatureExtractor) extractNodeTypeDistribution(node *CanonicalNode) map[string]int {
	distribution := make(map[string]int)
	fe.extractNodeTypeDistributionRecursive(node, distribution)
	return distribution
}

func (fe *ASTFeatureExtractor) extractNodeTypeDistributionRecursive(node *CanonicalNode, distribution map[string]int) {
	if node == nil {
		return
	}
	distribution[fe.normalizeLabel(node.Label)]++
	for _, child := range node.Children {
		fe.extractNodeTypeDistributionRecursive(child, distribution)
	}
}

// extractLiterals extracts literal/identifier values carried directly on
// canonical nodes (CanonicalNode.Value), normalized to avoid overfitting to
// specific literal content.
func (fe *ASTFeatureExtractor) extractLiterals(node *CanonicalNode) []string {
	var literals []string
	fe.extractLiteralsRecursive(node, &literals)
	return sortedUnique(literals)
}

func (fe *ASTFeatureExtractor) extractLiteralsRecursive(node *CanonicalNode, literals *[]string) {
	if node == nil {
		return
	}
	if node.Value != "" {
		if isLiteralLabel(node.Label) {
			*literals = append(*literals, fe.normalizeLiteral(node.Value))
		} else if isIdentifierLabel(node.Label) {
			*literals = append(*literals, "name:"+node.Value)
		}
	}
	for _, child := range node.Children {
		fe.extractLiteralsRecursive(child, literals)
	}
}

func (fe *ASTFeatureExtractor) normalizeLiteral(literal string) string {
	if strings.HasPrefix(literal, "\"") || strings.HasPrefix(literal, "'") {
		return "string_literal"
	}
	if _, err := strconv.Atoi(literal); err == nil {
		return "int_literal"
	}
	if _, err := strconv.ParseFloat(literal, 64); err == nil {
		return "float_literal"
	}
	return strings.ToLower(literal)
}

func sortedUnique(items []string) []string {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		seen[item] = true
	}
	result := make([]string, 0, len(seen))
	for item := range seen {
		result = append(result, item)
	}
	sort.Strings(result)
	return result
}
