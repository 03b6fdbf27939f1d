package extractor

import (
	"strings"

	"github.com/cloneradar/cloneradar/domain"
	"github.com/cloneradar/cloneradar/internal/analyzer"
	"github.com/cloneradar/cloneradar/internal/langprofile"
	"github.com/cloneradar/cloneradar/internal/parser"
)

// canonicalize builds an analyzer.CanonicalNode from node's subtree, per
// spec.md §4.1's canonicalization rules: whitespace and comments are
// discarded entirely (by construction — only tree.NamedChildren is walked,
// and comment kinds are skipped explicitly); a leaf node's source text
// becomes its Value, preserving identifier and literal text at extraction
// time (rename tolerance is the TSED kernel's rename_cost concern, not
// this package's); a decorator/annotation attribute is folded into the
// member list when the profile's AttributesAsMembers is set, and dropped
// from the canonical tree entirely otherwise.
func canonicalize(tree *parser.Tree, node parser.Node, profile *langprofile.ExtractionProfile, nextID *int) *analyzer.CanonicalNode {
	if node == nil {
		return nil
	}
	kind := tree.Kind(node)
	if isCommentKind(kind) {
		return nil
	}

	id := *nextID
	*nextID++
	canonical := analyzer.NewCanonicalNode(id, kind)

	children := tree.NamedChildren(node)
	for _, child := range children {
		childKind := tree.Kind(child)
		if isCommentKind(childKind) {
			continue
		}
		if profile.IsAttributeNode(childKind) && !profile.AttributesAsMembers {
			continue
		}
		if childNode := canonicalize(tree, child, profile, nextID); childNode != nil {
			canonical.AddChild(childNode)
		}
	}

	if canonical.IsLeaf() {
		canonical.Value = tree.Text(node)
	}

	return canonical
}

// isCommentKind reports whether kind names a comment node. Every grammar
// wired into internal/parser names its comment node kind with "comment"
// somewhere in it ("comment", "line_comment", "block_comment"), so a
// substring check covers all four languages without per-language tables.
func isCommentKind(kind string) bool {
	return strings.Contains(kind, "comment")
}

// identifierOf reads a fragment node's identifier per the profile's
// IdentifierExtraction table, returning both the text and the matched child
// node so callers can exclude it from inheritance scanning (spec.md §4.1's
// identifier_extraction maps a node kind to the direct child kind holding
// the name).
func identifierOf(tree *parser.Tree, node parser.Node, profile *langprofile.ExtractionProfile) (string, parser.Node) {
	targetKind, ok := profile.IdentifierExtraction[tree.Kind(node)]
	if !ok {
		return "", nil
	}
	for _, child := range tree.Children(node) {
		if tree.Kind(child) == targetKind {
			return tree.Text(child), child
		}
	}
	return "", nil
}

// attributeTextsOf collects the source text of every direct child of node
// whose kind is one of the profile's AttributeNodes, for the test predicate
// to search (e.g. a Python "@pytest.mark.slow" decorator).
func attributeTextsOf(tree *parser.Tree, node parser.Node, profile *langprofile.ExtractionProfile) []string {
	if len(profile.AttributeNodes) == 0 {
		return nil
	}
	var texts []string
	for _, child := range tree.Children(node) {
		if profile.IsAttributeNode(tree.Kind(child)) {
			texts = append(texts, tree.Text(child))
		}
	}
	return texts
}

// inheritanceOf walks node's header area (its direct children and one level
// beyond, such as a superclass argument list) looking for base-class and
// interface node kinds, per the profile's InheritanceExtraction. skip, the
// fragment's own identifier node, is excluded so a class's own name is never
// mistaken for one of its bases (Python's base-class kinds, "identifier" and
// "attribute", are the same kinds a class's own name node can have). The
// walk never descends into a nested function/type/rule node, so a base
// class reference inside a sibling nested class's body is never picked up.
func inheritanceOf(tree *parser.Tree, node parser.Node, profile *langprofile.ExtractionProfile, skip parser.Node) *domain.InheritanceInfo {
	ext := profile.InheritanceExtraction
	if ext == nil {
		return nil
	}

	info := &domain.InheritanceInfo{}
	var walk func(n parser.Node, depth int)
	walk = func(n parser.Node, depth int) {
		if n == nil || depth > 3 {
			return
		}
		for _, child := range tree.Children(n) {
			if child == skip {
				continue
			}
			kind := tree.Kind(child)
			if profile.IsFunctionNode(kind) || profile.IsTypeNode(kind) || profile.IsRuleNode(kind) {
				continue
			}
			if stringsContains(ext.BaseKinds, kind) {
				info.BaseNames = append(info.BaseNames, tree.Text(child))
			}
			if stringsContains(ext.InterfaceKinds, kind) {
				info.InterfaceNames = append(info.InterfaceNames, tree.Text(child))
			}
			walk(child, depth+1)
		}
	}
	walk(node, 0)

	if len(info.BaseNames) == 0 && len(info.InterfaceNames) == 0 {
		return nil
	}
	return info
}

func stringsContains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
