package parser

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/css"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
)

// Node is an opaque tree-sitter AST node. Callers never inspect it directly;
// every field they need is reached through Tree's accessor methods, keeping
// the grammar-specific *sitter.Node type out of every other package's import
// list (SPEC_FULL.md §3.1's "parser collaborator contract").
type Node = *sitter.Node

// languageByName resolves a spec.md §9 language name to its tree-sitter
// grammar. Only the four languages SPEC_FULL.md's extraction profiles cover
// are wired in; anything else is an unsupported-language error.
func languageByName(language string) (*sitter.Language, error) {
	switch language {
	case "go":
		return golang.GetLanguage(), nil
	case "python":
		return python.GetLanguage(), nil
	case "javascript":
		return javascript.GetLanguage(), nil
	case "css":
		return css.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported language %q", language)
	}
}

// Parser parses source code in a single language using tree-sitter.
type Parser struct {
	language string
	grammar  *sitter.Language
}

// For returns a Parser configured for language. A new *sitter.Parser is
// created per Parse call rather than reused, so a Parser value is itself
// safe for concurrent use across goroutines.
func For(language string) (*Parser, error) {
	grammar, err := languageByName(language)
	if err != nil {
		return nil, err
	}
	return &Parser{language: language, grammar: grammar}, nil
}

// Language returns the language this Parser was built for.
func (p *Parser) Language() string {
	return p.language
}

// Parse parses source and returns a Tree. Parsing is error-tolerant: a
// syntactically invalid file still returns a Tree (with HasSyntaxErrors true)
// rather than failing, matching tree-sitter's own resilient-parsing design.
// Parse only fails on context cancellation or a tree-sitter internal error.
func (p *Parser) Parse(ctx context.Context, source []byte) (*Tree, error) {
	sp := sitter.NewParser()
	sp.SetLanguage(p.grammar)

	tree, err := sp.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to parse %s source: %w", p.language, err)
	}

	return &Tree{
		tree:     tree,
		root:     tree.RootNode(),
		source:   source,
		language: p.language,
	}, nil
}

// Tree is a parsed AST together with the source bytes it was parsed from.
// Every Node accessor is a method on Tree because tree-sitter nodes carry no
// back-reference to their source buffer.
type Tree struct {
	tree     *sitter.Tree
	root     Node
	source   []byte
	language string
}

// RootNode returns the tree's root node.
func (t *Tree) RootNode() Node {
	return t.root
}

// Language returns the language this tree was parsed as.
func (t *Tree) Language() string {
	return t.language
}

// Children returns node's direct children in source order.
func (t *Tree) Children(node Node) []Node {
	if node == nil {
		return nil
	}
	count := int(node.ChildCount())
	children := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		children = append(children, node.Child(i))
	}
	return children
}

// Kind returns node's grammar-specific type name (e.g. "function_declaration").
func (t *Tree) Kind(node Node) string {
	if node == nil {
		return ""
	}
	return node.Type()
}

// NamedChildren returns node's direct children that the grammar marks as
// named, skipping anonymous punctuation/keyword tokens (braces, commas,
// "func", "return") that carry no structural meaning of their own.
func (t *Tree) NamedChildren(node Node) []Node {
	if node == nil {
		return nil
	}
	count := int(node.NamedChildCount())
	children := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		children = append(children, node.NamedChild(i))
	}
	return children
}

// IsNamed reports whether the grammar marks node as a named node, as opposed
// to an anonymous token such as punctuation or a keyword.
func (t *Tree) IsNamed(node Node) bool {
	if node == nil {
		return false
	}
	return node.IsNamed()
}

// Text returns the verbatim source text node spans.
func (t *Tree) Text(node Node) string {
	if node == nil {
		return ""
	}
	return node.Content(t.source)
}

// ByteRange returns node's [start, end) byte offsets into the source buffer.
func (t *Tree) ByteRange(node Node) (start, end int) {
	if node == nil {
		return 0, 0
	}
	return int(node.StartByte()), int(node.EndByte())
}

// StartLine returns node's 1-based starting line.
func (t *Tree) StartLine(node Node) int {
	if node == nil {
		return 0
	}
	return int(node.StartPoint().Row) + 1
}

// EndLine returns node's 1-based, inclusive ending line.
func (t *Tree) EndLine(node Node) int {
	if node == nil {
		return 0
	}
	return int(node.EndPoint().Row) + 1
}

// HasSyntaxErrors reports whether the tree contains any ERROR or MISSING
// nodes anywhere in its subtree.
func (t *Tree) HasSyntaxErrors() bool {
	return hasSyntaxErrors(t.root)
}

func hasSyntaxErrors(node Node) bool {
	if node == nil {
		return false
	}
	if node.IsError() || node.IsMissing() {
		return true
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if hasSyntaxErrors(node.Child(i)) {
			return true
		}
	}
	return false
}

// Close releases the underlying tree-sitter tree. Safe to call on a nil Tree.
func (t *Tree) Close() {
	if t == nil || t.tree == nil {
		return
	}
	t.tree.Close()
}

// Walk traverses node's subtree in pre-order, calling visit for every node
// including node itself. Traversal stops early if visit returns false.
func Walk(node Node, visit func(Node) bool) {
	if node == nil || !visit(node) {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		Walk(node.Child(i), visit)
	}
}

// SupportedLanguages lists every language this package can parse.
func SupportedLanguages() []string {
	return []string{"go", "python", "javascript", "css"}
}
