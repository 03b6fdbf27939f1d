// Package parser wraps the tree-sitter Go bindings behind a single
// language-neutral Tree/Node contract (SPEC_FULL.md §3.1), so the
// fragment extractor never imports a grammar package directly.
//
// Four grammars are wired in: Go, Python, JavaScript and CSS. Parsing is
// error-tolerant — a syntactically invalid file still yields a tree (callers
// decide whether HasSyntaxErrors should skip it) rather than failing outright,
// matching how source code in the wild is rarely 100% clean.
//
// Basic usage:
//
//	p, err := parser.For("go")
//	if err != nil {
//	    // unsupported language
//	}
//	tree, err := p.Parse(ctx, source)
//	if err != nil {
//	    // parse failure (context canceled, etc.)
//	}
//	root := tree.RootNode()
package parser
