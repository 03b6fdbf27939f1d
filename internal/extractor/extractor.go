// Package extractor implements spec.md §4.1's fragment extractor: it walks a
// parsed parser.Tree, guided by a langprofile.ExtractionProfile, and yields
// domain.Fragments carrying a canonical tree and fingerprint the analyzer
// package can compare directly. internal/extractor is the only package that
// imports both internal/parser and internal/analyzer; domain itself stays
// free of either.
package extractor

import (
	"context"
	"fmt"

	"github.com/cloneradar/cloneradar/domain"
	"github.com/cloneradar/cloneradar/internal/analyzer"
	"github.com/cloneradar/cloneradar/internal/langprofile"
	"github.com/cloneradar/cloneradar/internal/parser"
)

// Options configures the size floors below which a fragment is dropped
// (spec.md §4.1: fragments below either floor are silently skipped, not an
// error).
type Options struct {
	MinLines int
	MinNodes int
}

// DefaultOptions returns the floors spec.md §9 lists as the CLI defaults.
func DefaultOptions() Options {
	return Options{MinLines: 5, MinNodes: 10}
}

// Extractor produces domain.Fragments from parsed source for a single
// language, per the profile supplied at construction.
type Extractor struct {
	profile *langprofile.ExtractionProfile
	parser  *parser.Parser
	opts    Options
}

// New builds an Extractor for profile's language. It fails if no parser is
// registered for that language (spec.md §3.1/§3.2 are paired one-to-one by
// language name).
func New(profile *langprofile.ExtractionProfile, opts Options) (*Extractor, error) {
	if profile == nil {
		return nil, fmt.Errorf("extractor: nil profile")
	}
	p, err := parser.For(profile.Language)
	if err != nil {
		return nil, fmt.Errorf("extractor: %w", err)
	}
	if opts.MinLines < 1 {
		opts.MinLines = 1
	}
	if opts.MinNodes < 1 {
		opts.MinNodes = 1
	}
	return &Extractor{profile: profile, parser: p, opts: opts}, nil
}

// ExtractFile parses source and returns every fragment the profile
// recognizes. A parse failure (context cancellation, tree-sitter internal
// error) is returned as an error for the caller to treat as a per-file skip
// (spec.md §4.1); a syntactically invalid but parseable file is not an
// error — tree-sitter's error-tolerant parse still yields extractable
// fragments around the damaged region.
func (e *Extractor) ExtractFile(ctx context.Context, filePath string, source []byte) ([]*domain.Fragment, error) {
	tree, err := e.parser.Parse(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("extractor: failed to parse %s: %w", filePath, err)
	}
	defer tree.Close()

	return e.extractTree(tree, filePath), nil
}

// ExtractSnippet canonicalizes source's whole parse tree as a single
// fragment, ignoring the profile's delimiter-node matching and size floors.
// It exists for domain.Service.ComputeSimilarity, which compares two
// arbitrary snippets rather than files containing zero or more
// function/type/rule fragments (spec.md §4.1's floors and delimiter
// matching are a file-extraction concern, not a two-snippet-comparison one).
func (e *Extractor) ExtractSnippet(ctx context.Context, source []byte) (*domain.Fragment, error) {
	tree, err := e.parser.Parse(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("extractor: failed to parse snippet: %w", err)
	}
	defer tree.Close()

	idCounter := 0
	canonical := canonicalize(tree, tree.RootNode(), e.profile, &idCounter)
	if canonical == nil {
		return nil, fmt.Errorf("extractor: snippet produced no canonical content")
	}

	return &domain.Fragment{
		Language:      e.profile.Language,
		Content:       string(source),
		SourceSize:    canonical.Size(),
		CanonicalTree: canonical,
		Fingerprint:   analyzer.NewFingerprint(canonical),
	}, nil
}

// extractTree walks tree looking for delimiter nodes the profile recognizes,
// building one fragment per match. Traversal continues into a matched
// node's own children, so a function nested inside another function (a
// closure, or a method inside a class body also walked for its own type
// fragment) is still extracted as its own fragment.
func (e *Extractor) extractTree(tree *parser.Tree, filePath string) []*domain.Fragment {
	var fragments []*domain.Fragment
	nextID := 1

	var walk func(node parser.Node)
	walk = func(node parser.Node) {
		if node == nil {
			return
		}
		kind := tree.Kind(node)

		var fragmentKind domain.FragmentKind
		var matched bool
		switch {
		case e.profile.IsFunctionNode(kind):
			fragmentKind, matched = domain.FunctionFragment, true
		case e.profile.IsTypeNode(kind):
			fragmentKind, matched = domain.TypeFragment, true
		case e.profile.IsRuleNode(kind):
			fragmentKind, matched = domain.RuleBlockFragment, true
		}

		if matched {
			if f := e.buildFragment(tree, node, filePath, fragmentKind, &nextID); f != nil {
				fragments = append(fragments, f)
			}
		}

		for _, child := range tree.Children(node) {
			walk(child)
		}
	}
	walk(tree.RootNode())

	return fragments
}

// buildFragment assembles a single domain.Fragment rooted at node, or nil if
// it falls below either size floor.
func (e *Extractor) buildFragment(tree *parser.Tree, node parser.Node, filePath string, kind domain.FragmentKind, nextID *int) *domain.Fragment {
	startLine, endLine := tree.StartLine(node), tree.EndLine(node)
	if endLine-startLine+1 < e.opts.MinLines {
		return nil
	}

	idCounter := 0
	canonical := canonicalize(tree, node, e.profile, &idCounter)
	if canonical == nil {
		return nil
	}
	canonical.Unordered = kind != domain.FunctionFragment && e.profile.Unordered

	if canonical.Size() < e.opts.MinNodes {
		return nil
	}

	startByte, endByte := tree.ByteRange(node)
	identifier, identifierNode := identifierOf(tree, node, e.profile)
	attributeTexts := attributeTextsOf(tree, node, e.profile)

	f := &domain.Fragment{
		ID:         *nextID,
		Kind:       kind,
		Identifier: identifier,
		Language:   e.profile.Language,
		Location: &domain.Location{
			FilePath:  filePath,
			StartLine: startLine,
			EndLine:   endLine,
			StartByte: startByte,
			EndByte:   endByte,
		},
		Content:       tree.Text(node),
		SourceSize:    canonical.Size(),
		CanonicalTree: canonical,
		Unordered:     canonical.Unordered,
		IsTestLike:    e.profile.TestPredicate.Matches(identifier, attributeTexts),
		Inherits:      inheritanceOf(tree, node, e.profile, identifierNode),
	}
	f.Fingerprint = analyzer.NewFingerprint(canonical)
	*nextID++
	return f
}
