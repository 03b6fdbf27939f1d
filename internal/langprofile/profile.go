// Package langprofile holds the per-language extraction tables spec.md §6
// calls the "extraction profile" — a data-only description of which
// tree-sitter node kinds delimit a fragment, and how to read its identifier,
// test-likeness and inheritance info. internal/extractor is the only
// consumer; this package never touches a parser.Tree itself.
package langprofile

import "strings"

// TestPredicate marks a fragment is_test_like, either by its identifier's
// prefix (e.g. Go's "Test"/"Benchmark", pytest's "test_") or by an attribute
// text containing AttributeSubstr (e.g. a Python "@pytest.mark..."
// decorator). The attribute texts are collected by the caller from the
// profile's AttributeNodes; Matches does not consult AttributeKinds.
type TestPredicate struct {
	NamePrefixes    []string
	AttributeKinds  []string
	AttributeSubstr string
}

// Matches reports whether identifier starts with one of NamePrefixes or any
// of attributeTexts contains AttributeSubstr.
func (tp *TestPredicate) Matches(identifier string, attributeTexts []string) bool {
	if tp == nil {
		return false
	}
	for _, prefix := range tp.NamePrefixes {
		if strings.HasPrefix(identifier, prefix) {
			return true
		}
	}
	if tp.AttributeSubstr == "" {
		return false
	}
	for _, text := range attributeTexts {
		if strings.Contains(text, tp.AttributeSubstr) {
			return true
		}
	}
	return false
}

// InheritanceExtraction locates base-class and implemented-interface names
// among a type node's descendants, by tree-sitter node kind.
type InheritanceExtraction struct {
	BaseKinds      []string
	InterfaceKinds []string
}

// ExtractionProfile is a per-language, data-only extraction table (spec.md
// §6). Four are compiled in (Go, Python, JavaScript/TypeScript, CSS); more
// may be loaded from JSON at runtime via --profile.
type ExtractionProfile struct {
	Language string `json:"language"`

	FunctionNodes []string `json:"function_nodes"`
	TypeNodes     []string `json:"type_nodes"`
	RuleNodes     []string `json:"rule_nodes"`

	// IdentifierExtraction maps a fragment's own node kind to the direct
	// child node kind whose text is the fragment's identifier.
	IdentifierExtraction map[string]string `json:"identifier_extraction"`

	// MemberNodes lists the node kinds, found among a type/rule fragment's
	// descendants one level below a declaration-list wrapper, that become
	// canonical-tree members (fields, methods, property declarations).
	MemberNodes []string `json:"member_nodes"`

	// AttributeNodes lists node kinds (decorators, annotations, derive
	// attributes) attached to a declaration. When AttributesAsMembers is
	// true these are folded into the member list (spec.md §4.1); they are
	// always consulted by TestPredicate regardless of this flag.
	AttributeNodes      []string `json:"attribute_nodes"`
	AttributesAsMembers bool     `json:"attributes_as_members"`

	TestPredicate          *TestPredicate          `json:"test_predicate,omitempty"`
	InheritanceExtraction  *InheritanceExtraction  `json:"inheritance_extraction,omitempty"`

	// Unordered marks fragments of TypeNodes/RuleNodes kinds as having an
	// unordered member multiset (spec.md §3's canonical-tree ordering flag).
	// Function fragments are always ordered.
	Unordered bool `json:"unordered"`
}

// IsFunctionNode reports whether kind delimits a function-like fragment.
func (p *ExtractionProfile) IsFunctionNode(kind string) bool {
	return contains(p.FunctionNodes, kind)
}

// IsTypeNode reports whether kind delimits a type-like fragment.
func (p *ExtractionProfile) IsTypeNode(kind string) bool {
	return contains(p.TypeNodes, kind)
}

// IsRuleNode reports whether kind delimits a rule-block fragment.
func (p *ExtractionProfile) IsRuleNode(kind string) bool {
	return contains(p.RuleNodes, kind)
}

// IsAttributeNode reports whether kind is one of the profile's decorator
// / annotation / derive-attribute node kinds.
func (p *ExtractionProfile) IsAttributeNode(kind string) bool {
	return contains(p.AttributeNodes, kind)
}

// IsMemberNode reports whether kind is one of the profile's structural
// member node kinds (fields, methods, property declarations).
func (p *ExtractionProfile) IsMemberNode(kind string) bool {
	return contains(p.MemberNodes, kind)
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// Registry indexes compiled-in profiles by language name.
var registry = map[string]*ExtractionProfile{
	"go":         goProfile,
	"python":     pythonProfile,
	"javascript": javascriptProfile,
	"typescript": javascriptProfile,
	"css":        cssProfile,
}

// For returns the compiled-in profile for language, or false if none exists.
func For(language string) (*ExtractionProfile, bool) {
	p, ok := registry[language]
	return p, ok
}

// SupportedLanguages lists every language with a compiled-in profile.
func SupportedLanguages() []string {
	return []string{"go", "python", "javascript", "typescript", "css"}
}
