package domain

import "fmt"

// FragmentKind classifies the syntactic role of a Fragment. The pair
// orchestrator only ever compares fragments of the same kind against each
// other.
type FragmentKind int

const (
	// FunctionFragment covers functions, methods and arrow/lambda expressions.
	FunctionFragment FragmentKind = iota + 1
	// TypeFragment covers classes, structs, interfaces and type aliases.
	TypeFragment
	// RuleBlockFragment covers CSS-style rule sets.
	RuleBlockFragment
)

// String returns a human-readable name for the fragment kind.
func (k FragmentKind) String() string {
	switch k {
	case FunctionFragment:
		return "Function"
	case TypeFragment:
		return "Type"
	case RuleBlockFragment:
		return "RuleBlock"
	default:
		return "Unknown"
	}
}

// Location identifies where a Fragment came from. Lines are 1-based and
// inclusive.
type Location struct {
	FilePath   string `json:"file_path" yaml:"file_path" csv:"file_path"`
	StartLine  int    `json:"start_line" yaml:"start_line" csv:"start_line"`
	EndLine    int    `json:"end_line" yaml:"end_line" csv:"end_line"`
	StartByte  int    `json:"start_byte" yaml:"start_byte" csv:"start_byte"`
	EndByte    int    `json:"end_byte" yaml:"end_byte" csv:"end_byte"`
}

// String renders "path:startLine-endLine".
func (l *Location) String() string {
	return fmt.Sprintf("%s:%d-%d", l.FilePath, l.StartLine, l.EndLine)
}

// LineCount returns the number of lines this location spans.
func (l *Location) LineCount() int {
	return l.EndLine - l.StartLine + 1
}

// Less implements the lexicographic ordering spec.md §3 requires of a pair's
// two locations (file, then start line, then end line).
func (l *Location) Less(other *Location) bool {
	if l.FilePath != other.FilePath {
		return l.FilePath < other.FilePath
	}
	if l.StartLine != other.StartLine {
		return l.StartLine < other.StartLine
	}
	return l.EndLine < other.EndLine
}

// Overlaps reports whether two locations are in the same file and their line
// ranges intersect — the self-overlap rejection rule of spec.md §3 invariant 2.
func (l *Location) Overlaps(other *Location) bool {
	if l.FilePath != other.FilePath {
		return false
	}
	return l.StartLine <= other.EndLine && other.StartLine <= l.EndLine
}

// InheritanceInfo records the base types and implemented interfaces a type
// fragment declares. The engine never follows these; they exist purely as
// data attached to the fragment (spec.md §9, "inheritance as data").
type InheritanceInfo struct {
	BaseNames      []string `json:"base_names,omitempty" yaml:"base_names,omitempty"`
	InterfaceNames []string `json:"interface_names,omitempty" yaml:"interface_names,omitempty"`
}

// Fragment is a unit of code submitted for comparison: a function, a type
// declaration, or a CSS-style rule block. Fragments are immutable once
// extracted and are held by shared, non-owning reference during comparison
// (spec.md §3 invariant 5).
type Fragment struct {
	ID         int           `json:"id" yaml:"id" csv:"id"`
	Kind       FragmentKind  `json:"kind" yaml:"kind" csv:"kind"`
	Identifier string        `json:"identifier" yaml:"identifier" csv:"identifier"`
	Language   string        `json:"language" yaml:"language" csv:"language"`
	Location   *Location     `json:"location" yaml:"location" csv:"location"`
	Content    string        `json:"content,omitempty" yaml:"content,omitempty" csv:"content"`

	// SourceSize is the node count of CanonicalTree; invariant 1 of spec.md §3
	// requires these to always agree.
	SourceSize int `json:"source_size" yaml:"source_size" csv:"source_size"`

	// CanonicalTree and Fingerprint are opaque to the domain package; they are
	// declared as interface{} here and concretely typed
	// (*analyzer.CanonicalNode, *analyzer.Fingerprint) by the analyzer package
	// that owns them, so that domain stays free of a dependency on the engine.
	CanonicalTree interface{} `json:"-" yaml:"-" csv:"-"`
	Fingerprint   interface{} `json:"-" yaml:"-" csv:"-"`

	// Unordered marks fragments (types, rule blocks) whose top-level children
	// are a multiset rather than a sequence; consumed by the structural
	// comparator, never by the TSED kernel (spec.md §3).
	Unordered bool `json:"unordered" yaml:"unordered" csv:"unordered"`

	IsTestLike bool              `json:"is_test_like" yaml:"is_test_like" csv:"is_test_like"`
	Inherits   *InheritanceInfo  `json:"inherits,omitempty" yaml:"inherits,omitempty" csv:"-"`
}

// String renders a short diagnostic form of the fragment.
func (f *Fragment) String() string {
	return fmt.Sprintf("Fragment{%s %q at %s, size=%d}", f.Kind, f.Identifier, f.Location, f.SourceSize)
}
