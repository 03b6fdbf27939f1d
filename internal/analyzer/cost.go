package analyzer

import "strings"

// CostModel supplies the three editable-operation costs the TSED kernel
// needs (spec.md §4.3): Insert, Delete and Rename. Match is implicit — a
// rename between nodes with equal Label and Value always costs 0, and no
// CostModel implementation is asked to override that.
type CostModel interface {
	Insert(node *CanonicalNode) float64
	Delete(node *CanonicalNode) float64
	Rename(a, b *CanonicalNode) float64
}

// DefaultCostModel is the uniform cost model spec.md §4.3 documents as the
// baseline: delete_cost=1.0, insert_cost=1.0, rename_cost=0.3 whenever label
// or value differ, 0 on an exact match.
type DefaultCostModel struct {
	InsertCost float64
	DeleteCost float64
	RenameCost float64
}

// NewDefaultCostModel returns a DefaultCostModel using spec.md's documented
// defaults. renameCost overrides the default 0.3 when positive (the CLI's
// `--rename-cost` flag, spec.md §6).
func NewDefaultCostModel(renameCost float64) *DefaultCostModel {
	if renameCost <= 0 {
		renameCost = 0.3
	}
	return &DefaultCostModel{InsertCost: 1.0, DeleteCost: 1.0, RenameCost: renameCost}
}

func (c *DefaultCostModel) Insert(node *CanonicalNode) float64 { return c.InsertCost }
func (c *DefaultCostModel) Delete(node *CanonicalNode) float64 { return c.DeleteCost }

func (c *DefaultCostModel) Rename(a, b *CanonicalNode) float64 {
	if a == nil || b == nil {
		return c.RenameCost
	}
	if a.Label == b.Label && a.Value == b.Value {
		return 0.0
	}
	return c.RenameCost
}

// StructuralCostModel is a label-aware cost model that weights Insert/
// Delete/Rename by the structural importance of a node's label
// ("FunctionDecl", "Call", "Binary:+", ...) — labels are already
// language-neutral by the time they reach the kernel, so one cost model
// covers every supported language.
type StructuralCostModel struct {
	BaseInsertCost float64
	BaseDeleteCost float64
	BaseRenameCost float64

	// IgnoreLiterals/IgnoreIdentifiers soften the cost of nodes whose Value
	// differs but whose Label is a literal/identifier kind — rename
	// tolerance per spec.md §4.1's "rename_cost... governs this".
	IgnoreLiterals    bool
	IgnoreIdentifiers bool

	// ReduceBoilerplateWeight and BoilerplateMultiplier de-weight
	// annotation/decorator/derive-attribute nodes so they contribute less
	// to distance than control structures, reducing false positives from
	// framework boilerplate.
	ReduceBoilerplateWeight bool
	BoilerplateMultiplier   float64
}

// NewStructuralCostModel builds a StructuralCostModel with sensible
// defaults (boilerplate reduction on, literals/identifiers preserved).
func NewStructuralCostModel(renameCost float64, ignoreLiterals, ignoreIdentifiers bool) *StructuralCostModel {
	if renameCost <= 0 {
		renameCost = 0.3
	}
	return &StructuralCostModel{
		BaseInsertCost:          1.0,
		BaseDeleteCost:          1.0,
		BaseRenameCost:          renameCost,
		IgnoreLiterals:          ignoreLiterals,
		IgnoreIdentifiers:       ignoreIdentifiers,
		ReduceBoilerplateWeight: true,
		BoilerplateMultiplier:   0.1,
	}
}

func (c *StructuralCostModel) Insert(node *CanonicalNode) float64 {
	if node == nil {
		return c.BaseInsertCost
	}
	return c.BaseInsertCost * c.multiplier(node.Label)
}

func (c *StructuralCostModel) Delete(node *CanonicalNode) float64 {
	if node == nil {
		return c.BaseDeleteCost
	}
	return c.BaseDeleteCost * c.multiplier(node.Label)
}

func (c *StructuralCostModel) Rename(a, b *CanonicalNode) float64 {
	if a == nil || b == nil {
		return c.BaseRenameCost
	}
	if a.Label == b.Label && a.Value == b.Value {
		return 0.0
	}
	if c.shouldIgnoreDifference(a.Label, b.Label) {
		return 0.0
	}
	similarity := c.labelSimilarity(a.Label, b.Label)
	return c.BaseRenameCost * (1.0 - similarity)
}

// multiplier scales Insert/Delete cost by the structural importance of a
// label: boilerplate is cheap to touch, control flow and declarations are
// expensive, plain expressions are moderate.
func (c *StructuralCostModel) multiplier(label string) float64 {
	if c.ReduceBoilerplateWeight && isBoilerplateLabel(label) {
		return c.BoilerplateMultiplier
	}
	if isStructuralLabel(label) {
		return 1.5
	}
	if isControlFlowLabel(label) {
		return 1.3
	}
	if isExpressionLabel(label) {
		return 0.8
	}
	if isLiteralLabel(label) && c.IgnoreLiterals {
		return 0.1
	}
	if isIdentifierLabel(label) && c.IgnoreIdentifiers {
		return 0.2
	}
	return 1.0
}

func (c *StructuralCostModel) shouldIgnoreDifference(label1, label2 string) bool {
	if c.IgnoreLiterals && isLiteralLabel(label1) && isLiteralLabel(label2) {
		return true
	}
	if c.IgnoreIdentifiers && isIdentifierLabel(label1) && isIdentifierLabel(label2) {
		return true
	}
	return false
}

// labelSimilarity scores how related two differing labels are, in [0,1],
// used to scale down (never eliminate) the rename cost.
func (c *StructuralCostModel) labelSimilarity(label1, label2 string) float64 {
	base1, base2 := baseLabel(label1), baseLabel(label2)
	if base1 == base2 {
		return 0.3
	}
	if relatedLabels(base1, base2) {
		return 0.2
	}
	if sameLabelCategory(base1, base2) {
		return 0.1
	}
	return 0.0
}

func baseLabel(label string) string {
	if idx := strings.IndexByte(label, ':'); idx != -1 {
		return label[:idx]
	}
	return label
}

var structuralLabels = []string{"FunctionDecl", "TypeDecl", "Module", "Params", "Param", "Decorator", "RuleBlock"}
var controlFlowLabels = []string{"If", "For", "While", "Try", "With", "Switch", "Return", "Break", "Continue", "Raise"}
var expressionLabels = []string{"Binary", "Unary", "Bool", "Compare", "Call", "Member", "Index", "List", "Tuple", "Dict", "Set", "Lambda", "Comprehension"}
var boilerplateLabels = []string{"Annotation", "Decorator", "DeriveAttribute", "Attribute"}

func hasAnyPrefix(label string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(label, p) {
			return true
		}
	}
	return false
}

func isStructuralLabel(label string) bool  { return hasAnyPrefix(label, structuralLabels) }
func isControlFlowLabel(label string) bool { return hasAnyPrefix(label, controlFlowLabels) }
func isExpressionLabel(label string) bool  { return hasAnyPrefix(label, expressionLabels) }
func isBoilerplateLabel(label string) bool { return hasAnyPrefix(label, boilerplateLabels) }
func isLiteralLabel(label string) bool     { return strings.HasPrefix(label, "Literal:") }
func isIdentifierLabel(label string) bool  { return label == "Identifier" || strings.HasPrefix(label, "Identifier:") }

var relatedLabelPairs = [][2]string{
	{"If", "Switch"},
	{"Binary", "Unary"},
	{"List", "Tuple"},
	{"For", "While"},
}

func relatedLabels(a, b string) bool {
	for _, pair := range relatedLabelPairs {
		if (a == pair[0] && b == pair[1]) || (a == pair[1] && b == pair[0]) {
			return true
		}
	}
	return false
}

func sameLabelCategory(a, b string) bool {
	if isStructuralLabel(a) && isStructuralLabel(b) {
		return true
	}
	if isControlFlowLabel(a) && isControlFlowLabel(b) {
		return true
	}
	if isExpressionLabel(a) && isExpressionLabel(b) {
		return true
	}
	return false
}

// WeightedCostModel scales another CostModel's costs by fixed multipliers —
// used by the structural comparator (structural.go) to weight members by
// their declared importance.
type WeightedCostModel struct {
	InsertWeight float64
	DeleteWeight float64
	RenameWeight float64
	Base         CostModel
}

func NewWeightedCostModel(insertWeight, deleteWeight, renameWeight float64, base CostModel) *WeightedCostModel {
	return &WeightedCostModel{InsertWeight: insertWeight, DeleteWeight: deleteWeight, RenameWeight: renameWeight, Base: base}
}

func (c *WeightedCostModel) Insert(node *CanonicalNode) float64 {
	return c.InsertWeight * c.Base.Insert(node)
}
func (c *WeightedCostModel) Delete(node *CanonicalNode) float64 {
	return c.DeleteWeight * c.Base.Delete(node)
}
func (c *WeightedCostModel) Rename(a, b *CanonicalNode) float64 {
	return c.RenameWeight * c.Base.Rename(a, b)
}
