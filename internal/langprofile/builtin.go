package langprofile

// goProfile covers Go: functions, methods, struct/interface declarations.
// Go has no decorators and no classical inheritance (embedding is a
// structural member, not tracked as inheritance_info), so AttributeNodes
// and InheritanceExtraction are left empty.
var goProfile = &ExtractionProfile{
	Language:      "go",
	FunctionNodes: []string{"function_declaration", "method_declaration"},
	TypeNodes:     []string{"type_spec"},
	RuleNodes:     nil,
	IdentifierExtraction: map[string]string{
		"function_declaration": "identifier",
		"method_declaration":   "field_identifier",
		"type_spec":            "type_identifier",
	},
	MemberNodes:         []string{"field_declaration", "method_elem"},
	AttributeNodes:      nil,
	AttributesAsMembers: false,
	TestPredicate: &TestPredicate{
		NamePrefixes: []string{"Test", "Benchmark", "Example", "Fuzz"},
	},
	Unordered: true,
}

// pythonProfile covers Python: functions, classes, and decorator attributes
// folded into type members per spec.md §4.1 ("derive/annotation attributes
// ... are extracted as regular members").
var pythonProfile = &ExtractionProfile{
	Language:      "python",
	FunctionNodes: []string{"function_definition"},
	TypeNodes:     []string{"class_definition"},
	RuleNodes:     nil,
	IdentifierExtraction: map[string]string{
		"function_definition": "identifier",
		"class_definition":    "identifier",
	},
	MemberNodes:         []string{"function_definition", "expression_statement"},
	AttributeNodes:      []string{"decorator"},
	AttributesAsMembers: true,
	TestPredicate: &TestPredicate{
		NamePrefixes:    []string{"test_"},
		AttributeKinds:  []string{"decorator"},
		AttributeSubstr: "test",
	},
	InheritanceExtraction: &InheritanceExtraction{
		BaseKinds: []string{"identifier", "attribute"},
	},
	Unordered: true,
}

// javascriptProfile covers JavaScript and TypeScript. interface_declaration
// only ever appears when parsing TypeScript source with the JS grammar's
// relatives, but listing it is harmless for plain JS files (it simply never
// matches).
var javascriptProfile = &ExtractionProfile{
	Language:      "javascript",
	FunctionNodes: []string{"function_declaration", "function", "arrow_function", "method_definition"},
	TypeNodes:     []string{"class_declaration", "interface_declaration"},
	RuleNodes:     nil,
	IdentifierExtraction: map[string]string{
		"function_declaration": "identifier",
		"function":             "identifier",
		"method_definition":    "property_identifier",
		"class_declaration":    "identifier",
		"interface_declaration": "type_identifier",
	},
	MemberNodes:         []string{"method_definition", "public_field_definition", "field_definition"},
	AttributeNodes:      []string{"decorator"},
	AttributesAsMembers: true,
	TestPredicate: &TestPredicate{
		NamePrefixes: []string{"test", "Test"},
	},
	InheritanceExtraction: &InheritanceExtraction{
		BaseKinds:      []string{"class_heritage"},
		InterfaceKinds: []string{"implements_clause"},
	},
	Unordered: true,
}

// cssProfile covers CSS rule blocks: no functions or types, a rule_set's
// declaration_list becomes an unordered multiset of property declarations
// per spec.md §4.1.
var cssProfile = &ExtractionProfile{
	Language:      "css",
	FunctionNodes: nil,
	TypeNodes:     nil,
	RuleNodes:     []string{"rule_set"},
	IdentifierExtraction: map[string]string{
		"rule_set": "selectors",
	},
	MemberNodes:         []string{"declaration"},
	AttributeNodes:      nil,
	AttributesAsMembers: false,
	Unordered:           true,
}
