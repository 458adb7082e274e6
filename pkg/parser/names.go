package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// QualifiedName computes the dotted name of an expression rooted at an
// identifier or "this", e.g. "a.b.c" or "this.cache_". The second return is
// false when the expression has no such name (calls, subscripts, literals),
// which excludes the node from name-based matching rather than failing.
func QualifiedName(node *sitter.Node, source []byte) (string, bool) {
	if node == nil {
		return "", false
	}

	switch node.Type() {
	case "identifier", "type_identifier":
		return GetNodeText(node, source), true
	case "this":
		return "this", true
	case "member_expression":
		obj := node.ChildByFieldName("object")
		prop := node.ChildByFieldName("property")
		if obj == nil || prop == nil {
			return "", false
		}
		base, ok := QualifiedName(obj, source)
		if !ok {
			return "", false
		}
		return base + "." + GetNodeText(prop, source), true
	default:
		return "", false
	}
}

// BestLValueName returns the best-effort name a declaration is known by: its
// own declared name, or the name of the variable, assignment target, or
// object key it is the value of. Anonymous expressions with no binding
// resolve to nothing.
func BestLValueName(decl *sitter.Node, source []byte) (string, bool) {
	if decl == nil {
		return "", false
	}

	switch decl.Type() {
	case "class_declaration", "function_declaration", "generator_function_declaration":
		if name := decl.ChildByFieldName("name"); name != nil {
			return GetNodeText(name, source), true
		}
	}

	parent := decl.Parent()
	if parent == nil {
		if name := decl.ChildByFieldName("name"); name != nil {
			return GetNodeText(name, source), true
		}
		return "", false
	}

	switch parent.Type() {
	case "variable_declarator":
		if name := parent.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
			return GetNodeText(name, source), true
		}
	case "assignment_expression":
		if parent.ChildByFieldName("right") == nil || !SameNode(parent.ChildByFieldName("right"), decl) {
			return "", false
		}
		return QualifiedName(parent.ChildByFieldName("left"), source)
	case "pair":
		if key := parent.ChildByFieldName("key"); key != nil {
			return PropertyKeyName(key, source)
		}
	case "parenthesized_expression":
		return BestLValueName(parent, source)
	}

	if name := decl.ChildByFieldName("name"); name != nil {
		return GetNodeText(name, source), true
	}
	return "", false
}

// PropertyKeyName extracts the name of an object-literal key: a plain
// identifier key, a quoted string key, or a number. Computed keys have no
// static name.
func PropertyKeyName(key *sitter.Node, source []byte) (string, bool) {
	switch key.Type() {
	case "property_identifier", "shorthand_property_identifier", "number":
		return GetNodeText(key, source), true
	case "string":
		return Unquote(GetNodeText(key, source)), true
	default:
		return "", false
	}
}

// Unquote strips matching single, double, or template quotes from a string
// literal's source text.
func Unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '\'' || first == '"' || first == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// SameNode reports whether two node handles refer to the same syntax node.
// Handles from separate tree-sitter calls are distinct Go values even when
// they point at the same node, so identity is by position and type.
func SameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}
