package unusedprops

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// nodeKind is the closed set of syntax shapes the check reacts to. Every
// node classifies to exactly one kind; dispatch over kinds is exhaustive so
// adding a kind without handling it fails loudly instead of silently.
type nodeKind int

const (
	kindOther nodeKind = iota
	kindPropertyRef
	kindMemberDecl
	kindObjectLiteral
	kindCall
	kindFunction
	kindClass
	kindFileBoundary
)

func (k nodeKind) String() string {
	switch k {
	case kindPropertyRef:
		return "property-ref"
	case kindMemberDecl:
		return "member-decl"
	case kindObjectLiteral:
		return "object-literal"
	case kindCall:
		return "call"
	case kindFunction:
		return "function"
	case kindClass:
		return "class"
	case kindFileBoundary:
		return "file-boundary"
	case kindOther:
		return "other"
	}
	return "invalid"
}

// classify maps a tree-sitter node type to its kind. Grammar revisions have
// used both "function" and "function_expression" for function expressions,
// so both spellings are accepted.
func classify(n *sitter.Node) nodeKind {
	switch n.Type() {
	case "member_expression":
		return kindPropertyRef
	case "method_definition", "public_field_definition", "field_definition":
		return kindMemberDecl
	case "object":
		return kindObjectLiteral
	case "call_expression":
		return kindCall
	case "function", "function_expression", "function_declaration",
		"generator_function", "generator_function_declaration", "arrow_function":
		return kindFunction
	case "class", "class_declaration":
		return kindClass
	case "program":
		return kindFileBoundary
	default:
		return kindOther
	}
}
