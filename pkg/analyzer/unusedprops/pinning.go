package unusedprops

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/deadprop/deadprop/pkg/parser"
)

// isPinningUse decides whether a property reference keeps the property
// alive. Writes do not pin: a declaration stub, the target of a plain
// assignment, and a compound assignment or increment whose result is
// discarded are all write-only. Everything else reads the property.
func (fc *fileCheck) isPinningUse(n *sitter.Node) bool {
	parent := n.Parent()
	if parent == nil {
		panic("unusedprops: property reference has no parent")
	}

	switch parent.Type() {
	case "expression_statement":
		// A bare `this.x_;` is a declaration stub, not a read.
		return false
	case "assignment_expression":
		if parser.SameNode(parent.ChildByFieldName("left"), n) {
			return false
		}
	case "augmented_assignment_expression":
		// `this.x_ += 1` reads the old value only when the expression's
		// result feeds into something.
		if parser.SameNode(parent.ChildByFieldName("left"), n) {
			return resultConsumed(parent)
		}
	case "update_expression":
		return resultConsumed(parent)
	}

	return true
}

// resultConsumed reports whether the value an expression produces is used by
// its surroundings. `this.x_++` on its own line produces a value nobody
// looks at; `y = this.x_++` does not.
func resultConsumed(expr *sitter.Node) bool {
	parent := expr.Parent()
	if parent == nil {
		return false
	}

	switch parent.Type() {
	case "expression_statement":
		// A for-loop condition is consumed by the loop even though the
		// grammar wraps it in an expression_statement.
		if grand := parent.Parent(); grand != nil && grand.Type() == "for_statement" {
			return parser.SameNode(grand.ChildByFieldName("condition"), parent)
		}
		return false
	case "sequence_expression":
		if parser.SameNode(parent.ChildByFieldName("left"), expr) {
			return false
		}
		return resultConsumed(parent)
	case "parenthesized_expression":
		return resultConsumed(parent)
	case "for_statement":
		// Bare increment position: `for (;; this.x_++)`.
		if parser.SameNode(parent.ChildByFieldName("increment"), expr) {
			return false
		}
		return true
	}

	return true
}

// isCandidateDefinition reports whether a property reference looks like a
// definition site rather than an arbitrary use: a property on `this`, on a
// registered constructor or interface name, or on a prototype.
func (fc *fileCheck) isCandidateDefinition(n *sitter.Node) bool {
	target := n.ChildByFieldName("object")
	if target == nil {
		panic("unusedprops: property reference has no object")
	}

	if target.Type() == "this" {
		return true
	}

	if qn, ok := parser.QualifiedName(target, fc.source); ok && fc.registry[qn] {
		return true
	}

	if target.Type() == "member_expression" {
		if prop := target.ChildByFieldName("property"); prop != nil {
			return parser.GetNodeText(prop, fc.source) == "prototype"
		}
	}

	return false
}
