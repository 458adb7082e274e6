package unusedprops

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/deadprop/deadprop/pkg/convention"
	"github.com/deadprop/deadprop/pkg/jsdoc"
	"github.com/deadprop/deadprop/pkg/parser"
)

// candidate is a private property definition that will be reported unless a
// read of the same name shows up elsewhere in the file.
type candidate struct {
	name string
	line uint32
	col  uint32
}

// fileCheck holds the traversal state for a single file. Every file gets a
// fresh instance, so nothing leaks between files.
type fileCheck struct {
	path   string
	source []byte
	conv   *convention.Convention

	// registry holds qualified names of constructors and interfaces.
	// When frozen it was built by a prior registration pass and must not
	// be written to, since it is shared across worker goroutines.
	registry map[string]bool
	frozen   bool

	used       map[string]bool
	candidates []candidate
}

func newFileCheck(path string, source []byte, conv *convention.Convention, registry map[string]bool, frozen bool) *fileCheck {
	if registry == nil {
		registry = make(map[string]bool)
	}
	return &fileCheck{
		path:   path,
		source: source,
		conv:   conv,
		// ES class constructors are invoked structurally by `new`, so the
		// name can never be flagged.
		used:     map[string]bool{"constructor": true},
		registry: registry,
		frozen:   frozen,
	}
}

// run traverses the file once, dispatching each node by kind.
func (fc *fileCheck) run(root *sitter.Node) {
	parser.Traverse(root, parser.Hooks{Enter: fc.enter})
}

func (fc *fileCheck) enter(n *sitter.Node) bool {
	switch k := classify(n); k {
	case kindPropertyRef:
		fc.handlePropertyRef(n)
	case kindMemberDecl:
		fc.handleMemberDecl(n)
	case kindObjectLiteral:
		fc.handleObjectLiteral(n)
	case kindCall:
		fc.handleCall(n)
	case kindFunction:
		fc.handleFunction(n)
	case kindClass:
		fc.handleClass(n)
	case kindFileBoundary, kindOther:
		// File state lives in fc itself; nothing to do per node.
	default:
		panic(fmt.Sprintf("unusedprops: unhandled node kind %s", k))
	}
	return true
}

// report returns the candidates whose names were never read.
func (fc *fileCheck) report() []Finding {
	findings := make([]Finding, 0)
	for _, c := range fc.candidates {
		if !fc.used[c.name] {
			findings = append(findings, NewFinding(c.name, fc.path, c.line, c.col))
		}
	}
	return findings
}

// handlePropertyRef processes `obj.prop`. A reference that pins the property
// or does not look like a definition site marks the name as read. Definition
// sites of checkable-private properties become removal candidates.
func (fc *fileCheck) handlePropertyRef(n *sitter.Node) {
	prop := n.ChildByFieldName("property")
	if prop == nil {
		// Incomplete member expression from a parse error.
		return
	}
	name := parser.GetNodeText(prop, fc.source)
	if name == "" {
		return
	}

	if fc.isPinningUse(n) || !fc.isCandidateDefinition(n) {
		fc.used[name] = true
		return
	}
	if fc.isCheckablePrivate(n) {
		fc.addCandidate(name, prop)
	}
}

// handleMemberDecl processes method and field declarations inside a class
// body. Declaring a private member does not use it, so private members
// become candidates; object-literal methods are handled with their literal.
func (fc *fileCheck) handleMemberDecl(n *sitter.Node) {
	parent := n.Parent()
	if parent == nil || parent.Type() != "class_body" {
		return
	}

	nameNode := n.ChildByFieldName("name")
	if nameNode == nil || nameNode.Type() == "computed_property_name" {
		return
	}
	name := parser.GetNodeText(nameNode, fc.source)
	if name == "" {
		return
	}

	if fc.hasPrivateModifier(n) || fc.hasPrivateAnnotation(n) {
		fc.addCandidate(name, nameNode)
	}
}

// handleObjectLiteral marks every statically-named key of an object literal
// as used. Literals flow into mixins, defineProperties calls, and structural
// positions the check cannot track, so their keys always pin.
func (fc *fileCheck) handleObjectLiteral(n *sitter.Node) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "pair":
			if key := child.ChildByFieldName("key"); key != nil {
				if name, ok := parser.PropertyKeyName(key, fc.source); ok {
					fc.used[name] = true
				}
			}
		case "shorthand_property_identifier":
			fc.used[parser.GetNodeText(child, fc.source)] = true
		case "method_definition":
			if nameNode := child.ChildByFieldName("name"); nameNode != nil && nameNode.Type() != "computed_property_name" {
				fc.used[parser.GetNodeText(nameNode, fc.source)] = true
			}
		}
	}
}

// handleCall recognizes property-reflection calls. Their string-literal
// first argument names a property by string, which counts as a read.
func (fc *fileCheck) handleCall(n *sitter.Node) {
	fn := n.ChildByFieldName("function")
	qn, ok := parser.QualifiedName(fn, fc.source)
	if !ok || !fc.conv.IsPropertyRenameFunction(qn) {
		return
	}

	args := n.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return
	}
	first := args.NamedChild(0)
	if first.Type() == "string" {
		fc.used[parser.Unquote(parser.GetNodeText(first, fc.source))] = true
	}
}

// handleFunction registers functions annotated @constructor or @interface
// under their best l-value name, so properties later attached to that name
// are treated as definitions.
func (fc *fileCheck) handleFunction(n *sitter.Node) {
	if fc.frozen {
		return
	}
	info, ok := jsdoc.Best(n, fc.source)
	if !ok || (!info.IsConstructor && !info.IsInterface) {
		return
	}
	if name, ok := parser.BestLValueName(n, fc.source); ok {
		fc.registry[name] = true
	}
}

// handleClass registers every class under its best l-value name.
func (fc *fileCheck) handleClass(n *sitter.Node) {
	if fc.frozen {
		return
	}
	if name, ok := parser.BestLValueName(n, fc.source); ok {
		fc.registry[name] = true
	}
}

func (fc *fileCheck) addCandidate(name string, at *sitter.Node) {
	pt := at.StartPoint()
	fc.candidates = append(fc.candidates, candidate{
		name: name,
		line: pt.Row + 1,
		col:  pt.Column + 1,
	})
}

// isCheckablePrivate reports whether a property definition is annotated
// @private and is an actual value. Typedefs and interface-member stubs
// declare types or contracts, not storage, so they are exempt.
func (fc *fileCheck) isCheckablePrivate(n *sitter.Node) bool {
	info, ok := jsdoc.Best(n, fc.source)
	if !ok {
		return false
	}
	return info.Visibility == jsdoc.VisibilityPrivate && !info.IsTypedef && !info.IsInterface
}

// hasPrivateAnnotation is isCheckablePrivate for class members, which carry
// their doc comment directly.
func (fc *fileCheck) hasPrivateAnnotation(n *sitter.Node) bool {
	return fc.isCheckablePrivate(n)
}

// hasPrivateModifier reports whether a class member carries the TypeScript
// `private` accessibility modifier.
func (fc *fileCheck) hasPrivateModifier(n *sitter.Node) bool {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "accessibility_modifier" {
			return parser.GetNodeText(child, fc.source) == "private"
		}
	}
	return false
}
