// Package jsdoc resolves JSDoc annotations attached to syntax nodes. It
// recognizes the small tag vocabulary the unused-property check cares about:
// visibility tags, @constructor, @interface, @record, and @typedef.
package jsdoc

import (
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Visibility is the declared access level of a property or method.
type Visibility int

const (
	VisibilityUnspecified Visibility = iota
	VisibilityPublic
	VisibilityProtected
	VisibilityPackage
	VisibilityPrivate
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityProtected:
		return "protected"
	case VisibilityPackage:
		return "package"
	case VisibilityPrivate:
		return "private"
	default:
		return "unspecified"
	}
}

// Info holds the parsed tags of a single doc comment.
type Info struct {
	Visibility    Visibility
	IsConstructor bool
	IsInterface   bool
	IsTypedef     bool
}

var tagPattern = regexp.MustCompile(`@([A-Za-z]+)\b`)

// Parse extracts the recognized tags from a doc comment's raw text.
// Unrecognized tags are ignored. @record is folded into IsInterface since
// both declare structural types whose members are part of the contract.
func Parse(comment string) Info {
	var info Info
	for _, m := range tagPattern.FindAllStringSubmatch(comment, -1) {
		switch m[1] {
		case "private":
			info.Visibility = VisibilityPrivate
		case "protected":
			info.Visibility = VisibilityProtected
		case "public":
			info.Visibility = VisibilityPublic
		case "package":
			info.Visibility = VisibilityPackage
		case "constructor":
			info.IsConstructor = true
		case "interface", "record":
			info.IsInterface = true
		case "typedef":
			info.IsTypedef = true
		}
	}
	return info
}

// Wrapper node types the annotation search is allowed to ascend through.
// A doc comment written above `x.y = function() {}` sits before the whole
// statement, so the search climbs from the inner node toward it.
var ascendable = map[string]bool{
	"variable_declarator":             true,
	"lexical_declaration":             true,
	"variable_declaration":            true,
	"assignment_expression":           true,
	"augmented_assignment_expression": true,
	"expression_statement":            true,
	"pair":                            true,
	"public_field_definition":         true,
	"field_definition":                true,
	"parenthesized_expression":        true,
	"export_statement":                true,
}

// Best finds the doc comment governing node: the nearest preceding doc
// comment of the node itself or of any enclosing declaration wrapper. The
// second return is false when no doc comment governs the node.
func Best(node *sitter.Node, source []byte) (Info, bool) {
	for cur := node; cur != nil; {
		if text, ok := precedingDocComment(cur, source); ok {
			return Parse(text), true
		}
		parent := cur.Parent()
		if parent == nil || !ascendable[parent.Type()] {
			return Info{}, false
		}
		cur = parent
	}
	return Info{}, false
}

// precedingDocComment scans backward over the comment siblings immediately
// before the node and returns the closest doc-style one.
func precedingDocComment(node *sitter.Node, source []byte) (string, bool) {
	for prev := node.PrevNamedSibling(); prev != nil && prev.Type() == "comment"; prev = prev.PrevNamedSibling() {
		text := nodeText(prev, source)
		if strings.HasPrefix(text, "/**") {
			return text, true
		}
	}
	return "", false
}

func nodeText(node *sitter.Node, source []byte) string {
	start, end := node.StartByte(), node.EndByte()
	if int(start) > len(source) || int(end) > len(source) || start > end {
		return ""
	}
	return string(source[start:end])
}
