package parser

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{"app.js", LangJavaScript},
		{"lib.mjs", LangJavaScript},
		{"legacy.cjs", LangJavaScript},
		{"service.ts", LangTypeScript},
		{"worker.mts", LangTypeScript},
		{"config.cts", LangTypeScript},
		{"view.tsx", LangTSX},
		{"widget.jsx", LangTSX},
		{"README.md", LangUnknown},
		{"main.go", LangUnknown},
		{"noext", LangUnknown},
	}

	for _, tt := range tests {
		if got := DetectLanguage(tt.path); got != tt.want {
			t.Errorf("DetectLanguage(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestParseJavaScript(t *testing.T) {
	p := New()
	defer p.Close()

	source := []byte("class Foo { bar() { return this.baz_; } }")
	result, err := p.Parse(source, LangJavaScript, "foo.js")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer result.Tree.Close()

	root := result.Tree.RootNode()
	if root.Type() != "program" {
		t.Errorf("root type = %q, want program", root.Type())
	}
	if root.HasError() {
		t.Errorf("unexpected parse error in %q", source)
	}

	classes := FindNodesByType(root, source, "class_declaration")
	if len(classes) != 1 {
		t.Fatalf("found %d class declarations, want 1", len(classes))
	}
	methods := FindNodesByType(root, source, "method_definition")
	if len(methods) != 1 {
		t.Fatalf("found %d method definitions, want 1", len(methods))
	}
}

func TestParseTypeScript(t *testing.T) {
	p := New()
	defer p.Close()

	source := []byte("class Svc { private cache_: string = ''; }")
	result, err := p.Parse(source, LangTypeScript, "svc.ts")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer result.Tree.Close()

	if result.Tree.RootNode().HasError() {
		t.Errorf("unexpected parse error in %q", source)
	}
}

func TestParseUnknownLanguage(t *testing.T) {
	p := New()
	defer p.Close()

	if _, err := p.Parse([]byte("x"), LangUnknown, "x.txt"); err == nil {
		t.Error("expected error for unknown language")
	}
}

func TestTraverseEnterExitOrder(t *testing.T) {
	p := New()
	defer p.Close()

	source := []byte("a.b;")
	result, err := p.Parse(source, LangJavaScript, "a.js")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer result.Tree.Close()

	var events []string
	Traverse(result.Tree.RootNode(), Hooks{
		Enter: func(n *sitter.Node) bool {
			events = append(events, "enter:"+n.Type())
			return true
		},
		Exit: func(n *sitter.Node) {
			events = append(events, "exit:"+n.Type())
		},
	})

	if len(events) == 0 {
		t.Fatal("no traversal events")
	}
	if events[0] != "enter:program" {
		t.Errorf("first event = %q, want enter:program", events[0])
	}
	if events[len(events)-1] != "exit:program" {
		t.Errorf("last event = %q, want exit:program", events[len(events)-1])
	}

	// Every enter must pair with an exit.
	depth := 0
	for _, ev := range events {
		if ev[:5] == "enter" {
			depth++
		} else {
			depth--
		}
		if depth < 0 {
			t.Fatalf("exit before matching enter in %v", events)
		}
	}
	if depth != 0 {
		t.Errorf("unbalanced traversal, depth %d at end", depth)
	}
}

func TestTraverseEnterFalseSkipsSubtree(t *testing.T) {
	p := New()
	defer p.Close()

	source := []byte("function f() { this.x_ = 1; }")
	result, err := p.Parse(source, LangJavaScript, "f.js")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer result.Tree.Close()

	sawMember := false
	Traverse(result.Tree.RootNode(), Hooks{
		Enter: func(n *sitter.Node) bool {
			if n.Type() == "member_expression" {
				sawMember = true
			}
			return n.Type() != "function_declaration"
		},
	})
	if sawMember {
		t.Error("traversal descended into a skipped subtree")
	}
}

func TestQualifiedName(t *testing.T) {
	p := New()
	defer p.Close()

	tests := []struct {
		source string
		want   string
		ok     bool
	}{
		{"a;", "a", true},
		{"a.b;", "a.b", true},
		{"a.b.c;", "a.b.c", true},
		{"this.x_;", "this.x_", true},
		{"f().x;", "", false},
		{"a[b].c;", "", false},
	}

	for _, tt := range tests {
		source := []byte(tt.source)
		result, err := p.Parse(source, LangJavaScript, "q.js")
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tt.source, err)
		}

		stmt := result.Tree.RootNode().NamedChild(0)
		expr := stmt.NamedChild(0)
		got, ok := QualifiedName(expr, source)
		if ok != tt.ok || got != tt.want {
			t.Errorf("QualifiedName(%q) = (%q, %v), want (%q, %v)", tt.source, got, ok, tt.want, tt.ok)
		}
		result.Tree.Close()
	}
}

func TestBestLValueName(t *testing.T) {
	p := New()
	defer p.Close()

	tests := []struct {
		name   string
		source string
		want   string
		ok     bool
	}{
		{"class declaration", "class Foo {}", "Foo", true},
		{"function declaration", "function bar() {}", "bar", true},
		{"var assigned class", "var Foo = class {};", "Foo", true},
		{"const assigned function", "const f = function() {};", "f", true},
		{"qualified assignment", "ns.widget.Foo = class {};", "ns.widget.Foo", true},
		{"named expression binding wins", "ns.Foo = class Inner {};", "ns.Foo", true},
		{"object literal value", "var o = {Foo: class {}};", "Foo", true},
		{"anonymous iife", "(function() {})();", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := []byte(tt.source)
			result, err := p.Parse(source, LangJavaScript, "b.js")
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			defer result.Tree.Close()

			decls := FindNodes(result.Tree.RootNode(), source, func(n *sitter.Node) bool {
				switch n.Type() {
				case "class_declaration", "class", "function_declaration", "function_expression", "function":
					return true
				}
				return false
			})
			if len(decls) == 0 {
				t.Fatalf("no class/function node in %q", tt.source)
			}

			got, ok := BestLValueName(decls[0], source)
			if ok != tt.ok || got != tt.want {
				t.Errorf("BestLValueName = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`"prop"`, "prop"},
		{`'prop'`, "prop"},
		{"`prop`", "prop"},
		{"bare", "bare"},
		{`"`, `"`},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Unquote(tt.in); got != tt.want {
			t.Errorf("Unquote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
