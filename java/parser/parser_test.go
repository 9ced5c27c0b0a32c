package parser

import (
	"errors"
	"strings"
	"testing"
)

func parse(t *testing.T, src string) *Node {
	t.Helper()
	node, err := Parse([]byte(src), WithFile("Test.java"))
	if err != nil {
		t.Fatalf("Parse: %v\n%s", err, node)
	}
	return node
}

func firstOfKind(node *Node, kind NodeKind) *Node {
	var found *Node
	node.Walk(func(n *Node) bool {
		if n.Kind == kind {
			found = n
			return false
		}
		return true
	})
	return found
}

func allOfKind(node *Node, kind NodeKind) []*Node {
	var found []*Node
	node.Walk(func(n *Node) bool {
		if n.Kind == kind {
			found = append(found, n)
		}
		return true
	})
	return found
}

func TestParsePackageAndImports(t *testing.T) {
	node := parse(t, `
/** Package docs. */
package com.example.app;

import java.util.List;
import java.util.*;
import static java.lang.Math.max;

class A {}
`)

	pkg := node.FirstChildOfKind(KindPackageDecl)
	if pkg == nil {
		t.Fatal("missing package declaration")
	}
	if got := pkg.FirstChildOfKind(KindQualifiedName).QualifiedName(); got != "com.example.app" {
		t.Errorf("package = %q, want %q", got, "com.example.app")
	}
	if pkg.Doc != "/** Package docs. */" {
		t.Errorf("package doc = %q", pkg.Doc)
	}

	imports := node.ChildrenOfKind(KindImportDecl)
	if len(imports) != 3 {
		t.Fatalf("got %d imports, want 3", len(imports))
	}
	if got := imports[0].FirstChildOfKind(KindQualifiedName).QualifiedName(); got != "java.util.List" {
		t.Errorf("import 0 = %q", got)
	}
	if last := imports[1].Children[len(imports[1].Children)-1]; last.TokenLiteral() != "*" {
		t.Errorf("import 1 is not a wildcard: %s", imports[1])
	}
	if first := imports[2].Children[0]; first.TokenLiteral() != "static" {
		t.Errorf("import 2 is not static: %s", imports[2])
	}
}

func TestParseTypeDeclarations(t *testing.T) {
	tests := []struct {
		src  string
		kind NodeKind
		name string
	}{
		{"class Foo {}", KindClassDecl, "Foo"},
		{"public final class Foo<T extends Comparable<T>> extends Bar implements Baz, Qux {}", KindClassDecl, "Foo"},
		{"interface Shape extends A, B {}", KindInterfaceDecl, "Shape"},
		{"public sealed interface Shape permits Circle, Square {}", KindInterfaceDecl, "Shape"},
		{"enum Color { RED, GREEN, BLUE }", KindEnumDecl, "Color"},
		{"record Point(int x, int y) implements Serializable {}", KindRecordDecl, "Point"},
		{"@Retention(RUNTIME) public @interface Marker { String value() default \"\"; }", KindAnnotationDecl, "Marker"},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.kind.String(), func(t *testing.T) {
			node := parse(t, tt.src)
			if len(node.Children) != 1 {
				t.Fatalf("got %d children, want 1:\n%s", len(node.Children), node)
			}
			decl := node.Children[0]
			if decl.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", decl.Kind, tt.kind)
			}
			if got := decl.Name(); got != tt.name {
				t.Errorf("name = %q, want %q", got, tt.name)
			}
		})
	}
}

func TestParseSupertypes(t *testing.T) {
	node := parse(t, "class Foo extends Bar<String> implements Baz, java.io.Serializable {}")
	decl := node.Children[0]

	ext := decl.FirstChildOfKind(KindExtendsClause)
	if ext == nil || len(ext.Children) != 1 {
		t.Fatalf("extends clause = %v", ext)
	}
	if ext.Children[0].FirstChildOfKind(KindTypeArguments) == nil {
		t.Errorf("extends type lost its arguments")
	}

	impl := decl.FirstChildOfKind(KindImplementsClause)
	if impl == nil || len(impl.Children) != 2 {
		t.Fatalf("implements clause = %v", impl)
	}
	if got := impl.Children[1].FirstChildOfKind(KindQualifiedName).QualifiedName(); got != "java.io.Serializable" {
		t.Errorf("got %q, want %q", got, "java.io.Serializable")
	}
}

func TestParseMembers(t *testing.T) {
	node := parse(t, `
public class Widget {
    public static final int MAX = 10;
    private String name = "w", label;
    static { init(); }
    { counter++; }

    public Widget(String name) { this.name = name; }

    /** Does the thing. */
    public <T> List<T> apply(Map<String, ? extends T> in, int... rest) throws IOException, Error {
        if (in == null) { return null; }
        return new ArrayList<>();
    }

    abstract void nothing();

    class Inner {}
}
`)

	body := node.Children[0].FirstChildOfKind(KindClassBody)

	fields := body.ChildrenOfKind(KindFieldDecl)
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(fields))
	}
	if got := len(fields[1].ChildrenOfKind(KindVarDeclarator)); got != 2 {
		t.Errorf("second field has %d declarators, want 2", got)
	}
	if len(body.ChildrenOfKind(KindInitializer)) != 2 {
		t.Errorf("want 2 initializers")
	}
	if len(body.ChildrenOfKind(KindConstructorDecl)) != 1 {
		t.Errorf("want 1 constructor")
	}
	if len(body.ChildrenOfKind(KindClassDecl)) != 1 {
		t.Errorf("want 1 nested class")
	}

	methods := body.ChildrenOfKind(KindMethodDecl)
	if len(methods) != 2 {
		t.Fatalf("got %d methods, want 2", len(methods))
	}
	apply := methods[0]
	if apply.Name() != "apply" {
		t.Errorf("name = %q, want apply", apply.Name())
	}
	if apply.Doc != "/** Does the thing. */" {
		t.Errorf("doc = %q", apply.Doc)
	}
	if apply.FirstChildOfKind(KindTypeParameters) == nil {
		t.Errorf("missing type parameters")
	}
	params := apply.FirstChildOfKind(KindParameters).ChildrenOfKind(KindParameter)
	if len(params) != 2 {
		t.Fatalf("got %d params, want 2", len(params))
	}
	if params[0].IsVarargs() || !params[1].IsVarargs() {
		t.Errorf("varargs flags wrong")
	}
	if params[1].Name() != "rest" {
		t.Errorf("param name = %q, want rest", params[1].Name())
	}
	if firstOfKind(params[0], KindWildcard) == nil {
		t.Errorf("missing wildcard in %s", params[0])
	}
	if throws := apply.FirstChildOfKind(KindThrowsList); throws == nil || len(throws.Children) != 2 {
		t.Errorf("throws list = %v", throws)
	}
	if methods[1].FirstChildOfKind(KindBlock) != nil {
		t.Errorf("abstract method has a body")
	}
}

func TestParseFieldInitializers(t *testing.T) {
	tests := []struct {
		init  string
		kind  NodeKind
		token string
	}{
		{"42", KindLiteral, "42"},
		{"-1", KindLiteral, "-1"},
		{"-2.5", KindLiteral, "-2.5"},
		{`"text"`, KindLiteral, `"text"`},
		{"true", KindLiteral, "true"},
		{"null", KindLiteral, "null"},
		{"'c'", KindLiteral, "'c'"},
		{"OTHER", KindQualifiedName, ""},
		{"Other.VALUE", KindQualifiedName, ""},
		{"1 << 4", KindExpr, "1 << 4"},
		{"new HashMap<String, Integer>()", KindExpr, "new HashMap<String, Integer>()"},
		{"{1, 2, 3}", KindExpr, "{1, 2, 3}"},
		{"a < b", KindExpr, "a < b"},
	}

	for _, tt := range tests {
		t.Run(tt.init, func(t *testing.T) {
			node := parse(t, "class C { Object x = "+tt.init+"; }")
			decl := firstOfKind(node, KindVarDeclarator)
			if len(decl.Children) != 2 {
				t.Fatalf("declarator = %s", decl)
			}
			value := decl.Children[1]
			if value.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", value.Kind, tt.kind)
			}
			if tt.token != "" && value.TokenLiteral() != tt.token {
				t.Errorf("token = %q, want %q", value.TokenLiteral(), tt.token)
			}
		})
	}
}

func TestParseArrayTypes(t *testing.T) {
	node := parse(t, "class C { int[][] grid; String names[]; byte[] data() { return null; } }")

	types := allOfKind(node, KindArrayType)
	// int[][] nests twice, names[] and byte[] once each
	if len(types) != 4 {
		t.Fatalf("got %d array types, want 4:\n%s", len(types), node)
	}

	grid := firstOfKind(node, KindFieldDecl).Children[1]
	if grid.Kind != KindArrayType || grid.Children[0].Kind != KindArrayType {
		t.Errorf("int[][] = %s", grid)
	}
}

func TestParseDocComments(t *testing.T) {
	node := parse(t, `
/** Class docs. */
@Deprecated
public class A {
    /** Field docs. */
    int x;

    /* not a doc comment */
    int y;

    /** Stale. */
    /** Closest. */
    // trailing
    void m() {}
}
`)

	class := node.Children[0]
	if class.Doc != "/** Class docs. */" {
		t.Errorf("class doc = %q", class.Doc)
	}

	fields := class.FirstChildOfKind(KindClassBody).ChildrenOfKind(KindFieldDecl)
	if fields[0].Doc != "/** Field docs. */" {
		t.Errorf("x doc = %q", fields[0].Doc)
	}
	if fields[1].Doc != "" {
		t.Errorf("y doc = %q, want empty", fields[1].Doc)
	}

	m := class.FirstChildOfKind(KindClassBody).FirstChildOfKind(KindMethodDecl)
	if m.Doc != "/** Closest. */" {
		t.Errorf("m doc = %q", m.Doc)
	}
}

func TestParseEnumWithBody(t *testing.T) {
	node := parse(t, `
enum Op {
    PLUS("+") { int apply(int a, int b) { return a + b; } },
    MINUS("-");

    private final String symbol;
    Op(String symbol) { this.symbol = symbol; }
}
`)

	body := node.Children[0].FirstChildOfKind(KindClassBody)
	if got := len(body.ChildrenOfKind(KindEnumConstant)); got != 2 {
		t.Errorf("got %d constants, want 2", got)
	}
	if got := len(body.ChildrenOfKind(KindFieldDecl)); got != 1 {
		t.Errorf("got %d fields, want 1", got)
	}
	if got := len(body.ChildrenOfKind(KindConstructorDecl)); got != 1 {
		t.Errorf("got %d constructors, want 1", got)
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []string{
		"class {",
		"class A { int x = ; }",
		"class A { void m( }",
		"class A { /** unterminated ",
		"package ;",
		"class A extends {}",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			node, err := Parse([]byte(src), WithFile("Bad.java"))
			if err == nil {
				t.Fatalf("expected an error, tree:\n%s", node)
			}
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("got %T, want *SyntaxError", err)
			}
			if !strings.HasPrefix(err.Error(), "Bad.java:") {
				t.Errorf("error %q lacks a file position", err)
			}
		})
	}
}

func TestParseWithComments(t *testing.T) {
	p := ParseCompilationUnit(strings.NewReader("// one\nclass A { /* two */ }"), WithComments())
	p.Finish()
	if got := len(p.Comments()); got != 2 {
		t.Errorf("got %d comments, want 2", got)
	}
}

func TestNodeJSON(t *testing.T) {
	node := parse(t, "/** Doc. */ class A {}")
	data, err := node.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"kind":"CompilationUnit"`, `"kind":"ClassDecl"`, `"doc":true`, `"token":"A"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("%s missing %s", data, want)
		}
	}
}
