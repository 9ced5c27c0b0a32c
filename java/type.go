package java

import (
	"strings"

	"github.com/dhamidi/java2py/java/parser"
)

type TypeKind int

const (
	TypeInvalid TypeKind = iota
	TypePrimitive
	TypeReference
)

func (k TypeKind) String() string {
	switch k {
	case TypePrimitive:
		return "primitive"
	case TypeReference:
		return "reference"
	}
	return "invalid"
}

// Type is a primitive or reference type as written in a declaration.
// Only the first type argument is kept: stubs describe List<T> and arrays,
// nothing richer.
type Type struct {
	Kind       TypeKind
	Name       string
	ArrayDepth int
	Argument   *Type
	Span       parser.Span
}

func (t Type) String() string {
	var sb strings.Builder
	sb.WriteString(t.Name)
	if t.Argument != nil {
		sb.WriteString("<")
		sb.WriteString(t.Argument.String())
		sb.WriteString(">")
	}
	for i := 0; i < t.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

func (t Type) IsPrimitive() bool {
	return t.Kind == TypePrimitive
}

func (t Type) HasArgument() bool {
	return t.Argument != nil
}

// IsList reports whether t is java.util.List, written qualified or not.
func (t Type) IsList() bool {
	return t.Kind == TypeReference && (t.Name == "List" || t.Name == "java.util.List")
}

// typeFromNode converts a KindType or KindArrayType node. It returns nil
// for void and for error nodes.
func typeFromNode(node *parser.Node) *Type {
	if node == nil {
		return nil
	}

	depth := 0
	for node.Kind == parser.KindArrayType {
		depth++
		inner := node.FirstChildOfKind(parser.KindArrayType)
		if inner == nil {
			inner = node.FirstChildOfKind(parser.KindType)
		}
		if inner == nil {
			return nil
		}
		node = inner
	}
	if node.Kind != parser.KindType {
		return nil
	}

	t := &Type{ArrayDepth: depth, Span: node.Span}

	var names []string
	for _, child := range node.Children {
		switch child.Kind {
		case parser.KindIdentifier:
			name := child.TokenLiteral()
			if name == "void" {
				if depth == 0 {
					return nil
				}
				t.Kind = TypeInvalid
			} else {
				t.Kind = TypePrimitive
			}
			t.Name = name
		case parser.KindQualifiedName:
			t.Kind = TypeReference
			names = append(names, child.QualifiedName())
		case parser.KindTypeArguments:
			if t.Argument == nil {
				t.Argument = typeArgumentFromNode(child)
			}
		}
	}
	if t.Kind == TypeReference {
		t.Name = strings.Join(names, ".")
	}
	return t
}

// typeArgumentFromNode returns the first argument of a KindTypeArguments
// node. Wildcards stand for their bound; "?" alone stands for Object.
func typeArgumentFromNode(args *parser.Node) *Type {
	if len(args.Children) == 0 {
		return nil
	}
	arg := args.Children[0]
	if arg.Kind != parser.KindWildcard {
		return typeFromNode(arg)
	}
	for _, child := range arg.Children {
		if child.Kind == parser.KindType || child.Kind == parser.KindArrayType {
			return typeFromNode(child)
		}
	}
	return &Type{Kind: TypeReference, Name: "Object", Span: arg.Span}
}
