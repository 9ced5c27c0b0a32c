package java

import (
	"github.com/dhamidi/java2py/java/javadoc"
	"github.com/dhamidi/java2py/java/parser"
)

type DeclarationKind string

const (
	DeclarationClass      DeclarationKind = "class"
	DeclarationInterface  DeclarationKind = "interface"
	DeclarationEnum       DeclarationKind = "enum"
	DeclarationRecord     DeclarationKind = "record"
	DeclarationAnnotation DeclarationKind = "annotation"
)

// ObjectBase is the inheritance marker of a declaration without supertypes.
const ObjectBase = "object"

// Declaration is a top-level type declaration reduced to what a stub
// needs.
type Declaration struct {
	Name      string
	Kind      DeclarationKind
	Methods   []Method
	Constants []Constant
	Doc       string
	// Supertypes lists extended types first, then implemented ones.
	Supertypes []Type
	Span       parser.Span
}

// Inheritance returns the supertype names in declaration order, or
// ["object"] when there are none.
func (d *Declaration) Inheritance() []string {
	if len(d.Supertypes) == 0 {
		return []string{ObjectBase}
	}
	names := make([]string, len(d.Supertypes))
	for i, t := range d.Supertypes {
		names[i] = t.Name
	}
	return names
}

// IsBase reports whether d has no supertypes.
func (d *Declaration) IsBase() bool {
	return len(d.Supertypes) == 0
}

func (d *Declaration) Documentation() (*javadoc.Documentation, error) {
	return javadoc.Decode(d.Doc)
}

func declarationKind(kind parser.NodeKind) DeclarationKind {
	switch kind {
	case parser.KindClassDecl:
		return DeclarationClass
	case parser.KindInterfaceDecl:
		return DeclarationInterface
	case parser.KindEnumDecl:
		return DeclarationEnum
	case parser.KindRecordDecl:
		return DeclarationRecord
	case parser.KindAnnotationDecl:
		return DeclarationAnnotation
	}
	return ""
}

func declarationFromNode(node *parser.Node) *Declaration {
	d := &Declaration{
		Name: node.Name(),
		Kind: declarationKind(node.Kind),
		Doc:  node.Doc,
		Span: node.Span,
	}

	for _, kind := range []parser.NodeKind{parser.KindExtendsClause, parser.KindImplementsClause} {
		clause := node.FirstChildOfKind(kind)
		if clause == nil {
			continue
		}
		for _, child := range clause.Children {
			if t := typeFromNode(child); t != nil {
				d.Supertypes = append(d.Supertypes, *t)
			}
		}
	}

	body := node.FirstChildOfKind(parser.KindClassBody)
	if body == nil {
		return d
	}

	allConstant := d.Kind == DeclarationInterface || d.Kind == DeclarationAnnotation
	for _, member := range body.Children {
		switch member.Kind {
		case parser.KindMethodDecl:
			d.Methods = append(d.Methods, methodFromNode(member))
		case parser.KindFieldDecl:
			mods := member.FirstChildOfKind(parser.KindModifiers)
			if allConstant || (mods.HasModifier("static") && mods.HasModifier("final")) {
				d.Constants = append(d.Constants, constantsFromField(member)...)
			}
		case parser.KindEnumConstant:
			d.Constants = append(d.Constants, Constant{
				Name:  member.Name(),
				Value: "None",
				Type:  Type{Kind: TypeReference, Name: d.Name, Span: member.Span},
				Doc:   member.Doc,
				Span:  member.Span,
			})
		}
	}

	return d
}
