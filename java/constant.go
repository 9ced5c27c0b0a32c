package java

import (
	"github.com/dhamidi/java2py/java/javadoc"
	"github.com/dhamidi/java2py/java/parser"
)

// Constant is a field whose value is fixed at declaration time: any field
// of an interface, or a static final field of a class.
type Constant struct {
	Name string
	// Value is the literal text, the referenced member name, or "None".
	Value string
	Type  Type
	Doc   string
	Span  parser.Span
}

// PythonValue spells Value as a Python expression.
func (c Constant) PythonValue() string {
	switch c.Value {
	case "true":
		return "True"
	case "false":
		return "False"
	case "null":
		return "None"
	}
	return c.Value
}

func (c Constant) Documentation() (*javadoc.Documentation, error) {
	return javadoc.Decode(c.Doc)
}

// constantsFromField returns one Constant per declarator of a field.
func constantsFromField(node *parser.Node) []Constant {
	var fieldType *Type
	for _, child := range node.Children {
		if child.Kind == parser.KindType || child.Kind == parser.KindArrayType {
			fieldType = typeFromNode(child)
			break
		}
	}

	var constants []Constant
	for _, decl := range node.ChildrenOfKind(parser.KindVarDeclarator) {
		c := Constant{
			Name:  decl.Name(),
			Value: "None",
			Doc:   node.Doc,
			Span:  decl.Span,
		}
		if fieldType != nil {
			c.Type = *fieldType
		}
		for _, child := range decl.Children {
			switch child.Kind {
			case parser.KindArrayType:
				// int a[] = ...
				if t := typeFromNode(child); t != nil {
					c.Type = *t
				}
			case parser.KindLiteral:
				c.Value = child.TokenLiteral()
			case parser.KindQualifiedName:
				c.Value = child.Children[len(child.Children)-1].TokenLiteral()
			}
		}
		constants = append(constants, c)
	}
	return constants
}
