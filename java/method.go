package java

import (
	"github.com/dhamidi/java2py/java/javadoc"
	"github.com/dhamidi/java2py/java/parser"
)

var reservedMethodNames = map[string]bool{
	"yield":  true,
	"def":    true,
	"return": true,
}

type Method struct {
	Name       string
	Parameters []Parameter
	// ReturnType is nil for void methods.
	ReturnType *Type
	Doc        string
	IsStatic   bool
	Span       parser.Span
}

// PythonName is Name with a trailing underscore when Name is reserved.
func (m Method) PythonName() string {
	if reservedMethodNames[m.Name] {
		return m.Name + "_"
	}
	return m.Name
}

// ParameterNames returns "self" followed by the Python name of every
// parameter.
func (m Method) ParameterNames() []string {
	names := make([]string, 0, len(m.Parameters)+1)
	names = append(names, "self")
	for _, p := range m.Parameters {
		names = append(names, p.PythonName())
	}
	return names
}

// Documentation decodes Doc with the method chain, extracting parameter,
// return and exception hints.
func (m Method) Documentation() (*javadoc.Documentation, error) {
	return javadoc.DecodeMethod(m.Doc)
}

func (m Method) String() string {
	s := "void"
	if m.ReturnType != nil {
		s = m.ReturnType.String()
	}
	s += " " + m.Name + "("
	for i, p := range m.Parameters {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ")"
}

func methodFromNode(node *parser.Node) Method {
	m := Method{
		Name: node.Name(),
		Doc:  node.Doc,
		Span: node.Span,
	}

	if mods := node.FirstChildOfKind(parser.KindModifiers); mods != nil {
		m.IsStatic = mods.HasModifier("static")
	}

	for _, child := range node.Children {
		if child.Kind == parser.KindType || child.Kind == parser.KindArrayType {
			m.ReturnType = typeFromNode(child)
			break
		}
	}

	if params := node.FirstChildOfKind(parser.KindParameters); params != nil {
		for _, p := range params.ChildrenOfKind(parser.KindParameter) {
			m.Parameters = append(m.Parameters, parameterFromNode(p))
		}
	}

	return m
}

func parameterFromNode(node *parser.Node) Parameter {
	p := Parameter{Name: node.Name(), Varargs: node.IsVarargs()}
	for _, child := range node.Children {
		if child.Kind == parser.KindType || child.Kind == parser.KindArrayType {
			if t := typeFromNode(child); t != nil {
				p.Type = *t
			}
			break
		}
	}
	if p.Varargs {
		p.Type.ArrayDepth++
	}
	return p
}
