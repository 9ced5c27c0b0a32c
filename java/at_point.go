package java

import "github.com/dhamidi/java2py/java/parser"

// TypeAtPoint returns the innermost type written at the given 1-based line
// and column, or nil. Nested type arguments win over the type enclosing
// them.
func (f *File) TypeAtPoint(line, column int) *Type {
	pos := parser.Position{Line: line, Column: column}

	var best *Type
	consider := func(t *Type) {
		for ; t != nil; t = t.Argument {
			if !positionInSpan(pos, t.Span) {
				return
			}
			if best == nil || spanSize(t.Span) <= spanSize(best.Span) {
				best = t
			}
		}
	}

	for _, d := range f.Types {
		for i := range d.Supertypes {
			consider(&d.Supertypes[i])
		}
		for i := range d.Constants {
			consider(&d.Constants[i].Type)
		}
		for i := range d.Methods {
			m := &d.Methods[i]
			consider(m.ReturnType)
			for j := range m.Parameters {
				consider(&m.Parameters[j].Type)
			}
		}
	}

	return best
}

// MethodAtPoint returns the method whose declaration spans the position.
func (f *File) MethodAtPoint(line, column int) *Method {
	pos := parser.Position{Line: line, Column: column}
	for _, d := range f.Types {
		for i := range d.Methods {
			if positionInSpan(pos, d.Methods[i].Span) {
				return &d.Methods[i]
			}
		}
	}
	return nil
}

func spanSize(span parser.Span) int {
	if span.End.Line == span.Start.Line {
		return span.End.Column - span.Start.Column
	}
	return (span.End.Line-span.Start.Line)*1000 + span.End.Column
}

func positionInSpan(pos parser.Position, span parser.Span) bool {
	if pos.Line < span.Start.Line || pos.Line > span.End.Line {
		return false
	}
	if pos.Line == span.Start.Line && pos.Column < span.Start.Column {
		return false
	}
	if pos.Line == span.End.Line && pos.Column >= span.End.Column {
		return false
	}
	return true
}
