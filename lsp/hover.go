package lsp

import (
	"fmt"
	"strings"

	"github.com/dhamidi/java2py/java"
	"github.com/dhamidi/java2py/resolve"
)

// HoverText describes the type under the 1-based line and column of f:
// its qualified name and the Python annotation it renders to. Outside a
// type, a method name shows the stub signature and its parameter hints.
func HoverText(r *resolve.Resolver, f *java.File, line, column int) (string, bool) {
	if t := f.TypeAtPoint(line, column); t != nil {
		return typeHover(r, f, t), true
	}
	if m := f.MethodAtPoint(line, column); m != nil {
		return methodHover(r, f, m), true
	}
	return "", false
}

func typeHover(r *resolve.Resolver, f *java.File, t *java.Type) string {
	var sb strings.Builder
	hint, err := r.ResolveTypeHint(t, f)
	if err != nil {
		fmt.Fprintf(&sb, "`%s`: %s", t, err)
		return sb.String()
	}
	py, err := r.PythonResolve(t, f)
	if err != nil {
		fmt.Fprintf(&sb, "`%s`: %s", t, err)
		return sb.String()
	}
	fmt.Fprintf(&sb, "**%s**\n\nPython: `%s`", hint, py)
	return sb.String()
}

func methodHover(r *resolve.Resolver, f *java.File, m *java.Method) string {
	var types []string
	for i := range m.Parameters {
		py, err := r.PythonResolve(&m.Parameters[i].Type, f)
		if err != nil {
			return fmt.Sprintf("`%s`: %s", m, err)
		}
		types = append(types, py)
	}
	ret, err := r.PythonResolve(m.ReturnType, f)
	if err != nil {
		return fmt.Sprintf("`%s`: %s", m, err)
	}

	var sb strings.Builder
	sb.WriteString("```python\n")
	fmt.Fprintf(&sb, "def %s(%s):\n", m.PythonName(), strings.Join(m.ParameterNames(), ", "))
	fmt.Fprintf(&sb, "    # type: (%s) -> %s\n", strings.Join(types, ", "), ret)
	sb.WriteString("```")

	doc, err := m.Documentation()
	if err != nil {
		return sb.String()
	}
	if text := strings.TrimSpace(doc.Text); text != "" {
		sb.WriteString("\n\n")
		sb.WriteString(text)
	}
	var hints []string
	for _, p := range m.Parameters {
		if h, ok := doc.Param(p.Name); ok {
			hints = append(hints, fmt.Sprintf("- `%s`: %s", p.PythonName(), strings.Join(strings.Fields(h.Text), " ")))
		}
	}
	if len(hints) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(strings.Join(hints, "\n"))
	}
	return sb.String()
}
