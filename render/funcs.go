package render

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/dhamidi/java2py/java"
	"github.com/dhamidi/java2py/java/javadoc"
	"github.com/dhamidi/java2py/resolve"
)

func funcMap(r *resolve.Resolver) template.FuncMap {
	return template.FuncMap{
		"resolve_type": r.ResolveType,
		"resolve_typehint": func(v any, f *java.File) (string, error) {
			t, err := typeOf(v)
			if err != nil {
				return "", err
			}
			return r.ResolveTypeHint(t, f)
		},
		"convert_type": resolve.ConvertType,
		"python_resolve": func(v any, f *java.File) (string, error) {
			t, err := typeOf(v)
			if err != nil {
				return "", err
			}
			return r.PythonResolve(t, f)
		},
		"docstring": docstring,
		"indent":    indent,
		"join":      strings.Join,
	}
}

func typeOf(v any) (*java.Type, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case *java.Type:
		return t, nil
	case java.Type:
		return &t, nil
	}
	return nil, fmt.Errorf("expected a java type, got %T", v)
}

// docstring formats doc as a triple-quoted block with one line per hint.
// Parameter hints use the stub's parameter names. It returns "" for empty
// documentation.
func docstring(doc *javadoc.Documentation) string {
	if doc.IsEmpty() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\"\"\"\n")
	text := strings.TrimSpace(doc.Text)
	if text != "" {
		sb.WriteString(quote(text))
		sb.WriteString("\n")
	}

	if len(doc.Params) > 0 || doc.Return != nil || len(doc.Exceptions) > 0 {
		if text != "" {
			sb.WriteString("\n")
		}
		for _, p := range doc.Params {
			fmt.Fprintf(&sb, ":param %s: %s\n", java.PythonParameterName(p.Name), oneLine(p.Text))
		}
		if doc.Return != nil {
			fmt.Fprintf(&sb, ":return: %s\n", oneLine(doc.Return.Text))
		}
		for _, e := range doc.Exceptions {
			fmt.Fprintf(&sb, ":raises %s: %s\n", e.Name, oneLine(e.Text))
		}
	}

	sb.WriteString("\"\"\"")
	return sb.String()
}

func oneLine(s string) string {
	return quote(strings.Join(strings.Fields(s), " "))
}

func quote(s string) string {
	return strings.ReplaceAll(s, `"""`, `\"\"\"`)
}

// indent prefixes every non-empty line of s with n spaces.
func indent(n int, s string) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = pad + line
		} else {
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n")
}
