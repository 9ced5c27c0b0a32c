package java

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/java2py/java/parser"
)

// FromSource parses source and builds its File view. name is the base
// file name used for declaration selection. A syntax error is returned as
// a *parser.SyntaxError.
func FromSource(source []byte, name string, opts ...parser.Option) (*File, error) {
	p := parser.ParseCompilationUnit(bytes.NewReader(source), opts...)
	node := p.Finish()
	if err := p.Err(); err != nil {
		return nil, err
	}
	return fileFromCompilationUnit(node, name), nil
}

// ParseFile reads and parses the Java file at path.
func ParseFile(path string) (*File, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), ".java")
	f, err := FromSource(source, name, parser.WithFile(path))
	if err != nil {
		return nil, err
	}
	f.Path = path
	return f, nil
}

func fileFromCompilationUnit(cu *parser.Node, name string) *File {
	f := &File{Name: name}

	for _, child := range cu.Children {
		switch {
		case child.Kind == parser.KindPackageDecl:
			f.Doc = child.Doc
			if qn := child.FirstChildOfKind(parser.KindQualifiedName); qn != nil {
				f.Package = qn.QualifiedName()
			}
		case child.Kind == parser.KindImportDecl:
			f.Imports = append(f.Imports, importFromNode(child))
		case child.Kind.IsTypeDecl():
			f.Types = append(f.Types, declarationFromNode(child))
		}
	}

	return f
}

func importFromNode(node *parser.Node) Import {
	imp := Import{}
	if qn := node.FirstChildOfKind(parser.KindQualifiedName); qn != nil {
		imp.Path = qn.QualifiedName()
	}
	for _, child := range node.ChildrenOfKind(parser.KindIdentifier) {
		switch child.TokenLiteral() {
		case "static":
			imp.Static = true
		case "*":
			imp.Wildcard = true
		}
	}
	return imp
}
