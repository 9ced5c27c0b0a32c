package index

import (
	"errors"
	"path/filepath"

	"github.com/dhamidi/java2py/java"
	"github.com/dhamidi/java2py/java/parser"
)

// Package is one directory of the source tree.
type Package struct {
	Name       string
	Dir        string
	classNames []string
	reporter   Reporter
}

// ClassNames lists the base names of the .java files directly in the
// package directory, sorted.
func (p *Package) ClassNames() []string {
	names := make([]string, len(p.classNames))
	copy(names, p.classNames)
	return names
}

func (p *Package) Path(className string) string {
	return filepath.Join(p.Dir, className+".java")
}

// ParseClass reads and parses the named class file on every call. A file
// with syntax errors is reported and yields (nil, nil).
func (p *Package) ParseClass(name string) (*java.File, error) {
	path := p.Path(name)
	f, err := java.ParseFile(path)
	if err != nil {
		var syntaxErr *parser.SyntaxError
		if errors.As(err, &syntaxErr) {
			p.reporter.Report(path, err)
			return nil, nil
		}
		return nil, err
	}
	return f, nil
}
