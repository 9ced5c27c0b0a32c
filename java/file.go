package java

import (
	"errors"
	"fmt"

	"github.com/dhamidi/java2py/java/javadoc"
)

var (
	ErrNoDeclaration        = errors.New("no type declaration")
	ErrAmbiguousDeclaration = errors.New("ambiguous type declaration")
)

// File is one parsed compilation unit.
type File struct {
	Path string
	// Name is the base file name without the .java suffix.
	Name    string
	Package string
	Imports []Import
	// Doc is the doc comment in front of the package clause.
	Doc   string
	Types []*Declaration
}

// Declaration selects the primary declaration of f: the only top-level
// type, or the one named like the file when there are several.
func (f *File) Declaration() (*Declaration, error) {
	switch len(f.Types) {
	case 0:
		return nil, fmt.Errorf("%s: %w", f.Name, ErrNoDeclaration)
	case 1:
		return f.Types[0], nil
	}

	var match *Declaration
	for _, d := range f.Types {
		if d.Name != f.Name {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%s: several declarations named %s: %w", f.Name, d.Name, ErrAmbiguousDeclaration)
		}
		match = d
	}
	if match == nil {
		return nil, fmt.Errorf("%s: %d declarations, none named %s: %w", f.Name, len(f.Types), f.Name, ErrAmbiguousDeclaration)
	}
	return match, nil
}

func (f *File) Documentation() (*javadoc.Documentation, error) {
	return javadoc.Decode(f.Doc)
}
