// Package resolve turns Java type names into qualified names and Python
// type annotations.
package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dhamidi/java2py/java"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("java2py.resolve")

var (
	ErrUnresolved            = errors.New("unresolved type")
	ErrMultiDimensionalArray = errors.New("multi-dimensional arrays are not supported")
	ErrInvalidType           = errors.New("type is neither primitive nor reference")
)

// Packages is the view of the source tree the resolver needs.
// *index.Index satisfies it.
type Packages interface {
	HasPackage(name string) bool
	ClassNames(pkg string) []string
}

type Option func(*Resolver)

// WithStrict makes ResolveType fail with ErrUnresolved instead of
// returning an unknown name unchanged.
func WithStrict(strict bool) Option {
	return func(r *Resolver) {
		r.strict = strict
	}
}

// WithDefaultImports replaces DefaultImports.
func WithDefaultImports(paths ...string) Option {
	return func(r *Resolver) {
		r.defaults = r.defaults[:0]
		for _, p := range paths {
			r.defaults = append(r.defaults, java.ParseImport(p))
		}
	}
}

type Resolver struct {
	packages Packages
	strict   bool
	defaults []java.Import
}

func New(packages Packages, opts ...Option) *Resolver {
	r := &Resolver{packages: packages}
	for _, p := range DefaultImports {
		r.defaults = append(r.defaults, java.ParseImport(p))
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveType qualifies name. Primitives map to their boxed names. Other
// names are looked up through the imports of file, if any, and then the
// default imports; the first package holding a class of that name wins.
// Dotted names are taken as already qualified.
//
// A single type import only makes its own name visible; the other classes
// of its package are not scanned. Classes of the file's own package stay
// bare, and count as resolved in strict mode.
func (r *Resolver) ResolveType(name string, file *java.File) (string, error) {
	if boxed, ok := primitiveTypes[name]; ok {
		return boxed, nil
	}
	if strings.Contains(name, ".") {
		return name, nil
	}

	if file != nil {
		for _, imp := range file.Imports {
			if qualified, ok := r.lookup(name, imp); ok {
				return qualified, nil
			}
		}
	}
	for _, imp := range r.defaults {
		if qualified, ok := r.lookup(name, imp); ok {
			return qualified, nil
		}
	}

	if file != nil && r.inPackage(name, file.Package) {
		return name, nil
	}
	if r.strict {
		return "", fmt.Errorf("%s: %w", name, ErrUnresolved)
	}
	log.Debugf("leaving %s unresolved", name)
	return name, nil
}

func (r *Resolver) inPackage(name, pkg string) bool {
	if pkg == "" {
		return false
	}
	for _, class := range r.packages.ClassNames(pkg) {
		if class == name {
			return true
		}
	}
	return false
}

func (r *Resolver) lookup(name string, imp java.Import) (string, bool) {
	if imp.Static {
		return "", false
	}
	if !imp.Wildcard && imp.TypeName() != name {
		return "", false
	}
	pkg := imp.PackageName()
	if !r.packages.HasPackage(pkg) {
		return "", false
	}
	if r.inPackage(name, pkg) {
		return pkg + "." + name, true
	}
	return "", false
}

func (r *Resolver) ConvertType(name string) string {
	return ConvertType(name)
}

// ResolveTypeHint renders t with qualified names: List<T> becomes
// List[T] and a one-dimensional array T[] becomes List[T]. A nil type is
// "None".
func (r *Resolver) ResolveTypeHint(t *java.Type, file *java.File) (string, error) {
	if t == nil {
		return "None", nil
	}

	var elem string
	switch t.Kind {
	case java.TypePrimitive, java.TypeReference:
		if t.IsList() && t.HasArgument() {
			inner, err := r.ResolveTypeHint(t.Argument, file)
			if err != nil {
				return "", err
			}
			elem = "List[" + inner + "]"
		} else {
			resolved, err := r.ResolveType(t.Name, file)
			if err != nil {
				return "", err
			}
			elem = resolved
		}
	default:
		return "", fmt.Errorf("%s: %w", t, ErrInvalidType)
	}

	return wrapArray(t, elem)
}

// PythonResolve is ResolveTypeHint followed by ConvertType on every
// resolved name. For a primitive array the wrapped form is converted as a
// whole first, so byte[] becomes bytearray.
func (r *Resolver) PythonResolve(t *java.Type, file *java.File) (string, error) {
	if t == nil {
		return "None", nil
	}

	switch t.Kind {
	case java.TypePrimitive, java.TypeReference:
		if t.IsList() && t.HasArgument() {
			inner, err := r.PythonResolve(t.Argument, file)
			if err != nil {
				return "", err
			}
			return wrapArray(t, "List["+inner+"]")
		}

		resolved, err := r.ResolveType(t.Name, file)
		if err != nil {
			return "", err
		}
		if t.IsPrimitive() && t.ArrayDepth == 1 {
			if py, ok := pythonTypes["List["+resolved+"]"]; ok {
				return py, nil
			}
		}
		return wrapArray(t, ConvertType(resolved))
	}

	return "", fmt.Errorf("%s: %w", t, ErrInvalidType)
}

func wrapArray(t *java.Type, elem string) (string, error) {
	switch t.ArrayDepth {
	case 0:
		return elem, nil
	case 1:
		return "List[" + elem + "]", nil
	}
	return "", fmt.Errorf("%s: %w", t, ErrMultiDimensionalArray)
}
