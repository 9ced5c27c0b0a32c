package render

import (
	"time"

	"github.com/dhamidi/java2py/java"
)

// Context is the value the template is executed with.
type Context struct {
	Package *Package
	Now     time.Time
}

// Package is the template view of one Java package.
type Package struct {
	Name string
	// Files holds every file with a usable declaration, base types first.
	Files []*File
	// Imports is the union of the imports of Files, first occurrence kept.
	Imports    []java.Import
	ClassNames []string
}

// Modules lists the Python modules the stub must import: the package of
// every non-static import, once each.
func (p *Package) Modules() []string {
	seen := map[string]bool{p.Name: true}
	var modules []string
	for _, imp := range p.Imports {
		if imp.Static {
			continue
		}
		module := imp.PackageName()
		if seen[module] {
			continue
		}
		seen[module] = true
		modules = append(modules, module)
	}
	return modules
}

// File pairs a parsed file with its primary declaration.
type File struct {
	*java.File
	Class *java.Declaration
}

func collectImports(files []*File) []java.Import {
	seen := map[string]bool{}
	var imports []java.Import
	for _, f := range files {
		for _, imp := range f.Imports {
			key := imp.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			imports = append(imports, imp)
		}
	}
	return imports
}
