// Package render turns one package of the index into a Python stub
// module by executing a text/template over the parsed declarations.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"text/template"
	"time"

	"github.com/dhamidi/java2py/index"
	"github.com/dhamidi/java2py/resolve"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("java2py.render")

//go:embed templates/*.tmpl
var templateFS embed.FS

const defaultTemplate = "templates/class.tmpl"

type Option func(*Renderer)

// WithTemplateFile renders with the template at path instead of the
// built-in one.
func WithTemplateFile(path string) Option {
	return func(r *Renderer) {
		r.templatePath = path
	}
}

// WithClock sets the source of the .Now timestamp.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

type Renderer struct {
	index        *index.Index
	resolver     *resolve.Resolver
	templatePath string
	now          func() time.Time
	tmpl         *template.Template
}

func New(ix *index.Index, resolver *resolve.Resolver, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		index:    ix,
		resolver: resolver,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	tmpl, err := r.parseTemplate()
	if err != nil {
		return nil, err
	}
	r.tmpl = tmpl
	return r, nil
}

func (r *Renderer) parseTemplate() (*template.Template, error) {
	if r.templatePath == "" {
		tmpl, err := template.New("class.tmpl").Funcs(funcMap(r.resolver)).ParseFS(templateFS, defaultTemplate)
		if err != nil {
			return nil, fmt.Errorf("parse built-in template: %w", err)
		}
		return tmpl, nil
	}

	tmpl, err := template.New(filepath.Base(r.templatePath)).Funcs(funcMap(r.resolver)).ParseFiles(r.templatePath)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", r.templatePath, err)
	}
	return tmpl, nil
}

// Load parses every class of the package and returns the template view.
// Files that do not parse or lack a primary declaration are reported to
// the index reporter and left out.
func (r *Renderer) Load(packageName string) (*Package, error) {
	pkg, err := r.index.OpenPackage(packageName)
	if err != nil {
		return nil, err
	}

	view := &Package{Name: pkg.Name, ClassNames: pkg.ClassNames()}

	var bases, derived []*File
	for _, class := range view.ClassNames {
		f, err := pkg.ParseClass(class)
		if err != nil {
			return nil, err
		}
		if f == nil {
			continue
		}

		decl, err := f.Declaration()
		if err != nil {
			r.index.Report(pkg.Path(class), err)
			continue
		}

		file := &File{File: f, Class: decl}
		if decl.IsBase() {
			bases = append(bases, file)
		} else {
			derived = append(derived, file)
		}
	}

	view.Files = append(bases, derived...)
	view.Imports = collectImports(view.Files)
	log.Debugf("loaded %s: %d of %d classes", view.Name, len(view.Files), len(view.ClassNames))
	return view, nil
}

// Render returns the stub text for the named package.
func (r *Renderer) Render(packageName string) (string, error) {
	view, err := r.Load(packageName)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	ctx := Context{Package: view, Now: r.now().UTC()}
	if err := r.tmpl.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("render %s: %w", packageName, err)
	}
	return buf.String(), nil
}
