// Package index maps dotted package names to the Java classes found in a
// source tree.
//
// Build walks the tree once. Package existence and class listing are then
// lookups; only ParseClass touches the filesystem again.
package index

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("java2py.index")

var ErrPackageNotFound = errors.New("package not found")

type Option func(*options)

type options struct {
	exclude  []string
	reporter Reporter
}

// WithExclude skips files and directories whose slash-separated path
// relative to the root matches one of the glob patterns. "*" stays within
// one path segment, "**" crosses segments.
func WithExclude(patterns ...string) Option {
	return func(o *options) {
		o.exclude = append(o.exclude, patterns...)
	}
}

// WithReporter sets where per-file diagnostics go. The default logs them
// as warnings.
func WithReporter(r Reporter) Option {
	return func(o *options) {
		o.reporter = r
	}
}

type Index struct {
	root     string
	packages map[string][]string
	exclude  []glob.Glob
	reporter Reporter
}

// Build walks root and records every directory below it as a package.
func Build(root string, opts ...Option) (*Index, error) {
	o := options{reporter: LogReporter{}}
	for _, opt := range opts {
		opt(&o)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source directory %s: not a directory", root)
	}

	ix := &Index{
		root:     filepath.Clean(root),
		packages: make(map[string][]string),
		reporter: o.reporter,
	}
	for _, pattern := range o.exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
		ix.exclude = append(ix.exclude, g)
	}

	if err := ix.walk(ix.root, "", map[string]bool{}); err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	for _, classes := range ix.packages {
		sort.Strings(classes)
	}

	log.Debugf("indexed %d packages under %s", len(ix.packages), ix.root)
	return ix, nil
}

// walk indexes dir, whose slash-separated path below the root is prefix.
// Links to directories are followed; a link back to a directory already
// being walked is reported and skipped.
func (ix *Index) walk(dir, prefix string, seen map[string]bool) error {
	target, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return err
	}
	if seen[target] {
		ix.reporter.Report(dir, fmt.Errorf("link cycle through %s", target))
		return nil
	}
	seen[target] = true
	defer delete(seen, target)

	return filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(target, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if prefix != "" {
			rel = strings.TrimSuffix(prefix+"/"+rel, "/.")
		}
		if rel == "." {
			return nil
		}
		if path == target {
			ix.addPackage(rel)
			return nil
		}

		isDir := d.IsDir()
		if d.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				ix.reporter.Report(path, err)
				return nil
			}
			isDir = info.IsDir()
			if isDir {
				if strings.HasPrefix(d.Name(), ".") || ix.excluded(rel) {
					return nil
				}
				return ix.walk(path, rel, seen)
			}
		}

		if isDir {
			if strings.HasPrefix(d.Name(), ".") || ix.excluded(rel) {
				return filepath.SkipDir
			}
			ix.addPackage(rel)
			return nil
		}

		if filepath.Ext(path) != ".java" || ix.excluded(rel) {
			return nil
		}
		pkgDir := filepath.ToSlash(filepath.Dir(filepath.FromSlash(rel)))
		if pkgDir == "." {
			// the unnamed package is not addressable
			return nil
		}
		name := strings.ReplaceAll(pkgDir, "/", ".")
		ix.packages[name] = append(ix.packages[name], strings.TrimSuffix(d.Name(), ".java"))
		return nil
	})
}

func (ix *Index) addPackage(rel string) {
	name := strings.ReplaceAll(rel, "/", ".")
	if _, ok := ix.packages[name]; !ok {
		ix.packages[name] = nil
	}
}

func (ix *Index) excluded(rel string) bool {
	for _, g := range ix.exclude {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

func (ix *Index) HasPackage(name string) bool {
	_, ok := ix.packages[name]
	return ok
}

// ClassNames returns the sorted class names of a package, or nil when
// there is no such package.
func (ix *Index) ClassNames(name string) []string {
	return ix.packages[name]
}

func (ix *Index) OpenPackage(name string) (*Package, error) {
	classes, ok := ix.packages[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrPackageNotFound)
	}
	return &Package{
		Name:       name,
		Dir:        filepath.Join(ix.root, filepath.FromSlash(strings.ReplaceAll(name, ".", "/"))),
		classNames: classes,
		reporter:   ix.reporter,
	}, nil
}

// Packages returns all package names in sorted order.
func (ix *Index) Packages() []string {
	names := make([]string, 0, len(ix.packages))
	for name := range ix.packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Report forwards a per-file diagnostic to the configured reporter.
func (ix *Index) Report(path string, err error) {
	ix.reporter.Report(path, err)
}
