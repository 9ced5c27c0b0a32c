// Package watch reports batches of changed Java sources under a tree.
package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("java2py.watch")

// Watcher calls onChange with the Java files changed during a quiet
// period of the debounce length. Calls never overlap.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	root       string
	debounce   time.Duration
	exclude    []glob.Glob
	onChange   func([]string)
	callbackMu sync.Mutex

	pending   map[string]struct{}
	pendingMu sync.Mutex
	timer     *time.Timer

	done chan struct{}
}

// New prepares a watcher. Exclude patterns are matched against paths
// relative to the watched root, with '/' as separator.
func New(debounce time.Duration, exclude []string, onChange func([]string)) (*Watcher, error) {
	w := &Watcher{
		debounce: debounce,
		onChange: onChange,
		pending:  make(map[string]struct{}),
		done:     make(chan struct{}),
	}

	for _, pattern := range exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		w.exclude = append(w.exclude, g)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w.fsWatcher = fsw
	return w, nil
}

// Watch adds every directory below root and starts delivering events.
func (w *Watcher) Watch(root string) error {
	w.root = filepath.Clean(root)
	if err := w.watchRecursive(w.root); err != nil {
		return err
	}
	go w.run()
	return nil
}

// Done is closed when the event loop stops.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) watchRecursive(dir string) error {
	return w.watchTree(dir, map[string]bool{})
}

// watchTree adds dir and every directory below it under their paths as
// seen from dir, following links to directories.
func (w *Watcher) watchTree(dir string, seen map[string]bool) error {
	target, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return err
	}
	if seen[target] {
		log.Warningf("not watching %s again through %s", target, dir)
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
		name := filepath.Join(dir, rel)
		if d.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(path); err == nil && info.IsDir() && !w.skipDir(name) {
				return w.watchTree(name, seen)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if w.skipDir(name) {
			return filepath.SkipDir
		}
		return w.fsWatcher.Add(name)
	})
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Errorf("watcher error: %s", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if w.skipDir(event.Name) {
				return
			}
			if err := w.watchRecursive(event.Name); err != nil {
				log.Warningf("failed to watch new directory %s: %s", event.Name, err)
				return
			}
			w.enqueueExisting(event.Name)
			return
		}
	}

	if !w.isSource(event.Name) {
		return
	}
	if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.schedule(event.Name)
	}
}

func (w *Watcher) schedule(path string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	w.pending[path] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.pendingMu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)

	w.callbackMu.Lock()
	defer w.callbackMu.Unlock()
	log.Debugf("%d files changed", len(paths))
	w.onChange(paths)
}

func (w *Watcher) rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (w *Watcher) excluded(path string) bool {
	rel := w.rel(path)
	for _, g := range w.exclude {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

func (w *Watcher) skipDir(path string) bool {
	if path != w.root && strings.HasPrefix(filepath.Base(path), ".") {
		return true
	}
	return path != w.root && w.excluded(path)
}

func (w *Watcher) isSource(path string) bool {
	return filepath.Ext(path) == ".java" && !w.excluded(path)
}

func (w *Watcher) enqueueExisting(dir string) {
	target, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return
	}
	_ = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(target, path)
		if err != nil {
			return nil
		}
		if name := filepath.Join(dir, rel); w.isSource(name) {
			w.schedule(name)
		}
		return nil
	})
}

func (w *Watcher) Close() error {
	w.pendingMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pendingMu.Unlock()
	return w.fsWatcher.Close()
}
