package index

import "sync"

// Reporter receives diagnostics about files that are skipped.
type Reporter interface {
	Report(path string, err error)
}

type ReporterFunc func(path string, err error)

func (f ReporterFunc) Report(path string, err error) {
	f(path, err)
}

// LogReporter logs diagnostics as warnings.
type LogReporter struct{}

func (LogReporter) Report(path string, err error) {
	log.Warningf("skipping %s: %s", path, err)
}

type Diagnostic struct {
	Path string
	Err  error
}

// Recorder keeps every diagnostic it receives.
type Recorder struct {
	mu          sync.Mutex
	diagnostics []Diagnostic
}

func (r *Recorder) Report(path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagnostics = append(r.diagnostics, Diagnostic{Path: path, Err: err})
}

func (r *Recorder) Diagnostics() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Diagnostic, len(r.diagnostics))
	copy(out, r.diagnostics)
	return out
}
