// Package lsp serves hover information for Java sources over the language
// server protocol: the qualified name and Python annotation of the type
// under the cursor.
package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dhamidi/java2py/index"
	"github.com/dhamidi/java2py/resolve"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "java2py"

var log = commonlog.GetLogger("java2py.lsp")

type Server struct {
	handler  protocol.Handler
	server   *server.Server
	version  string
	options  []resolve.Option
	exclude  []string
	docs     *Documents
	mu       sync.RWMutex
	rootDir  string
	resolver *resolve.Resolver
}

func NewServer(version string, exclude []string, opts ...resolve.Option) *Server {
	ls := &Server{
		version: version,
		options: opts,
		exclude: exclude,
		docs:    NewDocuments(),
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
		TextDocumentHover:     ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

// Reindex rebuilds the package index of the workspace root.
func (ls *Server) Reindex() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	ix, err := index.Build(ls.rootDir, index.WithExclude(ls.exclude...))
	if err != nil {
		return err
	}
	ls.resolver = resolve.New(ix, ls.options...)
	return nil
}

func (ls *Server) currentResolver() *resolve.Resolver {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return ls.resolver
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}
	ls.mu.Lock()
	ls.rootDir = rootDir
	ls.mu.Unlock()

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.Reindex(); err != nil {
		log.Errorf("index %s: %s", ls.rootDir, err)
	}
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.docs.Update(path, []byte(params.TextDocument.Text))
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.docs.Update(path, []byte(textChange.Text))
		}
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	if path, err := uriToPath(params.TextDocument.URI); err == nil {
		ls.docs.Remove(path)
	}
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.docs.Update(path, []byte(*params.Text))
	}
	// A saved file may add a class to a package.
	if err := ls.Reindex(); err != nil {
		log.Errorf("index %s: %s", ls.rootDir, err)
	}
	return nil
}

func (ls *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	r := ls.currentResolver()
	if r == nil {
		return nil, nil
	}

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	doc, err := ls.docs.Load(path)
	if err != nil || doc.File == nil {
		return nil, nil
	}

	text, ok := HoverText(r, doc.File, int(params.Position.Line)+1, int(params.Position.Character)+1)
	if !ok {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: text,
		},
	}, nil
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
