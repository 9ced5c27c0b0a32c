package lsp

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dhamidi/java2py/java"
	"github.com/dhamidi/java2py/java/parser"
)

// Document is the last parse of an open or saved file.
type Document struct {
	Path    string
	Content []byte
	File    *java.File
	// ParseErr is the error of the latest parse. File then still holds the
	// last good parse, if there was one.
	ParseErr error
}

type Documents struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

func NewDocuments() *Documents {
	return &Documents{docs: make(map[string]*Document)}
}

func (d *Documents) Update(path string, content []byte) *Document {
	name := strings.TrimSuffix(filepath.Base(path), ".java")
	f, err := java.FromSource(content, name, parser.WithFile(path))
	if err == nil {
		f.Path = path
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	doc := &Document{Path: path, Content: content, File: f, ParseErr: err}
	if err != nil {
		doc.File = nil
		if prev, ok := d.docs[path]; ok {
			doc.File = prev.File
		}
		log.Debugf("parse %s: %s", path, err)
	}
	d.docs[path] = doc
	return doc
}

// Load reads path from disk when it is not known yet.
func (d *Documents) Load(path string) (*Document, error) {
	if doc := d.Get(path); doc != nil {
		return doc, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return d.Update(path, content), nil
}

func (d *Documents) Get(path string) *Document {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.docs[path]
}

func (d *Documents) Remove(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.docs, path)
}
