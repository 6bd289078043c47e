// Copyright 2025 The Athena Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package lsp implements a language server that publishes the syntax errors
// of open Athena documents.
package lsp

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	// glsp logs through commonlog, which needs a backend.
	_ "github.com/tliron/commonlog/simple"

	"github.com/athena-lang/athena/internal/logging"
	"github.com/athena-lang/athena/parser"
	"github.com/athena-lang/athena/source"
	"github.com/athena-lang/athena/syntax"
)

// Name is the server name reported to clients.
const Name = "athena"

// Server is a language server for Athena documents.
//
// Documents are synchronized in full; every open, change and save reparses
// the document and publishes all of its errors, and closing a document
// clears them.
type Server struct {
	entry   parser.EntryPoint
	version string
	logger  *log.Logger
	handler protocol.Handler

	mu   sync.Mutex
	docs map[protocol.DocumentUri]*syntax.Tree

	// Shared by every document, so edits reuse the unchanged parts of the
	// previous tree. Replaced once it holds more than cacheLimit entries.
	cache      *syntax.NodeCache
	cacheLimit int
}

// New returns a server that parses documents from entry.
func New(entry parser.EntryPoint, version string, logger *log.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}

	s := &Server{
		entry:   entry,
		version: version,
		logger:  logger,
		docs:    make(map[protocol.DocumentUri]*syntax.Tree),

		cache:      new(syntax.NodeCache),
		cacheLimit: syntax.DefaultCacheLimit,
	}
	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.didOpen,
		TextDocumentDidChange: s.didChange,
		TextDocumentDidClose:  s.didClose,
		TextDocumentDidSave:   s.didSave,
	}
	return s
}

// RunStdio serves the protocol over standard input and output until the
// client disconnects.
func (s *Server) RunStdio() error {
	return server.NewServer(&s.handler, Name, false).RunStdio()
}

// Tree returns the most recent parse of the document at uri.
func (s *Server) Tree(uri protocol.DocumentUri) (*syntax.Tree, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tree, ok := s.docs[uri]
	return tree, ok
}

func (s *Server) initialize(_ *glsp.Context, _ *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: ptr(true),
		Change:    ptr(protocol.TextDocumentSyncKindFull),
		Save:      &protocol.SaveOptions{IncludeText: ptr(true)},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    Name,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	s.logger.Debug("client initialized", logging.FieldEntry, s.entry)
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	// With full sync, the last change holds the whole document.
	if change, ok := params.ContentChanges[len(params.ContentChanges)-1].(protocol.TextDocumentContentChangeEventWhole); ok {
		s.update(ctx, params.TextDocument.URI, change.Text)
	}
	return nil
}

func (s *Server) didSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		s.update(ctx, params.TextDocument.URI, *params.Text)
	}
	return nil
}

func (s *Server) didClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()

	publish(ctx, uri, []protocol.Diagnostic{})
	return nil
}

func (s *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	tree := syntax.Parse(s.entry, text, syntax.WithCache(s.nodeCache()))

	s.mu.Lock()
	s.docs[uri] = tree
	s.mu.Unlock()

	s.logger.Debug("parsed document", logging.FieldURI, uri, logging.FieldErrors, len(tree.Errors()))
	publish(ctx, uri, Diagnostics(tree))
}

// nodeCache returns the cache for the next parse, replacing it first if it
// has grown past the limit.
func (s *Server) nodeCache() *syntax.NodeCache {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := s.cache.Len(); n > s.cacheLimit {
		s.logger.Debug("resetting node cache", logging.FieldCached, n)
		s.cache = new(syntax.NodeCache)
	}
	return s.cache
}

// Diagnostics converts the errors of tree into protocol diagnostics, with
// positions in UTF-16 code units.
func Diagnostics(tree *syntax.Tree) []protocol.Diagnostic {
	file := source.NewFile("", tree.Text())
	position := func(offset int) protocol.Position {
		loc := file.Location(offset, source.UTF16)
		return protocol.Position{
			Line:      protocol.UInteger(loc.Line - 1),
			Character: protocol.UInteger(loc.Column - 1),
		}
	}

	diags := make([]protocol.Diagnostic, 0, len(tree.Errors()))
	for _, err := range tree.Errors() {
		diags = append(diags, protocol.Diagnostic{
			Range: protocol.Range{
				Start: position(err.Range.Start),
				End:   position(err.Range.End),
			},
			Severity: ptr(protocol.DiagnosticSeverityError),
			Source:   ptr(Name),
			Message:  err.Message,
		})
	}
	return diags
}

func publish(ctx *glsp.Context, uri protocol.DocumentUri, diags []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

func ptr[T any](v T) *T {
	return &v
}
