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

package lsp

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/athena-lang/athena/internal/logging"
	"github.com/athena-lang/athena/parser"
	"github.com/athena-lang/athena/syntax"
)

func TestInitialize(t *testing.T) {
	t.Parallel()

	s := New(parser.SourceFile, "1.2.3", logging.New(io.Discard, "error"))
	result, err := s.initialize(nil, &protocol.InitializeParams{})
	require.NoError(t, err)

	res, ok := result.(protocol.InitializeResult)
	require.True(t, ok)
	assert.Equal(t, Name, res.ServerInfo.Name)
	assert.Equal(t, "1.2.3", *res.ServerInfo.Version)

	opts, ok := res.Capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	require.True(t, ok)
	assert.Equal(t, protocol.TextDocumentSyncKindFull, *opts.Change)
	assert.True(t, *opts.OpenClose)
}

func TestDocumentLifecycle(t *testing.T) {
	t.Parallel()

	const uri = "file:///proofs/a.ath"
	s := New(parser.SourceFile, "", logging.New(io.Discard, "error"))

	var published []protocol.PublishDiagnosticsParams
	ctx := &glsp.Context{Notify: func(method string, params any) {
		assert.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, method)
		published = append(published, params.(protocol.PublishDiagnosticsParams))
	}}

	require.NoError(t, s.didOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "define x := 1"},
	}))
	require.Len(t, published, 1)
	assert.Equal(t, protocol.DocumentUri(uri), published[0].URI)
	assert.Empty(t, published[0].Diagnostics)

	first, ok := s.Tree(uri)
	require.True(t, ok)

	require.NoError(t, s.didChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "define x := 1 )"}},
	}))
	require.Len(t, published, 2)
	require.Len(t, published[1].Diagnostics, 1)
	assert.Equal(t, "expected a directive or phrase", published[1].Diagnostics[0].Message)

	second, ok := s.Tree(uri)
	require.True(t, ok)
	assert.Positive(t, syntax.Shared(first.Green(), second.Green()))

	text := "define x := 2"
	require.NoError(t, s.didSave(ctx, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Text:         &text,
	}))
	require.Len(t, published, 3)
	assert.Empty(t, published[2].Diagnostics)

	require.NoError(t, s.didClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	require.Len(t, published, 4)
	assert.NotNil(t, published[3].Diagnostics)
	assert.Empty(t, published[3].Diagnostics)
	_, ok = s.Tree(uri)
	assert.False(t, ok)
}

func TestCacheLimit(t *testing.T) {
	t.Parallel()

	const uri = "file:///proofs/a.ath"
	s := New(parser.SourceFile, "", logging.New(io.Discard, "error"))
	s.cacheLimit = 2
	ctx := &glsp.Context{Notify: func(string, any) {}}

	open := func(text string) *syntax.Tree {
		require.NoError(t, s.didOpen(ctx, &protocol.DidOpenTextDocumentParams{
			TextDocument: protocol.TextDocumentItem{URI: uri, Text: text},
		}))
		tree, ok := s.Tree(uri)
		require.True(t, ok)
		return tree
	}

	first := open("define x := 1")
	assert.Greater(t, first.Cache().Len(), 2)

	second := open("define x := 1")
	assert.NotSame(t, first.Cache(), second.Cache())
	assert.Zero(t, syntax.Shared(first.Green(), second.Green()))
}

func TestDiagnostics(t *testing.T) {
	t.Parallel()

	// π is two bytes of UTF-8 but a single UTF-16 code unit.
	tree := syntax.Parse(parser.SourceFile, "define π := $")
	diags := Diagnostics(tree)
	require.Len(t, diags, 3)

	pos := func(line, char int) protocol.Position {
		return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(char)}
	}
	assert.Equal(t, "expected a phrase", diags[0].Message)
	assert.Equal(t, protocol.Range{Start: pos(0, 11), End: pos(0, 11)}, diags[0].Range)
	assert.Equal(t, "unrecognized character", diags[2].Message)
	assert.Equal(t, protocol.Range{Start: pos(0, 12), End: pos(0, 13)}, diags[2].Range)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diags[0].Severity)
	assert.Equal(t, Name, *diags[0].Source)

	tree = syntax.Parse(parser.SourceFile, "define x := 1\n  ) $")
	diags = Diagnostics(tree)
	require.Len(t, diags, 2)
	assert.Equal(t, pos(0, 13), diags[0].Range.Start)
	assert.Equal(t, protocol.Range{Start: pos(1, 4), End: pos(1, 5)}, diags[1].Range)
}
