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

package syntax

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/athena-lang/athena/parser"
	"github.com/athena-lang/athena/token"
)

// Option is an option for [Parse].
type Option func(*options)

type options struct {
	cache *NodeCache
}

// WithCache makes [Parse] take its tokens and nodes from cache, so that the
// resulting tree shares subtrees with every other tree built with it.
func WithCache(cache *NodeCache) Option {
	return func(o *options) { o.cache = cache }
}

// Tree is the result of parsing some text: a green tree that covers all of
// it, plus the errors found along the way.
//
// A Tree is immutable and may be shared between goroutines.
type Tree struct {
	entry  parser.EntryPoint
	text   string
	green  *GreenNode
	errors []SyntaxError
	cache  *NodeCache

	indexOnce sync.Once
	index     *ErrorIndex
}

// Parse parses text starting from the given entry point.
//
// Parsing never fails. Malformed input is reported through [Tree.Errors],
// with structural errors first and then lexical ones.
func Parse(entry parser.EntryPoint, text string, opts ...Option) *Tree {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.cache == nil {
		o.cache = new(NodeCache)
	}

	stream := token.Scan(text)
	output := entry.Parse(stream.Input())

	b := NewBuilder(o.cache)
	if !parser.Intersperse(stream, output, b.Push) {
		panic(fmt.Sprintf("athena/syntax: %v parser did not consume all of its input", entry))
	}
	green, errs := b.Finish()

	for i, msg := range stream.Errors() {
		start, end := stream.Range(i)
		errs = append(errs, SyntaxError{Message: msg, Range: Range{start, end}})
	}

	return &Tree{
		entry:  entry,
		text:   text,
		green:  green,
		errors: errs,
		cache:  o.cache,
	}
}

// Entry returns the entry point this tree was parsed from.
func (t *Tree) Entry() parser.EntryPoint { return t.entry }

// Text returns the text this tree was parsed from.
func (t *Tree) Text() string { return t.text }

// Green returns the root of the green tree.
func (t *Tree) Green() *GreenNode { return t.green }

// Root returns a red view of the root of the tree.
func (t *Tree) Root() *Node { return NewRoot(t.green) }

// Cache returns the cache the tree was built with.
func (t *Tree) Cache() *NodeCache { return t.cache }

// Errors returns the errors found while parsing. The returned slice must not
// be modified.
func (t *Tree) Errors() []SyntaxError { return t.errors }

// Err returns all of the tree's errors joined into one, or nil if there are
// none.
func (t *Tree) Err() error {
	errs := make([]error, len(t.errors))
	for i, err := range t.errors {
		errs[i] = err
	}
	return errors.Join(errs...)
}

// ErrorIndex returns an index of this tree's errors by position.
func (t *Tree) ErrorIndex() *ErrorIndex {
	t.indexOnce.Do(func() {
		t.index = NewErrorIndex(t.errors)
	})
	return t.index
}

// Reparse applies edit to this tree's text and parses the result with the
// same entry point and cache, so that unchanged subtrees are shared.
func (t *Tree) Reparse(edit Edit) (*Tree, error) {
	text, err := edit.Apply(t.text)
	if err != nil {
		return nil, err
	}
	return Parse(t.entry, text, WithCache(t.cache)), nil
}

// Debug returns a textual dump of the tree, one element per line, followed
// by its errors.
//
//	FRAGMENT@0..3
//	  IDENT_EXPR@0..3
//	    NAME_REF@0..3
//	      IDENT@0..3 "Nat"
func (t *Tree) Debug() string {
	var b strings.Builder
	writeDebug(&b, t.Root(), 0)
	for _, err := range t.errors {
		fmt.Fprintf(&b, "error %d: %s\n", err.Offset(), err.Message)
	}
	return b.String()
}

// Debug returns a textual dump of the subtree rooted at n.
func (n *Node) Debug() string {
	var b strings.Builder
	writeDebug(&b, n, 0)
	return b.String()
}

func writeDebug(b *strings.Builder, n *Node, indent int) {
	fmt.Fprintf(b, "%s%v@%v\n", strings.Repeat("  ", indent), n.Kind(), n.Range())
	for child := range n.ChildrenWithTokens() {
		switch c := child.(type) {
		case *Node:
			writeDebug(b, c, indent+1)
		case *Token:
			fmt.Fprintf(b, "%s%v@%v %q\n", strings.Repeat("  ", indent+1), c.Kind(), c.Range(), c.Text())
		}
	}
}
