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

package parser

import (
	"fmt"

	"github.com/athena-lang/athena/kind"
	"github.com/athena-lang/athena/token"
)

// stepLimit is the number of lookahead calls the parser may make without
// consuming a token before it assumes a production is looping.
const stepLimit = 15_000_000

// Parser is the state of a single parse over a trivia-free token view.
//
// A Parser is not safe for concurrent use, and is normally driven by an
// [EntryPoint] rather than constructed directly.
type Parser struct {
	input  *token.Input
	pos    int
	steps  uint32
	open   int
	events []Event

	// Start events left behind as tombstones by Abandon or ExtendTo. Their
	// markers must not be used again.
	abandoned map[int]struct{}
}

// New returns a new parser over the given input.
func New(input *token.Input) *Parser {
	return &Parser{input: input}
}

// Finish returns the recorded event log.
//
// Panics if a marker returned by [Parser.Start] was neither completed nor
// abandoned.
func (p *Parser) Finish() []Event {
	if p.open != 0 {
		panic(fmt.Sprintf("athena/parser: Finish() called with %d unbalanced markers", p.open))
	}
	events := p.events
	p.events = nil
	return events
}

// Pos returns the index of the current token in the trivia-free view.
func (p *Parser) Pos() int {
	return p.pos
}

// Current returns the kind of the current token.
func (p *Parser) Current() kind.Kind {
	return p.Nth(0)
}

// Nth returns the kind of the token n tokens ahead of the current one.
// Lookahead is unbounded.
func (p *Parser) Nth(n int) kind.Kind {
	if p.steps > stepLimit {
		panic(fmt.Sprintf("athena/parser: the parser seems stuck at token %d", p.pos))
	}
	p.steps++
	return p.input.Kind(p.pos + n)
}

// At returns whether the current token is of kind k.
func (p *Parser) At(k kind.Kind) bool {
	return p.Nth(0) == k
}

// NthAt returns whether the token n tokens ahead is of kind k.
func (p *Parser) NthAt(n int, k kind.Kind) bool {
	return p.Nth(n) == k
}

// AtSet returns whether the current token is in s.
func (p *Parser) AtSet(s kind.Set) bool {
	return s.Has(p.Current())
}

// AtEOF returns whether all tokens have been consumed.
func (p *Parser) AtEOF() bool {
	return p.At(kind.EOF)
}

// Bump consumes the current token, which must be of kind k.
//
// Panics if it is not: a production that calls Bump must already know what
// the current token is.
func (p *Parser) Bump(k kind.Kind) {
	if !p.Eat(k) {
		panic(fmt.Sprintf("athena/parser: Bump(%v) called at %v", k, p.input.Kind(p.pos)))
	}
}

// BumpAny consumes the current token, whatever it is. Does nothing at the
// end of input.
func (p *Parser) BumpAny() {
	if p.AtEOF() {
		return
	}
	p.doBump(p.input.Kind(p.pos))
}

// Eat consumes the current token if it is of kind k, and returns whether it
// did.
//
// Eat(kind.EOF) only reports whether the input is exhausted; there is no EOF
// token to consume.
func (p *Parser) Eat(k kind.Kind) bool {
	if !p.At(k) {
		return false
	}
	if k != kind.EOF {
		p.doBump(k)
	}
	return true
}

// Expect is like [Parser.Eat], but records an "expected" error if the
// current token is not of kind k.
func (p *Parser) Expect(k kind.Kind) bool {
	if p.Eat(k) {
		return true
	}
	p.Errorf("expected %s", k.Describe())
	return false
}

// Error records a diagnostic at the current position. It neither consumes a
// token nor closes a node.
func (p *Parser) Error(msg string) {
	p.push(Event{Kind: EventError, Message: msg})
}

// Errorf is like [Parser.Error], but formats its message.
func (p *Parser) Errorf(format string, args ...any) {
	p.Error(fmt.Sprintf(format, args...))
}

func (p *Parser) close(pos int) {
	if p.abandoned == nil {
		p.abandoned = make(map[int]struct{})
	}
	p.abandoned[pos] = struct{}{}
}

func (p *Parser) closed(pos int) bool {
	_, ok := p.abandoned[pos]
	return ok
}

// Start opens a new node placeholder.
//
// The returned marker must eventually be passed to [Marker.Complete] or
// [Marker.Abandon].
func (p *Parser) Start() Marker {
	pos := len(p.events)
	p.push(tombstone())
	p.open++
	return Marker{pos: pos}
}

// Recover records msg and skips input up to the next token in recovery.
//
// Unless the parser is at the end of input, at least one token is consumed.
// Skipped tokens are wrapped in a [kind.Error] node.
func (p *Parser) Recover(msg string, recovery kind.Set) {
	p.Error(msg)
	if p.AtEOF() {
		return
	}

	m := p.Start()
	p.BumpAny()
	for !p.AtEOF() && !p.AtSet(recovery) {
		p.BumpAny()
	}
	m.Complete(p, kind.Error)
}

func (p *Parser) doBump(k kind.Kind) {
	p.pos++
	p.steps = 0
	p.push(Event{Kind: EventToken, Syntax: k})
}

func (p *Parser) push(e Event) {
	p.events = append(p.events, e)
}
