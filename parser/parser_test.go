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

package parser_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athena-lang/athena/kind"
	"github.com/athena-lang/athena/parser"
	"github.com/athena-lang/athena/token"
)

func enter(k kind.Kind) parser.Step { return parser.Step{Kind: parser.StepEnter, Syntax: k} }
func tok(k kind.Kind) parser.Step   { return parser.Step{Kind: parser.StepToken, Syntax: k} }
func exit() parser.Step             { return parser.Step{Kind: parser.StepExit} }

func steps(out *parser.Output) []parser.Step {
	var s []parser.Step
	for _, step := range out.All() {
		s = append(s, step)
	}
	return s
}

func TestPrecede(t *testing.T) {
	t.Parallel()

	p := parser.New(token.Scan("A & C").Input())
	root := p.Start()

	a := p.Start()
	p.Bump(kind.Ident)
	lhs := a.Complete(p, kind.IdentExpr)

	bin := lhs.Precede(p)
	p.Bump(kind.Amp)
	c := p.Start()
	p.Bump(kind.Ident)
	c.Complete(p, kind.IdentExpr)
	assert.Equal(t, kind.BinExpr, bin.Complete(p, kind.BinExpr).Kind())

	root.Complete(p, kind.SourceFile)

	want := []parser.Step{
		enter(kind.SourceFile),
		enter(kind.BinExpr),
		enter(kind.IdentExpr), tok(kind.Ident), exit(),
		tok(kind.Amp),
		enter(kind.IdentExpr), tok(kind.Ident), exit(),
		exit(),
		exit(),
	}
	assert.Empty(t, cmp.Diff(want, steps(parser.Resolve(p.Finish()))))
}

func TestPrecedeGrowingLog(t *testing.T) {
	t.Parallel()

	// Precede must keep its link when opening the parent grows the log, so
	// vary the number of events recorded before it.
	for n := range 33 {
		p := parser.New(token.Scan(strings.Repeat("x ", n) + "A & C").Input())
		root := p.Start()
		for range n {
			p.Bump(kind.Ident)
		}

		a := p.Start()
		p.Bump(kind.Ident)
		bin := a.Complete(p, kind.IdentExpr).Precede(p)
		p.Bump(kind.Amp)
		p.Bump(kind.Ident)
		bin.Complete(p, kind.BinExpr)
		root.Complete(p, kind.SourceFile)

		want := []parser.Step{enter(kind.SourceFile)}
		for range n {
			want = append(want, tok(kind.Ident))
		}
		want = append(want,
			enter(kind.BinExpr),
			enter(kind.IdentExpr), tok(kind.Ident), exit(),
			tok(kind.Amp), tok(kind.Ident),
			exit(),
			exit(),
		)
		assert.Empty(t, cmp.Diff(want, steps(parser.Resolve(p.Finish()))), "n = %d", n)
	}
}

func TestResolveForwardParentChain(t *testing.T) {
	t.Parallel()

	start := func(k kind.Kind, fwd int) parser.Event {
		return parser.Event{Kind: parser.EventStart, Syntax: k, ForwardParent: fwd}
	}
	tokenEv := func(k kind.Kind) parser.Event { return parser.Event{Kind: parser.EventToken, Syntax: k} }
	finish := parser.Event{Kind: parser.EventFinish}

	// 1 & 2 & 3, where each binary node was opened around the previous one.
	events := []parser.Event{
		start(kind.SourceFile, 0),
		start(kind.Literal, 3),
		tokenEv(kind.IntNumber),
		finish,
		start(kind.BinExpr, 4),
		tokenEv(kind.Amp),
		tokenEv(kind.IntNumber),
		finish,
		start(kind.BinExpr, 0),
		tokenEv(kind.Amp),
		tokenEv(kind.IntNumber),
		finish,
		finish,
	}
	orig := append([]parser.Event(nil), events...)

	want := []parser.Step{
		enter(kind.SourceFile),
		enter(kind.BinExpr),
		enter(kind.BinExpr),
		enter(kind.Literal), tok(kind.IntNumber), exit(),
		tok(kind.Amp), tok(kind.IntNumber),
		exit(),
		tok(kind.Amp), tok(kind.IntNumber),
		exit(),
		exit(),
	}
	assert.Empty(t, cmp.Diff(want, steps(parser.Resolve(events))))
	assert.Equal(t, orig, events, "Resolve must not modify its input")
}

func TestAbandon(t *testing.T) {
	t.Parallel()

	run := func(abandon bool) []parser.Step {
		p := parser.New(token.Scan("x y").Input())
		root := p.Start()
		if abandon {
			p.Start().Abandon(p)
		}
		p.Bump(kind.Ident)
		if abandon {
			// Abandoned after something was recorded inside it.
			m := p.Start()
			p.Bump(kind.Ident)
			m.Abandon(p)
		} else {
			p.Bump(kind.Ident)
		}
		if abandon {
			p.Start().Abandon(p)
		}
		root.Complete(p, kind.SourceFile)
		return steps(parser.Resolve(p.Finish()))
	}

	without := run(false)
	assert.Equal(t, []parser.Step{
		enter(kind.SourceFile), tok(kind.Ident), tok(kind.Ident), exit(),
	}, without)
	assert.Empty(t, cmp.Diff(without, run(true)))
}

func TestExtendTo(t *testing.T) {
	t.Parallel()

	p := parser.New(token.Scan("a b").Input())
	root := p.Start()
	m := p.Start()
	p.Bump(kind.Ident)
	inner := p.Start()
	p.Bump(kind.Ident)
	cm := inner.Complete(p, kind.NameRef).ExtendTo(p, m)
	assert.Equal(t, kind.NameRef, cm.Kind())
	root.Complete(p, kind.SourceFile)

	assert.Equal(t, []parser.Step{
		enter(kind.SourceFile),
		enter(kind.NameRef), tok(kind.Ident), tok(kind.Ident), exit(),
		exit(),
	}, steps(parser.Resolve(p.Finish())))
}

func TestPreconditions(t *testing.T) {
	t.Parallel()

	newParser := func() *parser.Parser {
		return parser.New(token.Scan("a b").Input())
	}

	assert.Panics(t, func() {
		p := newParser()
		p.Start()
		p.Finish()
	}, "unbalanced marker")

	assert.Panics(t, func() {
		newParser().Bump(kind.LParen)
	}, "bump of the wrong kind")

	assert.Panics(t, func() {
		p := newParser()
		m := p.Start()
		m.Complete(p, kind.Name)
		m.Complete(p, kind.Name)
	}, "double completion")

	assert.Panics(t, func() {
		p := newParser()
		m := p.Start()
		m.Complete(p, kind.Ident)
	}, "completion with a token kind")

	assert.Panics(t, func() {
		p := newParser()
		m := p.Start()
		p.Bump(kind.Ident)
		cm := m.Complete(p, kind.Name)
		cm.Precede(p).Complete(p, kind.Name)
		cm.Precede(p)
	}, "double precede")

	assert.Panics(t, func() {
		p := newParser()
		root := p.Start()
		m := p.Start()
		p.Bump(kind.Ident)
		m.Abandon(p)
		m.Abandon(p)
		root.Complete(p, kind.SourceFile)
	}, "double abandonment")

	assert.Panics(t, func() {
		p := newParser()
		m := p.Start()
		p.Bump(kind.Ident)
		m.Abandon(p)
		m.Complete(p, kind.SourceFile)
	}, "completion after abandonment")

	assert.Panics(t, func() {
		p := newParser()
		root := p.Start()
		m := p.Start()
		p.Bump(kind.Ident)
		inner := p.Start()
		p.Bump(kind.Ident)
		inner.Complete(p, kind.NameRef).ExtendTo(p, m)
		m.Complete(p, kind.Name)
		root.Complete(p, kind.SourceFile)
	}, "completion of a marker consumed by ExtendTo")

	assert.Panics(t, func() {
		p := newParser()
		for {
			p.At(kind.Ident)
		}
	}, "stuck parser")

	assert.NotPanics(t, func() {
		p := newParser()
		m := p.Start()
		p.Bump(kind.Ident)
		assert.True(t, p.Eat(kind.Ident))
		assert.True(t, p.Eat(kind.EOF))
		p.BumpAny()
		m.Complete(p, kind.SourceFile)
		p.Finish()
	})
}

func TestExpect(t *testing.T) {
	t.Parallel()

	p := parser.New(token.Scan("a").Input())
	m := p.Start()
	assert.False(t, p.Expect(kind.RParen))
	assert.True(t, p.Expect(kind.Ident))
	m.Complete(p, kind.SourceFile)

	out := parser.Resolve(p.Finish())
	var errs []string
	for msg := range out.Errors() {
		errs = append(errs, msg)
	}
	assert.Equal(t, []string{"expected `)`"}, errs)
}

func TestRecover(t *testing.T) {
	t.Parallel()

	p := parser.New(token.Scan(") ) x )").Input())
	root := p.Start()

	before := p.Pos()
	p.Recover("junk", kind.NewSet(kind.Ident))
	assert.Equal(t, before+2, p.Pos())
	assert.True(t, p.At(kind.Ident))

	// Recovery always consumes something, even when already at a token in
	// the recovery set.
	p.Recover("more junk", kind.NewSet(kind.Ident))
	assert.Equal(t, before+4, p.Pos())
	assert.True(t, p.AtEOF())

	p.Recover("at the end", kind.NewSet(kind.Ident))
	assert.Equal(t, before+4, p.Pos())

	root.Complete(p, kind.SourceFile)
	out := parser.Resolve(p.Finish())
	require.Equal(t, parser.StepError, out.Step(1).Kind)
	assert.Equal(t, []parser.Step{
		enter(kind.SourceFile),
		{Kind: parser.StepError, Message: "junk"},
		enter(kind.Error), tok(kind.RParen), tok(kind.RParen), exit(),
		{Kind: parser.StepError, Message: "more junk"},
		enter(kind.Error), tok(kind.Ident), tok(kind.RParen), exit(),
		{Kind: parser.StepError, Message: "at the end"},
		exit(),
	}, steps(out))
}
