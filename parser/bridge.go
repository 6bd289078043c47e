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

// StrStep is a [Step] with trivia merged back in and token text attached.
type StrStep struct {
	Kind   StepKind
	Syntax kind.Kind

	// For StepToken, the token's text.
	Text string

	// For StepError, the message and the byte offset it applies to.
	Message string
	Pos     int
}

// String implements [fmt.Stringer].
func (s StrStep) String() string {
	switch s.Kind {
	case StepEnter:
		return fmt.Sprintf("Enter(%v)", s.Syntax)
	case StepToken:
		return fmt.Sprintf("Token(%v, %q)", s.Syntax, s.Text)
	case StepError:
		return fmt.Sprintf("Error(%d, %q)", s.Pos, s.Message)
	default:
		return s.Kind.String()
	}
}

// Intersperse walks output, which must have been produced from stream's
// trivia-free view, and calls sink with each step, inserting the trivia
// tokens the parser skipped.
//
// Trivia is placed as follows:
//
//   - Trivia before the first node is inside the root node.
//   - Trivia before a token goes immediately before it, in the innermost open
//     node.
//   - A node is closed lazily, so trivia between its last token and whatever
//     comes next belongs to the enclosing node.
//   - Trivia at the end of the input goes just before the root is closed.
//
// Error steps are positioned at the start of the first token, trivia
// included, that has not been passed to sink yet.
//
// Returns whether every token of stream was consumed.
func Intersperse(stream *token.Stream, output *Output, sink func(StrStep)) bool {
	b := bridge{stream: stream, sink: sink, state: pendingEnter}
	for _, step := range output.All() {
		switch step.Kind {
		case StepEnter:
			b.enter(step.Syntax)
		case StepToken:
			b.token(step.Syntax)
		case StepExit:
			b.exit()
		case StepError:
			b.sink(StrStep{Kind: StepError, Message: step.Message, Pos: stream.Start(b.pos)})
		}
	}

	if b.state != pendingExit {
		panic("athena/parser: output has no root node")
	}
	b.eatTrivia()
	b.sink(StrStep{Kind: StepExit})

	return b.pos == stream.Len()
}

// IntersperseAll is like [Intersperse], but collects the steps into a slice.
func IntersperseAll(stream *token.Stream, output *Output) ([]StrStep, bool) {
	var steps []StrStep
	ok := Intersperse(stream, output, func(s StrStep) {
		steps = append(steps, s)
	})
	return steps, ok
}

type bridgeState int

const (
	pendingEnter bridgeState = iota
	normal
	pendingExit
)

type bridge struct {
	stream *token.Stream
	sink   func(StrStep)
	pos    int
	state  bridgeState
}

func (b *bridge) enter(k kind.Kind) {
	prev := b.state
	b.state = normal
	switch prev {
	case pendingEnter:
		// The root; there is no enclosing node to hold leading trivia yet.
		b.sink(StrStep{Kind: StepEnter, Syntax: k})
		return
	case pendingExit:
		b.sink(StrStep{Kind: StepExit})
	}

	b.eatTrivia()
	b.sink(StrStep{Kind: StepEnter, Syntax: k})
}

func (b *bridge) exit() {
	prev := b.state
	b.state = pendingExit
	switch prev {
	case pendingEnter:
		panic("athena/parser: Exit step before any Enter step")
	case pendingExit:
		b.sink(StrStep{Kind: StepExit})
	}
}

func (b *bridge) token(k kind.Kind) {
	prev := b.state
	b.state = normal
	switch prev {
	case pendingEnter:
		panic("athena/parser: Token step before any Enter step")
	case pendingExit:
		b.sink(StrStep{Kind: StepExit})
	}

	b.eatTrivia()
	b.doToken(k)
}

func (b *bridge) eatTrivia() {
	for b.pos < b.stream.Len() && b.stream.Kind(b.pos).IsTrivia() {
		b.doToken(b.stream.Kind(b.pos))
	}
}

func (b *bridge) doToken(k kind.Kind) {
	if b.pos >= b.stream.Len() {
		panic(fmt.Sprintf("athena/parser: Token(%v) step past the end of input", k))
	}
	b.sink(StrStep{Kind: StepToken, Syntax: k, Text: b.stream.Text(b.pos)})
	b.pos++
}
