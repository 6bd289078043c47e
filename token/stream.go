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

package token

import (
	"fmt"
	"iter"
	"slices"

	"github.com/athena-lang/athena/internal/ext/mathx"
	"github.com/athena-lang/athena/kind"
)

// Token is a single lexed token.
//
// Tokens do not store their position: the offset of a token is the sum of the
// lengths of the tokens before it, which [Stream] tracks on its behalf.
type Token struct {
	Kind   kind.Kind
	Len    uint32
	Trivia bool

	// A lexical error attached to this token, if any.
	Err string
}

// Stream is the result of scanning a piece of text: a dense sequence of
// tokens covering every byte of it, followed by a zero-length [kind.EOF]
// token.
//
// Streams are immutable once [Scan] returns them.
type Stream struct {
	text  string
	kinds []kind.Kind
	// starts[i] is the byte offset of token i. It has one more element than
	// kinds, so that starts[len(kinds)] == len(text).
	starts []uint32
	errors []lexError
}

type lexError struct {
	token int
	msg   string
}

// Source returns the text this stream was scanned from.
func (s *Stream) Source() string {
	return s.text
}

// Len returns the number of tokens in this stream, not counting the trailing
// EOF token.
func (s *Stream) Len() int {
	return len(s.kinds) - 1
}

// Kind returns the kind of the i-th token. Kind(Len()) is [kind.EOF].
func (s *Stream) Kind(i int) kind.Kind {
	if i >= len(s.kinds) {
		return kind.EOF
	}
	return s.kinds[i]
}

// Text returns the text of the i-th token.
func (s *Stream) Text(i int) string {
	start, end := s.Range(i)
	return s.text[start:end]
}

// Start returns the byte offset at which the i-th token starts.
func (s *Stream) Start(i int) int {
	return int(s.starts[min(i, len(s.kinds)-1)])
}

// Range returns the byte range of the i-th token.
func (s *Stream) Range(i int) (start, end int) {
	i = min(i, len(s.kinds)-1)
	return int(s.starts[i]), int(s.starts[i+1])
}

// Error returns the lexical error attached to the i-th token, if there is
// one.
func (s *Stream) Error(i int) (string, bool) {
	idx, found := slices.BinarySearchFunc(s.errors, i, func(e lexError, i int) int {
		return e.token - i
	})
	if !found {
		return "", false
	}
	return s.errors[idx].msg, true
}

// Token returns the full record for the i-th token.
func (s *Stream) Token(i int) Token {
	start, end := s.Range(i)
	k := s.Kind(i)
	err, _ := s.Error(i)
	return Token{
		Kind:   k,
		Len:    uint32(end - start),
		Trivia: k.IsTrivia(),
		Err:    err,
	}
}

// All returns an iterator over every token in the stream, including the
// trailing EOF.
func (s *Stream) All() iter.Seq2[int, Token] {
	return func(yield func(int, Token) bool) {
		for i := range s.kinds {
			if !yield(i, s.Token(i)) {
				return
			}
		}
	}
}

// Errors returns an iterator over the lexical errors in this stream, as
// pairs of token index and message, in token order.
func (s *Stream) Errors() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for _, e := range s.errors {
			if !yield(e.token, e.msg) {
				return
			}
		}
	}
}

// Input returns the trivia-free view of this stream that parsers consume.
func (s *Stream) Input() *Input {
	in := &Input{
		kinds: make([]kind.Kind, 0, len(s.kinds)),
		raw:   make([]int, 0, len(s.kinds)),
	}
	for i, k := range s.kinds[:s.Len()] {
		if k.IsTrivia() {
			continue
		}
		in.kinds = append(in.kinds, k)
		in.raw = append(in.raw, i)
	}
	return in
}

// push appends a new token of the given length.
func (s *Stream) push(length int, k kind.Kind) {
	if length < 0 {
		panic(fmt.Sprintf("athena/token: push() called with invalid length: %d", length))
	}
	if len(s.starts) == 0 {
		s.starts = append(s.starts, 0)
	}
	end := int(s.starts[len(s.starts)-1]) + length
	if end > len(s.text) {
		panic(fmt.Sprintf("athena/token: push() overflowed backing text: %d > %d", end, len(s.text)))
	}

	s.kinds = append(s.kinds, k)
	s.starts = append(s.starts, mathx.Narrow[uint32](end))
}

// Input is a trivia-free view of a [Stream]: it contains only the tokens a
// parser examines, each of which remembers its index in the original stream.
type Input struct {
	kinds []kind.Kind
	raw   []int
}

// Len returns the number of tokens in the view, not counting EOF.
func (in *Input) Len() int {
	return len(in.kinds)
}

// Kind returns the kind of the i-th non-trivia token. Indices past the end
// return [kind.EOF].
func (in *Input) Kind(i int) kind.Kind {
	if i < 0 || i >= len(in.kinds) {
		return kind.EOF
	}
	return in.kinds[i]
}

// Contains returns whether i is the index of a token in this view.
func (in *Input) Contains(i int) bool {
	return i >= 0 && i < len(in.kinds)
}

// RawIndex maps the i-th non-trivia token back to its index in the stream
// the view was created from.
//
// Panics if i is out of bounds.
func (in *Input) RawIndex(i int) int {
	if !in.Contains(i) {
		panic(fmt.Sprintf("athena/token: index %d out of bounds for input of length %d", i, len(in.kinds)))
	}
	return in.raw[i]
}
