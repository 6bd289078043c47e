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
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/athena-lang/athena/kind"
)

// MaxSourceSize is the largest input [Scan] accepts.
const MaxSourceSize int = math.MaxInt32 // 2GB

const (
	errUnterminatedString = "Missing trailing `\"` symbol to terminate the string literal"
	errUnrecognized       = "unrecognized character"
	errInvalidUTF8        = "invalid UTF-8 encoding"
)

// Multi-character punctuation, longest first so that the first match wins.
var longPunct = []kind.Kind{kind.Iff, kind.Implies, kind.ColonEq, kind.FatArrow, kind.ThinArrow}

var shortPunct = map[byte]kind.Kind{
	'(': kind.LParen,
	')': kind.RParen,
	'[': kind.LBrack,
	']': kind.RBrack,
	'{': kind.LBrace,
	'}': kind.RBrace,
	'?': kind.Question,
	'\'': kind.Tick,
	':': kind.Colon,
	',': kind.Comma,
	'!': kind.Bang,
	';': kind.Semicolon,
	'_': kind.Underscore,
	'&': kind.Amp,
	'|': kind.Pipe,
	'~': kind.Tilde,
	'=': kind.Eq,
}

// Scan breaks text up into tokens.
//
// Scanning never fails: every byte of text ends up in exactly one token, and
// input the scanner does not understand becomes [kind.Error] tokens carrying
// a lexical error.
//
// Panics if text is longer than [MaxSourceSize].
func Scan(text string) *Stream {
	if len(text) > MaxSourceSize {
		panic("athena/token: source text exceeds MaxSourceSize")
	}

	s := &scanner{Stream: &Stream{text: text}}
	s.loop()
	return s.Stream
}

// scanner is the book-keeping for a single call to [Scan].
type scanner struct {
	*Stream

	cursor int

	// Used for grouping runs of unrecognized bytes into a single token.
	badStart, badBytes int
}

func (s *scanner) loop() {
	mp := mustProgress{s, -1}
	for !s.done() {
		mp.check()
		start := s.cursor

		r := s.peek()
		switch {
		case r == utf8.RuneError:
			// Either invalid UTF-8 or a literal U+FFFD; both are garbage here.
			_, n := utf8.DecodeRuneInString(s.rest())
			s.bad(n)
			continue

		case unicode.IsSpace(r):
			s.takeWhile(unicode.IsSpace)
			s.emit(s.cursor-start, kind.Whitespace)
			continue

		case r == '#':
			if idx := strings.IndexByte(s.rest(), '\n'); idx != -1 {
				s.cursor += idx
			} else {
				s.cursor = len(s.text)
			}
			s.emit(s.cursor-start, kind.Comment)
			continue

		case r == '"':
			s.scanString()
			continue

		case isDigit(r):
			s.takeWhile(isDigit)
			s.emit(s.cursor-start, kind.IntNumber)
			continue

		case unicode.IsLetter(r) || (r == '_' && s.identContinuesAt(1)):
			s.scanIdent()
			continue
		}

		if k, n := s.punct(); n > 0 {
			s.cursor += n
			s.emit(n, k)
			continue
		}

		s.bad(utf8.RuneLen(r))
	}

	s.flushBad()
	s.push(0, kind.EOF)
}

func (s *scanner) scanString() {
	start := s.cursor
	s.cursor++ // Opening quote.
	for !s.done() {
		switch s.pop() {
		case '\\':
			_ = s.pop()
		case '"':
			s.emit(s.cursor-start, kind.String)
			return
		}
	}

	s.emit(s.cursor-start, kind.String)
	s.errorLast(errUnterminatedString)
}

func (s *scanner) scanIdent() {
	start := s.cursor
	_ = s.pop()
loop:
	for !s.done() {
		r := s.peek()
		switch {
		case isIdentContinue(r):
			_ = s.pop()
		case r == '-' && s.alnumAt(1):
			_ = s.pop()
		default:
			break loop
		}
	}

	text := s.text[start:s.cursor]
	s.emit(len(text), kind.Keyword(text))
}

// identContinuesAt returns whether the rune at offset n from the cursor
// continues an identifier.
func (s *scanner) identContinuesAt(n int) bool {
	return isIdentContinue(s.runeAt(n))
}

// alnumAt returns whether the rune at offset n from the cursor is a letter or
// a digit.
func (s *scanner) alnumAt(n int) bool {
	r := s.runeAt(n)
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (s *scanner) runeAt(n int) rune {
	rest := s.rest()
	if n >= len(rest) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(rest[n:])
	return r
}

func (s *scanner) punct() (kind.Kind, int) {
	rest := s.rest()
	for _, k := range longPunct {
		if strings.HasPrefix(rest, k.Punct()) {
			return k, len(k.Punct())
		}
	}
	if k, ok := shortPunct[rest[0]]; ok {
		return k, 1
	}
	return kind.Tombstone, 0
}

// emit pushes a new token, first flushing any pending unrecognized bytes.
func (s *scanner) emit(length int, k kind.Kind) {
	s.flushBad()
	s.push(length, k)
}

// bad records n unrecognized bytes at the cursor.
func (s *scanner) bad(n int) {
	if s.badBytes == 0 {
		s.badStart = s.cursor
	}
	s.badBytes += n
	s.cursor += n
}

func (s *scanner) flushBad() {
	if s.badBytes == 0 {
		return
	}

	n := s.badBytes
	s.badBytes = 0
	s.push(n, kind.Error)

	if utf8.ValidString(s.text[s.badStart : s.badStart+n]) {
		s.errorLast(errUnrecognized)
	} else {
		s.errorLast(errInvalidUTF8)
	}
}

// errorLast attaches a lexical error to the most recently pushed token.
func (s *scanner) errorLast(msg string) {
	s.errors = append(s.errors, lexError{token: len(s.kinds) - 1, msg: msg})
}

func (s *scanner) rest() string {
	return s.text[s.cursor:]
}

func (s *scanner) done() bool {
	return s.cursor >= len(s.text)
}

// peek returns the next rune, or -1 if the scanner is done.
func (s *scanner) peek() rune {
	if s.done() {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(s.rest())
	return r
}

// pop consumes the next rune, or returns -1 if the scanner is done.
func (s *scanner) pop() rune {
	if s.done() {
		return -1
	}
	r, n := utf8.DecodeRuneInString(s.rest())
	s.cursor += n
	return r
}

func (s *scanner) takeWhile(f func(rune) bool) {
	for !s.done() {
		r, n := utf8.DecodeRuneInString(s.rest())
		if r == utf8.RuneError || !f(r) {
			return
		}
		s.cursor += n
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentContinue(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '\''
}

// mustProgress is a helper for ensuring that the scanner makes progress
// in each loop iteration. This is intended for turning infinite loops into
// panics.
type mustProgress struct {
	s    *scanner
	prev int
}

// check panics if the scanner has not advanced since the last call.
func (mp *mustProgress) check() {
	if mp.prev == mp.s.cursor {
		panic("athena/token: scanner failed to make progress; this is a bug in athena")
	}
	mp.prev = mp.s.cursor
}
