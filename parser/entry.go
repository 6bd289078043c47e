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

// EntryPoint selects the top-level production a parse starts from.
type EntryPoint int

const (
	SourceFile EntryPoint = iota
	Expr
	Pat
	Ded
	Phrase
	Dir
	Stmt
)

var entryNames = [...]string{
	SourceFile: "file",
	Expr:       "expr",
	Pat:        "pat",
	Ded:        "ded",
	Phrase:     "phrase",
	Dir:        "dir",
	Stmt:       "stmt",
}

// EntryPoints returns every entry point, in declaration order.
func EntryPoints() []EntryPoint {
	return []EntryPoint{SourceFile, Expr, Pat, Ded, Phrase, Dir, Stmt}
}

// LookupEntryPoint returns the entry point with the given name, as returned
// by [EntryPoint.String].
func LookupEntryPoint(name string) (EntryPoint, bool) {
	for e, n := range entryNames {
		if n == name {
			return EntryPoint(e), true
		}
	}
	return 0, false
}

// String implements [fmt.Stringer].
func (e EntryPoint) String() string {
	if e < 0 || int(e) >= len(entryNames) {
		return fmt.Sprintf("parser.EntryPoint(%d)", int(e))
	}
	return entryNames[e]
}

// Parse runs this entry point's production over input and resolves the
// resulting event log.
//
// The output always has exactly one root node: [kind.SourceFile] for
// [SourceFile], and [kind.Fragment] for every other entry point.
func (e EntryPoint) Parse(input *token.Input) *Output {
	p := New(input)
	switch e {
	case SourceFile:
		sourceFile(p)
	case Expr:
		fragment(p, e, "an expression", parseExpr)
	case Pat:
		fragment(p, e, "a pattern", parsePat)
	case Ded:
		fragment(p, e, "a deduction", parseDed)
	case Phrase:
		fragment(p, e, "a phrase", parsePhrase)
	case Dir:
		fragment(p, e, "a directive", parseDir)
	case Stmt:
		fragment(p, e, "a directive or phrase", parseStmt)
	default:
		panic(fmt.Sprintf("athena/parser: unknown entry point %d", int(e)))
	}
	return Resolve(p.Finish())
}

func sourceFile(p *Parser) {
	m := p.Start()
	for !p.AtEOF() {
		if !parseStmt(p) {
			p.Recover("expected a directive or phrase", startsStmt)
		}
	}
	m.Complete(p, kind.SourceFile)
}

// fragment parses a single production, and wraps whatever input is left
// over in an error node.
func fragment(p *Parser, e EntryPoint, what string, parse func(*Parser) bool) {
	m := p.Start()
	switch {
	case parse(p):
		if !p.AtEOF() {
			p.Recover(fmt.Sprintf("unexpected input after %v", e), kind.Set{})
		}
	case p.AtEOF():
		p.Errorf("expected %s", what)
	default:
		p.Recover("expected "+what, kind.Set{})
	}
	m.Complete(p, kind.Fragment)
}
