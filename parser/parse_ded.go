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

import "github.com/athena-lang/athena/kind"

// parsePhrase parses either a deduction or an expression.
func parsePhrase(p *Parser) bool {
	return parseDed(p) || parseExpr(p)
}

// parseDed parses a deduction. A parenthesis only starts a deduction when it
// is followed by `!`; otherwise it is left for the expression parser.
func parseDed(p *Parser) bool {
	switch p.Current() {
	case kind.LParen:
		if !p.NthAt(1, kind.Bang) {
			return false
		}
		parseMethodApp(p)
	case kind.AssumeKw:
		parseAssume(p, kind.AssumeKw, kind.AssumeDed, "expected an assumption")
	case kind.ConcludeKw:
		parseAssume(p, kind.ConcludeKw, kind.ConcludeDed, "expected a conclusion")
	case kind.LBrace:
		parseBlock(p)
	default:
		return false
	}
	return true
}

func parseMethodApp(p *Parser) CompletedMarker {
	m := p.Start()
	p.Bump(kind.LParen)
	p.Bump(kind.Bang)
	if !parseExpr(p) {
		p.Error("expected a method")
	}
	parseDelimited(p, kind.RParen, stopNested, startsPhrase, "a phrase", parsePhrase)
	return m.Complete(p, kind.MethodApp)
}

// parseAssume parses the deductions that are a phrase followed by a block,
// which are introduced by the keyword kw.
func parseAssume(p *Parser, kw, k kind.Kind, missing string) {
	m := p.Start()
	p.Bump(kw)
	if !parsePhrase(p) {
		p.Error(missing)
	}
	if p.At(kind.LBrace) {
		parseBlock(p)
	} else {
		p.Error("expected a deduction block")
	}
	m.Complete(p, k)
}

func parseBlock(p *Parser) {
	m := p.Start()
	p.Bump(kind.LBrace)
	parseDelimited(p, kind.RBrace, kind.Set{}, startsStmt, "a statement", parseStmt)
	m.Complete(p, kind.BlockDed)
}
