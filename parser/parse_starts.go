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

var (
	startsSort     = kind.NewSet(kind.Ident, kind.Tick, kind.LParen)
	startsSortDecl = kind.NewSet(kind.Ident, kind.LParen)

	startsExpr = kind.NewSet(
		kind.IntNumber, kind.String, kind.Ident, kind.Question,
		kind.LParen, kind.LBrack, kind.Tilde,
		kind.LambdaKw, kind.MatchKw, kind.LetKw,
	)
	startsDed    = kind.NewSet(kind.LParen, kind.AssumeKw, kind.ConcludeKw, kind.LBrace)
	startsPhrase = startsExpr.Union(startsDed)

	startsPat = kind.NewSet(
		kind.Underscore, kind.Question, kind.Ident,
		kind.IntNumber, kind.String, kind.LParen, kind.LBrack,
	)

	startsDir = kind.NewSet(
		kind.DomainKw, kind.DeclareKw, kind.DefineKw, kind.AssertKw, kind.LoadKw,
	)
	startsStmt = startsDir.Union(startsPhrase)

	startsName = kind.NewSet(kind.Ident)

	// Tokens that end a parenthesized or bracketed list early: a directive
	// cannot appear inside one, and neither can a stray closer of another kind.
	stopNested = startsDir.With(kind.RParen, kind.RBrack, kind.RBrace)
)

// parseName parses a binding occurrence of an identifier.
func parseName(p *Parser) bool {
	if !p.At(kind.Ident) {
		return false
	}
	m := p.Start()
	p.Bump(kind.Ident)
	m.Complete(p, kind.Name)
	return true
}

// parseNameRef parses a use of an identifier.
func parseNameRef(p *Parser) bool {
	if !p.At(kind.Ident) {
		return false
	}
	m := p.Start()
	p.Bump(kind.Ident)
	m.Complete(p, kind.NameRef)
	return true
}
