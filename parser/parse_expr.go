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

// parseExpr parses a full expression, including infix operators.
func parseExpr(p *Parser) bool {
	_, ok := parseExprInfix(p, 1)
	return ok
}

// infixPower returns the precedence of the infix operator k, or zero if k is
// not one. Higher values bind tighter.
func infixPower(k kind.Kind) (prec int, rightAssoc bool) {
	switch k {
	case kind.Iff:
		return 1, false
	case kind.Implies:
		return 2, true
	case kind.Pipe:
		return 3, false
	case kind.Amp:
		return 4, false
	case kind.Eq:
		return 5, false
	default:
		return 0, false
	}
}

// parseExprInfix parses an expression whose operators all have precedence
// at least minPrec.
//
// The left operand is completed before its operator is seen, and is then
// wrapped in the binary node with [CompletedMarker.Precede].
func parseExprInfix(p *Parser, minPrec int) (CompletedMarker, bool) {
	lhs, ok := parseExprPrefix(p)
	if !ok {
		return lhs, false
	}

	for {
		op := p.Current()
		prec, right := infixPower(op)
		if prec == 0 || prec < minPrec {
			return lhs, true
		}

		m := lhs.Precede(p)
		p.Bump(op)
		next := prec + 1
		if right {
			next = prec
		}
		if _, ok := parseExprInfix(p, next); !ok {
			p.Errorf("expected an expression after %s", op.Describe())
		}
		lhs = m.Complete(p, kind.BinExpr)
	}
}

func parseExprPrefix(p *Parser) (CompletedMarker, bool) {
	if !p.At(kind.Tilde) {
		return parseExprAtom(p)
	}

	m := p.Start()
	p.Bump(kind.Tilde)
	if _, ok := parseExprPrefix(p); !ok {
		p.Error("expected an expression after `~`")
	}
	return m.Complete(p, kind.PrefixExpr), true
}

func parseExprAtom(p *Parser) (CompletedMarker, bool) {
	switch p.Current() {
	case kind.IntNumber, kind.String:
		m := p.Start()
		p.BumpAny()
		return m.Complete(p, kind.Literal), true

	case kind.Ident:
		m := p.Start()
		parseNameRef(p)
		return m.Complete(p, kind.IdentExpr), true

	case kind.Question:
		return parseVar(p, kind.Var), true

	case kind.LParen:
		if p.NthAt(1, kind.Bang) {
			return parseMethodApp(p), true
		}
		return parseParenOrApp(p), true

	case kind.LBrack:
		m := p.Start()
		p.Bump(kind.LBrack)
		parseDelimited(p, kind.RBrack, stopNested, startsExpr, "an expression", parseExpr)
		return m.Complete(p, kind.ListExpr), true

	case kind.LambdaKw:
		return parseLambda(p), true
	case kind.MatchKw:
		return parseMatch(p), true
	case kind.LetKw:
		return parseLet(p), true

	default:
		return CompletedMarker{}, false
	}
}

// parseVar parses a variable with an optional sort annotation. It is shared
// by expressions and patterns, which complete it with different kinds.
func parseVar(p *Parser, k kind.Kind) CompletedMarker {
	m := p.Start()
	p.Bump(kind.Question)
	if !parseName(p) {
		p.Error("expected a variable name")
	}
	if p.Eat(kind.Colon) && !parseSort(p) {
		p.Error("expected a sort")
	}
	return m.Complete(p, k)
}

// parseParenOrApp parses either a parenthesized expression or an
// application. Which one it is is only known once the contents are parsed.
func parseParenOrApp(p *Parser) CompletedMarker {
	m := p.Start()
	p.Bump(kind.LParen)

	if !parseExpr(p) && (p.At(kind.RParen) || p.AtEOF()) {
		p.Error("expected an expression")
	}
	var args int
	parseDelimited(p, kind.RParen, stopNested, startsExpr, "an expression", func(p *Parser) bool {
		if !parseExpr(p) {
			return false
		}
		args++
		return true
	})

	if args > 0 {
		return m.Complete(p, kind.AppExpr)
	}
	return m.Complete(p, kind.ParenExpr)
}

func parseLambda(p *Parser) CompletedMarker {
	m := p.Start()
	p.Bump(kind.LambdaKw)

	params := p.Start()
	if p.Expect(kind.LParen) {
		parseDelimited(p, kind.RParen, stopNested, startsName, "a parameter name", parseName)
	}
	params.Complete(p, kind.ParamList)

	if !parsePhrase(p) {
		p.Error("expected a lambda body")
	}
	return m.Complete(p, kind.LambdaExpr)
}

func parseMatch(p *Parser) CompletedMarker {
	m := p.Start()
	p.Bump(kind.MatchKw)
	if !parseExpr(p) {
		p.Error("expected an expression to match on")
	}
	if p.Expect(kind.LBrace) {
		parseDelimited(p, kind.RBrace, startsDir, startsPat, "a match arm", parseMatchArm)
	}
	return m.Complete(p, kind.MatchExpr)
}

func parseMatchArm(p *Parser) bool {
	if !p.AtSet(startsPat) {
		return false
	}

	m := p.Start()
	parsePat(p)
	p.Expect(kind.FatArrow)
	if !parsePhrase(p) {
		p.Error("expected a phrase")
	}
	m.Complete(p, kind.MatchArm)
	return true
}

func parseLet(p *Parser) CompletedMarker {
	m := p.Start()
	p.Bump(kind.LetKw)
	if p.Expect(kind.LBrace) {
		parseDelimited(p, kind.RBrace, startsDir, startsPat, "a binding", parseLetBinding)
	}
	if !parsePhrase(p) {
		p.Error("expected a let body")
	}
	return m.Complete(p, kind.LetExpr)
}

func parseLetBinding(p *Parser) bool {
	if !p.AtSet(startsPat) {
		return false
	}

	m := p.Start()
	parsePat(p)
	p.Expect(kind.ColonEq)
	if !parsePhrase(p) {
		p.Error("expected a phrase")
	}
	p.Eat(kind.Semicolon)
	m.Complete(p, kind.LetBinding)
	return true
}
