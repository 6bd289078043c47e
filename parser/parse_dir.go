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

// parseStmt parses a top-level statement, which is a directive or a phrase.
func parseStmt(p *Parser) bool {
	return parseDir(p) || parsePhrase(p)
}

// parseDir parses a directive.
func parseDir(p *Parser) bool {
	switch p.Current() {
	case kind.DomainKw:
		m := p.Start()
		p.Bump(kind.DomainKw)
		if !parseSortDecl(p) {
			p.Error("expected a sort declaration")
		}
		m.Complete(p, kind.DomainDir)

	case kind.DeclareKw:
		parseDeclare(p)

	case kind.DefineKw:
		m := p.Start()
		p.Bump(kind.DefineKw)
		if !parseName(p) {
			p.Error("expected a name")
		}
		p.Expect(kind.ColonEq)
		if !parsePhrase(p) {
			p.Error("expected a phrase")
		}
		m.Complete(p, kind.DefineDir)

	case kind.AssertKw:
		m := p.Start()
		p.Bump(kind.AssertKw)
		if !parsePhrase(p) {
			p.Error("expected a phrase")
		}
		m.Complete(p, kind.AssertDir)

	case kind.LoadKw:
		m := p.Start()
		p.Bump(kind.LoadKw)
		p.Expect(kind.String)
		m.Complete(p, kind.LoadDir)

	default:
		return false
	}
	return true
}

func parseDeclare(p *Parser) {
	m := p.Start()
	p.Bump(kind.DeclareKw)
	if !parseName(p) {
		p.Error("expected a name")
	}
	for p.Eat(kind.Comma) {
		if !parseName(p) {
			p.Error("expected a name")
		}
	}
	p.Expect(kind.Colon)

	if p.At(kind.LBrack) {
		// [Nat Nat] -> Nat. The signature is wrapped around the argument
		// list after the fact.
		sig := parseSortList(p).Precede(p)
		p.Expect(kind.ThinArrow)
		if !parseSort(p) {
			p.Error("expected a sort")
		}
		sig.Complete(p, kind.SortSignature)
	} else if !parseSort(p) {
		p.Error("expected a sort")
	}

	m.Complete(p, kind.DeclareDir)
}
