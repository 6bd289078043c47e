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

// parseSort parses a sort, such as Int, 'T or (List Int).
func parseSort(p *Parser) bool {
	switch p.Current() {
	case kind.Ident:
		parseIdentSort(p)
	case kind.Tick:
		parseVarSort(p)
	case kind.LParen:
		parseCompoundSort(p)
	default:
		return false
	}
	return true
}

func parseIdentSort(p *Parser) {
	m := p.Start()
	parseNameRef(p)
	m.Complete(p, kind.IdentSort)
}

func parseVarSort(p *Parser) {
	m := p.Start()
	p.Bump(kind.Tick)
	if !p.Eat(kind.Ident) {
		p.Error("Expected identifier as part of a sort variable")
	}
	m.Complete(p, kind.VarSort)
}

func parseCompoundSort(p *Parser) {
	m := p.Start()
	p.Bump(kind.LParen)
	if !parseSort(p) {
		p.Error("Expected at least one sort in a compound sort")
	} else {
		for parseSort(p) {
		}
	}
	p.Expect(kind.RParen)
	m.Complete(p, kind.CompoundSort)
}

// parseSortDecl parses the sort introduced by a domain directive.
func parseSortDecl(p *Parser) bool {
	switch p.Current() {
	case kind.Ident:
		parseIdentSortDecl(p)
	case kind.LParen:
		parseCompoundSortDecl(p)
	default:
		return false
	}
	return true
}

func parseIdentSortDecl(p *Parser) {
	m := p.Start()
	parseName(p)
	m.Complete(p, kind.IdentSortDecl)
}

func parseCompoundSortDecl(p *Parser) {
	m := p.Start()
	p.Bump(kind.LParen)
	for !p.At(kind.RParen) {
		if !p.At(kind.Ident) {
			p.Error("Expected a sort in a compound sort")
			break
		}
		parseIdentSortDecl(p)
	}
	p.Expect(kind.RParen)
	m.Complete(p, kind.CompoundSort)
}

// parseSortList parses the bracketed argument sorts of a declaration.
func parseSortList(p *Parser) CompletedMarker {
	m := p.Start()
	p.Bump(kind.LBrack)
	parseDelimited(p, kind.RBrack, stopNested.With(kind.ThinArrow), startsSort, "a sort", parseSort)
	return m.Complete(p, kind.SortList)
}
