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

// parsePat parses a pattern, as found in match arms and let bindings.
func parsePat(p *Parser) bool {
	switch p.Current() {
	case kind.Underscore:
		m := p.Start()
		p.Bump(kind.Underscore)
		m.Complete(p, kind.WildcardPat)

	case kind.Question:
		parseVar(p, kind.VarPat)

	case kind.Ident:
		m := p.Start()
		parseNameRef(p)
		m.Complete(p, kind.NamePat)

	case kind.IntNumber, kind.String:
		m := p.Start()
		p.BumpAny()
		m.Complete(p, kind.LiteralPat)

	case kind.LParen:
		m := p.Start()
		p.Bump(kind.LParen)
		if !parseNameRef(p) {
			p.Error("expected a constructor name")
		}
		parseDelimited(p, kind.RParen, stopNested, startsPat, "a pattern", parsePat)
		m.Complete(p, kind.CompoundPat)

	case kind.LBrack:
		m := p.Start()
		p.Bump(kind.LBrack)
		parseDelimited(p, kind.RBrack, stopNested, startsPat, "a pattern", parsePat)
		m.Complete(p, kind.ListPat)

	default:
		return false
	}
	return true
}
