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
)

// parseDelimited parses items up to closer, and then the closer itself.
//
// Parsing stops early at the end of input or at a token in stop. Tokens that
// do not start an item (as given by starts) are skipped into error nodes.
// item must not consume anything when it returns false.
func parseDelimited(p *Parser, closer kind.Kind, stop, starts kind.Set, what string, item func(*Parser) bool) {
	recovery := stop.Union(starts).With(closer)
	for !p.At(closer) && !p.AtEOF() && !p.AtSet(stop) {
		if !item(p) {
			p.Recover(fmt.Sprintf("expected %s or %s", what, closer.Describe()), recovery)
		}
	}
	p.Expect(closer)
}
