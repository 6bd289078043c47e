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

package syntax_test

import (
	"testing"

	"github.com/athena-lang/athena/parser"
	"github.com/athena-lang/athena/syntax"
)

func FuzzParse(f *testing.F) {
	for _, seed := range []string{
		"define x := 1",
		"declare f: [Nat] -> Nat",
		"(!mp h1 h2)",
		"match x { (cons ?h _) => h }",
		") ] } (( \"abc",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, text string) {
		for _, entry := range parser.EntryPoints() {
			tree := syntax.Parse(entry, text)
			if got := tree.Root().Text(); got != text {
				t.Fatalf("%v: tree text %q does not match input %q", entry, got, text)
			}
			for _, err := range tree.Errors() {
				if err.Range.Start < 0 || err.Range.End > len(text) || err.Range.Start > err.Range.End {
					t.Fatalf("%v: error %v out of bounds for %q", entry, err, text)
				}
			}
		}
	})
}
