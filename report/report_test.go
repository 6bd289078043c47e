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

package report_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athena-lang/athena/parser"
	"github.com/athena-lang/athena/report"
	"github.com/athena-lang/athena/source"
	"github.com/athena-lang/athena/syntax"
)

func TestDiagnostic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, text string
		err        syntax.SyntaxError
		want       string
	}{
		{
			name: "empty range",
			text: "define x := $",
			err:  syntax.SyntaxError{Message: "expected a phrase", Range: syntax.Range{Start: 11, End: 11}},
			want: `error: expected a phrase
 --> test.ath:1:12
  |
1 | define x := $
  |            ^`,
		},
		{
			name: "tabs",
			text: "\tfoo bar\n",
			err:  syntax.SyntaxError{Message: "bad", Range: syntax.Range{Start: 5, End: 8}},
			want: `error: bad
 --> test.ath:1:6
  |
1 |     foo bar
  |         ^^^`,
		},
		{
			name: "wide",
			text: "x\n世界 $",
			err:  syntax.SyntaxError{Message: "bad", Range: syntax.Range{Start: 9, End: 10}},
			want: `error: bad
 --> test.ath:2:4
  |
2 | 世界 $
  |      ^`,
		},
		{
			name: "multiline",
			text: "ab\ncd",
			err:  syntax.SyntaxError{Message: "bad", Range: syntax.Range{Start: 1, End: 4}},
			want: `error: bad
 --> test.ath:1:2
  |
1 | ab
  |  ^`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			file := source.NewFile("test.ath", tt.text)
			assert.Equal(t, tt.want, report.Renderer{}.Diagnostic(file, tt.err))
		})
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	file := source.NewFile("test.ath", "define x := $")
	tree := syntax.Parse(parser.SourceFile, file.Text())

	var out strings.Builder
	n, err := report.Renderer{Compact: true}.Render(file, tree.Errors(), &out)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, `test.ath:1:12: error: expected a phrase
test.ath:1:12: error: expected a directive or phrase
test.ath:1:13: error: unrecognized character
`, out.String())

	out.Reset()
	n, err = report.Renderer{}.Render(file, tree.Errors()[2:], &out)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, `error: unrecognized character
 --> test.ath:1:13
  |
1 | define x := $
  |             ^

encountered 1 error
`, out.String())

	out.Reset()
	n, err = report.Renderer{}.Render(file, nil, &out)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, out.String())
}

func TestColorize(t *testing.T) {
	t.Parallel()

	file := source.NewFile("test.ath", "?x: ()")
	tree := syntax.Parse(parser.Expr, file.Text())
	require.Len(t, tree.Errors(), 1)

	got := report.Renderer{Colorize: true}.Diagnostic(file, tree.Errors()[0])
	assert.True(t, strings.HasPrefix(got, "\033[1;31merror:\033[0m Expected at least one sort"))
	assert.Contains(t, got, "\033[1;31m      ^\033[0m")
}
