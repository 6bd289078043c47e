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
	"iter"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/athena-lang/athena/kind"
	"github.com/athena-lang/athena/parser"
	"github.com/athena-lang/athena/syntax"
)

func TestDebug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text, want string
	}{
		{
			text: "?x: Int",
			want: `FRAGMENT@0..7
  VAR@0..7
    QUESTION@0..1 "?"
    NAME@1..2
      IDENT@1..2 "x"
    COLON@2..3 ":"
    WHITESPACE@3..4 " "
    IDENT_SORT@4..7
      NAME_REF@4..7
        IDENT@4..7 "Int"
`,
		},
		{
			text: "?x: 'foo",
			want: `FRAGMENT@0..8
  VAR@0..8
    QUESTION@0..1 "?"
    NAME@1..2
      IDENT@1..2 "x"
    COLON@2..3 ":"
    WHITESPACE@3..4 " "
    VAR_SORT@4..8
      TICK@4..5 "'"
      IDENT@5..8 "foo"
`,
		},
		{
			text: "?x: (List Int)",
			want: `FRAGMENT@0..14
  VAR@0..14
    QUESTION@0..1 "?"
    NAME@1..2
      IDENT@1..2 "x"
    COLON@2..3 ":"
    WHITESPACE@3..4 " "
    COMPOUND_SORT@4..14
      L_PAREN@4..5 "("
      IDENT_SORT@5..9
        NAME_REF@5..9
          IDENT@5..9 "List"
      WHITESPACE@9..10 " "
      IDENT_SORT@10..13
        NAME_REF@10..13
          IDENT@10..13 "Int"
      R_PAREN@13..14 ")"
`,
		},
		{
			text: "?x: ()",
			want: `FRAGMENT@0..6
  VAR@0..6
    QUESTION@0..1 "?"
    NAME@1..2
      IDENT@1..2 "x"
    COLON@2..3 ":"
    WHITESPACE@3..4 " "
    COMPOUND_SORT@4..6
      L_PAREN@4..5 "("
      R_PAREN@5..6 ")"
error 5: Expected at least one sort in a compound sort
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			tree := syntax.Parse(parser.Expr, tt.text)
			assert.Equal(t, tt.want, tree.Debug())
			assert.Equal(t, tt.text, tree.Root().Text())
		})
	}
}

func TestBinaryShape(t *testing.T) {
	t.Parallel()

	// The left operand is wrapped after the fact, whatever the size of the
	// event log built up by then.
	for n := range 33 {
		text := "[" + strings.Repeat("1 ", n) + "] & y"
		tree := syntax.Parse(parser.Expr, text)
		require.Empty(t, tree.Errors(), "%q", text)

		bin := tree.Root().FirstChild()
		require.NotNil(t, bin, "%q", text)
		assert.Equal(t, kind.BinExpr, bin.Kind(), "%q", text)
		assert.Equal(t, syntax.Range{End: len(text)}, bin.Range(), "%q", text)
		assert.Equal(t,
			[]kind.Kind{kind.ListExpr, kind.IdentExpr},
			kinds(bin.Children()), "%q", text)
	}
}

func TestLossless(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"   ",
		"# only a comment",
		"define x := (f ?y:Int",
		"declare f: [Nat -> Nat",
		"assert ) ] } ==> ((",
		"match x { (cons ?h _) => h | [] => ",
		"assume h: A in conclude B by (!mp h h2",
		"\"unterminated \\\" string",
		"𝔸 \x80\xff domain D",
	}

	for _, entry := range parser.EntryPoints() {
		for _, text := range inputs {
			tree := syntax.Parse(entry, text)
			root := tree.Root()
			assert.Equal(t, text, root.Text(), "%v: %q", entry, text)
			assert.Equal(t, len(text), root.Range().End)

			var b strings.Builder
			next := 0
			for tok := range root.Tokens() {
				assert.Equal(t, next, tok.Range().Start, "%v: %q: gap before %v", entry, text, tok)
				next = tok.Range().End
				b.WriteString(tok.Text())
			}
			assert.Equal(t, text, b.String())

			for _, err := range tree.Errors() {
				assert.True(t, syntax.Range{End: len(text)}.Covers(err.Range), "%v: %q: %v", entry, text, err)
			}
		}
	}
}

func TestNavigation(t *testing.T) {
	t.Parallel()

	root := syntax.Parse(parser.Expr, "?x: Int").Root()
	assert.Nil(t, root.Parent())

	v := root.FirstChild()
	require.NotNil(t, v)
	assert.Equal(t, kind.Var, v.Kind())
	assert.Same(t, v.Green(), root.LastChild().Green())
	assert.Nil(t, v.NextSibling())

	name := v.FirstChild()
	assert.Equal(t, kind.Name, name.Kind())
	sort := name.NextSibling()
	assert.Equal(t, kind.IdentSort, sort.Kind())
	assert.Equal(t, kind.Name, sort.PrevSibling().Kind())
	assert.Nil(t, name.PrevSibling())

	tok := root.TokenAt(5)
	require.NotNil(t, tok)
	assert.Equal(t, "IDENT@4..7 \"Int\"", tok.String())
	assert.Equal(t,
		[]kind.Kind{kind.NameRef, kind.IdentSort, kind.Var, kind.Fragment},
		kinds(tok.Parent().Ancestors()))
	assert.Nil(t, root.TokenAt(7))
	assert.Nil(t, root.TokenAt(-1))

	assert.Equal(t, kind.Whitespace, tok.PrevToken().Kind())
	assert.Nil(t, tok.NextToken())
	assert.Same(t, tok.Green(), root.LastToken().Green())

	first := root.FirstToken()
	assert.Equal(t, kind.Question, first.Kind())
	assert.Nil(t, first.PrevToken())
	assert.Equal(t, "x", first.NextToken().Text())
	assert.Equal(t, ":", first.NextToken().NextToken().Text())

	var fromNext []string
	for tok := root.FirstToken(); tok != nil; tok = tok.NextToken() {
		fromNext = append(fromNext, tok.Text())
	}
	var fromIter []string
	for tok := range root.Tokens() {
		fromIter = append(fromIter, tok.Text())
	}
	assert.Equal(t, []string{"?", "x", ":", " ", "Int"}, fromIter)
	assert.Equal(t, fromIter, fromNext)

	assert.Equal(t,
		[]kind.Kind{kind.Fragment, kind.Var, kind.Name, kind.IdentSort, kind.NameRef},
		kinds(root.Descendants()))

	e := root.CoveringElement(syntax.Range{Start: 1, End: 2})
	assert.Equal(t, kind.Ident, e.Kind())
	assert.Equal(t, kind.Name, e.Parent().Kind())
	e = root.CoveringElement(syntax.Range{Start: 0, End: 3})
	assert.Equal(t, kind.Var, e.Kind())
	e = root.CoveringElement(syntax.Range{Start: 5, End: 5})
	assert.Equal(t, kind.Ident, e.Kind())
	assert.Equal(t, 0, e.Index())
	e = root.CoveringElement(syntax.Range{Start: 4, End: 4})
	assert.Equal(t, kind.Whitespace, e.Kind())
	assert.Nil(t, root.CoveringElement(syntax.Range{Start: 6, End: 9}))
}

func TestReplaceWith(t *testing.T) {
	t.Parallel()

	cache := new(syntax.NodeCache)
	tree := syntax.Parse(parser.Expr, "?x: Int", syntax.WithCache(cache))
	other := syntax.Parse(parser.Expr, "?y: Bool", syntax.WithCache(cache))

	sort := tree.Root().TokenAt(4).Parent().Parent()
	require.Equal(t, kind.IdentSort, sort.Kind())
	replacement := other.Root().TokenAt(4).Parent().Parent()
	require.Equal(t, kind.IdentSort, replacement.Kind())

	green := sort.ReplaceWith(replacement.Green())
	assert.Equal(t, "?x: Bool", green.Text())
	assert.Equal(t, "?x: Int", tree.Green().Text())

	// Siblings of the replaced path are shared, not copied.
	oldVar := tree.Green().Child(0).(*syntax.GreenNode)
	newVar := green.Child(0).(*syntax.GreenNode)
	assert.NotSame(t, oldVar, newVar)
	assert.Same(t, oldVar.Child(1), newVar.Child(1))
	assert.Same(t, replacement.Green(), newVar.Child(4))
}

func TestReparse(t *testing.T) {
	t.Parallel()

	text := "define x := 1\ndefine y := 2"
	tree := syntax.Parse(parser.SourceFile, text)
	require.NoError(t, tree.Err())

	edited, err := tree.Reparse(syntax.Edit{Range: syntax.Range{Start: 26, End: 27}, Insert: "3"})
	require.NoError(t, err)
	assert.Equal(t, "define x := 1\ndefine y := 3", edited.Text())
	assert.Same(t, tree.Cache(), edited.Cache())
	assert.Equal(t, parser.SourceFile, edited.Entry())

	// x's name and literal, and y's name.
	assert.Equal(t, 3, syntax.Shared(tree.Green(), edited.Green()))
	assert.Equal(t, 1, syntax.Shared(tree.Green(), tree.Green()))

	_, err = tree.Reparse(syntax.Edit{Range: syntax.Range{Start: 20, End: 40}})
	assert.Error(t, err)

	stats := tree.Cache().Stats()
	assert.Positive(t, stats.Hits)
	assert.Positive(t, stats.Nodes)
}

func TestErrors(t *testing.T) {
	t.Parallel()

	assert.NoError(t, syntax.Parse(parser.Expr, "?x: Int").Err())

	tree := syntax.Parse(parser.Expr, "?x: ()")
	require.Len(t, tree.Errors(), 1)
	assert.EqualError(t, tree.Err(), "5: Expected at least one sort in a compound sort")

	// Lexical errors come after structural ones, and span their token.
	tree = syntax.Parse(parser.SourceFile, "define x := $")
	assert.Equal(t,
		[]syntax.SyntaxError{
			{Message: "expected a phrase", Range: syntax.Range{Start: 11, End: 11}},
			{Message: "expected a directive or phrase", Range: syntax.Range{Start: 11, End: 11}},
			{Message: "unrecognized character", Range: syntax.Range{Start: 12, End: 13}},
		},
		tree.Errors())
}

func TestErrorIndex(t *testing.T) {
	t.Parallel()

	idx := syntax.NewErrorIndex([]syntax.SyntaxError{
		{Message: "a", Range: syntax.Range{Start: 0, End: 0}},
		{Message: "b", Range: syntax.Range{Start: 5, End: 5}},
		{Message: "c", Range: syntax.Range{Start: 5, End: 9}},
		{Message: "d", Range: syntax.Range{Start: 12, End: 12}},
	})
	assert.Equal(t, 4, idx.Len())

	messages := func(errs []syntax.SyntaxError) []string {
		var out []string
		for _, err := range errs {
			out = append(out, err.Message)
		}
		return out
	}
	assert.Equal(t, []string{"b", "c"}, messages(idx.At(5)))
	assert.Empty(t, idx.At(4))
	assert.Equal(t, []string{"b", "c", "d"}, messages(slices.Collect(idx.In(syntax.Range{Start: 5, End: 12}))))
	assert.Empty(t, slices.Collect(idx.In(syntax.Range{Start: 1, End: 4})))

	tree := syntax.Parse(parser.Expr, "?x: ()")
	sort := tree.Root().TokenAt(4).Parent()
	require.Equal(t, kind.CompoundSort, sort.Kind())
	assert.Len(t, slices.Collect(tree.ErrorIndex().For(sort)), 1)
	assert.Empty(t, slices.Collect(tree.ErrorIndex().For(tree.Root().TokenAt(1))))
}

func TestExport(t *testing.T) {
	t.Parallel()

	tree := syntax.Parse(parser.Expr, "Nat")
	want := syntax.ExportTree{
		Entry: "expr",
		Root: syntax.ExportNode{
			Kind: "FRAGMENT", End: 3,
			Children: []syntax.ExportNode{{
				Kind: "IDENT_EXPR", End: 3,
				Children: []syntax.ExportNode{{
					Kind: "NAME_REF", End: 3,
					Children: []syntax.ExportNode{{Kind: "IDENT", End: 3, Text: "Nat"}},
				}},
			}},
		},
	}
	got := tree.Export()
	assert.Empty(t, cmp.Diff(want, got))

	out, err := yaml.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(out), "entry: expr\n")
	assert.Contains(t, string(out), "text: Nat\n")
	assert.NotContains(t, string(out), "errors:")
}

func TestCacheConcurrent(t *testing.T) {
	t.Parallel()

	cache := new(syntax.NodeCache)
	roots := make([]*syntax.GreenNode, 16)

	var eg errgroup.Group
	for i := range roots {
		eg.Go(func() error {
			roots[i] = syntax.Parse(parser.Expr, "x", syntax.WithCache(cache)).Green()
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	for _, root := range roots[1:] {
		assert.Same(t, roots[0], root)
	}
	stats := cache.Stats()
	assert.Equal(t, 1, stats.Tokens)
	assert.Equal(t, 3, stats.Nodes)
	assert.Equal(t, 4, cache.Len())
}

func kinds[E syntax.Element](seq iter.Seq[E]) []kind.Kind {
	var out []kind.Kind
	for e := range seq {
		out = append(out, e.Kind())
	}
	return out
}
