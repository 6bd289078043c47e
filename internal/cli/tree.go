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

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/athena-lang/athena/syntax"
)

// treeStyles is the styling of a tree dump.
type treeStyles struct {
	node, token, span, text, err lipgloss.Style
}

func newTreeStyles(w io.Writer, color bool) treeStyles {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
		plain := r.NewStyle()
		return treeStyles{plain, plain, plain, plain, plain}
	}

	r.SetColorProfile(termenv.ANSI256)
	return treeStyles{
		node:  r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		token: r.NewStyle().Foreground(lipgloss.Color("10")),
		span:  r.NewStyle().Foreground(lipgloss.Color("8")),
		text:  r.NewStyle().Foreground(lipgloss.Color("11")),
		err:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

// writeTree writes the same dump as [syntax.Tree.Debug], styled.
func writeTree(w io.Writer, tree *syntax.Tree, st treeStyles) error {
	var b strings.Builder
	writeNode(&b, tree.Root(), 0, st)
	for _, err := range tree.Errors() {
		b.WriteString(st.err.Render(fmt.Sprintf("error %d:", err.Offset())))
		fmt.Fprintf(&b, " %s\n", err.Message)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeNode(b *strings.Builder, n *syntax.Node, depth int, st treeStyles) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%s%s%s\n", indent, st.node.Render(n.Kind().String()), st.span.Render("@"+n.Range().String()))
	for child := range n.ChildrenWithTokens() {
		switch c := child.(type) {
		case *syntax.Node:
			writeNode(b, c, depth+1, st)
		case *syntax.Token:
			fmt.Fprintf(b, "%s  %s%s %s\n", indent,
				st.token.Render(c.Kind().String()),
				st.span.Render("@"+c.Range().String()),
				st.text.Render(fmt.Sprintf("%q", c.Text())))
		}
	}
}
