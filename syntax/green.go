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

package syntax

import (
	"fmt"
	"iter"
	"strings"

	"github.com/athena-lang/athena/internal/ext/mathx"
	"github.com/athena-lang/athena/kind"
)

// GreenElement is either a [*GreenNode] or a [*GreenToken].
type GreenElement interface {
	Kind() kind.Kind
	// Width returns the length of the element's text in bytes.
	Width() int

	writeText(*strings.Builder)
	isGreen()
}

// GreenToken is a leaf of a green tree.
type GreenToken struct {
	kind kind.Kind
	text string
}

// NewGreenToken returns a new, uncached green token.
func NewGreenToken(k kind.Kind, text string) *GreenToken {
	if !k.IsToken() {
		panic(fmt.Sprintf("athena/syntax: %v is not a token kind", k))
	}
	return &GreenToken{kind: k, text: text}
}

// Kind returns the token's kind.
func (t *GreenToken) Kind() kind.Kind { return t.kind }

// Text returns the token's text.
func (t *GreenToken) Text() string { return t.text }

// Width returns the length of the token's text in bytes.
func (t *GreenToken) Width() int { return len(t.text) }

// String implements [fmt.Stringer].
func (t *GreenToken) String() string {
	return fmt.Sprintf("%v %q", t.kind, t.text)
}

func (t *GreenToken) writeText(b *strings.Builder) { b.WriteString(t.text) }
func (*GreenToken) isGreen()                        {}

// GreenNode is an interior node of a green tree.
type GreenNode struct {
	kind     kind.Kind
	width    uint32
	children []greenChild
}

type greenChild struct {
	// Offset of the child relative to the start of its parent.
	rel  uint32
	elem GreenElement
}

// NewGreenNode returns a new, uncached green node with the given children.
func NewGreenNode(k kind.Kind, children []GreenElement) *GreenNode {
	if !k.IsNode() {
		panic(fmt.Sprintf("athena/syntax: %v is not a node kind", k))
	}

	n := &GreenNode{kind: k, children: make([]greenChild, len(children))}
	var width int
	for i, c := range children {
		n.children[i] = greenChild{rel: mathx.Narrow[uint32](width), elem: c}
		width += c.Width()
	}
	n.width = mathx.Narrow[uint32](width)
	return n
}

// Kind returns the node's kind.
func (n *GreenNode) Kind() kind.Kind { return n.kind }

// Width returns the length of the node's text in bytes.
func (n *GreenNode) Width() int { return int(n.width) }

// Len returns the number of children of this node, tokens included.
func (n *GreenNode) Len() int { return len(n.children) }

// Child returns the i-th child of this node.
func (n *GreenNode) Child(i int) GreenElement { return n.children[i].elem }

// Children returns an iterator over this node's children.
func (n *GreenNode) Children() iter.Seq2[int, GreenElement] {
	return func(yield func(int, GreenElement) bool) {
		for i, c := range n.children {
			if !yield(i, c.elem) {
				return
			}
		}
	}
}

// Text reconstructs the source text this node covers.
func (n *GreenNode) Text() string {
	var b strings.Builder
	b.Grow(n.Width())
	n.writeText(&b)
	return b.String()
}

// ReplaceChild returns a copy of this node with its i-th child replaced.
// The other children are shared with n, not copied.
func (n *GreenNode) ReplaceChild(i int, elem GreenElement) *GreenNode {
	children := make([]GreenElement, len(n.children))
	for j, c := range n.children {
		children[j] = c.elem
	}
	children[i] = elem
	return NewGreenNode(n.kind, children)
}

// String implements [fmt.Stringer].
func (n *GreenNode) String() string {
	return fmt.Sprintf("%v@%d", n.kind, n.width)
}

func (n *GreenNode) writeText(b *strings.Builder) {
	for _, c := range n.children {
		c.elem.writeText(b)
	}
}

func (*GreenNode) isGreen() {}
