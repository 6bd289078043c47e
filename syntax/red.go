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

	"github.com/athena-lang/athena/kind"
)

// Element is either a [*Node] or a [*Token].
type Element interface {
	Kind() kind.Kind
	Range() Range
	Text() string

	// Parent returns the node containing this element, or nil for a root.
	Parent() *Node
	// Index returns the position of this element among its parent's
	// children, tokens included.
	Index() int

	isElement()
}

// Node is a positioned view of a [GreenNode].
//
// Nodes are created on the fly while navigating and hold no state of their
// own, so two Nodes for the same position compare unequal as pointers; use
// [Node.Green] and [Node.Range] to compare them.
type Node struct {
	green  *GreenNode
	parent *Node
	index  int
	offset int
}

// NewRoot returns a view of green as the root of a tree, starting at offset
// zero.
func NewRoot(green *GreenNode) *Node {
	return &Node{green: green}
}

// Green returns the green node this node is a view of.
func (n *Node) Green() *GreenNode { return n.green }

// Kind returns the node's kind.
func (n *Node) Kind() kind.Kind { return n.green.kind }

// Range returns the byte range the node covers.
func (n *Node) Range() Range {
	return Range{n.offset, n.offset + n.green.Width()}
}

// Text returns the source text the node covers.
func (n *Node) Text() string { return n.green.Text() }

// Parent returns this node's parent, or nil if it is the root.
func (n *Node) Parent() *Node { return n.parent }

// Index returns the position of this node among its parent's children.
func (n *Node) Index() int { return n.index }

// Len returns the number of children of this node, tokens included.
func (n *Node) Len() int { return n.green.Len() }

// ChildAt returns the i-th child of this node.
func (n *Node) ChildAt(i int) Element {
	c := n.green.children[i]
	offset := n.offset + int(c.rel)
	switch g := c.elem.(type) {
	case *GreenNode:
		return &Node{green: g, parent: n, index: i, offset: offset}
	case *GreenToken:
		return &Token{green: g, parent: n, index: i, offset: offset}
	default:
		panic(fmt.Sprintf("athena/syntax: unexpected green element %T", g))
	}
}

// ChildrenWithTokens returns an iterator over this node's children.
func (n *Node) ChildrenWithTokens() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		for i := range n.Len() {
			if !yield(n.ChildAt(i)) {
				return
			}
		}
	}
}

// Children returns an iterator over the children of this node that are
// themselves nodes.
func (n *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for i := range n.Len() {
			if c, ok := n.ChildAt(i).(*Node); ok && !yield(c) {
				return
			}
		}
	}
}

// FirstChild returns the first child of this node that is a node.
func (n *Node) FirstChild() *Node {
	return n.nodeFrom(0, 1)
}

// LastChild returns the last child of this node that is a node.
func (n *Node) LastChild() *Node {
	return n.nodeFrom(n.Len()-1, -1)
}

// NextSibling returns the next sibling of this node that is a node.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	return n.parent.nodeFrom(n.index+1, 1)
}

// PrevSibling returns the previous sibling of this node that is a node.
func (n *Node) PrevSibling() *Node {
	if n.parent == nil {
		return nil
	}
	return n.parent.nodeFrom(n.index-1, -1)
}

// nodeFrom returns the first node child found walking from i in steps of
// dir.
func (n *Node) nodeFrom(i, dir int) *Node {
	for ; i >= 0 && i < n.Len(); i += dir {
		if _, ok := n.green.children[i].elem.(*GreenNode); ok {
			return n.ChildAt(i).(*Node)
		}
	}
	return nil
}

// FirstToken returns the first token in this subtree, or nil if it
// contains none.
func (n *Node) FirstToken() *Token {
	return n.tokenFrom(0, 1)
}

// LastToken returns the last token in this subtree, or nil if it contains
// none.
func (n *Node) LastToken() *Token {
	return n.tokenFrom(n.Len()-1, -1)
}

func (n *Node) tokenFrom(i, dir int) *Token {
	for ; i >= 0 && i < n.Len(); i += dir {
		switch c := n.ChildAt(i).(type) {
		case *Token:
			return c
		case *Node:
			var t *Token
			if dir > 0 {
				t = c.FirstToken()
			} else {
				t = c.LastToken()
			}
			if t != nil {
				return t
			}
		}
	}
	return nil
}

// Preorder returns an iterator over every element of this subtree,
// starting with n itself, parents before children.
func (n *Node) Preorder() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		preorder(n, yield)
	}
}

func preorder(n *Node, yield func(Element) bool) bool {
	if !yield(n) {
		return false
	}
	for i := range n.Len() {
		switch c := n.ChildAt(i).(type) {
		case *Node:
			if !preorder(c, yield) {
				return false
			}
		case *Token:
			if !yield(c) {
				return false
			}
		}
	}
	return true
}

// Descendants returns an iterator over the nodes of this subtree, starting
// with n itself, parents before children.
func (n *Node) Descendants() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for e := range n.Preorder() {
			if c, ok := e.(*Node); ok && !yield(c) {
				return
			}
		}
	}
}

// Tokens returns an iterator over the tokens of this subtree, in order.
func (n *Node) Tokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		for e := range n.Preorder() {
			if t, ok := e.(*Token); ok && !yield(t) {
				return
			}
		}
	}
}

// Ancestors returns an iterator over n and then each of its ancestors, up
// to the root.
func (n *Node) Ancestors() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for p := n; p != nil; p = p.parent {
			if !yield(p) {
				return
			}
		}
	}
}

// TokenAt returns the token containing the byte at offset, or nil if offset
// is outside of this node.
func (n *Node) TokenAt(offset int) *Token {
	if !n.Range().Contains(offset) {
		return nil
	}

	node := n
	for {
		var next *Node
		for i := range node.Len() {
			child := node.ChildAt(i)
			if !child.Range().Contains(offset) {
				continue
			}
			if t, ok := child.(*Token); ok {
				return t
			}
			next = child.(*Node)
			break
		}
		if next == nil {
			return nil
		}
		node = next
	}
}

// CoveringElement returns the deepest element of this subtree whose range
// covers r. Empty children are never returned, and when two children both
// cover an empty range at their boundary, the first one wins.
//
// Returns nil if r is not within this node.
func (n *Node) CoveringElement(r Range) Element {
	if !n.Range().Covers(r) {
		return nil
	}

	node := n
	for {
		var next *Node
		for i := range node.Len() {
			child := node.ChildAt(i)
			if child.Range().Len() == 0 || !child.Range().Covers(r) {
				continue
			}
			if t, ok := child.(*Token); ok {
				return t
			}
			next = child.(*Node)
			break
		}
		if next == nil {
			return node
		}
		node = next
	}
}

// ReplaceWith returns the root of a new green tree in which this node has
// been replaced by green. Only the nodes on the path from this node to the
// root are copied; everything else is shared with the current tree.
func (n *Node) ReplaceWith(green *GreenNode) *GreenNode {
	for n.parent != nil {
		green = n.parent.green.ReplaceChild(n.index, green)
		n = n.parent
	}
	return green
}

// String implements [fmt.Stringer].
func (n *Node) String() string {
	return fmt.Sprintf("%v@%v", n.Kind(), n.Range())
}

func (*Node) isElement() {}

// Token is a positioned view of a [GreenToken].
type Token struct {
	green  *GreenToken
	parent *Node
	index  int
	offset int
}

// Green returns the green token this token is a view of.
func (t *Token) Green() *GreenToken { return t.green }

// Kind returns the token's kind.
func (t *Token) Kind() kind.Kind { return t.green.kind }

// Range returns the byte range of the token.
func (t *Token) Range() Range {
	return Range{t.offset, t.offset + t.green.Width()}
}

// Text returns the token's text.
func (t *Token) Text() string { return t.green.text }

// Parent returns the node containing this token.
func (t *Token) Parent() *Node { return t.parent }

// Index returns the position of this token among its parent's children.
func (t *Token) Index() int { return t.index }

// NextToken returns the token after this one in the whole tree, or nil if
// this is the last one.
func (t *Token) NextToken() *Token {
	for p, i := t.parent, t.index; p != nil; p, i = p.parent, p.index {
		if next := p.tokenFrom(i+1, 1); next != nil {
			return next
		}
	}
	return nil
}

// PrevToken returns the token before this one in the whole tree, or nil if
// this is the first one.
func (t *Token) PrevToken() *Token {
	for p, i := t.parent, t.index; p != nil; p, i = p.parent, p.index {
		if prev := p.tokenFrom(i-1, -1); prev != nil {
			return prev
		}
	}
	return nil
}

// String implements [fmt.Stringer].
func (t *Token) String() string {
	return fmt.Sprintf("%v@%v %q", t.Kind(), t.Range(), t.Text())
}

func (*Token) isElement() {}
