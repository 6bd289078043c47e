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

	"github.com/athena-lang/athena/kind"
	"github.com/athena-lang/athena/parser"
)

// Builder assembles a green tree from a sequence of bridged parser steps.
type Builder struct {
	cache    *NodeCache
	parents  []builderFrame
	children []GreenElement
	errors   []SyntaxError
}

type builderFrame struct {
	kind  kind.Kind
	first int
}

// NewBuilder returns a builder that takes its tokens and nodes from cache.
// If cache is nil, the builder uses a cache of its own.
func NewBuilder(cache *NodeCache) *Builder {
	if cache == nil {
		cache = new(NodeCache)
	}
	return &Builder{cache: cache}
}

// StartNode opens a new node of kind k.
func (b *Builder) StartNode(k kind.Kind) {
	b.parents = append(b.parents, builderFrame{kind: k, first: len(b.children)})
}

// Token adds a token to the current node.
func (b *Builder) Token(k kind.Kind, text string) {
	b.children = append(b.children, b.cache.Token(k, text))
}

// FinishNode closes the current node.
func (b *Builder) FinishNode() {
	if len(b.parents) == 0 {
		panic("athena/syntax: FinishNode() called without a matching StartNode()")
	}
	frame := b.parents[len(b.parents)-1]
	b.parents = b.parents[:len(b.parents)-1]

	node := b.cache.Node(frame.kind, b.children[frame.first:])
	clear(b.children[frame.first:])
	b.children = append(b.children[:frame.first], node)
}

// Error records a structural error at the given byte offset.
func (b *Builder) Error(msg string, pos int) {
	b.errors = append(b.errors, SyntaxError{Message: msg, Range: Range{pos, pos}})
}

// Push applies a bridged parser step.
func (b *Builder) Push(step parser.StrStep) {
	switch step.Kind {
	case parser.StepEnter:
		b.StartNode(step.Syntax)
	case parser.StepToken:
		b.Token(step.Syntax, step.Text)
	case parser.StepExit:
		b.FinishNode()
	case parser.StepError:
		b.Error(step.Message, step.Pos)
	}
}

// Finish returns the root of the finished tree and the recorded errors.
//
// Panics unless exactly one node was built at the top level.
func (b *Builder) Finish() (*GreenNode, []SyntaxError) {
	if len(b.parents) != 0 {
		panic(fmt.Sprintf("athena/syntax: Finish() called with %d open nodes", len(b.parents)))
	}
	if len(b.children) != 1 {
		panic(fmt.Sprintf("athena/syntax: Finish() called with %d roots", len(b.children)))
	}
	root, ok := b.children[0].(*GreenNode)
	if !ok {
		panic("athena/syntax: Finish() called with a token as the root")
	}

	errors := b.errors
	b.children, b.errors = nil, nil
	return root, errors
}
