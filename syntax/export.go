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

// ExportNode is a plain-data copy of a syntax element, suitable for
// serialization.
type ExportNode struct {
	Kind     string       `yaml:"kind" json:"kind"`
	Start    int          `yaml:"start" json:"start"`
	End      int          `yaml:"end" json:"end"`
	Text     string       `yaml:"text,omitempty" json:"text,omitempty"`
	Children []ExportNode `yaml:"children,omitempty" json:"children,omitempty"`
}

// ExportError is a plain-data copy of a [SyntaxError].
type ExportError struct {
	Message string `yaml:"message" json:"message"`
	Start   int    `yaml:"start" json:"start"`
	End     int    `yaml:"end" json:"end"`
}

// ExportTree is a plain-data copy of a [Tree].
type ExportTree struct {
	Entry  string        `yaml:"entry" json:"entry"`
	Root   ExportNode    `yaml:"root" json:"root"`
	Errors []ExportError `yaml:"errors,omitempty" json:"errors,omitempty"`
}

// Export copies e and its descendants into an [ExportNode]. Only tokens
// carry text.
func Export(e Element) ExportNode {
	r := e.Range()
	out := ExportNode{Kind: e.Kind().String(), Start: r.Start, End: r.End}
	switch e := e.(type) {
	case *Token:
		out.Text = e.Text()
	case *Node:
		out.Children = make([]ExportNode, 0, e.Len())
		for c := range e.ChildrenWithTokens() {
			out.Children = append(out.Children, Export(c))
		}
	}
	return out
}

// Export copies the tree and its errors into an [ExportTree].
func (t *Tree) Export() ExportTree {
	out := ExportTree{
		Entry: t.entry.String(),
		Root:  Export(t.Root()),
	}
	for _, err := range t.errors {
		out.Errors = append(out.Errors, ExportError{
			Message: err.Message,
			Start:   err.Range.Start,
			End:     err.Range.End,
		})
	}
	return out
}
