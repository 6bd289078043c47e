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
	"strings"
)

// Edit replaces a range of text.
type Edit struct {
	Range  Range
	Insert string
}

// Apply returns text with the edit applied.
//
// Returns an error if the edit's range does not lie within text.
func (e Edit) Apply(text string) (string, error) {
	if e.Range.Start < 0 || e.Range.Start > e.Range.End || e.Range.End > len(text) {
		return "", fmt.Errorf("edit range %v is out of bounds for text of length %d", e.Range, len(text))
	}

	var b strings.Builder
	b.Grow(len(text) - e.Range.Len() + len(e.Insert))
	b.WriteString(text[:e.Range.Start])
	b.WriteString(e.Insert)
	b.WriteString(text[e.Range.End:])
	return b.String(), nil
}

// Shared returns the number of subtrees of b that are also part of a, as the
// very same green node. Descendants of a shared subtree are not counted
// again. Trees built with one [NodeCache] share unchanged subtrees this way.
func Shared(a, b *GreenNode) int {
	seen := make(map[*GreenNode]struct{})
	var collect func(*GreenNode)
	collect = func(n *GreenNode) {
		seen[n] = struct{}{}
		for _, c := range n.children {
			if c, ok := c.elem.(*GreenNode); ok {
				collect(c)
			}
		}
	}
	collect(a)

	var count func(*GreenNode) int
	count = func(n *GreenNode) int {
		if _, ok := seen[n]; ok {
			return 1
		}
		var total int
		for _, c := range n.children {
			if c, ok := c.elem.(*GreenNode); ok {
				total += count(c)
			}
		}
		return total
	}
	return count(b)
}
