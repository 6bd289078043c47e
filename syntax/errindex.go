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
	"iter"

	"github.com/tidwall/btree"
)

// ErrorIndex looks up the errors of a tree by position.
//
// Errors are not attached to nodes, so any node can be asked for the errors
// within its range without the tree having to record them.
type ErrorIndex struct {
	// Keyed by the start offset of each error.
	tree btree.Map[int, []SyntaxError]
	len  int
}

// NewErrorIndex builds an index over errs.
func NewErrorIndex(errs []SyntaxError) *ErrorIndex {
	idx := new(ErrorIndex)
	for _, err := range errs {
		at, _ := idx.tree.Get(err.Offset())
		idx.tree.Set(err.Offset(), append(at, err))
		idx.len++
	}
	return idx
}

// Len returns the number of indexed errors.
func (idx *ErrorIndex) Len() int {
	return idx.len
}

// At returns the errors reported exactly at offset.
func (idx *ErrorIndex) At(offset int) []SyntaxError {
	errs, _ := idx.tree.Get(offset)
	return errs
}

// In returns an iterator over the errors whose offset lies within r, in
// order of offset. Unlike [Range.Contains], both ends of r are included, so
// that an error reported at the very end of a node is found for it.
func (idx *ErrorIndex) In(r Range) iter.Seq[SyntaxError] {
	return func(yield func(SyntaxError) bool) {
		it := idx.tree.Iter()
		for more := it.Seek(r.Start); more && it.Key() <= r.End; more = it.Next() {
			for _, err := range it.Value() {
				if !yield(err) {
					return
				}
			}
		}
	}
}

// For returns an iterator over the errors within the range of e.
func (idx *ErrorIndex) For(e Element) iter.Seq[SyntaxError] {
	return idx.In(e.Range())
}
