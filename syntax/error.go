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

import "fmt"

// Range is a half-open range of byte offsets.
type Range struct {
	Start, End int
}

// Len returns the length of the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains returns whether offset lies within r. The end of the range is
// excluded.
func (r Range) Contains(offset int) bool {
	return r.Start <= offset && offset < r.End
}

// Covers returns whether other lies entirely within r.
func (r Range) Covers(other Range) bool {
	return r.Start <= other.Start && other.End <= r.End
}

// String implements [fmt.Stringer].
func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// SyntaxError is a diagnostic produced while scanning or parsing.
//
// Structural errors from the parser have an empty range at the offset they
// were reported at. Lexical errors span the offending token.
type SyntaxError struct {
	Message string
	Range   Range
}

// Offset returns the byte offset the error is reported at.
func (e SyntaxError) Offset() int {
	return e.Range.Start
}

// Error implements [error].
func (e SyntaxError) Error() string {
	return fmt.Sprintf("%d: %s", e.Range.Start, e.Message)
}
