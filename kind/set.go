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

package kind

import (
	"fmt"
	"iter"
	"math/bits"
	"slices"
	"strings"
)

// Set is a set of [Kind] values, implicitly ordered by the kinds' intrinsic
// order. Parsers use sets of token kinds for lookahead and error recovery.
//
// A zero Set is empty and ready to use. Sets are values; the methods that
// add elements return a new set.
type Set struct {
	bits [(total + 63) / 64]uint64
}

// NewSet returns a new [Set] with the given values set.
//
// Panics if any value is not one of the constants in this package.
func NewSet(kinds ...Kind) Set {
	return Set{}.With(kinds...)
}

// Len returns the number of values in the set.
func (s Set) Len() int {
	var n int
	for _, v := range s.bits {
		n += bits.OnesCount64(v)
	}
	return n
}

// Has checks whether k is present in this set.
func (s Set) Has(k Kind) bool {
	if !k.IsValid() {
		return false
	}

	has := s.bits[int(k)/64] & (uint64(1) << (int(k) % 64))
	return has != 0
}

// With returns a new Set with the given values inserted.
//
// Panics if any value is not one of the constants in this package.
func (s Set) With(kinds ...Kind) Set {
	for _, k := range kinds {
		if !k.IsValid() {
			panic(fmt.Sprintf("athena/kind: inserted invalid kind %d", k))
		}

		s.bits[int(k)/64] |= uint64(1) << (int(k) % 64)
	}
	return s
}

// Union returns the union of s and other.
func (s Set) Union(other Set) Set {
	for i := range s.bits {
		s.bits[i] |= other.bits[i]
	}
	return s
}

// All returns an iterator over the elements in the set.
func (s Set) All() iter.Seq[Kind] {
	return func(yield func(Kind) bool) {
		for i, word := range s.bits {
			next := i * 64
			for word != 0 {
				if word&1 == 1 && !yield(Kind(next)) {
					return
				}

				word >>= 1
				next++
			}
		}
	}
}

// Join returns a comma-delimited string containing the descriptions of the
// elements of this set, using the given conjunction as the final separator,
// and taking care to include an Oxford comma only when necessary.
//
// For example, NewSet(RParen, Ident, EOF).Join("or") will produce the
// string "end of input, an identifier, or `)`".
//
// If the set is empty, returns the empty string.
func (s Set) Join(conj string) string {
	elems := slices.Collect(s.All())

	var out strings.Builder
	switch len(elems) {
	case 0:
	case 1:
		out.WriteString(elems[0].Describe())
	case 2:
		fmt.Fprintf(&out, "%s %s %s", elems[0].Describe(), conj, elems[1].Describe())
	default:
		for _, k := range elems[:len(elems)-1] {
			fmt.Fprintf(&out, "%s, ", k.Describe())
		}
		fmt.Fprintf(&out, "%s %s", conj, elems[len(elems)-1].Describe())
	}

	return out.String()
}

// String implements [fmt.Stringer].
func (s Set) String() string {
	var out strings.Builder
	out.WriteByte('{')
	for k := range s.All() {
		if out.Len() > 1 {
			out.WriteString(", ")
		}
		out.WriteString(k.String())
	}
	out.WriteByte('}')
	return out.String()
}
