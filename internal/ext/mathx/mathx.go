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

// Package mathx contains extensions to Go's package math.
package mathx

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Narrow converts n to the integer type T, panicking if n does not fit.
//
// Trees and token streams store offsets and widths as 32-bit values; Narrow
// is used wherever an int crosses into that representation.
func Narrow[T constraints.Integer](n int) T {
	m := T(n)
	if int(m) != n || (n < 0) != (m < 0) {
		panic(fmt.Sprintf("athena/mathx: %d overflows %T", n, m))
	}
	return m
}

// Clamp returns n clamped to the interval [lo, hi].
func Clamp[T constraints.Integer](n, lo, hi T) T {
	return max(lo, min(n, hi))
}
