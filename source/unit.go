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

package source

import "fmt"

// Unit is a unit of measurement for columns.
type Unit int

const (
	// Bytes counts columns in UTF-8 bytes.
	Bytes Unit = iota
	// Runes counts columns in Unicode code points.
	Runes
	// UTF16 counts columns in UTF-16 code units, as the Language Server
	// Protocol does.
	UTF16
	// TermWidth counts columns in terminal cells, with tabstops expanded to
	// multiples of [TabstopWidth].
	TermWidth
)

// String implements [fmt.Stringer].
func (u Unit) String() string {
	switch u {
	case Bytes:
		return "bytes"
	case Runes:
		return "runes"
	case UTF16:
		return "utf16"
	case TermWidth:
		return "width"
	default:
		return fmt.Sprintf("source.Unit(%d)", int(u))
	}
}
