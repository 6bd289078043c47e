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

import (
	"strings"

	"github.com/rivo/uniseg"
)

// TabstopWidth is the size tabstops are rendered as.
const TabstopWidth int = 4

// Width returns the column that text ends at when printed to a terminal
// starting at column, accounting for tabstops and wide graphemes. Columns
// are 0-indexed.
func Width(column int, text string) int {
	for text != "" {
		next := text
		tab := strings.IndexByte(text, '\t')
		if tab != -1 {
			next, text = text[:tab], text[tab+1:]
		} else {
			text = ""
		}

		column += uniseg.StringWidth(next)
		if tab != -1 {
			column += TabstopWidth - column%TabstopWidth
		}
	}
	return column
}
