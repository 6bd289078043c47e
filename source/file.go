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
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"
)

// File is a source file, with the book-keeping needed to turn byte offsets
// into line and column locations.
//
// Files are immutable once created. A nil *File behaves like an empty file
// with the path "".
type File struct {
	path, text string

	once sync.Once
	// A prefix sum of the line lengths of text. Given a byte offset, it is
	// possible to recover which line that offset is on by performing a binary
	// search on this list.
	//
	// Alternatively, this slice can be interpreted as the index after each \n
	// in the original file.
	lineIndex []int
}

// Location is a user-displayable location within a source file.
type Location struct {
	// The byte offset of this location.
	Offset int

	// The line and column of this location, 1-indexed. The units of Column
	// depend on the [Unit] used to compute it.
	Line, Column int
}

// String implements [fmt.Stringer].
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// NewFile constructs a new source file.
func NewFile(path, text string) *File {
	return &File{path: path, text: text}
}

// Path returns this file's path.
//
// It doesn't need to be a real path; it is only used for display.
func (f *File) Path() string {
	if f == nil {
		return ""
	}
	return f.path
}

// Text returns this file's textual contents.
func (f *File) Text() string {
	if f == nil {
		return ""
	}
	return f.text
}

// Lines returns the number of lines in this file. A file always has at least
// one line, and text after the last newline counts as a line even if it is
// empty.
func (f *File) Lines() int {
	return max(1, len(f.lines()))
}

// LineByOffset returns the 1-indexed number of the line containing the byte
// at offset.
//
// This operation is O(log n).
func (f *File) LineByOffset(offset int) int {
	lines := f.lines()
	if len(lines) == 0 {
		return 1
	}

	// Find the largest index such that lines[line] <= offset.
	line, exact := slices.BinarySearch(lines, offset)
	if !exact {
		line--
	}
	return line + 1
}

// Line returns the given 1-indexed line, including its trailing newline.
func (f *File) Line(line int) string {
	start, end := f.LineOffsets(line)
	return f.Text()[start:end]
}

// LineOffsets returns the byte offsets of the given 1-indexed line,
// including its trailing newline.
//
// Panics if line is out of range.
func (f *File) LineOffsets(line int) (start, end int) {
	if line < 1 || line > f.Lines() {
		panic(fmt.Sprintf("athena/source: line %d out of range for file with %d lines", line, f.Lines()))
	}

	lines := f.lines()
	if len(lines) == 0 {
		return 0, 0
	}
	if line == len(lines) {
		return lines[line-1], len(f.Text())
	}
	return lines[line-1], lines[line]
}

// Location builds full location information for the given byte offset, with
// the column measured in units.
//
// Panics if offset is out of bounds.
//
// This operation is O(log n) plus the length of the line.
func (f *File) Location(offset int, units Unit) Location {
	if offset < 0 || offset > len(f.Text()) {
		panic(fmt.Sprintf("athena/source: offset %d out of bounds for file of length %d", offset, len(f.Text())))
	}

	line := f.LineByOffset(offset)
	start, _ := f.LineOffsets(line)
	chunk := f.Text()[start:offset]

	var column int
	switch units {
	case Bytes:
		column = len(chunk)
	case Runes:
		column = utf8.RuneCountInString(chunk)
	case UTF16:
		for _, r := range chunk {
			column += utf16.RuneLen(r)
		}
	case TermWidth:
		column = Width(0, chunk)
	default:
		panic(fmt.Sprintf("athena/source: unknown unit %v", units))
	}

	return Location{Offset: offset, Line: line, Column: column + 1}
}

func (f *File) lines() []int {
	if f == nil {
		return nil
	}

	// Compute the prefix sum on-demand.
	f.once.Do(func() {
		var next int

		// We add 1 to the return value of IndexByte because we want to work
		// with the index immediately *after* the newline byte.
		text := f.text
		for {
			newline := strings.IndexByte(text, '\n') + 1
			if newline == 0 {
				break
			}

			text = text[newline:]

			f.lineIndex = append(f.lineIndex, next)
			next += newline
		}

		f.lineIndex = append(f.lineIndex, next)
	})
	return f.lineIndex
}
