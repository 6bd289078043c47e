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

// Package report renders syntax errors as annotated source snippets.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/athena-lang/athena/internal/ext/mathx"
	"github.com/athena-lang/athena/source"
	"github.com/athena-lang/athena/syntax"
)

// Renderer configures a diagnostic rendering operation.
type Renderer struct {
	// If set, uses a compact one-line format for each diagnostic.
	Compact bool

	// If set, rendering results are enriched with ANSI color escapes.
	Colorize bool
}

// Render renders every error in errs, which must have been found in file,
// followed by a summary line.
//
// Returns the number of errors rendered; the error return is an error when
// writing to out.
func (r Renderer) Render(file *source.File, errs []syntax.SyntaxError, out io.Writer) (int, error) {
	for _, e := range errs {
		if _, err := fmt.Fprintln(out, r.Diagnostic(file, e)); err != nil {
			return 0, err
		}
		if !r.Compact {
			if _, err := fmt.Fprintln(out); err != nil {
				return 0, err
			}
		}
	}
	if r.Compact || len(errs) == 0 {
		return len(errs), nil
	}

	_, err := fmt.Fprintln(out, r.Summary(len(errs)))
	return len(errs), err
}

// Summary returns the line that follows a batch of count rendered errors.
func (r Renderer) Summary(count int) string {
	c := newStyleSheet(r)
	what := "1 error"
	if count != 1 {
		what = fmt.Sprint(count, " errors")
	}
	return c.bError + "encountered " + what + c.reset
}

// Diagnostic renders a single error, without a trailing newline.
//
//	error: expected a phrase
//	 --> test.ath:1:12
//	  |
//	1 | define x := $
//	  |            ^
func (r Renderer) Diagnostic(file *source.File, e syntax.SyntaxError) string {
	c := newStyleSheet(r)
	loc := file.Location(e.Range.Start, source.Runes)

	if r.Compact {
		return fmt.Sprintf("%s%s:%v: %serror:%s %s", c.bAccent, file.Path(), loc, c.bError, c.reset, e.Message)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%serror:%s %s\n", c.bError, c.reset, e.Message)

	number := strconv.Itoa(loc.Line)
	margin := strings.Repeat(" ", len(number))
	fmt.Fprintf(&b, "%s%s--> %s%s:%v\n", margin, c.nAccent, c.reset, file.Path(), loc)
	fmt.Fprintf(&b, "%s %s|%s\n", margin, c.nAccent, c.reset)

	start, end := file.LineOffsets(loc.Line)
	line := strings.TrimRight(file.Text()[start:end], "\r\n")
	fmt.Fprintf(&b, "%s%s |%s %s\n", c.nAccent, number, c.reset, expandTabs(line))

	// Carets cover the part of the error's range that is on this line, and
	// are at least one column wide.
	from := mathx.Clamp(e.Range.Start-start, 0, len(line))
	to := mathx.Clamp(e.Range.End-start, from, len(line))
	col := source.Width(0, line[:from])
	width := 1
	if to > from {
		width = max(1, source.Width(col, line[from:to])-col)
	}
	fmt.Fprintf(&b, "%s %s|%s %s%s%s",
		margin, c.nAccent, c.bError, strings.Repeat(" ", col), strings.Repeat("^", width), c.reset)

	return b.String()
}

// expandTabs replaces each tab in line with the spaces needed to reach the
// next tabstop, so that carets line up with what the terminal shows.
func expandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}

	var b strings.Builder
	var column int
	for i, chunk := range strings.Split(line, "\t") {
		if i > 0 {
			next := source.Width(column, "\t")
			b.WriteString(strings.Repeat(" ", next-column))
			column = next
		}
		b.WriteString(chunk)
		column = source.Width(column, chunk)
	}
	return b.String()
}
