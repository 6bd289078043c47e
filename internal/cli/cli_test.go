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

package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athena-lang/athena/internal/logging"
	"github.com/athena-lang/athena/parser"
	"github.com/athena-lang/athena/report"
	"github.com/athena-lang/athena/syntax"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand(BuildInfo{Version: "1.0", Commit: "abc", Date: "today"})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--color", "never"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	names := []string{"file", "expr", "pat", "ded", "phrase", "dir", "stmt"}
	assert.Equal(t, "expr", suggest("exp", names))
	assert.Equal(t, "file", suggest("fil", names))
	assert.Equal(t, "dir", suggest("dirs", names))
	assert.Empty(t, suggest("zzzzz", names))

	_, err := lookupEntry("exp")
	assert.EqualError(t, err, `unknown entry point "exp"; did you mean "expr"?`)
}

func TestParseCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "parse", "--entry", "expr", "-e", "?x: Int")
	require.NoError(t, err)
	assert.Equal(t, syntax.Parse(parser.Expr, "?x: Int").Debug(), out)

	out, err = execute(t, "?x: ()", "parse", "--entry", "expr")
	require.ErrorIs(t, err, ErrSyntaxErrors)
	assert.Equal(t, ExitSyntaxErrors, ExitCode(err))
	assert.Contains(t, out, "error 5: Expected at least one sort in a compound sort\n")

	out, err = execute(t, "", "parse", "--entry", "expr", "--format", "yaml", "-e", "Nat")
	require.NoError(t, err)
	assert.Contains(t, out, "entry: expr\n")
	assert.Contains(t, out, "text: Nat\n")

	_, err = execute(t, "", "parse", "--entry", "exp", "-e", "Nat")
	assert.ErrorContains(t, err, `did you mean "expr"?`)
	assert.Equal(t, ExitFailure, ExitCode(err))

	_, err = execute(t, "", "parse", "--format", "json", "-e", "Nat")
	assert.ErrorContains(t, err, `unknown format "json"`)

	_, err = execute(t, "", "parse", "-e", "Nat", "file.ath")
	assert.Error(t, err)
}

func TestLexCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "lex", "-e", "x $")
	require.ErrorIs(t, err, ErrSyntaxErrors)
	assert.Equal(t, `IDENT@0..1 "x"
WHITESPACE@1..2 " "
ERROR@2..3 "$" error: unrecognized character
`, out)
}

func TestCheckCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "a.ath")
	bad := filepath.Join(dir, "sub", "b.ath")
	require.NoError(t, os.MkdirAll(filepath.Dir(bad), 0o755))
	require.NoError(t, os.WriteFile(good, []byte("define x := 1\n"), 0o600))
	require.NoError(t, os.WriteFile(bad, []byte("define y := $"), 0o600))

	out, err := execute(t, "", "check", "--compact", "--jobs", "2", filepath.Join(dir, "**", "*.ath"))
	require.ErrorIs(t, err, ErrSyntaxErrors)
	assert.Equal(t, fmt.Sprintf(`%[1]s:1:12: error: expected a phrase
%[1]s:1:12: error: expected a directive or phrase
%[1]s:1:13: error: unrecognized character
`, bad), out)

	out, err = execute(t, "", "check", good)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = execute(t, "", "check", bad)
	require.ErrorIs(t, err, ErrSyntaxErrors)
	assert.True(t, strings.HasSuffix(out, "\nencountered 3 errors\n"), "%q", out)

	_, err = execute(t, "", "check", filepath.Join(dir, "*.nope"))
	assert.ErrorContains(t, err, "no files match")
}

func TestConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "athena.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entry: expr\n"), 0o600))

	out, err := execute(t, "", "--config", path, "parse", "-e", "Nat")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "FRAGMENT@0..3\n"), "%q", out)

	require.NoError(t, os.WriteFile(path, []byte("entry: nope\n"), 0o600))
	_, err = execute(t, "", "--config", path, "parse", "-e", "Nat")
	assert.ErrorContains(t, err, `unknown entry point "nope"`)
}

func TestWatcher(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a.ath")
	require.NoError(t, os.WriteFile(path, []byte("define x := 1"), 0o600))

	var out, logs bytes.Buffer
	w := newWatcher(parser.SourceFile, &out, report.Renderer{Compact: true}, logging.New(&logs, "info"))
	require.NoError(t, w.reparse(path))
	assert.Empty(t, out.String())
	assert.Contains(t, logs.String(), "parsed")

	require.NoError(t, os.WriteFile(path, []byte("define x := 1\ndefine y := $"), 0o600))
	require.NoError(t, w.reparse(path))
	assert.Contains(t, out.String(), ":2:13: error: unrecognized character")
	assert.Contains(t, logs.String(), "reparsed")
	// The name and literal of x are shared with the first tree.
	assert.Contains(t, logs.String(), "reused=2")

	out.Reset()
	require.NoError(t, w.reparse(path))
	assert.Empty(t, out.String())

	assert.Error(t, w.reparse(filepath.Join(t.TempDir(), "missing.ath")))
}

func TestWatcherCacheLimit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a.ath")
	require.NoError(t, os.WriteFile(path, []byte("define x := 1"), 0o600))

	var logs bytes.Buffer
	w := newWatcher(parser.SourceFile, io.Discard, report.Renderer{Compact: true}, logging.New(&logs, "debug"))
	w.cacheLimit = 2
	require.NoError(t, w.reparse(path))
	first := w.cache

	require.NoError(t, os.WriteFile(path, []byte("define x := 2"), 0o600))
	require.NoError(t, w.reparse(path))
	assert.NotSame(t, first, w.cache)
	assert.Contains(t, logs.String(), "resetting node cache")
	assert.Contains(t, logs.String(), "reused=0")
}

func TestReplEval(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := &repl{entry: parser.Expr, out: &out, styles: newTreeStyles(&out, false)}

	quit, err := r.eval("?x: Int")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, syntax.Parse(parser.Expr, "?x: Int").Debug(), out.String())

	_, err = r.eval(":entry pat")
	require.NoError(t, err)
	assert.Equal(t, parser.Pat, r.entry)

	_, err = r.eval(":entry pattern")
	assert.ErrorContains(t, err, "unknown entry point")
	_, err = r.eval(":frobnicate")
	assert.ErrorContains(t, err, "unknown command")

	quit, err = r.eval(":quit")
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestWriteTreeColor(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	tree := syntax.Parse(parser.Expr, "Nat")
	require.NoError(t, writeTree(&out, tree, newTreeStyles(&out, true)))
	assert.Contains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "FRAGMENT")
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "athena")
	assert.Contains(t, out, "version=1.0")
	assert.Contains(t, out, "commit=abc")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitSyntaxErrors, ExitCode(fmt.Errorf("check: %w", ErrSyntaxErrors)))
	assert.Equal(t, ExitFailure, ExitCode(os.ErrNotExist))
}
