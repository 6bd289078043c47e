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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/athena-lang/athena/internal/logging"
	"github.com/athena-lang/athena/parser"
	"github.com/athena-lang/athena/syntax"
)

const historyFile = ".athena_history"

const replHelp = `Type a line of Athena to see its syntax tree.

  :entry NAME   parse from another entry point
  :help         show this message
  :quit         leave the REPL
`

func newReplCommand(a *app) *cobra.Command {
	var entry string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse lines interactively",
		Long:  "Read lines from the terminal and print the syntax tree of each one.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if entry == "" {
				entry = parser.Stmt.String()
			}
			e, err := lookupEntry(entry)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			r := &repl{entry: e, out: out, styles: newTreeStyles(out, a.cfg.Colorize(out))}
			return r.run(logging.FromContext(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&entry, "entry", "", "entry point to start in (default: stmt)")
	return cmd
}

type repl struct {
	entry  parser.EntryPoint
	out    io.Writer
	styles treeStyles
	cache  syntax.NodeCache
}

func (r *repl) run(logger *log.Logger) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	history := ""
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, historyFile)
	}
	// History is best-effort.
	if f, err := os.Open(history); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(history); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprint(r.out, replHelp)
	for {
		line, err := ln.Prompt(r.entry.String() + "> ")
		switch {
		case errors.Is(err, io.EOF):
			fmt.Fprintln(r.out)
			return nil
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case err != nil:
			return fmt.Errorf("read line: %w", err)
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		quit, err := r.eval(line)
		if err != nil {
			fmt.Fprintln(r.out, err)
		}
		if quit {
			logger.Debug("leaving repl")
			return nil
		}
	}
}

// eval handles a single line of input. Returns whether the REPL should exit.
func (r *repl) eval(line string) (bool, error) {
	if cmd, ok := strings.CutPrefix(strings.TrimSpace(line), ":"); ok {
		fields := strings.Fields(cmd)
		switch {
		case len(fields) == 1 && (fields[0] == "quit" || fields[0] == "q"):
			return true, nil
		case len(fields) == 1 && fields[0] == "help":
			_, err := fmt.Fprint(r.out, replHelp)
			return false, err
		case len(fields) == 2 && fields[0] == "entry":
			e, err := lookupEntry(fields[1])
			if err != nil {
				return false, err
			}
			r.entry = e
			return false, nil
		default:
			return false, fmt.Errorf("unknown command %q; try :help", line)
		}
	}

	tree := syntax.Parse(r.entry, line, syntax.WithCache(&r.cache))
	return false, writeTree(r.out, tree, r.styles)
}
