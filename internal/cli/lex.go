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
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/athena-lang/athena/kind"
	"github.com/athena-lang/athena/token"
)

func newLexCommand(a *app) *cobra.Command {
	var expr string

	cmd := &cobra.Command{
		Use:   "lex [FILE]",
		Short: "Print the tokens of a file",
		Long: `Print every token of a file, trivia included, with its byte range and
any lexical error attached to it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, text, err := readInput(cmd, args, expr)
			if err != nil {
				return err
			}

			stream := token.Scan(text)
			st := newTreeStyles(cmd.OutOrStdout(), a.cfg.Colorize(cmd.OutOrStdout()))

			var b strings.Builder
			var bad bool
			for i, tok := range stream.All() {
				if tok.Kind == kind.EOF {
					break
				}
				start, end := stream.Range(i)
				fmt.Fprintf(&b, "%s%s %s",
					st.token.Render(tok.Kind.String()),
					st.span.Render(fmt.Sprintf("@%d..%d", start, end)),
					st.text.Render(fmt.Sprintf("%q", stream.Text(i))))
				if tok.Err != "" {
					bad = true
					fmt.Fprintf(&b, " %s %s", st.err.Render("error:"), tok.Err)
				}
				b.WriteByte('\n')
			}
			if _, err := fmt.Fprint(cmd.OutOrStdout(), b.String()); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			if bad {
				return ErrSyntaxErrors
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&expr, "expr", "e", "", "scan this text instead of a file")
	return cmd
}
