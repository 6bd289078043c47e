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

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/athena-lang/athena/internal/logging"
	"github.com/athena-lang/athena/syntax"
)

func newParseCommand(a *app) *cobra.Command {
	var entry, expr, format string

	cmd := &cobra.Command{
		Use:   "parse [FILE]",
		Short: "Print the syntax tree of a file",
		Long: `Print the syntax tree of a file, or of standard input if FILE is "-" or
missing.

Examples:
  athena parse proof.ath                 # Dump the tree of a file
  athena parse --entry expr -e '?x: Int' # Parse a single expression
  athena parse --format yaml proof.ath   # Export the tree as YAML`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.entry(entry)
			if err != nil {
				return err
			}
			name, text, err := readInput(cmd, args, expr)
			if err != nil {
				return err
			}

			tree := syntax.Parse(e, text)
			logging.FromContext(cmd.Context()).Debug("parsed",
				logging.FieldPath, name,
				logging.FieldEntry, e,
				logging.FieldErrors, len(tree.Errors()))

			out := cmd.OutOrStdout()
			switch format {
			case "tree":
				err = writeTree(out, tree, newTreeStyles(out, a.cfg.Colorize(out)))
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err = enc.Encode(tree.Export()); err == nil {
					err = enc.Close()
				}
			default:
				return fmt.Errorf("unknown format %q; expected tree or yaml", format)
			}
			if err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			if len(tree.Errors()) > 0 {
				return ErrSyntaxErrors
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&entry, "entry", "", "entry point: file, expr, pat, ded, phrase, dir or stmt")
	cmd.Flags().StringVarP(&expr, "expr", "e", "", "parse this text instead of a file")
	cmd.Flags().StringVar(&format, "format", "tree", "output format: tree or yaml")
	return cmd
}
