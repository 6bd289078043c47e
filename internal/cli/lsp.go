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
	"github.com/spf13/cobra"

	"github.com/athena-lang/athena/internal/logging"
	"github.com/athena-lang/athena/internal/lsp"
)

func newLSPCommand(a *app) *cobra.Command {
	var entry string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run a language server over standard input and output",
		Long: `Run a language server that publishes the syntax errors of every open
document. The server speaks the Language Server Protocol over standard
input and output; logs go to standard error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.entry(entry)
			if err != nil {
				return err
			}

			logger := logging.FromContext(cmd.Context())
			logger.Info("starting language server", logging.FieldEntry, e, logging.FieldVersion, a.info.Version)
			return lsp.New(e, a.info.Version, logger).RunStdio()
		},
	}

	cmd.Flags().StringVar(&entry, "entry", "", "entry point to parse documents from")
	return cmd
}
