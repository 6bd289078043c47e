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

// Package cli provides the cobra command tree for the athena binary.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/athena-lang/athena/internal/config"
	"github.com/athena-lang/athena/internal/logging"
	"github.com/athena-lang/athena/parser"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// app is the state shared by every command: the flags of the root command
// and the configuration they resolve to.
type app struct {
	info BuildInfo

	debug      bool
	configPath string
	color      string

	cfg    config.Config
	logger *log.Logger
}

// NewRootCommand creates the root athena command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	a := &app{info: info, cfg: config.Default()}

	rootCmd := &cobra.Command{
		Use:   "athena",
		Short: "Parse and check Athena proof files",
		Long: `athena parses Athena proof files into lossless syntax trees.

Every command accepts malformed input: parsing never stops at the first
error, and the trees it builds reproduce the input byte for byte.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "",
		"path to config file (default: nearest "+config.FileName+")")
	rootCmd.PersistentFlags().StringVar(&a.color, "color", config.ColorAuto,
		"colorize output: auto, always, never")

	rootCmd.AddCommand(
		newParseCommand(a),
		newLexCommand(a),
		newCheckCommand(a),
		newWatchCommand(a),
		newReplCommand(a),
		newLSPCommand(a),
		newVersionCommand(a),
	)
	return rootCmd
}

// setup loads the configuration and applies the root flags on top of it.
func (a *app) setup(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		if path, err = config.Find(wd); err != nil {
			return err
		}
	}

	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	if cmd.Flags().Changed("color") {
		a.cfg.Color = a.color
	}
	if a.debug {
		a.cfg.LogLevel = "debug"
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	a.logger = logging.New(cmd.ErrOrStderr(), a.cfg.LogLevel)
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))
	if path != "" {
		a.logger.Debug("loaded configuration", logging.FieldPath, path)
	}
	return nil
}

// entry returns the entry point named by flag, or the configured one if
// flag is empty.
func (a *app) entry(flag string) (parser.EntryPoint, error) {
	if flag == "" {
		flag = a.cfg.Entry
	}
	return lookupEntry(flag)
}
