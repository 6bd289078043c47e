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
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/athena-lang/athena/internal/logging"
	"github.com/athena-lang/athena/parser"
	"github.com/athena-lang/athena/report"
	"github.com/athena-lang/athena/source"
	"github.com/athena-lang/athena/syntax"
)

func newWatchCommand(a *app) *cobra.Command {
	var entry string

	cmd := &cobra.Command{
		Use:   "watch FILE...",
		Short: "Check files again every time they change",
		Long: `Parse the given files, report their syntax errors, and do it again every
time one of them is written. Reparses share subtrees with the previous
tree of the same file, and the number of reused subtrees is logged.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.entry(entry)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			w := newWatcher(e, out, report.Renderer{Colorize: a.cfg.Colorize(out)}, logging.FromContext(cmd.Context()))

			fw, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}
			defer fw.Close()

			for _, path := range args {
				if err := w.reparse(path); err != nil {
					return err
				}
				if err := fw.Add(path); err != nil {
					return fmt.Errorf("watch %s: %w", path, err)
				}
			}

			ctx := cmd.Context()
			for {
				select {
				case <-ctx.Done():
					return nil
				case ev, ok := <-fw.Events:
					if !ok {
						return nil
					}
					switch {
					case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create):
						if err := w.reparse(ev.Name); err != nil {
							w.logger.Warn("reparse failed", logging.FieldPath, ev.Name, logging.FieldError, err)
						}
					case ev.Has(fsnotify.Rename), ev.Has(fsnotify.Remove):
						// Editors often save by replacing the file, which drops
						// the watch on it.
						if err := fw.Add(ev.Name); err != nil {
							w.logger.Debug("file is gone", logging.FieldPath, ev.Name)
						}
					}
				case err, ok := <-fw.Errors:
					if !ok {
						return nil
					}
					w.logger.Warn("watch error", logging.FieldError, err)
				}
			}
		},
	}

	cmd.Flags().StringVar(&entry, "entry", "", "entry point to parse files from")
	return cmd
}

// watcher holds the most recent tree of each watched file.
type watcher struct {
	entry  parser.EntryPoint
	out    io.Writer
	r      report.Renderer
	logger *log.Logger

	cache      *syntax.NodeCache
	cacheLimit int
	trees      map[string]*syntax.Tree
}

func newWatcher(entry parser.EntryPoint, out io.Writer, r report.Renderer, logger *log.Logger) *watcher {
	return &watcher{
		entry:  entry,
		out:    out,
		r:      r,
		logger: logger,
		trees:  make(map[string]*syntax.Tree),

		cache:      new(syntax.NodeCache),
		cacheLimit: syntax.DefaultCacheLimit,
	}
}

// reparse parses path again, reports its errors, and logs how much of the
// previous tree was reused.
func (w *watcher) reparse(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	text := string(data)
	if n := w.cache.Len(); n > w.cacheLimit {
		// Nothing is shared with the previous trees after this.
		w.logger.Debug("resetting node cache", logging.FieldCached, n)
		w.cache = new(syntax.NodeCache)
	}
	tree := syntax.Parse(w.entry, text, syntax.WithCache(w.cache))
	if prev, ok := w.trees[path]; ok {
		if prev.Text() == text {
			return nil
		}
		w.logger.Info("reparsed",
			logging.FieldPath, path,
			logging.FieldErrors, len(tree.Errors()),
			logging.FieldReused, syntax.Shared(prev.Green(), tree.Green()))
	} else {
		w.logger.Info("parsed", logging.FieldPath, path, logging.FieldErrors, len(tree.Errors()))
	}
	w.trees[path] = tree

	_, err = w.r.Render(source.NewFile(path, text), tree.Errors(), w.out)
	return err
}
