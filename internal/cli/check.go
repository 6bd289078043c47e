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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/athena-lang/athena/internal/logging"
	"github.com/athena-lang/athena/parser"
	"github.com/athena-lang/athena/report"
	"github.com/athena-lang/athena/source"
	"github.com/athena-lang/athena/syntax"
)

func newCheckCommand(a *app) *cobra.Command {
	var entry string
	var jobs int
	var compact bool

	cmd := &cobra.Command{
		Use:   "check [PATTERN...]",
		Short: "Report the syntax errors of many files",
		Long: `Parse every file matching the given glob patterns and report their syntax
errors. Without patterns, the include globs of the configuration are used.

Examples:
  athena check                         # Check **/*.ath
  athena check 'proofs/**/*.ath'       # Check a directory tree
  athena check --compact --jobs 4 a.ath b.ath`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.FromContext(cmd.Context())
			start := time.Now()

			e, err := a.entry(entry)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("jobs") {
				jobs = a.cfg.Jobs
			}
			if jobs <= 0 {
				jobs = runtime.GOMAXPROCS(0)
			}

			patterns := args
			if len(patterns) == 0 {
				patterns = a.cfg.Include
			}
			paths, err := expandGlobs(patterns)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no files match %q", patterns)
			}
			logger.Debug("checking files", logging.FieldFiles, len(paths), logging.FieldJobs, jobs)

			results, err := checkFiles(cmd.Context(), e, paths, jobs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			r := report.Renderer{Compact: compact, Colorize: a.cfg.Colorize(out)}
			total, err := renderResults(out, r, results)
			if err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			logger.Info("checked",
				logging.FieldFiles, len(paths),
				logging.FieldErrors, total,
				logging.FieldElapsed, time.Since(start).Round(time.Millisecond))
			if total > 0 {
				return ErrSyntaxErrors
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&entry, "entry", "", "entry point to parse files from")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "number of files to parse concurrently (default: from config)")
	cmd.Flags().BoolVar(&compact, "compact", false, "print one line per error")
	return cmd
}

// checked is a file that has been parsed by `athena check`.
type checked struct {
	file *source.File
	tree *syntax.Tree
}

// expandGlobs returns the sorted, deduplicated files matching patterns.
func expandGlobs(patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		paths = append(paths, matches...)
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}

// checkFiles parses paths with at most jobs files in flight. Results are in
// the same order as paths.
func checkFiles(ctx context.Context, entry parser.EntryPoint, paths []string, jobs int) ([]checked, error) {
	results := make([]checked, len(paths))
	cache := new(syntax.NodeCache)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)
	for i, path := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			text := string(data)
			results[i] = checked{
				file: source.NewFile(path, text),
				tree: syntax.Parse(entry, text, syntax.WithCache(cache)),
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// renderResults renders the errors of every result, followed by one summary
// for all of them. Returns the total number of errors.
func renderResults(out io.Writer, r report.Renderer, results []checked) (int, error) {
	var total int
	var errs []error
	for _, res := range results {
		for _, e := range res.tree.Errors() {
			total++
			_, err := fmt.Fprintln(out, r.Diagnostic(res.file, e))
			errs = append(errs, err)
			if !r.Compact {
				_, err = fmt.Fprintln(out)
				errs = append(errs, err)
			}
		}
	}
	if total > 0 && !r.Compact {
		_, err := fmt.Fprintln(out, r.Summary(total))
		errs = append(errs, err)
	}
	return total, errors.Join(errs...)
}
