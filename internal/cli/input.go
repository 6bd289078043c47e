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
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"

	"github.com/athena-lang/athena/parser"
)

// lookupEntry resolves an entry point name, suggesting the closest valid name
// when there is no match.
func lookupEntry(name string) (parser.EntryPoint, error) {
	if entry, ok := parser.LookupEntryPoint(name); ok {
		return entry, nil
	}

	var names []string
	for _, e := range parser.EntryPoints() {
		names = append(names, e.String())
	}
	if s := suggest(name, names); s != "" {
		return 0, fmt.Errorf("unknown entry point %q; did you mean %q?", name, s)
	}
	return 0, fmt.Errorf("unknown entry point %q; valid entry points are %q", name, names)
}

// suggest returns the closest match for target among candidates, or the
// empty string if nothing is close.
func suggest(target string, candidates []string) string {
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	// Not a subsequence of anything; look for a near miss instead.
	best, bestDistance := "", 3
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(target, c); d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best
}

// readInput returns the text a command should operate on: expr if it is
// set, otherwise the file named by args, with "-" or no argument at all
// meaning standard input. The first return is a name for the input.
func readInput(cmd *cobra.Command, args []string, expr string) (string, string, error) {
	switch {
	case expr != "" && len(args) > 0:
		return "", "", errors.New("cannot use both -e and a file argument")
	case expr != "":
		return "<expr>", expr, nil
	case len(args) == 0 || args[0] == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	default:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("read input: %w", err)
		}
		return args[0], string(data), nil
	}
}
