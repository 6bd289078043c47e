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

import "errors"

// Exit codes for athena.
const (
	// ExitSuccess indicates that every input parsed without errors.
	ExitSuccess = 0

	// ExitSyntaxErrors indicates that some input had syntax errors.
	ExitSyntaxErrors = 1

	// ExitFailure indicates invalid usage, a bad configuration, or an I/O
	// failure.
	ExitFailure = 2
)

// ErrSyntaxErrors is returned by commands that found syntax errors they have
// already reported.
var ErrSyntaxErrors = errors.New("syntax errors found")

// ExitCode returns the process exit code for the error returned by a
// command.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrSyntaxErrors):
		return ExitSyntaxErrors
	default:
		return ExitFailure
	}
}
