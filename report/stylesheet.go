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

package report

// styleSheet is the colors used for pretty-rendering diagnostics.
type styleSheet struct {
	reset string
	// Errors are red. Accents, such as the gutter and the location arrow,
	// are blue.
	bError, nAccent, bAccent string
}

func newStyleSheet(r Renderer) styleSheet {
	if !r.Colorize {
		return styleSheet{}
	}

	return styleSheet{
		reset:   "\033[0m",
		bError:  "\033[1;31m",
		nAccent: "\033[0;34m",
		bAccent: "\033[1;34m",
	}
}
