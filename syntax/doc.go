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

// Package syntax builds lossless concrete syntax trees for Athena source
// text.
//
// A tree has two layers. The green layer ([GreenNode], [GreenToken]) is
// immutable, stores no positions and no parent pointers, and shares identical
// subtrees, both within one tree and, through a [NodeCache], across parses.
// The red layer ([Node], [Token]) is a cheap overlay created while
// navigating: it adds absolute byte offsets and parent links, and is not
// stored anywhere.
//
// Concatenating the text of every token of a tree in order always yields the
// text it was parsed from, no matter how many [SyntaxError]s the parse
// reported.
package syntax
