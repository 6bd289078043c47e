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

// Package parser implements an event-based, error-tolerant parser for the
// Athena proof language.
//
// Grammar productions do not build trees. They drive a [Parser], which
// records a flat log of [Event]s over the trivia-free view of a
// [token.Stream]. Because a completed node can later be wrapped in a new
// parent with [CompletedMarker.Precede], the true nesting of the tree is only
// known once the whole log has been written; [Resolve] then turns the log
// into a well-nested sequence of [Step]s, and [Intersperse] merges the
// trivia back in so that the resulting steps spell out the source text
// exactly.
//
// The parser never fails on malformed input. Problems are recorded as error
// events, and every input token ends up in exactly one node.
package parser
