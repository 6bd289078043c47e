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

package parser

import (
	"fmt"

	"github.com/athena-lang/athena/kind"
)

// EventKind is the kind of an [Event].
type EventKind uint8

const (
	// EventStart opens a node. An EventStart whose Syntax is
	// [kind.Tombstone] is a placeholder that has not been completed, or that
	// was abandoned.
	EventStart EventKind = iota + 1
	// EventToken consumes the next trivia-free token.
	EventToken
	// EventFinish closes the most recently opened node.
	EventFinish
	// EventError records a diagnostic at the current position.
	EventError
)

// String implements [fmt.Stringer].
func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "Start"
	case EventToken:
		return "Token"
	case EventFinish:
		return "Finish"
	case EventError:
		return "Error"
	default:
		return fmt.Sprintf("parser.EventKind(%d)", int(k))
	}
}

// Event is a single entry in the log a [Parser] produces.
type Event struct {
	Kind EventKind

	// The node kind for EventStart, or the token kind for EventToken.
	Syntax kind.Kind

	// For EventStart only: if nonzero, the distance from this event to a
	// later EventStart that is this node's parent. The parent is opened
	// before this node, even though it appears after it in the log.
	ForwardParent int

	// For EventError only.
	Message string
}

// String implements [fmt.Stringer].
func (e Event) String() string {
	switch e.Kind {
	case EventStart:
		if e.ForwardParent != 0 {
			return fmt.Sprintf("Start(%v, +%d)", e.Syntax, e.ForwardParent)
		}
		return fmt.Sprintf("Start(%v)", e.Syntax)
	case EventToken:
		return fmt.Sprintf("Token(%v)", e.Syntax)
	case EventError:
		return fmt.Sprintf("Error(%q)", e.Message)
	default:
		return e.Kind.String()
	}
}

func tombstone() Event {
	return Event{Kind: EventStart, Syntax: kind.Tombstone}
}
