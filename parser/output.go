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
	"iter"
	"slices"

	"github.com/athena-lang/athena/kind"
)

// StepKind is the kind of a [Step].
type StepKind uint8

const (
	StepEnter StepKind = iota + 1
	StepToken
	StepExit
	StepError
)

// String implements [fmt.Stringer].
func (k StepKind) String() string {
	switch k {
	case StepEnter:
		return "Enter"
	case StepToken:
		return "Token"
	case StepExit:
		return "Exit"
	case StepError:
		return "Error"
	default:
		return fmt.Sprintf("parser.StepKind(%d)", int(k))
	}
}

// Step is one instruction for building a tree, over trivia-free token
// indices.
type Step struct {
	Kind StepKind

	// The node kind for StepEnter, or the token kind for StepToken.
	Syntax kind.Kind

	// For StepError only.
	Message string
}

// String implements [fmt.Stringer].
func (s Step) String() string {
	switch s.Kind {
	case StepEnter, StepToken:
		return fmt.Sprintf("%v(%v)", s.Kind, s.Syntax)
	case StepError:
		return fmt.Sprintf("Error(%q)", s.Message)
	default:
		return s.Kind.String()
	}
}

// Output is a well-nested sequence of [Step]s produced by [Resolve].
type Output struct {
	steps []Step
}

// Len returns the number of steps.
func (o *Output) Len() int {
	return len(o.steps)
}

// Step returns the i-th step.
func (o *Output) Step(i int) Step {
	return o.steps[i]
}

// All returns an iterator over the steps.
func (o *Output) All() iter.Seq2[int, Step] {
	return slices.All(o.steps)
}

// Errors returns an iterator over the error messages among the steps, in
// order.
func (o *Output) Errors() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, s := range o.steps {
			if s.Kind == StepError && !yield(s.Message) {
				return
			}
		}
	}
}

// Resolve turns an event log into a well-nested step sequence.
//
// Tombstones produce nothing. A node with a forward parent is opened inside
// that parent: when the first node of a forward-parent chain is reached, the
// whole chain is entered at once, outermost node first. The later Start
// events of the chain are skipped when the walk reaches them.
//
// events is not modified.
func Resolve(events []Event) *Output {
	events = slices.Clone(events)
	out := &Output{steps: make([]Step, 0, len(events))}

	var chain []kind.Kind
	for i := range events {
		ev := events[i]
		events[i] = tombstone()

		switch ev.Kind {
		case EventStart:
			chain = append(chain, ev.Syntax)
			idx, fwd := i, ev.ForwardParent
			for fwd != 0 {
				idx += fwd
				parent := events[idx]
				if parent.Kind != EventStart {
					panic(fmt.Sprintf("athena/parser: forward parent of event %d is %v", i, parent))
				}
				events[idx] = tombstone()
				chain = append(chain, parent.Syntax)
				fwd = parent.ForwardParent
			}

			// The chain was collected innermost first.
			for _, k := range slices.Backward(chain) {
				if k != kind.Tombstone {
					out.steps = append(out.steps, Step{Kind: StepEnter, Syntax: k})
				}
			}
			chain = chain[:0]

		case EventToken:
			out.steps = append(out.steps, Step{Kind: StepToken, Syntax: ev.Syntax})
		case EventFinish:
			out.steps = append(out.steps, Step{Kind: StepExit})
		case EventError:
			out.steps = append(out.steps, Step{Kind: StepError, Message: ev.Message})
		}
	}

	return out
}
