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

// Marker is a handle to an open node placeholder in a [Parser]'s event log.
type Marker struct {
	pos int
}

// Complete assigns the placeholder's kind and closes the node.
//
// Panics if the marker was already completed or abandoned, or if k is not a
// node kind.
func (m Marker) Complete(p *Parser, k kind.Kind) CompletedMarker {
	if !k.IsNode() {
		panic(fmt.Sprintf("athena/parser: completed marker with non-node kind %v", k))
	}
	ev := m.event(p)
	if ev.Syntax != kind.Tombstone {
		panic(fmt.Sprintf("athena/parser: marker at %d completed twice", m.pos))
	}

	ev.Syntax = k
	p.push(Event{Kind: EventFinish})
	p.open--
	return CompletedMarker{pos: m.pos, kind: k}
}

// Abandon discards the placeholder.
//
// If nothing was recorded after the placeholder it is removed from the log
// entirely; otherwise it stays behind as a tombstone, and its contents
// become part of the enclosing node.
//
// Panics if the marker was already completed or abandoned.
func (m Marker) Abandon(p *Parser) {
	ev := m.event(p)
	if ev.Syntax != kind.Tombstone {
		panic(fmt.Sprintf("athena/parser: abandoned marker at %d after completing it", m.pos))
	}

	if m.pos == len(p.events)-1 && ev.ForwardParent == 0 {
		p.events = p.events[:m.pos]
	} else {
		p.close(m.pos)
	}
	p.open--
}

// event returns the Start event of this marker.
//
// The returned pointer is only valid until the next event is pushed.
func (m Marker) event(p *Parser) *Event {
	if m.pos >= len(p.events) || p.events[m.pos].Kind != EventStart {
		panic(fmt.Sprintf("athena/parser: marker at %d does not refer to an open node", m.pos))
	}
	if p.closed(m.pos) {
		panic(fmt.Sprintf("athena/parser: marker at %d used after it was abandoned", m.pos))
	}
	return &p.events[m.pos]
}

// CompletedMarker is a handle to a node that has been completed.
type CompletedMarker struct {
	pos  int
	kind kind.Kind
}

// Kind returns the kind the node was completed with.
func (m CompletedMarker) Kind() kind.Kind {
	return m.kind
}

// Precede opens a new placeholder that, once completed, becomes the parent
// of this node.
//
// This is how left operands end up inside a binary node: the operand is
// parsed and completed first, and wrapped only once the operator is seen.
//
// Panics if this node already has a parent assigned this way.
func (m CompletedMarker) Precede(p *Parser) Marker {
	if p.events[m.pos].ForwardParent != 0 {
		panic(fmt.Sprintf("athena/parser: node at %d preceded twice", m.pos))
	}

	// Start may grow the log, so the event is written through its index.
	parent := p.Start()
	p.events[m.pos].ForwardParent = parent.pos - m.pos
	return parent
}

// ExtendTo moves the start of this node back to where start was opened, so
// that everything recorded after start becomes part of this node. start
// must have been opened before this node and is consumed by the call.
func (m CompletedMarker) ExtendTo(p *Parser, start Marker) CompletedMarker {
	if start.pos >= m.pos {
		panic(fmt.Sprintf("athena/parser: ExtendTo() called with later marker %d > %d", start.pos, m.pos))
	}
	ev := start.event(p)
	if ev.Syntax != kind.Tombstone || ev.ForwardParent != 0 {
		panic(fmt.Sprintf("athena/parser: ExtendTo() called with marker %d that is not open", start.pos))
	}

	ev.ForwardParent = m.pos - start.pos
	p.close(start.pos)
	p.open--
	return m
}
