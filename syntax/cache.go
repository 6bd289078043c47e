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

package syntax

import (
	"sync"
	"sync/atomic"

	"github.com/athena-lang/athena/internal/intern"
	"github.com/athena-lang/athena/kind"
)

// maxCachedChildren is the largest number of children a node may have and
// still be deduplicated by a [NodeCache].
const maxCachedChildren = 3

// DefaultCacheLimit is a suggested bound on [NodeCache.Len] for caches kept
// across many parses.
const DefaultCacheLimit = 1 << 20

// NodeCache deduplicates green tokens and small green nodes.
//
// Sharing a cache between parses makes identical subtrees of the resulting
// trees the same pointers. A NodeCache may be used by multiple goroutines
// concurrently. The zero value is ready to use.
//
// Entries are never evicted: a long-lived cache grows with every distinct
// token and small node it sees. Owners that outlive many parses should check
// [NodeCache.Len] and start over with a fresh cache past some bound.
type NodeCache struct {
	text intern.Table

	mu     sync.Mutex
	tokens map[tokenKey]*GreenToken
	nodes  map[nodeKey]*GreenNode

	hits, misses atomic.Int64
}

type tokenKey struct {
	kind kind.Kind
	text intern.ID
}

type nodeKey struct {
	kind     kind.Kind
	n        int
	children [maxCachedChildren]GreenElement
}

// CacheStats is a snapshot of a [NodeCache]'s counters.
type CacheStats struct {
	Tokens, Nodes int
	Hits, Misses  int64
}

// Stats returns a snapshot of this cache's counters.
func (c *NodeCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Tokens: len(c.tokens),
		Nodes:  len(c.nodes),
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}

// Len returns the number of tokens and nodes held by this cache.
func (c *NodeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tokens) + len(c.nodes)
}

// Token returns the canonical green token for the given kind and text.
func (c *NodeCache) Token(k kind.Kind, text string) *GreenToken {
	key := tokenKey{kind: k, text: c.text.Intern(text)}

	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.tokens[key]; ok {
		c.hits.Add(1)
		return t
	}

	c.misses.Add(1)
	// Use the interned copy of the text, so that the token does not keep the
	// whole source alive.
	t := NewGreenToken(k, c.text.Value(key.text))
	if c.tokens == nil {
		c.tokens = make(map[tokenKey]*GreenToken)
	}
	c.tokens[key] = t
	return t
}

// Node returns a green node with the given kind and children, reusing an
// existing one if it has few enough children.
//
// children is not retained.
func (c *NodeCache) Node(k kind.Kind, children []GreenElement) *GreenNode {
	if len(children) > maxCachedChildren {
		return NewGreenNode(k, children)
	}

	key := nodeKey{kind: k, n: len(children)}
	copy(key.children[:], children)

	c.mu.Lock()
	defer c.mu.Unlock()
	if n, ok := c.nodes[key]; ok {
		c.hits.Add(1)
		return n
	}

	c.misses.Add(1)
	n := NewGreenNode(k, children)
	if c.nodes == nil {
		c.nodes = make(map[nodeKey]*GreenNode)
	}
	c.nodes[key] = n
	return n
}
