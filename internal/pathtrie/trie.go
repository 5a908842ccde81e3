/*
   Copyright 2026 The effect-orpc Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package pathtrie

import (
	"errors"
	"strings"
)

// Trie is a segment-aware index for dot-separated procedure paths.
// Each node represents one segment; the wildcard "*" matches exactly one
// segment. Lookup is exact; Match performs longest-prefix-match with
// segment boundaries, so a deeper rule wins over a shorter one.
type Trie[T any] struct {
	// children contains next segments, including "*" for a single-segment wildcard.
	children map[string]*Trie[T]
	// hasVal marks that this node carries a value for the path ending here.
	hasVal bool
	val    T
	// pattern is the canonical dotted path (with '*' if wildcard was used)
	// for this node, set only when hasVal=true, so lookups never build strings.
	pattern string
}

// ErrInvalidPath is returned when inserting a path that is empty, has empty
// segments, contains invalid characters, or consists only of wildcards.
var ErrInvalidPath = errors.New("pathtrie: invalid path")

// New creates an empty trie ready for inserts.
func New[T any]() *Trie[T] {
	return &Trie[T]{children: make(map[string]*Trie[T])}
}

// Insert adds a dot-separated path to the trie and associates it with val.
//
// Examples:
//
//	"users.getById"
//	"planet.ring.launch"
//	"users.*.permissions"
//
// The wildcard "*" matches exactly one segment. A path made only of "*"
// segments is rejected, because it would catch everything.
// Returns ErrInvalidPath on malformed input.
func (t *Trie[T]) Insert(path string, val T) error {
	if t == nil {
		return ErrInvalidPath
	}
	segs, ok := splitAndValidate(path, true /* allowWildcard */)
	if !ok || len(segs) == 0 {
		return ErrInvalidPath
	}

	allWild := true
	for _, s := range segs {
		if s != "*" {
			allWild = false
			break
		}
	}
	if allWild {
		return ErrInvalidPath
	}

	cur := t
	for _, s := range segs {
		child, exists := cur.children[s]
		if !exists {
			child = New[T]()
			cur.children[s] = child
		}
		cur = child
	}
	cur.hasVal = true
	cur.val = val
	if cur.pattern == "" {
		cur.pattern = path
	}
	return nil
}

// Lookup finds the value stored for exactly this path, following wildcard
// branches when no exact segment exists. It does not consider shorter
// prefixes: "users.getById" never answers for "users.getById.extra".
func (t *Trie[T]) Lookup(path string) (T, bool) {
	var zero T
	if t == nil {
		return zero, false
	}
	segs, ok := splitAndValidate(path, false)
	if !ok {
		return zero, false
	}
	return lookup(t, segs)
}

func lookup[T any](n *Trie[T], segs []string) (T, bool) {
	var zero T
	if len(segs) == 0 {
		if n.hasVal {
			return n.val, true
		}
		return zero, false
	}
	if next, ok := n.children[segs[0]]; ok {
		if v, found := lookup(next, segs[1:]); found {
			return v, true
		}
	}
	if next, ok := n.children["*"]; ok {
		if v, found := lookup(next, segs[1:]); found {
			return v, true
		}
	}
	return zero, false
}

// Match finds the best (deepest) prefix match for a full path and returns
// the value plus the stored rule pattern. Both exact segment matches and
// "*" wildcard branches are explored. At equal depth an exact branch wins.
// If the path is invalid or nothing matches, ok is false.
func (t *Trie[T]) Match(path string) (val T, pattern string, ok bool) {
	var zero T
	if t == nil {
		return zero, "", false
	}
	bestDepth := -1
	var bestVal T
	var bestPat string

	// dfs scans the next segment starting at byte offset 'off', with 'depth'
	// segments already consumed.
	var dfs func(n *Trie[T], off, depth int)
	dfs = func(n *Trie[T], off, depth int) {
		if n.hasVal && depth > bestDepth {
			bestDepth = depth
			bestVal = n.val
			bestPat = n.pattern
		}
		if off >= len(path) {
			return
		}

		// parse next segment [off:next), validating [a-zA-Z_][a-zA-Z0-9_]*
		i := off
		if !segStart(path[i]) {
			return
		}
		i++
		for i < len(path) {
			c := path[i]
			if c == '.' {
				break
			}
			if !segChar(c) {
				return
			}
			i++
		}
		seg := path[off:i] // substring; no heap alloc
		nextOff := i
		if nextOff < len(path) && path[nextOff] == '.' {
			nextOff++
		}

		// exact branch first so it wins ties at equal depth
		if next, found := n.children[seg]; found {
			dfs(next, nextOff, depth+1)
		}
		if next, found := n.children["*"]; found {
			dfs(next, nextOff, depth+1)
		}
	}

	dfs(t, 0, 0)
	if bestDepth < 0 {
		return zero, "", false
	}
	return bestVal, bestPat, true
}

// Walk visits every stored value in unspecified order.
func (t *Trie[T]) Walk(visit func(pattern string, val T)) {
	if t == nil {
		return
	}
	if t.hasVal {
		visit(t.pattern, t.val)
	}
	for _, child := range t.children {
		child.Walk(visit)
	}
}

func splitAndValidate(s string, allowWildcard bool) ([]string, bool) {
	if s == "" {
		return []string{}, true
	}
	segs := strings.Split(s, ".")
	for _, seg := range segs {
		if !validSegment(seg, allowWildcard) {
			return nil, false
		}
	}
	return segs, true
}

// validSegment reports whether seg is a valid path segment.
// Rules:
//   - empty segments are invalid;
//   - when allowWildcard=true, the segment "*" is allowed;
//   - otherwise the segment must match: [a-zA-Z_][a-zA-Z0-9_]*
func validSegment(seg string, allowWildcard bool) bool {
	if seg == "" {
		return false
	}
	if allowWildcard && seg == "*" {
		return true
	}
	if !segStart(seg[0]) {
		return false
	}
	for i := 1; i < len(seg); i++ {
		if !segChar(seg[i]) {
			return false
		}
	}
	return true
}

func segStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func segChar(c byte) bool {
	return segStart(c) || (c >= '0' && c <= '9')
}
