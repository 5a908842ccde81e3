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

package registry

import (
	"fmt"

	"github.com/utopyin/effect-orpc/apis"
	"github.com/utopyin/effect-orpc/code"
	"github.com/utopyin/effect-orpc/tagged"
)

// Template is a plain error template: the RPC layer's native description of
// one named error code. All fields are optional; zero values mean "use the
// protocol-standard default for the code". Immutable once stored in a
// registry.
type Template struct {
	// Status is the HTTP-like error status for the code, or 0 for the
	// protocol default.
	Status int

	// Message is the default human message for the code, or "" for the
	// protocol default.
	Message string

	// DataSchema optionally describes the error payload shape.
	DataSchema apis.Schema
}

// Entry is one effect-registry entry: either a plain Template or a reference
// to a tagged error Type. It is an explicit two-armed union — exactly one
// arm is set for a non-zero entry — so call sites can discriminate without
// reflection or dynamic interception.
type Entry struct {
	template *Template
	typ      *tagged.Type
}

// TemplateEntry wraps a plain template as a registry entry.
func TemplateEntry(t Template) Entry {
	return Entry{template: &t}
}

// TypeEntry wraps a tagged error type as a registry entry.
// A nil type produces a zero entry, which Project and Constructors skip.
func TypeEntry(t *tagged.Type) Entry {
	return Entry{typ: t}
}

// Template returns the template arm, if set.
func (e Entry) Template() (Template, bool) {
	if e.template == nil {
		return Template{}, false
	}
	return *e.template, true
}

// Type returns the tagged-type arm, if set.
func (e Entry) Type() (*tagged.Type, bool) {
	if e.typ == nil {
		return nil, false
	}
	return e.typ, true
}

// IsZero reports whether the entry has neither arm set. Zero entries are
// tolerated and skipped by every registry operation.
func (e Entry) IsZero() bool {
	return e.template == nil && e.typ == nil
}

// Registry is the effect error registry: a mapping from error code to either
// a plain template or a tagged error type reference.
//
// Registries are treated as immutable values. Combining two registries
// (builder chaining, router composition) goes through Merge, which allocates
// a fresh map; nothing ever mutates a registry in place.
type Registry map[code.Code]Entry

// Merge combines two registries into a new one with right-biased semantics:
// on key collision the entry from b wins. Neither input is modified; the
// result shares no map structure with them.
func Merge(a, b Registry) Registry {
	merged := make(Registry, len(a)+len(b))
	for k, v := range a {
		merged[k] = v
	}
	for k, v := range b {
		merged[k] = v
	}
	return merged
}

// Validate checks that every key of the registry is a legal RPC error code.
// The entries themselves need no validation here: templates are free-form
// and tagged types validated themselves at Define time.
func Validate(r Registry) error {
	for k := range r {
		if err := code.Validate(k); err != nil {
			return fmt.Errorf("registry: key %q: %w", k, err)
		}
	}
	return nil
}
