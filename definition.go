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

package effectorpc

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/utopyin/effect-orpc/apis"
	"github.com/utopyin/effect-orpc/registry"
	"github.com/utopyin/effect-orpc/runtime"
)

// Config carries procedure-level toggles.
type Config struct {
	// DedupeLeadingMiddlewares drops the shared leading middleware run when a
	// router applies its chain to a procedure that already starts with it, so
	// composition never executes the same middleware twice.
	DedupeLeadingMiddlewares bool
}

// Route describes how a procedure is reached.
type Route struct {
	Path   string
	Method string
	Prefix string
	Tags   []string
}

// Meta is free-form procedure metadata, merged shallowly.
type Meta map[string]any

// SpanConfig names the tracing span a procedure executes under.
type SpanConfig struct {
	// Name overrides the default span name (path segments joined with ".").
	Name string

	// StackCapturer annotates the span with a stack trace on demand. When
	// nil, a capture taken at handler-registration time is used instead.
	StackCapturer func(span trace.Span)
}

// Definition is the accumulated configuration of a procedure under
// construction. Builder methods never mutate a Definition in place; every
// change produces a fresh value, with unrelated fields shared structurally.
type Definition struct {
	Config Config
	Route  Route
	Meta   Meta

	// EffectErrorMap is the source of truth; ErrorMap is its plain
	// projection, recomputed on every registry change so the two never
	// drift apart.
	EffectErrorMap registry.Registry
	ErrorMap       registry.Plain

	Middlewares []Middleware

	InputSchema  apis.Schema
	OutputSchema apis.Schema

	// Validation indices position schema validation inside the middleware
	// chain: middlewares registered before Input/Output run before the
	// corresponding validation, later ones after it.
	InputValidationIndex  int
	OutputValidationIndex int

	Span    *SpanConfig
	Runtime *runtime.Runtime

	// PathSegments is assigned by router composition and names the
	// procedure's position in the tree.
	PathSegments []string
}

// clone returns a shallow copy. Callers replace only the fields they
// change; maps and slices stay shared until a mutating method copies them.
func (d Definition) clone() Definition { return d }

func cloneMeta(m Meta) Meta {
	out := make(Meta, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

func mergeRoute(base, patch Route) Route {
	out := base
	if patch.Path != "" {
		out.Path = patch.Path
	}
	if patch.Method != "" {
		out.Method = patch.Method
	}
	if patch.Prefix != "" {
		out.Prefix = patch.Prefix
	}
	if len(patch.Tags) > 0 {
		tags := make([]string, 0, len(base.Tags)+len(patch.Tags))
		tags = append(tags, base.Tags...)
		tags = append(tags, patch.Tags...)
		out.Tags = tags
	}
	return out
}
