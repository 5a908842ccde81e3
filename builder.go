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
	"context"
	"runtime/debug"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/utopyin/effect-orpc/apis"
	"github.com/utopyin/effect-orpc/effect"
	"github.com/utopyin/effect-orpc/registry"
	"github.com/utopyin/effect-orpc/runtime"
)

// Builder accumulates a procedure's configuration through a chainable,
// immutable surface: every method returns a new Builder and leaves the
// receiver untouched, so builders can be forked freely.
type Builder struct {
	def Definition
}

// NewBuilder returns an empty builder.
func NewBuilder() Builder {
	return Builder{}
}

// Definition exposes the accumulated configuration.
func (b Builder) Definition() Definition { return b.def }

// Errors merges an error registry into the builder, right-biased on key
// collisions, and recomputes the plain projection so the RPC-facing error
// map never drifts from the effect-facing one.
func (b Builder) Errors(r registry.Registry) Builder {
	def := b.def.clone()
	def.EffectErrorMap = registry.Merge(def.EffectErrorMap, r)
	def.ErrorMap = registry.Project(def.EffectErrorMap)
	b.def = def
	return b
}

// Meta merges metadata shallowly, later keys winning.
func (b Builder) Meta(m Meta) Builder {
	def := b.def.clone()
	merged := cloneMeta(def.Meta)
	for k, v := range m {
		merged[k] = v
	}
	def.Meta = merged
	b.def = def
	return b
}

// Route merges route configuration; non-zero patch fields override, tags
// append.
func (b Builder) Route(r Route) Builder {
	def := b.def.clone()
	def.Route = mergeRoute(def.Route, r)
	b.def = def
	return b
}

// Prefix sets the route prefix.
func (b Builder) Prefix(prefix string) Builder {
	return b.Route(Route{Prefix: prefix})
}

// Tag appends route tags.
func (b Builder) Tag(tags ...string) Builder {
	return b.Route(Route{Tags: tags})
}

// Config replaces the procedure-level toggles.
func (b Builder) Config(cfg Config) Builder {
	def := b.def.clone()
	def.Config = cfg
	b.def = def
	return b
}

// Input declares the input schema. Middlewares registered before this call
// run before input validation, later ones after it.
func (b Builder) Input(s apis.Schema) Builder {
	def := b.def.clone()
	def.InputSchema = s
	def.InputValidationIndex = len(def.Middlewares)
	b.def = def
	return b
}

// Output declares the output schema, positioned like Input.
func (b Builder) Output(s apis.Schema) Builder {
	def := b.def.clone()
	def.OutputSchema = s
	def.OutputValidationIndex = len(def.Middlewares)
	b.def = def
	return b
}

// Use appends a middleware to the chain.
func (b Builder) Use(mw Middleware) Builder {
	def := b.def.clone()
	mws := make([]Middleware, 0, len(def.Middlewares)+1)
	mws = append(mws, def.Middlewares...)
	mws = append(mws, mw)
	def.Middlewares = mws
	b.def = def
	return b
}

// Traced names the execution span explicitly. Without it the span name is
// the procedure's path segments joined with ".". An optional capturer
// replaces the default registration-time stack annotation.
func (b Builder) Traced(name string, capturer ...func(trace.Span)) Builder {
	def := b.def.clone()
	span := SpanConfig{Name: name}
	if def.Span != nil {
		span.StackCapturer = def.Span.StackCapturer
	}
	if len(capturer) > 0 {
		span.StackCapturer = capturer[0]
	}
	def.Span = &span
	b.def = def
	return b
}

// WithRuntime attaches the managed runtime the finalized procedure will
// execute on.
func (b Builder) WithRuntime(rt *runtime.Runtime) Builder {
	def := b.def.clone()
	def.Runtime = rt
	b.def = def
	return b
}

// HandlerInput is what a handler body receives per invocation.
type HandlerInput struct {
	// Context carries the call's cancellation signal, the runtime's service
	// container and any middleware-provided values.
	Context context.Context

	// Value is the input payload, already validated against the input
	// schema when one is declared.
	Value any

	// Path names the procedure's position in the router tree.
	Path []string

	// Procedure is the finalized procedure being invoked.
	Procedure *Procedure

	// LastEventID carries the resume cursor on event-stream replays.
	LastEventID string

	// Errors constructs registered failures by code.
	Errors registry.ConstructorMap
}

// Body is an effect-returning handler body.
type Body func(in *HandlerInput) effect.Effect[any]

// Effect finalizes the builder with an effect-returning handler body. The
// result is a callable procedure whose failures are classified into plain
// RPC errors at the execution boundary.
func (b Builder) Effect(body Body) *Procedure {
	return newProcedure(b.def, body, registrationCapturer())
}

// Handler finalizes the builder with an ordinary (value, error) handler.
// Returned errors travel the typed-failure channel; panics are recovered as
// defects.
func (b Builder) Handler(fn func(ctx context.Context, in *HandlerInput) (any, error)) *Procedure {
	body := func(in *HandlerInput) effect.Effect[any] {
		return effect.Func(func(ctx context.Context) (any, error) {
			return fn(ctx, in)
		})
	}
	return newProcedure(b.def, body, registrationCapturer())
}

// registrationCapturer snapshots the stack where the handler body was
// registered, for source-accurate span annotation on later failures.
func registrationCapturer() func(trace.Span) {
	stack := debug.Stack()
	return func(span trace.Span) {
		span.SetAttributes(attribute.String("code.stacktrace", string(stack)))
	}
}
