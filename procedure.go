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
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/utopyin/effect-orpc/registry"
)

// Handler is the plain call shape the RPC layer understands: input in,
// value or error out.
type Handler func(ctx context.Context, in *HandlerInput) (any, error)

// Middleware wraps a handler. Middlewares compose outermost-first: the
// first registered middleware sees the call first.
type Middleware func(next Handler) Handler

// Procedure is a finalized, callable unit: a definition plus a handler
// body. Procedures are immutable; Errors, Meta and Use return new values.
type Procedure struct {
	def     Definition
	body    Body
	capture func(trace.Span)
}

func newProcedure(def Definition, body Body, defaultCapture func(trace.Span)) *Procedure {
	if body == nil {
		panic("effectorpc: procedure requires a handler body")
	}
	capture := defaultCapture
	if def.Span != nil && def.Span.StackCapturer != nil {
		capture = def.Span.StackCapturer
	}
	return &Procedure{def: def, body: body, capture: capture}
}

// Definition exposes the procedure's configuration.
func (p *Procedure) Definition() Definition { return p.def }

// Errors returns a new procedure with the registry merged in, right-biased,
// and the plain projection recomputed.
func (p *Procedure) Errors(r registry.Registry) *Procedure {
	def := p.def.clone()
	def.EffectErrorMap = registry.Merge(def.EffectErrorMap, r)
	def.ErrorMap = registry.Project(def.EffectErrorMap)
	return &Procedure{def: def, body: p.body, capture: p.capture}
}

// Meta returns a new procedure with metadata merged shallowly.
func (p *Procedure) Meta(m Meta) *Procedure {
	def := p.def.clone()
	merged := cloneMeta(def.Meta)
	for k, v := range m {
		merged[k] = v
	}
	def.Meta = merged
	return &Procedure{def: def, body: p.body, capture: p.capture}
}

// Use returns a new procedure with a middleware appended.
func (p *Procedure) Use(mw Middleware) *Procedure {
	def := p.def.clone()
	mws := make([]Middleware, 0, len(def.Middlewares)+1)
	mws = append(mws, def.Middlewares...)
	mws = append(mws, mw)
	def.Middlewares = mws
	return &Procedure{def: def, body: p.body, capture: p.capture}
}

// CallOption adjusts a single invocation.
type CallOption func(*HandlerInput)

// WithLastEventID carries the resume cursor of an event-stream replay into
// the handler input.
func WithLastEventID(id string) CallOption {
	return func(in *HandlerInput) { in.LastEventID = id }
}

// Call invokes the procedure: it validates the input, runs the middleware
// chain around the execution adapter, validates the output and returns
// either a value or a plain RPC error. Each call is independent; the
// procedure keeps no state across invocations.
func (p *Procedure) Call(ctx context.Context, input any, opts ...CallOption) (any, error) {
	in := &HandlerInput{
		Context:   ctx,
		Value:     input,
		Path:      p.def.PathSegments,
		Procedure: p,
		Errors:    registry.Constructors(p.def.EffectErrorMap),
	}
	for _, opt := range opts {
		opt(in)
	}

	// Both validators sit at their recorded index in the chain: middlewares
	// registered before the Input/Output declaration run outside the
	// corresponding validation, later ones inside it.
	mws := p.def.Middlewares
	inIdx := clampIndex(p.def.InputValidationIndex, len(mws))
	outIdx := clampIndex(p.def.OutputValidationIndex, len(mws))

	h := p.execute
	for i := len(mws); i >= 0; i-- {
		if p.def.OutputSchema != nil && outIdx == i {
			h = validateOutput(h, p.def.OutputSchema)
		}
		if p.def.InputSchema != nil && inIdx == i {
			h = validateInput(h, p.def.InputSchema)
		}
		if i > 0 {
			h = mws[i-1](h)
		}
	}

	return h(ctx, in)
}

func clampIndex(idx, n int) int {
	if idx > n {
		return n
	}
	if idx < 0 {
		return 0
	}
	return idx
}

// IsProcedure reports whether v is a finalized procedure.
func IsProcedure(v any) bool {
	p, ok := v.(*Procedure)
	return ok && p != nil && p.body != nil
}

// Lazy defers construction of a procedure or router subtree until it is
// first resolved. Resolution runs the loader exactly once.
type Lazy struct {
	once  sync.Once
	load  func() any
	value any
}

// NewLazy wraps a loader thunk.
func NewLazy(load func() any) *Lazy {
	if load == nil {
		panic("effectorpc: nil lazy loader")
	}
	return &Lazy{load: load}
}

// Resolve forces the loader and returns its result.
func (l *Lazy) Resolve() any {
	l.once.Do(func() { l.value = l.load() })
	return l.value
}

// IsLazy reports whether v is a deferred subtree.
func IsLazy(v any) bool {
	_, ok := v.(*Lazy)
	return ok
}
