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

package runtime

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/utopyin/effect-orpc/runtime"

// Runtime bundles the ambient machinery effects run with: a service
// container for dependency lookup, a logger and a tracer. A Runtime is
// immutable after New and safe to share across calls.
type Runtime struct {
	services map[any]any
	logger   *zap.Logger
	tracer   trace.Tracer
}

// Option configures a Runtime under construction.
type Option func(*Runtime)

// WithService registers a service under a key. Keys follow the
// context.Context convention: use unexported key types to avoid collisions.
func WithService(key, value any) Option {
	return func(r *Runtime) { r.services[key] = value }
}

// WithLogger replaces the default no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runtime) { r.logger = l }
}

// WithTracer replaces the default tracer from the global provider.
func WithTracer(tr trace.Tracer) Option {
	return func(r *Runtime) { r.tracer = tr }
}

// New builds a Runtime. Without options it logs nowhere and traces through
// the global otel provider.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		services: make(map[any]any),
		logger:   zap.NewNop(),
		tracer:   otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Logger returns the runtime's logger.
func (r *Runtime) Logger() *zap.Logger { return r.logger }

// Tracer returns the runtime's tracer.
func (r *Runtime) Tracer() trace.Tracer { return r.tracer }

type servicesKey struct{}

type fiberKey struct{}

// Inject returns a context carrying the runtime's service container, so
// Service lookups also work outside an executing effect (middlewares,
// handler assembly). RunExit injects the same container, plus the fiber ID,
// into the context the effect itself receives.
func (r *Runtime) Inject(ctx context.Context) context.Context {
	return context.WithValue(ctx, servicesKey{}, r.services)
}

// inject places the service container and fiber ID on the context so that
// effect code can reach them through Service and FiberID.
func (r *Runtime) inject(ctx context.Context, fiberID string) context.Context {
	return context.WithValue(r.Inject(ctx), fiberKey{}, fiberID)
}

// Service looks up a typed service registered on the runtime that is
// executing the current effect. The second return is false when the key is
// absent or holds a different type.
func Service[T any](ctx context.Context, key any) (T, bool) {
	var zero T
	services, ok := ctx.Value(servicesKey{}).(map[any]any)
	if !ok {
		return zero, false
	}
	v, ok := services[key]
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// FiberID returns the identifier of the execution unit running the current
// effect, or "" outside a RunExit call.
func FiberID(ctx context.Context) string {
	id, _ := ctx.Value(fiberKey{}).(string)
	return id
}
