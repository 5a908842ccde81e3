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
	"errors"
	"fmt"
	"strings"

	otelcodes "go.opentelemetry.io/otel/codes"

	"github.com/utopyin/effect-orpc/apis"
	"github.com/utopyin/effect-orpc/code"
	"github.com/utopyin/effect-orpc/effect"
	"github.com/utopyin/effect-orpc/rpcerror"
	"github.com/utopyin/effect-orpc/runtime"
	"github.com/utopyin/effect-orpc/tagged"
)

var fallbackRuntime = runtime.New()

// execute is the execution adapter: the sole translation boundary between
// the effect system's failure algebra and the RPC layer's error channel.
// It wraps the handler body's effect in a named, stack-annotated span,
// drives it through the runtime with the call's cancellation signal, and
// classifies any failure cause into exactly one plain RPC error.
func (p *Procedure) execute(ctx context.Context, in *HandlerInput) (any, error) {
	rt := p.def.Runtime
	if rt == nil {
		rt = fallbackRuntime
	}

	ctx = rt.Inject(ctx)
	ctx, span := rt.Tracer().Start(ctx, p.spanName())
	defer span.End()
	p.capture(span)

	in.Context = ctx
	eff := p.body(in)

	exit := runtime.RunExit(ctx, rt, eff)
	if exit.IsSuccess() {
		return exit.Value(), nil
	}

	rpcErr := CauseToError(exit.Cause())
	span.RecordError(rpcErr)
	span.SetStatus(otelcodes.Error, rpcErr.Message)
	return nil, rpcErr
}

// spanName resolves the span name: an explicit traced name wins, otherwise
// the procedure's path segments joined with ".".
func (p *Procedure) spanName() string {
	if p.def.Span != nil && p.def.Span.Name != "" {
		return p.def.Span.Name
	}
	if len(p.def.PathSegments) > 0 {
		return strings.Join(p.def.PathSegments, ".")
	}
	return "procedure"
}

// CauseToError classifies a failure cause into a plain RPC error. The
// classification is total: every cause variant maps to exactly one error,
// and combined causes deterministically classify their left (first) branch.
//
//   - Die: generic internal error with the defect attached as cause.
//   - Fail with a tagged instance: the instance's plain projection.
//   - Fail with a plain RPC error: passed through unchanged.
//   - Fail with anything else: generic internal error wrapping the value.
//   - Interrupt: generic internal error recording the interrupted fiber.
//   - Sequential/Parallel: recurse on the left branch.
//   - Empty: generic internal error with a synthetic "unknown error" cause.
func CauseToError(c effect.Cause) *rpcerror.Error {
	switch c := c.(type) {
	case effect.Fail:
		if inst, ok := tagged.IsInstance(c.Err); ok {
			return inst.ToRPCError()
		}
		if e, ok := c.Err.(*rpcerror.Error); ok {
			return e
		}
		return internalError(c.Err)
	case effect.Die:
		return internalError(&DefectError{Value: c.Value, Stack: c.Stack})
	case effect.Interrupt:
		return internalError(&InterruptedError{FiberID: c.FiberID})
	case effect.Sequential:
		return CauseToError(c.Left)
	case effect.Parallel:
		return CauseToError(c.Left)
	case effect.Empty:
		return internalError(errors.New("unknown error"))
	default:
		return internalError(fmt.Errorf("unknown cause kind %d", c.Kind()))
	}
}

func internalError(cause error) *rpcerror.Error {
	return rpcerror.New(code.InternalServerError, rpcerror.WithCauseOption(cause))
}

// DefectError carries an unexpected, non-modeled failure value out of the
// effect world for diagnostics.
type DefectError struct {
	Value any
	Stack []byte
}

func (e *DefectError) Error() string { return fmt.Sprintf("defect: %v", e.Value) }

// InterruptedError records which execution unit was interrupted.
type InterruptedError struct {
	FiberID string
}

func (e *InterruptedError) Error() string {
	return fmt.Sprintf("interrupted: fiber %s", e.FiberID)
}

func validateInput(next Handler, schema apis.Schema) Handler {
	return func(ctx context.Context, in *HandlerInput) (any, error) {
		v, err := schema.Validate(in.Value)
		if err != nil {
			return nil, rpcerror.New(code.BadRequest,
				rpcerror.WithMessageOption("Input validation failed"),
				rpcerror.WithDataOption(err.Error()),
				rpcerror.WithCauseOption(err),
			)
		}
		in.Value = v
		return next(ctx, in)
	}
}

func validateOutput(next Handler, schema apis.Schema) Handler {
	return func(ctx context.Context, in *HandlerInput) (any, error) {
		out, err := next(ctx, in)
		if err != nil {
			return nil, err
		}
		v, verr := schema.Validate(out)
		if verr != nil {
			return nil, rpcerror.New(code.InternalServerError,
				rpcerror.WithMessageOption("Output validation failed"),
				rpcerror.WithCauseOption(verr),
			)
		}
		return v, nil
	}
}
