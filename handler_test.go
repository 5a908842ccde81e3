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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/utopyin/effect-orpc/code"
	"github.com/utopyin/effect-orpc/effect"
	"github.com/utopyin/effect-orpc/registry"
	"github.com/utopyin/effect-orpc/rpcerror"
	"github.com/utopyin/effect-orpc/runtime"
	"github.com/utopyin/effect-orpc/tagged"
)

func TestCall_Success(t *testing.T) {
	proc := NewBuilder().Effect(func(in *HandlerInput) effect.Effect[any] {
		return effect.Succeed[any]("hello")
	})
	out, err := proc.Call(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestCall_TypedFailureWithData(t *testing.T) {
	typ := tagged.Define("UserNotFoundError", tagged.WithStatus(404))
	proc := NewBuilder().
		Errors(registry.Registry{typ.Code: registry.TypeEntry(typ)}).
		Effect(func(in *HandlerInput) effect.Effect[any] {
			return effect.FailError[any](in.Errors.New(typ.Code, registry.Args{
				Data: map[string]any{"userId": "123"},
			}))
		})

	_, err := proc.Call(context.Background(), nil)
	require.Error(t, err)

	e, ok := rpcerror.From(err)
	require.True(t, ok)
	assert.Equal(t, typ.Code, e.Code)
	assert.Equal(t, 404, e.Status)
	assert.Equal(t, map[string]any{"userId": "123"}, e.Data)
	assert.True(t, e.Defined)
}

func TestCall_PlainErrorPassesThrough(t *testing.T) {
	want := rpcerror.New(code.Conflict, rpcerror.WithMessageOption("already exists"))
	proc := NewBuilder().Effect(func(in *HandlerInput) effect.Effect[any] {
		return effect.FailError[any](want)
	})

	_, err := proc.Call(context.Background(), nil)
	require.Same(t, error(want), err)
}

func TestCall_DefectBecomesInternal(t *testing.T) {
	proc := NewBuilder().Effect(func(in *HandlerInput) effect.Effect[any] {
		return effect.Func(func(ctx context.Context) (any, error) {
			panic("nil map write")
		})
	})

	_, err := proc.Call(context.Background(), nil)
	e, ok := rpcerror.From(err)
	require.True(t, ok)
	assert.Equal(t, code.InternalServerError, e.Code)
	assert.False(t, e.Defined)

	var defect *DefectError
	require.ErrorAs(t, err, &defect)
	assert.Equal(t, "nil map write", defect.Value)
}

func TestCauseToError_Exhaustive(t *testing.T) {
	typ := tagged.Define("QuotaExceededError", tagged.WithStatus(429))
	inst := typ.New()
	plain := rpcerror.New(code.NotFound)
	boom := errors.New("boom")

	t.Run("tagged instance projects", func(t *testing.T) {
		e := CauseToError(effect.Fail{Err: inst})
		assert.Equal(t, typ.Code, e.Code)
		assert.Equal(t, 429, e.Status)
	})

	t.Run("plain error passes through", func(t *testing.T) {
		assert.Same(t, plain, CauseToError(effect.Fail{Err: plain}))
	})

	t.Run("other failure wraps as internal", func(t *testing.T) {
		e := CauseToError(effect.Fail{Err: boom})
		assert.Equal(t, code.InternalServerError, e.Code)
		assert.ErrorIs(t, e, boom)
	})

	t.Run("die wraps defect", func(t *testing.T) {
		e := CauseToError(effect.Die{Value: "kaboom"})
		assert.Equal(t, code.InternalServerError, e.Code)
		var defect *DefectError
		require.ErrorAs(t, e, &defect)
		assert.Equal(t, "kaboom", defect.Value)
	})

	t.Run("interrupt records fiber", func(t *testing.T) {
		e := CauseToError(effect.Interrupt{FiberID: "f-42"})
		assert.Equal(t, code.InternalServerError, e.Code)
		var intr *InterruptedError
		require.ErrorAs(t, e, &intr)
		assert.Equal(t, "f-42", intr.FiberID)
	})

	t.Run("sequential classifies left branch", func(t *testing.T) {
		e := CauseToError(effect.Sequential{
			Left:  effect.Fail{Err: plain},
			Right: effect.Fail{Err: boom},
		})
		assert.Same(t, plain, e)
	})

	t.Run("parallel classifies left branch", func(t *testing.T) {
		e := CauseToError(effect.Parallel{
			Left:  effect.Fail{Err: inst},
			Right: effect.Fail{Err: plain},
		})
		assert.Equal(t, typ.Code, e.Code)
	})

	t.Run("nested combined causes recurse", func(t *testing.T) {
		e := CauseToError(effect.Sequential{
			Left: effect.Parallel{
				Left:  effect.Fail{Err: plain},
				Right: effect.Die{Value: "x"},
			},
			Right: effect.Empty{},
		})
		assert.Same(t, plain, e)
	})

	t.Run("empty wraps synthetic unknown", func(t *testing.T) {
		e := CauseToError(effect.Empty{})
		assert.Equal(t, code.InternalServerError, e.Code)
		assert.EqualError(t, e.Cause, "unknown error")
	})
}

type clockKey struct{}

func TestCall_HandlerInputCarriesServices(t *testing.T) {
	rt := runtime.New(runtime.WithService(clockKey{}, "frozen"))
	proc := NewBuilder().
		WithRuntime(rt).
		Effect(func(in *HandlerInput) effect.Effect[any] {
			got, ok := runtime.Service[string](in.Context, clockKey{})
			if !ok {
				return effect.FailError[any](errors.New("service missing from handler input"))
			}
			return effect.Succeed[any](got)
		})

	out, err := proc.Call(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "frozen", out)
}

func TestCall_Interruption(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	proc := NewBuilder().Effect(func(in *HandlerInput) effect.Effect[any] {
		return effect.Func(func(ctx context.Context) (any, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})
	})

	done := make(chan error, 1)
	go func() {
		_, err := proc.Call(ctx, nil)
		done <- err
	}()
	cancel()

	err := <-done
	e, ok := rpcerror.From(err)
	require.True(t, ok)
	assert.Equal(t, code.InternalServerError, e.Code)
	var intr *InterruptedError
	require.ErrorAs(t, err, &intr)
	assert.NotEmpty(t, intr.FiberID)
}

func recordingRuntime(t *testing.T) (*runtime.Runtime, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return runtime.New(runtime.WithTracer(tp.Tracer("test"))), sr
}

func TestSpanNaming_DefaultJoinsPathSegments(t *testing.T) {
	rt, sr := recordingRuntime(t)
	leaf := NewBuilder().Effect(func(in *HandlerInput) effect.Effect[any] {
		return effect.Succeed[any](nil)
	})
	router := NewBuilder().WithRuntime(rt).Router(Routes{
		"users": Routes{"getUser": leaf},
	})

	proc, ok := router.Resolve("users.getUser")
	require.True(t, ok)
	_, err := proc.Call(context.Background(), nil)
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "users.getUser", spans[0].Name())
}

func TestSpanNaming_ExplicitTracedWins(t *testing.T) {
	rt, sr := recordingRuntime(t)
	proc := NewBuilder().
		WithRuntime(rt).
		Traced("custom.name").
		Effect(func(in *HandlerInput) effect.Effect[any] {
			return effect.Succeed[any](nil)
		})

	_, err := proc.Call(context.Background(), nil)
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "custom.name", spans[0].Name())
}

func TestSpan_AnnotatedWithStackTrace(t *testing.T) {
	rt, sr := recordingRuntime(t)
	proc := NewBuilder().WithRuntime(rt).Effect(func(in *HandlerInput) effect.Effect[any] {
		return effect.Succeed[any](nil)
	})

	_, err := proc.Call(context.Background(), nil)
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	found := false
	for _, attr := range spans[0].Attributes() {
		if string(attr.Key) == "code.stacktrace" && attr.Value.AsString() != "" {
			found = true
		}
	}
	assert.True(t, found, "span must carry the registration-time stack")
}
