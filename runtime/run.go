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
	"runtime/debug"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/utopyin/effect-orpc/effect"
)

// RunExit executes an effect on the runtime and returns its Exit.
//
// The effect runs on its own goroutine (its fiber) with a fresh fiber ID
// injected into the context. If the caller's context is cancelled before
// the effect finishes, RunExit returns an Interrupt failure immediately;
// the fiber's goroutine is left to observe the same cancelled context and
// wind down on its own. Panics escaping the effect body are recovered into
// a Die cause rather than crashing the process.
func RunExit[A any](ctx context.Context, rt *Runtime, eff effect.Effect[A]) effect.Exit[A] {
	fiberID := uuid.NewString()
	ctx = rt.inject(ctx, fiberID)

	log := rt.logger.With(zap.String("fiber_id", fiberID))
	log.Debug("fiber started")

	ch := make(chan effect.Exit[A], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- effect.FailureExit[A](effect.Die{Value: r, Stack: debug.Stack()})
			}
		}()
		ch <- eff(ctx)
	}()

	select {
	case <-ctx.Done():
		log.Debug("fiber interrupted", zap.Error(ctx.Err()))
		return effect.FailureExit[A](effect.Interrupt{FiberID: fiberID})
	case exit := <-ch:
		if !exit.IsSuccess() {
			logExit(log, exit.Cause())
		}
		return exit
	}
}

// Run executes an effect and flattens the outcome into Go's (value, error)
// shape. Non-Fail causes surface as a CauseError wrapping the cause.
func Run[A any](ctx context.Context, rt *Runtime, eff effect.Effect[A]) (A, error) {
	exit := RunExit(ctx, rt, eff)
	if exit.IsSuccess() {
		return exit.Value(), nil
	}
	var zero A
	if fail, ok := exit.Cause().(effect.Fail); ok {
		return zero, fail.Err
	}
	return zero, &CauseError{Cause: exit.Cause()}
}

func logExit(log *zap.Logger, c effect.Cause) {
	switch c := c.(type) {
	case effect.Die:
		log.Error("fiber died",
			zap.Any("defect", c.Value),
			zap.ByteString("stack", c.Stack),
		)
	default:
		log.Debug("fiber failed", zap.String("cause", c.String()))
	}
}

// CauseError adapts a non-Fail cause into an error for callers that live
// outside the effect world.
type CauseError struct {
	Cause effect.Cause
}

func (e *CauseError) Error() string { return e.Cause.String() }
