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

package effect

import (
	"context"
	"runtime/debug"
)

// Effect is a lazy, restartable description of a computation that produces
// an A or fails with a Cause. Nothing runs until the effect is applied to a
// context, and applying it again runs it again.
//
// Effects close over their inputs and never mutate shared state themselves,
// so a single Effect value may be run from multiple goroutines.
type Effect[A any] func(ctx context.Context) Exit[A]

// Succeed lifts a plain value into an always-successful effect.
func Succeed[A any](v A) Effect[A] {
	return func(context.Context) Exit[A] { return SuccessExit(v) }
}

// FailError lifts an error into an always-failing effect with a Fail cause.
func FailError[A any](err error) Effect[A] {
	return FailCause[A](Fail{Err: err})
}

// FailCause lifts an arbitrary cause into an always-failing effect.
func FailCause[A any](c Cause) Effect[A] {
	return func(context.Context) Exit[A] { return FailureExit[A](c) }
}

// Defect lifts a defect value into an always-dying effect. The stack is
// captured at construction time, where the defect was declared.
func Defect[A any](v any) Effect[A] {
	return FailCause[A](Die{Value: v, Stack: debug.Stack()})
}

// Func adapts an ordinary Go function into an effect. A returned error
// becomes a Fail cause; a panic is recovered into a Die cause with the
// goroutine stack captured at the panic site.
func Func[A any](fn func(ctx context.Context) (A, error)) Effect[A] {
	return func(ctx context.Context) (exit Exit[A]) {
		defer func() {
			if r := recover(); r != nil {
				exit = FailureExit[A](Die{Value: r, Stack: debug.Stack()})
			}
		}()
		v, err := fn(ctx)
		if err != nil {
			return FailureExit[A](Fail{Err: err})
		}
		return SuccessExit(v)
	}
}

// Map transforms the success value of an effect. Failures pass through
// untouched.
func Map[A, B any](e Effect[A], f func(A) B) Effect[B] {
	return func(ctx context.Context) Exit[B] {
		exit := e(ctx)
		if !exit.IsSuccess() {
			return FailureExit[B](exit.Cause())
		}
		return SuccessExit(f(exit.Value()))
	}
}

// FlatMap sequences two effects, feeding the first success value into the
// continuation. The first failure short-circuits.
func FlatMap[A, B any](e Effect[A], f func(A) Effect[B]) Effect[B] {
	return func(ctx context.Context) Exit[B] {
		exit := e(ctx)
		if !exit.IsSuccess() {
			return FailureExit[B](exit.Cause())
		}
		return f(exit.Value())(ctx)
	}
}

// Zip runs a then b sequentially and combines their successes. The first
// failure short-circuits; b never runs if a fails.
func Zip[A, B, C any](a Effect[A], b Effect[B], combine func(A, B) C) Effect[C] {
	return FlatMap(a, func(av A) Effect[C] {
		return Map(b, func(bv B) C { return combine(av, bv) })
	})
}

// Ensuring runs a finalizer after the effect regardless of outcome. If both
// the effect and the finalizer fail, the causes compose sequentially with
// the effect's cause on the left.
func Ensuring[A any](e Effect[A], finalizer Effect[struct{}]) Effect[A] {
	return func(ctx context.Context) Exit[A] {
		exit := e(ctx)
		fin := finalizer(ctx)
		if fin.IsSuccess() {
			return exit
		}
		if exit.IsSuccess() {
			return FailureExit[A](fin.Cause())
		}
		return FailureExit[A](Sequential{Left: exit.Cause(), Right: fin.Cause()})
	}
}

// Par runs both effects concurrently and combines their successes. If both
// branches fail the causes compose in parallel, with the first-started
// branch on the left; if only one fails, its cause is the result. Panics in
// either branch are recovered into Die causes.
func Par[A, B, C any](a Effect[A], b Effect[B], combine func(A, B) C) Effect[C] {
	return func(ctx context.Context) Exit[C] {
		ach := make(chan Exit[A], 1)
		bch := make(chan Exit[B], 1)

		go func() {
			defer func() {
				if r := recover(); r != nil {
					ach <- FailureExit[A](Die{Value: r, Stack: debug.Stack()})
				}
			}()
			ach <- a(ctx)
		}()
		go func() {
			defer func() {
				if r := recover(); r != nil {
					bch <- FailureExit[B](Die{Value: r, Stack: debug.Stack()})
				}
			}()
			bch <- b(ctx)
		}()

		ae := <-ach
		be := <-bch

		switch {
		case !ae.IsSuccess() && !be.IsSuccess():
			return FailureExit[C](Parallel{Left: ae.Cause(), Right: be.Cause()})
		case !ae.IsSuccess():
			return FailureExit[C](ae.Cause())
		case !be.IsSuccess():
			return FailureExit[C](be.Cause())
		}
		return SuccessExit(combine(ae.Value(), be.Value()))
	}
}
