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

// Package effectorpc integrates an effect system with an RPC procedure
// layer. Handlers are written as effect computations with typed, tagged
// failures; the package's builder configures procedures through an
// immutable chainable surface, routers compose them into dotted-path
// trees, and the execution adapter is the single boundary where effect
// failure causes are exhaustively classified into plain RPC errors.
//
// A minimal procedure:
//
//	var ErrUserNotFound = tagged.Define("UserNotFoundError", tagged.WithStatus(404))
//
//	proc := effectorpc.NewBuilder().
//		WithRuntime(rt).
//		Errors(registry.Registry{ErrUserNotFound.Code: registry.TypeEntry(ErrUserNotFound)}).
//		Effect(func(in *effectorpc.HandlerInput) effect.Effect[any] {
//			return effect.FailError[any](in.Errors.New(ErrUserNotFound.Code, registry.Args{
//				Data: map[string]any{"userId": "123"},
//			}))
//		})
//
// Calling it yields a *rpcerror.Error with code USER_NOT_FOUND_ERROR,
// status 404 and the instance data, regardless of how deep in the effect
// the failure occurred.
package effectorpc
