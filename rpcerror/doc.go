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

// Package rpcerror implements the plain RPC error — the one exception-based
// error channel that procedures expose to their callers.
//
// Whatever happens inside an effect computation (a tagged failure, a defect,
// an interruption, a combination of concurrent failures), the execution
// adapter translates it into exactly one *rpcerror.Error before it crosses
// the procedure boundary. Tagged error instances embed their own *Error
// projection; registries materialize their templates into this type.
//
// Errors are immutable in the functional style: every WithX helper returns a
// shallow copy, so instances can be shared across goroutines freely.
package rpcerror
