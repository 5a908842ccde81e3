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

// Package tagged implements the tagged error factory: uniquely named failure
// variants that are catchable inside effect computations and convertible,
// one-way, into the RPC layer's plain error.
//
// A tagged error has two halves:
//
//   - Type — the variant descriptor, created once with Define. It fixes the
//     tag, the CONSTANT_CASE code (derived from the tag unless supplied
//     explicitly), the default status/message, and an optional payload
//     schema.
//   - Instance — one concrete failure, created at the failure site with
//     Type.New. It resolves status and message through the override chain
//     (instance → type → protocol default), eagerly embeds its plain-error
//     projection, and implements error so it travels through ordinary Go
//     error plumbing.
//
// Discrimination is structural, never nominal: IsInstance and IsType inspect
// the value's shape, so the checks keep working for values that crossed
// module boundaries. Registries store Type references and materialize them
// into plain templates via instantiation with defaults only.
package tagged
