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

// Package registry implements the error registry bridge between the effect
// side and the RPC side of effect-orpc.
//
// The effect side keeps a Registry: code → plain Template OR tagged error
// Type reference. The RPC side only understands the Plain projection, where
// every type reference has been materialized into a template. The bridge is
// three pure operations:
//
//   - Merge — right-biased shallow merge, used by builder chaining and
//     router composition;
//   - Project — Registry → Plain, recomputed in full on every registry
//     change so the two representations never drift;
//   - Constructors — the lookup object of error-constructing closures handed
//     to handler code; registered codes produce Defined errors, unregistered
//     ones still produce usable errors flagged Defined:false.
//
// Everything here is a pure function of its inputs: no caches, no global
// state, no mutation of the caller's maps.
package registry
