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

// Package effect provides a minimal effect system: lazy computations
// (Effect), their outcomes (Exit) and a structured failure algebra (Cause).
//
// The Cause algebra distinguishes typed failures (Fail) from defects (Die)
// and interruptions (Interrupt), and records how multiple failures composed
// (Sequential, Parallel). Downstream adapters classify causes exhaustively
// by Kind to translate effect failures into transport errors.
package effect
