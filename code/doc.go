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

// Package code provides parsing, normalization and validation for RPC error
// codes, plus the protocol-standard status and message defaults for the codes
// the RPC layer recognizes out of the box.
//
// A "code" is the top-level, machine-readable classification of an error,
// such as "NOT_FOUND", "BAD_REQUEST" or "INTERNAL_SERVER_ERROR". Codes are
// meant to be:
//
//   - short and stable;
//   - CONSTANT_CASE (uppercase, underscore-separated, never dash-separated);
//   - suitable for use in JSON payloads and for lookup in error registries.
//
// IMPORTANT: Empty codes ("") are NOT allowed. Every error MUST have a
// non-empty code.
//
// Besides the canonical representation, the package defines the legal
// error-status range (400..599) that error constructors validate against,
// and the default status/message tables consulted when a registry entry or
// tagged error type does not override them.
package code
