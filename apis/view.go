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

package apis

// ErrorView is a flat, transport-friendly projection of a plain RPC error.
//
// This type intentionally uses plain strings and numbers (not the internal
// Code value type) so that it can live in the public "apis" layer and be
// used by adapters (HTTP, gRPC) without importing the error implementation.
//
// It is what actually crosses the wire: the HTTP writer serializes it as the
// JSON response body, and the gRPC interceptor attaches it as a status
// detail. The effect system's cause structure never appears here — only the
// already-classified plain error.
type ErrorView struct {
	// Code is the canonical error code, e.g. "NOT_FOUND",
	// "USER_NOT_FOUND_ERROR".
	//
	// Implementations SHOULD store only normalized, validated codes here.
	Code string `json:"code"`

	// Status is the resolved HTTP-like error status (400..599).
	Status int `json:"status"`

	// Message is the human-friendly description of the failure.
	Message string `json:"message,omitempty"`

	// Data is the structured payload of the error, if any. It must be
	// JSON-serializable; modeled failures typically place ids and limits
	// here for the client to act on.
	Data any `json:"data,omitempty"`

	// Defined reports whether the code is statically registered in the
	// procedure's error registry. Clients can use this to distinguish
	// modeled failures from ad-hoc ones.
	Defined bool `json:"defined"`
}
