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

// CodedError represents an error that is classified into a well-defined,
// machine-readable error *code*.
//
// A code usually denotes a broad category, such as:
//   - "BAD_REQUEST"           — validation failed,
//   - "NOT_FOUND"             — a referenced object does not exist,
//   - "CONFLICT"              — concurrent modification or version mismatch,
//   - "INTERNAL_SERVER_ERROR" — unexpected server-side failure.
//
// Codes are intended to be stable and enumerable. They are the primary value
// that transport adapters (HTTP, gRPC) use to decide what to return to the
// client, and the key under which error registries store their entries.
//
// Implementations are expected to return a *canonicalized* code string — i.e.,
// normalized to the format enforced by the code package (CONSTANT_CASE,
// length limits, etc.). Adapters should treat unknown or empty codes as
// internal/server errors.
type CodedError interface {
	error

	// ErrorCode returns the machine-readable error code.
	//
	// The returned value MUST be non-empty and MUST already be normalized
	// according to the rules of the code package. Callers should not try to
	// "fix" or "guess" the value here — if it's invalid, it should be
	// handled as an internal error at the boundary.
	ErrorCode() string
}

// StatusedError represents an error that carries a concrete HTTP-like error
// status resolved at construction time.
//
// While the code answers "what kind of error is this?", the status answers
// "how should a transport report it?". Statuses are always within the legal
// error range (400..599); constructing an error with a status outside that
// range is a usage error that fails at the construction site.
type StatusedError interface {
	error

	// ErrorStatus returns the resolved error status. Always in 400..599.
	ErrorStatus() int
}

// DataError represents an error that exposes a structured payload.
//
// This is especially useful for modeled failures where the caller needs
// machine-usable context (ids, limits, resource names) in addition to the
// code and message.
//
// Implementations SHOULD return a value that is safe for the caller to read
// and that will not be modified by the callee. Returning nil is allowed and
// simply means "no payload".
type DataError interface {
	error

	// ErrorData returns the structured payload of the error. May return nil.
	ErrorData() any
}

// TaggedError represents an error that carries a unique tag identity usable
// for pattern matching inside effect computations.
//
// The tag is the discrimination key of the tagged error *type* that produced
// the instance; it is distinct from (though usually related to) the error
// code derived from it.
type TaggedError interface {
	error

	// ErrorTag returns the unique tag of the error type. Never empty.
	ErrorTag() string
}

// DefinedError represents an error that knows whether its code is statically
// registered in the procedure's error registry.
//
// Errors produced through a registry constructor for a registered code report
// true; ad-hoc errors and errors for unregistered codes report false. The
// flag is advisory: an undefined error is still a fully usable plain error.
type DefinedError interface {
	error

	// ErrorDefined reports whether the error's code is statically registered.
	ErrorDefined() bool
}
