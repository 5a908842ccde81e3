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

package rpcerror

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/utopyin/effect-orpc/apis"
	"github.com/utopyin/effect-orpc/code"
)

// Error is the RPC layer's plain error type — the single exception-based
// error channel of effect-orpc.
//
// It carries:
//   - Code: normalized CONSTANT_CASE error code (required);
//   - Status: resolved HTTP-like error status, always in 400..599;
//   - Message: human-oriented description (what went wrong);
//   - Data: structured payload exposed to API clients (ids, limits, etc.);
//   - Defined: whether the Code is statically registered in a registry;
//   - Cause: wrapped underlying error for debugging / unwrapping.
//
// Every terminal outcome of an effect computation — success aside — is
// eventually translated into exactly one value of this type before it
// reaches the RPC caller. Callers never observe the effect system's cause
// structure directly; unmodeled failures keep their original information
// only in the Cause chain.
//
// All mutation helpers (WithX) return a shallow copy, so Error instances can
// be safely shared and modified in a functional style.
type Error struct {
	// Code is the primary classification of the error, e.g. "NOT_FOUND",
	// "BAD_REQUEST". Must be a normalized code from the code package.
	Code code.Code

	// Status is the resolved HTTP-like error status. It defaults to the
	// protocol-standard status of Code and is always within 400..599.
	Status int

	// Message is a human-readable explanation. This is what should end up
	// in logs or in the "message" field of an error response.
	Message string

	// Data is an optional structured payload. Use this to expose
	// machine-usable error context to API clients. Treated as immutable.
	Data any

	// Defined reports whether Code is statically registered in the
	// procedure's error registry. Ad-hoc errors leave it false; registry
	// constructors for registered codes set it to true.
	Defined bool

	// Cause holds the wrapped underlying error (if any). This is used for
	// errors.Is / errors.As and for debugging in lower layers.
	Cause error
}

// Compile-time checks: Error satisfies the apis error capabilities.
var (
	_ apis.CodedError    = (*Error)(nil)
	_ apis.StatusedError = (*Error)(nil)
	_ apis.DataError     = (*Error)(nil)
	_ apis.DefinedError  = (*Error)(nil)
)

// New constructs an Error for the given code.
//
// Usage:
//
//	return rpcerror.New(code.NotFound,
//	    rpcerror.WithMessageOption("planet not found"),
//	    rpcerror.WithDataOption(map[string]any{"id": id}),
//	)
//
// Status and Message fall back to the protocol-standard defaults for the
// code when not set explicitly; for codes without a standard message the
// code itself is used.
//
// Supplying an explicit status outside the legal error range (400..599) is a
// usage error: New panics immediately at the construction site rather than
// deferring the failure to the transport boundary. This mirrors the
// fail-fast discipline of code.MustParse for static misconfiguration.
func New(c code.Code, opts ...Option) *Error {
	e := &Error{Code: c}
	for _, opt := range opts {
		e = opt(e)
	}
	if e.Status == 0 {
		e.Status = code.StatusOf(c)
	} else if !code.ValidStatus(e.Status) {
		panic(fmt.Errorf("rpcerror: status %d for code %q outside the legal error range [%d, %d]",
			e.Status, c, code.MinStatus, code.MaxStatus))
	}
	if e.Message == "" {
		if m := code.MessageOf(c); m != "" {
			e.Message = m
		} else {
			e.Message = string(c)
		}
	}
	return e
}

// Error implements the built-in error interface.
//
// The format is:
//
//	<code>: <message>
//
// This makes the error both human- and machine-scannable in logs.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As chains.
func (e *Error) Unwrap() error { return e.Cause }

// ErrorCode implements apis.CodedError.
func (e *Error) ErrorCode() string { return string(e.Code) }

// ErrorStatus implements apis.StatusedError.
func (e *Error) ErrorStatus() int { return e.Status }

// ErrorData implements apis.DataError.
func (e *Error) ErrorData() any { return e.Data }

// ErrorDefined implements apis.DefinedError.
func (e *Error) ErrorDefined() bool { return e.Defined }

// WithStatus returns a shallow copy of e with the given status set.
// The status must be within the legal error range; out-of-range values are a
// usage error and panic at the call site. The original error is not modified.
func (e *Error) WithStatus(status int) *Error {
	if !code.ValidStatus(status) {
		panic(fmt.Errorf("rpcerror: status %d outside the legal error range [%d, %d]",
			status, code.MinStatus, code.MaxStatus))
	}
	cp := *e
	cp.Status = status
	return &cp
}

// WithMessage returns a shallow copy of e with a replaced human message.
// Useful when you want to keep the Code/Status but present the message in a
// different language or context.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithData returns a shallow copy of e with the given payload attached.
// The payload is stored as-is and treated as immutable from here on.
func (e *Error) WithData(data any) *Error {
	cp := *e
	cp.Data = data
	return &cp
}

// WithDefined returns a shallow copy of e with the Defined flag set.
// Registry constructors use this to mark errors for registered codes.
func (e *Error) WithDefined(defined bool) *Error {
	cp := *e
	cp.Defined = defined
	return &cp
}

// WithCause returns a shallow copy of e with the given underlying cause
// attached. If err is nil, the original error is returned unchanged.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}

// View returns the transport-friendly projection of the error.
func (e *Error) View() apis.ErrorView {
	if e == nil {
		return apis.ErrorView{}
	}
	return apis.ErrorView{
		Code:    string(e.Code),
		Status:  e.Status,
		Message: e.Message,
		Data:    e.Data,
		Defined: e.Defined,
	}
}

// MarshalJSON serializes the error as its transport view. The Cause chain is
// deliberately excluded: it exists for diagnostics, never for clients.
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.View())
}

// From extracts an *Error from an arbitrary error value, unwrapping as
// needed. It returns (nil, false) when err does not carry one.
//
// This is the structural predicate transport adapters use to decide whether
// an error is "ours" or should be passed through untouched.
func From(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
