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

// Option is a functional option for constructing or transforming an Error.
// It always takes an *Error and returns a (possibly new) *Error.
type Option func(*Error) *Error

// WithStatusOption sets the status on the error being constructed.
// Intended to be used with New(...). Status validation happens once all
// options are applied.
func WithStatusOption(status int) Option {
	return func(e *Error) *Error {
		cp := *e
		cp.Status = status
		return &cp
	}
}

// WithMessageOption sets the human message on construction.
// Intended to be used with New(...).
func WithMessageOption(msg string) Option {
	return func(e *Error) *Error {
		return e.WithMessage(msg)
	}
}

// WithDataOption attaches a structured payload on construction.
// Intended to be used with New(...).
func WithDataOption(data any) Option {
	return func(e *Error) *Error {
		return e.WithData(data)
	}
}

// WithDefinedOption sets the Defined flag on construction.
// Intended to be used with New(...).
func WithDefinedOption(defined bool) Option {
	return func(e *Error) *Error {
		return e.WithDefined(defined)
	}
}

// WithCauseOption attaches a cause on construction.
// Intended to be used with New(...).
func WithCauseOption(err error) Option {
	return func(e *Error) *Error {
		return e.WithCause(err)
	}
}
