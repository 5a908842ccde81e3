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

package tagged

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/utopyin/effect-orpc/apis"
	"github.com/utopyin/effect-orpc/code"
	"github.com/utopyin/effect-orpc/rpcerror"
)

// Type describes one tagged error variant: the "class" side of the factory.
//
// A Type is created once (usually in a package-level var block) and then
// registered in effect error registries and instantiated at failure sites.
// Its fields are read-only after Define; sharing a Type across goroutines
// requires no synchronization.
//
// Tag uniqueness within one effect computation's catchable-tag space is the
// caller's responsibility — the factory deliberately does not maintain a
// global registry of tags.
type Type struct {
	// Tag is the unique string identity of the variant, used for pattern
	// matching and discrimination inside effect code. Never empty.
	Tag string

	// Code is the CONSTANT_CASE error code. Defaults to DeriveCode(Tag)
	// when not supplied explicitly via WithCode.
	Code code.Code

	// Status is the default error status for instances of this type.
	// Zero means "use the protocol-standard status of Code".
	Status int

	// Message is the default human message for instances of this type.
	// Empty means "use the protocol-standard message of Code".
	Message string

	// Schema optionally describes the shape of instance payloads. It is
	// carried into the plain-error projection for clients to introspect;
	// enforcement happens at the schema owner's boundary, not here.
	Schema apis.Schema
}

// TypeOption configures a Type during Define.
type TypeOption func(*Type)

// WithCode sets an explicit error code instead of deriving one from the tag.
// This is the two-stage form of the factory: the code is fixed first, the
// tag names the variant.
func WithCode(c code.Code) TypeOption {
	return func(t *Type) { t.Code = c }
}

// WithStatus sets the default status for instances of the type.
func WithStatus(status int) TypeOption {
	return func(t *Type) { t.Status = status }
}

// WithMessage sets the default message for instances of the type.
func WithMessage(msg string) TypeOption {
	return func(t *Type) { t.Message = msg }
}

// WithSchema declares the payload schema of the type.
func WithSchema(s apis.Schema) TypeOption {
	return func(t *Type) { t.Schema = s }
}

// Define constructs a new tagged error type.
//
//	var ErrUserNotFound = tagged.Define("UserNotFoundError",
//	    tagged.WithStatus(404),
//	    tagged.WithMessage("user not found"),
//	)
//
//	// ErrUserNotFound.Code == "USER_NOT_FOUND_ERROR"
//
// Misconfiguration is a usage error and fails fast at the Define call site:
// an empty tag, a tag that derives (or an explicit value that normalizes) to
// an invalid code, or a default status outside the legal error range all
// panic immediately rather than at the point an instance crosses into the
// RPC layer.
func Define(tag string, opts ...TypeOption) *Type {
	if tag == "" {
		panic(errors.New("tagged: empty tag"))
	}
	t := &Type{Tag: tag}
	for _, opt := range opts {
		opt(t)
	}
	if t.Code == code.Empty {
		derived, err := code.Parse(DeriveCode(tag))
		if err != nil {
			panic(fmt.Errorf("tagged: tag %q derives invalid code: %w", tag, err))
		}
		t.Code = derived
	} else if err := code.Validate(t.Code); err != nil {
		panic(fmt.Errorf("tagged: explicit code %q for tag %q: %w", t.Code, tag, err))
	}
	if t.Status != 0 && !code.ValidStatus(t.Status) {
		panic(fmt.Errorf("tagged: default status %d for tag %q outside the legal error range [%d, %d]",
			t.Status, tag, code.MinStatus, code.MaxStatus))
	}
	return t
}

// Instance is one concrete tagged failure, produced by Type.New at the
// failure site inside a handler. Instances are immutable; they either travel
// through the effect failure channel (they implement error) or cross into
// the RPC layer via their embedded plain-error projection.
type Instance struct {
	// Tag is the identity of the Type that produced the instance.
	Tag string

	// Code is the error code inherited from the Type.
	Code code.Code

	// Status is the resolved error status: instance override, else type
	// default, else the protocol-standard status of Code. Always 400..599.
	Status int

	// Message is the resolved human message, following the same fallback
	// chain as Status.
	Message string

	// Data is the payload of this particular failure. Expected to conform
	// to the Type's declared schema.
	Data any

	// Defined reports whether the failure is considered statically modeled.
	// True unless explicitly suppressed at construction.
	Defined bool

	// Cause holds the wrapped underlying error (if any).
	Cause error

	// projection is the embedded plain-error view, built once at
	// construction time. Reached via ToRPCError.
	projection *rpcerror.Error
}

// Compile-time checks: Instance satisfies the apis error capabilities.
var (
	_ apis.CodedError    = (*Instance)(nil)
	_ apis.StatusedError = (*Instance)(nil)
	_ apis.DataError     = (*Instance)(nil)
	_ apis.TaggedError   = (*Instance)(nil)
	_ apis.DefinedError  = (*Instance)(nil)
)

// InstanceOption configures an Instance during Type.New.
type InstanceOption func(*Instance)

// WithInstanceStatus overrides the status for this instance only.
func WithInstanceStatus(status int) InstanceOption {
	return func(i *Instance) { i.Status = status }
}

// WithInstanceMessage overrides the message for this instance only.
func WithInstanceMessage(msg string) InstanceOption {
	return func(i *Instance) { i.Message = msg }
}

// WithData attaches the failure payload.
func WithData(data any) InstanceOption {
	return func(i *Instance) { i.Data = data }
}

// WithDefined overrides the Defined flag; pass false to suppress it.
func WithDefined(defined bool) InstanceOption {
	return func(i *Instance) { i.Defined = defined }
}

// WithCause attaches an underlying cause.
func WithCause(err error) InstanceOption {
	return func(i *Instance) { i.Cause = err }
}

// New produces an instance of the type.
//
// Status and message resolve through: instance override → type default →
// protocol-standard default for the code. An instance override outside the
// legal error range is a usage error and panics synchronously at the
// construction site. The plain-error projection is built here, once — not
// lazily — so conversion at the RPC boundary is a field read.
func (t *Type) New(opts ...InstanceOption) *Instance {
	inst := &Instance{
		Tag:     t.Tag,
		Code:    t.Code,
		Status:  t.Status,
		Message: t.Message,
		Defined: true,
	}
	for _, opt := range opts {
		opt(inst)
	}
	if inst.Status == 0 {
		inst.Status = code.StatusOf(t.Code)
	} else if !code.ValidStatus(inst.Status) {
		panic(fmt.Errorf("tagged: status %d for tag %q outside the legal error range [%d, %d]",
			inst.Status, t.Tag, code.MinStatus, code.MaxStatus))
	}
	if inst.Message == "" {
		if m := code.MessageOf(t.Code); m != "" {
			inst.Message = m
		} else {
			inst.Message = string(t.Code)
		}
	}
	inst.projection = rpcerror.New(inst.Code,
		rpcerror.WithStatusOption(inst.Status),
		rpcerror.WithMessageOption(inst.Message),
		rpcerror.WithDataOption(inst.Data),
		rpcerror.WithDefinedOption(inst.Defined),
		rpcerror.WithCauseOption(inst.Cause),
	)
	return inst
}

// Error implements the built-in error interface.
//
// The format is:
//
//	<tag>: <message>
//
// The tag, not the code, leads: inside effect code the tag is the identity
// that handlers discriminate on.
func (i *Instance) Error() string {
	if i == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", i.Tag, i.Message)
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As chains.
func (i *Instance) Unwrap() error { return i.Cause }

// ErrorTag implements apis.TaggedError.
func (i *Instance) ErrorTag() string { return i.Tag }

// ErrorCode implements apis.CodedError.
func (i *Instance) ErrorCode() string { return string(i.Code) }

// ErrorStatus implements apis.StatusedError.
func (i *Instance) ErrorStatus() int { return i.Status }

// ErrorData implements apis.DataError.
func (i *Instance) ErrorData() any { return i.Data }

// ErrorDefined implements apis.DefinedError.
func (i *Instance) ErrorDefined() bool { return i.Defined }

// ToRPCError returns the embedded plain-error projection. The conversion is
// one-way: the projection does not know which instance produced it.
func (i *Instance) ToRPCError() *rpcerror.Error {
	return i.projection
}

// MarshalJSON serializes the instance to its JSON-safe record:
//
//	{"_tag": ..., "defined": ..., "code": ..., "status": ..., "message": ..., "data": ...}
func (i *Instance) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Tag     string    `json:"_tag"`
		Defined bool      `json:"defined"`
		Code    code.Code `json:"code"`
		Status  int       `json:"status"`
		Message string    `json:"message"`
		Data    any       `json:"data"`
	}{
		Tag:     i.Tag,
		Defined: i.Defined,
		Code:    i.Code,
		Status:  i.Status,
		Message: i.Message,
		Data:    i.Data,
	})
}

// IsInstance reports whether v carries a tagged error instance, unwrapping
// error chains as needed. This is a structural check on the value, not an
// identity check against any particular Type, so it keeps working across
// module boundaries.
func IsInstance(v any) (*Instance, bool) {
	if inst, ok := v.(*Instance); ok {
		return inst, inst != nil
	}
	if err, ok := v.(error); ok && err != nil {
		var inst *Instance
		if errors.As(err, &inst) {
			return inst, true
		}
	}
	return nil, false
}

// IsType reports whether v is a well-formed tagged error type: a *Type with
// a non-empty tag and a valid code. Types built through Define always pass.
func IsType(v any) (*Type, bool) {
	t, ok := v.(*Type)
	if !ok || t == nil {
		return nil, false
	}
	if t.Tag == "" || code.Validate(t.Code) != nil {
		return nil, false
	}
	return t, true
}
