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

// Package adapter converts rich error values into transport-neutral shapes
// for logging, tracing and outward serialization.
package adapter

import (
	"github.com/utopyin/effect-orpc/apis"
	"github.com/utopyin/effect-orpc/code"
	"github.com/utopyin/effect-orpc/rpcerror"
	"github.com/utopyin/effect-orpc/tagged"
)

// ToView projects any error into a public ErrorView. Tagged instances and
// plain RPC errors expose their own fields; anything else collapses into a
// generic internal-error view so unknown failures never leak details.
//
// No redaction is performed on recognized errors: whatever the error
// carries is exposed as-is. Policy belongs to higher layers.
func ToView(err error) apis.ErrorView {
	if err == nil {
		return apis.ErrorView{}
	}
	if inst, ok := tagged.IsInstance(err); ok {
		return inst.ToRPCError().View()
	}
	if e, ok := rpcerror.From(err); ok {
		return e.View()
	}
	return apis.ErrorView{
		Code:    string(code.InternalServerError),
		Status:  code.FallbackStatus,
		Message: code.MessageOf(code.InternalServerError),
	}
}

// ToDescriptor converts a plain RPC error plus its resolved gRPC code into
// a portable descriptor.
func ToDescriptor(e *rpcerror.Error, grpcCode int) apis.ErrorDescriptor {
	if e == nil {
		return apis.ErrorDescriptor{}
	}
	return apis.ErrorDescriptor{
		Code:       string(e.Code),
		Message:    e.Message,
		HTTPStatus: e.Status,
		GRPCCode:   grpcCode,
		Defined:    e.Defined,
	}
}
