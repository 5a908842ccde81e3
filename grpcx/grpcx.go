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

// Package grpcx projects plain RPC errors onto gRPC statuses. The unary
// interceptor is the only integration point a gRPC server needs.
package grpcx

import (
	"context"
	"net/http"

	"google.golang.org/grpc"
	gcodes "google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/utopyin/effect-orpc/code"
	"github.com/utopyin/effect-orpc/rpcerror"
)

// GRPCCode maps an HTTP-like error status onto the closest canonical gRPC
// code. The table follows common REST↔gRPC conventions; callers needing a
// different policy should wrap errors before they reach the interceptor.
func GRPCCode(status int) gcodes.Code {
	switch status {
	case http.StatusBadRequest,
		http.StatusNotAcceptable,
		http.StatusRequestEntityTooLarge,
		http.StatusUnsupportedMediaType,
		http.StatusUnprocessableEntity:
		return gcodes.InvalidArgument
	case http.StatusUnauthorized:
		return gcodes.Unauthenticated
	case http.StatusForbidden:
		return gcodes.PermissionDenied
	case http.StatusNotFound, http.StatusGone:
		return gcodes.NotFound
	case http.StatusMethodNotAllowed, http.StatusNotImplemented:
		return gcodes.Unimplemented
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return gcodes.DeadlineExceeded
	case http.StatusConflict:
		return gcodes.Aborted
	case http.StatusPreconditionFailed:
		return gcodes.FailedPrecondition
	case http.StatusTooManyRequests:
		return gcodes.ResourceExhausted
	case 499: // client closed request (nginx convention)
		return gcodes.Canceled
	case http.StatusServiceUnavailable:
		return gcodes.Unavailable
	case http.StatusBadGateway:
		return gcodes.Internal
	}
	if status >= 400 && status < 500 {
		return gcodes.InvalidArgument
	}
	return gcodes.Internal
}

// detailKey names the struct detail the interceptor attaches.
const detailKey = "effect-orpc.error"

// UnaryServerInterceptor maps *rpcerror.Error failures into gRPC statuses,
// attaching the error's code/status/message/defined/data as a structured
// detail so clients can recover the full error view. Errors of other types
// pass through untouched.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}

		e, ok := rpcerror.From(err)
		if !ok {
			// Not ours — return as-is.
			return nil, err
		}

		base := gstatus.New(GRPCCode(e.Status), e.Message)
		if detail, derr := errorDetail(e); derr == nil {
			if with, werr := base.WithDetails(detail); werr == nil {
				return nil, with.Err()
			}
		}
		return nil, base.Err()
	}
}

func errorDetail(e *rpcerror.Error) (*structpb.Struct, error) {
	fields := map[string]any{
		"kind":    detailKey,
		"code":    string(e.Code),
		"status":  e.Status,
		"message": e.Message,
		"defined": e.Defined,
	}
	if e.Data != nil {
		fields["data"] = e.Data
	}
	return structpb.NewStruct(fields)
}

// ExtractError recovers the plain error view from a gRPC error produced by
// the interceptor. Useful in tests and client code.
func ExtractError(err error) (*rpcerror.Error, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		s, isStruct := d.(*structpb.Struct)
		if !isStruct {
			continue
		}
		m := s.AsMap()
		if m["kind"] != detailKey {
			continue
		}
		e := &rpcerror.Error{
			Message: str(m["message"]),
			Data:    m["data"],
		}
		if c, isStr := m["code"].(string); isStr {
			e.Code = code.Code(c)
		}
		if status, isNum := m["status"].(float64); isNum {
			e.Status = int(status)
		}
		if defined, isBool := m["defined"].(bool); isBool {
			e.Defined = defined
		}
		return e, true
	}
	return nil, false
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
