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

package grpcx

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc"
	gcodes "google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"

	"github.com/utopyin/effect-orpc/code"
	"github.com/utopyin/effect-orpc/rpcerror"
)

func TestGRPCCode(t *testing.T) {
	tests := []struct {
		status int
		want   gcodes.Code
	}{
		{400, gcodes.InvalidArgument},
		{401, gcodes.Unauthenticated},
		{403, gcodes.PermissionDenied},
		{404, gcodes.NotFound},
		{405, gcodes.Unimplemented},
		{408, gcodes.DeadlineExceeded},
		{409, gcodes.Aborted},
		{412, gcodes.FailedPrecondition},
		{422, gcodes.InvalidArgument},
		{429, gcodes.ResourceExhausted},
		{499, gcodes.Canceled},
		{418, gcodes.InvalidArgument}, // unlisted 4xx
		{500, gcodes.Internal},
		{501, gcodes.Unimplemented},
		{502, gcodes.Internal},
		{503, gcodes.Unavailable},
		{504, gcodes.DeadlineExceeded},
		{599, gcodes.Internal}, // unlisted 5xx
	}
	for _, tt := range tests {
		if got := GRPCCode(tt.status); got != tt.want {
			t.Errorf("GRPCCode(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func invoke(t *testing.T, handlerErr error) error {
	t.Helper()
	interceptor := UnaryServerInterceptor()
	_, err := interceptor(context.Background(), "req",
		&grpc.UnaryServerInfo{FullMethod: "/svc/Method"},
		func(ctx context.Context, req any) (any, error) {
			return nil, handlerErr
		},
	)
	return err
}

func TestUnaryServerInterceptor_MapsPlainErrors(t *testing.T) {
	in := rpcerror.New(code.NotFound,
		rpcerror.WithMessageOption("user missing"),
		rpcerror.WithDataOption(map[string]any{"userId": "123"}),
		rpcerror.WithDefinedOption(true),
	)

	err := invoke(t, in)
	if err == nil {
		t.Fatal("expected error")
	}

	st, ok := gstatus.FromError(err)
	if !ok {
		t.Fatal("expected a grpc status error")
	}
	if st.Code() != gcodes.NotFound {
		t.Fatalf("grpc code = %v, want NotFound", st.Code())
	}
	if st.Message() != "user missing" {
		t.Fatalf("message = %q", st.Message())
	}

	out, ok := ExtractError(err)
	if !ok {
		t.Fatal("detail not attached")
	}
	if out.Code != code.NotFound || out.Status != 404 || !out.Defined {
		t.Fatalf("round-tripped error mismatch: %+v", out)
	}
	data, _ := out.Data.(map[string]any)
	if data["userId"] != "123" {
		t.Fatalf("data lost: %v", out.Data)
	}
}

func TestUnaryServerInterceptor_PassesForeignErrorsThrough(t *testing.T) {
	boom := errors.New("boom")
	err := invoke(t, boom)
	if !errors.Is(err, boom) {
		t.Fatalf("foreign error must pass through, got %v", err)
	}
	if _, ok := ExtractError(err); ok {
		t.Fatal("no detail expected on foreign errors")
	}
}

func TestUnaryServerInterceptor_SuccessPassesThrough(t *testing.T) {
	interceptor := UnaryServerInterceptor()
	resp, err := interceptor(context.Background(), "req",
		&grpc.UnaryServerInfo{FullMethod: "/svc/Method"},
		func(ctx context.Context, req any) (any, error) { return "ok", nil },
	)
	if err != nil || resp != "ok" {
		t.Fatalf("resp=%v err=%v", resp, err)
	}
}

func TestExtractError_NilAndPlain(t *testing.T) {
	if _, ok := ExtractError(nil); ok {
		t.Fatal("nil must not extract")
	}
	if _, ok := ExtractError(errors.New("x")); ok {
		t.Fatal("plain error must not extract")
	}
}
