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
	"testing"

	"github.com/utopyin/effect-orpc/code"
)

func TestDefine_DerivesCode(t *testing.T) {
	typ := Define("UserNotFoundError")
	if typ.Code != code.Code("USER_NOT_FOUND_ERROR") {
		t.Fatalf("derived code = %q", typ.Code)
	}
	if typ.Tag != "UserNotFoundError" {
		t.Fatalf("tag = %q", typ.Tag)
	}
}

func TestDefine_ExplicitCode(t *testing.T) {
	typ := Define("UserNotFoundError", WithCode(code.NotFound))
	if typ.Code != code.NotFound {
		t.Fatalf("explicit code not honored: %q", typ.Code)
	}
}

func TestDefine_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"empty tag", func() { Define("") }},
		{"invalid explicit code", func() { Define("Oops", WithCode("not a code")) }},
		{"tag derives too-short code", func() { Define("Ab") }},
		{"invalid default status", func() { Define("SomeError", WithStatus(200)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Fatal("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestNew_ResolutionChain(t *testing.T) {
	typ := Define("UserNotFoundError", WithStatus(404), WithMessage("user not found"))

	t.Run("type defaults", func(t *testing.T) {
		inst := typ.New()
		if inst.Status != 404 || inst.Message != "user not found" {
			t.Fatalf("defaults not applied: %d %q", inst.Status, inst.Message)
		}
		if !inst.Defined {
			t.Fatal("instances are defined unless suppressed")
		}
	})

	t.Run("instance overrides", func(t *testing.T) {
		inst := typ.New(WithInstanceStatus(410), WithInstanceMessage("gone"))
		if inst.Status != 410 || inst.Message != "gone" {
			t.Fatalf("overrides not applied: %d %q", inst.Status, inst.Message)
		}
	})

	t.Run("protocol fallback", func(t *testing.T) {
		// No type default status: unknown code falls back to 500, and the
		// message falls back to the code itself.
		bare := Define("SomethingOddError")
		inst := bare.New()
		if inst.Status != code.FallbackStatus {
			t.Fatalf("status = %d, want %d", inst.Status, code.FallbackStatus)
		}
		if inst.Message != "SOMETHING_ODD_ERROR" {
			t.Fatalf("message = %q", inst.Message)
		}
	})

	t.Run("known code message fallback", func(t *testing.T) {
		typ := Define("MissingThing", WithCode(code.NotFound))
		if got := typ.New().Message; got != "Not Found" {
			t.Fatalf("message = %q, want protocol default", got)
		}
	})
}

func TestNew_StatusValidation(t *testing.T) {
	typ := Define("SomeError")

	// valid status succeeds
	if inst := typ.New(WithInstanceStatus(503)); inst.Status != 503 {
		t.Fatalf("status = %d", inst.Status)
	}

	// out-of-range status panics synchronously
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for status 302")
		}
	}()
	_ = typ.New(WithInstanceStatus(302))
}

func TestInstance_RoundTrip(t *testing.T) {
	typ := Define("UserNotFoundError", WithStatus(404))
	data := map[string]any{"userId": "123"}
	inst := typ.New(WithData(data), WithInstanceMessage("no such user"))

	if inst.Data.(map[string]any)["userId"] != "123" {
		t.Fatal("data not readable back")
	}
	if inst.Message != "no such user" {
		t.Fatal("message not readable back")
	}

	proj := inst.ToRPCError()
	if proj.Code != inst.Code || proj.Status != inst.Status ||
		proj.Message != inst.Message || !proj.Defined {
		t.Fatalf("projection mismatch: %+v vs %+v", proj, inst)
	}
	if proj.Data.(map[string]any)["userId"] != "123" {
		t.Fatal("projection lost the payload")
	}
}

func TestInstance_ProjectionIsEager(t *testing.T) {
	typ := Define("SomeError")
	a := typ.New()
	b := typ.New()
	if a.ToRPCError() == nil || b.ToRPCError() == nil {
		t.Fatal("projection must exist right after construction")
	}
	if a.ToRPCError() == b.ToRPCError() {
		t.Fatal("each instance owns its projection")
	}
}

func TestInstance_ErrorAndUnwrap(t *testing.T) {
	root := errors.New("row missing")
	typ := Define("UserNotFoundError")
	inst := typ.New(WithCause(root))

	if got := inst.Error(); got != "UserNotFoundError: USER_NOT_FOUND_ERROR" {
		t.Fatalf("Error() = %q", got)
	}
	if !errors.Is(inst, root) {
		t.Fatal("cause not reachable")
	}
}

func TestInstance_SuppressedDefined(t *testing.T) {
	typ := Define("SomeError")
	inst := typ.New(WithDefined(false))
	if inst.Defined || inst.ToRPCError().Defined {
		t.Fatal("suppression must reach the projection")
	}
}

func TestInstance_MarshalJSON(t *testing.T) {
	typ := Define("UserNotFoundError", WithStatus(404), WithMessage("user not found"))
	inst := typ.New(WithData(map[string]any{"userId": "123"}))

	b, err := json.Marshal(inst)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := map[string]any{
		"_tag":    "UserNotFoundError",
		"defined": true,
		"code":    "USER_NOT_FOUND_ERROR",
		"status":  float64(404),
		"message": "user not found",
	}
	for k, v := range want {
		if m[k] != v {
			t.Fatalf("json[%q] = %v, want %v", k, m[k], v)
		}
	}
	if m["data"].(map[string]any)["userId"] != "123" {
		t.Fatal("payload missing from JSON")
	}
}

func TestInstance_MarshalJSON_DatalessKeepsDataKey(t *testing.T) {
	inst := Define("SomeError").New()

	b, err := json.Marshal(inst)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := m["data"]; !ok {
		t.Fatal("data key must be present even without a payload")
	}
	if m["data"] != nil {
		t.Fatalf("data = %v, want null", m["data"])
	}
}

func TestIsInstance(t *testing.T) {
	typ := Define("SomeError")
	inst := typ.New()

	if got, ok := IsInstance(inst); !ok || got != inst {
		t.Fatal("direct instance not recognized")
	}

	wrapped := fmt.Errorf("handler: %w", inst)
	if got, ok := IsInstance(wrapped); !ok || got != inst {
		t.Fatal("wrapped instance not recognized")
	}

	if _, ok := IsInstance(errors.New("plain")); ok {
		t.Fatal("plain error misrecognized")
	}
	if _, ok := IsInstance(nil); ok {
		t.Fatal("nil misrecognized")
	}
	if _, ok := IsInstance((*Instance)(nil)); ok {
		t.Fatal("typed nil misrecognized")
	}
}

func TestIsType(t *testing.T) {
	typ := Define("SomeError")
	if got, ok := IsType(typ); !ok || got != typ {
		t.Fatal("well-formed type not recognized")
	}

	if _, ok := IsType(&Type{}); ok {
		t.Fatal("zero type misrecognized")
	}
	if _, ok := IsType("SomeError"); ok {
		t.Fatal("string misrecognized")
	}
	if _, ok := IsType((*Type)(nil)); ok {
		t.Fatal("typed nil misrecognized")
	}
}
