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

package httpx

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/utopyin/effect-orpc/code"
	"github.com/utopyin/effect-orpc/rpcerror"
	"github.com/utopyin/effect-orpc/tagged"
)

func TestWrite_PlainError(t *testing.T) {
	rec := httptest.NewRecorder()
	err := rpcerror.New(code.NotFound,
		rpcerror.WithDataOption(map[string]any{"userId": "123"}),
		rpcerror.WithDefinedOption(true),
	)

	Writer{}.Write(rec, err, Meta{})

	if rec.Code != 404 {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["code"] != "NOT_FOUND" || body["status"] != float64(404) || body["defined"] != true {
		t.Fatalf("unexpected body: %v", body)
	}
	data, _ := body["data"].(map[string]any)
	if data["userId"] != "123" {
		t.Fatalf("data lost: %v", body["data"])
	}
}

func TestWrite_TaggedInstance(t *testing.T) {
	typ := tagged.Define("QuotaExceededError", tagged.WithStatus(429))
	rec := httptest.NewRecorder()

	Writer{}.Write(rec, typ.New(), Meta{RetryAfterSeconds: 30})

	if rec.Code != 429 {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if ra := rec.Header().Get("Retry-After"); ra != "30" {
		t.Fatalf("Retry-After = %q", ra)
	}
	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["code"] != "QUOTA_EXCEEDED_ERROR" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestWrite_ForeignErrorCollapsesToInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	Writer{}.Write(rec, errors.New("secret database detail"), Meta{})

	if rec.Code != 500 {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["code"] != "INTERNAL_SERVER_ERROR" {
		t.Fatalf("unexpected body: %v", body)
	}
	if msg, _ := body["message"].(string); msg == "secret database detail" {
		t.Fatal("foreign error detail must not leak")
	}
}

func TestWrite_NilErrorWritesNothing(t *testing.T) {
	rec := httptest.NewRecorder()
	Writer{}.Write(rec, nil, Meta{})
	if rec.Body.Len() != 0 {
		t.Fatal("nil error must write nothing")
	}
}
