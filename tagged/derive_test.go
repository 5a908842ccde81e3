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

import "testing"

func TestDeriveCode(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		want string
	}{
		{"pascal", "UserNotFoundError", "USER_NOT_FOUND_ERROR"},
		{"short", "NotFound", "NOT_FOUND"},
		{"single word", "Timeout", "TIMEOUT"},
		{"camel", "userNotFound", "USER_NOT_FOUND"},
		{"acronym run", "XMLHttpRequestError", "XML_HTTP_REQUEST_ERROR"},
		{"acronym tail", "ParseXML", "PARSE_XML"},
		{"acronym middle", "HTTPServerError", "HTTP_SERVER_ERROR"},
		{"digit boundary", "HTTP2Error", "HTTP2_ERROR"},
		{"already constant", "ALREADY_CONSTANT", "ALREADY_CONSTANT"},
		{"underscored", "User_NotFound", "USER_NOT_FOUND"},
		{"two letters", "IOError", "IO_ERROR"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveCode(tt.tag); got != tt.want {
				t.Fatalf("DeriveCode(%q) = %q, want %q", tt.tag, got, tt.want)
			}
		})
	}
}

func TestDeriveCode_Deterministic(t *testing.T) {
	// Same input, same output — no hidden state between calls.
	for i := 0; i < 3; i++ {
		if got := DeriveCode("UserNotFoundError"); got != "USER_NOT_FOUND_ERROR" {
			t.Fatalf("run %d: DeriveCode drifted to %q", i, got)
		}
	}
}
