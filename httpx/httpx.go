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

// Package httpx writes plain RPC errors as JSON HTTP responses.
package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/utopyin/effect-orpc/adapter"
	"github.com/utopyin/effect-orpc/code"
)

// Meta carries extra response context on top of the error itself. All
// fields are optional and typically come from rate-limiter output or
// router-level logic.
type Meta struct {
	RetryAfterSeconds int
}

// Writer turns errors into HTTP responses. The zero value is ready to use.
type Writer struct{}

// Write serializes the error's public view as JSON and writes it with the
// error's own status. Unrecognized error types are collapsed into a generic
// internal error first, so nothing unexpected leaks to clients.
func (w Writer) Write(rw http.ResponseWriter, err error, meta Meta) {
	if err == nil {
		return
	}

	view := adapter.ToView(err)
	status := view.Status
	if !code.ValidStatus(status) {
		status = code.FallbackStatus
	}

	rw.Header().Set("Content-Type", "application/json")
	if meta.RetryAfterSeconds > 0 {
		rw.Header().Set("Retry-After", strconv.Itoa(meta.RetryAfterSeconds))
	}
	rw.WriteHeader(status)

	b, merr := json.Marshal(view)
	if merr != nil {
		// Data was not JSON-serializable; retry without it.
		view.Data = nil
		b, _ = json.Marshal(view)
	}
	_, _ = rw.Write(b)
}
