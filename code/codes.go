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

package code

// Protocol-standard error codes
//
// These are the codes the RPC layer recognizes out of the box. Each carries a
// default HTTP-like status and a default human message; both are only
// fallbacks — registries and tagged error types may override them per entry.
//
// Application-defined codes (for example "USER_NOT_FOUND_ERROR", derived from
// a tagged error's name) are equally valid as long as they pass Validate.
const (
	// BadRequest indicates that the request payload or parameters are
	// malformed or violate the procedure's input contract.
	BadRequest Code = "BAD_REQUEST"

	// Unauthorized indicates that the caller is not authenticated or the
	// authentication context could not be established.
	Unauthorized Code = "UNAUTHORIZED"

	// Forbidden indicates that the caller is authenticated but lacks the
	// privileges required by the target procedure.
	Forbidden Code = "FORBIDDEN"

	// NotFound indicates that the requested entity or procedure does not
	// exist in the current scope.
	NotFound Code = "NOT_FOUND"

	// MethodNotSupported indicates that the procedure exists but does not
	// support the requested method or call style.
	MethodNotSupported Code = "METHOD_NOT_SUPPORTED"

	// NotAcceptable indicates that no response representation acceptable to
	// the caller can be produced.
	NotAcceptable Code = "NOT_ACCEPTABLE"

	// Timeout indicates that the operation could not complete within the
	// allotted time budget.
	Timeout Code = "TIMEOUT"

	// Conflict indicates a state conflict: concurrent modification, version
	// mismatch, or a uniqueness violation.
	Conflict Code = "CONFLICT"

	// PreconditionFailed indicates that a required precondition on the
	// target resource was not met.
	PreconditionFailed Code = "PRECONDITION_FAILED"

	// PayloadTooLarge indicates that the request payload exceeds the size
	// the procedure is willing to process.
	PayloadTooLarge Code = "PAYLOAD_TOO_LARGE"

	// UnsupportedMediaType indicates that the request payload is in a format
	// the procedure cannot decode.
	UnsupportedMediaType Code = "UNSUPPORTED_MEDIA_TYPE"

	// UnprocessableContent indicates that the payload was decodable but
	// semantically invalid (schema validation failures end up here).
	UnprocessableContent Code = "UNPROCESSABLE_CONTENT"

	// TooManyRequests indicates that the caller exceeded the allowed request
	// rate and should back off.
	TooManyRequests Code = "TOO_MANY_REQUESTS"

	// ClientClosedRequest indicates that the caller went away before the
	// procedure produced a response. Non-standard (nginx 499) but widely
	// used for canceled calls.
	ClientClosedRequest Code = "CLIENT_CLOSED_REQUEST"

	// InternalServerError is the generic unexpected-failure code. Defects,
	// interruptions, and unrecognized failure values are all surfaced under
	// this code with the original information preserved in the cause chain.
	InternalServerError Code = "INTERNAL_SERVER_ERROR"

	// NotImplemented indicates that the procedure is declared but has no
	// usable implementation yet.
	NotImplemented Code = "NOT_IMPLEMENTED"

	// BadGateway indicates that an upstream dependency returned an invalid
	// response while handling the call.
	BadGateway Code = "BAD_GATEWAY"

	// ServiceUnavailable indicates that the service or a required dependency
	// is temporarily unable to handle the call.
	ServiceUnavailable Code = "SERVICE_UNAVAILABLE"

	// GatewayTimeout indicates that an upstream dependency did not respond
	// in time.
	GatewayTimeout Code = "GATEWAY_TIMEOUT"
)

// Error-status range
//
// The RPC layer only accepts error statuses in the 4xx/5xx range. Statuses
// outside of it (including 0 and the 2xx/3xx success range) are a usage error
// when supplied explicitly to an error constructor.
const (
	// MinStatus is the lowest legal error status.
	MinStatus = 400

	// MaxStatus is the highest legal error status.
	MaxStatus = 599

	// FallbackStatus is used when a code has no registered default at all.
	FallbackStatus = 500
)

// defaultStatus holds the protocol-standard status for each known code.
// Application-defined codes fall back to FallbackStatus.
var defaultStatus = map[Code]int{
	BadRequest:           400,
	Unauthorized:         401,
	Forbidden:            403,
	NotFound:             404,
	MethodNotSupported:   405,
	NotAcceptable:        406,
	Timeout:              408,
	Conflict:             409,
	PreconditionFailed:   412,
	PayloadTooLarge:      413,
	UnsupportedMediaType: 415,
	UnprocessableContent: 422,
	TooManyRequests:      429,
	ClientClosedRequest:  499,
	InternalServerError:  500,
	NotImplemented:       501,
	BadGateway:           502,
	ServiceUnavailable:   503,
	GatewayTimeout:       504,
}

// defaultMessage holds the protocol-standard human message for each known
// code. Application-defined codes have no default message.
var defaultMessage = map[Code]string{
	BadRequest:           "Bad Request",
	Unauthorized:         "Unauthorized",
	Forbidden:            "Forbidden",
	NotFound:             "Not Found",
	MethodNotSupported:   "Method Not Supported",
	NotAcceptable:        "Not Acceptable",
	Timeout:              "Request Timeout",
	Conflict:             "Conflict",
	PreconditionFailed:   "Precondition Failed",
	PayloadTooLarge:      "Payload Too Large",
	UnsupportedMediaType: "Unsupported Media Type",
	UnprocessableContent: "Unprocessable Content",
	TooManyRequests:      "Too Many Requests",
	ClientClosedRequest:  "Client Closed Request",
	InternalServerError:  "Internal server error",
	NotImplemented:       "Not Implemented",
	BadGateway:           "Bad Gateway",
	ServiceUnavailable:   "Service Unavailable",
	GatewayTimeout:       "Gateway Timeout",
}

// StatusOf returns the protocol-standard status for the given code, or
// FallbackStatus when the code has no registered default. The result is
// always within the legal error-status range.
func StatusOf(c Code) int {
	if s, ok := defaultStatus[c]; ok {
		return s
	}
	return FallbackStatus
}

// MessageOf returns the protocol-standard message for the given code, or the
// empty string when the code has no registered default. Callers that need a
// non-empty message should fall back to the code itself.
func MessageOf(c Code) string {
	return defaultMessage[c]
}

// ValidStatus reports whether s lies within the legal error-status range.
// Error constructors use this to fail fast on out-of-range statuses.
func ValidStatus(s int) bool {
	return s >= MinStatus && s <= MaxStatus
}
