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

package apis

// ErrorDescriptor is the transport-neutral projection of an error together
// with its resolved transport statuses. It is intended for structured
// logging, tracing and message-bus propagation, not for end users.
type ErrorDescriptor struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"httpStatus"`
	GRPCCode   int    `json:"grpcCode"`
	Defined    bool   `json:"defined"`
}
