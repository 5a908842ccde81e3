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

package effect

// Exit is the final outcome of running an effect: either a success carrying
// a value of type A, or a failure carrying a Cause. There is no third state;
// an Exit built through the package constructors is always one of the two.
type Exit[A any] struct {
	value  A
	cause  Cause
	failed bool
}

// SuccessExit builds a successful outcome.
func SuccessExit[A any](v A) Exit[A] {
	return Exit[A]{value: v}
}

// FailureExit builds a failed outcome from a cause. A nil cause is
// normalized to Empty so failures always carry a non-nil Cause.
func FailureExit[A any](c Cause) Exit[A] {
	if c == nil {
		c = Empty{}
	}
	return Exit[A]{cause: c, failed: true}
}

// IsSuccess reports whether the outcome is a success.
func (e Exit[A]) IsSuccess() bool { return !e.failed }

// Value returns the success value, or the zero value of A on failure.
func (e Exit[A]) Value() A { return e.value }

// Cause returns the failure cause, or nil on success.
func (e Exit[A]) Cause() Cause { return e.cause }
