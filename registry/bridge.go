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

package registry

import "github.com/utopyin/effect-orpc/code"

// Plain is the derived projection of a Registry in which every tagged-type
// reference has been materialized into a plain Template. This is the shape
// the RPC layer consumes.
//
// A Plain registry is never maintained independently: it is recomputed from
// its source Registry on every change (the builder does this on every
// errors-mutating call), so the two representations cannot drift apart.
type Plain map[code.Code]Template

// Project derives the plain registry from an effect registry.
//
// For a tagged-type entry the type is instantiated with no arguments — its
// defaults only — and the resolved status and message are captured together
// with the type's declared payload schema. Template entries pass through
// unchanged. Zero entries are tolerated and skipped.
//
// Project is a pure, total function of its input: same registry in, same
// projection out, no cached state. Correctness of the dual bookkeeping
// depends on that.
func Project(r Registry) Plain {
	plain := make(Plain, len(r))
	for k, e := range r {
		if e.IsZero() {
			continue
		}
		if t, ok := e.Type(); ok {
			inst := t.New()
			plain[k] = Template{
				Status:     inst.Status,
				Message:    inst.Message,
				DataSchema: t.Schema,
			}
			continue
		}
		tpl, _ := e.Template()
		plain[k] = tpl
	}
	return plain
}
