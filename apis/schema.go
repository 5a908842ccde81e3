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

// Schema is the contract effect-orpc expects from a validation library.
//
// Input/output validation is owned by the schema library, not by this module:
// procedures store schemas as opaque values and invoke Validate exactly once
// at the IO boundary (input before the handler runs, output after it
// returns). Tagged error types additionally declare a payload schema, which
// is carried as-is into the plain-error projection for clients to introspect.
//
// Validate takes the raw value and returns the (possibly coerced) value to
// use downstream, or an error describing why the value does not conform.
type Schema interface {
	Validate(v any) (any, error)
}

// SchemaFunc adapts a plain function to the Schema interface.
//
// It is the cheapest way to plug in a custom validator:
//
//	input := apis.SchemaFunc(func(v any) (any, error) {
//	    m, ok := v.(map[string]any)
//	    if !ok {
//	        return nil, fmt.Errorf("expected object, got %T", v)
//	    }
//	    return m, nil
//	})
type SchemaFunc func(v any) (any, error)

// Validate implements Schema.
func (f SchemaFunc) Validate(v any) (any, error) { return f(v) }

// AnySchema returns a schema that accepts every value unchanged.
//
// Useful as an explicit "no validation" marker in tests and prototypes.
func AnySchema() Schema {
	return SchemaFunc(func(v any) (any, error) { return v, nil })
}
