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
	"strings"
	"unicode"
)

// DeriveCode converts a PascalCase/camelCase tag into its CONSTANT_CASE
// error code.
//
// The transliteration inserts an underscore:
//
//   - at every lowercase→uppercase (or digit→uppercase) transition, so
//     "UserNotFoundError" becomes "USER_NOT_FOUND_ERROR";
//   - before the last letter of an uppercase run that is followed by a
//     lowercase letter, so acronym runs split on the word boundary:
//     "XMLHttpRequestError" becomes "XML_HTTP_REQUEST_ERROR", not
//     "X_M_L_HTTP_REQUEST_ERROR".
//
// Existing underscores are kept as separators and never doubled. The
// function is deterministic and total over identifier-like tags; it does not
// validate the result — Define does that once, against the code package.
func DeriveCode(tag string) string {
	rs := []rune(tag)
	var b strings.Builder
	b.Grow(len(tag) + len(tag)/2)

	for i, r := range rs {
		if r == '_' {
			b.WriteByte('_')
			continue
		}
		if i > 0 && rs[i-1] != '_' && wordBoundary(rs, i) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// wordBoundary reports whether a new word starts at index i.
// Callers guarantee i > 0.
func wordBoundary(rs []rune, i int) bool {
	if !unicode.IsUpper(rs[i]) {
		return false
	}
	prev := rs[i-1]
	// lowercase or digit followed by uppercase: "rNot" -> "r_Not".
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	// inside an uppercase run, split before the letter that starts the next
	// word: "LHttp" -> "L_Http".
	if unicode.IsUpper(prev) && i+1 < len(rs) && unicode.IsLower(rs[i+1]) {
		return true
	}
	return false
}
