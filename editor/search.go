//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
package editor

import (
	"strings"
	"unicode/utf8"
)

// FindFrom returns the rune offset of the first occurrence of needle at or
// after from, wrapping around to the start of text. It returns -1 when
// needle does not occur.
func FindFrom(text string, needle string, from int) int {
	if needle == "" {
		return -1
	}
	runes := []rune(text)
	from = clipToRange(from, 0, len(runes))
	after := string(runes[from:])
	if i := strings.Index(after, needle); i != -1 {
		return from + utf8.RuneCountInString(after[:i])
	}
	if i := strings.Index(text, needle); i != -1 {
		return utf8.RuneCountInString(text[:i])
	}
	return -1
}

// ReplaceAll replaces every occurrence of old and reports how many there were.
func ReplaceAll(text string, old string, replacement string) (string, int) {
	if old == "" {
		return text, 0
	}
	n := strings.Count(text, old)
	if n == 0 {
		return text, 0
	}
	return strings.ReplaceAll(text, old, replacement), n
}
