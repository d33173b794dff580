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
package operations

import (
	"unicode/utf8"

	gott "github.com/timburks/tabs/types"
)

// Insert places Text at Offset and leaves the cursor after it.
type Insert struct {
	operation
	Offset int
	Text   string
}

func (op *Insert) Perform(e gott.Editable) gott.Operation {
	op.init(e)
	if op.Text == "" {
		return nil
	}
	e.InsertText(op.Offset, op.Text)
	length := utf8.RuneCountInString(op.Text)
	if !op.Undo {
		e.SetCursor(op.Offset + length)
	}
	inverse := &Delete{Offset: op.Offset, Length: length}
	inverse.copyForUndo(&op.operation)
	return inverse
}
