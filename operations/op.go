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
	gott "github.com/timburks/tabs/types"
)

type operation struct {
	Cursor int  // cursor when the operation was created
	Undo   bool // true when the operation is the inverse of another
}

func (op *operation) init(e gott.Editable) {
	if op.Undo {
		e.SetCursor(op.Cursor)
	} else {
		op.Cursor = e.GetCursor()
	}
}

func (op *operation) copyForUndo(other *operation) {
	op.Cursor = other.Cursor
	op.Undo = true
}

// Delete removes Length runes at Offset.
type Delete struct {
	operation
	Offset int
	Length int
}

func (op *Delete) Perform(e gott.Editable) gott.Operation {
	op.init(e)
	deleted := e.DeleteText(op.Offset, op.Length)
	if deleted == "" {
		return nil
	}
	e.SetCursor(op.Offset)
	inverse := &Insert{Offset: op.Offset, Text: deleted}
	inverse.copyForUndo(&op.operation)
	return inverse
}
