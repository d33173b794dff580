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
	"github.com/timburks/tabs/editor"
	gott "github.com/timburks/tabs/types"
)

// Replace swaps the whole text of the document for Text.
type Replace struct {
	operation
	Text string
}

func (op *Replace) Perform(e gott.Editable) gott.Operation {
	op.init(e)
	previous := e.GetText()
	if previous == op.Text {
		return nil
	}
	e.SetText(op.Text)
	e.SetCursor(op.Cursor)
	inverse := &Replace{Text: previous}
	inverse.copyForUndo(&op.operation)
	return inverse
}

// ReplaceAll replaces every occurrence of Old with New.
// Count holds the number of replacements after Perform.
type ReplaceAll struct {
	operation
	Old   string
	New   string
	Count int
}

func (op *ReplaceAll) Perform(e gott.Editable) gott.Operation {
	op.init(e)
	text := e.GetText()
	var replaced string
	replaced, op.Count = editor.ReplaceAll(text, op.Old, op.New)
	if op.Count == 0 {
		return nil
	}
	e.SetText(replaced)
	e.SetCursor(op.Cursor)
	inverse := &Replace{Text: text}
	inverse.copyForUndo(&op.operation)
	return inverse
}
