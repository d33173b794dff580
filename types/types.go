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
package types

// Editor modes
const (
	ModeEdit       = 0
	ModeCommand    = 1
	ModeFind       = 2
	ModeReplaceOld = 3
	ModeReplaceNew = 4
	ModeOpen       = 5
	ModeSaveAs     = 6
	ModeConfirm    = 7
	ModeQuit       = 9999
)

// Move directions
const (
	MoveUp    = 0
	MoveDown  = 1
	MoveRight = 2
	MoveLeft  = 3
)

// Event types
const (
	EventKey    = 0
	EventResize = 1
	EventMouse  = 2
	EventError  = 3
)

type Key uint16

// Keys the commander understands. The screen maps terminal keys onto these.
const (
	KeyUnsupported Key = iota
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyBackspace
	KeyBackspace2
	KeyDelete
	KeyCtrlA
	KeyCtrlB
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlW
	KeyCtrlY
	KeyCtrlZ
	KeyEnd
	KeyEnter
	KeyEsc
	KeyHome
	KeyPgdn
	KeyPgup
	KeySpace
	KeyTab
)

type Event struct {
	Type int
	Key  Key
	Ch   rune
}

type Point struct {
	Row int
	Col int
}

type Size struct {
	Rows int
	Cols int
}

type Color uint16

// Class is the highlight class assigned to a run of characters.
type Class int

const (
	ClassDefault Class = iota
	ClassKeyword
	ClassBuiltin
	ClassSpecialName
	ClassDefinitionName
	ClassString
	ClassComment
	ClassNumber
)

var classNames = []string{
	"default",
	"keyword",
	"builtin",
	"special-name",
	"definition-name",
	"string",
	"comment",
	"number",
}

func (c Class) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return "unknown"
	}
	return classNames[c]
}

// ClassNamed returns the class with the given name, or false.
func ClassNamed(name string) (Class, bool) {
	for i, n := range classNames {
		if n == name {
			return Class(i), true
		}
	}
	return ClassDefault, false
}

// Editable is the set of text primitives operations are built on.
// Offsets count runes from the start of the active document.
type Editable interface {
	GetCursor() int
	SetCursor(offset int)
	GetText() string
	InsertText(offset int, text string)
	DeleteText(offset int, length int) string
	SetText(text string)
}

type Operation interface {
	Perform(e Editable) Operation // performs the operation and returns its inverse
}

// A Display receives rendered cells.
type Display interface {
	SetCell(col int, row int, c rune, fg Color, bg Color)
	Size() Size
}
