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
package screen

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/timburks/tabs/commander"
	"github.com/timburks/tabs/editor"
	gott "github.com/timburks/tabs/types"
)

// A Palette maps highlight classes to display colors.
type Palette interface {
	Color(class gott.Class) gott.Color
}

// Attributes in termbox's 256-color output mode.
const (
	colorBlack     gott.Color = 0x01
	colorWhite     gott.Color = 0x10
	colorGray      gott.Color = 0xee
	colorSelection gott.Color = 0x19
	attrBold       gott.Color = 0x0200
)

// Render draws the tab bar, the active document, the status bar and the
// message bar, and returns the screen position of the cursor (row -1 when
// there is no cursor to show).
func Render(d gott.Display, e *editor.Editor, c *commander.Commander, palette Palette) gott.Point {
	size := d.Size()
	if size.Rows < 4 || size.Cols < 1 {
		return gott.Point{Row: -1}
	}
	e.SetSize(gott.Size{Rows: size.Rows - 3, Cols: size.Cols})
	e.Scroll()

	renderTabBar(d, e, size)
	cursor := renderDocument(d, e, palette, gott.Point{Row: 1, Col: 0}, gott.Size{Rows: size.Rows - 3, Cols: size.Cols})
	renderStatusBar(d, e, size.Rows-2, size.Cols)
	renderLine(d, size.Rows-1, size.Cols, c.GetMessageBarText(size.Cols), colorWhite, colorBlack)
	if c.GetMode() != gott.ModeEdit {
		text := c.GetMessageBarText(size.Cols)
		return gott.Point{Row: size.Rows - 1, Col: min(runewidth.StringWidth(text), size.Cols-1)}
	}
	return cursor
}

func renderTabBar(d gott.Display, e *editor.Editor, size gott.Size) {
	x := 0
	for i, doc := range e.Session().Documents() {
		label := " " + doc.Name()
		if doc.IsModified() {
			label += "*"
		}
		label += " "
		fg, bg := colorWhite, colorGray
		if i == e.Session().ActiveIndex() {
			fg, bg = colorBlack|attrBold, colorWhite
		}
		x = drawText(d, x, 0, size.Cols, label, fg, bg)
		if x >= size.Cols {
			return
		}
	}
	for ; x < size.Cols; x++ {
		d.SetCell(x, 0, ' ', colorWhite, colorGray)
	}
}

func renderDocument(d gott.Display, e *editor.Editor, palette Palette, origin gott.Point, size gott.Size) gott.Point {
	doc := e.Active()
	if doc == nil {
		drawText(d, origin.Col, origin.Row, size.Cols, "no documents: ctrl-n new, ctrl-o open, ctrl-q quit", colorGray, colorBlack)
		return gott.Point{Row: -1}
	}
	text := []rune(doc.Text())
	lines := editor.Lines(text)
	offset := e.GetOffset()
	cursor := e.GetCursorPoint()
	tabWidth := e.TabWidth()
	match := e.GetMatch()

	screenCursor := gott.Point{Row: -1}
	for i := 0; i < size.Rows; i++ {
		row := i + offset.Rows
		y := origin.Row + i
		if row >= len(lines) {
			d.SetCell(origin.Col, y, '~', colorGray, colorBlack)
			continue
		}
		line := []rune(lines[row])
		colors := doc.Colors(row)
		start := editor.PointToOffset(text, gott.Point{Row: row, Col: 0})
		// columns count from the start of the line so tab stops stay put
		left := editor.DisplayColumn(line, offset.Cols, tabWidth)
		column := left
		x := origin.Col
		for col := offset.Cols; col < len(line) && x < origin.Col+size.Cols; col++ {
			if row == cursor.Row && col == cursor.Col {
				screenCursor = gott.Point{Row: y, Col: x}
			}
			class := gott.ClassDefault
			if col < len(colors) {
				class = colors[col]
			}
			bg := colorBlack
			if match != nil && start+col >= match.Start && start+col < match.Start+match.Length {
				bg = colorSelection
			}
			w := editor.CellWidth(line[col], column, tabWidth)
			if line[col] == '\t' {
				for i := 0; i < w && x+i < origin.Col+size.Cols; i++ {
					d.SetCell(x+i, y, ' ', palette.Color(class), bg)
				}
			} else {
				d.SetCell(x, y, line[col], palette.Color(class), bg)
			}
			column += w
			x = origin.Col + column - left
		}
		if row == cursor.Row && screenCursor.Row == -1 && x < origin.Col+size.Cols {
			screenCursor = gott.Point{Row: y, Col: x}
		}
	}
	return screenCursor
}

func renderStatusBar(d gott.Display, e *editor.Editor, row int, cols int) {
	var left, right string
	if doc := e.Active(); doc != nil {
		cursor := e.GetCursorPoint()
		left = fmt.Sprintf(" %s  Ln %d, Col %d ", doc.Name(), cursor.Row+1, cursor.Col+1)
		if doc.Path() != "" && !doc.PathIsCurrent() {
			left += "(changed on disk) "
		}
	}
	if n := e.Session().UnsavedCount(); n > 0 {
		right = fmt.Sprintf(" %d unsaved ", n)
	}
	for runewidth.StringWidth(left) < cols-runewidth.StringWidth(right) {
		left += " "
	}
	renderLine(d, row, cols, left+right, colorBlack, colorWhite)
}

func renderLine(d gott.Display, row int, cols int, text string, fg, bg gott.Color) {
	x := drawText(d, 0, row, cols, text, fg, bg)
	for ; x < cols; x++ {
		d.SetCell(x, row, ' ', fg, bg)
	}
}

// drawText draws text from column x and returns the column after it.
func drawText(d gott.Display, x int, row int, cols int, text string, fg, bg gott.Color) int {
	for _, ch := range text {
		w := max(runewidth.RuneWidth(ch), 1)
		if x+w > cols {
			return cols
		}
		d.SetCell(x, row, ch, fg, bg)
		x += w
	}
	return x
}
