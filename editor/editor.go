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
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	gott "github.com/timburks/tabs/types"
)

var (
	ErrNeedPath       = errors.New("document has no current path")
	ErrWouldOverwrite = errors.New("file exists")
	ErrUnsaved        = errors.New("document has unsaved changes")
)

// A Match is the most recent search result in the active document.
type Match struct {
	Start  int
	Length int
}

// The Editor applies editing operations to the active document of a Session.
type Editor struct {
	session    *Session
	size       gott.Size // size of editing area
	offsetCols int       // first visible column, in runes
	tabWidth   int       // display width of a tab stop
	match      *Match    // last search result, cleared by edits
}

func NewEditor() *Editor {
	return &Editor{session: NewSession(), tabWidth: 4}
}

func (e *Editor) SetTabWidth(n int) {
	if n > 0 {
		e.tabWidth = n
	}
}

func (e *Editor) TabWidth() int {
	return e.tabWidth
}

func (e *Editor) Session() *Session {
	return e.session
}

func (e *Editor) Active() *Document {
	return e.session.Active()
}

// ReadFile opens path in a new tab, or switches to the tab that has it open.
func (e *Editor) ReadFile(path string) error {
	if e.session.Load(path, 0, 0) {
		e.match = nil
		return nil
	}
	if i := e.session.Find(path); i != -1 {
		e.SelectDocument(i)
		return nil
	}
	return fmt.Errorf("can't open %s", path)
}

func (e *Editor) NewDocument() {
	e.session.Create()
	e.match = nil
}

func (e *Editor) SelectDocument(index int) bool {
	if !e.session.Activate(index) {
		return false
	}
	e.match = nil
	e.offsetCols = 0
	return true
}

func (e *Editor) SelectNext() {
	if n := e.session.Count(); n > 0 {
		e.SelectDocument((e.session.ActiveIndex() + 1) % n)
	}
}

func (e *Editor) SelectPrevious() {
	if n := e.session.Count(); n > 0 {
		e.SelectDocument((e.session.ActiveIndex() + n - 1) % n)
	}
}

// Save writes the active document to its own path.
func (e *Editor) Save() error {
	d := e.Active()
	if d == nil {
		return ErrNoDocument
	}
	if d.path == "" || !d.pathIsCurrent {
		return ErrNeedPath
	}
	return e.session.Save(d.path)
}

// SaveAs writes the active document to path. An existing file that is not
// the document's own is only replaced when overwrite is set; documents
// already open at that path are then marked as diverging from disk.
func (e *Editor) SaveAs(path string, overwrite bool) error {
	d := e.Active()
	if d == nil {
		return ErrNoDocument
	}
	resolved := ResolvePath(path)
	if resolved == "" {
		return ErrNeedPath
	}
	own := d.path == resolved && d.pathIsCurrent
	if own {
		return e.session.Save(resolved)
	}
	_, err := os.Stat(resolved)
	exists := err == nil
	if exists && !overwrite {
		return ErrWouldOverwrite
	}
	// other tabs holding the path diverge from disk, even when the file is gone
	if exists || e.session.Find(resolved) != -1 {
		e.session.MarkPathStale(resolved)
	}
	return e.session.Save(resolved)
}

// SaveAll saves every document that has a current path and returns the
// number of documents that still need one.
func (e *Editor) SaveAll() (int, error) {
	active := e.session.ActiveIndex()
	defer e.session.Activate(active)
	pending := 0
	var errs []error
	for i, d := range e.session.Documents() {
		if d.path == "" || !d.pathIsCurrent {
			if d.modified {
				pending++
			}
			continue
		}
		e.session.Activate(i)
		if err := e.session.Save(d.path); err != nil {
			errs = append(errs, err)
		}
	}
	return pending, errors.Join(errs...)
}

// CloseActive closes the active document. Modified documents are only
// closed when force is set.
func (e *Editor) CloseActive(force bool) error {
	d := e.Active()
	if d == nil {
		return ErrNoDocument
	}
	if d.modified && !force {
		return ErrUnsaved
	}
	e.session.CloseActive()
	e.match = nil
	e.offsetCols = 0
	return nil
}

// Perform applies an operation to the active document and records its inverse.
func (e *Editor) Perform(op gott.Operation) {
	d := e.Active()
	if d == nil {
		return
	}
	inverse := op.Perform(e)
	if inverse == nil {
		return
	}
	if d.savedDepth > len(d.undo) {
		d.savedDepth = -1
	}
	d.undo = append(d.undo, inverse)
	e.match = nil
	e.session.SetModified(len(d.undo) != d.savedDepth)
}

func (e *Editor) PerformUndo() bool {
	d := e.Active()
	if d == nil || len(d.undo) == 0 {
		return false
	}
	last := len(d.undo) - 1
	undo := d.undo[last]
	d.undo = d.undo[0:last]
	undo.Perform(e)
	e.match = nil
	if len(d.undo) < d.savedDepth {
		// the saved state is no longer reachable by further undos
		d.savedDepth = -1
		e.session.SetModified(true)
	} else {
		e.session.SetModified(len(d.undo) != d.savedDepth)
	}
	return true
}

// FindNext selects the next occurrence of needle after the cursor.
func (e *Editor) FindNext(needle string) bool {
	d := e.Active()
	if d == nil {
		return false
	}
	i := FindFrom(d.Text(), needle, d.Cursor)
	if i == -1 {
		e.match = nil
		return false
	}
	length := utf8.RuneCountInString(needle)
	e.match = &Match{Start: i, Length: length}
	d.Cursor = i + length
	return true
}

func (e *Editor) GetMatch() *Match {
	return e.match
}

// Editable

func (e *Editor) GetCursor() int {
	if d := e.Active(); d != nil {
		return d.Cursor
	}
	return 0
}

func (e *Editor) SetCursor(offset int) {
	if d := e.Active(); d != nil {
		d.Cursor = clipToRange(offset, 0, d.Len())
	}
}

func (e *Editor) GetText() string {
	if d := e.Active(); d != nil {
		return d.Text()
	}
	return ""
}

func (e *Editor) SetText(text string) {
	e.session.SetText(text)
}

func (e *Editor) InsertText(offset int, text string) {
	d := e.Active()
	if d == nil {
		return
	}
	offset = clipToRange(offset, 0, d.Len())
	inserted := []rune(text)
	line := make([]rune, 0, d.Len()+len(inserted))
	line = append(line, d.text[:offset]...)
	line = append(line, inserted...)
	line = append(line, d.text[offset:]...)
	d.setText(line)
}

func (e *Editor) DeleteText(offset int, length int) string {
	d := e.Active()
	if d == nil {
		return ""
	}
	start := clipToRange(offset, 0, d.Len())
	end := clipToRange(offset+length, start, d.Len())
	if start == end {
		return ""
	}
	deleted := string(d.text[start:end])
	line := make([]rune, 0, d.Len()-(end-start))
	line = append(line, d.text[:start]...)
	line = append(line, d.text[end:]...)
	d.setText(line)
	return deleted
}

// Cursor motion

func (e *Editor) GetCursorPoint() gott.Point {
	d := e.Active()
	if d == nil {
		return gott.Point{}
	}
	return OffsetToPoint(d.text, d.Cursor)
}

func (e *Editor) SetCursorPoint(p gott.Point) {
	if d := e.Active(); d != nil {
		d.Cursor = PointToOffset(d.text, p)
	}
}

func (e *Editor) MoveCursor(direction int) {
	d := e.Active()
	if d == nil {
		return
	}
	p := OffsetToPoint(d.text, d.Cursor)
	switch direction {
	case gott.MoveLeft:
		if d.Cursor > 0 {
			d.Cursor--
		}
		return
	case gott.MoveRight:
		if d.Cursor < d.Len() {
			d.Cursor++
		}
		return
	case gott.MoveUp:
		if p.Row == 0 {
			return
		}
		p.Row--
	case gott.MoveDown:
		if p.Row >= RowCount(d.text)-1 {
			return
		}
		p.Row++
	}
	d.Cursor = PointToOffset(d.text, p)
}

func (e *Editor) MoveToBeginningOfLine() {
	p := e.GetCursorPoint()
	p.Col = 0
	e.SetCursorPoint(p)
}

func (e *Editor) MoveToEndOfLine() {
	d := e.Active()
	if d == nil {
		return
	}
	p := OffsetToPoint(d.text, d.Cursor)
	p.Col = RowLength(d.text, p.Row)
	d.Cursor = PointToOffset(d.text, p)
}

func (e *Editor) PageUp() {
	d := e.Active()
	if d == nil {
		return
	}
	// move to the top of the screen
	p := OffsetToPoint(d.text, d.Cursor)
	p.Row = d.Scroll
	d.Cursor = PointToOffset(d.text, p)
	// move up by a page
	for i := 0; i < e.size.Rows; i++ {
		e.MoveCursor(gott.MoveUp)
	}
}

func (e *Editor) PageDown() {
	d := e.Active()
	if d == nil {
		return
	}
	// move to the bottom of the screen
	p := OffsetToPoint(d.text, d.Cursor)
	p.Row = clipToRange(d.Scroll+e.size.Rows-1, 0, RowCount(d.text)-1)
	d.Cursor = PointToOffset(d.text, p)
	// move down by a page
	for i := 0; i < e.size.Rows; i++ {
		e.MoveCursor(gott.MoveDown)
	}
}

func (e *Editor) SetSize(s gott.Size) {
	e.size = s
}

func (e *Editor) GetOffset() gott.Size {
	d := e.Active()
	if d == nil {
		return gott.Size{}
	}
	return gott.Size{Rows: d.Scroll, Cols: e.offsetCols}
}

// Scroll keeps the cursor inside the editing area.
func (e *Editor) Scroll() {
	d := e.Active()
	if d == nil {
		return
	}
	cursor := OffsetToPoint(d.text, d.Cursor)
	if cursor.Row < d.Scroll {
		d.Scroll = cursor.Row
	}
	if e.size.Rows > 0 && cursor.Row-d.Scroll >= e.size.Rows {
		d.Scroll = cursor.Row - e.size.Rows + 1
	}
	if cursor.Col < e.offsetCols {
		e.offsetCols = cursor.Col
	}
	if e.size.Cols > 0 {
		line := []rune(Lines(d.text)[cursor.Row])
		column := DisplayColumn(line, cursor.Col, e.tabWidth)
		for e.offsetCols < cursor.Col && column-DisplayColumn(line, e.offsetCols, e.tabWidth) >= e.size.Cols {
			e.offsetCols++
		}
	}
}
