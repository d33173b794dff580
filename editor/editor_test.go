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
	"os"
	"path/filepath"
	"testing"

	gott "github.com/timburks/tabs/types"
)

// insertText and deleteText are minimal operations so that editor tests
// don't depend on the operations package.
type insertText struct {
	offset int
	text   string
}

func (op *insertText) Perform(e gott.Editable) gott.Operation {
	e.InsertText(op.offset, op.text)
	return &deleteText{offset: op.offset, length: len([]rune(op.text))}
}

type deleteText struct {
	offset int
	length int
}

func (op *deleteText) Perform(e gott.Editable) gott.Operation {
	deleted := e.DeleteText(op.offset, op.length)
	if deleted == "" {
		return nil
	}
	return &insertText{offset: op.offset, text: deleted}
}

func setup(t *testing.T, text string) (*Editor, string) {
	t.Helper()
	path := writeFile(t, t.TempDir(), "doc.txt", text)
	e := NewEditor()
	if err := e.ReadFile(path); err != nil {
		t.Fatalf("Read failed: %+v", err)
	}
	return e, path
}

// read and write a file without changing it
func TestReadWriteInvariance(t *testing.T) {
	source := "Four score and seven years ago\n\tnaïve café ✓\r\nno newline at end"
	e, path := setup(t, source)
	e.Perform(&insertText{offset: 0, text: "x"})
	e.PerformUndo()
	if err := e.Save(); err != nil {
		t.Fatalf("Save failed: %+v", err)
	}
	if b, _ := os.ReadFile(path); string(b) != source {
		t.Errorf("File changed after a round trip: %q", b)
	}
}

func TestReadFileSwitchesToOpenDocument(t *testing.T) {
	e, path := setup(t, "first")
	e.NewDocument()
	if err := e.ReadFile(path); err != nil {
		t.Fatalf("Reopen failed: %+v", err)
	}
	if e.Session().Count() != 2 || e.Session().ActiveIndex() != 0 {
		t.Errorf("Reopening should activate the existing tab")
	}
	if err := e.ReadFile(path + ".missing"); err == nil {
		t.Errorf("Reading a missing file should fail")
	}
}

func TestPerformAndUndo(t *testing.T) {
	e, _ := setup(t, "hello")
	e.Perform(&insertText{offset: 5, text: ", world"})
	if text := e.GetText(); text != "hello, world" {
		t.Errorf("Unexpected text '%s'", text)
	}
	if !e.Active().IsModified() || e.Session().UnsavedCount() != 1 {
		t.Errorf("Document should be modified")
	}
	e.Perform(&deleteText{offset: 0, length: 1})
	if !e.PerformUndo() || !e.PerformUndo() {
		t.Fatalf("Undo failed")
	}
	if text := e.GetText(); text != "hello" {
		t.Errorf("Unexpected text after undo '%s'", text)
	}
	if e.Active().IsModified() || e.Session().UnsavedCount() != 0 {
		t.Errorf("Undoing every change should restore the saved state")
	}
	if e.PerformUndo() {
		t.Errorf("Nothing should be left to undo")
	}
}

func TestUndoPastSave(t *testing.T) {
	e, _ := setup(t, "abc")
	e.Perform(&insertText{offset: 3, text: "d"})
	if err := e.Save(); err != nil {
		t.Fatalf("Save failed: %+v", err)
	}
	if e.Active().IsModified() {
		t.Errorf("Document should be clean after save")
	}
	e.PerformUndo()
	if !e.Active().IsModified() {
		t.Errorf("Undoing a saved change should modify the document")
	}
	e.Perform(&insertText{offset: 3, text: "e"})
	if !e.Active().IsModified() {
		t.Errorf("Document should stay modified")
	}
	if e.Session().UnsavedCount() != 1 {
		t.Errorf("Unexpected unsaved count %d", e.Session().UnsavedCount())
	}
}

func TestSaveNeedsPath(t *testing.T) {
	e := NewEditor()
	e.NewDocument()
	if err := e.Save(); !errors.Is(err, ErrNeedPath) {
		t.Errorf("Expected ErrNeedPath, got %+v", err)
	}
}

func TestSaveAsOverwrite(t *testing.T) {
	e, path := setup(t, "original")
	e.NewDocument()
	e.Perform(&insertText{offset: 0, text: "replacement"})
	if err := e.SaveAs(path, false); !errors.Is(err, ErrWouldOverwrite) {
		t.Fatalf("Expected ErrWouldOverwrite, got %+v", err)
	}
	if err := e.SaveAs(path, true); err != nil {
		t.Fatalf("SaveAs failed: %+v", err)
	}
	b, _ := os.ReadFile(path)
	if string(b) != "replacement" {
		t.Errorf("Unexpected file contents '%s'", b)
	}
	first := e.Session().Documents()[0]
	if first.PathIsCurrent() || !first.IsModified() {
		t.Errorf("The overwritten tab should be stale and modified")
	}
	if e.Session().UnsavedCount() != 1 {
		t.Errorf("Unexpected unsaved count %d", e.Session().UnsavedCount())
	}
	e.SelectDocument(0)
	if err := e.Save(); !errors.Is(err, ErrNeedPath) {
		t.Errorf("A stale tab must ask for a path, got %+v", err)
	}
}

func TestSaveAsOwnPath(t *testing.T) {
	e, path := setup(t, "x")
	e.Perform(&insertText{offset: 1, text: "y"})
	if err := e.SaveAs(path, false); err != nil {
		t.Errorf("Saving to the document's own path should not ask: %+v", err)
	}
}

func TestSaveAll(t *testing.T) {
	e, path := setup(t, "a")
	e.Perform(&insertText{offset: 1, text: "b"})
	e.NewDocument()
	e.Perform(&insertText{offset: 0, text: "unsaved"})
	pending, err := e.SaveAll()
	if err != nil {
		t.Fatal(err)
	}
	if pending != 1 {
		t.Errorf("Expected one document without a path, got %d", pending)
	}
	if b, _ := os.ReadFile(path); string(b) != "ab" {
		t.Errorf("Unexpected file contents '%s'", b)
	}
	if e.Session().ActiveIndex() != 1 {
		t.Errorf("SaveAll should keep the active tab")
	}
	if e.Session().UnsavedCount() != 1 {
		t.Errorf("Unexpected unsaved count %d", e.Session().UnsavedCount())
	}
}

func TestEditorCloseActive(t *testing.T) {
	e, _ := setup(t, "a")
	e.Perform(&insertText{offset: 0, text: "b"})
	if err := e.CloseActive(false); !errors.Is(err, ErrUnsaved) {
		t.Errorf("Expected ErrUnsaved, got %+v", err)
	}
	if err := e.CloseActive(true); err != nil {
		t.Errorf("Forced close failed: %+v", err)
	}
	if e.Session().Count() != 0 || e.Session().UnsavedCount() != 0 {
		t.Errorf("Session should be empty")
	}
	if err := e.CloseActive(true); !errors.Is(err, ErrNoDocument) {
		t.Errorf("Expected ErrNoDocument, got %+v", err)
	}
}

func TestFindNext(t *testing.T) {
	e, _ := setup(t, "cat dog cat")
	if !e.FindNext("cat") {
		t.Fatalf("FindNext failed")
	}
	if m := e.GetMatch(); m == nil || m.Start != 0 || e.GetCursor() != 3 {
		t.Errorf("Unexpected match %+v at cursor %d", m, e.GetCursor())
	}
	e.FindNext("cat")
	if m := e.GetMatch(); m == nil || m.Start != 8 {
		t.Errorf("Unexpected match %+v", m)
	}
	e.FindNext("cat")
	if m := e.GetMatch(); m == nil || m.Start != 0 {
		t.Errorf("Search should wrap around, got %+v", m)
	}
	if e.FindNext("bird") || e.GetMatch() != nil {
		t.Errorf("Missing text should not match")
	}
}

func TestCursorMotion(t *testing.T) {
	e, _ := setup(t, "long line\nab\nlonger line")
	e.SetCursorPoint(gott.Point{Row: 0, Col: 7})
	e.MoveCursor(gott.MoveDown)
	if p := e.GetCursorPoint(); p != (gott.Point{Row: 1, Col: 2}) {
		t.Errorf("Unexpected cursor %+v", p)
	}
	e.MoveCursor(gott.MoveDown)
	e.MoveToEndOfLine()
	if p := e.GetCursorPoint(); p != (gott.Point{Row: 2, Col: 11}) {
		t.Errorf("Unexpected cursor %+v", p)
	}
	e.MoveCursor(gott.MoveDown)
	e.MoveCursor(gott.MoveRight)
	if e.GetCursor() != len([]rune(e.GetText())) {
		t.Errorf("Cursor should stay at the end of the text")
	}
	e.MoveToBeginningOfLine()
	e.MoveCursor(gott.MoveLeft)
	if p := e.GetCursorPoint(); p != (gott.Point{Row: 1, Col: 2}) {
		t.Errorf("Unexpected cursor %+v", p)
	}
}

func TestScroll(t *testing.T) {
	e, _ := setup(t, "0\n1\n2\n3\n4\n5\n6\n7\n8\n9")
	e.SetSize(gott.Size{Rows: 3, Cols: 10})
	e.SetCursorPoint(gott.Point{Row: 6, Col: 0})
	e.Scroll()
	if offset := e.GetOffset(); offset.Rows != 4 {
		t.Errorf("Unexpected offset %+v", offset)
	}
	e.SetCursorPoint(gott.Point{Row: 1, Col: 0})
	e.Scroll()
	if e.Active().Scroll != 1 {
		t.Errorf("Unexpected scroll %d", e.Active().Scroll)
	}
}

func TestGofmt(t *testing.T) {
	out, err := Gofmt("main.go", []byte("package main\nfunc main(){}\n"))
	if err != nil {
		t.Fatalf("Gofmt failed: %+v", err)
	}
	if string(out) != "package main\n\nfunc main() {}\n" {
		t.Errorf("Unexpected output '%s'", out)
	}
	if _, err := Gofmt(filepath.Join("x", "notes.txt"), nil); !errors.Is(err, ErrNotGo) {
		t.Errorf("Expected ErrNotGo, got %+v", err)
	}
}

func TestScrollCountsTabs(t *testing.T) {
	e, _ := setup(t, "\t\t\tx")
	e.SetTabWidth(4)
	e.SetSize(gott.Size{Rows: 5, Cols: 10})
	e.SetCursor(3)
	e.Scroll()
	if offset := e.GetOffset(); offset.Cols != 1 {
		t.Errorf("Expected to scroll past one tab, got offset %+v", offset)
	}
}

func TestDisplayColumn(t *testing.T) {
	line := []rune("a\tbc\td")
	for _, test := range []struct {
		col    int
		column int
	}{{0, 0}, {1, 1}, {2, 4}, {4, 6}, {5, 8}, {9, 9}} {
		if c := DisplayColumn(line, test.col, 4); c != test.column {
			t.Errorf("Column of %d should be %d, got %d", test.col, test.column, c)
		}
	}
}

func TestSaveAsOverHeldPathOfDeletedFile(t *testing.T) {
	e, path := setup(t, "first")
	os.Remove(path)
	e.NewDocument()
	e.Perform(&insertText{offset: 0, text: "second"})
	if err := e.SaveAs(path, false); err != nil {
		t.Fatalf("Save as failed: %+v", err)
	}
	first := e.Session().Documents()[0]
	if first.PathIsCurrent() || !first.IsModified() {
		t.Errorf("The other tab holding the path should diverge from disk")
	}
	if !e.Active().PathIsCurrent() {
		t.Errorf("The saved document should own the path")
	}
	if n := e.Session().UnsavedCount(); n != 1 {
		t.Errorf("Expected one unsaved document, got %d", n)
	}
}
