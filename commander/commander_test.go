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
package commander

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/timburks/tabs/editor"
	gott "github.com/timburks/tabs/types"
)

func setup() (*Commander, *editor.Editor) {
	e := editor.NewEditor()
	e.NewDocument()
	return NewCommander(e), e
}

func key(c *Commander, k gott.Key) {
	c.ProcessEvent(&gott.Event{Type: gott.EventKey, Key: k})
}

func typeText(c *Commander, text string) {
	for _, ch := range text {
		if ch == ' ' {
			key(c, gott.KeySpace)
			continue
		}
		c.ProcessEvent(&gott.Event{Type: gott.EventKey, Ch: ch})
	}
}

func command(c *Commander, text string) {
	key(c, gott.KeyEsc)
	typeText(c, text)
	key(c, gott.KeyEnter)
}

func TestTyping(t *testing.T) {
	c, e := setup()
	typeText(c, "def f():")
	key(c, gott.KeyEnter)
	key(c, gott.KeyTab)
	typeText(c, "pass")
	if text := e.GetText(); text != "def f():\n    pass" {
		t.Errorf("Unexpected text '%s'", text)
	}
	key(c, gott.KeyBackspace)
	key(c, gott.KeyArrowLeft)
	key(c, gott.KeyDelete)
	if text := e.GetText(); text != "def f():\n    pa" {
		t.Errorf("Unexpected text after deleting '%s'", text)
	}
	if !e.Active().IsModified() || e.Session().UnsavedCount() != 1 {
		t.Errorf("Typing should modify the document")
	}
	for i := 0; i < 20; i++ {
		key(c, gott.KeyCtrlZ)
	}
	if text := e.GetText(); text != "" || e.Active().IsModified() {
		t.Errorf("Undo should restore the empty document, got '%s'", text)
	}
	if c.GetMessage() != "nothing to undo" {
		t.Errorf("Unexpected message '%s'", c.GetMessage())
	}
}

func TestSaveAsksForPath(t *testing.T) {
	c, e := setup()
	typeText(c, "x = 1")
	key(c, gott.KeyCtrlS)
	if c.GetMode() != gott.ModeSaveAs {
		t.Fatalf("Saving an untitled document should ask for a path")
	}
	path := filepath.Join(t.TempDir(), "x.py")
	typeText(c, path)
	key(c, gott.KeyEnter)
	b, err := os.ReadFile(path)
	if err != nil || string(b) != "x = 1" {
		t.Errorf("Unexpected file contents '%s' (%v)", b, err)
	}
	if d := e.Active(); d.Name() != "x.py" || d.IsModified() {
		t.Errorf("Unexpected document state %s modified=%t", d.Name(), d.IsModified())
	}
	if _, ok := e.Active().Highlighter().(*editor.PythonHighlighter); !ok {
		t.Errorf("Saving as .py should switch to the Python highlighter")
	}
}

func TestSaveAsConfirmsOverwrite(t *testing.T) {
	c, e := setup()
	path := filepath.Join(t.TempDir(), "taken.txt")
	os.WriteFile(path, []byte("old"), 0644)
	typeText(c, "new")
	command(c, "w "+path)
	if c.GetMode() != gott.ModeConfirm {
		t.Fatalf("Expected an overwrite question, mode is %d", c.GetMode())
	}
	typeText(c, "n")
	if b, _ := os.ReadFile(path); string(b) != "old" {
		t.Errorf("Declining should keep the file, got '%s'", b)
	}
	command(c, "w "+path)
	typeText(c, "y")
	if b, _ := os.ReadFile(path); string(b) != "new" {
		t.Errorf("Accepting should overwrite the file, got '%s'", b)
	}
	if e.Active().IsModified() {
		t.Errorf("Document should be saved")
	}
}

func TestQuitGuard(t *testing.T) {
	c, _ := setup()
	typeText(c, "draft")
	command(c, "q")
	if !c.IsRunning() {
		t.Fatalf("Should not quit with unsaved documents")
	}
	key(c, gott.KeyCtrlQ)
	if c.GetMode() != gott.ModeConfirm {
		t.Fatalf("Expected a question before quitting")
	}
	key(c, gott.KeyEsc)
	if !c.IsRunning() || c.GetMode() != gott.ModeEdit {
		t.Errorf("Cancelling should return to editing")
	}
	key(c, gott.KeyCtrlQ)
	typeText(c, "n")
	if c.IsRunning() {
		t.Errorf("Answering no should quit without saving")
	}
}

func TestCloseAsks(t *testing.T) {
	c, e := setup()
	e.NewDocument()
	typeText(c, "scratch")
	key(c, gott.KeyCtrlW)
	if c.GetMode() != gott.ModeConfirm {
		t.Fatalf("Closing a modified document should ask first")
	}
	typeText(c, "n")
	if e.Session().Count() != 1 || e.Session().UnsavedCount() != 0 {
		t.Errorf("Unexpected session after close: %d tabs, %d unsaved",
			e.Session().Count(), e.Session().UnsavedCount())
	}
	key(c, gott.KeyCtrlW)
	if e.Session().Count() != 0 {
		t.Errorf("An unmodified document should close without asking")
	}
}

func TestTabCommands(t *testing.T) {
	c, e := setup()
	command(c, "new")
	command(c, "new")
	if e.Session().Count() != 3 || e.Session().ActiveIndex() != 2 {
		t.Fatalf("Expected three tabs with the last active")
	}
	command(c, "tab 1")
	if e.Session().ActiveIndex() != 0 {
		t.Errorf("Expected the first tab, got %d", e.Session().ActiveIndex())
	}
	key(c, gott.KeyCtrlP)
	if e.Session().ActiveIndex() != 2 {
		t.Errorf("Previous should wrap to the last tab, got %d", e.Session().ActiveIndex())
	}
	command(c, "tab 9")
	if c.GetMessage() != "no tab 9" {
		t.Errorf("Unexpected message '%s'", c.GetMessage())
	}
	command(c, "frobnicate")
	if c.GetMessage() != "unknown command: frobnicate" {
		t.Errorf("Unexpected message '%s'", c.GetMessage())
	}
}

func TestFindAndReplace(t *testing.T) {
	c, e := setup()
	e.SetText("one two one")
	key(c, gott.KeyCtrlF)
	typeText(c, "one")
	key(c, gott.KeyEnter)
	if m := e.GetMatch(); m == nil || m.Start != 0 || e.GetCursor() != 3 {
		t.Errorf("Unexpected match %+v", m)
	}
	key(c, gott.KeyCtrlF)
	key(c, gott.KeyEnter)
	if m := e.GetMatch(); m == nil || m.Start != 8 {
		t.Errorf("Repeating the search should find the next match, got %+v", m)
	}
	key(c, gott.KeyCtrlR)
	key(c, gott.KeyEnter)
	if c.GetMode() != gott.ModeReplaceNew {
		t.Fatalf("Expected the replacement prompt")
	}
	typeText(c, "1")
	key(c, gott.KeyEnter)
	if e.GetText() != "1 two 1" || c.GetMessage() != "replaced 2" {
		t.Errorf("Unexpected result '%s' with message '%s'", e.GetText(), c.GetMessage())
	}
	command(c, "replace two 2")
	if e.GetText() != "1 2 1" {
		t.Errorf("Unexpected result '%s'", e.GetText())
	}
	command(c, "undo")
	if e.GetText() != "1 two 1" {
		t.Errorf("Unexpected result after undo '%s'", e.GetText())
	}
}

func TestMessageBar(t *testing.T) {
	c, _ := setup()
	key(c, gott.KeyEsc)
	typeText(c, "tab 12")
	if s := c.GetMessageBarText(80); s != ":tab 12" {
		t.Errorf("Unexpected message bar '%s'", s)
	}
	if s := c.GetMessageBarText(4); s != ":tab" {
		t.Errorf("Message bar should be truncated, got '%s'", s)
	}
	key(c, gott.KeyBackspace)
	key(c, gott.KeyEsc)
	if c.GetMode() != gott.ModeEdit || c.GetMessageBarText(80) != "" {
		t.Errorf("Escape should cancel the prompt")
	}
}

func TestLisp(t *testing.T) {
	c, e := setup()
	command(c, `(insert "hi")`)
	if e.GetText() != "hi" {
		t.Errorf("Unexpected text '%s'", e.GetText())
	}
	script := filepath.Join(t.TempDir(), "script.lisp")
	os.WriteFile(script, []byte("; setup\n(new)\n(insert \"(a; b)\")\n"), 0644)
	if err := c.ParseEvalFile(script); err != nil {
		t.Fatal(err)
	}
	if e.Session().Count() != 2 || e.GetText() != "(a; b)" {
		t.Errorf("Unexpected state after script: %d tabs, '%s'", e.Session().Count(), e.GetText())
	}
}

func TestSplitExpressions(t *testing.T) {
	source := "; comment\n(open \"a.py\")\n  (insert \"x) ; y\")\n(quit) ; done\n"
	expected := []string{`(open "a.py")`, `(insert "x) ; y")`, `(quit)`}
	if exprs := splitExpressions(source); !reflect.DeepEqual(exprs, expected) {
		t.Errorf("Unexpected expressions %q", exprs)
	}
}
