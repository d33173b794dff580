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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/timburks/tabs/editor"
	"github.com/timburks/tabs/operations"
	gott "github.com/timburks/tabs/types"
)

// The Commander converts user input into commands to the editor.
type Commander struct {
	editor      *editor.Editor
	mode        int          // editor mode
	debug       bool         // debug mode displays information about events (key codes, etc)
	promptText  string       // text being typed on the message bar
	findText    string       // last search
	replaceText string       // text to be replaced, while the replacement is typed
	question    string       // pending yes/no question
	answer      func(r rune) // receives 'y', 'n' or 'c' for the pending question
	afterSave   func()       // runs once a save that needed a path succeeds
	message     string       // status message
	tabWidth    int
}

func NewCommander(e *editor.Editor) *Commander {
	c := &Commander{editor: e, mode: gott.ModeEdit, tabWidth: 4}
	bindLisp(c)
	return c
}

func (c *Commander) SetTabWidth(n int) {
	if n > 0 {
		c.tabWidth = n
		c.editor.SetTabWidth(n)
	}
}

func (c *Commander) GetMode() int {
	return c.mode
}

func (c *Commander) SetMode(m int) {
	c.mode = m
}

func (c *Commander) IsRunning() bool {
	return c.mode != gott.ModeQuit
}

func (c *Commander) GetMessage() string {
	return c.message
}

func (c *Commander) ProcessEvent(event *gott.Event) error {
	if c.debug {
		c.message = fmt.Sprintf("event=%+v", event)
	}
	switch event.Type {
	case gott.EventKey:
		return c.processKey(event)
	default:
		return nil
	}
}

func (c *Commander) processKey(event *gott.Event) error {
	switch c.mode {
	case gott.ModeEdit:
		return c.processKeyEditMode(event)
	case gott.ModeConfirm:
		return c.processKeyConfirmMode(event)
	default:
		return c.processKeyPromptMode(event)
	}
}

func (c *Commander) insert(text string) {
	c.editor.Perform(&operations.Insert{Offset: c.editor.GetCursor(), Text: text})
}

func (c *Commander) processKeyEditMode(event *gott.Event) error {
	e := c.editor
	key := event.Key
	ch := event.Ch

	if key != 0 {
		if e.Active() == nil {
			switch key {
			case gott.KeyEsc, gott.KeyCtrlQ, gott.KeyCtrlN, gott.KeyCtrlO:
			default:
				return nil
			}
		}
		switch key {
		case gott.KeyEsc:
			c.startPrompt(gott.ModeCommand, "")
		case gott.KeyCtrlQ:
			c.quit(false)
		case gott.KeyCtrlS:
			c.save(nil)
		case gott.KeyCtrlN:
			e.NewDocument()
		case gott.KeyCtrlO:
			c.startPrompt(gott.ModeOpen, "")
		case gott.KeyCtrlW:
			c.closeDocument()
		case gott.KeyCtrlF:
			c.startPrompt(gott.ModeFind, c.findText)
		case gott.KeyCtrlR:
			c.startPrompt(gott.ModeReplaceOld, c.findText)
		case gott.KeyCtrlZ:
			if !e.PerformUndo() {
				c.message = "nothing to undo"
			}
		case gott.KeyCtrlT:
			e.SelectNext()
		case gott.KeyCtrlP:
			e.SelectPrevious()
		case gott.KeyCtrlY:
			c.gofmt()
		case gott.KeyCtrlB, gott.KeyPgup:
			e.PageUp()
		case gott.KeyCtrlD, gott.KeyPgdn:
			e.PageDown()
		case gott.KeyCtrlA, gott.KeyHome:
			e.MoveToBeginningOfLine()
		case gott.KeyCtrlE, gott.KeyEnd:
			e.MoveToEndOfLine()
		case gott.KeyArrowUp:
			e.MoveCursor(gott.MoveUp)
		case gott.KeyArrowDown:
			e.MoveCursor(gott.MoveDown)
		case gott.KeyArrowLeft:
			e.MoveCursor(gott.MoveLeft)
		case gott.KeyArrowRight:
			e.MoveCursor(gott.MoveRight)
		case gott.KeyEnter:
			c.insert("\n")
		case gott.KeyTab:
			c.insert(strings.Repeat(" ", c.tabWidth))
		case gott.KeySpace:
			c.insert(" ")
		case gott.KeyBackspace, gott.KeyBackspace2:
			if cursor := e.GetCursor(); cursor > 0 {
				e.Perform(&operations.Delete{Offset: cursor - 1, Length: 1})
			}
		case gott.KeyDelete:
			e.Perform(&operations.Delete{Offset: e.GetCursor(), Length: 1})
		}
		return nil
	}
	if ch != 0 && e.Active() != nil {
		c.insert(string(ch))
	}
	return nil
}

func (c *Commander) startPrompt(mode int, initial string) {
	c.mode = mode
	c.promptText = initial
	c.message = ""
}

func (c *Commander) processKeyPromptMode(event *gott.Event) error {
	key := event.Key
	ch := event.Ch
	if key != 0 {
		switch key {
		case gott.KeyEsc:
			c.mode = gott.ModeEdit
			c.promptText = ""
			c.afterSave = nil
		case gott.KeyEnter:
			text := c.promptText
			mode := c.mode
			c.mode = gott.ModeEdit
			c.promptText = ""
			c.finishPrompt(mode, text)
		case gott.KeyBackspace, gott.KeyBackspace2:
			if r := []rune(c.promptText); len(r) > 0 {
				c.promptText = string(r[:len(r)-1])
			}
		case gott.KeySpace:
			c.promptText += " "
		}
		return nil
	}
	if ch != 0 {
		c.promptText += string(ch)
	}
	return nil
}

func (c *Commander) finishPrompt(mode int, text string) {
	switch mode {
	case gott.ModeCommand:
		c.PerformCommand(text)
	case gott.ModeOpen:
		c.open(text)
	case gott.ModeFind:
		c.find(text)
	case gott.ModeReplaceOld:
		if text == "" {
			return
		}
		c.replaceText = text
		c.startPrompt(gott.ModeReplaceNew, "")
	case gott.ModeReplaceNew:
		c.replaceAll(c.replaceText, text)
	case gott.ModeSaveAs:
		c.saveAs(text, false)
	}
}

// ask puts a yes/no/cancel question on the message bar.
func (c *Commander) ask(question string, answer func(r rune)) {
	c.question = question
	c.answer = answer
	c.mode = gott.ModeConfirm
}

func (c *Commander) processKeyConfirmMode(event *gott.Event) error {
	var r rune
	switch {
	case event.Key == gott.KeyEsc:
		r = 'c'
	case event.Ch == 'y' || event.Ch == 'Y':
		r = 'y'
	case event.Ch == 'n' || event.Ch == 'N':
		r = 'n'
	case event.Ch == 'c' || event.Ch == 'C':
		r = 'c'
	default:
		return nil
	}
	answer := c.answer
	c.answer = nil
	c.question = ""
	c.mode = gott.ModeEdit
	if answer != nil {
		answer(r)
	}
	return nil
}

func (c *Commander) open(path string) {
	if path == "" {
		return
	}
	if err := c.editor.ReadFile(path); err != nil {
		c.message = err.Error()
	}
}

// save writes the active document, asking for a path when it has none.
// then runs after a successful save.
func (c *Commander) save(then func()) {
	err := c.editor.Save()
	switch {
	case errors.Is(err, editor.ErrNeedPath):
		c.afterSave = then
		initial := ""
		if d := c.editor.Active(); d != nil {
			initial = d.Path()
		}
		c.startPrompt(gott.ModeSaveAs, initial)
	case err != nil:
		c.message = err.Error()
	default:
		c.message = "saved " + c.editor.Active().Path()
		if then != nil {
			then()
		}
	}
}

func (c *Commander) saveAs(path string, overwrite bool) {
	if path == "" {
		c.afterSave = nil
		return
	}
	err := c.editor.SaveAs(path, overwrite)
	switch {
	case errors.Is(err, editor.ErrWouldOverwrite):
		c.ask(path+" exists, overwrite? (y/n)", func(r rune) {
			if r == 'y' {
				c.saveAs(path, true)
			} else {
				c.afterSave = nil
			}
		})
	case err != nil:
		c.message = err.Error()
		c.afterSave = nil
	default:
		c.message = "saved " + c.editor.Active().Path()
		then := c.afterSave
		c.afterSave = nil
		if then != nil {
			then()
		}
	}
}

func (c *Commander) closeDocument() {
	d := c.editor.Active()
	if d == nil {
		return
	}
	if !d.IsModified() {
		c.editor.CloseActive(false)
		return
	}
	c.ask("save "+d.Name()+" before closing? (y/n/c)", func(r rune) {
		switch r {
		case 'y':
			c.save(func() { c.editor.CloseActive(true) })
		case 'n':
			c.editor.CloseActive(true)
		}
	})
}

func (c *Commander) quit(force bool) {
	unsaved := c.editor.Session().UnsavedCount()
	if force || unsaved == 0 {
		c.mode = gott.ModeQuit
		return
	}
	c.ask(fmt.Sprintf("save %d modified documents before quitting? (y/n/c)", unsaved), func(r rune) {
		switch r {
		case 'y':
			pending, err := c.editor.SaveAll()
			if err != nil {
				c.message = err.Error()
				return
			}
			if pending > 0 {
				c.message = fmt.Sprintf("%d documents need a path, use :w path", pending)
				return
			}
			c.mode = gott.ModeQuit
		case 'n':
			c.mode = gott.ModeQuit
		}
	})
}

func (c *Commander) find(text string) {
	if text == "" {
		text = c.findText
	}
	if text == "" {
		return
	}
	c.findText = text
	if !c.editor.FindNext(text) {
		c.message = "not found: " + text
	}
}

func (c *Commander) replaceAll(old, replacement string) int {
	op := &operations.ReplaceAll{Old: old, New: replacement}
	c.editor.Perform(op)
	c.message = fmt.Sprintf("replaced %d", op.Count)
	return op.Count
}

func (c *Commander) gofmt() {
	d := c.editor.Active()
	if d == nil {
		return
	}
	out, err := editor.Gofmt(d.Name(), []byte(d.Text()))
	if err != nil {
		c.message = err.Error()
		return
	}
	c.editor.Perform(&operations.Replace{Text: string(out)})
}

// PerformCommand runs a command typed on the command line.
func (c *Commander) PerformCommand(command string) {
	e := c.editor

	command = strings.TrimSpace(command)
	if strings.HasPrefix(command, "(") {
		c.message = c.parseEval(command)
		return
	}
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return
	}
	arg := strings.TrimSpace(strings.TrimPrefix(command, parts[0]))

	c.message = ""
	switch parts[0] {
	case "q", "quit":
		if e.Session().UnsavedCount() > 0 {
			c.message = fmt.Sprintf("%d modified documents (add ! to override)", e.Session().UnsavedCount())
			return
		}
		c.mode = gott.ModeQuit
	case "q!":
		c.quit(true)
	case "w":
		if arg == "" {
			c.save(nil)
		} else {
			c.saveAs(arg, false)
		}
	case "w!":
		c.saveAs(arg, true)
	case "wq":
		if arg == "" {
			c.save(func() { c.mode = gott.ModeQuit })
		} else {
			c.afterSave = func() { c.mode = gott.ModeQuit }
			c.saveAs(arg, false)
		}
	case "wa":
		pending, err := e.SaveAll()
		if err != nil {
			c.message = err.Error()
		} else if pending > 0 {
			c.message = fmt.Sprintf("%d documents need a path", pending)
		}
	case "e", "open":
		c.open(arg)
	case "new":
		e.NewDocument()
	case "close":
		if err := e.CloseActive(false); err != nil {
			c.message = err.Error() + " (add ! to override)"
		}
	case "close!":
		e.CloseActive(true)
	case "tab":
		n, err := strconv.Atoi(arg)
		if err != nil {
			c.message = err.Error()
		} else if !e.SelectDocument(n - 1) {
			c.message = fmt.Sprintf("no tab %d", n)
		}
	case "next":
		e.SelectNext()
	case "prev":
		e.SelectPrevious()
	case "find":
		c.find(arg)
	case "replace":
		if len(parts) != 3 {
			c.message = "usage: replace old new"
			return
		}
		c.replaceAll(parts[1], parts[2])
	case "fmt":
		c.gofmt()
	case "undo":
		e.PerformUndo()
	case "debug":
		switch arg {
		case "on":
			c.debug = true
		case "off":
			c.debug = false
		}
	default:
		c.message = "unknown command: " + parts[0]
	}
}

// GetMessageBarText returns the prompt being typed or the last message.
func (c *Commander) GetMessageBarText(length int) string {
	var line string
	switch c.mode {
	case gott.ModeCommand:
		line = ":" + c.promptText
	case gott.ModeFind:
		line = "find: " + c.promptText
	case gott.ModeReplaceOld:
		line = "replace: " + c.promptText
	case gott.ModeReplaceNew:
		line = "replace " + c.replaceText + " with: " + c.promptText
	case gott.ModeOpen:
		line = "open: " + c.promptText
	case gott.ModeSaveAs:
		line = "save as: " + c.promptText
	case gott.ModeConfirm:
		line = c.question
	default:
		line = c.message
	}
	if r := []rune(line); len(r) > length {
		line = string(r[0:length])
	}
	return line
}
