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
	"path/filepath"

	gott "github.com/timburks/tabs/types"
)

// A Document holds the text of one open file or unsaved buffer
// along with its edit and view state.
type Document struct {
	text          []rune
	name          string // display name
	path          string // resolved path, empty for unsaved buffers
	pathIsCurrent bool   // false once another save claimed this path
	modified      bool
	Scroll        int // first visible row
	Cursor        int // rune offset of the cursor

	highlighter Highlighter
	highlighted bool           // false when colors need to be recomputed
	colors      [][]gott.Class // per-rune classes for each line

	undo       []gott.Operation
	savedDepth int // undo depth when the text last matched the disk
}

func newDocument(text string, name string, path string) *Document {
	d := &Document{
		text:          []rune(text),
		name:          name,
		path:          path,
		pathIsCurrent: path != "",
	}
	d.highlighter = HighlighterFor(path)
	return d
}

func (d *Document) Text() string {
	return string(d.text)
}

func (d *Document) Len() int {
	return len(d.text)
}

func (d *Document) Name() string {
	return d.name
}

func (d *Document) Path() string {
	return d.path
}

func (d *Document) PathIsCurrent() bool {
	return d.pathIsCurrent
}

func (d *Document) IsModified() bool {
	return d.modified
}

func (d *Document) Highlighter() Highlighter {
	return d.highlighter
}

func (d *Document) setPath(path string) {
	d.path = path
	d.pathIsCurrent = true
	d.name = filepath.Base(path)
	d.highlighter = HighlighterFor(path)
	d.highlighted = false
}

func (d *Document) setText(text []rune) {
	d.text = text
	d.highlighted = false
	d.Cursor = clipToRange(d.Cursor, 0, len(d.text))
}

// Colors returns the highlight class of every rune in the row.
func (d *Document) Colors(row int) []gott.Class {
	if !d.highlighted {
		lines := Lines(d.text)
		d.colors = make([][]gott.Class, len(lines))
		for i, line := range lines {
			d.colors[i] = Colors(line, d.highlighter.HighlightLine(line))
		}
		d.highlighted = true
	}
	if row < 0 || row >= len(d.colors) {
		return nil
	}
	return d.colors[row]
}

func clipToRange(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
