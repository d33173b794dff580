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
	"path/filepath"

	"github.com/tliron/commonlog"
)

var ErrNoDocument = errors.New("no document is open")

var sessionLog = commonlog.GetLogger("tabs.session")

// A Session is the ordered set of open documents and the active one.
// At most one document exists for each resolved path, and the unsaved
// count is kept equal to the number of modified documents.
type Session struct {
	documents []*Document
	active    int // -1 when no documents are open
	unsaved   int
	untitled  int // number of the last "New file" buffer
}

func NewSession() *Session {
	return &Session{active: -1}
}

// ResolvePath returns the absolute, cleaned form of a path used for identity.
func ResolvePath(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// Load reads a file into a new active document. It fails if the path is
// not an existing regular file or if a document for it is already open.
func (s *Session) Load(path string, scroll, cursor int) bool {
	resolved := ResolvePath(path)
	if resolved == "" {
		return false
	}
	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if s.Find(resolved) != -1 {
		return false
	}
	b, err := os.ReadFile(resolved)
	if err != nil {
		sessionLog.Warningf("read %s: %s", resolved, err)
		return false
	}
	d := newDocument(string(b), filepath.Base(resolved), resolved)
	d.Scroll = max(scroll, 0)
	d.Cursor = clipToRange(cursor, 0, d.Len())
	s.documents = append(s.documents, d)
	s.active = len(s.documents) - 1
	sessionLog.Debugf("loaded %s", resolved)
	return true
}

// Find returns the index of the document open at path, or -1.
func (s *Session) Find(path string) int {
	resolved := ResolvePath(path)
	if resolved == "" {
		return -1
	}
	for i, d := range s.documents {
		if d.path != "" && d.path == resolved {
			return i
		}
	}
	return -1
}

// Create appends an empty document without a path and activates it.
func (s *Session) Create() {
	s.untitled++
	d := newDocument("", fmt.Sprintf("New file %d", s.untitled), "")
	s.documents = append(s.documents, d)
	s.active = len(s.documents) - 1
}

// Save writes the active document to path and makes path its current location.
func (s *Session) Save(path string) error {
	d := s.Active()
	if d == nil {
		return ErrNoDocument
	}
	resolved := ResolvePath(path)
	if resolved == "" {
		return errors.New("no path given")
	}
	if err := os.WriteFile(resolved, []byte(string(d.text)), 0644); err != nil {
		return fmt.Errorf("save %s: %w", resolved, err)
	}
	s.SetModified(false)
	d.savedDepth = len(d.undo)
	d.setPath(resolved)
	sessionLog.Debugf("saved %s", resolved)
	return nil
}

// MarkPathStale flags every document open at path as diverging from disk.
func (s *Session) MarkPathStale(path string) {
	resolved := ResolvePath(path)
	if resolved == "" {
		return
	}
	for _, d := range s.documents {
		if d.path != resolved {
			continue
		}
		d.pathIsCurrent = false
		if !d.modified {
			d.modified = true
			s.unsaved++
		}
		d.savedDepth = -1
	}
}

// CloseActive removes the active document and activates its left neighbor.
func (s *Session) CloseActive() bool {
	d := s.Active()
	if d == nil {
		return false
	}
	if d.modified {
		s.unsaved--
	}
	i := s.active
	s.documents = append(s.documents[:i], s.documents[i+1:]...)
	if len(s.documents) == 0 {
		s.active = -1
	} else {
		s.active = clipToRange(i-1, 0, len(s.documents)-1)
	}
	return true
}

// SetModified changes the modified flag of the active document.
func (s *Session) SetModified(modified bool) {
	d := s.Active()
	if d == nil {
		return
	}
	if modified && !d.modified {
		s.unsaved++
	} else if !modified && d.modified {
		s.unsaved--
	}
	d.modified = modified
}

// SetText replaces the text of the active document.
func (s *Session) SetText(text string) {
	if d := s.Active(); d != nil {
		d.setText([]rune(text))
	}
}

// Activate makes the document at index active.
func (s *Session) Activate(index int) bool {
	if index < 0 || index >= len(s.documents) {
		return false
	}
	s.active = index
	return true
}

func (s *Session) Active() *Document {
	if s.active < 0 || s.active >= len(s.documents) {
		return nil
	}
	return s.documents[s.active]
}

func (s *Session) ActiveIndex() int {
	return s.active
}

func (s *Session) Count() int {
	return len(s.documents)
}

func (s *Session) UnsavedCount() int {
	return s.unsaved
}

func (s *Session) Documents() []*Document {
	return s.documents
}
