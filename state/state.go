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

// Package state persists the session between runs: the list of open
// files with their view positions, and the window settings.
// Both records are best effort. A missing, empty or malformed file
// means there is no previous session.
package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tliron/commonlog"

	"github.com/timburks/tabs/editor"
)

const (
	OpenedFilesName = "opened.json"
	SettingsName    = "data.json"
)

var log = commonlog.GetLogger("tabs.state")

// A Position is the view state of one open file.
type Position struct {
	Path   string
	Scroll int
	Cursor int
}

// OpenedFiles is stored as a JSON object mapping each path to
// [scroll, cursor]. Entries keep the order of the tabs.
type OpenedFiles []Position

func (o OpenedFiles) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Path)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":[%d,%d]", p.Scroll, p.Cursor)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o *OpenedFiles) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("opened files must be an object")
	}
	seen := make(map[string]bool)
	var files OpenedFiles
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		path, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key %v", tok)
		}
		// fractional or out of range numbers fail to decode into int
		var pos []int
		if err := dec.Decode(&pos); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if len(pos) != 2 {
			return fmt.Errorf("%s: expected [scroll, cursor]", path)
		}
		if seen[path] {
			continue
		}
		seen[path] = true
		files = append(files, Position{Path: path, Scroll: pos[0], Cursor: pos[1]})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*o = files
	return nil
}

// AppSettings holds the window geometry and the active tab.
type AppSettings struct {
	Pos   [2]int `json:"pos"`
	Size  [2]int `json:"size"`
	Index int    `json:"index"`
}

// A Store reads and writes session records in a directory.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) read(name string) ([]byte, bool) {
	b, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warningf("read %s: %s", name, err)
		}
		return nil, false
	}
	return b, true
}

func (s *Store) write(name string, v any) error {
	b, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dir, name), b, 0644)
}

// LoadOpened returns the files open at the end of the last session.
func (s *Store) LoadOpened() (OpenedFiles, bool) {
	b, ok := s.read(OpenedFilesName)
	if !ok {
		return nil, false
	}
	var files OpenedFiles
	if err := json.Unmarshal(b, &files); err != nil {
		log.Warningf("ignoring %s: %s", OpenedFilesName, err)
		return nil, false
	}
	return files, len(files) > 0
}

func (s *Store) SaveOpened(files OpenedFiles) error {
	if files == nil {
		files = OpenedFiles{}
	}
	return s.write(OpenedFilesName, files)
}

// LoadSettings returns the settings saved by the last session.
func (s *Store) LoadSettings() (AppSettings, bool) {
	var settings AppSettings
	b, ok := s.read(SettingsName)
	if !ok {
		return settings, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil || len(fields) == 0 {
		if err != nil {
			log.Warningf("ignoring %s: %s", SettingsName, err)
		}
		return settings, false
	}
	if err := json.Unmarshal(b, &settings); err != nil {
		log.Warningf("ignoring %s: %s", SettingsName, err)
		return AppSettings{}, false
	}
	return settings, true
}

func (s *Store) SaveSettings(settings AppSettings) error {
	return s.write(SettingsName, settings)
}

// Capture records the view state of every document that has a path.
func Capture(session *editor.Session) OpenedFiles {
	files := OpenedFiles{}
	seen := make(map[string]bool)
	for _, d := range session.Documents() {
		if d.Path() == "" || seen[d.Path()] {
			continue
		}
		seen[d.Path()] = true
		files = append(files, Position{Path: d.Path(), Scroll: d.Scroll, Cursor: d.Cursor})
	}
	return files
}

// Restore reopens the recorded files and returns how many could be loaded.
func Restore(session *editor.Session, files OpenedFiles) int {
	loaded := 0
	for _, p := range files {
		if session.Load(p.Path, p.Scroll, p.Cursor) {
			loaded++
		} else {
			log.Infof("not restoring %s", p.Path)
		}
	}
	return loaded
}

// Select activates the document that was at index in the record files,
// looking it up by path since Restore skips files that fail to load.
func Select(session *editor.Session, files OpenedFiles, index int) bool {
	if index < 0 || index >= len(files) {
		return false
	}
	i := session.Find(files[index].Path)
	if i == -1 {
		return false
	}
	return session.Activate(i)
}

// CapturedIndex returns the position of the active document within the
// record made by Capture, or 0 when it is not part of it.
func CapturedIndex(session *editor.Session) int {
	active := session.Active()
	if active == nil {
		return 0
	}
	for i, p := range Capture(session) {
		if p.Path == active.Path() {
			return i
		}
	}
	return 0
}
