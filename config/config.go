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
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	gott "github.com/timburks/tabs/types"
)

// FileName is the config file looked up in the home directory.
const FileName = ".tabs.toml"

type Config struct {
	StateDir string            `toml:"state_dir"`
	LogFile  string            `toml:"log_file"`
	TabWidth int               `toml:"tab_width"`
	Colors   map[string]uint16 `toml:"colors"` // 256-color codes by highlight class name
}

// Xterm 256-color codes, offset by one as termbox expects in Output256 mode.
var defaultColors = map[gott.Class]gott.Color{
	gott.ClassDefault:        0x10,
	gott.ClassKeyword:        0xd1,
	gott.ClassBuiltin:        0xb2,
	gott.ClassSpecialName:    0xb2,
	gott.ClassDefinitionName: 0x34,
	gott.ClassString:         0x4d,
	gott.ClassComment:        0xcc,
	gott.ClassNumber:         0x34,
}

func home() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return dir
}

func Default() *Config {
	return &Config{
		StateDir: filepath.Join(home(), ".tabs"),
		LogFile:  filepath.Join(home(), ".tabslog"),
		TabWidth: 4,
	}
}

// DefaultPath returns the config file in the home directory.
func DefaultPath() string {
	return filepath.Join(home(), FileName)
}

// Load reads a config file over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Default(), fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.TabWidth < 1 || c.TabWidth > 16 {
		return fmt.Errorf("tab_width must be between 1 and 16, got %d", c.TabWidth)
	}
	for name := range c.Colors {
		if _, ok := gott.ClassNamed(name); !ok {
			return fmt.Errorf("unknown highlight class %q", name)
		}
	}
	return nil
}

// Color returns the display color of a highlight class.
func (c *Config) Color(class gott.Class) gott.Color {
	if code, ok := c.Colors[class.String()]; ok {
		return gott.Color(code) + 1
	}
	return defaultColors[class]
}
