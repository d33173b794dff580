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
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/timburks/tabs/commander"
	"github.com/timburks/tabs/config"
	"github.com/timburks/tabs/editor"
	"github.com/timburks/tabs/screen"
	"github.com/timburks/tabs/state"
)

var rootCmd = &cobra.Command{
	Use:   "tabs [flags] [file...]",
	Short: "A tabbed terminal text editor",
	Long:  `tabs edits several files at once, one per tab, and reopens them where you left off.`,
	RunE:  runEditor,
}

func init() {
	rootCmd.PersistentFlags().String("config", config.DefaultPath(), "config file")
	rootCmd.Flags().String("state-dir", "", "directory holding the saved session (overrides config)")
	rootCmd.Flags().String("eval", "", "run a lisp script against the files and exit")
	rootCmd.Flags().Bool("no-restore", false, "don't reopen the files of the previous session")
	rootCmd.AddCommand(highlightCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) *config.Config {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return cfg
}

// openLog sends log output to a file; the terminal belongs to the screen.
func openLog(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0666)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	commonlog.Configure(1, &path)
	return f, nil
}

func runEditor(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	if dir, _ := cmd.Flags().GetString("state-dir"); dir != "" {
		cfg.StateDir = dir
	}
	script, _ := cmd.Flags().GetString("eval")
	noRestore, _ := cmd.Flags().GetBool("no-restore")

	f, err := openLog(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	// The editor manages all documents and text manipulation.
	e := editor.NewEditor()

	// The commander converts user inputs into commands for the editor.
	c := commander.NewCommander(e)
	c.SetTabWidth(cfg.TabWidth)

	store := state.NewStore(cfg.StateDir)
	var restored state.OpenedFiles
	if script == "" && !noRestore {
		if files, ok := store.LoadOpened(); ok && state.Restore(e.Session(), files) > 0 {
			restored = files
		}
	}
	for _, filename := range args {
		if err := openOrCreate(e, filename); err != nil {
			log.Printf("%s", err)
		}
	}
	if restored != nil && len(args) == 0 {
		if settings, ok := store.LoadSettings(); ok {
			state.Select(e.Session(), restored, settings.Index)
		}
	}

	if script != "" {
		// Run a script and exit.
		return c.ParseEvalFile(script)
	}

	if e.Session().Count() == 0 {
		e.NewDocument()
	}

	// Create a screen to manage display.
	s := screen.NewScreen(cfg)
	if s == nil {
		return fmt.Errorf("failed to open terminal")
	}
	size := s.Size()

	// Run the main event loop.
	for c.IsRunning() {
		s.Render(e, c)
		err = c.ProcessEvent(s.GetNextEvent())
		if err != nil {
			log.Output(1, err.Error())
		}
		size = s.Size()
	}
	s.Close()

	return saveSession(store, e, size.Cols, size.Rows)
}

// openOrCreate opens a file named on the command line, creating it if needed.
func openOrCreate(e *editor.Editor, filename string) error {
	fileinfo, err := os.Stat(filename)
	if err != nil {
		// try to create a file that doesn't exist
		file, err := os.Create(filename)
		if err != nil {
			return err
		}
		file.Close()
	} else if fileinfo.IsDir() {
		return fmt.Errorf("%s is a directory", filename)
	}
	return e.ReadFile(filename)
}

func saveSession(store *state.Store, e *editor.Editor, cols, rows int) error {
	if err := store.SaveOpened(state.Capture(e.Session())); err != nil {
		return fmt.Errorf("failed to save open files: %w", err)
	}
	settings := state.AppSettings{
		Size:  [2]int{cols, rows},
		Index: state.CapturedIndex(e.Session()),
	}
	if err := store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
