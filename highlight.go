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
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/timburks/tabs/editor"
	gott "github.com/timburks/tabs/types"
)

var highlightCmd = &cobra.Command{
	Use:   "highlight [flags] file",
	Short: "Print a file with syntax highlighting",
	Args:  cobra.ExactArgs(1),
	RunE:  runHighlight,
}

func init() {
	highlightCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	highlightCmd.Flags().String("color", "auto", "colorize output (auto|on|off)")
}

var classColors = map[gott.Class]*color.Color{
	gott.ClassKeyword:        color.New(color.FgYellow, color.Bold),
	gott.ClassBuiltin:        color.New(color.FgMagenta),
	gott.ClassSpecialName:    color.New(color.FgHiMagenta),
	gott.ClassDefinitionName: color.New(color.FgCyan, color.Bold),
	gott.ClassString:         color.New(color.FgGreen),
	gott.ClassComment:        color.New(color.FgRed),
	gott.ClassNumber:         color.New(color.FgCyan),
}

type lineSpans struct {
	Line  int        `json:"line"`
	Spans []spanJSON `json:"spans"`
}

type spanJSON struct {
	Start  int    `json:"start"`
	Length int    `json:"length"`
	Class  string `json:"class"`
}

func runHighlight(cmd *cobra.Command, args []string) error {
	path := args[0]
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	format, _ := cmd.Flags().GetString("format")
	colorFlag, _ := cmd.Flags().GetString("color")

	h := editor.HighlighterFor(path)
	lines := editor.Lines([]rune(string(b)))
	switch format {
	case "pretty":
		color.NoColor = !(colorFlag == "on" || (colorFlag == "auto" && term.IsTerminal(int(os.Stdout.Fd()))))
		return printHighlighted(os.Stdout, h, lines)
	case "json":
		return printSpans(os.Stdout, h, lines)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func printHighlighted(w io.Writer, h editor.Highlighter, lines []string) error {
	for i, line := range lines {
		runes := []rune(line)
		pos := 0
		for _, span := range h.HighlightLine(line) {
			if span.Start > pos {
				fmt.Fprint(w, string(runes[pos:span.Start]))
			}
			text := string(runes[span.Start : span.Start+span.Length])
			if c, ok := classColors[span.Class]; ok {
				c.Fprint(w, text)
			} else {
				fmt.Fprint(w, text)
			}
			pos = span.Start + span.Length
		}
		fmt.Fprint(w, string(runes[pos:]))
		if i < len(lines)-1 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}
	return nil
}

func printSpans(w io.Writer, h editor.Highlighter, lines []string) error {
	out := make([]lineSpans, 0, len(lines))
	for i, line := range lines {
		spans := h.HighlightLine(line)
		if len(spans) == 0 {
			continue
		}
		ls := lineSpans{Line: i + 1}
		for _, s := range spans {
			ls.Spans = append(ls.Spans, spanJSON{Start: s.Start, Length: s.Length, Class: s.Class.String()})
		}
		out = append(out, ls)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
