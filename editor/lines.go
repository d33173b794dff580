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
	"strings"

	"github.com/mattn/go-runewidth"

	gott "github.com/timburks/tabs/types"
)

// Lines splits text into rows. Text always has at least one row.
func Lines(text []rune) []string {
	return strings.Split(string(text), "\n")
}

// OffsetToPoint converts a rune offset into a row and column.
func OffsetToPoint(text []rune, offset int) gott.Point {
	offset = clipToRange(offset, 0, len(text))
	var p gott.Point
	for _, c := range text[:offset] {
		if c == '\n' {
			p.Row++
			p.Col = 0
		} else {
			p.Col++
		}
	}
	return p
}

// PointToOffset converts a row and column into a rune offset.
// Columns past the end of a row land at the end of that row.
func PointToOffset(text []rune, p gott.Point) int {
	if p.Row < 0 {
		return 0
	}
	row := 0
	start := 0
	for i, c := range text {
		if row == p.Row {
			break
		}
		if c == '\n' {
			row++
			start = i + 1
		}
	}
	if row < p.Row {
		return len(text)
	}
	end := start
	for end < len(text) && text[end] != '\n' {
		end++
	}
	return clipToRange(start+p.Col, start, end)
}

// RowCount returns the number of rows in text.
func RowCount(text []rune) int {
	n := 1
	for _, c := range text {
		if c == '\n' {
			n++
		}
	}
	return n
}

// RowLength returns the number of runes in a row.
func RowLength(text []rune, row int) int {
	start := PointToOffset(text, gott.Point{Row: row, Col: 0})
	end := start
	for end < len(text) && text[end] != '\n' {
		end++
	}
	return end - start
}

// CellWidth returns the number of screen cells r takes when drawn at
// display column column. Tabs run to the next multiple of tabWidth.
func CellWidth(r rune, column int, tabWidth int) int {
	if r == '\t' {
		if tabWidth < 1 {
			tabWidth = 1
		}
		return tabWidth - column%tabWidth
	}
	return max(runewidth.RuneWidth(r), 1)
}

// DisplayColumn returns the display column of rune col in line.
func DisplayColumn(line []rune, col int, tabWidth int) int {
	column := 0
	for _, r := range line[:clipToRange(col, 0, len(line))] {
		column += CellWidth(r, column, tabWidth)
	}
	return column
}
