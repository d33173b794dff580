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
	"strings"
	"unicode"

	gott "github.com/timburks/tabs/types"
)

// A Span colors Length runes starting at Start.
type Span struct {
	Start  int
	Length int
	Class  gott.Class
}

// A Highlighter classifies the runs of characters in one line.
// Lines are independent: no state is carried from one line to the next,
// so strings spanning several lines are not recognized.
type Highlighter interface {
	HighlightLine(line string) []Span
}

// HighlighterFor picks a highlighter from the file extension.
func HighlighterFor(path string) Highlighter {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py", ".pyw":
		return NewPythonHighlighter()
	default:
		return &PlainHighlighter{}
	}
}

var pythonKeywords = []string{
	"False", "await", "else", "import", "pass",
	"None", "break", "except", "in", "raise",
	"True", "class", "finally", "is", "return",
	"and", "continue", "for", "lambda", "try",
	"as", "def", "from", "nonlocal", "while",
	"assert", "del", "global", "not", "with",
	"async", "elif", "if", "or", "yield",
}

var pythonBuiltins = []string{
	"abs", "aiter", "all", "anext", "any", "ascii", "bin",
	"bool", "breakpoint", "bytearray", "bytes", "callable", "chr", "classmethod",
	"compile", "complex", "delattr", "dict", "dir", "divmod", "enumerate",
	"eval", "exec", "filter", "float", "format", "frozenset", "getattr",
	"globals", "hasattr", "hash", "help", "hex", "id", "input",
	"int", "isinstance", "issubclass", "iter", "len", "list", "locals",
	"map", "max", "memoryview", "min", "next", "object", "oct",
	"open", "ord", "pow", "print", "property", "range", "repr",
	"reversed", "round", "set", "setattr", "slice", "sorted", "staticmethod",
	"str", "sum", "super", "tuple", "type", "vars", "zip",
}

// The PythonHighlighter highlights Python code.
type PythonHighlighter struct {
	language
}

func NewPythonHighlighter() *PythonHighlighter {
	h := &PythonHighlighter{}
	h.comment = '#'
	h.definition = "def"
	h.keywords = wordSet(pythonKeywords)
	h.builtins = wordSet(pythonBuiltins)
	h.builtins["self"] = true
	h.builtins["cls"] = true
	return h
}

func (h *PythonHighlighter) HighlightLine(line string) []Span {
	return h.scan([]rune(line))
}

// The PlainHighlighter only marks strings and numbers.
type PlainHighlighter struct {
	language
}

func (h *PlainHighlighter) HighlightLine(line string) []Span {
	return h.scan([]rune(line))
}

// language holds the static word sets of a highlighter.
// The zero value knows no keywords and no comment marker.
type language struct {
	comment    rune // 0 for none
	definition string
	keywords   map[string]bool
	builtins   map[string]bool
}

func wordSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// lineScan is the state carried while scanning a single line.
type lineScan struct {
	spans       []Span
	word        []rune
	wordStart   int
	lastWord    string
	quote       rune // quote that opened the current string, 0 outside strings
	stringStart int
}

func isQuote(c rune) bool {
	return c == '"' || c == '\''
}

func isWordChar(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}

func isDunder(word string) bool {
	return len(word) >= 4 && strings.HasPrefix(word, "__") && strings.HasSuffix(word, "__")
}

func isNumber(word string) bool {
	for _, c := range word {
		if !unicode.IsDigit(c) {
			return false
		}
	}
	return word != ""
}

func (l *language) scan(line []rune) []Span {
	s := &lineScan{}
	// a trailing space flushes the final word
	padded := append(append(make([]rune, 0, len(line)+1), line...), ' ')
	for i, c := range padded {
		if s.quote != 0 {
			if c == s.quote {
				s.emit(s.stringStart, i-s.stringStart+1, gott.ClassString)
				s.quote = 0
			}
			continue
		}
		switch {
		case l.comment != 0 && c == l.comment:
			l.flush(s)
			s.emit(i, len(line)-i, gott.ClassComment)
			return s.spans
		case isQuote(c):
			l.flush(s)
			s.quote = c
			s.stringStart = i
		case isWordChar(c):
			if len(s.word) == 0 {
				s.wordStart = i
			}
			s.word = append(s.word, c)
		default:
			l.flush(s)
		}
	}
	if s.quote != 0 {
		s.emit(s.stringStart, len(line)-s.stringStart, gott.ClassString)
	}
	return s.spans
}

// flush classifies the pending word, if any.
func (l *language) flush(s *lineScan) {
	if len(s.word) == 0 {
		return
	}
	word := string(s.word)
	class := l.classify(word, s.lastWord)
	if class != gott.ClassDefault {
		s.emit(s.wordStart, len(s.word), class)
	}
	s.lastWord = word
	s.word = s.word[:0]
}

func (l *language) classify(word, previous string) gott.Class {
	switch {
	case l.definition != "" && previous == l.definition:
		if isDunder(word) {
			return gott.ClassSpecialName
		}
		return gott.ClassDefinitionName
	case l.keywords[word]:
		return gott.ClassKeyword
	case l.builtins[word] || (l.builtins != nil && isDunder(word)):
		return gott.ClassBuiltin
	case isNumber(word):
		return gott.ClassNumber
	default:
		return gott.ClassDefault
	}
}

func (s *lineScan) emit(start, length int, class gott.Class) {
	if length <= 0 {
		return
	}
	s.spans = append(s.spans, Span{Start: start, Length: length, Class: class})
}

// Colors expands spans into one class per rune of line.
func Colors(line string, spans []Span) []gott.Class {
	n := len([]rune(line))
	colors := make([]gott.Class, n)
	for _, span := range spans {
		for k := span.Start; k < span.Start+span.Length && k < n; k++ {
			if k >= 0 {
				colors[k] = span.Class
			}
		}
	}
	return colors
}
