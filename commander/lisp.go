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
	"log"
	"os"
	"strings"

	"github.com/steelseries/golisp"

	"github.com/timburks/tabs/operations"
)

// golisp primitives are global, so they act on the most recent commander.
var current *Commander

func bindLisp(c *Commander) {
	current = c
}

type primitive func(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error)

func init() {
	primitives := []struct {
		name  string
		count string
		impl  primitive
	}{
		{"open", "1", openImpl},
		{"new", "0", newImpl},
		{"save", "0", saveImpl},
		{"save-as", "1", saveAsImpl},
		{"close", "0", closeImpl},
		{"tab", "1", tabImpl},
		{"tab-count", "0", tabCountImpl},
		{"active-tab", "0", activeTabImpl},
		{"unsaved-count", "0", unsavedCountImpl},
		{"find", "1", findImpl},
		{"replace-all", "2", replaceAllImpl},
		{"insert", "1", insertImpl},
		{"text", "0", textImpl},
		{"undo", "0", undoImpl},
		{"quit", "0", quitImpl},
	}
	for _, p := range primitives {
		golisp.MakePrimitiveFunction(p.name, p.count, p.impl)
	}
}

func stringArg(args *golisp.Data, name string) (string, error) {
	val := golisp.Car(args)
	if !golisp.StringP(val) {
		return "", fmt.Errorf("%s requires a string argument", name)
	}
	return golisp.StringValue(val), nil
}

func openImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	path, err := stringArg(args, "open")
	if err != nil {
		return nil, err
	}
	return golisp.BooleanWithValue(current.editor.ReadFile(path) == nil), nil
}

func newImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	current.editor.NewDocument()
	return golisp.IntegerWithValue(int64(current.editor.Session().ActiveIndex() + 1)), nil
}

func saveImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if err := current.editor.Save(); err != nil {
		return nil, err
	}
	return golisp.BooleanWithValue(true), nil
}

func saveAsImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	path, err := stringArg(args, "save-as")
	if err != nil {
		return nil, err
	}
	// scripts cannot answer the overwrite question, so they always overwrite
	if err := current.editor.SaveAs(path, true); err != nil {
		return nil, err
	}
	return golisp.BooleanWithValue(true), nil
}

func closeImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	return golisp.BooleanWithValue(current.editor.CloseActive(false) == nil), nil
}

func tabImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	val := golisp.Car(args)
	if !golisp.IntegerP(val) {
		return nil, errors.New("tab requires an integer argument")
	}
	n := int(golisp.IntegerValue(val))
	return golisp.BooleanWithValue(current.editor.SelectDocument(n - 1)), nil
}

func tabCountImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	return golisp.IntegerWithValue(int64(current.editor.Session().Count())), nil
}

func activeTabImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	return golisp.IntegerWithValue(int64(current.editor.Session().ActiveIndex() + 1)), nil
}

func unsavedCountImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	return golisp.IntegerWithValue(int64(current.editor.Session().UnsavedCount())), nil
}

func findImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	text, err := stringArg(args, "find")
	if err != nil {
		return nil, err
	}
	current.findText = text
	return golisp.BooleanWithValue(current.editor.FindNext(text)), nil
}

func replaceAllImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	old, err := stringArg(args, "replace-all")
	if err != nil {
		return nil, err
	}
	replacement, err := stringArg(golisp.Cdr(args), "replace-all")
	if err != nil {
		return nil, err
	}
	return golisp.IntegerWithValue(int64(current.replaceAll(old, replacement))), nil
}

func insertImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	text, err := stringArg(args, "insert")
	if err != nil {
		return nil, err
	}
	if current.editor.Active() == nil {
		return nil, errors.New("no document is open")
	}
	current.editor.Perform(&operations.Insert{Offset: current.editor.GetCursor(), Text: text})
	return golisp.BooleanWithValue(true), nil
}

func textImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	return golisp.StringWithValue(current.editor.GetText()), nil
}

func undoImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	return golisp.BooleanWithValue(current.editor.PerformUndo()), nil
}

func quitImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	current.quit(true)
	return golisp.BooleanWithValue(true), nil
}

// parseEval evaluates one expression and returns its printed value or error.
func (c *Commander) parseEval(command string) string {
	bindLisp(c)
	value, err := golisp.ParseAndEval(command)
	if err != nil {
		log.Printf("ERR %+v", err)
		return err.Error()
	}
	return golisp.String(value)
}

// ParseEvalFile evaluates every expression in a script file.
func (c *Commander) ParseEvalFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	for _, expr := range splitExpressions(string(b)) {
		bindLisp(c)
		if _, err := golisp.ParseAndEval(expr); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// splitExpressions splits source into its top-level expressions,
// skipping ; comments and respecting string literals.
func splitExpressions(source string) []string {
	var exprs []string
	var buf strings.Builder
	depth := 0
	inString := false
	escaped := false
	inComment := false
	for _, ch := range source {
		if inComment {
			if ch == '\n' {
				inComment = false
			}
			continue
		}
		if inString {
			buf.WriteRune(ch)
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case ';':
			inComment = true
			continue
		case '"':
			inString = true
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 && buf.Len() == 0 && (ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r') {
			continue
		}
		buf.WriteRune(ch)
		if depth <= 0 && (ch == ')' || ch == ' ' || ch == '\n') {
			if expr := strings.TrimSpace(buf.String()); expr != "" {
				exprs = append(exprs, expr)
			}
			buf.Reset()
			depth = 0
		}
	}
	if expr := strings.TrimSpace(buf.String()); expr != "" {
		exprs = append(exprs, expr)
	}
	return exprs
}
