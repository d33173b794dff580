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
	"go/format"
	"strings"
)

var ErrNotGo = errors.New("not a Go file")

// Gofmt formats the Go source of a document named filename.
func Gofmt(filename string, input []byte) ([]byte, error) {
	if !strings.HasSuffix(filename, ".go") {
		return nil, ErrNotGo
	}
	out, err := format.Source(input)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return out, nil
}
