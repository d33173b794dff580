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

// Package editor implements the document model of tabs.
// A Session holds the open documents, one per tab, and tracks
// which of them have unsaved changes. The Editor applies operations
// to the active document; operations return their inverses so that
// every change can be undone.
// Highlighters assign a highlight class to the characters of a line.
package editor
