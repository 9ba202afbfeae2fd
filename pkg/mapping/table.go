// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mapping

import (
	"sort"
	"strings"
)

// 📄 Entry is a single row of a mapping file
type Entry struct {
	Old  string // Base name of the existing file, without extension
	New  string // Base name the copy should receive, without extension
	Line int    // 1-based line the row was read from
}

// 📚 Table maps existing base names to new base names.
// Old names are unique, new names are unique, and iteration follows the
// order rows first appeared in the file.
type Table struct {
	entries []Entry
	byOld   map[string]int
}

func newTable() *Table {
	return &Table{
		byOld: make(map[string]int),
	}
}

// NewTable builds a table from entries that are already known to be unique.
// It returns a DuplicateError if they are not.
func NewTable(entries ...Entry) (*Table, error) {
	c := newCollector()
	for _, e := range entries {
		c.add(e)
	}
	return c.finish()
}

func (t *Table) add(e Entry) {
	t.byOld[e.Old] = len(t.entries)
	t.entries = append(t.entries, e)
}

// Len returns the number of rows in the table
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns the rows in first-seen order
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Lookup returns the new name for old
func (t *Table) Lookup(old string) (string, bool) {
	i, ok := t.byOld[old]
	if !ok {
		return "", false
	}
	return t.entries[i].New, true
}

// JoinNames sorts names and joins them with ", "
func JoinNames(names []string) string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}

// Plural picks the singular or plural form for n names
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
