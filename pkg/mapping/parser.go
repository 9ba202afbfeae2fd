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
	"bufio"
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// maxLineSize bounds a single mapping row
const maxLineSize = 64 << 20

// 📂 ParseFile opens path on fsys and parses it as a mapping file
func ParseFile(ctx context.Context, fsys afero.Fs, path string) (*Table, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("parsing mapping file")

	f, err := fsys.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening mapping file: %w", err)
	}
	defer f.Close()

	return Parse(ctx, f)
}

// 📝 Parse reads tab-separated rows from r.
//
// The first malformed row stops parsing with a *FormatError. Duplicates are
// collected across the whole input and returned together as a
// *DuplicateError once the input is exhausted.
func Parse(ctx context.Context, r io.Reader) (*Table, error) {
	logger := zerolog.Ctx(ctx)

	c := newCollector()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	scanner.Split(scanLines)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Text()
		fields := strings.Split(strings.TrimRightFunc(raw, unicode.IsSpace), "\t")
		if len(fields) != 2 {
			logger.Debug().Int("line", line).Int("fields", len(fields)).Msg("malformed mapping row")
			return nil, &FormatError{Line: line, Fields: len(fields), Text: raw}
		}
		c.add(Entry{Old: fields[0], New: fields[1], Line: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Errorf("reading mapping file: %w", err)
	}

	table, err := c.finish()
	if err != nil {
		return nil, err
	}

	logger.Debug().Int("rows", line).Int("entries", table.Len()).Msg("parsed mapping file")
	return table, nil
}

// scanLines splits on "\n", "\r\n" and a lone "\r"
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if !atEOF {
			// a "\n" may follow in the next read
			return 0, nil, nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// collector accumulates rows and tracks duplicates per column
type collector struct {
	table   *Table
	seenOld map[string]struct{}
	seenNew map[string]struct{}
	dupOld  map[string]struct{}
	dupNew  map[string]struct{}
}

func newCollector() *collector {
	return &collector{
		table:   newTable(),
		seenOld: make(map[string]struct{}),
		seenNew: make(map[string]struct{}),
		dupOld:  make(map[string]struct{}),
		dupNew:  make(map[string]struct{}),
	}
}

// add keeps the row only when both names are new to their columns. Each name
// is marked seen on its first appearance even if its row is dropped.
func (c *collector) add(e Entry) {
	_, oldSeen := c.seenOld[e.Old]
	_, newSeen := c.seenNew[e.New]

	if !oldSeen && !newSeen {
		c.table.add(e)
	}

	if oldSeen {
		c.dupOld[e.Old] = struct{}{}
	} else {
		c.seenOld[e.Old] = struct{}{}
	}

	if newSeen {
		c.dupNew[e.New] = struct{}{}
	} else {
		c.seenNew[e.New] = struct{}{}
	}
}

func (c *collector) finish() (*Table, error) {
	if len(c.dupOld) == 0 && len(c.dupNew) == 0 {
		return c.table, nil
	}
	return nil, &DuplicateError{
		Old: sortedKeys(c.dupOld),
		New: sortedKeys(c.dupNew),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
