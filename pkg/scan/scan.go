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

package scan

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// MatchAll is the wildcard applied to every directory entry
const MatchAll = "*"

// 🔧 Options controls which directory entries are indexed
type Options struct {
	Ignore  []string // doublestar patterns matched against entry names
	Present []string // entry names indexed as if listed, for folders a run creates before scanning
}

// 🗂️ Index maps base file names to their extension at scan time
type Index struct {
	Dir      string            // Directory that was scanned
	exts     map[string]string // base name -> extension (leading dot included)
	names    []string          // base names in scan order
	Shadowed []string          // entry names replaced by a later entry with the same base
}

// Lookup returns the extension recorded for base
func (idx *Index) Lookup(base string) (string, bool) {
	ext, ok := idx.exts[base]
	return ext, ok
}

// Len returns the number of indexed base names
func (idx *Index) Len() int {
	return len(idx.exts)
}

// Names returns the indexed base names in scan order
func (idx *Index) Names() []string {
	out := make([]string, len(idx.names))
	copy(out, idx.names)
	return out
}

// SplitName splits a file name into base and extension
func SplitName(name string) (string, string) {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext), ext
}

// 🔍 Scan lists dir once, without recursion, and indexes every entry the
// wildcard matches. Directories are indexed like files.
func Scan(ctx context.Context, fsys afero.Fs, dir string, opts Options) (*Index, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("dir", dir).Msg("scanning directory")

	for _, pattern := range opts.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Errorf("reading directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(infos)+len(opts.Present))
	listed := make(map[string]struct{}, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
		listed[info.Name()] = struct{}{}
	}
	for _, name := range opts.Present {
		if _, ok := listed[name]; !ok {
			names = append(names, name)
			listed[name] = struct{}{}
		}
	}
	sort.Strings(names)

	idx := &Index{
		Dir:  dir,
		exts: make(map[string]string, len(names)),
	}
	owners := make(map[string]string, len(names))

	for _, name := range names {
		if !matches(name) {
			continue
		}
		if ignored(ctx, name, opts.Ignore) {
			continue
		}

		base, ext := SplitName(name)
		if prev, ok := owners[base]; ok {
			logger.Warn().Str("entry", name).Str("shadowed", prev).Msg("duplicate base name in directory")
			idx.Shadowed = append(idx.Shadowed, prev)
		} else {
			idx.names = append(idx.names, base)
		}
		owners[base] = name
		idx.exts[base] = ext
	}

	logger.Debug().Int("entries", len(names)).Int("indexed", idx.Len()).Msg("scanned directory")
	return idx, nil
}

// matches applies the wildcard the way a shell glob does, so hidden entries are skipped
func matches(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	ok, err := doublestar.Match(MatchAll, name)
	return err == nil && ok
}

func ignored(ctx context.Context, name string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("name", name).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			zerolog.Ctx(ctx).Debug().Str("name", name).Str("pattern", pattern).Msg("entry ignored by pattern")
			return true
		}
	}
	return false
}
