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

package operation

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
	"github.com/walteh/renamer/pkg/mapping"
	"github.com/walteh/renamer/pkg/status"
	"gitlab.com/tozd/go/errors"
)

type entryPaths struct {
	source   string
	renamed  string
	original string
}

func (l Layout) pathsFor(e mapping.Entry, ext string) entryPaths {
	return entryPaths{
		source:   filepath.Join(l.Dir, e.Old+ext),
		renamed:  filepath.Join(l.RenamedDir, e.New+ext),
		original: filepath.Join(l.OriginalDir, e.Old+ext),
	}
}

// copyFile copies src to dst without ever replacing dst
func copyFile(fsys afero.Fs, src, dst string) (status.Outcome, error) {
	in, err := fsys.Open(src)
	if err != nil {
		return status.Failed, errors.Errorf("opening source file: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return status.Failed, errors.Errorf("reading source file info: %w", err)
	}
	if info.IsDir() {
		return status.Failed, errors.Errorf("source is a directory: %s", src)
	}

	out, err := fsys.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		return status.SkippedExists, nil
	}
	if err != nil {
		return status.Failed, errors.Errorf("creating destination file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		fsys.Remove(dst)
		return status.Failed, errors.Errorf("copying file content: %w", err)
	}
	if err := out.Close(); err != nil {
		fsys.Remove(dst)
		return status.Failed, errors.Errorf("closing destination file: %w", err)
	}

	return status.Done, nil
}

// moveFile renames src to dst unless dst already exists
func moveFile(fsys afero.Fs, src, dst string) (status.Outcome, error) {
	exists, err := afero.Exists(fsys, dst)
	if err != nil {
		return status.Failed, errors.Errorf("checking destination: %w", err)
	}
	if exists {
		return status.SkippedExists, nil
	}

	if err := fsys.Rename(src, dst); err != nil {
		return status.Failed, errors.Errorf("moving file: %w", err)
	}
	return status.Done, nil
}

func sortedUnique(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)
	out := names[:1]
	for _, n := range names[1:] {
		if n != out[len(out)-1] {
			out = append(out, n)
		}
	}
	return out
}
