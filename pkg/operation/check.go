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
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/renamer/pkg/mapping"
	"github.com/walteh/renamer/pkg/scan"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Step is one planned copy and archive
type Step struct {
	Old          string
	New          string
	Ext          string
	Source       string
	Renamed      string
	Original     string
	Folder       bool // Source is a folder, the copy would fail
	RenamedTaken bool // Renamed already exists, the copy would be skipped
	ArchiveTaken bool // Original already exists, the move would be skipped
}

// 🗺️ Plan is what Rename would do given the current folder contents
type Plan struct {
	Layout   Layout
	Steps    []Step
	Missing  []string
	Shadowed []string
}

// MissingDiagnostic returns the message listing missing files, empty when none are missing
func (p *Plan) MissingDiagnostic() string {
	r := Result{Missing: p.Missing}
	return r.MissingDiagnostic()
}

// 🔍 Check validates the mapping and scans the folder. Nothing is written.
func (op *operator) Check(ctx context.Context) (*Plan, error) {
	zerolog.Ctx(ctx).Debug().Str("mapping", op.mapping).Str("dir", op.layout.Dir).Msg("checking rename")

	table, err := mapping.ParseFile(ctx, op.fs, op.mapping)
	if err != nil {
		return nil, errors.Errorf("parsing mapping file: %w", err)
	}

	idx, err := scan.Scan(ctx, op.fs, op.layout.Dir, op.scanOptions())
	if err != nil {
		return nil, errors.Errorf("scanning folder: %w", err)
	}

	plan := &Plan{
		Layout:   op.layout,
		Shadowed: idx.Shadowed,
	}

	for _, e := range table.Entries() {
		ext, ok := idx.Lookup(e.Old)
		if !ok {
			plan.Missing = append(plan.Missing, e.Old)
			continue
		}

		paths := op.layout.pathsFor(e, ext)
		step := Step{
			Old:      e.Old,
			New:      e.New,
			Ext:      ext,
			Source:   paths.source,
			Renamed:  paths.renamed,
			Original: paths.original,
		}
		if step.Folder, err = op.isFolder(e.Old+ext, paths.source); err != nil {
			return nil, errors.Errorf("checking %s: %w", paths.source, err)
		}
		if step.RenamedTaken, err = afero.Exists(op.fs, paths.renamed); err != nil {
			return nil, errors.Errorf("checking %s: %w", paths.renamed, err)
		}
		if step.ArchiveTaken, err = afero.Exists(op.fs, paths.original); err != nil {
			return nil, errors.Errorf("checking %s: %w", paths.original, err)
		}
		plan.Steps = append(plan.Steps, step)
	}

	plan.Missing = sortedUnique(plan.Missing)
	return plan, nil
}

// scanOptions also lists the destination folders, which Rename creates before it scans
func (op *operator) scanOptions() scan.Options {
	return scan.Options{
		Ignore:  op.cfg.Ignore,
		Present: []string{op.cfg.RenamedDir, op.cfg.OriginalDir},
	}
}

func (op *operator) isFolder(name, path string) (bool, error) {
	if name == op.cfg.RenamedDir || name == op.cfg.OriginalDir {
		return true, nil
	}
	return afero.IsDir(op.fs, path)
}
