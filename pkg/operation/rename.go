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
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/renamer/pkg/log"
	"github.com/walteh/renamer/pkg/mapping"
	"github.com/walteh/renamer/pkg/scan"
	"github.com/walteh/renamer/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📋 Result is the outcome of a rename pass
type Result struct {
	Layout   Layout
	Entries  []status.EntryInfo // One per mapping row, in mapping order
	Missing  []string           // Sorted old names with no matching directory entry
	Shadowed []string           // Directory entries hidden by another entry with the same base name
	Summary  status.Summary
}

// HasFailures reports whether any copy or move returned an error
func (r *Result) HasFailures() bool {
	return r.Summary.Failed > 0
}

// MissingDiagnostic returns the message listing missing files, empty when none are missing
func (r *Result) MissingDiagnostic() string {
	if len(r.Missing) == 0 {
		return ""
	}
	return mapping.Plural(len(r.Missing), "Missing the following file: ", "Missing the following files: ") +
		mapping.JoinNames(r.Missing)
}

// 🏃 Rename runs the full pass. Mapping errors are returned before anything
// on disk changes. Per-entry problems never stop the loop; they end up on
// the Result.
func (op *operator) Rename(ctx context.Context) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("mapping", op.mapping).Str("dir", op.layout.Dir).Msg("starting rename")

	table, err := mapping.ParseFile(ctx, op.fs, op.mapping)
	if err != nil {
		return nil, errors.Errorf("parsing mapping file: %w", err)
	}

	if err := op.prepare(ctx); err != nil {
		return nil, err
	}

	idx, err := scan.Scan(ctx, op.fs, op.layout.Dir, op.scanOptions())
	if err != nil {
		return nil, errors.Errorf("scanning folder: %w", err)
	}
	logger.Debug().Strs("names", idx.Names()).Msg("folder indexed")

	tracker := op.tracker
	if tracker == nil {
		tracker = status.NewTracker(logger)
	}

	result, err := op.execute(ctx, table, idx, tracker)
	if err != nil {
		return result, err
	}

	if op.cfg.Report != "" {
		report := &status.Report{
			Time:        time.Now().UTC(),
			Dir:         op.layout.Dir,
			MappingFile: op.mapping,
			RenamedDir:  op.layout.RenamedDir,
			OriginalDir: op.layout.OriginalDir,
			Summary:     result.Summary,
			Entries:     result.Entries,
			Missing:     result.Missing,
		}
		if err := status.WriteReport(ctx, op.fs, op.cfg.Report, report); err != nil {
			return result, errors.Errorf("writing report: %w", err)
		}
	}

	return result, nil
}

// prepare creates both destination folders, leaving existing ones alone
func (op *operator) prepare(ctx context.Context) error {
	for _, dir := range []string{op.layout.RenamedDir, op.layout.OriginalDir} {
		if err := op.fs.MkdirAll(dir, 0755); err != nil {
			return errors.Errorf("creating %s: %w", dir, err)
		}
		zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("destination folder ready")
	}
	return nil
}

// execute walks the table in order against an index taken before the loop started
func (op *operator) execute(ctx context.Context, table *mapping.Table, idx *scan.Index, tracker *status.Tracker) (*Result, error) {
	entries := table.Entries()
	result := &Result{
		Layout:   op.layout,
		Shadowed: idx.Shadowed,
	}

	console := op.console
	if console == nil {
		console = log.FromContext(ctx)
	}

	tracker.StartOperation(ctx, len(entries))
	defer tracker.FinishOperation(ctx)

	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			result.Missing = sortedUnique(result.Missing)
			result.Entries = tracker.Entries()
			result.Summary = tracker.Summary()
			return result, errors.Errorf("rename interrupted after %d of %d entries: %w", i, len(entries), err)
		}

		info := op.processEntry(ctx, e, idx)
		if info.Missing {
			result.Missing = append(result.Missing, e.Old)
		}

		tracker.TrackEntry(ctx, info)
		if console != nil {
			console.LogEntry(ctx, info)
		}
		tracker.UpdateProgress(ctx, i+1)
	}

	result.Missing = sortedUnique(result.Missing)
	result.Entries = tracker.Entries()
	result.Summary = tracker.Summary()
	return result, nil
}

// processEntry copies then archives one file
func (op *operator) processEntry(ctx context.Context, e mapping.Entry, idx *scan.Index) status.EntryInfo {
	logger := zerolog.Ctx(ctx)
	info := status.EntryInfo{Old: e.Old, New: e.New}

	ext, ok := idx.Lookup(e.Old)
	if !ok {
		info.Missing = true
		logger.Debug().Str("name", e.Old).Msg("no file for mapping row")
		return info
	}
	info.Ext = ext

	paths := op.layout.pathsFor(e, ext)

	var err error
	info.Copy, err = copyFile(op.fs, paths.source, paths.renamed)
	if err != nil {
		info.Error = err.Error()
		logger.Error().Err(err).Str("source", paths.source).Str("destination", paths.renamed).Msg("copy failed")
		return info
	}

	info.Move, err = moveFile(op.fs, paths.source, paths.original)
	if err != nil {
		info.Error = err.Error()
		logger.Error().Err(err).Str("source", paths.source).Str("destination", paths.original).Msg("move failed")
	}

	return info
}
