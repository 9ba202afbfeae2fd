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

package commands

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/renamer/cmd/renamer/opts"
	"github.com/walteh/renamer/pkg/log"
	"github.com/walteh/renamer/pkg/mapping"
	"github.com/walteh/renamer/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// reportedError marks an error whose diagnostic was already printed
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already shown to the user
func IsReported(err error) bool {
	var re *reportedError
	return errors.As(err, &re)
}

// reportMappingError prints the diagnostic of a mapping error and marks it reported
func reportMappingError(out io.Writer, err error) error {
	var rep mapping.Reportable
	if errors.As(err, &rep) {
		fmt.Fprintln(out, rep.Diagnostic())
		return &reportedError{err: err}
	}
	return err
}

// validateArgs applies the mapping suffix rule and checks the folder
func validateArgs(o *opts.RootOpts, mappingFile, dir string) error {
	if err := o.Config.CheckMappingPath(mappingFile); err != nil {
		return err
	}
	isDir, err := afero.IsDir(o.Fs, dir)
	if err != nil {
		return errors.Errorf("checking folder: %w", err)
	}
	if !isDir {
		return errors.Errorf("not a folder: %s", dir)
	}
	return nil
}

// NewRenameCmd creates a new rename command
func NewRenameCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <mapping-file> <folder>",
		Short: "Rename files in a folder using a mapping file",
		Long: `Rename copies every file listed in the mapping file into a renamed
subfolder under its new name, and moves the original into an archive subfolder.
It will:
1. Validate the mapping file (two tab-separated columns, no duplicate names)
2. Scan the folder once
3. Copy each match to renamed_files/<new name><ext>
4. Move each original to original_files/<old name><ext>
5. List the mapping rows whose file was not found`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			mappingFile, dir := args[0], args[1]

			if err := validateArgs(o, mappingFile, dir); err != nil {
				return err
			}

			var console *log.Logger
			if !o.Quiet {
				console = log.NewWithZerolog(out, *zerolog.Ctx(ctx))
				ctx = log.NewContext(ctx, console)
			}

			op, err := operation.New(operation.Options{
				Fs:          o.Fs,
				MappingFile: mappingFile,
				Dir:         dir,
				Config:      o.Config,
			})
			if err != nil {
				return errors.Errorf("creating operator: %w", err)
			}

			if console != nil {
				console.Header("renaming files in " + dir)
			}

			result, err := op.Rename(ctx)
			// a run that fails after the loop still lists its missing files
			if result != nil {
				if msg := result.MissingDiagnostic(); msg != "" {
					fmt.Fprintln(out, msg)
				}
			}
			if err != nil {
				return reportMappingError(out, err)
			}

			if console != nil {
				s := result.Summary
				console.LogNewline()
				console.Successf("%d copied, %d archived, %d skipped, %d missing",
					s.Copied, s.Archived, s.SkippedCopy+s.SkippedMove, s.Missing)
				for _, name := range result.Shadowed {
					console.Warningf("%s was hidden by another file with the same name", name)
				}
				for _, e := range result.Entries {
					if e.Error != "" {
						console.Error(fmt.Sprintf("%s%s: %s", e.Old, e.Ext, e.Error))
					}
				}
			}

			if result.HasFailures() {
				return errors.Errorf("%d of %d entries failed", result.Summary.Failed, result.Summary.Total)
			}
			return nil
		},
	}

	return cmd
}
