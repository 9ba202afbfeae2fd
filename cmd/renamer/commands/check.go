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

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/renamer/cmd/renamer/opts"
	"github.com/walteh/renamer/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <mapping-file> <folder>",
		Short: "Validate a mapping file and show what rename would do",
		Long: `Check parses the mapping file and scans the folder without touching any file.
It will:
1. Report format errors and duplicate names
2. List each planned copy and archive, flagging destinations that already exist
3. List the mapping rows whose file was not found`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			mappingFile, dir := args[0], args[1]

			if err := validateArgs(o, mappingFile, dir); err != nil {
				return err
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

			if !o.Quiet {
				o.UserLogger.LogStateChange(fmt.Sprintf("checking %s against %s", mappingFile, dir))
			}

			plan, err := op.Check(ctx)
			if err != nil {
				return reportMappingError(out, err)
			}

			if len(plan.Steps) > 0 && !o.Quiet {
				data := pterm.TableData{{"file", "renamed copy", "archive"}}
				for _, s := range plan.Steps {
					data = append(data, []string{
						source(s),
						destination(s.New+s.Ext, s.RenamedTaken),
						destination(s.Old+s.Ext, s.ArchiveTaken),
					})
				}
				if err := pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(out).Render(); err != nil {
					return errors.Errorf("rendering plan: %w", err)
				}
			}

			if msg := plan.MissingDiagnostic(); msg != "" {
				fmt.Fprintln(out, msg)
			}

			if !o.Quiet {
				o.UserLogger.LogValidation(true, fmt.Sprintf("mapping file is valid, %d of %d rows have a file",
					len(plan.Steps), len(plan.Steps)+len(plan.Missing)), nil)
			}
			return nil
		},
	}

	return cmd
}

func destination(name string, taken bool) string {
	if taken {
		return name + " (exists, skipped)"
	}
	return name
}

func source(s operation.Step) string {
	if s.Folder {
		return s.Old + s.Ext + " (folder, copy fails)"
	}
	return s.Old + s.Ext
}
