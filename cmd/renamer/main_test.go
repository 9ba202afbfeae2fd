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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/renamer/cmd/renamer/commands"
	"github.com/walteh/renamer/pkg/mapping"
)

// runCmd executes the root command against fsys and returns stdout
func runCmd(t *testing.T, fsys afero.Fs, args ...string) (string, error) {
	t.Helper()

	color.NoColor = true
	pterm.DisableStyling()
	t.Cleanup(func() {
		color.NoColor = false
		pterm.EnableStyling()
	})

	out := &bytes.Buffer{}
	cmd := newRootCmd(fsys, io.Discard)
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func workspace(t *testing.T, mappingContent string, files ...string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/work", 0755), "creating work dir should succeed")
	require.NoError(t, afero.WriteFile(fsys, "/in/names.tsv", []byte(mappingContent), 0644), "writing mapping should succeed")
	for _, f := range files {
		require.NoError(t, fsys.MkdirAll(filepath.Dir(f), 0755), "creating parent should succeed")
		require.NoError(t, afero.WriteFile(fsys, f, []byte(filepath.Base(f)), 0644), "writing %s should succeed", f)
	}
	return fsys
}

func exists(t *testing.T, fsys afero.Fs, path string) bool {
	t.Helper()
	ok, err := afero.Exists(fsys, path)
	require.NoError(t, err, "stat %s should succeed", path)
	return ok
}

func TestRenameCommand(t *testing.T) {
	fsys := workspace(t, "X\tY\n", "/work/X.txt")

	out, err := runCmd(t, fsys, "rename", "/in/names.tsv", "/work")
	require.NoError(t, err, "rename should succeed")

	assert.True(t, exists(t, fsys, "/work/renamed_files/Y.txt"), "renamed copy should exist")
	assert.True(t, exists(t, fsys, "/work/original_files/X.txt"), "original should be archived")
	assert.False(t, exists(t, fsys, "/work/X.txt"), "source should be moved")

	assert.Contains(t, out, "renamer • renaming files in /work", "header should be printed")
	assert.Contains(t, out, "✓ X.txt", "entry line should be printed")
	assert.Contains(t, out, "1 copied, 1 archived, 0 skipped, 0 missing", "summary should be printed")
}

func TestRenameCommandDiagnostics(t *testing.T) {
	tests := []struct {
		name       string
		mapping    string
		files      []string
		wantOut    string
		wantErr    bool
		wantReport bool
	}{
		{
			name:    "missing_file",
			mapping: "X\tY\nZ\tW\n",
			files:   []string{"/work/X.txt"},
			wantOut: "Missing the following file: Z\n",
		},
		{
			name:    "several_missing",
			mapping: "b\t1\na\t2\n",
			wantOut: "Missing the following files: a, b\n",
		},
		{
			name:       "duplicate_names",
			mapping:    "X\tY\nX\tZ\nA\tZ\n",
			files:      []string{"/work/X.txt"},
			wantOut:    "Duplicate entry found in the existing name column: X\nDuplicate entry found in the new name column: Z\nPlease fix your input sheet\n",
			wantErr:    true,
			wantReport: true,
		},
		{
			name:       "malformed_row",
			mapping:    "X\tY\njust one column\n",
			files:      []string{"/work/X.txt"},
			wantOut:    mapping.FormatDiagnostic + "\n",
			wantErr:    true,
			wantReport: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := workspace(t, tt.mapping, tt.files...)

			out, err := runCmd(t, fsys, "rename", "--quiet", "/in/names.tsv", "/work")
			assert.Equal(t, tt.wantOut, out, "stdout should hold only the diagnostic")
			if !tt.wantErr {
				require.NoError(t, err, "rename should succeed")
				return
			}
			require.Error(t, err, "rename should fail")
			assert.Equal(t, tt.wantReport, commands.IsReported(err), "reported flag should match")
			for _, f := range tt.files {
				assert.True(t, exists(t, fsys, f), "%s should be untouched", f)
			}
			assert.False(t, exists(t, fsys, "/work/renamed_files"), "no folder should be created")
		})
	}
}

func TestRenameCommandArguments(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errContains string
	}{
		{name: "wrong_suffix", args: []string{"rename", "/in/names.csv", "/work"}, errContains: "Your file must have a .tsv extension"},
		{name: "not_a_folder", args: []string{"rename", "/in/names.tsv", "/in/names.tsv"}, errContains: "not a folder"},
		{name: "missing_folder", args: []string{"rename", "/in/names.tsv", "/nowhere"}, errContains: "checking folder"},
		{name: "one_argument", args: []string{"rename", "/in/names.tsv"}, errContains: "accepts 2 arg(s)"},
		{name: "explicit_config_missing", args: []string{"rename", "-c", "/etc/renamer.yaml", "/in/names.tsv", "/work"}, errContains: "loading config"},
		{name: "same_folders", args: []string{"rename", "--renamed-dir", "x", "--original-dir", "x", "/in/names.tsv", "/work"}, errContains: "must differ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := workspace(t, "X\tY\n", "/work/X.txt")

			_, err := runCmd(t, fsys, tt.args...)
			require.Error(t, err, "command should fail")
			assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
			assert.False(t, commands.IsReported(err), "argument errors are left to main")
			assert.True(t, exists(t, fsys, "/work/X.txt"), "source should be untouched")
		})
	}
}

func TestRenameCommandFailedEntry(t *testing.T) {
	fsys := workspace(t, "photos\tpictures\nX\tY\n", "/work/X.txt", "/work/photos/a.jpg")

	out, err := runCmd(t, fsys, "rename", "/in/names.tsv", "/work")
	require.Error(t, err, "a failed entry should fail the command")
	assert.Contains(t, err.Error(), "1 of 2 entries failed", "error should count failures")
	assert.False(t, commands.IsReported(err), "failure count is left to main")
	assert.Contains(t, out, "❌ photos: ", "failed entry should be listed with its error")
	assert.True(t, exists(t, fsys, "/work/renamed_files/Y.txt"), "other entries should still run")
}

func TestRenameCommandListsMissingWhenReportFails(t *testing.T) {
	root := t.TempDir()
	work := filepath.Join(root, "work")
	names := filepath.Join(root, "names.tsv")
	require.NoError(t, os.MkdirAll(work, 0o755), "creating work dir should succeed")
	require.NoError(t, os.WriteFile(names, []byte("X\tY\nZ\tW\n"), 0o644), "writing mapping should succeed")
	require.NoError(t, os.WriteFile(filepath.Join(work, "X.txt"), []byte("x"), 0o644), "writing file should succeed")

	// the report's parent is a regular file, so the write fails after the loop
	report := filepath.Join(names, "run.json")

	out, err := runCmd(t, afero.NewOsFs(), "rename", "-q", "--report", report, names, work)
	require.Error(t, err, "report failure should fail the command")
	assert.Contains(t, err.Error(), "writing report", "error should name the report")
	assert.Equal(t, "Missing the following file: Z\n", out, "missing files should still be listed")

	_, statErr := os.Stat(filepath.Join(work, "original_files", "X.txt"))
	assert.NoError(t, statErr, "X should have been archived before the report failed")
}

// stopAfter reports cancellation once Err has been asked left times
type stopAfter struct {
	context.Context
	left int
}

func (c *stopAfter) Err() error {
	if c.left <= 0 {
		return context.Canceled
	}
	c.left--
	return nil
}

func TestRenameCommandListsMissingWhenCancelled(t *testing.T) {
	color.NoColor = true
	pterm.DisableStyling()
	t.Cleanup(func() {
		color.NoColor = false
		pterm.EnableStyling()
	})

	fsys := workspace(t, "Z\tW\nX\tY\n", "/work/X.txt")

	out := &bytes.Buffer{}
	cmd := newRootCmd(fsys, io.Discard)
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"rename", "-q", "/in/names.tsv", "/work"})
	err := cmd.ExecuteContext(&stopAfter{Context: context.Background(), left: 1})

	require.ErrorIs(t, err, context.Canceled, "interrupted run should fail")
	assert.Equal(t, "Missing the following file: Z\n", out.String(), "rows seen before the interrupt should be listed")
	assert.True(t, exists(t, fsys, "/work/X.txt"), "rows after the interrupt should be untouched")
}

func TestRenameCommandConfig(t *testing.T) {
	fsys := workspace(t, "X\tY\n", "/work/X.txt")
	require.NoError(t, afero.WriteFile(fsys, "/etc/renamer.yaml", []byte("renamed_dir: copies\nreport: /out/run.json\n"), 0644), "writing config should succeed")

	_, err := runCmd(t, fsys, "rename", "-q", "-c", "/etc/renamer.yaml", "--original-dir", "kept", "/in/names.tsv", "/work")
	require.NoError(t, err, "rename should succeed")

	assert.True(t, exists(t, fsys, "/work/copies/Y.txt"), "config folder name should be used")
	assert.True(t, exists(t, fsys, "/work/kept/X.txt"), "flag folder name should be used")
	assert.True(t, exists(t, fsys, "/out/run.json"), "report should be written")
}

func TestCheckCommand(t *testing.T) {
	fsys := workspace(t, "X\tY\nZ\tW\n", "/work/X.txt")

	out, err := runCmd(t, fsys, "check", "/in/names.tsv", "/work")
	require.NoError(t, err, "check should succeed")

	assert.Contains(t, out, "checking /in/names.tsv against /work", "state change should be printed")
	assert.Contains(t, out, "X.txt", "plan should list the file")
	assert.Contains(t, out, "Y.txt", "plan should list the new name")
	assert.Contains(t, out, "Missing the following file: Z", "missing rows should be listed")
	assert.Contains(t, out, "mapping file is valid, 1 of 2 rows have a file", "summary should be printed")
	assert.True(t, exists(t, fsys, "/work/X.txt"), "check should not move anything")
	assert.False(t, exists(t, fsys, "/work/renamed_files"), "check should not create folders")
}

func TestCheckCommandQuiet(t *testing.T) {
	fsys := workspace(t, "X\tY\nZ\tW\n", "/work/X.txt")

	out, err := runCmd(t, fsys, "check", "-q", "/in/names.tsv", "/work")
	require.NoError(t, err, "check should succeed")
	assert.Equal(t, "Missing the following file: Z\n", out, "quiet check should print only the diagnostic")
}

func TestCheckCommandDuplicate(t *testing.T) {
	fsys := workspace(t, "X\tY\nQ\tY\n")

	out, err := runCmd(t, fsys, "check", "/in/names.tsv", "/work")
	require.Error(t, err, "check should fail")
	assert.True(t, commands.IsReported(err), "diagnostic should be reported")
	assert.Equal(t, "Duplicate entry found in the new name column: Y\nPlease fix your input sheet\n", out, "diagnostic should match")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCmd(t, afero.NewMemMapFs(), "version", "--json")
	require.NoError(t, err, "version should succeed")

	var info commands.VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info), "output should be JSON")
	assert.NotEmpty(t, info.GoVersion, "go version should be set")
	assert.NotEmpty(t, info.Version, "version should be set")

	out, err = runCmd(t, afero.NewMemMapFs(), "version")
	require.NoError(t, err, "version should succeed")
	assert.True(t, strings.HasPrefix(out, "🚀 "), "text output should start with the title line")
	assert.Contains(t, out, info.GoVersion, "text output should name the go version")
}

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		name string
		info commands.VersionInfo
		want string
	}{
		{
			name: "dev_build",
			info: commands.VersionInfo{Version: "dev", GoVersion: "go1.23.5", Platform: "linux/amd64"},
			want: "🚀 renamer dev\n   go      go1.23.5 linux/amd64\n",
		},
		{
			name: "stamped_build",
			info: commands.VersionInfo{
				Module:    "github.com/walteh/renamer",
				Version:   "v1.2.0",
				GoVersion: "go1.23.5",
				Platform:  "darwin/arm64",
				Revision:  "0123456789abcdef",
				Time:      "2025-01-02T03:04:05Z",
				Modified:  true,
			},
			want: "🚀 github.com/walteh/renamer v1.2.0\n" +
				"   commit  0123456789ab (modified)\n" +
				"   built   2025-01-02T03:04:05Z\n" +
				"   go      go1.23.5 darwin/arm64\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, commands.FormatVersion(&tt.info), "formatted version should match")
		})
	}
}
