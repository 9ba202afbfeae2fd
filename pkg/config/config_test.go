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

package config

import (
	"context"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "full_yaml",
			file: "renamer.yaml",
			config: `
renamed_dir: out
original_dir: archive
mapping_suffixes: [".tsv", ".txt"]
ignore:
  - "*.part"
report: report.json
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "out", cfg.RenamedDir, "renamed dir should match")
				assert.Equal(t, "archive", cfg.OriginalDir, "original dir should match")
				assert.Equal(t, []string{".tsv", ".txt"}, cfg.MappingSuffixes, "suffixes should match")
				assert.Equal(t, []string{"*.part"}, cfg.Ignore, "ignore patterns should match")
				assert.Equal(t, "report.json", cfg.Report, "report should match")
			},
		},
		{
			name:   "empty_yaml_gets_defaults",
			file:   ".renamer.yaml",
			config: "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, Default(), cfg, "empty file should match defaults")
			},
		},
		{
			name:   "json",
			file:   "renamer.json",
			config: `{"renamed_dir": "copies", "ignore": ["tmp*"]}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "copies", cfg.RenamedDir, "renamed dir should match")
				assert.Equal(t, DefaultOriginalDir, cfg.OriginalDir, "original dir should default")
				assert.Equal(t, []string{"tmp*"}, cfg.Ignore, "ignore patterns should match")
			},
		},
		{
			name: "hcl_with_defaults_reference",
			file: "renamer.hcl",
			config: `
renamed_dir      = "${defaults.renamed_dir}_v2"
mapping_suffixes = [defaults.suffix, ".tab"]
report           = "run.yaml"
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "renamed_files_v2", cfg.RenamedDir, "renamed dir should be interpolated")
				assert.Equal(t, DefaultOriginalDir, cfg.OriginalDir, "original dir should default")
				assert.Equal(t, []string{".tsv", ".tab"}, cfg.MappingSuffixes, "suffixes should match")
				assert.Equal(t, "run.yaml", cfg.Report, "report should match")
			},
		},
		{
			name:        "unknown_yaml_field",
			file:        "renamer.yaml",
			config:      "rename_dir: typo\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_json_field",
			file:        "renamer.json",
			config:      `{"dry_run": true}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:        "bad_hcl",
			file:        "renamer.hcl",
			config:      `renamed_dir = `,
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name:        "same_folders",
			file:        "renamer.yaml",
			config:      "renamed_dir: x\noriginal_dir: x\n",
			wantErr:     true,
			errContains: "must differ",
		},
		{
			name:        "nested_folder",
			file:        "renamer.yaml",
			config:      "original_dir: a/b\n",
			wantErr:     true,
			errContains: "single folder name",
		},
		{
			name:        "bad_report_extension",
			file:        "renamer.yaml",
			config:      "report: out.txt\n",
			wantErr:     true,
			errContains: "report must end in",
		},
		{
			name:        "bad_ignore_pattern",
			file:        "renamer.yaml",
			config:      "ignore: ['[oops']\n",
			wantErr:     true,
			errContains: "invalid ignore pattern",
		},
		{
			name:        "unsupported_extension",
			file:        "renamer.toml",
			config:      "renamed_dir = 'x'",
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	ctx := zerolog.New(os.Stderr).Level(zerolog.Disabled).WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			err := afero.WriteFile(fsys, tt.file, []byte(tt.config), 0644)
			require.NoError(t, err, "writing config file should succeed")

			cfg, err := Load(ctx, fsys, tt.file)
			if tt.wantErr {
				require.Error(t, err, "Load should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "Load should succeed")
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	ctx := zerolog.New(os.Stderr).Level(zerolog.Disabled).WithContext(context.Background())
	fsys := afero.NewMemMapFs()

	cfg, err := LoadOrDefault(ctx, fsys, DefaultFile)
	require.NoError(t, err, "missing file should not fail")
	assert.Equal(t, Default(), cfg, "missing file should give defaults")

	_, err = Load(ctx, fsys, DefaultFile)
	assert.Error(t, err, "Load should fail on a missing file")

	require.NoError(t, afero.WriteFile(fsys, DefaultFile, []byte("renamed_dir: [\n"), 0644), "writing config should succeed")
	_, err = LoadOrDefault(ctx, fsys, DefaultFile)
	assert.Error(t, err, "broken file should still fail")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "renamed_files", cfg.RenamedDir, "renamed dir default should match")
	assert.Equal(t, "original_files", cfg.OriginalDir, "original dir default should match")
	assert.Equal(t, []string{".tsv"}, cfg.MappingSuffixes, "suffix default should match")
	assert.Empty(t, cfg.Ignore, "no ignore patterns by default")
	assert.Empty(t, cfg.Report, "no report by default")
	assert.NoError(t, cfg.Validate(), "defaults should be valid")
}

func TestCheckMappingPath(t *testing.T) {
	tests := []struct {
		name     string
		suffixes []string
		path     string
		wantErr  string
	}{
		{name: "tsv_accepted", suffixes: []string{".tsv"}, path: "/data/names.tsv"},
		{name: "suffix_anywhere", suffixes: []string{".tsv"}, path: "/data/names.tsv.bak"},
		{name: "csv_rejected", suffixes: []string{".tsv"}, path: "/data/names.csv", wantErr: "Your file must have a .tsv extension"},
		{name: "second_suffix", suffixes: []string{".tsv", ".tab"}, path: "names.tab"},
		{name: "several_rejected", suffixes: []string{".tsv", ".tab"}, path: "names.csv", wantErr: "Your file must have one of these extensions: .tsv, .tab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{MappingSuffixes: tt.suffixes}
			err := cfg.CheckMappingPath(tt.path)
			if tt.wantErr == "" {
				assert.NoError(t, err, "path should be accepted")
				return
			}
			require.Error(t, err, "path should be rejected")
			assert.Equal(t, tt.wantErr, err.Error(), "message should match")
		})
	}
}

func TestGetParser(t *testing.T) {
	assert.IsType(t, &YAMLParser{}, GetParser("a.yml"), "yml should use the YAML parser")
	assert.IsType(t, &YAMLParser{}, GetParser("A.YAML"), "extension match should ignore case")
	assert.IsType(t, &JSONParser{}, GetParser("a.json"), "json should use the JSON parser")
	assert.IsType(t, &HCLParser{}, GetParser("a.hcl"), "hcl should use the HCL parser")
	assert.Nil(t, GetParser("a.ini"), "unknown extensions should have no parser")
}
