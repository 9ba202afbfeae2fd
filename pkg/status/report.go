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

package status

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 📦 Report describes one rename run
type Report struct {
	Time        time.Time   `json:"time" yaml:"time"`
	Dir         string      `json:"dir" yaml:"dir"`
	MappingFile string      `json:"mapping_file" yaml:"mapping_file"`
	RenamedDir  string      `json:"renamed_dir" yaml:"renamed_dir"`
	OriginalDir string      `json:"original_dir" yaml:"original_dir"`
	Summary     Summary     `json:"summary" yaml:"summary"`
	Entries     []EntryInfo `json:"entries" yaml:"entries"`
	Missing     []string    `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// 📝 WriteReport encodes report by the extension of path and writes it atomically
func WriteReport(ctx context.Context, fsys afero.Fs, path string, report *Report) error {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("writing run report")

	data, err := encodeReport(path, report)
	if err != nil {
		return err
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	return writeFileAtomic(fsys, path, data)
}

// 📖 ReadReport decodes a report previously written by WriteReport
func ReadReport(ctx context.Context, fsys afero.Fs, path string) (*Report, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Errorf("reading report: %w", err)
	}

	var report Report
	switch reportFormat(path) {
	case "json":
		err = json.Unmarshal(data, &report)
	case "yaml":
		err = yaml.Unmarshal(data, &report)
	default:
		return nil, errors.Errorf("unsupported report extension %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, errors.Errorf("decoding report: %w", err)
	}
	return &report, nil
}

func reportFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

func encodeReport(path string, report *Report) ([]byte, error) {
	switch reportFormat(path) {
	case "json":
		data, err := json.MarshalIndent(report, "", "\t")
		if err != nil {
			return nil, errors.Errorf("marshaling report: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return nil, errors.Errorf("marshaling report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Errorf("marshaling report: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.Errorf("unsupported report extension %q", filepath.Ext(path))
	}
}

func writeFileAtomic(fsys afero.Fs, path string, content []byte) error {
	tempPath := path + ".tmp"

	// Write to temp file
	if err := afero.WriteFile(fsys, tempPath, content, 0644); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	// Rename temp file to target
	if err := fsys.Rename(tempPath, path); err != nil {
		fsys.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
