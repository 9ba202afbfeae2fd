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
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultFile is looked up in the working directory when no config is named
	DefaultFile = ".renamer.yaml"

	DefaultRenamedDir  = "renamed_files"
	DefaultOriginalDir = "original_files"
	DefaultSuffix      = ".tsv"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete configuration
type Config struct {
	RenamedDir      string   `json:"renamed_dir,omitempty" yaml:"renamed_dir,omitempty"`           // Subfolder receiving renamed copies
	OriginalDir     string   `json:"original_dir,omitempty" yaml:"original_dir,omitempty"`         // Subfolder receiving archived originals
	MappingSuffixes []string `json:"mapping_suffixes,omitempty" yaml:"mapping_suffixes,omitempty"` // Accepted mapping file suffixes
	Ignore          []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`                     // Glob patterns for entries to skip while scanning
	Report          string   `json:"report,omitempty" yaml:"report,omitempty"`                     // Optional run report path (.json, .yaml, .yml)
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.RenamedDir == "" {
		cfg.RenamedDir = DefaultRenamedDir
	}
	if cfg.OriginalDir == "" {
		cfg.OriginalDir = DefaultOriginalDir
	}
	if len(cfg.MappingSuffixes) == 0 {
		cfg.MappingSuffixes = []string{DefaultSuffix}
	}
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, fsys afero.Fs, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🎯 LoadOrDefault loads path, falling back to Default when it does not exist
func LoadOrDefault(ctx context.Context, fsys afero.Fs, path string) (*Config, error) {
	cfg, err := Load(ctx, fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using defaults")
		return Default(), nil
	}
	return cfg, err
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if err := validateFolderName("renamed_dir", cfg.RenamedDir); err != nil {
		return err
	}
	if err := validateFolderName("original_dir", cfg.OriginalDir); err != nil {
		return err
	}
	if cfg.RenamedDir == cfg.OriginalDir {
		return errors.Errorf("renamed_dir and original_dir must differ, both are %q", cfg.RenamedDir)
	}

	for i, s := range cfg.MappingSuffixes {
		if strings.TrimSpace(s) == "" {
			return errors.Errorf("mapping_suffixes[%d] is empty", i)
		}
	}

	for _, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	if cfg.Report != "" {
		switch strings.ToLower(filepath.Ext(cfg.Report)) {
		case ".json", ".yaml", ".yml":
		default:
			return errors.Errorf("report must end in .json, .yaml or .yml: %s", cfg.Report)
		}
	}

	return nil
}

func validateFolderName(field, name string) error {
	switch {
	case name == "":
		return errors.Errorf("%s is required", field)
	case name == "." || name == "..":
		return errors.Errorf("%s must name a subfolder: %q", field, name)
	case strings.ContainsAny(name, `/\`):
		return errors.Errorf("%s must be a single folder name: %q", field, name)
	}
	return nil
}

// 🔍 CheckMappingPath rejects mapping paths that carry none of the accepted suffixes
func (cfg *Config) CheckMappingPath(path string) error {
	for _, s := range cfg.MappingSuffixes {
		if strings.Contains(path, s) {
			return nil
		}
	}
	if len(cfg.MappingSuffixes) == 1 {
		return errors.Errorf("Your file must have a %s extension", cfg.MappingSuffixes[0])
	}
	return errors.Errorf("Your file must have one of these extensions: %s", strings.Join(cfg.MappingSuffixes, ", "))
}
