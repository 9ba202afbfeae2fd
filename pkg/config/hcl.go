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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "renamer.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Folder names may reference the defaults, e.g. renamed_dir = "${defaults.renamed_dir}_v2"
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"defaults": cty.ObjectVal(map[string]cty.Value{
				"renamed_dir":  cty.StringVal(DefaultRenamedDir),
				"original_dir": cty.StringVal(DefaultOriginalDir),
				"suffix":       cty.StringVal(DefaultSuffix),
			}),
		},
	}

	// Define HCL schema
	type hclConfig struct {
		RenamedDir      string   `hcl:"renamed_dir,optional"`
		OriginalDir     string   `hcl:"original_dir,optional"`
		MappingSuffixes []string `hcl:"mapping_suffixes,optional"`
		Ignore          []string `hcl:"ignore,optional"`
		Report          string   `hcl:"report,optional"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &Config{
		RenamedDir:      hclCfg.RenamedDir,
		OriginalDir:     hclCfg.OriginalDir,
		MappingSuffixes: hclCfg.MappingSuffixes,
		Ignore:          hclCfg.Ignore,
		Report:          hclCfg.Report,
	}, nil
}
