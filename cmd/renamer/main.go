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
	"context"
	"os"

	"github.com/spf13/afero"
	"github.com/walteh/renamer/cmd/renamer/commands"
	"github.com/walteh/renamer/pkg/log"
)

func main() {
	ctx := context.Background()

	rootCmd := newRootCmd(afero.NewOsFs(), os.Stderr)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !commands.IsReported(err) {
			log.NewUserLogger(ctx, os.Stderr).LogValidation(false, "Command failed", err)
		}
		os.Exit(1)
	}
}
