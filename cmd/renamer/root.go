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
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/renamer/cmd/renamer/commands"
	"github.com/walteh/renamer/cmd/renamer/opts"
	"github.com/walteh/renamer/pkg/config"
	"github.com/walteh/renamer/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// rootFlags holds the shared flags
type rootFlags struct {
	configFile  string
	debug       bool
	quiet       bool
	renamedDir  string
	originalDir string
	report      string
	ignore      []string
}

// newRootCmd wires every command around a shared RootOpts
func newRootCmd(fsys afero.Fs, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}
	o := &opts.RootOpts{
		Fs:     fsys,
		Stderr: stderr,
	}

	rootCmd := &cobra.Command{
		Use:   "renamer",
		Short: "Batch-rename files from a two-column mapping file",
		Long: `renamer reads a tab-separated file of <current name>\t<new name> rows
(names without extensions) and renames the matching files in a folder.
Renamed copies go to renamed_files/, originals are archived in original_files/.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd, flags, o.Stderr)

			cfg, err := loadConfig(cmd, flags, o.Fs)
			if err != nil {
				return err
			}

			o.Config = cfg
			o.Quiet = flags.quiet
			o.UserLogger = log.NewUserLogger(ctx, cmd.OutOrStdout())
			return nil
		},
	}

	addRootFlags(rootCmd, flags)

	rootCmd.AddCommand(
		commands.NewRenameCmd(o),
		commands.NewCheckCmd(o),
		commands.NewVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", config.DefaultFile, "config file path")
	pf.BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "only print diagnostics")
	pf.StringVar(&flags.renamedDir, "renamed-dir", "", "subfolder for renamed copies (default "+config.DefaultRenamedDir+")")
	pf.StringVar(&flags.originalDir, "original-dir", "", "subfolder for archived originals (default "+config.DefaultOriginalDir+")")
	pf.StringVar(&flags.report, "report", "", "write a run report (.json, .yaml or .yml)")
	pf.StringSliceVar(&flags.ignore, "ignore", nil, "glob pattern of folder entries to skip (repeatable)")
}

// loadConfig reads the config file and applies flag overrides. An explicitly
// named config file must exist, the default one is optional.
func loadConfig(cmd *cobra.Command, flags *rootFlags, fsys afero.Fs) (*config.Config, error) {
	ctx := cmd.Context()

	var cfg *config.Config
	var err error
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(ctx, fsys, flags.configFile)
	} else {
		cfg, err = config.LoadOrDefault(ctx, fsys, flags.configFile)
	}
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	if flags.renamedDir != "" {
		cfg.RenamedDir = flags.renamedDir
	}
	if flags.originalDir != "" {
		cfg.OriginalDir = flags.originalDir
	}
	if flags.report != "" {
		cfg.Report = flags.report
	}
	if len(flags.ignore) > 0 {
		cfg.Ignore = append(cfg.Ignore, flags.ignore...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating flags: %w", err)
	}
	return cfg, nil
}

// setupLogging puts a zerolog logger on the command context
func setupLogging(cmd *cobra.Command, flags *rootFlags, stderr io.Writer) context.Context {
	level := zerolog.WarnLevel
	if flags.debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr}).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)
	return ctx
}
