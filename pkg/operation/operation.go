package operation

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/walteh/renamer/pkg/config"
	"github.com/walteh/renamer/pkg/log"
	"github.com/walteh/renamer/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operator defines the renamer operations
type Operator interface {
	// Rename parses the mapping, scans the folder and copies/archives every matching file
	Rename(ctx context.Context) (*Result, error)
	// Check parses the mapping and scans the folder without writing anything
	Check(ctx context.Context) (*Plan, error)
}

// 🔧 Options contains configuration for the operator
type Options struct {
	// Fs is the filesystem to operate on, the OS filesystem when nil
	Fs afero.Fs
	// MappingFile is the tab-separated mapping path
	MappingFile string
	// Dir is the folder holding the files to rename
	Dir string
	// Config holds folder names, ignore patterns and the report path, Default() when nil
	Config *config.Config
	// Tracker records entry outcomes, created from the context logger when nil
	Tracker *status.Tracker
	// Console renders one line per entry, taken from the context when nil
	Console *log.Logger
}

// 🗂️ Layout holds the resolved folders of a run
type Layout struct {
	Dir         string // Folder holding the files to rename
	RenamedDir  string // Receives renamed copies
	OriginalDir string // Receives archived originals
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (Operator, error) {
	if opts.MappingFile == "" {
		return nil, errors.Errorf("mapping file is required")
	}
	if opts.Dir == "" {
		return nil, errors.Errorf("folder is required")
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &operator{
		fs:      opts.Fs,
		mapping: opts.MappingFile,
		cfg:     opts.Config,
		tracker: opts.Tracker,
		console: opts.Console,
		layout: Layout{
			Dir:         opts.Dir,
			RenamedDir:  filepath.Join(opts.Dir, opts.Config.RenamedDir),
			OriginalDir: filepath.Join(opts.Dir, opts.Config.OriginalDir),
		},
	}, nil
}

// 🎮 operator implements the Operator interface
type operator struct {
	fs      afero.Fs
	mapping string
	cfg     *config.Config
	layout  Layout
	tracker *status.Tracker
	console *log.Logger
}
