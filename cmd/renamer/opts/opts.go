package opts

import (
	"io"

	"github.com/spf13/afero"
	"github.com/walteh/renamer/pkg/config"
	"github.com/walteh/renamer/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Fs         afero.Fs
	Config     *config.Config
	UserLogger *log.UserLogger
	Quiet      bool
	Stderr     io.Writer
}
