// Package logging builds the process logger: a console writer on stderr by
// default, or a rotated log file when a destination is configured.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the log destination and verbosity.
type Options struct {
	// Verbose lowers the level to INFO so every request is logged.
	Verbose bool
	// File, when set, receives log lines instead of stderr.
	File string
}

// New constructs the logger. WARN and above are always emitted; INFO lines
// appear only in verbose mode.
func New(opts Options) zerolog.Logger {
	level := zerolog.WarnLevel
	if opts.Verbose {
		level = zerolog.InfoLevel
	}

	var w io.Writer
	if opts.File != "" {
		w = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
	} else {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
