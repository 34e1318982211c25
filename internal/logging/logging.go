// Package logging builds the zerolog logger shared by the workspace, the
// simulators and the CLI.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const permission = 0o664

// Builder collects where log output should go before Make opens it.
type Builder struct {
	writer io.Writer
	path   string
	level  zerolog.Level
}

// Log is a built logger and the file behind it, if any.
type Log struct {
	File   *os.File
	Logger zerolog.Logger
}

func New() *Builder {
	return &Builder{level: zerolog.InfoLevel}
}

// FromPath appends to the file at path, creating it and its directory.
func (b *Builder) FromPath(path string) *Builder {
	b.path = path
	return b
}

func (b *Builder) FromWriter(w io.Writer) *Builder {
	b.writer = w
	return b
}

// Level sets the minimum level; unknown names keep the current one.
func (b *Builder) Level(name string) *Builder {
	if lvl, err := zerolog.ParseLevel(name); err == nil && name != "" {
		b.level = lvl
	}
	return b
}

// Make opens the destination. With neither a path nor a writer the logger
// discards everything, which keeps the TUI screen clean.
func (b *Builder) Make() (*Log, error) {
	out := &Log{}
	var w io.Writer = io.Discard
	if b.writer != nil {
		w = b.writer
	}
	if b.path != "" {
		if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, err
		}
		out.File = f
		w = zerolog.SyncWriter(f)
	}
	out.Logger = zerolog.New(w).Level(b.level).With().Timestamp().Logger()
	return out, nil
}

// Close releases the log file, if one was opened.
func (l *Log) Close() error {
	if l.File == nil {
		return nil
	}
	return l.File.Close()
}

// Component returns a child logger tagged with the component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
