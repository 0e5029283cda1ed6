// Package logging builds the process logger. Logging is off unless debug is
// enabled; debug output goes to a size-rotated file, never to stdout or stderr,
// so it cannot corrupt the terminal viewer.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"gopkg.in/natefinch/lumberjack.v2"
	"k8s.io/klog/v2"
	"k8s.io/klog/v2/textlogger"
)

const (
	logDir      = "logs"
	logFileName = "mazega.log"
	maxLogSize  = 10 // megabytes
	maxBackups  = 3
)

// Verbosity levels used across the module
const (
	LevelRun        = 2
	LevelGeneration = 4
	LevelDetail     = 6
)

// Config selects where and how much to log
type Config struct {
	Debug     bool
	Path      string // empty selects logs/mazega.log
	Verbosity int
}

// DefaultPath is the log file used when Config.Path is empty
func DefaultPath() string {
	return filepath.Join(logDir, logFileName)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup returns the logger and the closer of its output
func Setup(cfg Config) (logr.Logger, io.Closer, error) {
	if !cfg.Debug {
		return logr.Discard(), nopCloser{}, nil
	}

	path := cfg.Path
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return logr.Discard(), nopCloser{}, fmt.Errorf("create log directory: %w", err)
	}

	out := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxLogSize,
		MaxBackups: maxBackups,
	}

	logger := textlogger.NewLogger(textlogger.NewConfig(
		textlogger.Output(out),
		textlogger.Verbosity(cfg.Verbosity),
	))
	return logger.WithName("mazega"), out, nil
}

// NewContext attaches logger to ctx for klog.FromContext
func NewContext(ctx context.Context, logger logr.Logger) context.Context {
	return klog.NewContext(ctx, logger)
}
