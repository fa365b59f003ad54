// Package runlog implements the interpreter's run logging: one
// log.Logger per invocation, tagged with a run correlation ID, writing
// to stderr, and also to a rotating file when one is configured.
package runlog

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where a Logger writes and how its rotating file (if
// any) is managed.
type Config struct {
	// LogFile is the path to a rotating log file. Empty means stderr
	// only.
	LogFile    string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Logger wraps a *log.Logger with the run's correlation ID, so every
// line it writes can be traced back to one interpreter invocation.
type Logger struct {
	*log.Logger
	RunID string
	file  *lumberjack.Logger
}

// New builds a Logger. With cfg.LogFile empty, it writes to stderr;
// otherwise it writes to both stderr and a lumberjack-managed rotating
// file at cfg.LogFile.
func New(cfg Config) *Logger {
	runID := uuid.NewString()

	var out io.Writer = os.Stderr
	var file *lumberjack.Logger
	if cfg.LogFile != "" {
		file = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    orDefault(cfg.MaxSizeMB, 10),
			MaxBackups: orDefault(cfg.MaxBackups, 3),
			MaxAge:     orDefault(cfg.MaxAgeDays, 28),
			Compress:   true,
		}
		out = io.MultiWriter(os.Stderr, file)
	}

	prefix := fmt.Sprintf("quilt[%s] ", runID[:8])
	return &Logger{
		Logger: log.New(out, prefix, log.LstdFlags),
		RunID:  runID,
		file:   file,
	}
}

// Close releases the rotating file handle, if one is open.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
