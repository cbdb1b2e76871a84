// Package logger writes the editor's diagnostics to a file through zap.
// Every helper is a no-op until Init succeeds, so packages log freely in
// tests.
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log  = zap.NewNop().Sugar()
	file *os.File
)

// Init sends log entries at level and above to path. The file is truncated
// so it only ever holds the current session.
func Init(path, level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(f), lvl)

	Close()
	file = f
	// skip the helper frame so callers show up in the caller field
	log = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
	log.Infow("logging started", "path", path, "level", lvl.String())
	return nil
}

// Close flushes the log and goes back to discarding entries.
func Close() {
	_ = log.Sync()
	if file != nil {
		_ = file.Close()
		file = nil
	}
	log = zap.NewNop().Sugar()
}

func Debug(msg string, kv ...any) { log.Debugw(msg, kv...) }

func Info(msg string, kv ...any) { log.Infow(msg, kv...) }

func Warn(msg string, kv ...any) { log.Warnw(msg, kv...) }

func Error(msg string, kv ...any) { log.Errorw(msg, kv...) }
