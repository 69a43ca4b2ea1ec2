// Package log builds the process logger.
package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to w. Debug lines are only written
// when verbose is set.
func New(w zapcore.WriteSyncer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder

	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(enc), w, level))
}

// NewStderr is New on the process's stderr. stdout is left for the digest.
func NewStderr(verbose bool) *zap.Logger {
	return New(zapcore.Lock(os.Stderr), verbose)
}
