// Package logger provides opinionated logging capabilities for the reshape system
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the console logger the relay and CLI share. Logs go to
// stdout; zap's own internal errors go to stderr.
func NewLogger(debug bool) *zap.Logger {
	return NewLoggerTo(os.Stdout, debug)
}

// NewLoggerTo writes console-encoded logs to w. Tests use it to capture
// output.
func NewLoggerTo(w io.Writer, debug bool) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	// Set log level
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		level,
	)

	return zap.New(core,
		zap.AddCaller(),
		zap.ErrorOutput(zapcore.AddSync(os.Stderr)),
	)
}
