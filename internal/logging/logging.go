// Package logging builds the process logger. The storage layer swallows
// I/O errors by contract (missing or corrupt documents degrade to
// defaults), so the debug log is the only place those failures surface.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a sugared logger. With verbose=false all output is
// discarded; with verbose=true a development-style logger at debug
// level writes to stderr, keeping stdout clean for command output.
func New(verbose bool) *zap.SugaredLogger {
	if !verbose {
		return zap.NewNop().Sugar()
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return log.Sugar()
}
