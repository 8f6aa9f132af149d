package cli

// This file defines error handling utilities for the CLI, including:
//   - The Step kind used to build chains for CLI failures
//   - Structured error logging through chainlog
//   - Debug mode management for error output

import (
	"sync"

	"go.uber.org/zap"

	"errchain/pkg/chainlog"
)

var (
	debugMode   bool
	debugModeMu sync.RWMutex
)

// SetDebugMode sets the global debug mode flag.
// When enabled, logStructuredError will output structured error logs to terminal.
func SetDebugMode(enabled bool) {
	debugModeMu.Lock()
	defer debugModeMu.Unlock()
	debugMode = enabled
}

// IsDebugMode returns whether debug mode is enabled.
func IsDebugMode() bool {
	debugModeMu.RLock()
	defer debugModeMu.RUnlock()
	return debugMode
}

// Step is the error kind of CLI operations.
type Step string

const (
	StepLoadConfig  Step = "load generator config"
	StepGenerate    Step = "generate error types"
	StepRender      Step = "render report"
	StepInvalidFlag Step = "invalid flag"
)

// logStructuredError logs an error chain with structured fields to terminal.
// Only logs when debug mode is enabled (via --debug flag).
//
// Chains are logged with error.kind, error.site, error.depth and error.chain;
// see chainlog.Fields.
func logStructuredError(logger *zap.Logger, err error, msg string) {
	if logger == nil || err == nil || !IsDebugMode() {
		return
	}
	chainlog.Log(logger, err, msg)
}
