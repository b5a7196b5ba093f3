// Copyright (c) 2025 Field Kit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// VerboseEnv forces debug logging when set to "1".
const VerboseEnv = "FIELDKIT_VERBOSE"

// IsVerbose checks if verbose mode is enabled dynamically.
func IsVerbose() bool {
	return os.Getenv(VerboseEnv) == "1"
}

// New builds a console zap logger writing to stderr.
// level is a zap level name ("debug", "info", "warn", "error"); unknown
// names fall back to info. verbose (or FIELDKIT_VERBOSE=1) always wins and
// selects debug.
func New(level string, verbose bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	if verbose || IsVerbose() {
		lvl = zapcore.DebugLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.DisableCaller = lvl != zapcore.DebugLevel
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg.Build()
}

// redacted replaces every secret value in logs.
const redacted = "***"

// Secret is a zap field that never carries value; empty values stay empty
// so a missing secret is still visible.
func Secret(key, value string) zap.Field {
	if value == "" {
		return zap.String(key, "")
	}
	return zap.String(key, redacted)
}

// Masked is a zap field for free-form text that may embed credentials,
// such as URLs or error messages. Embedded secrets are passed through Mask.
func Masked(key, value string) zap.Field {
	return zap.String(key, Mask(value))
}
