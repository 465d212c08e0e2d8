// Package logging configures the zap logger used across the engine and
// CLI: colored, human-readable on the console, structured JSON to a
// per-invocation log file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logDirEnvVar overrides the default "logs" directory, so a containerized
// run (prod/staging) can point the file sink at a mounted volume instead
// of the working directory.
const logDirEnvVar = "ROSTER_LOG_DIR"

// InitLogger initializes a zap logger with console and file outputs. env
// prefixes the log file name (e.g. "dev", "prod") and also tags
// every log line with an "env" field, and quiets the console sink to
// Warn-and-above for "prod"/"staging" so routine Info-level progress logs
// go only to the file, not to whatever's tailing stdout in production.
func InitLogger(env string) (*zap.Logger, error) {
	logsDir := os.Getenv(logDirEnvVar)
	if logsDir == "" {
		logsDir = "logs"
	}
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logFileName := filepath.Join(logsDir, fmt.Sprintf("%s_%s.log", env, timestamp))
	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	consoleEncoderConfig := zap.NewDevelopmentEncoderConfig()
	consoleEncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	consoleEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	fileEncoderConfig := zap.NewProductionEncoderConfig()
	fileEncoderConfig.TimeKey = "timestamp"
	fileEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(consoleEncoderConfig)
	fileEncoder := zapcore.NewJSONEncoder(fileEncoderConfig)

	consoleLevel := zapcore.InfoLevel
	if env == "prod" || env == "staging" {
		consoleLevel = zapcore.WarnLevel
	}
	fileLevel := zapcore.DebugLevel

	core := zapcore.NewTee(
		zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), consoleLevel),
		zapcore.NewCore(fileEncoder, zapcore.AddSync(logFile), fileLevel),
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).With(zap.String("env", env))

	return logger, nil
}

// SolveFields builds the structured zap fields for a solve call (quarter
// start and staff count). The CLI commands and pkg/core/services build their
// own fields and do not call it.
func SolveFields(quarterStart time.Time, staffCount int) []zap.Field {
	return []zap.Field{
		zap.String("quarter_start", quarterStart.Format("2006-01-02")),
		zap.Int("staff_count", staffCount),
	}
}
