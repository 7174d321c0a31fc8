// Package logger provides centralized logging for the application.
// File: logger/logger.go
package logger

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ------------------- global loggers -------------------

// four logger levels accessible throughout the application
var (
	Info  *log.Logger
	Warn  *log.Logger
	Error *log.Logger
	Debug *log.Logger
)

var (
	base  *zap.Logger
	level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
)

// ------------------- logger initialization -------------------

// InitLogger creates or reinitializes the logging system. It:
// - Writes human readable lines to stdout.
// - When logDir is set, ensures it exists and adds a timestamped JSON log file.
// - Exposes Info, Warn, Error and Debug as *log.Logger views over one zap core.
func InitLogger(logDir string) error {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stdout), level),
	}

	if logDir != "" {
		if err := os.MkdirAll(logDir, 0700); err != nil {
			return err
		}
		logFileName := filepath.Join(logDir, time.Now().Format("2006-01-02_15-04-05")+".log")
		file, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec
		if err != nil {
			return err
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(file), level))
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return install(l)
}

// install points the package level loggers at l.
func install(l *zap.Logger) error {
	var err error
	loggers := []struct {
		target **log.Logger
		lvl    zapcore.Level
	}{
		{&Info, zapcore.InfoLevel},
		{&Warn, zapcore.WarnLevel},
		{&Error, zapcore.ErrorLevel},
		{&Debug, zapcore.DebugLevel},
	}
	for _, lg := range loggers {
		if *lg.target, err = zap.NewStdLogAt(l, lg.lvl); err != nil {
			return err
		}
	}
	base = l
	return nil
}

// SetLogLevel adjusts the Debug logger's output depending on environment.
// In production debug lines are dropped; everywhere else they are kept.
func SetLogLevel(env string) {
	if env == "production" {
		level.SetLevel(zapcore.InfoLevel)
		return
	}
	level.SetLevel(zapcore.DebugLevel)
}

// Zap returns the underlying structured logger.
func Zap() *zap.Logger {
	return base
}

// Sync flushes any buffered entries.
func Sync() {
	if base != nil {
		_ = base.Sync()
	}
}

// init wires stdout-only loggers so packages can log before main configures
// the file sink.
func init() {
	if err := InitLogger(""); err != nil {
		log.Fatalf("Failed to initialise custom logger: %v", err)
	}
}
