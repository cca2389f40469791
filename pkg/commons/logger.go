// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package commons

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the application-wide logging surface. It is a thin veneer over
// zap's sugared logger so packages do not couple to zap directly.
type Logger interface {
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Fatalf(template string, args ...interface{})

	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	Sync() error
}

type applicationLogger struct {
	*zap.SugaredLogger
}

type loggerOptions struct {
	level    zapcore.Level
	filePath string
}

type LoggerOption func(*loggerOptions)

// WithLevel sets the minimum level from its string form ("debug", "info",
// "warn", "error"). Unparseable levels fall back to info.
func WithLevel(level string) LoggerOption {
	return func(o *loggerOptions) {
		if parsed, err := zapcore.ParseLevel(level); err == nil {
			o.level = parsed
		}
	}
}

// WithLogFile duplicates output into a size-rotated file.
func WithLogFile(path string) LoggerOption {
	return func(o *loggerOptions) {
		o.filePath = path
	}
}

// NewApplicationLogger builds the process logger. Console output always goes
// to stderr; a rotated file sink is added when WithLogFile is supplied.
func NewApplicationLogger(opts ...LoggerOption) (Logger, error) {
	options := loggerOptions{level: zapcore.InfoLevel}
	for _, opt := range opts {
		opt(&options)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(encoderCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), options.level),
	}
	if options.filePath != "" {
		rotated := &lumberjack.Logger{
			Filename:   options.filePath,
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			MaxAge:     14, // days
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.AddSync(rotated),
			options.level,
		))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	return &applicationLogger{logger.Sugar()}, nil
}

// NewNopLogger returns a logger that discards everything. Test helper.
func NewNopLogger() Logger {
	return &applicationLogger{zap.NewNop().Sugar()}
}
