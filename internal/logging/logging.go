// Package logging installs the process-wide slog logger. Records are
// encoded by zap, optionally teed to a size-rotated file.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level  string
	Format string
	File   string
}

// Setup builds the logger, makes it the slog default and returns a flush
// function for main to defer.
func Setup(options Options) (*slog.Logger, func(), error) {
	level, err := parseLevel(options.Level)
	if err != nil {
		return nil, nil, err
	}

	cores := []zapcore.Core{
		zapcore.NewCore(newEncoder(options.Format), zapcore.Lock(os.Stdout), level),
	}

	var rotator *lumberjack.Logger
	if options.File != "" {
		rotator = &lumberjack.Logger{
			Filename:   options.File,
			MaxSize:    100,
			MaxBackups: 10,
			MaxAge:     30,
		}
		cores = append(cores, zapcore.NewCore(newEncoder("json"), zapcore.AddSync(rotator), level))
	}

	core := zapcore.NewTee(cores...)
	logger := slog.New(zapslog.NewHandler(core))
	slog.SetDefault(logger)

	flush := func() {
		_ = core.Sync()
		if rotator != nil {
			_ = rotator.Close()
		}
	}
	return logger, flush, nil
}

func newEncoder(format string) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "ts"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if format == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encoderConfig)
	}
	return zapcore.NewJSONEncoder(encoderConfig)
}

func parseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	parsed, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("parsing log level %q: %w", level, err)
	}
	return parsed, nil
}
