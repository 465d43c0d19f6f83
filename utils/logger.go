package utils

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerOptions logger options
type LoggerOptions struct {
	Level      string
	File       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
}

// NewLogger create console logger, tee json lines to a rolling file when file is set
func NewLogger(options LoggerOptions) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if options.Level != "" {
		var err error
		level, err = zapcore.ParseLevel(options.Level)
		if err != nil {
			return nil, err
		}
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stderr), level),
	}

	if options.File != "" {
		sink := &lumberjack.Logger{
			Filename:   options.File,
			MaxSize:    options.MaxSize,
			MaxBackups: options.MaxBackups,
			MaxAge:     options.MaxAge,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(sink), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}
