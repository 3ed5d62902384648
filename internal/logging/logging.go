// Package logging provides the process logger: a kratos log.Logger backed
// by zap.
package logging

import (
	"fmt"
	"io"

	"github.com/go-kratos/kratos/v2/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ log.Logger = (*zapLogger)(nil)

type zapLogger struct {
	zl *zap.Logger
}

// New returns a logger writing human-readable lines to w, dropping
// records below level (debug, info, warn, error).
func New(level string, w io.Writer) log.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), zapcore.DebugLevel)
	l := &zapLogger{zl: zap.New(core)}

	return log.NewFilter(l, log.FilterLevel(log.ParseLevel(level)))
}

func (l *zapLogger) Log(level log.Level, keyvals ...any) error {
	if len(keyvals) == 0 {
		return nil
	}
	if len(keyvals)%2 != 0 {
		keyvals = append(keyvals, "KEYVALS UNPAIRED")
	}

	var msg string
	fields := make([]zap.Field, 0, len(keyvals)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key := fmt.Sprint(keyvals[i])
		if key == log.DefaultMessageKey {
			msg = fmt.Sprint(keyvals[i+1])
			continue
		}
		fields = append(fields, zap.Any(key, keyvals[i+1]))
	}

	switch level {
	case log.LevelDebug:
		l.zl.Debug(msg, fields...)
	case log.LevelInfo:
		l.zl.Info(msg, fields...)
	case log.LevelWarn:
		l.zl.Warn(msg, fields...)
	default:
		// Helper.Fatal exits by itself after logging.
		l.zl.Error(msg, fields...)
	}
	return nil
}
