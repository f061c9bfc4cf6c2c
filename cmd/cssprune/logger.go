package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// Log levels accepted by --log-level
const (
	logLevelNone   = "none"
	logLevelNormal = "normal"
	logLevelDebug  = "debug"
)

// resolveLogLevel applies --quiet and --verbose on top of --log-level
func resolveLogLevel() string {
	if getBoolWithFallback("quiet", "quiet", false) {
		return logLevelNone
	}
	if getBoolWithFallback("verbose", "verbose", false) {
		return logLevelDebug
	}
	return getString("log-level", logLevelNormal)
}

// newLogger builds the console logger writing to out. The CLI passes stderr
// so that reports written to stdout stay machine-readable. Error entries drop
// their errorVerbose field.
func newLogger(level string, out zapcore.WriteSyncer, color bool) (*zap.Logger, error) {
	var lowest zapcore.Level
	switch level {
	case logLevelNone:
		return zap.NewNop(), nil
	case logLevelNormal:
		lowest = zapcore.InfoLevel
	case logLevelDebug:
		lowest = zapcore.DebugLevel
	default:
		return nil, fmt.Errorf("unknown log level %q (want none, normal or debug)", level)
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if color {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lowest <= lvl && lvl < zapcore.ErrorLevel
	})
	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(ec), out, lowPriority),
		zapcore.NewCore(newEncoder(ec), out, highPriority),
	)
	return zap.New(core).Named("cssprune"), nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && (info.Mode()&os.ModeCharDevice) != 0
}

// consoleEnc drops the errorVerbose field from error entries
type consoleEnc struct {
	zapcore.Encoder
}

func newEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return consoleEnc{zapcore.NewConsoleEncoder(cfg)}
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	newFields := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			if e, ok := f.Interface.(error); ok {
				f.Interface = errors.New(e.Error())
			}
		}
		newFields = append(newFields, f)
	}
	return c.Encoder.EncodeEntry(ent, newFields)
}
