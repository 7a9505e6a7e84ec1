package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Logging levels.
const (
	LevelNone   = "none"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

// LoggingConfig configures diagnostic logging. Console output goes to
// stderr so stdout stays free for command output.
type LoggingConfig struct {
	Level       string `yaml:"level"`       // none, normal or debug
	Destination string `yaml:"destination"` // optional log file
	Mode        string `yaml:"mode"`        // append or overwrite (default)
}

func (c LoggingConfig) validate() error {
	switch c.Level {
	case "", LevelNone, LevelNormal, LevelDebug:
	default:
		return fmt.Errorf("%w: logging.level %q (must be none, normal or debug)", ErrInvalidValue, c.Level)
	}
	switch c.Mode {
	case "", "append", "overwrite":
	default:
		return fmt.Errorf("%w: logging.mode %q (must be append or overwrite)", ErrInvalidValue, c.Mode)
	}
	return validateFieldLength("logging.destination", c.Destination, MaxPathLength)
}

// Logger builds the program logger writing console entries to w.
// The returned close function flushes and closes the log file, if any.
func (c LoggingConfig) Logger(w io.Writer) (*zap.Logger, func() error, error) {
	consoleLevel, consoleOn := levelFor(c.Level)

	var cores []zapcore.Core
	if consoleOn {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeCaller = nil
		ec.TimeKey = zapcore.OmitKey
		if isTerminal(w) {
			ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			ec.EncodeLevel = zapcore.CapitalLevelEncoder
		}
		cores = append(cores, zapcore.NewCore(consoleEncoder{zapcore.NewConsoleEncoder(ec)}, zapcore.AddSync(w), consoleLevel))
	}

	closer := func() error { return nil }
	if c.Destination != "" {
		flags := os.O_CREATE | os.O_WRONLY
		if c.Mode == "append" {
			flags |= os.O_APPEND
		} else {
			flags |= os.O_TRUNC
		}
		f, err := os.OpenFile(c.Destination, flags, 0o644) // #nosec G304 -- user-provided log path
		if err != nil {
			return nil, nil, fmt.Errorf("opening log destination %s: %w", c.Destination, err)
		}
		fileLevel := zapcore.DebugLevel
		if c.Level == LevelNormal {
			fileLevel = zapcore.InfoLevel
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.Lock(f),
			fileLevel,
		))
		closer = f.Close
	}

	if len(cores) == 0 {
		return zap.NewNop(), closer, nil
	}

	logger := zap.New(zapcore.NewTee(cores...)).Named("md2wx")
	return logger, func() error {
		_ = logger.Sync()
		return closer()
	}, nil
}

func levelFor(level string) (zapcore.LevelEnabler, bool) {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel, true
	case LevelNormal, "":
		return zapcore.InfoLevel, true
	default:
		return nil, false
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// consoleEncoder prints errors without their verbose chain.
type consoleEncoder struct {
	zapcore.Encoder
}

func (c consoleEncoder) Clone() zapcore.Encoder {
	return consoleEncoder{c.Encoder.Clone()}
}

func (c consoleEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	out := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			if e, ok := f.Interface.(error); ok {
				f.Interface = errors.New(e.Error())
			}
		}
		out = append(out, f)
	}
	return c.Encoder.EncodeEntry(ent, out)
}
