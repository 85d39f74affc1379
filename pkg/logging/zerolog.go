package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ZerologOptions describes zerolog configuration supplied at creation time.
type ZerologOptions struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
}

// ZerologLogger implements Logger on top of zerolog.
type ZerologLogger struct {
	base zerolog.Logger
}

// NewZerologLogger creates a configured zerolog-backed Logger.
func NewZerologLogger(opts ZerologOptions) (*ZerologLogger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	var output io.Writer = writer
	if opts.HumanReadable {
		console := zerolog.NewConsoleWriter()
		console.Out = writer
		console.TimeFormat = time.RFC3339
		output = console
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &ZerologLogger{base: logger}, nil
}

func (l *ZerologLogger) write(event *zerolog.Event, msg string, fields []Field) {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case error:
			event = event.AnErr(f.Key, v)
		case time.Duration:
			event = event.Dur(f.Key, v)
		default:
			event = event.Interface(f.Key, v)
		}
	}
	event.Msg(msg)
}

func (l *ZerologLogger) Debug(msg string, fields ...Field) {
	l.write(l.base.Debug(), msg, fields)
}

func (l *ZerologLogger) Info(msg string, fields ...Field) {
	l.write(l.base.Info(), msg, fields)
}

func (l *ZerologLogger) Warn(msg string, fields ...Field) {
	l.write(l.base.Warn(), msg, fields)
}

func (l *ZerologLogger) Error(msg string, fields ...Field) {
	l.write(l.base.Error(), msg, fields)
}

// With returns a derived logger that always writes the supplied fields.
func (l *ZerologLogger) With(fields ...Field) Logger {
	builder := l.base.With()
	for _, f := range fields {
		builder = builder.Interface(f.Key, f.Value)
	}
	return &ZerologLogger{base: builder.Logger()}
}

// WithContext is a no-op for zerolog; context values are not logged.
func (l *ZerologLogger) WithContext(ctx context.Context) Logger {
	return l
}
