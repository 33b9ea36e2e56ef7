// Package logging handles logging throughout ruciobot.
package logging

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
	ctxInternal "github.com/rucio/ruciobot/server/context"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	logurzap "logur.dev/adapter/zap"
	"logur.dev/logur"
)

// Logger is the logging interface used throughout the code.
type Logger interface {
	logur.Logger
	logur.LoggerContext
	io.Closer
}

type logger struct {
	logur.LoggerFacade
	io.Closer
}

// NewLoggerFromLevel builds the production logger. Fields set on a context
// via the server/context package are attached to every log call that takes
// that context.
func NewLoggerFromLevel(lvl LogLevel) (Logger, error) {
	structuredLogger, err := newStructuredLoggerFromLevel(lvl)
	if err != nil {
		return nil, err
	}

	ctxLogger := logur.WithContextExtractor(
		structuredLogger,
		func(ctx context.Context) map[string]interface{} {
			return ctxInternal.ExtractFields(ctx)
		},
	)

	return &logger{
		LoggerFacade: ctxLogger,
		Closer:       structuredLogger,
	}, nil
}

type structuredLogger struct {
	z *zap.SugaredLogger
	logur.Logger
}

func newStructuredLoggerFromLevel(lvl LogLevel) (*structuredLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(lvl.zLevel)

	baseLogger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "initializing structured logger")
	}
	baseLogger = baseLogger.WithOptions(zap.AddCallerSkip(1))

	return &structuredLogger{
		z:      baseLogger.Sugar(),
		Logger: logurzap.New(baseLogger),
	}, nil
}

func (l *structuredLogger) Close() error {
	return l.z.Sync()
}

// NewNoopCtxLogger creates a logger instance that only writes through the
// test harness. Used for testing.
func NewNoopCtxLogger(t *testing.T) Logger {
	zapLogger := zaptest.NewLogger(t, zaptest.Level(zap.DebugLevel))
	sLogger := &structuredLogger{
		z:      zapLogger.Sugar(),
		Logger: logurzap.New(zapLogger),
	}

	return &logger{
		LoggerFacade: logur.WithContextExtractor(
			sLogger,
			func(ctx context.Context) map[string]interface{} {
				return ctxInternal.ExtractFields(ctx)
			},
		),
		Closer: io.NopCloser(nil),
	}
}

// LogLevel is a kong-decodable log level flag value.
type LogLevel struct {
	zLevel zapcore.Level
}

func (l *LogLevel) Decode(ctx *kong.DecodeContext) error {
	var rawLevel string
	err := ctx.Scan.PopValueInto("string", &rawLevel)
	if err != nil {
		return err
	}
	switch strings.ToLower(rawLevel) {
	case "debug":
		ctx.Value.Target.Set(reflect.ValueOf(Debug))
	case "info":
		ctx.Value.Target.Set(reflect.ValueOf(Info))
	case "warn":
		ctx.Value.Target.Set(reflect.ValueOf(Warn))
	case "error":
		ctx.Value.Target.Set(reflect.ValueOf(Error))
	default:
		return fmt.Errorf("log level %q is not supported", rawLevel)
	}
	return nil
}

var (
	Debug = LogLevel{zLevel: zapcore.DebugLevel}
	Info  = LogLevel{zLevel: zapcore.InfoLevel}
	Warn  = LogLevel{zLevel: zapcore.WarnLevel}
	Error = LogLevel{zLevel: zapcore.ErrorLevel}
)
