package logging

import (
	"context"
	"medremind/internal/core/domain/logging"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

type ZapLogger struct {
	logger *zap.Logger
	sugar  *zap.SugaredLogger
	// Error records are also captured by Sentry. The Sentry client must be
	// initialized before.
	reportErrors bool
}

func NewZapLogger(reportErrors bool) *ZapLogger {
	logger, err := zap.NewProduction(zap.AddCallerSkip(1))
	if err != nil {
		panic("Could not create Zap logger.")
	}
	return newZapLogger(logger, reportErrors)
}

func newZapLogger(logger *zap.Logger, reportErrors bool) *ZapLogger {
	return &ZapLogger{logger: logger, sugar: logger.Sugar(), reportErrors: reportErrors}
}

func (l *ZapLogger) Sync() {
	l.logger.Sync()
}

// Zap returns the underlying logger for libraries that need one.
func (l *ZapLogger) Zap() *zap.Logger {
	return l.logger
}

func (l *ZapLogger) Debug(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.sugar.Debugw(msg, prepareArgs(entries...)...)
}

func (l *ZapLogger) Info(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.sugar.Infow(msg, prepareArgs(entries...)...)
}

func (l *ZapLogger) Warning(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.sugar.Warnw(msg, prepareArgs(entries...)...)
}

func (l *ZapLogger) Error(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.sugar.Errorw(msg, prepareArgs(entries...)...)
	if l.reportErrors {
		capture(msg, entries...)
	}
}

func capture(msg string, entries ...logging.LogEntry) {
	sentry.WithScope(func(scope *sentry.Scope) {
		var err error
		for _, entry := range entries {
			if e, ok := entry.Value.(error); ok && err == nil {
				err = e
			}
			scope.SetExtra(entry.Key, entry.Value)
		}
		scope.SetExtra("message", msg)
		if err != nil {
			sentry.CaptureException(err)
			return
		}
		sentry.CaptureMessage(msg)
	})
}

func prepareArgs(entries ...logging.LogEntry) []interface{} {
	args := make([]interface{}, 0, len(entries)*2)
	for _, e := range entries {
		args = append(args, e.Key, e.Value)
	}
	return args
}
