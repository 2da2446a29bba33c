package logging

import (
	"context"
	"errors"
	"medremind/internal/core/domain/logging"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestEntriesBecomeFields(t *testing.T) {
	assert := require.New(t)
	core, logs := observer.New(zapcore.DebugLevel)
	log := newZapLogger(zap.New(core), false)
	ctx := context.Background()

	log.Debug(ctx, "debug")
	log.Info(ctx, "Reminder has been sent.", logging.Entry("reminderID", 7), logging.Entry("channel", "email"))
	log.Warning(ctx, "warning")
	log.Error(ctx, "Unexpected error occurred.", logging.Entry("err", errors.New("boom")))

	entries := logs.AllUntimed()
	assert.Len(entries, 4)
	assert.Equal(zapcore.DebugLevel, entries[0].Level)
	assert.Equal(zapcore.WarnLevel, entries[2].Level)
	assert.Equal(zapcore.ErrorLevel, entries[3].Level)

	assert.Equal("Reminder has been sent.", entries[1].Message)
	fields := entries[1].ContextMap()
	assert.Equal(int64(7), fields["reminderID"])
	assert.Equal("email", fields["channel"])
}

func TestErrorReportingWithoutSentryClient(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	log := newZapLogger(zap.New(core), true)

	require.NotPanics(t, func() {
		log.Error(context.Background(), "Could not deliver reminder.", logging.Entry("err", errors.New("boom")))
	})
	require.Equal(t, 1, logs.Len())
}
