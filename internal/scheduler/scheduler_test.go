package scheduler

import (
	"context"
	"errors"
	"medremind/internal/core/domain/logging"
	checkduereminders "medremind/internal/core/services/check_due_reminders"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubPoller struct {
	runs    atomic.Int32
	err     error
	waitErr error
	panics  bool
}

func (p *stubPoller) Run(ctx context.Context, input checkduereminders.Input) (checkduereminders.Result, error) {
	p.runs.Add(1)
	if p.panics {
		panic("poll exploded")
	}
	return checkduereminders.Result{Dispatched: 1}, p.err
}

func (p *stubPoller) Wait(ctx context.Context) error {
	return p.waitErr
}

func TestPollsOnSchedule(t *testing.T) {
	// Setup ---
	poller := &stubPoller{}
	scheduler, err := New(logging.NewFakeLogger(), poller, time.UTC, "@every 1s")
	require.Nil(t, err)

	// Exercise ---
	scheduler.Start()

	// Verify ---
	require.Eventually(t, func() bool { return poller.runs.Load() >= 2 }, 5*time.Second, 50*time.Millisecond)
	require.Nil(t, scheduler.Stop(context.Background()))
}

func TestKeepsPollingAfterErrorsAndPanics(t *testing.T) {
	// Setup ---
	log := logging.NewFakeLogger()
	poller := &stubPoller{err: errors.New("database is down"), panics: true}
	scheduler, err := New(log, poller, time.UTC, "@every 1s")
	require.Nil(t, err)

	// Exercise ---
	scheduler.Start()

	// Verify ---
	require.Eventually(t, func() bool { return poller.runs.Load() >= 2 }, 5*time.Second, 50*time.Millisecond)
	require.Nil(t, scheduler.Stop(context.Background()))
	require.NotEmpty(t, log.Records(logging.ERROR))
}

func TestInvalidSpec(t *testing.T) {
	_, err := New(logging.NewFakeLogger(), &stubPoller{}, time.UTC, "every minute please")

	require.NotNil(t, err)
}

func TestStopReportsUnfinishedDispatches(t *testing.T) {
	poller := &stubPoller{waitErr: context.DeadlineExceeded}
	scheduler, err := New(logging.NewFakeLogger(), poller, time.UTC, EVERY_MINUTE)
	require.Nil(t, err)
	scheduler.Start()

	err = scheduler.Stop(context.Background())

	require.ErrorIs(t, err, context.DeadlineExceeded)
}
