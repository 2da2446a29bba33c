package scheduler

import (
	"context"
	"fmt"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/logging"
	checkduereminders "medremind/internal/core/services/check_due_reminders"
	"time"

	"github.com/robfig/cron/v3"
)

// EVERY_MINUTE fires at the start of every wall-clock minute.
const EVERY_MINUTE = "* * * * *"

type Poller interface {
	Run(ctx context.Context, input checkduereminders.Input) (checkduereminders.Result, error)
	Wait(ctx context.Context) error
}

// Scheduler triggers a poll of due reminders on a cron spec. A poll that
// fails is logged and the next one runs on schedule.
type Scheduler struct {
	log    logging.Logger
	cron   *cron.Cron
	poller Poller
}

func New(
	log logging.Logger,
	poller Poller,
	location *time.Location,
	spec string,
) (*Scheduler, error) {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if poller == nil {
		panic(e.NewNilArgumentError("poller"))
	}
	if location == nil {
		panic(e.NewNilArgumentError("location"))
	}
	s := &Scheduler{log: log, poller: poller}
	s.cron = cron.New(
		cron.WithLocation(location),
		cron.WithChain(cron.Recover(cronLogger{log: log})),
		cron.WithLogger(cronLogger{log: log}),
	)
	if _, err := s.cron.AddFunc(spec, s.poll); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) poll() {
	ctx := context.Background()
	result, err := s.poller.Run(ctx, checkduereminders.Input{})
	if err != nil {
		s.log.Warning(ctx, "Poll for due reminders failed.", logging.Entry("err", err))
		return
	}
	s.log.Debug(ctx, "Poll for due reminders finished.", logging.Entry("dispatched", result.Dispatched))
}

func (s *Scheduler) Start() {
	s.log.Info(context.Background(), "Starting reminder scheduler.")
	s.cron.Start()
}

// Stop prevents new polls, waits for a running poll and then for the
// dispatches it started, until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.log.Info(ctx, "Stopping reminder scheduler.")
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := s.poller.Wait(ctx); err != nil {
		s.log.Warning(ctx, "Reminder dispatches did not finish in time.", logging.Entry("err", err))
		return err
	}
	s.log.Info(ctx, "Reminder scheduler stopped.")
	return nil
}

// cronLogger routes cron's own messages, including recovered panics, to the
// application logger.
type cronLogger struct {
	log logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(context.Background(), msg, entries(keysAndValues)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logging.Error(context.Background(), l.log, err, append(entries(keysAndValues), logging.Entry("msg", msg))...)
}

func entries(keysAndValues []interface{}) []logging.LogEntry {
	result := make([]logging.LogEntry, 0, len(keysAndValues)/2)
	for ix := 0; ix+1 < len(keysAndValues); ix += 2 {
		result = append(result, logging.Entry(fmt.Sprint(keysAndValues[ix]), keysAndValues[ix+1]))
	}
	return result
}
