package matchduereminders

import (
	"context"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/reminder"
	"medremind/internal/core/services"
	"time"
)

type Input struct{}

type Result struct {
	At        reminder.ClockTime
	Day       reminder.Day
	Reminders []reminder.DueReminder
}

type service struct {
	log                logging.Logger
	reminderRepository reminder.Repository
	now                func() time.Time
}

// New creates the matcher. The location of the times returned by now
// defines the calendar day used for the "already sent today" check.
func New(
	log logging.Logger,
	reminderRepository reminder.Repository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                log,
		reminderRepository: reminderRepository,
		now:                now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	now := s.now()
	options := reminder.DueOptionsAt(now)
	rows, err := s.reminderRepository.ReadDue(ctx, options)
	if err != nil {
		logging.Error(
			ctx,
			s.log,
			err,
			logging.Entry("at", options.At),
			logging.Entry("day", options.Day),
		)
		return result, err
	}

	due := make([]reminder.DueReminder, 0, len(rows))
	for _, row := range rows {
		if !row.Reminder.IsDue(now) {
			s.log.Warning(
				ctx,
				"Store returned a reminder that is not due, skipped.",
				logging.Entry("reminderID", row.Reminder.ID),
				logging.Entry("at", options.At),
			)
			continue
		}
		due = append(due, row)
	}

	s.log.Debug(
		ctx,
		"Got due reminders.",
		logging.Entry("at", options.At),
		logging.Entry("count", len(due)),
	)
	return Result{At: options.At, Day: options.Day, Reminders: due}, nil
}
