package sendreminder

import (
	"context"
	"fmt"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/reminder"
	"medremind/internal/core/services"
	"sync"
	"time"
)

type Input struct {
	Reminder reminder.DueReminder
}

type Attempt struct {
	Channel reminder.Channel
	Skipped bool
	Err     error
}

func (a Attempt) Succeeded() bool {
	return !a.Skipped && a.Err == nil
}

type Result struct {
	Attempts   []Attempt
	MarkedSent bool
}

type service struct {
	log                logging.Logger
	reminderRepository reminder.Repository
	emailSender        reminder.EmailSender
	callPlacer         reminder.CallPlacer
	eventPublisher     reminder.EventPublisher
	now                func() time.Time
}

// New creates the dispatcher. Channel attempts run concurrently and their
// failures are logged only. The reminder is stamped as sent once all
// attempts are resolved, whatever their outcome.
func New(
	log logging.Logger,
	reminderRepository reminder.Repository,
	emailSender reminder.EmailSender,
	callPlacer reminder.CallPlacer,
	eventPublisher reminder.EventPublisher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	if emailSender == nil {
		panic(e.NewNilArgumentError("emailSender"))
	}
	if callPlacer == nil {
		panic(e.NewNilArgumentError("callPlacer"))
	}
	if eventPublisher == nil {
		panic(e.NewNilArgumentError("eventPublisher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                log,
		reminderRepository: reminderRepository,
		emailSender:        emailSender,
		callPlacer:         callPlacer,
		eventPublisher:     eventPublisher,
		now:                now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	due := input.Reminder
	channels := due.Reminder.NotifyType.Channels()
	result.Attempts = make([]Attempt, len(channels))

	var wg sync.WaitGroup
	for ix, channel := range channels {
		wg.Add(1)
		go func(ix int, channel reminder.Channel) {
			defer wg.Done()
			result.Attempts[ix] = s.attempt(ctx, channel, due)
		}(ix, channel)
	}
	wg.Wait()

	for _, attempt := range result.Attempts {
		if attempt.Err != nil {
			s.log.Error(
				ctx,
				"Could not deliver reminder.",
				logging.Entry("reminderID", due.Reminder.ID),
				logging.Entry("channel", attempt.Channel),
				logging.Entry("err", attempt.Err),
			)
		}
	}

	now := s.now()
	if err := s.eventPublisher.PublishReminderEvent(ctx, due, now); err != nil {
		s.log.Warning(
			ctx,
			"Could not publish reminder event.",
			logging.Entry("reminderID", due.Reminder.ID),
			logging.Entry("err", err),
		)
	}

	result.MarkedSent, err = s.reminderRepository.MarkSent(ctx, reminder.MarkSentInput{
		ID:  due.Reminder.ID,
		At:  now,
		Day: reminder.DayOf(now),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", due.Reminder.ID))
		return result, err
	}
	if !result.MarkedSent {
		s.log.Warning(
			ctx,
			"Reminder has already been marked sent today.",
			logging.Entry("reminderID", due.Reminder.ID),
		)
	}

	s.log.Info(
		ctx,
		"Reminder processed.",
		logging.Entry("reminderID", due.Reminder.ID),
		logging.Entry("notifyType", due.Reminder.NotifyType),
		logging.Entry("attempts", result.Attempts),
	)
	return result, nil
}

func (s *service) attempt(ctx context.Context, channel reminder.Channel, due reminder.DueReminder) (attempt Attempt) {
	attempt.Channel = channel
	defer func() {
		if r := recover(); r != nil {
			attempt.Err = fmt.Errorf("%s channel panicked: %v", channel, r)
		}
	}()

	switch channel {
	case reminder.ChannelEmail:
		attempt.Err = s.emailSender.SendReminderEmail(ctx, due.EmailMessage())
	case reminder.ChannelPhone:
		if !due.UserPhone.IsPresent || due.UserPhone.Value == "" {
			s.log.Info(
				ctx,
				"No phone number on file, call skipped.",
				logging.Entry("reminderID", due.Reminder.ID),
				logging.Entry("userID", due.Reminder.UserID),
			)
			attempt.Skipped = true
			return attempt
		}
		attempt.Err = s.callPlacer.PlaceReminderCall(ctx, due.CallMessage())
	default:
		attempt.Err = fmt.Errorf("unknown channel %q", channel)
	}
	return attempt
}
