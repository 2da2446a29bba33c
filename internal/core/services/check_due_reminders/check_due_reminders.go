package checkduereminders

import (
	"context"
	"fmt"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/reminder"
	"medremind/internal/core/services"
	matchduereminders "medremind/internal/core/services/match_due_reminders"
	sendreminder "medremind/internal/core/services/send_reminder"
	"sync"
)

type Input struct{}

type Result struct {
	Dispatched int
}

// Service runs one poll: it matches due reminders synchronously and hands
// every match to its own goroutine. Run does not wait for the dispatches.
type Service struct {
	log          logging.Logger
	matchService services.Service[matchduereminders.Input, matchduereminders.Result]
	sendService  services.Service[sendreminder.Input, sendreminder.Result]
	inFlight     sync.WaitGroup
}

func New(
	log logging.Logger,
	matchService services.Service[matchduereminders.Input, matchduereminders.Result],
	sendService services.Service[sendreminder.Input, sendreminder.Result],
) *Service {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if matchService == nil {
		panic(e.NewNilArgumentError("matchService"))
	}
	if sendService == nil {
		panic(e.NewNilArgumentError("sendService"))
	}
	return &Service{
		log:          log,
		matchService: matchService,
		sendService:  sendService,
	}
}

func (s *Service) Run(ctx context.Context, input Input) (result Result, err error) {
	matched, err := s.matchService.Run(ctx, matchduereminders.Input{})
	if err != nil {
		s.log.Warning(ctx, "Poll abandoned.", logging.Entry("err", err))
		return result, err
	}

	dispatchCtx := context.WithoutCancel(ctx)
	for _, due := range matched.Reminders {
		s.inFlight.Add(1)
		go s.dispatch(dispatchCtx, due)
	}

	result.Dispatched = len(matched.Reminders)
	if result.Dispatched > 0 {
		s.log.Info(
			ctx,
			"Due reminders dispatched.",
			logging.Entry("at", matched.At),
			logging.Entry("count", result.Dispatched),
		)
	}
	return result, nil
}

func (s *Service) dispatch(ctx context.Context, due reminder.DueReminder) {
	defer s.inFlight.Done()
	defer func() {
		if r := recover(); r != nil {
			logging.Error(
				ctx,
				s.log,
				fmt.Errorf("dispatch panicked: %v", r),
				logging.Entry("reminderID", due.Reminder.ID),
			)
		}
	}()
	// Failures are logged by the send service.
	s.sendService.Run(ctx, sendreminder.Input{Reminder: due})
}

// Wait blocks until every dispatch started so far has finished or ctx is
// done.
func (s *Service) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inFlight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
