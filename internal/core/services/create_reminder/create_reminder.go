package createreminder

import (
	"context"
	"errors"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/medication"
	"medremind/internal/core/domain/reminder"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	"medremind/internal/core/services/auth"
	"time"
)

type Input struct {
	UserID       user.ID
	MedicationID medication.ID
	RemindTime   reminder.ClockTime
	NotifyType   reminder.NotifyType
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	Reminder reminder.ReminderWithMedication
}

type service struct {
	log                  logging.Logger
	medicationRepository medication.Repository
	reminderRepository   reminder.Repository
	now                  func() time.Time
}

func New(
	log logging.Logger,
	medicationRepository medication.Repository,
	reminderRepository reminder.Repository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if medicationRepository == nil {
		panic(e.NewNilArgumentError("medicationRepository"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                  log,
		medicationRepository: medicationRepository,
		reminderRepository:   reminderRepository,
		now:                  now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.NotifyType == "" {
		input.NotifyType = reminder.DEFAULT_NOTIFY_TYPE
	}
	if _, err := reminder.ParseNotifyType(string(input.NotifyType)); err != nil {
		return result, err
	}

	m, err := s.medicationRepository.GetByID(ctx, input.MedicationID)
	if errors.Is(err, medication.ErrMedicationDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	if m.UserID != input.UserID {
		return result, medication.ErrMedicationDoesNotExist
	}

	created, err := s.reminderRepository.Create(ctx, reminder.CreateInput{
		MedicationID: m.ID,
		UserID:       input.UserID,
		RemindTime:   input.RemindTime,
		NotifyType:   input.NotifyType,
		Active:       true,
		CreatedAt:    s.now(),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(
		ctx,
		"Reminder successfully created.",
		logging.Entry("reminderID", created.ID),
		logging.Entry("medicationID", m.ID),
		logging.Entry("at", created.RemindTime),
	)
	result.Reminder = reminder.ReminderWithMedication{
		Reminder:         created,
		MedicationName:   m.Name,
		MedicationDosage: m.Dosage,
	}
	return result, nil
}
