package createmedication

import (
	"context"
	c "medremind/internal/core/domain/common"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/medication"
	"medremind/internal/core/domain/reminder"
	uow "medremind/internal/core/domain/unit_of_work"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	"medremind/internal/core/services/auth"
	"time"
)

type Input struct {
	UserID      user.ID
	Name        string
	Dosage      string
	Frequency   string
	Times       []reminder.ClockTime
	StartDate   c.Optional[time.Time]
	EndDate     c.Optional[time.Time]
	ExpiryDate  c.Optional[time.Time]
	Notes       string
	Description string
	ImagePath   c.Optional[string]
	NotifyType  reminder.NotifyType
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

func (i Input) Validate() error {
	if i.Name == "" {
		return medication.ErrNameRequired
	}
	return medication.ValidateSchedule(i.Times, i.StartDate, i.EndDate)
}

type Result struct {
	Medication medication.Medication
	Reminders  []reminder.Reminder
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
	now        func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:        log,
		unitOfWork: unitOfWork,
		now:        now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := input.Validate(); err != nil {
		return result, err
	}
	if input.Frequency == "" {
		input.Frequency = medication.DEFAULT_FREQUENCY
	}
	if input.NotifyType == "" {
		input.NotifyType = reminder.DEFAULT_NOTIFY_TYPE
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	defer uow.Rollback(ctx)

	now := s.now()
	created, err := uow.Medications().Create(ctx, medication.CreateInput{
		UserID:      input.UserID,
		Name:        input.Name,
		Dosage:      input.Dosage,
		Frequency:   input.Frequency,
		Times:       input.Times,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		ExpiryDate:  input.ExpiryDate,
		Notes:       input.Notes,
		Description: input.Description,
		ImagePath:   input.ImagePath,
		CreatedAt:   now,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	result.Reminders = make([]reminder.Reminder, 0, len(input.Times))
	for _, at := range input.Times {
		createdReminder, err := uow.Reminders().Create(ctx, reminder.CreateInput{
			MedicationID: created.ID,
			UserID:       input.UserID,
			RemindTime:   at,
			NotifyType:   input.NotifyType,
			Active:       true,
			CreatedAt:    now,
		})
		if err != nil {
			logging.Error(
				ctx,
				s.log,
				err,
				logging.Entry("medicationID", created.ID),
				logging.Entry("at", at),
			)
			return result, err
		}
		result.Reminders = append(result.Reminders, createdReminder)
	}

	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("medicationID", created.ID))
		return result, err
	}

	s.log.Info(
		ctx,
		"Medication successfully created.",
		logging.Entry("medicationID", created.ID),
		logging.Entry("userID", input.UserID),
		logging.Entry("reminders", len(result.Reminders)),
	)
	result.Medication = created
	return result, nil
}
