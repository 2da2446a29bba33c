package getmedication

import (
	"context"
	"errors"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/medication"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	"medremind/internal/core/services/auth"
)

type Input struct {
	UserID       user.ID
	MedicationID medication.ID
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	Medication medication.Medication
}

type service struct {
	log                  logging.Logger
	medicationRepository medication.Repository
}

func New(
	log logging.Logger,
	medicationRepository medication.Repository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if medicationRepository == nil {
		panic(e.NewNilArgumentError("medicationRepository"))
	}
	return &service{
		log:                  log,
		medicationRepository: medicationRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
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
	return Result{Medication: m}, nil
}
