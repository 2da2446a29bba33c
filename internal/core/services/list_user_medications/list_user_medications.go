package listusermedications

import (
	"context"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/medication"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	"medremind/internal/core/services/auth"
)

type Input struct {
	UserID user.ID
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	Medications []medication.Medication
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
	medications, err := s.medicationRepository.ReadByUser(ctx, input.UserID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	s.log.Debug(
		ctx,
		"Medications read.",
		logging.Entry("userID", input.UserID),
		logging.Entry("count", len(medications)),
	)
	return Result{Medications: medications}, nil
}
