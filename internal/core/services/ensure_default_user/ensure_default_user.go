package ensuredefaultuser

import (
	"context"
	c "medremind/internal/core/domain/common"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	"time"
)

type Input struct {
	Name  string
	Email c.Email
	Phone c.Optional[c.PhoneNumber]
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	now            func() time.Time
}

// New creates the service that upserts the single tenant of a deployment
// running without authentication. Name and phone follow the configuration
// on every start.
func New(
	log logging.Logger,
	userRepository user.UserRepository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.Ensure(ctx, user.CreateUserInput{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		CreatedAt: s.now(),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", input.Email))
		return result, err
	}
	if err := u.Validate(); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, err
	}

	s.log.Info(
		ctx,
		"Default user is ready.",
		logging.Entry("userID", u.ID),
		logging.Entry("email", u.Email),
		logging.Entry("hasPhone", u.Phone.IsPresent),
	)
	return Result{User: u}, nil
}
