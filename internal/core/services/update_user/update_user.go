package updateuser

import (
	"context"
	c "medremind/internal/core/domain/common"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	"medremind/internal/core/services/auth"
)

type Input struct {
	UserID        user.ID
	DoNameUpdate  bool
	Name          string
	DoPhoneUpdate bool
	Phone         c.Optional[c.PhoneNumber]
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.DoNameUpdate && input.Name == "" {
		return result, e.NewValidationError("name", "must not be empty")
	}
	// An empty phone clears it.
	if input.DoPhoneUpdate && input.Phone.IsPresent && input.Phone.Value == "" {
		input.Phone = c.Optional[c.PhoneNumber]{}
	}

	updatedUser, err := s.userRepository.Update(
		ctx,
		user.UpdateUserInput{
			ID:            input.UserID,
			DoNameUpdate:  input.DoNameUpdate,
			Name:          input.Name,
			DoPhoneUpdate: input.DoPhoneUpdate,
			Phone:         input.Phone,
		},
	)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(
		ctx,
		"User successfully updated.",
		logging.Entry("userID", updatedUser.ID),
		logging.Entry("hasPhone", updatedUser.Phone.IsPresent),
	)
	result.User = updatedUser
	return result, nil
}
