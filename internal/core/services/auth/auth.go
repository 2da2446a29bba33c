package auth

import (
	"context"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
)

type contextAuthToken string

const CONTEXT_AUTH_TOKEN_KEY = contextAuthToken("authToken")

func WithAuthToken(ctx context.Context, token user.AuthToken) context.Context {
	return context.WithValue(ctx, CONTEXT_AUTH_TOKEN_KEY, token)
}

type Input interface {
	WithAuthenticatedUser(u user.User) Input
}

// Authenticator resolves the user on whose behalf a request runs.
type Authenticator interface {
	Authenticate(ctx context.Context) (user.User, error)
}

type service[T Input, S any] struct {
	authenticator Authenticator
	inner         services.Service[T, S]
}

func WithAuthentication[T Input, S any](
	authenticator Authenticator,
	inner services.Service[T, S],
) services.Service[T, S] {
	if authenticator == nil {
		panic(e.NewNilArgumentError("authenticator"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &service[T, S]{
		authenticator: authenticator,
		inner:         inner,
	}
}

func (s *service[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	u, err := s.authenticator.Authenticate(ctx)
	if err != nil {
		return result, err
	}
	return s.inner.Run(ctx, input.WithAuthenticatedUser(u).(T))
}

type tokenAuthenticator struct {
	userRepository user.UserRepository
	tokens         user.TokenIssuer
}

func NewTokenAuthenticator(userRepository user.UserRepository, tokens user.TokenIssuer) Authenticator {
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if tokens == nil {
		panic(e.NewNilArgumentError("tokens"))
	}
	return &tokenAuthenticator{userRepository: userRepository, tokens: tokens}
}

func (a *tokenAuthenticator) Authenticate(ctx context.Context) (u user.User, err error) {
	token, ok := ctx.Value(CONTEXT_AUTH_TOKEN_KEY).(user.AuthToken)
	if !ok {
		return u, user.ErrUserDoesNotExist
	}
	userID, err := a.tokens.ParseToken(token)
	if err != nil {
		return u, user.ErrUserDoesNotExist
	}
	return a.userRepository.GetByID(ctx, userID)
}

// defaultUserAuthenticator runs every request as one preconfigured user. It
// serves single-user deployments without authentication.
type defaultUserAuthenticator struct {
	userRepository user.UserRepository
	userID         user.ID
}

func NewDefaultUserAuthenticator(userRepository user.UserRepository, userID user.ID) Authenticator {
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	return &defaultUserAuthenticator{userRepository: userRepository, userID: userID}
}

func (a *defaultUserAuthenticator) Authenticate(ctx context.Context) (user.User, error) {
	return a.userRepository.GetByID(ctx, a.userID)
}
