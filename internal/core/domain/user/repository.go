package user

import (
	"context"
	c "medremind/internal/core/domain/common"
	"time"
)

type CreateUserInput struct {
	Name         string
	Email        c.Email
	Phone        c.Optional[c.PhoneNumber]
	PasswordHash c.Optional[PasswordHash]
	CreatedAt    time.Time
}

type UpdateUserInput struct {
	ID            ID
	DoNameUpdate  bool
	Name          string
	DoPhoneUpdate bool
	Phone         c.Optional[c.PhoneNumber]
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	// Ensure creates the user or refreshes name and phone of an existing user
	// with the same email. Password hash is never overwritten.
	Ensure(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	Update(ctx context.Context, input UpdateUserInput) (User, error)
}
