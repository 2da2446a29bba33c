package uow

import (
	"context"
	"medremind/internal/core/domain/medication"
	"medremind/internal/core/domain/reminder"
	"medremind/internal/core/domain/user"
)

type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	Users() user.UserRepository
	Medications() medication.Repository
	Reminders() reminder.Repository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}
