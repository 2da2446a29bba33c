package uow

import (
	"context"
	"errors"
	"medremind/internal/core/domain/medication"
	"medremind/internal/core/domain/reminder"
	"medremind/internal/core/domain/user"
)

type FakeUnitOfWorkContext struct {
	UserRepository       *user.FakeUserRepository
	MedicationRepository *medication.FakeRepository
	ReminderRepository   *reminder.FakeRepository
	WasRollbackCalled    bool
	WasCommitCalled      bool
}

func NewFakeUnitOfWorkContext(
	userRepository *user.FakeUserRepository,
	medicationRepository *medication.FakeRepository,
	reminderRepository *reminder.FakeRepository,
) *FakeUnitOfWorkContext {
	return &FakeUnitOfWorkContext{
		UserRepository:       userRepository,
		MedicationRepository: medicationRepository,
		ReminderRepository:   reminderRepository,
	}
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	c.WasRollbackCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	c.WasCommitCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Users() user.UserRepository {
	return c.UserRepository
}

func (c *FakeUnitOfWorkContext) Medications() medication.Repository {
	return c.MedicationRepository
}

func (c *FakeUnitOfWorkContext) Reminders() reminder.Repository {
	return c.ReminderRepository
}

// FakeUnitOfWork hands out a single shared context, so a rollback does not
// undo changes made through it. Tests assert on the commit/rollback flags.
type FakeUnitOfWork struct {
	Context    *FakeUnitOfWorkContext
	BeginError bool
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	return &FakeUnitOfWork{
		Context: NewFakeUnitOfWorkContext(
			user.NewFakeUserRepository(),
			medication.NewFakeRepository(),
			reminder.NewFakeRepository(),
		),
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	if u.BeginError {
		return nil, errors.New("could not begin transaction")
	}
	return u.Context, nil
}

func (u *FakeUnitOfWork) Users() *user.FakeUserRepository {
	return u.Context.UserRepository
}

func (u *FakeUnitOfWork) Medications() *medication.FakeRepository {
	return u.Context.MedicationRepository
}

func (u *FakeUnitOfWork) Reminders() *reminder.FakeRepository {
	return u.Context.ReminderRepository
}
