package updatereminder

import (
	"context"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/reminder"
	"medremind/internal/core/domain/user"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*reminder.FakeRepository, reminder.Reminder) {
	repository := reminder.NewFakeRepository()
	repository.Medications[reminder.MedicationID(1)] = reminder.FakeMedication{Name: "Aspirin"}
	created, err := repository.Create(context.Background(), reminder.CreateInput{
		MedicationID: reminder.MedicationID(1),
		UserID:       user.ID(1),
		RemindTime:   reminder.MustParseClockTime("08:00"),
		NotifyType:   reminder.NotifyEmail,
		Active:       true,
		CreatedAt:    time.Now(),
	})
	require.Nil(t, err)
	return repository, created
}

func TestDeactivate(t *testing.T) {
	// Setup ---
	repository, created := setup(t)
	service := New(logging.NewFakeLogger(), repository)

	// Exercise ---
	result, err := service.Run(context.Background(), Input{
		UserID: user.ID(1),
		Update: reminder.UpdateInput{ID: created.ID, DoActiveUpdate: true, Active: false},
	})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.False(result.Reminder.Active)
	assert.Equal("Aspirin", result.Reminder.MedicationName)
	assert.Equal(reminder.NotifyEmail, result.Reminder.NotifyType)
	assert.False(repository.Get(created.ID).Active)
}

func TestChangeTimeAndChannel(t *testing.T) {
	// Setup ---
	repository, created := setup(t)
	service := New(logging.NewFakeLogger(), repository)

	// Exercise ---
	result, err := service.Run(context.Background(), Input{
		UserID: user.ID(1),
		Update: reminder.UpdateInput{
			ID:                 created.ID,
			DoRemindTimeUpdate: true,
			RemindTime:         reminder.MustParseClockTime("09:15"),
			DoNotifyTypeUpdate: true,
			NotifyType:         reminder.NotifyBoth,
		},
	})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.Equal("09:15", result.Reminder.RemindTime.String())
	assert.Equal(reminder.NotifyBoth, result.Reminder.NotifyType)
	assert.True(result.Reminder.Active)
}

func TestForeignReminderIsNotFound(t *testing.T) {
	// Setup ---
	repository, created := setup(t)
	service := New(logging.NewFakeLogger(), repository)

	// Exercise ---
	_, err := service.Run(context.Background(), Input{
		UserID: user.ID(2),
		Update: reminder.UpdateInput{ID: created.ID, DoActiveUpdate: true},
	})

	// Verify ---
	assert := require.New(t)
	assert.ErrorIs(err, reminder.ErrReminderDoesNotExist)
	assert.True(repository.Get(created.ID).Active)
}

func TestInvalidNotifyType(t *testing.T) {
	repository, created := setup(t)
	service := New(logging.NewFakeLogger(), repository)

	_, err := service.Run(context.Background(), Input{
		UserID: user.ID(1),
		Update: reminder.UpdateInput{ID: created.ID, DoNotifyTypeUpdate: true, NotifyType: "fax"},
	})

	require.ErrorIs(t, err, reminder.ErrInvalidNotifyType)
}
