package deletemedication

import (
	"context"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/medication"
	uow "medremind/internal/core/domain/unit_of_work"
	"medremind/internal/core/domain/user"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDeleteMedication(t *testing.T) {
	// Setup ---
	unitOfWork := uow.NewFakeUnitOfWork()
	created, err := unitOfWork.Medications().Create(context.Background(), medication.CreateInput{
		UserID:    user.ID(1),
		Name:      "Aspirin",
		CreatedAt: time.Now(),
	})
	require.Nil(t, err)
	service := New(logging.NewFakeLogger(), unitOfWork)

	// Exercise ---
	_, foreignErr := service.Run(context.Background(), Input{UserID: user.ID(2), MedicationID: created.ID})
	_, err = service.Run(context.Background(), Input{UserID: user.ID(1), MedicationID: created.ID})
	_, againErr := service.Run(context.Background(), Input{UserID: user.ID(1), MedicationID: created.ID})

	// Verify ---
	assert := require.New(t)
	assert.ErrorIs(foreignErr, medication.ErrMedicationDoesNotExist)
	assert.Nil(err)
	assert.True(unitOfWork.Context.WasCommitCalled)
	assert.Empty(unitOfWork.Medications().Medications)
	assert.ErrorIs(againErr, medication.ErrMedicationDoesNotExist)
}
