package createreminder

import (
	"context"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/medication"
	"medremind/internal/core/domain/reminder"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const USER_ID = user.ID(9)

var NOW = time.Date(2024, time.February, 1, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Medications *medication.FakeRepository
	Reminders   *reminder.FakeRepository
	Medication  medication.Medication
	Service     services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Medications = medication.NewFakeRepository()
	suite.Reminders = reminder.NewFakeRepository()
	m, err := suite.Medications.Create(context.Background(), medication.CreateInput{
		UserID:    USER_ID,
		Name:      "Lisinopril",
		Dosage:    "10mg",
		CreatedAt: NOW,
	})
	suite.Require().Nil(err)
	suite.Medication = m
	suite.Service = New(
		logging.NewFakeLogger(),
		suite.Medications,
		suite.Reminders,
		func() time.Time { return NOW },
	)
}

func TestCreateReminderService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	result, err := suite.Service.Run(context.Background(), Input{
		UserID:       USER_ID,
		MedicationID: suite.Medication.ID,
		RemindTime:   reminder.MustParseClockTime("21:45"),
		NotifyType:   reminder.NotifyPhone,
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal("Lisinopril", result.Reminder.MedicationName)
	assert.Equal("10mg", result.Reminder.MedicationDosage)
	assert.Equal(reminder.NotifyPhone, result.Reminder.NotifyType)
	assert.True(result.Reminder.Active)
	assert.Equal(NOW, result.Reminder.CreatedAt)
	assert.Len(suite.Reminders.Reminders, 1)
}

func (suite *testSuite) TestDefaultNotifyType() {
	result, err := suite.Service.Run(context.Background(), Input{
		UserID:       USER_ID,
		MedicationID: suite.Medication.ID,
		RemindTime:   reminder.MustParseClockTime("07:00"),
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(reminder.NotifyEmail, result.Reminder.NotifyType)
}

func (suite *testSuite) TestInvalidNotifyType() {
	_, err := suite.Service.Run(context.Background(), Input{
		UserID:       USER_ID,
		MedicationID: suite.Medication.ID,
		RemindTime:   reminder.MustParseClockTime("07:00"),
		NotifyType:   reminder.NotifyType("sms"),
	})

	suite.Require().ErrorIs(err, reminder.ErrInvalidNotifyType)
}

func (suite *testSuite) TestMedicationOfAnotherUser() {
	_, err := suite.Service.Run(context.Background(), Input{
		UserID:       USER_ID + 1,
		MedicationID: suite.Medication.ID,
		RemindTime:   reminder.MustParseClockTime("07:00"),
	})

	assert := suite.Require()
	assert.ErrorIs(err, medication.ErrMedicationDoesNotExist)
	assert.Empty(suite.Reminders.Reminders)
}
