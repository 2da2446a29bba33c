package checkduereminders

import (
	"context"
	"errors"
	c "medremind/internal/core/domain/common"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/reminder"
	"medremind/internal/core/domain/user"
	matchduereminders "medremind/internal/core/services/match_due_reminders"
	sendreminder "medremind/internal/core/services/send_reminder"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	USER_ID       = user.ID(1)
	MEDICATION_ID = reminder.MedicationID(5)
)

var JAN_1_0800 = time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger      *logging.FakeLogger
	Repository  *reminder.FakeRepository
	EmailSender *reminder.FakeEmailSender
	CallPlacer  *reminder.FakeCallPlacer
	Now         time.Time
	lock        sync.Mutex
	Service     *Service
}

func (suite *testSuite) now() time.Time {
	suite.lock.Lock()
	defer suite.lock.Unlock()
	return suite.Now
}

func (suite *testSuite) setNow(now time.Time) {
	suite.lock.Lock()
	defer suite.lock.Unlock()
	suite.Now = now
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.Repository = reminder.NewFakeRepository()
	suite.Repository.Recipients[USER_ID] = reminder.FakeRecipient{
		Name:  "Jane",
		Email: c.Email("jane@example.com"),
		Phone: c.NewOptional(c.PhoneNumber("+15550100"), true),
	}
	suite.Repository.Medications[MEDICATION_ID] = reminder.FakeMedication{Name: "Aspirin", Dosage: "100mg"}
	suite.EmailSender = reminder.NewFakeEmailSender()
	suite.CallPlacer = reminder.NewFakeCallPlacer()
	suite.Now = JAN_1_0800.Add(3 * time.Second)

	suite.Service = New(
		suite.Logger,
		matchduereminders.New(suite.Logger, suite.Repository, suite.now),
		sendreminder.New(
			suite.Logger,
			suite.Repository,
			suite.EmailSender,
			suite.CallPlacer,
			reminder.NewFakeEventPublisher(),
			suite.now,
		),
	)
}

func TestCheckDueRemindersService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createReminder(at string, notifyType reminder.NotifyType) reminder.Reminder {
	r, err := suite.Repository.Create(context.Background(), reminder.CreateInput{
		MedicationID: MEDICATION_ID,
		UserID:       USER_ID,
		RemindTime:   reminder.MustParseClockTime(at),
		NotifyType:   notifyType,
		Active:       true,
		CreatedAt:    JAN_1_0800.Add(-time.Hour),
	})
	suite.Require().Nil(err)
	return r
}

func (suite *testSuite) runAndWait() Result {
	result, err := suite.Service.Run(context.Background(), Input{})
	suite.Require().Nil(err)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	suite.Require().Nil(suite.Service.Wait(ctx))
	return result
}

func (suite *testSuite) TestDueReminderIsSentAndStamped() {
	created := suite.createReminder("08:00", reminder.NotifyEmail)

	result := suite.runAndWait()

	assert := suite.Require()
	assert.Equal(1, result.Dispatched)
	assert.Equal(1, suite.EmailSender.SentCount())
	stored := suite.Repository.Get(created.ID)
	assert.True(stored.LastSent.IsPresent)
	assert.True(stored.LastSent.Value.Equal(JAN_1_0800.Add(3 * time.Second)))
}

func (suite *testSuite) TestSecondPollInSameMinuteFindsNothing() {
	suite.createReminder("08:00", reminder.NotifyEmail)
	suite.runAndWait()
	suite.setNow(JAN_1_0800.Add(40 * time.Second))

	result := suite.runAndWait()

	assert := suite.Require()
	assert.Equal(0, result.Dispatched)
	assert.Equal(1, suite.EmailSender.SentCount())
}

func (suite *testSuite) TestClockMovedBackwardDoesNotResend() {
	suite.createReminder("08:00", reminder.NotifyEmail)
	suite.setNow(JAN_1_0800.Add(50 * time.Second))
	suite.runAndWait()
	suite.setNow(JAN_1_0800.Add(10 * time.Second))

	result := suite.runAndWait()

	assert := suite.Require()
	assert.Equal(0, result.Dispatched)
	assert.Equal(1, suite.EmailSender.SentCount())
}

func (suite *testSuite) TestFiresAgainNextDay() {
	suite.createReminder("08:00", reminder.NotifyEmail)
	suite.runAndWait()
	suite.setNow(JAN_1_0800.AddDate(0, 0, 1))

	result := suite.runAndWait()

	assert := suite.Require()
	assert.Equal(1, result.Dispatched)
	assert.Equal(2, suite.EmailSender.SentCount())
}

func (suite *testSuite) TestRemindersAreProcessedIndependently() {
	suite.createReminder("08:00", reminder.NotifyEmail)
	suite.createReminder("08:00", reminder.NotifyBoth)
	suite.createReminder("08:00", reminder.NotifyPhone)
	suite.EmailSender.Error = errors.New("provider down")

	result := suite.runAndWait()

	assert := suite.Require()
	assert.Equal(3, result.Dispatched)
	assert.Equal(2, suite.EmailSender.SentCount())
	assert.Equal(2, suite.CallPlacer.PlacedCount())
	for _, stored := range suite.Repository.Reminders {
		assert.True(stored.LastSent.IsPresent, stored.ID)
	}
}

func (suite *testSuite) TestQueryErrorAbandonsPoll() {
	suite.createReminder("08:00", reminder.NotifyEmail)
	suite.Repository.ReadDueError = errors.New("connection refused")

	_, err := suite.Service.Run(context.Background(), Input{})

	assert := suite.Require()
	assert.NotNil(err)
	assert.Equal(0, suite.EmailSender.SentCount())

	suite.Repository.ReadDueError = nil
	result := suite.runAndWait()
	assert.Equal(1, result.Dispatched)
}

type blockingSendService struct {
	release chan struct{}
	started chan struct{}
}

func (s *blockingSendService) Run(ctx context.Context, input sendreminder.Input) (sendreminder.Result, error) {
	s.started <- struct{}{}
	<-s.release
	return sendreminder.Result{}, nil
}

func (suite *testSuite) TestRunDoesNotWaitForDispatch() {
	suite.createReminder("08:00", reminder.NotifyEmail)
	send := &blockingSendService{release: make(chan struct{}), started: make(chan struct{}, 1)}
	service := New(
		suite.Logger,
		matchduereminders.New(suite.Logger, suite.Repository, suite.now),
		send,
	)

	result, err := service.Run(context.Background(), Input{})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(1, result.Dispatched)
	<-send.started

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(service.Wait(ctx), context.DeadlineExceeded)

	close(send.release)
	assert.Nil(service.Wait(context.Background()))
}

type panickingSendService struct{}

func (s panickingSendService) Run(ctx context.Context, input sendreminder.Input) (sendreminder.Result, error) {
	panic("boom")
}

func (suite *testSuite) TestPanicInDispatchIsRecovered() {
	suite.createReminder("08:00", reminder.NotifyEmail)
	service := New(
		suite.Logger,
		matchduereminders.New(suite.Logger, suite.Repository, suite.now),
		panickingSendService{},
	)

	_, err := service.Run(context.Background(), Input{})
	suite.Require().Nil(err)
	suite.Require().Nil(service.Wait(context.Background()))

	suite.Require().Len(suite.Logger.Records(logging.ERROR), 1)
}
