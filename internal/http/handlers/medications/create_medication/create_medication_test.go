package createmedication

import (
	"context"
	"encoding/json"
	"medremind/internal/core/domain/medication"
	"medremind/internal/core/domain/reminder"
	"medremind/internal/core/domain/user"
	service "medremind/internal/core/services/create_medication"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var NOW = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func now() time.Time {
	return NOW
}

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	result.Medication = medication.Medication{
		ID:        1,
		UserID:    2,
		Name:      input.Name,
		Frequency: "daily",
		Times:     input.Times,
		StartDate: input.StartDate,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for ix, t := range input.Times {
		result.Reminders = append(result.Reminders, reminder.Reminder{
			ID:           reminder.ID(ix + 1),
			MedicationID: 1,
			UserID:       2,
			RemindTime:   t,
			NotifyType:   reminder.NotifyEmail,
			Active:       true,
		})
	}
	return result, nil
}

func TestCreateMedicationHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
		serviceCalled  bool
	}{
		{
			id:             "created",
			body:           `{"name": "Aspirin", "times": ["08:00", "20:00"], "start_date": "2024-01-01"}`,
			expectedStatus: http.StatusCreated,
			serviceCalled:  true,
		},
		{id: "invalid json", body: `{"name":`, expectedStatus: http.StatusBadRequest},
		{id: "no name", body: `{"dosage": "1 pill"}`, expectedStatus: http.StatusBadRequest},
		{id: "invalid time", body: `{"name": "A", "times": ["8:00"]}`, expectedStatus: http.StatusBadRequest},
		{id: "invalid date", body: `{"name": "A", "start_date": "01/01/2024"}`, expectedStatus: http.StatusBadRequest},
		{id: "invalid notify type", body: `{"name": "A", "notify_type": "sms"}`, expectedStatus: http.StatusBadRequest},
		{
			id:             "domain rule",
			body:           `{"name": "A", "times": ["08:00", "08:00"]}`,
			serviceErr:     medication.ErrDuplicateTime,
			expectedStatus: http.StatusUnprocessableEntity,
			serviceCalled:  true,
		},
		{
			id:             "unauthenticated",
			body:           `{"name": "A"}`,
			serviceErr:     user.ErrUserDoesNotExist,
			expectedStatus: http.StatusUnauthorized,
			serviceCalled:  true,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{err: testcase.serviceErr}
			req := httptest.NewRequest(http.MethodPost, "/medications", strings.NewReader(testcase.body))
			rr := httptest.NewRecorder()

			New(stub, now).ServeHTTP(rr, req)

			assert.Equal(t, testcase.expectedStatus, rr.Code)
			assert.Equal(t, testcase.serviceCalled, stub.input != nil)
		})
	}
}

func TestCreateMedicationHandlerResponse(t *testing.T) {
	assert := require.New(t)
	stub := &stubService{}
	body := `{"name": "Aspirin", "times": ["08:00", "20:00"], "start_date": "2024-01-01", "notify_type": "both"}`
	req := httptest.NewRequest(http.MethodPost, "/medications", strings.NewReader(body))
	rr := httptest.NewRecorder()

	New(stub, now).ServeHTTP(rr, req)

	assert.Equal(http.StatusCreated, rr.Code)
	assert.Equal(reminder.NotifyBoth, stub.input.NotifyType)
	assert.Equal(
		[]reminder.ClockTime{reminder.MustParseClockTime("08:00"), reminder.MustParseClockTime("20:00")},
		stub.input.Times,
	)

	var result struct {
		Medication struct {
			Name      string   `json:"name"`
			Times     []string `json:"times"`
			StartDate *string  `json:"start_date"`
			EndDate   *string  `json:"end_date"`
		} `json:"medication"`
		Reminders []struct {
			RemindTime string `json:"remind_time"`
		} `json:"reminders"`
	}
	assert.Nil(json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal("Aspirin", result.Medication.Name)
	assert.Equal([]string{"08:00", "20:00"}, result.Medication.Times)
	assert.Equal("2024-01-01", *result.Medication.StartDate)
	assert.Nil(result.Medication.EndDate)
	assert.Len(result.Reminders, 2)
	assert.Equal("20:00", result.Reminders[1].RemindTime)
}
