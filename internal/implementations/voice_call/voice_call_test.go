package voicecall

import (
	"context"
	"errors"
	c "medremind/internal/core/domain/common"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/reminder"
	"testing"

	"github.com/stretchr/testify/require"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type fakeCalls struct {
	params []*openapi.CreateCallParams
	err    error
}

func (f *fakeCalls) CreateCall(params *openapi.CreateCallParams) (*openapi.ApiV2010Call, error) {
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}
	sid := "CA123"
	return &openapi.ApiV2010Call{Sid: &sid}, nil
}

var message = reminder.CallMessage{
	To:             c.PhoneNumber("+15550001111"),
	Name:           "Alice",
	MedicationName: "Aspirin & Co",
	Dosage:         "100 mg",
}

func TestTwiml(t *testing.T) {
	assert := require.New(t)

	twiml, err := Twiml(message)

	assert.Nil(err)
	assert.Contains(twiml, `<Response><Say voice="alice" language="en-US">Hello Alice.`)
	assert.Contains(twiml, "Aspirin &amp; Co")
	assert.Contains(twiml, "The dosage is 100 mg.")
	assert.Contains(twiml, `<Pause length="1"></Pause>`)
	assert.Contains(twiml, `<Pause length="2"></Pause>`)
}

func TestTwimlWithoutDosage(t *testing.T) {
	twiml, err := Twiml(reminder.CallMessage{To: message.To, Name: "Alice", MedicationName: "Aspirin"})

	require.Nil(t, err)
	require.NotContains(t, twiml, "dosage")
	require.NotContains(t, twiml, "Dosage")
}

func TestPlaceReminderCall(t *testing.T) {
	assert := require.New(t)
	log := logging.NewFakeLogger()
	calls := &fakeCalls{}
	placer := newTwilio(log, calls, "+15559998888")

	err := placer.PlaceReminderCall(context.Background(), message)

	assert.Nil(err)
	assert.Len(calls.params, 1)
	assert.Equal("+15550001111", *calls.params[0].To)
	assert.Equal("+15559998888", *calls.params[0].From)
	assert.Contains(*calls.params[0].Twiml, "Aspirin &amp; Co")
	assert.Len(log.Records(logging.INFO), 1)
}

func TestPlaceReminderCallWithoutPhone(t *testing.T) {
	log := logging.NewFakeLogger()
	calls := &fakeCalls{}
	placer := newTwilio(log, calls, "+15559998888")

	err := placer.PlaceReminderCall(context.Background(), reminder.CallMessage{Name: "Alice", MedicationName: "Aspirin"})

	require.Nil(t, err)
	require.Len(t, calls.params, 0)
	require.Len(t, log.Records(logging.WARNING), 1)
}

func TestPlaceReminderCallError(t *testing.T) {
	calls := &fakeCalls{err: errors.New("invalid number")}
	placer := newTwilio(logging.NewFakeLogger(), calls, "+15559998888")

	err := placer.PlaceReminderCall(context.Background(), message)

	require.EqualError(t, err, "invalid number")
}
