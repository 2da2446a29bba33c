package email

import (
	"context"
	"encoding/json"
	"errors"
	c "medremind/internal/core/domain/common"
	"medremind/internal/core/domain/reminder"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/require"
)

var message = reminder.EmailMessage{
	To:             c.Email("alice@test.test"),
	Name:           "Alice <3",
	MedicationName: "Aspirin",
	Time:           reminder.MustParseClockTime("08:00"),
}

func TestRenderReminder(t *testing.T) {
	assert := require.New(t)

	content, err := RenderReminder(message)

	assert.Nil(err)
	assert.Equal("Medication Reminder: Aspirin", content.Subject)
	assert.Contains(content.Html, "Alice &lt;3")
	assert.Contains(content.Html, reminder.DEFAULT_DOSAGE)
	assert.Contains(content.Html, "<strong>08:00</strong>")
	assert.Contains(content.Text, "Aspirin (As prescribed)")
	assert.Contains(content.Text, "Hello Alice <3,")
}

func TestSESReminderTemplateKeepsPlaceholders(t *testing.T) {
	assert := require.New(t)

	content, err := SESReminderTemplate()

	assert.Nil(err)
	assert.Equal("Medication Reminder: {{medicationName}}", content.Subject)
	for _, placeholder := range []string{"{{name}}", "{{medicationName}}", "{{dosage}}", "{{time}}"} {
		assert.Contains(content.Html, placeholder)
		assert.Contains(content.Text, placeholder)
	}
}

type fakeSESClient struct {
	input *ses.SendTemplatedEmailInput
	err   error
}

func (c *fakeSESClient) SendTemplatedEmail(
	ctx context.Context,
	params *ses.SendTemplatedEmailInput,
	optFns ...func(*ses.Options),
) (*ses.SendTemplatedEmailOutput, error) {
	c.input = params
	return &ses.SendTemplatedEmailOutput{}, c.err
}

func TestSESSender(t *testing.T) {
	assert := require.New(t)
	client := &fakeSESClient{}
	sender := newSESSender(client, "no-reply@medremind.local", "reminder")

	err := sender.SendReminderEmail(context.Background(), message)

	assert.Nil(err)
	assert.Equal("no-reply@medremind.local", *client.input.Source)
	assert.Equal("reminder", *client.input.Template)
	assert.Equal([]string{"alice@test.test"}, client.input.Destination.ToAddresses)

	params := map[string]string{}
	assert.Nil(json.Unmarshal([]byte(*client.input.TemplateData), &params))
	assert.Equal(map[string]string{
		"name":           "Alice <3",
		"medicationName": "Aspirin",
		"dosage":         reminder.DEFAULT_DOSAGE,
		"time":           "08:00",
	}, params)
}

func TestSESSenderError(t *testing.T) {
	client := &fakeSESClient{err: errors.New("throttled")}
	sender := newSESSender(client, "no-reply@medremind.local", "reminder")

	err := sender.SendReminderEmail(context.Background(), message)

	require.EqualError(t, err, "throttled")
}

type fakeSendGridClient struct {
	email    *mail.SGMailV3
	response *rest.Response
	err      error
}

func (c *fakeSendGridClient) SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	c.email = email
	return c.response, c.err
}

func TestSendGridSender(t *testing.T) {
	assert := require.New(t)
	client := &fakeSendGridClient{response: &rest.Response{StatusCode: 202}}
	sender := newSendGridSender(client, "MedRemind", "no-reply@medremind.local")

	err := sender.SendReminderEmail(context.Background(), message)

	assert.Nil(err)
	assert.Equal("no-reply@medremind.local", client.email.From.Address)
	assert.Equal("Medication Reminder: Aspirin", client.email.Subject)
	assert.Len(client.email.Personalizations, 1)
	assert.Equal("alice@test.test", client.email.Personalizations[0].To[0].Address)
	assert.Len(client.email.Content, 2)
}

func TestSendGridSenderErrorStatus(t *testing.T) {
	client := &fakeSendGridClient{response: &rest.Response{StatusCode: 401, Body: "unauthorized"}}
	sender := newSendGridSender(client, "MedRemind", "no-reply@medremind.local")

	err := sender.SendReminderEmail(context.Background(), message)

	require.EqualError(t, err, "sendgrid returned error status: 401")
}
