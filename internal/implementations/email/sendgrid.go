package email

import (
	"context"
	"fmt"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/reminder"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type SendGridSender struct {
	client    sendGridClient
	fromName  string
	fromEmail string
}

func NewSendGridSender(apiKey string, fromName string, fromEmail string) *SendGridSender {
	return newSendGridSender(sendgrid.NewSendClient(apiKey), fromName, fromEmail)
}

func newSendGridSender(client sendGridClient, fromName string, fromEmail string) *SendGridSender {
	if client == nil {
		panic(e.NewNilArgumentError("client"))
	}
	return &SendGridSender{client: client, fromName: fromName, fromEmail: fromEmail}
}

func (s *SendGridSender) SendReminderEmail(ctx context.Context, message reminder.EmailMessage) error {
	content, err := RenderReminder(message)
	if err != nil {
		return err
	}

	email := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.fromEmail),
		content.Subject,
		mail.NewEmail(message.Name, string(message.To)),
		content.Text,
		content.Html,
	)
	response, err := s.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned error status: %d", response.StatusCode)
	}
	return nil
}
