package email

import (
	"context"
	"encoding/json"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/reminder"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type sesClient interface {
	SendTemplatedEmail(
		ctx context.Context,
		params *ses.SendTemplatedEmailInput,
		optFns ...func(*ses.Options),
	) (*ses.SendTemplatedEmailOutput, error)
}

type SESSender struct {
	ses sesClient
	// This address must be verified with Amazon SES.
	sender           string
	reminderTemplate string
}

func NewSESSender(awsConfig aws.Config, sender string, reminderTemplate string) *SESSender {
	return newSESSender(ses.NewFromConfig(awsConfig), sender, reminderTemplate)
}

func newSESSender(client sesClient, sender string, reminderTemplate string) *SESSender {
	if client == nil {
		panic(e.NewNilArgumentError("client"))
	}
	return &SESSender{ses: client, sender: sender, reminderTemplate: reminderTemplate}
}

func (s *SESSender) SendReminderEmail(ctx context.Context, message reminder.EmailMessage) error {
	templateParamsBytes, err := json.Marshal(newReminderTemplateParams(message))
	if err != nil {
		return err
	}
	templateParams := string(templateParamsBytes)

	email := string(message.To)
	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Template:     &s.reminderTemplate,
			TemplateData: &templateParams,
		},
	)
	return err
}
