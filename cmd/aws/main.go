package main

import (
	"context"
	"flag"
	"fmt"
	"medremind/internal/config"
	"medremind/internal/implementations/email"
	"os"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// Manages the SES template used for reminder emails:
//
//	go run ./cmd/aws -action create
//	go run ./cmd/aws -action delete
func main() {
	action := flag.String("action", "create", "create or delete the reminder email template")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}

	switch *action {
	case "create":
		CreateEmailTemplate(cfg)
	case "delete":
		DeleteEmailTemplate(cfg)
	default:
		fail(fmt.Errorf("unknown action %q", *action))
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func newClient(cfg *config.Config) *ses.Client {
	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(cfg.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AwsAccessKey,
				cfg.AwsSecretKey,
				"",
			),
		),
	)
	if err != nil {
		fail(err)
	}
	return ses.NewFromConfig(awsCfg)
}

func CreateEmailTemplate(cfg *config.Config) {
	content, err := email.SESReminderTemplate()
	if err != nil {
		fail(err)
	}

	name := cfg.AwsEmailReminderTemplate
	subject := email.REMINDER_SUBJECT + "{{medicationName}}"
	result, err := newClient(cfg).CreateTemplate(
		context.Background(),
		&ses.CreateTemplateInput{
			Template: &types.Template{
				SubjectPart:  &subject,
				HtmlPart:     &content.Html,
				TextPart:     &content.Text,
				TemplateName: &name,
			},
		},
	)
	if err != nil {
		fail(err)
	}

	fmt.Println("Success:")
	fmt.Println(result)
}

func DeleteEmailTemplate(cfg *config.Config) {
	name := cfg.AwsEmailReminderTemplate
	result, err := newClient(cfg).DeleteTemplate(
		context.Background(),
		&ses.DeleteTemplateInput{
			TemplateName: &name,
		},
	)
	if err != nil {
		fail(err)
	}

	fmt.Println("Success:")
	fmt.Println(result)
}
