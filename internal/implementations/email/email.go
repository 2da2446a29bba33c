package email

import (
	"bytes"
	htmltemplate "html/template"
	"medremind/internal/core/domain/reminder"
	texttemplate "text/template"
)

const REMINDER_SUBJECT = "Medication Reminder: "

var reminderHtml = htmltemplate.Must(htmltemplate.New("reminder.html").Parse(`<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; background: #f0f4f8; padding: 20px; }
    .container { max-width: 500px; margin: 0 auto; background: white; border-radius: 16px; padding: 40px; }
    h1 { color: #1e3a5f; font-size: 28px; margin: 10px 0; text-align: center; }
    .reminder-box { background: #667eea; color: white; padding: 24px; border-radius: 12px; text-align: center; margin: 20px 0; }
    .med-name { font-size: 24px; font-weight: bold; margin-bottom: 8px; }
    .dosage { font-size: 18px; }
    .time-text { font-size: 20px; color: #4a5568; text-align: center; margin: 20px 0; }
    .footer { text-align: center; color: #a0aec0; font-size: 14px; margin-top: 30px; }
  </style>
</head>
<body>
  <div class="container">
    <h1>Medication Reminder</h1>
    <p style="font-size: 18px; color: #4a5568;">Hello <strong>{{.Name}}</strong>,</p>
    <p style="font-size: 18px; color: #4a5568;">It's time to take your medication:</p>
    <div class="reminder-box">
      <div class="med-name">{{.MedicationName}}</div>
      <div class="dosage">{{.Dosage}}</div>
    </div>
    <div class="time-text">Scheduled for: <strong>{{.Time}}</strong></div>
    <p style="font-size: 16px; color: #718096;">Please take your medication as prescribed by your doctor. Stay healthy!</p>
    <div class="footer"><p>Sent by MedRemind</p></div>
  </div>
</body>
</html>
`))

var reminderText = texttemplate.Must(texttemplate.New("reminder.txt").Parse(`Hello {{.Name}},

It's time to take your medication: {{.MedicationName}} ({{.Dosage}}).
Scheduled for: {{.Time}}

Please take your medication as prescribed by your doctor. Stay healthy!

MedRemind
`))

type Content struct {
	Subject string
	Html    string
	Text    string
}

type reminderTemplateParams struct {
	Name           string `json:"name"`
	MedicationName string `json:"medicationName"`
	Dosage         string `json:"dosage"`
	Time           string `json:"time"`
}

func newReminderTemplateParams(message reminder.EmailMessage) reminderTemplateParams {
	return reminderTemplateParams{
		Name:           message.Name,
		MedicationName: message.MedicationName,
		Dosage:         reminder.DosageOrDefault(message.Dosage),
		Time:           message.Time.String(),
	}
}

func render(params reminderTemplateParams) (content Content, err error) {
	var html bytes.Buffer
	if err := reminderHtml.Execute(&html, params); err != nil {
		return content, err
	}
	var text bytes.Buffer
	if err := reminderText.Execute(&text, params); err != nil {
		return content, err
	}
	return Content{
		Subject: REMINDER_SUBJECT + params.MedicationName,
		Html:    html.String(),
		Text:    text.String(),
	}, nil
}

func RenderReminder(message reminder.EmailMessage) (Content, error) {
	return render(newReminderTemplateParams(message))
}

// SESReminderTemplate renders the reminder email with SES template
// placeholders in place of the values. The placeholder names match the JSON
// keys of the template data sent by SESSender.
func SESReminderTemplate() (Content, error) {
	return render(reminderTemplateParams{
		Name:           "{{name}}",
		MedicationName: "{{medicationName}}",
		Dosage:         "{{dosage}}",
		Time:           "{{time}}",
	})
}
