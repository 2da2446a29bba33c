package voicecall

import (
	"context"
	"encoding/xml"
	"fmt"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/reminder"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

const (
	VOICE    = "alice"
	LANGUAGE = "en-US"
)

type callCreator interface {
	CreateCall(params *openapi.CreateCallParams) (*openapi.ApiV2010Call, error)
}

type TwilioCallPlacer struct {
	calls callCreator
	from  string
	log   logging.Logger
}

func NewTwilio(log logging.Logger, accountSid string, authToken string, from string) *TwilioCallPlacer {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})
	return newTwilio(log, client.Api, from)
}

func newTwilio(log logging.Logger, calls callCreator, from string) *TwilioCallPlacer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if calls == nil {
		panic(e.NewNilArgumentError("calls"))
	}
	return &TwilioCallPlacer{calls: calls, from: from, log: log}
}

func (p *TwilioCallPlacer) PlaceReminderCall(ctx context.Context, message reminder.CallMessage) error {
	if message.To == "" {
		p.log.Warning(ctx, "No phone number provided for reminder call.", logging.Entry("medication", message.MedicationName))
		return nil
	}

	twiml, err := Twiml(message)
	if err != nil {
		return err
	}

	params := &openapi.CreateCallParams{}
	params.SetTo(string(message.To))
	params.SetFrom(p.from)
	params.SetTwiml(twiml)

	call, err := p.calls.CreateCall(params)
	if err != nil {
		return err
	}

	entries := []logging.LogEntry{logging.Entry("medication", message.MedicationName)}
	if call != nil && call.Sid != nil {
		entries = append(entries, logging.Entry("sid", *call.Sid))
	}
	p.log.Info(ctx, "Reminder call initiated.", entries...)
	return nil
}

type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Verbs   []interface{}
}

type twimlSay struct {
	XMLName  xml.Name `xml:"Say"`
	Voice    string   `xml:"voice,attr"`
	Language string   `xml:"language,attr"`
	Text     string   `xml:",chardata"`
}

type twimlPause struct {
	XMLName xml.Name `xml:"Pause"`
	Length  int      `xml:"length,attr"`
}

func say(text string) twimlSay {
	return twimlSay{Voice: VOICE, Language: LANGUAGE, Text: text}
}

// Twiml builds the spoken reminder. The message is read once, repeated in
// short form after a pause.
func Twiml(message reminder.CallMessage) (string, error) {
	dosage := ""
	shortDosage := ""
	if message.Dosage != "" {
		dosage = fmt.Sprintf(" The dosage is %s.", message.Dosage)
		shortDosage = fmt.Sprintf(" Dosage: %s.", message.Dosage)
	}

	response := twimlResponse{
		Verbs: []interface{}{
			say(fmt.Sprintf(
				"Hello %s. This is your medication reminder from Med Remind. "+
					"It is time to take your medication: %s.%s "+
					"Please take your medication as prescribed by your doctor. Take care and stay healthy!",
				message.Name,
				message.MedicationName,
				dosage,
			)),
			twimlPause{Length: 1},
			say("If you need to hear this again, please stay on the line."),
			twimlPause{Length: 2},
			say(fmt.Sprintf("Reminder: Take %s.%s Goodbye and take care!", message.MedicationName, shortDosage)),
		},
	}

	out, err := xml.Marshal(response)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
