package reminderevents

import (
	"context"
	"encoding/json"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/reminder"
	"medremind/internal/core/domain/user"
	"time"

	"github.com/r3labs/sse/v2"
)

const EVENT_TYPE = "reminder"

type Payload struct {
	ReminderID     reminder.ID           `json:"reminderId"`
	MedicationID   reminder.MedicationID `json:"medicationId"`
	MedicationName string                `json:"medicationName"`
	Dosage         string                `json:"dosage"`
	RemindTime     string                `json:"remindTime"`
	NotifyType     reminder.NotifyType   `json:"notifyType"`
	SentAt         time.Time             `json:"sentAt"`
}

func NewPayload(r reminder.DueReminder, at time.Time) Payload {
	return Payload{
		ReminderID:     r.Reminder.ID,
		MedicationID:   r.Reminder.MedicationID,
		MedicationName: r.MedicationName,
		Dosage:         reminder.DosageOrDefault(r.MedicationDosage),
		RemindTime:     r.Reminder.RemindTime.String(),
		NotifyType:     r.Reminder.NotifyType,
		SentAt:         at,
	}
}

// SSEPublisher pushes reminder events to the stream of the reminder's owner.
// Events for users without connected clients are dropped.
type SSEPublisher struct {
	sseServer *sse.Server
	streams   user.EventStreams
}

func NewSSEPublisher(sseServer *sse.Server, streams user.EventStreams) *SSEPublisher {
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	if streams == nil {
		panic(e.NewNilArgumentError("streams"))
	}
	return &SSEPublisher{
		sseServer: sseServer,
		streams:   streams,
	}
}

func (p *SSEPublisher) PublishReminderEvent(ctx context.Context, r reminder.DueReminder, at time.Time) error {
	data, err := json.Marshal(NewPayload(r, at))
	if err != nil {
		return err
	}
	p.sseServer.Publish(p.streams.StreamID(r.Reminder.UserID), &sse.Event{
		Event: []byte(EVENT_TYPE),
		Data:  data,
	})
	return nil
}
