package reminder

import (
	"context"
	c "medremind/internal/core/domain/common"
	"time"
)

const DEFAULT_DOSAGE = "As prescribed"

func DosageOrDefault(dosage string) string {
	if dosage == "" {
		return DEFAULT_DOSAGE
	}
	return dosage
}

type EmailMessage struct {
	To             c.Email
	Name           string
	MedicationName string
	Dosage         string
	Time           ClockTime
}

type CallMessage struct {
	To             c.PhoneNumber
	Name           string
	MedicationName string
	Dosage         string
}

func (r DueReminder) EmailMessage() EmailMessage {
	return EmailMessage{
		To:             r.UserEmail,
		Name:           r.UserName,
		MedicationName: r.MedicationName,
		Dosage:         r.MedicationDosage,
		Time:           r.Reminder.RemindTime,
	}
}

func (r DueReminder) CallMessage() CallMessage {
	return CallMessage{
		To:             r.UserPhone.Value,
		Name:           r.UserName,
		MedicationName: r.MedicationName,
		Dosage:         r.MedicationDosage,
	}
}

type EmailSender interface {
	SendReminderEmail(ctx context.Context, message EmailMessage) error
}

type CallPlacer interface {
	PlaceReminderCall(ctx context.Context, message CallMessage) error
}

// EventPublisher notifies connected clients of the owning user about a
// delivered reminder.
type EventPublisher interface {
	PublishReminderEvent(ctx context.Context, r DueReminder, at time.Time) error
}
