package response

import (
	"medremind/internal/core/domain/reminder"
	"time"
)

type Reminder struct {
	ID           int64      `json:"id"`
	MedicationID int64      `json:"medication_id"`
	UserID       int64      `json:"user_id"`
	RemindTime   string     `json:"remind_time"`
	NotifyType   string     `json:"notify_type"`
	Active       bool       `json:"active"`
	LastSent     *time.Time `json:"last_sent"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (r *Reminder) FromDomainType(dr reminder.Reminder) {
	r.ID = int64(dr.ID)
	r.MedicationID = int64(dr.MedicationID)
	r.UserID = int64(dr.UserID)
	r.RemindTime = dr.RemindTime.String()
	r.NotifyType = dr.NotifyType.String()
	r.Active = dr.Active
	r.LastSent = dr.LastSent.Pointer()
	r.CreatedAt = dr.CreatedAt
}

type ReminderWithMedication struct {
	Reminder
	MedicationName string `json:"medication_name"`
	Dosage         string `json:"dosage"`
}

func (r *ReminderWithMedication) FromDomainType(dr reminder.ReminderWithMedication) {
	r.Reminder.FromDomainType(dr.Reminder)
	r.MedicationName = dr.MedicationName
	r.Dosage = dr.MedicationDosage
}
