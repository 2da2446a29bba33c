package reminder

import (
	"context"
	"medremind/internal/core/domain/user"
	"time"
)

type CreateInput struct {
	MedicationID MedicationID
	UserID       user.ID
	RemindTime   ClockTime
	NotifyType   NotifyType
	Active       bool
	CreatedAt    time.Time
}

type UpdateInput struct {
	ID                 ID
	DoRemindTimeUpdate bool
	RemindTime         ClockTime
	DoNotifyTypeUpdate bool
	NotifyType         NotifyType
	DoActiveUpdate     bool
	Active             bool
}

func (i UpdateInput) Apply(r Reminder) Reminder {
	if i.DoRemindTimeUpdate {
		r.RemindTime = i.RemindTime
	}
	if i.DoNotifyTypeUpdate {
		r.NotifyType = i.NotifyType
	}
	if i.DoActiveUpdate {
		r.Active = i.Active
	}
	return r
}

type DueOptions struct {
	At  ClockTime
	Day Day
}

// DueOptionsAt selects the reminders due at the minute of now.
func DueOptionsAt(now time.Time) DueOptions {
	return DueOptions{At: ClockTimeOf(now), Day: DayOf(now)}
}

// Matches is the predicate ReadDue evaluates in storage.
func (o DueOptions) Matches(r *Reminder) bool {
	return r.Active && r.RemindTime == o.At && !r.WasSentOn(o.Day)
}

type MarkSentInput struct {
	ID  ID
	At  time.Time
	Day Day
}

type Repository interface {
	Create(ctx context.Context, input CreateInput) (Reminder, error)
	GetByID(ctx context.Context, id ID) (ReminderWithMedication, error)
	ReadByUser(ctx context.Context, userID user.ID) ([]ReminderWithMedication, error)
	ReadByMedication(ctx context.Context, medicationID MedicationID) ([]Reminder, error)
	Update(ctx context.Context, input UpdateInput) (Reminder, error)
	Delete(ctx context.Context, id ID) error

	// ReadDue returns active reminders with remind time equal to At whose
	// last_sent is null or outside Day. It never mutates state.
	ReadDue(ctx context.Context, options DueOptions) ([]DueReminder, error)
	// MarkSent sets last_sent unless it already falls inside Day. It reports
	// whether the row was updated.
	MarkSent(ctx context.Context, input MarkSentInput) (bool, error)
}
