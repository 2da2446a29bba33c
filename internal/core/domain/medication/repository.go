package medication

import (
	"context"
	c "medremind/internal/core/domain/common"
	"medremind/internal/core/domain/reminder"
	"medremind/internal/core/domain/user"
	"time"
)

type CreateInput struct {
	UserID      user.ID
	Name        string
	Dosage      string
	Frequency   string
	Times       []reminder.ClockTime
	StartDate   c.Optional[time.Time]
	EndDate     c.Optional[time.Time]
	ExpiryDate  c.Optional[time.Time]
	Notes       string
	Description string
	ImagePath   c.Optional[string]
	CreatedAt   time.Time
}

type UpdateInput struct {
	ID                  ID
	DoNameUpdate        bool
	Name                string
	DoDosageUpdate      bool
	Dosage              string
	DoFrequencyUpdate   bool
	Frequency           string
	DoTimesUpdate       bool
	Times               []reminder.ClockTime
	DoStartDateUpdate   bool
	StartDate           c.Optional[time.Time]
	DoEndDateUpdate     bool
	EndDate             c.Optional[time.Time]
	DoExpiryDateUpdate  bool
	ExpiryDate          c.Optional[time.Time]
	DoNotesUpdate       bool
	Notes               string
	DoDescriptionUpdate bool
	Description         string
	DoImagePathUpdate   bool
	ImagePath           c.Optional[string]
}

func (i UpdateInput) IsEmpty() bool {
	return !(i.DoNameUpdate || i.DoDosageUpdate || i.DoFrequencyUpdate || i.DoTimesUpdate ||
		i.DoStartDateUpdate || i.DoEndDateUpdate || i.DoExpiryDateUpdate || i.DoNotesUpdate ||
		i.DoDescriptionUpdate || i.DoImagePathUpdate)
}

// Apply returns a copy of m with the requested fields changed.
func (i UpdateInput) Apply(m Medication) Medication {
	if i.DoNameUpdate {
		m.Name = i.Name
	}
	if i.DoDosageUpdate {
		m.Dosage = i.Dosage
	}
	if i.DoFrequencyUpdate {
		m.Frequency = i.Frequency
	}
	if i.DoTimesUpdate {
		m.Times = append([]reminder.ClockTime(nil), i.Times...)
	}
	if i.DoStartDateUpdate {
		m.StartDate = i.StartDate
	}
	if i.DoEndDateUpdate {
		m.EndDate = i.EndDate
	}
	if i.DoExpiryDateUpdate {
		m.ExpiryDate = i.ExpiryDate
	}
	if i.DoNotesUpdate {
		m.Notes = i.Notes
	}
	if i.DoDescriptionUpdate {
		m.Description = i.Description
	}
	if i.DoImagePathUpdate {
		m.ImagePath = i.ImagePath
	}
	return m
}

type Repository interface {
	Create(ctx context.Context, input CreateInput) (Medication, error)
	GetByID(ctx context.Context, id ID) (Medication, error)
	// Lock works only within a DB transaction.
	Lock(ctx context.Context, id ID) error
	ReadByUser(ctx context.Context, userID user.ID) ([]Medication, error)
	Update(ctx context.Context, input UpdateInput) (Medication, error)
	Delete(ctx context.Context, id ID) error
}
