package medication

import (
	"fmt"
	c "medremind/internal/core/domain/common"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/reminder"
	"medremind/internal/core/domain/user"
	"time"
)

type ID = reminder.MedicationID

const (
	DATE_LAYOUT       = "2006-01-02"
	DEFAULT_FREQUENCY = "daily"
	MAX_TIMES_PER_DAY = 24
)

type Medication struct {
	ID          ID
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

func (m *Medication) Validate() error {
	if m.Name == "" {
		return e.NewInvalidStateError(fmt.Sprintf("name is not set for medication %d", m.ID))
	}
	return ValidateSchedule(m.Times, m.StartDate, m.EndDate)
}

// IsExpired reports whether the expiry date is strictly before the calendar
// date of now.
func (m *Medication) IsExpired(now time.Time) bool {
	if !m.ExpiryDate.IsPresent {
		return false
	}
	expiry := m.ExpiryDate.Value
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC).Before(today)
}

// SyncTimes compares the previous times of a medication with the wanted ones and
// returns the times to add and the times to remove. Order of wanted is kept.
func SyncTimes(current, wanted []reminder.ClockTime) (added, removed []reminder.ClockTime) {
	currentSet := make(map[reminder.ClockTime]struct{}, len(current))
	for _, t := range current {
		currentSet[t] = struct{}{}
	}
	wantedSet := make(map[reminder.ClockTime]struct{}, len(wanted))
	for _, t := range wanted {
		wantedSet[t] = struct{}{}
		if _, ok := currentSet[t]; !ok {
			added = append(added, t)
		}
	}
	for _, t := range current {
		if _, ok := wantedSet[t]; !ok {
			removed = append(removed, t)
		}
	}
	return added, removed
}

func ValidateSchedule(times []reminder.ClockTime, startDate, endDate c.Optional[time.Time]) error {
	if len(times) > MAX_TIMES_PER_DAY {
		return ErrTooManyTimes
	}
	seen := make(map[reminder.ClockTime]struct{}, len(times))
	for _, t := range times {
		if _, ok := seen[t]; ok {
			return ErrDuplicateTime
		}
		seen[t] = struct{}{}
	}
	if startDate.IsPresent && endDate.IsPresent && endDate.Value.Before(startDate.Value) {
		return ErrEndBeforeStart
	}
	return nil
}

func ParseDate(raw string) (time.Time, error) {
	date, err := time.Parse(DATE_LAYOUT, raw)
	if err != nil {
		return date, ErrInvalidDate
	}
	return date, nil
}

func ParseOptionalDate(raw *string) (c.Optional[time.Time], error) {
	if raw == nil || *raw == "" {
		return c.Optional[time.Time]{}, nil
	}
	date, err := ParseDate(*raw)
	if err != nil {
		return c.Optional[time.Time]{}, err
	}
	return c.NewOptional(date, true), nil
}
