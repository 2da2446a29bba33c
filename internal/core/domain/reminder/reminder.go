package reminder

import (
	"fmt"
	c "medremind/internal/core/domain/common"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/user"
	"time"
)

type ID int64

type MedicationID int64

// ClockTime is a time of day with minute precision. Reminders recur daily at
// their clock time.
type ClockTime struct {
	hour   int
	minute int
}

func NewClockTime(hour int, minute int) (ClockTime, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ClockTime{}, ErrInvalidClockTime
	}
	return ClockTime{hour: hour, minute: minute}, nil
}

// ParseClockTime accepts zero-padded "HH:MM" only.
func ParseClockTime(raw string) (ClockTime, error) {
	if len(raw) != 5 || raw[2] != ':' {
		return ClockTime{}, ErrInvalidClockTime
	}
	hour, ok := parseTwoDigits(raw[0:2])
	if !ok {
		return ClockTime{}, ErrInvalidClockTime
	}
	minute, ok := parseTwoDigits(raw[3:5])
	if !ok {
		return ClockTime{}, ErrInvalidClockTime
	}
	return NewClockTime(hour, minute)
}

func MustParseClockTime(raw string) ClockTime {
	t, err := ParseClockTime(raw)
	if err != nil {
		panic(fmt.Sprintf("invalid clock time %q", raw))
	}
	return t
}

func ClockTimeOf(t time.Time) ClockTime {
	return ClockTime{hour: t.Hour(), minute: t.Minute()}
}

func (t ClockTime) Hour() int {
	return t.hour
}

func (t ClockTime) Minute() int {
	return t.minute
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

func (t ClockTime) Before(other ClockTime) bool {
	return t.hour < other.hour || (t.hour == other.hour && t.minute < other.minute)
}

func parseTwoDigits(s string) (int, bool) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPhone Channel = "phone"
)

type NotifyType string

const (
	NotifyEmail NotifyType = "email"
	NotifyPhone NotifyType = "phone"
	NotifyBoth  NotifyType = "both"
)

const DEFAULT_NOTIFY_TYPE = NotifyEmail

func ParseNotifyType(raw string) (NotifyType, error) {
	switch NotifyType(raw) {
	case NotifyEmail, NotifyPhone, NotifyBoth:
		return NotifyType(raw), nil
	}
	return "", ErrInvalidNotifyType
}

func (n NotifyType) String() string {
	return string(n)
}

// Channels lists the delivery channels the notify type selects.
func (n NotifyType) Channels() []Channel {
	switch n {
	case NotifyEmail:
		return []Channel{ChannelEmail}
	case NotifyPhone:
		return []Channel{ChannelPhone}
	case NotifyBoth:
		return []Channel{ChannelEmail, ChannelPhone}
	}
	return nil
}

// Day is the half-open interval [Start, End) of one calendar date in the
// location of the time it was derived from.
type Day struct {
	Start time.Time
	End   time.Time
}

func DayOf(t time.Time) Day {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return Day{Start: start, End: start.AddDate(0, 0, 1)}
}

func (d Day) Contains(t time.Time) bool {
	return !t.Before(d.Start) && t.Before(d.End)
}

func (d Day) String() string {
	return d.Start.Format("2006-01-02 MST")
}

type Reminder struct {
	ID           ID
	MedicationID MedicationID
	UserID       user.ID
	RemindTime   ClockTime
	NotifyType   NotifyType
	Active       bool
	LastSent     c.Optional[time.Time]
	CreatedAt    time.Time
}

func (r *Reminder) Validate() error {
	if _, err := ParseNotifyType(string(r.NotifyType)); err != nil {
		return e.NewInvalidStateError(fmt.Sprintf("invalid notify type %q of reminder %d", r.NotifyType, r.ID))
	}
	return nil
}

func (r *Reminder) WasSentOn(day Day) bool {
	return r.LastSent.IsPresent && day.Contains(r.LastSent.Value)
}

// IsDue reports whether the reminder must fire at now: it is active, its
// clock time equals the minute of now, and it has not fired on the calendar
// date of now.
func (r *Reminder) IsDue(now time.Time) bool {
	return DueOptionsAt(now).Matches(r)
}

type ReminderWithMedication struct {
	Reminder
	MedicationName   string
	MedicationDosage string
}

// DueReminder is a reminder joined with everything needed to deliver it.
type DueReminder struct {
	Reminder         Reminder
	UserName         string
	UserEmail        c.Email
	UserPhone        c.Optional[c.PhoneNumber]
	MedicationName   string
	MedicationDosage string
}
