// Package medications holds request parsing shared by the medication
// handlers.
package medications

import (
	"encoding/json"
	"errors"
	"medremind/internal/core/domain/medication"
	"medremind/internal/core/domain/reminder"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const MAX_TEXT_LEN = 4096

func ParseMedicationID(r *http.Request) (medication.ID, error) {
	raw := chi.URLParam(r, "medicationID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return medication.ID(id), nil
}

func ParseTimes(raw []string) ([]reminder.ClockTime, error) {
	times := make([]reminder.ClockTime, 0, len(raw))
	for _, rawTime := range raw {
		t, err := reminder.ParseClockTime(rawTime)
		if err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, nil
}

// IsExpectedError reports whether err is a rule violation of the request
// rather than a failure.
func IsExpectedError(err error) bool {
	return (errors.Is(err, medication.ErrNameRequired) ||
		errors.Is(err, medication.ErrInvalidDate) ||
		errors.Is(err, medication.ErrEndBeforeStart) ||
		errors.Is(err, medication.ErrDuplicateTime) ||
		errors.Is(err, medication.ErrTooManyTimes) ||
		errors.Is(err, reminder.ErrInvalidClockTime) ||
		errors.Is(err, reminder.ErrInvalidNotifyType))
}

// NullableString tells an absent JSON field from an explicit null, which
// clears the value.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	n.Value = &value
	return nil
}
