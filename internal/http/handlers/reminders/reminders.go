package reminders

import (
	"errors"
	"medremind/internal/core/domain/reminder"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func ParseReminderID(r *http.Request) (reminder.ID, error) {
	raw := chi.URLParam(r, "reminderID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return reminder.ID(id), nil
}

func IsExpectedError(err error) bool {
	return (errors.Is(err, reminder.ErrInvalidClockTime) ||
		errors.Is(err, reminder.ErrInvalidNotifyType))
}
