package updatereminder

import (
	"encoding/json"
	"errors"
	"io"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/reminder"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	service "medremind/internal/core/services/update_reminder"
	"medremind/internal/http/handlers/reminders"
	"medremind/internal/http/handlers/response"
	"net/http"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	RemindTime *string `json:"remind_time"`
	NotifyType *string `json:"notify_type"`
	Active     *bool   `json:"active"`
}

type Result struct {
	Reminder response.ReminderWithMedication `json:"reminder"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	reminderID, err := reminders.ParseReminderID(r)
	if err != nil {
		response.RenderError(rw, "invalid reminder ID", http.StatusBadRequest)
		return
	}

	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidRequestData(rw)
		return
	}

	update := reminder.UpdateInput{ID: reminderID}
	if input.RemindTime != nil {
		update.DoRemindTimeUpdate = true
		if update.RemindTime, err = reminder.ParseClockTime(*input.RemindTime); err != nil {
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if input.NotifyType != nil {
		update.DoNotifyTypeUpdate = true
		if update.NotifyType, err = reminder.ParseNotifyType(*input.NotifyType); err != nil {
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if input.Active != nil {
		update.DoActiveUpdate = true
		update.Active = *input.Active
	}

	result, err := h.service.Run(r.Context(), service.Input{Update: update})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, reminder.ErrReminderDoesNotExist):
			response.RenderError(rw, err.Error(), http.StatusNotFound)
		case reminders.IsExpectedError(err):
			response.RenderError(rw, err.Error(), http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	respReminder := response.ReminderWithMedication{}
	respReminder.FromDomainType(result.Reminder)
	response.Render(rw, Result{Reminder: respReminder}, http.StatusOK)
}
