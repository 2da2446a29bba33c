package createreminder

import (
	"encoding/json"
	"errors"
	"io"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/medication"
	"medremind/internal/core/domain/reminder"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	service "medremind/internal/core/services/create_reminder"
	"medremind/internal/http/handlers/reminders"
	"medremind/internal/http/handlers/response"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
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
	MedicationID int64  `json:"medication_id"`
	RemindTime   string `json:"remind_time"`
	NotifyType   string `json:"notify_type"`
}

type Result struct {
	Reminder response.ReminderWithMedication `json:"reminder"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.MedicationID, validation.Required, validation.Min(int64(1))),
		validation.Field(&i.RemindTime, validation.Required),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidRequestData(rw)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderValidationError(rw, err)
		return
	}

	remindTime, err := reminder.ParseClockTime(input.RemindTime)
	if err != nil {
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}
	var notifyType reminder.NotifyType
	if input.NotifyType != "" {
		if notifyType, err = reminder.ParseNotifyType(input.NotifyType); err != nil {
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
			return
		}
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			MedicationID: medication.ID(input.MedicationID),
			RemindTime:   remindTime,
			NotifyType:   notifyType,
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, medication.ErrMedicationDoesNotExist):
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
	response.Render(rw, Result{Reminder: respReminder}, http.StatusCreated)
}
