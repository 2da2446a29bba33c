package updatemedication

import (
	"encoding/json"
	"errors"
	"io"
	c "medremind/internal/core/domain/common"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/medication"
	"medremind/internal/core/domain/reminder"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	service "medremind/internal/core/services/update_medication"
	"medremind/internal/http/handlers/medications"
	"medremind/internal/http/handlers/response"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
	now     func() time.Time
}

func New(
	service services.Service[service.Input, service.Result],
	now func() time.Time,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Handler{service: service, now: now}
}

// Input carries only the fields to change. Dates and the image path are
// cleared by an explicit null.
type Input struct {
	Name        *string                    `json:"name"`
	Dosage      *string                    `json:"dosage"`
	Frequency   *string                    `json:"frequency"`
	Times       *[]string                  `json:"times"`
	StartDate   medications.NullableString `json:"start_date"`
	EndDate     medications.NullableString `json:"end_date"`
	ExpiryDate  medications.NullableString `json:"expiry_date"`
	Notes       *string                    `json:"notes"`
	Description *string                    `json:"description"`
	ImagePath   medications.NullableString `json:"image_path"`
	NotifyType  *string                    `json:"notify_type"`
}

type Result struct {
	Medication response.Medication `json:"medication"`
	Reminders  []response.Reminder `json:"reminders"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.Length(0, 255)),
		validation.Field(&i.Dosage, validation.Length(0, 255)),
		validation.Field(&i.Frequency, validation.Length(0, 64)),
		validation.Field(&i.Times, validation.Length(0, medication.MAX_TIMES_PER_DAY)),
		validation.Field(&i.Notes, validation.Length(0, medications.MAX_TEXT_LEN)),
		validation.Field(&i.Description, validation.Length(0, medications.MAX_TEXT_LEN)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	medicationID, err := medications.ParseMedicationID(r)
	if err != nil {
		response.RenderError(rw, "invalid medication ID", http.StatusBadRequest)
		return
	}

	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidRequestData(rw)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderValidationError(rw, err)
		return
	}

	serviceInput, err := input.toServiceInput(medicationID)
	if err != nil {
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), serviceInput)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, medication.ErrMedicationDoesNotExist):
			response.RenderError(rw, err.Error(), http.StatusNotFound)
		case medications.IsExpectedError(err):
			response.RenderError(rw, err.Error(), http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	m := response.Medication{}
	m.FromDomainType(result.Medication, h.now())
	reminders := make([]response.Reminder, 0, len(result.Reminders))
	for _, dr := range result.Reminders {
		respReminder := response.Reminder{}
		respReminder.FromDomainType(dr)
		reminders = append(reminders, respReminder)
	}
	response.Render(rw, Result{Medication: m, Reminders: reminders}, http.StatusOK)
}

func (i Input) toServiceInput(id medication.ID) (input service.Input, err error) {
	update := medication.UpdateInput{ID: id}
	if i.Name != nil {
		update.DoNameUpdate = true
		update.Name = *i.Name
	}
	if i.Dosage != nil {
		update.DoDosageUpdate = true
		update.Dosage = *i.Dosage
	}
	if i.Frequency != nil && *i.Frequency != "" {
		update.DoFrequencyUpdate = true
		update.Frequency = *i.Frequency
	}
	if i.Times != nil {
		update.DoTimesUpdate = true
		if update.Times, err = medications.ParseTimes(*i.Times); err != nil {
			return input, err
		}
	}
	if i.StartDate.Set {
		update.DoStartDateUpdate = true
		if update.StartDate, err = medication.ParseOptionalDate(i.StartDate.Value); err != nil {
			return input, err
		}
	}
	if i.EndDate.Set {
		update.DoEndDateUpdate = true
		if update.EndDate, err = medication.ParseOptionalDate(i.EndDate.Value); err != nil {
			return input, err
		}
	}
	if i.ExpiryDate.Set {
		update.DoExpiryDateUpdate = true
		if update.ExpiryDate, err = medication.ParseOptionalDate(i.ExpiryDate.Value); err != nil {
			return input, err
		}
	}
	if i.Notes != nil {
		update.DoNotesUpdate = true
		update.Notes = *i.Notes
	}
	if i.Description != nil {
		update.DoDescriptionUpdate = true
		update.Description = *i.Description
	}
	if i.ImagePath.Set {
		update.DoImagePathUpdate = true
		if i.ImagePath.Value != nil && *i.ImagePath.Value != "" {
			update.ImagePath = c.NewOptional(*i.ImagePath.Value, true)
		}
	}
	input.Update = update

	if i.NotifyType != nil {
		notifyType, err := reminder.ParseNotifyType(*i.NotifyType)
		if err != nil {
			return input, err
		}
		input.NotifyType = c.NewOptional(notifyType, true)
	}
	return input, nil
}
