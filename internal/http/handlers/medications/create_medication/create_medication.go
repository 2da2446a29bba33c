package createmedication

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
	service "medremind/internal/core/services/create_medication"
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

type Input struct {
	Name        string   `json:"name"`
	Dosage      string   `json:"dosage"`
	Frequency   string   `json:"frequency"`
	Times       []string `json:"times"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
	ExpiryDate  *string  `json:"expiry_date"`
	Notes       string   `json:"notes"`
	Description string   `json:"description"`
	ImagePath   *string  `json:"image_path"`
	NotifyType  string   `json:"notify_type"`
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
		validation.Field(&i.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&i.Dosage, validation.Length(0, 255)),
		validation.Field(&i.Frequency, validation.Length(0, 64)),
		validation.Field(&i.Times, validation.Length(0, medication.MAX_TIMES_PER_DAY)),
		validation.Field(&i.Notes, validation.Length(0, medications.MAX_TEXT_LEN)),
		validation.Field(&i.Description, validation.Length(0, medications.MAX_TEXT_LEN)),
		validation.Field(&i.ImagePath, validation.Length(0, 1024)),
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

	serviceInput, err := input.toServiceInput()
	if err != nil {
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), serviceInput)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
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
	response.Render(rw, Result{Medication: m, Reminders: reminders}, http.StatusCreated)
}

func (i Input) toServiceInput() (input service.Input, err error) {
	input.Name = i.Name
	input.Dosage = i.Dosage
	input.Frequency = i.Frequency
	input.Notes = i.Notes
	input.Description = i.Description
	if i.ImagePath != nil && *i.ImagePath != "" {
		input.ImagePath = c.NewOptional(*i.ImagePath, true)
	}

	if input.Times, err = medications.ParseTimes(i.Times); err != nil {
		return input, err
	}
	if input.StartDate, err = medication.ParseOptionalDate(i.StartDate); err != nil {
		return input, err
	}
	if input.EndDate, err = medication.ParseOptionalDate(i.EndDate); err != nil {
		return input, err
	}
	if input.ExpiryDate, err = medication.ParseOptionalDate(i.ExpiryDate); err != nil {
		return input, err
	}
	if i.NotifyType != "" {
		if input.NotifyType, err = reminder.ParseNotifyType(i.NotifyType); err != nil {
			return input, err
		}
	}
	return input, nil
}
