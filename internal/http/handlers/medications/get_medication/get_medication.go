package getmedication

import (
	"errors"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/medication"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	service "medremind/internal/core/services/get_medication"
	"medremind/internal/http/handlers/medications"
	"medremind/internal/http/handlers/response"
	"net/http"
	"time"
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

type Result struct {
	Medication response.Medication `json:"medication"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	medicationID, err := medications.ParseMedicationID(r)
	if err != nil {
		response.RenderError(rw, "invalid medication ID", http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{MedicationID: medicationID})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, medication.ErrMedicationDoesNotExist):
			response.RenderError(rw, err.Error(), http.StatusNotFound)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	m := response.Medication{}
	m.FromDomainType(result.Medication, h.now())
	response.Render(rw, Result{Medication: m}, http.StatusOK)
}
