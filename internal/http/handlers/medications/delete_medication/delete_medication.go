package deletemedication

import (
	"errors"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/medication"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	service "medremind/internal/core/services/delete_medication"
	"medremind/internal/http/handlers/medications"
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

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	medicationID, err := medications.ParseMedicationID(r)
	if err != nil {
		response.RenderError(rw, "invalid medication ID", http.StatusBadRequest)
		return
	}

	_, err = h.service.Run(r.Context(), service.Input{MedicationID: medicationID})
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

	response.Render(rw, response.Message{Message: "Medication deleted"}, http.StatusOK)
}
