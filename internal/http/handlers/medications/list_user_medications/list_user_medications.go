package listusermedications

import (
	"errors"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	service "medremind/internal/core/services/list_user_medications"
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
	Medications []response.Medication `json:"medications"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), service.Input{})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	respMedications := make([]response.Medication, 0, len(result.Medications))
	for _, dm := range result.Medications {
		m := response.Medication{}
		m.FromDomainType(dm, h.now())
		respMedications = append(respMedications, m)
	}
	response.Render(rw, Result{Medications: respMedications}, http.StatusOK)
}
