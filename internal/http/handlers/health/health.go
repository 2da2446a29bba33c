package health

import (
	e "medremind/internal/core/domain/errors"
	"medremind/internal/http/handlers/response"
	"net/http"
	"time"
)

type Handler struct {
	now func() time.Time
}

func New(now func() time.Time) *Handler {
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Handler{now: now}
}

type Result struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	response.Render(rw, Result{Status: "ok", Time: h.now()}, http.StatusOK)
}
