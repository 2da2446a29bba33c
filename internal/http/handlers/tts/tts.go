package tts

import (
	"encoding/json"
	"errors"
	"io"
	e "medremind/internal/core/domain/errors"
	ratelimiter "medremind/internal/core/domain/rate_limiter"
	"medremind/internal/core/domain/speech"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	service "medremind/internal/core/services/synthesize_speech"
	"medremind/internal/http/handlers/response"
	"net/http"
	"strconv"
)

const MAX_BODY_SIZE = 64 * 1024

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
	Text string `json:"text"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(http.MaxBytesReader(rw, r.Body, MAX_BODY_SIZE)); err != nil {
		response.RenderInvalidRequestData(rw)
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{Text: input.Text})
	if err != nil {
		var notConfigured *e.NotConfiguredError
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		case errors.Is(err, speech.ErrEmptyText):
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
		case errors.As(err, &notConfigured):
			response.RenderError(rw, err.Error(), http.StatusServiceUnavailable)
		default:
			response.RenderError(rw, "text-to-speech failed", http.StatusInternalServerError)
		}
		return
	}

	rw.Header().Set("Content-Type", result.Audio.ContentType)
	rw.Header().Set("Content-Length", strconv.Itoa(len(result.Audio.Data)))
	rw.WriteHeader(http.StatusOK)
	rw.Write(result.Audio.Data)
}
