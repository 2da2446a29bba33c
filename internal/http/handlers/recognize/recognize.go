package recognize

import (
	"errors"
	e "medremind/internal/core/domain/errors"
	ratelimiter "medremind/internal/core/domain/rate_limiter"
	"medremind/internal/core/domain/recognition"
	"medremind/internal/core/domain/user"
	"medremind/internal/http/handlers/response"
	"net/http"
)

// RenderServiceError maps errors of the recognize service to responses.
func RenderServiceError(rw http.ResponseWriter, err error) {
	var notConfigured *e.NotConfiguredError
	switch {
	case errors.Is(err, user.ErrUserDoesNotExist):
		response.RenderUnauthorized(rw)
	case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
		response.RenderRateLimitExceeded(rw)
	case errors.Is(err, recognition.ErrNoImage),
		errors.Is(err, recognition.ErrUnsupportedImageType):
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
	case errors.Is(err, recognition.ErrImageTooLarge):
		response.RenderError(rw, err.Error(), http.StatusRequestEntityTooLarge)
	case errors.As(err, &notConfigured):
		response.RenderError(rw, err.Error(), http.StatusServiceUnavailable)
	default:
		response.RenderError(rw, "failed to analyze medicine image", http.StatusInternalServerError)
	}
}
