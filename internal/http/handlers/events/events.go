package events

import (
	"errors"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	service "medremind/internal/core/services/get_current_user"
	"medremind/internal/http/handlers/response"
	"net/http"

	"github.com/r3labs/sse/v2"
)

// Handler subscribes the authenticated user to the stream of their reminder
// events. The stream is derived from the user. A stream passed by the client
// must belong to that user.
type Handler struct {
	log       logging.Logger
	sseServer *sse.Server
	streams   user.EventStreams
	service   services.Service[service.Input, service.Result]
}

func New(
	log logging.Logger,
	sseServer *sse.Server,
	streams user.EventStreams,
	service services.Service[service.Input, service.Result],
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	if streams == nil {
		panic(e.NewNilArgumentError("streams"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{log: log, sseServer: sseServer, streams: streams, service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), service.Input{})
	if errors.Is(err, user.ErrUserDoesNotExist) {
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	userID := result.User.ID
	query := r.URL.Query()
	if requested := query.Get("stream"); requested != "" {
		owner, ok := h.streams.UserID(requested)
		if !ok || owner != userID {
			h.log.Warning(
				r.Context(),
				"Subscription to a foreign event stream rejected.",
				logging.Entry("userID", userID),
			)
			response.RenderError(rw, "forbidden", http.StatusForbidden)
			return
		}
	}
	streamID := h.streams.StreamID(userID)
	query.Set("stream", streamID)
	r.URL.RawQuery = query.Encode()

	if !h.sseServer.StreamExists(streamID) {
		h.sseServer.CreateStream(streamID)
	}
	h.log.Info(r.Context(), "Subscribed to reminder events.", logging.Entry("userID", userID))
	h.sseServer.ServeHTTP(rw, r)
	h.log.Info(r.Context(), "Unsubscribed from reminder events.", logging.Entry("userID", userID))
}
