package recognizebase64

import (
	"encoding/base64"
	"encoding/json"
	"io"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/recognition"
	"medremind/internal/core/services"
	service "medremind/internal/core/services/recognize_medicine"
	"medremind/internal/http/handlers/recognize"
	"medremind/internal/http/handlers/response"
	"net/http"
	"strings"
)

const (
	DEFAULT_MIME_TYPE = "image/jpeg"
	// Base64 inflates the image by a third.
	MAX_BODY_SIZE = recognition.MAX_IMAGE_SIZE*4/3 + 1024*1024
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
	Image    string `json:"image"`
	MimeType string `json:"mimeType"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

// decodeImage accepts raw base64 as well as a data URL.
func decodeImage(raw string) ([]byte, error) {
	if strings.HasPrefix(raw, "data:") {
		if ix := strings.Index(raw, ","); ix >= 0 {
			raw = raw[ix+1:]
		}
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(raw))
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(http.MaxBytesReader(rw, r.Body, MAX_BODY_SIZE)); err != nil {
		response.RenderInvalidRequestData(rw)
		return
	}
	if input.Image == "" {
		response.RenderError(rw, recognition.ErrNoImage.Error(), http.StatusBadRequest)
		return
	}
	data, err := decodeImage(input.Image)
	if err != nil {
		response.RenderError(rw, "image must be base64 encoded", http.StatusBadRequest)
		return
	}
	if input.MimeType == "" {
		input.MimeType = DEFAULT_MIME_TYPE
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{Image: recognition.Image{Data: data, MimeType: input.MimeType}},
	)
	if err != nil {
		recognize.RenderServiceError(rw, err)
		return
	}

	response.Render(rw, response.Recognition{Success: true, Analysis: result.Analysis}, http.StatusOK)
}
