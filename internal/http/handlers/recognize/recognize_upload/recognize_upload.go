package recognizeupload

import (
	"errors"
	"io"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/recognition"
	"medremind/internal/core/services"
	service "medremind/internal/core/services/recognize_medicine"
	"medremind/internal/http/handlers/recognize"
	"medremind/internal/http/handlers/response"
	"net/http"
)

const (
	FORM_FIELD = "image"
	// Room for the multipart envelope around the image.
	MAX_BODY_SIZE = recognition.MAX_IMAGE_SIZE + 1024*1024
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
	r.Body = http.MaxBytesReader(rw, r.Body, MAX_BODY_SIZE)
	if err := r.ParseMultipartForm(MAX_BODY_SIZE); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.RenderError(rw, recognition.ErrImageTooLarge.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		response.RenderError(rw, "no image uploaded", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile(FORM_FIELD)
	if err != nil {
		response.RenderError(rw, "no image uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, recognition.MAX_IMAGE_SIZE+1))
	if err != nil {
		response.RenderInvalidRequestData(rw)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			Image: recognition.Image{
				Data:     data,
				MimeType: header.Header.Get("Content-Type"),
			},
			Store: true,
		},
	)
	if err != nil {
		recognize.RenderServiceError(rw, err)
		return
	}

	response.Render(
		rw,
		response.Recognition{
			Success:   true,
			ImagePath: result.ImagePath.Pointer(),
			Analysis:  result.Analysis,
		},
		http.StatusOK,
	)
}
