package recognizeupload

import (
	"bytes"
	"context"
	"encoding/json"
	c "medremind/internal/core/domain/common"
	"medremind/internal/core/domain/recognition"
	service "medremind/internal/core/services/recognize_medicine"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	result.ImagePath = c.NewOptional("/uploads/abc.png", true)
	result.Analysis = recognition.Analysis{MedicineName: "Ibuprofen", Confidence: "medium"}
	return result, nil
}

func multipartRequest(t *testing.T, field string, content []byte) *http.Request {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, "box.png")
	require.Nil(t, err)
	_, err = part.Write(content)
	require.Nil(t, err)
	require.Nil(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/recognize", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestRecognizeUploadHandler(t *testing.T) {
	assert := require.New(t)
	stub := &stubService{}
	rr := httptest.NewRecorder()

	New(stub).ServeHTTP(rr, multipartRequest(t, FORM_FIELD, []byte("\x89PNG\r\n\x1a\n")))

	assert.Equal(http.StatusOK, rr.Code)
	assert.True(stub.input.Store)
	assert.Equal([]byte("\x89PNG\r\n\x1a\n"), stub.input.Image.Data)

	var result map[string]interface{}
	assert.Nil(json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(true, result["success"])
	assert.Equal("/uploads/abc.png", result["imagePath"])
}

func TestRecognizeUploadHandlerWithoutImage(t *testing.T) {
	stub := &stubService{}
	rr := httptest.NewRecorder()

	New(stub).ServeHTTP(rr, multipartRequest(t, "file", []byte("data")))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Nil(t, stub.input)
}

func TestRecognizeUploadHandlerNotMultipart(t *testing.T) {
	stub := &stubService{}
	req := httptest.NewRequest(http.MethodPost, "/recognize", bytes.NewBufferString(`{"image": ""}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	New(stub).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Nil(t, stub.input)
}
