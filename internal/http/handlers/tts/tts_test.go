package tts

import (
	"context"
	"errors"
	e "medremind/internal/core/domain/errors"
	ratelimiter "medremind/internal/core/domain/rate_limiter"
	"medremind/internal/core/domain/speech"
	"medremind/internal/core/domain/user"
	service "medremind/internal/core/services/synthesize_speech"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
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
	result.Audio = speech.Audio{Data: []byte("ID3audio"), ContentType: speech.AUDIO_MPEG}
	return result, nil
}

func TestTTSHandlerReturnsAudio(t *testing.T) {
	stub := &stubService{}
	req := httptest.NewRequest(http.MethodPost, "/tts", strings.NewReader(`{"text": "Take your aspirin"}`))
	rr := httptest.NewRecorder()

	New(stub).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, speech.AUDIO_MPEG, rr.Header().Get("Content-Type"))
	assert.Equal(t, "8", rr.Header().Get("Content-Length"))
	assert.Equal(t, "ID3audio", rr.Body.String())
	assert.Equal(t, "Take your aspirin", stub.input.Text)
}

func TestTTSHandlerErrors(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
	}{
		{id: "invalid body", body: `{`, expectedStatus: http.StatusBadRequest},
		{id: "empty text", body: `{"text": ""}`, serviceErr: speech.ErrEmptyText, expectedStatus: http.StatusBadRequest},
		{id: "unauthorized", body: `{"text": "hi"}`, serviceErr: user.ErrUserDoesNotExist, expectedStatus: http.StatusUnauthorized},
		{id: "rate limit", body: `{"text": "hi"}`, serviceErr: ratelimiter.ErrRateLimitExceeded, expectedStatus: http.StatusTooManyRequests},
		{
			id:             "not configured",
			body:           `{"text": "hi"}`,
			serviceErr:     e.NewNotConfiguredError("text to speech"),
			expectedStatus: http.StatusServiceUnavailable,
		},
		{id: "provider failure", body: `{"text": "hi"}`, serviceErr: errors.New("502"), expectedStatus: http.StatusInternalServerError},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/tts", strings.NewReader(testcase.body))
			rr := httptest.NewRecorder()

			New(&stubService{err: testcase.serviceErr}).ServeHTTP(rr, req)

			assert.Equal(t, testcase.expectedStatus, rr.Code)
		})
	}
}
