package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSynthesize(t *testing.T) {
	assert := require.New(t)
	var request synthesizeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(http.MethodPost, r.Method)
		assert.Equal("/v1/text-to-speech/voice-1", r.URL.Path)
		assert.Equal("test-key", r.Header.Get("xi-api-key"))
		assert.Nil(json.NewDecoder(r.Body).Decode(&request))

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("ID3"))
	}))
	defer server.Close()

	s := NewElevenLabs(server.URL, "test-key", "voice-1")
	audio, err := s.Synthesize(context.Background(), "Take your medication.")

	assert.Nil(err)
	assert.Equal([]byte("ID3"), audio.Data)
	assert.Equal("audio/mpeg", audio.ContentType)
	assert.Equal("Take your medication.", request.Text)
	assert.Equal(MODEL_ID, request.ModelID)
	assert.True(request.VoiceSettings.UseSpeakerBoost)
}

func TestSynthesizeDefaultVoice(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Write([]byte("ID3"))
	}))
	defer server.Close()

	_, err := NewElevenLabs(server.URL, "test-key", "").Synthesize(context.Background(), "Hello")

	require.Nil(t, err)
	require.Equal(t, "/v1/text-to-speech/"+DEFAULT_VOICE_ID, path)
}

func TestSynthesizeErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "invalid api key"}`))
	}))
	defer server.Close()

	_, err := NewElevenLabs(server.URL, "bad", "").Synthesize(context.Background(), "Hello")

	require.EqualError(t, err, `elevenlabs returned status 401: {"detail": "invalid api key"}`)
}
