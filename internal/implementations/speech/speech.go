package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"medremind/internal/core/domain/speech"
	"net/http"
	"strings"
	"time"
)

const (
	ELEVENLABS_BASE_URL = "https://api.elevenlabs.io"
	DEFAULT_VOICE_ID    = "EXAVITQu4vr4xnSDxMaL"
	MODEL_ID            = "eleven_monolingual_v1"
	REQUEST_TIMEOUT     = 30 * time.Second
	// Error bodies are only read for the log line.
	MAX_ERROR_BODY = 1024
)

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

type synthesizeRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type ElevenLabs struct {
	client  *http.Client
	baseURL string
	apiKey  string
	voiceID string
}

func NewElevenLabs(baseURL string, apiKey string, voiceID string) *ElevenLabs {
	if baseURL == "" {
		baseURL = ELEVENLABS_BASE_URL
	}
	if voiceID == "" {
		voiceID = DEFAULT_VOICE_ID
	}
	return &ElevenLabs{
		client:  &http.Client{Timeout: REQUEST_TIMEOUT},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		voiceID: voiceID,
	}
}

func (s *ElevenLabs) Synthesize(ctx context.Context, text string) (audio speech.Audio, err error) {
	body, err := json.Marshal(synthesizeRequest{
		Text:    text,
		ModelID: MODEL_ID,
		VoiceSettings: voiceSettings{
			Stability:       0.75,
			SimilarityBoost: 0.75,
			Style:           0.2,
			UseSpeakerBoost: true,
		},
	})
	if err != nil {
		return audio, err
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", s.baseURL, s.voiceID)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return audio, err
	}
	request.Header.Set("Accept", speech.AUDIO_MPEG)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("xi-api-key", s.apiKey)

	response, err := s.client.Do(request)
	if err != nil {
		return audio, fmt.Errorf("elevenlabs request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(response.Body, MAX_ERROR_BODY))
		return audio, fmt.Errorf("elevenlabs returned status %d: %s", response.StatusCode, detail)
	}

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return audio, err
	}
	contentType := response.Header.Get("Content-Type")
	if contentType == "" {
		contentType = speech.AUDIO_MPEG
	}
	return speech.Audio{Data: data, ContentType: contentType}, nil
}
