package recognizer

import (
	"context"
	"encoding/json"
	"medremind/internal/core/domain/recognition"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var NOW = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func TestParseReply(t *testing.T) {
	cases := []struct {
		id       string
		content  string
		expected recognition.Analysis
	}{
		{
			id:      "plain json",
			content: `{"medicine_name": "Aspirin", "dosage": "100mg", "confidence": "high"}`,
			expected: recognition.Analysis{
				MedicineName: "Aspirin",
				Dosage:       "100mg",
				Confidence:   "high",
			},
		},
		{
			id:      "code fence",
			content: "```json\n{\"medicine_name\": \"Ibuprofen\", \"confidence\": \"medium\"}\n```",
			expected: recognition.Analysis{
				MedicineName: "Ibuprofen",
				Confidence:   "medium",
			},
		},
		{
			id:      "non string values",
			content: `{"medicine_name": "Aspirin", "is_expired": false, "active_ingredients": ["a", "b"], "confidence": "low"}`,
			expected: recognition.Analysis{
				MedicineName:      "Aspirin",
				IsExpired:         "false",
				ActiveIngredients: "a, b",
				Confidence:        "low",
			},
		},
		{
			id:       "not json",
			content:  "I cannot see a medicine here.",
			expected: recognition.Unparsed("I cannot see a medicine here."),
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			require.Equal(t, testcase.expected, ParseReply(testcase.content))
		})
	}
}

func TestPromptContainsToday(t *testing.T) {
	require.Contains(t, Prompt(NOW), "(2024-03-15)")
}

func TestRecognizeMedicine(t *testing.T) {
	assert := require.New(t)
	var request map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("/chat/completions", r.URL.Path)
		assert.Equal("Bearer test-key", r.Header.Get("Authorization"))
		assert.Nil(json.NewDecoder(r.Body).Decode(&request))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"medicine_name\": \"Aspirin\", \"confidence\": \"high\"}"}}]
		}`))
	}))
	defer server.Close()

	r := NewOpenAI("test-key", server.URL, "", func() time.Time { return NOW })
	analysis, err := r.RecognizeMedicine(context.Background(), recognition.Image{Data: []byte("png"), MimeType: "image/png"})

	assert.Nil(err)
	assert.Equal("Aspirin", analysis.MedicineName)
	assert.Equal(DEFAULT_MODEL, request["model"])

	messages := request["messages"].([]interface{})
	content := messages[0].(map[string]interface{})["content"].([]interface{})
	image := content[1].(map[string]interface{})["image_url"].(map[string]interface{})
	assert.True(strings.HasPrefix(image["url"].(string), "data:image/png;base64,"))
}

func TestRecognizeMedicineProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"message": "boom", "type": "server_error"}}`))
	}))
	defer server.Close()

	r := NewOpenAI("test-key", server.URL, "", func() time.Time { return NOW })
	_, err := r.RecognizeMedicine(context.Background(), recognition.Image{Data: []byte("png"), MimeType: "image/png"})

	require.Error(t, err)
}
