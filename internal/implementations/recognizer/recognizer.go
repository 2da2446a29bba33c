package recognizer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/recognition"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	GROQ_BASE_URL = "https://api.groq.com/openai/v1"
	DEFAULT_MODEL = "llama-3.2-90b-vision-preview"
	TEMPERATURE   = 0.3
	MAX_TOKENS    = 2000
)

var ErrEmptyReply = errors.New("vision model returned no choices")

const promptTemplate = `You are a pharmaceutical expert assistant. Analyze this medicine image carefully and provide the following information in a structured JSON format:

{
  "medicine_name": "Name of the medicine (brand name and generic name if visible)",
  "manufacturer": "Manufacturer name if visible",
  "dosage": "Dosage information (e.g., 500mg, 10mg/5ml)",
  "form": "Form of medicine (tablet, capsule, syrup, cream, etc.)",
  "purpose": "What this medicine is commonly used for (brief description)",
  "active_ingredients": "List of active ingredients if visible",
  "usage_instructions": "How to take/use this medicine",
  "side_effects": "Common side effects to be aware of",
  "warnings": "Important warnings or precautions",
  "expiry_date": "Expiry date if visible on the package (format: YYYY-MM-DD or 'not visible')",
  "is_expired": "true/false/unknown - based on expiry date compared to current date",
  "extracted_text": "All readable text from the medicine packaging",
  "confidence": "high/medium/low - your confidence in the analysis"
}

IMPORTANT:
- If you cannot determine certain fields, use "not visible" or "unknown"
- Always provide the purpose/usage even if you need to infer from the medicine name
- Check expiry date against today's date (%s)
- Extract ALL visible text from the packaging
- Return ONLY valid JSON, no markdown formatting`

type OpenAIRecognizer struct {
	client *openai.Client
	model  string
	now    func() time.Time
}

func NewOpenAI(apiKey string, baseURL string, model string, now func() time.Time) *OpenAIRecognizer {
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = DEFAULT_MODEL
	}
	return &OpenAIRecognizer{client: openai.NewClientWithConfig(config), model: model, now: now}
}

func Prompt(today time.Time) string {
	return fmt.Sprintf(promptTemplate, today.Format("2006-01-02"))
}

func (r *OpenAIRecognizer) RecognizeMedicine(
	ctx context.Context,
	image recognition.Image,
) (analysis recognition.Analysis, err error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", image.MimeType, base64.StdEncoding.EncodeToString(image.Data))

	response, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: Prompt(r.now())},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: dataURL}},
				},
			},
		},
		Temperature: TEMPERATURE,
		MaxTokens:   MAX_TOKENS,
	})
	if err != nil {
		return analysis, fmt.Errorf("failed to analyze medicine image: %w", err)
	}
	if len(response.Choices) == 0 {
		return analysis, ErrEmptyReply
	}
	return ParseReply(response.Choices[0].Message.Content), nil
}

// ParseReply decodes the JSON analysis from a model reply. Markdown code
// fences are ignored. A reply that is not JSON becomes a low-confidence
// analysis carrying the raw text.
func ParseReply(content string) recognition.Analysis {
	cleaned := strings.ReplaceAll(content, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var r reply
	decoder := json.NewDecoder(strings.NewReader(cleaned))
	if err := decoder.Decode(&r); err != nil {
		return recognition.Unparsed(content)
	}
	return r.analysis()
}

type reply struct {
	MedicineName      text `json:"medicine_name"`
	Manufacturer      text `json:"manufacturer"`
	Dosage            text `json:"dosage"`
	Form              text `json:"form"`
	Purpose           text `json:"purpose"`
	ActiveIngredients text `json:"active_ingredients"`
	UsageInstructions text `json:"usage_instructions"`
	SideEffects       text `json:"side_effects"`
	Warnings          text `json:"warnings"`
	ExpiryDate        text `json:"expiry_date"`
	IsExpired         text `json:"is_expired"`
	ExtractedText     text `json:"extracted_text"`
	Confidence        text `json:"confidence"`
}

func (r reply) analysis() recognition.Analysis {
	return recognition.Analysis{
		MedicineName:      string(r.MedicineName),
		Manufacturer:      string(r.Manufacturer),
		Dosage:            string(r.Dosage),
		Form:              string(r.Form),
		Purpose:           string(r.Purpose),
		ActiveIngredients: string(r.ActiveIngredients),
		UsageInstructions: string(r.UsageInstructions),
		SideEffects:       string(r.SideEffects),
		Warnings:          string(r.Warnings),
		ExpiryDate:        string(r.ExpiryDate),
		IsExpired:         string(r.IsExpired),
		ExtractedText:     string(r.ExtractedText),
		Confidence:        string(r.Confidence),
	}
}

// text accepts any JSON value. Models answer booleans and lists where a
// string was asked for.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*t = text(stringify(value))
	return nil
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, stringify(item))
		}
		return strings.Join(parts, ", ")
	case map[string]interface{}:
		out, _ := json.Marshal(v)
		return string(out)
	default:
		return fmt.Sprint(v)
	}
}
