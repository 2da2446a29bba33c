package speech

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	MAX_TEXT_LENGTH = 5000
	AUDIO_MPEG      = "audio/mpeg"
)

var ErrEmptyText = errors.New("text is required")

// PrepareText trims text and cuts it to MAX_TEXT_LENGTH characters.
func PrepareText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}
	if utf8.RuneCountInString(text) <= MAX_TEXT_LENGTH {
		return text, nil
	}
	runes := []rune(text)
	return string(runes[:MAX_TEXT_LENGTH]), nil
}

type Audio struct {
	Data        []byte
	ContentType string
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (Audio, error)
}
