package synthesizespeech

import (
	"context"
	"errors"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/speech"
	"medremind/internal/core/domain/user"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSynthesize(t *testing.T) {
	// Setup ---
	synthesizer := speech.NewFakeSynthesizer()
	service := New(logging.NewFakeLogger(), synthesizer)

	// Exercise ---
	result, err := service.Run(context.Background(), Input{UserID: user.ID(1), Text: "  Take one tablet.  "})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.Equal(speech.AUDIO_MPEG, result.Audio.ContentType)
	assert.Equal([]string{"Take one tablet."}, synthesizer.Synthesized)
}

func TestLongTextIsTruncated(t *testing.T) {
	synthesizer := speech.NewFakeSynthesizer()
	service := New(logging.NewFakeLogger(), synthesizer)

	_, err := service.Run(context.Background(), Input{Text: strings.Repeat("a", speech.MAX_TEXT_LENGTH+10)})

	assert := require.New(t)
	assert.Nil(err)
	assert.Len(synthesizer.Synthesized[0], speech.MAX_TEXT_LENGTH)
}

func TestEmptyText(t *testing.T) {
	synthesizer := speech.NewFakeSynthesizer()
	service := New(logging.NewFakeLogger(), synthesizer)

	_, err := service.Run(context.Background(), Input{Text: " \n\t "})

	assert := require.New(t)
	assert.ErrorIs(err, speech.ErrEmptyText)
	assert.Empty(synthesizer.Synthesized)
}

func TestProviderError(t *testing.T) {
	synthesizer := speech.NewFakeSynthesizer()
	synthesizer.Error = errors.New("quota exceeded")
	service := New(logging.NewFakeLogger(), synthesizer)

	_, err := service.Run(context.Background(), Input{Text: "hello"})

	require.NotNil(t, err)
}
