package speech

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestPrepareText(t *testing.T) {
	assert := require.New(t)

	_, err := PrepareText("   \n")
	assert.ErrorIs(err, ErrEmptyText)

	text, err := PrepareText("  Take one pill  ")
	assert.Nil(err)
	assert.Equal("Take one pill", text)

	text, err = PrepareText(strings.Repeat("ж", MAX_TEXT_LENGTH+10))
	assert.Nil(err)
	assert.Equal(MAX_TEXT_LENGTH, utf8.RuneCountInString(text))
}
