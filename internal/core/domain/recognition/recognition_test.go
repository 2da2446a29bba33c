package recognition

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImageValidate(t *testing.T) {
	cases := []struct {
		id            string
		image         Image
		expectedError error
	}{
		{id: "jpeg", image: Image{Data: []byte{1}, MimeType: "image/jpeg"}},
		{id: "webp upper case", image: Image{Data: []byte{1}, MimeType: "IMAGE/WEBP"}},
		{id: "empty", image: Image{MimeType: "image/png"}, expectedError: ErrNoImage},
		{id: "pdf", image: Image{Data: []byte{1}, MimeType: "application/pdf"}, expectedError: ErrUnsupportedImageType},
		{
			id:            "too large",
			image:         Image{Data: make([]byte, MAX_IMAGE_SIZE+1), MimeType: "image/gif"},
			expectedError: ErrImageTooLarge,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			err := testcase.image.Validate()
			if testcase.expectedError == nil {
				require.Nil(t, err)
			} else {
				require.ErrorIs(t, err, testcase.expectedError)
			}
		})
	}
}

func TestUnparsed(t *testing.T) {
	analysis := Unparsed("I see a box of pills")
	require.Equal(t, "Unable to parse", analysis.MedicineName)
	require.Equal(t, "low", analysis.Confidence)
	require.Equal(t, "I see a box of pills", analysis.ExtractedText)
}
