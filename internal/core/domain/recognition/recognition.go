package recognition

import (
	"context"
	"errors"
	"strings"
)

const MAX_IMAGE_SIZE = 10 * 1024 * 1024

var (
	ErrNoImage              = errors.New("no image data provided")
	ErrImageTooLarge        = errors.New("image must not exceed 10MB")
	ErrUnsupportedImageType = errors.New("only jpeg, png, gif and webp images are allowed")
)

var supportedMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func IsSupportedMimeType(mimeType string) bool {
	_, ok := supportedMimeTypes[strings.ToLower(mimeType)]
	return ok
}

// Extension returns the file extension used to store an image of mimeType.
func Extension(mimeType string) string {
	return supportedMimeTypes[strings.ToLower(mimeType)]
}

type Image struct {
	Data     []byte
	MimeType string
}

func (i Image) Validate() error {
	if len(i.Data) == 0 {
		return ErrNoImage
	}
	if len(i.Data) > MAX_IMAGE_SIZE {
		return ErrImageTooLarge
	}
	if !IsSupportedMimeType(i.MimeType) {
		return ErrUnsupportedImageType
	}
	return nil
}

// Analysis is the structured description of a medicine package produced by
// the vision model. Unknown fields hold "unknown" or "not visible".
type Analysis struct {
	MedicineName      string `json:"medicine_name"`
	Manufacturer      string `json:"manufacturer,omitempty"`
	Dosage            string `json:"dosage,omitempty"`
	Form              string `json:"form,omitempty"`
	Purpose           string `json:"purpose,omitempty"`
	ActiveIngredients string `json:"active_ingredients,omitempty"`
	UsageInstructions string `json:"usage_instructions,omitempty"`
	SideEffects       string `json:"side_effects,omitempty"`
	Warnings          string `json:"warnings,omitempty"`
	ExpiryDate        string `json:"expiry_date,omitempty"`
	IsExpired         string `json:"is_expired,omitempty"`
	ExtractedText     string `json:"extracted_text,omitempty"`
	Confidence        string `json:"confidence"`
	RawResponse       string `json:"raw_response,omitempty"`
}

const (
	UNPARSED_MEDICINE_NAME = "Unable to parse"
	CONFIDENCE_LOW         = "low"
)

// Unparsed wraps a model reply that is not valid JSON.
func Unparsed(raw string) Analysis {
	return Analysis{
		MedicineName:  UNPARSED_MEDICINE_NAME,
		RawResponse:   raw,
		ExtractedText: raw,
		Confidence:    CONFIDENCE_LOW,
	}
}

type Recognizer interface {
	RecognizeMedicine(ctx context.Context, image Image) (Analysis, error)
}

// ImageStorage persists uploaded images and returns a path clients can
// fetch them from.
type ImageStorage interface {
	StoreImage(ctx context.Context, image Image) (string, error)
}
