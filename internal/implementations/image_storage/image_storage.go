package imagestorage

import (
	"bytes"
	"context"
	"fmt"
	"medremind/internal/core/domain/recognition"
	"os"
	"path"
	"path/filepath"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const UPLOADS_URL_PREFIX = "/uploads/"

// Local keeps images in a directory served by the HTTP app under
// UPLOADS_URL_PREFIX.
type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create uploads directory: %w", err)
	}
	return &Local{dir: dir}, nil
}

func (s *Local) Dir() string {
	return s.dir
}

func (s *Local) StoreImage(ctx context.Context, image recognition.Image) (string, error) {
	name := uuid.NewString() + recognition.Extension(image.MimeType)
	if err := os.WriteFile(filepath.Join(s.dir, name), image.Data, 0o644); err != nil {
		return "", err
	}
	return path.Join(UPLOADS_URL_PREFIX, name), nil
}

type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinary expects a cloudinary://<key>:<secret>@<cloud> URL.
func NewCloudinary(cloudinaryURL string, folder string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &Cloudinary{cld: cld, folder: folder}, nil
}

func (s *Cloudinary) StoreImage(ctx context.Context, image recognition.Image) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(image.Data), uploader.UploadParams{
		Folder:   s.folder,
		PublicID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload error: %s", result.Error.Message)
	}
	return result.SecureURL, nil
}
