package recognizemedicine

import (
	"context"
	"fmt"
	c "medremind/internal/core/domain/common"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/recognition"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	"medremind/internal/core/services/auth"

	"github.com/gabriel-vasile/mimetype"
)

type Input struct {
	UserID user.ID
	Image  recognition.Image
	// Store keeps the image in the image storage and returns its path.
	Store bool
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

func (i Input) GetRateLimitKey() string {
	return fmt.Sprintf("recognize-medicine::%d", i.UserID)
}

type Result struct {
	ImagePath c.Optional[string]
	Analysis  recognition.Analysis
}

type service struct {
	log          logging.Logger
	recognizer   recognition.Recognizer
	imageStorage recognition.ImageStorage
}

func New(
	log logging.Logger,
	recognizer recognition.Recognizer,
	imageStorage recognition.ImageStorage,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if recognizer == nil {
		panic(e.NewNilArgumentError("recognizer"))
	}
	if imageStorage == nil {
		panic(e.NewNilArgumentError("imageStorage"))
	}
	return &service{
		log:          log,
		recognizer:   recognizer,
		imageStorage: imageStorage,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	image := input.Image
	if len(image.Data) == 0 {
		return result, recognition.ErrNoImage
	}
	// The declared type is not trusted, the content decides.
	detected := mimetype.Detect(image.Data).String()
	if detected != image.MimeType {
		s.log.Debug(
			ctx,
			"Declared image type differs from detected one.",
			logging.Entry("declared", image.MimeType),
			logging.Entry("detected", detected),
		)
	}
	image.MimeType = detected
	if err := image.Validate(); err != nil {
		return result, err
	}

	if input.Store {
		path, err := s.imageStorage.StoreImage(ctx, image)
		if err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("userID", input.UserID))
			return result, err
		}
		result.ImagePath = c.NewOptional(path, true)
	}

	result.Analysis, err = s.recognizer.RecognizeMedicine(ctx, image)
	if err != nil {
		logging.Error(
			ctx,
			s.log,
			err,
			logging.Entry("userID", input.UserID),
			logging.Entry("mimeType", image.MimeType),
			logging.Entry("size", len(image.Data)),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Medicine recognized.",
		logging.Entry("userID", input.UserID),
		logging.Entry("medicineName", result.Analysis.MedicineName),
		logging.Entry("confidence", result.Analysis.Confidence),
		logging.Entry("imagePath", result.ImagePath),
	)
	return result, nil
}
