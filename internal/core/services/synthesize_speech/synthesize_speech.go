package synthesizespeech

import (
	"context"
	"fmt"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/speech"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	"medremind/internal/core/services/auth"
)

type Input struct {
	UserID user.ID
	Text   string
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

func (i Input) GetRateLimitKey() string {
	return fmt.Sprintf("synthesize-speech::%d", i.UserID)
}

type Result struct {
	Audio speech.Audio
}

type service struct {
	log         logging.Logger
	synthesizer speech.Synthesizer
}

func New(log logging.Logger, synthesizer speech.Synthesizer) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if synthesizer == nil {
		panic(e.NewNilArgumentError("synthesizer"))
	}
	return &service{log: log, synthesizer: synthesizer}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	text, err := speech.PrepareText(input.Text)
	if err != nil {
		return result, err
	}
	audio, err := s.synthesizer.Synthesize(ctx, text)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.UserID), logging.Entry("length", len(text)))
		return result, err
	}
	if audio.ContentType == "" {
		audio.ContentType = speech.AUDIO_MPEG
	}
	return Result{Audio: audio}, nil
}
