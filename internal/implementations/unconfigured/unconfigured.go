package unconfigured

import (
	"context"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/recognition"
	"medremind/internal/core/domain/reminder"
	"medremind/internal/core/domain/speech"
)

// Integration stands in for an external provider whose credentials are
// missing. Every call fails with a NotConfiguredError naming it.
type Integration struct {
	name string
}

func New(name string) *Integration {
	return &Integration{name: name}
}

func (i *Integration) err() error {
	return e.NewNotConfiguredError(i.name)
}

func (i *Integration) SendReminderEmail(ctx context.Context, message reminder.EmailMessage) error {
	return i.err()
}

func (i *Integration) PlaceReminderCall(ctx context.Context, message reminder.CallMessage) error {
	return i.err()
}

func (i *Integration) RecognizeMedicine(ctx context.Context, image recognition.Image) (recognition.Analysis, error) {
	return recognition.Analysis{}, i.err()
}

func (i *Integration) Synthesize(ctx context.Context, text string) (speech.Audio, error) {
	return speech.Audio{}, i.err()
}
