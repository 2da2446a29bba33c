package speech

import (
	"context"
	"sync"
)

type FakeSynthesizer struct {
	Audio       Audio
	Error       error
	Synthesized []string
	lock        sync.Mutex
}

func NewFakeSynthesizer() *FakeSynthesizer {
	return &FakeSynthesizer{Audio: Audio{Data: []byte("ID3"), ContentType: AUDIO_MPEG}}
}

func (s *FakeSynthesizer) Synthesize(ctx context.Context, text string) (Audio, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Synthesized = append(s.Synthesized, text)
	if s.Error != nil {
		return Audio{}, s.Error
	}
	return s.Audio, nil
}
