package recognition

import (
	"context"
	"fmt"
	"sync"
)

type FakeRecognizer struct {
	Analysis   Analysis
	Error      error
	Recognized []Image
	lock       sync.Mutex
}

func NewFakeRecognizer(analysis Analysis) *FakeRecognizer {
	return &FakeRecognizer{Analysis: analysis}
}

func (r *FakeRecognizer) RecognizeMedicine(ctx context.Context, image Image) (Analysis, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Recognized = append(r.Recognized, image)
	if r.Error != nil {
		return Analysis{}, r.Error
	}
	return r.Analysis, nil
}

type FakeImageStorage struct {
	Stored []Image
	Error  error
	lock   sync.Mutex
}

func NewFakeImageStorage() *FakeImageStorage {
	return &FakeImageStorage{}
}

func (s *FakeImageStorage) StoreImage(ctx context.Context, image Image) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.Error != nil {
		return "", s.Error
	}
	s.Stored = append(s.Stored, image)
	return fmt.Sprintf("/uploads/%d%s", len(s.Stored), Extension(image.MimeType)), nil
}
