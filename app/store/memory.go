package store

import (
	"context"
	"sync"

	"icando-go/app/models"
)

// MemoryStore keeps the last saved tree as JSON for the life of the process.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (*models.Mission, error) {
	s.mu.Lock()
	data := s.data
	s.mu.Unlock()
	if data == nil {
		return nil, nil
	}
	return models.DecodeJSON(data)
}

func (s *MemoryStore) Save(ctx context.Context, root *models.Mission) error {
	data, err := models.EncodeJSON(root)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}
