package filestore

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/models"
)

// MemoryStore keeps uploads in process memory. Used in tests and in
// deployments without a writable volume.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: map[string][]byte{}}
}

func (m *MemoryStore) Save(ctx context.Context, caseID, filename string, size int64, r io.Reader) (models.FileRef, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.FileRef{}, err
	}
	key := "mem://" + caseID + "/" + uuid.NewString() + "_" + sanitize(filename)

	m.mu.Lock()
	m.blobs[key] = data
	m.mu.Unlock()

	return models.FileRef{URL: key, Name: sanitize(filename), Size: int64(len(data))}, nil
}

func (m *MemoryStore) Remove(ctx context.Context, ref models.FileRef) error {
	m.mu.Lock()
	delete(m.blobs, ref.URL)
	m.mu.Unlock()
	return nil
}

// Get returns a stored blob. Test helper.
func (m *MemoryStore) Get(url string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[url]
	return data, ok
}
