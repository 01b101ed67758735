package storage

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
)

// MemoryStore keeps blobs in a map. It backs local development when no
// bucket is configured and doubles as the blob store in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	baseURL string
	blobs   map[string][]byte
	uploads int

	// Failure injection for tests. UploadErrAfter fails the n+1th upload
	// when set to n > 0; DeleteErr fails every delete.
	UploadErrAfter int
	DeleteErr      error
}

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		blobs:   make(map[string][]byte),
	}
}

func (m *MemoryStore) Upload(_ context.Context, f File, folder string) (string, error) {
	if err := ValidateFile(f, folder); err != nil {
		return "", err
	}
	key := folder + "/" + uuid.NewString() + f.Ext()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UploadErrAfter > 0 && m.uploads >= m.UploadErrAfter {
		return "", errors.New("simulated upload failure")
	}
	m.uploads++
	m.blobs[key] = f.Data
	return m.baseURL + "/" + key, nil
}

func (m *MemoryStore) Delete(_ context.Context, fileURL string) (bool, error) {
	prefix := m.baseURL + "/"
	if !strings.HasPrefix(fileURL, prefix) {
		return false, nil
	}
	key := strings.TrimPrefix(fileURL, prefix)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return false, m.DeleteErr
	}
	if _, ok := m.blobs[key]; !ok {
		return false, nil
	}
	delete(m.blobs, key)
	return true, nil
}

// SignURL returns the URL unchanged; in-memory blobs need no credentials.
// Foreign or missing URLs are rejected like the S3 implementation does.
func (m *MemoryStore) SignURL(_ context.Context, fileURL string, _ time.Duration) (string, error) {
	if !m.Has(fileURL) {
		return "", apperrors.InvalidArgument("url does not belong to this store")
	}
	return fileURL, nil
}

// Len reports how many blobs are currently stored.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blobs)
}

// Has reports whether the blob behind url is still retrievable.
func (m *MemoryStore) Has(fileURL string) bool {
	prefix := m.baseURL + "/"
	if !strings.HasPrefix(fileURL, prefix) {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.blobs[strings.TrimPrefix(fileURL, prefix)]
	return ok
}
