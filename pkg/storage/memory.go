package stores

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps objects in process memory. Used by tests and for
// local development without an object storage service.
type MemoryStore struct {
	baseURL string

	mu      sync.RWMutex
	objects map[string]memObject
}

type memObject struct {
	data        []byte
	contentType string
	modified    time.Time
}

func NewMemoryStore(baseURL string) *MemoryStore {
	if baseURL == "" {
		baseURL = "memory://objects"
	}
	return &MemoryStore{baseURL: baseURL, objects: make(map[string]memObject)}
}

func (m *MemoryStore) Write(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.objects[key] = memObject{data: data, contentType: contentType, modified: time.Now()}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Read(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return nil, 0, fmt.Errorf("object %q not found", key)
	}
	return io.NopCloser(bytes.NewReader(obj.data)), int64(len(obj.data)), nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	_, ok := m.objects[key]
	m.mu.RUnlock()
	return ok, nil
}

func (m *MemoryStore) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []ObjectInfo
	for key, obj := range m.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, ObjectInfo{Key: key, Size: int64(len(obj.data)), LastModified: obj.modified})
		}
	}
	return out, nil
}

func (m *MemoryStore) PublicURL(key string) string {
	return strings.TrimRight(m.baseURL, "/") + "/" + key
}

// SetModified backdates an object's timestamp. Test helper for sweep logic.
func (m *MemoryStore) SetModified(key string, t time.Time) {
	m.mu.Lock()
	if obj, ok := m.objects[key]; ok {
		obj.modified = t
		m.objects[key] = obj
	}
	m.mu.Unlock()
}
