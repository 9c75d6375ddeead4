package blobstore

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

// Memory is an in-memory blob store used in tests and local development.
// Safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	data        []byte
	contentType string
}

var _ interfaces.BlobStore = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{objects: map[string]memoryObject{}}
}

// Put stores or replaces an object under key. An empty contentType is kept
// empty so callers exercise their default handling.
func (m *Memory) Put(key string, data []byte, contentType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{
		data:        append([]byte(nil), data...),
		contentType: contentType,
	}
}

// Get implements interfaces.BlobStore.
func (m *Memory) Get(_ context.Context, key string) (*interfaces.BlobObject, error) {
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()

	if !ok {
		return nil, interfaces.ErrBlobNotFound
	}

	return &interfaces.BlobObject{
		Body:        io.NopCloser(bytes.NewReader(obj.data)),
		Size:        int64(len(obj.data)),
		ContentType: obj.contentType,
	}, nil
}
