package store

import (
	"context"
	"strings"
	"sync"
)

var _ BlobStore = (*MemoryBlobStore)(nil)

// MemoryBlobStore keeps blobs in memory and serves them under BaseURL.
type MemoryBlobStore struct {
	BaseURL string

	mu       sync.Mutex
	objects  map[string]memoryBlob
	writeErr error
}

type memoryBlob struct {
	data        []byte
	contentType string
}

func NewMemoryBlobStore(baseURL string) *MemoryBlobStore {
	return &MemoryBlobStore{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		objects: make(map[string]memoryBlob),
	}
}

// FailWrites makes every following write return err. Pass nil to recover.
func (b *MemoryBlobStore) FailWrites(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writeErr = err
}

func (b *MemoryBlobStore) Write(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.writeErr != nil {
		return "", b.writeErr
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	b.objects[path] = memoryBlob{data: buf, contentType: contentType}
	return b.BaseURL + "/" + path, nil
}

// Object returns the stored bytes for path.
func (b *MemoryBlobStore) Object(path string) ([]byte, bool) {
	data, _, ok := b.Read(path)
	return data, ok
}

// Read returns the stored bytes and content type for path.
func (b *MemoryBlobStore) Read(path string) ([]byte, string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	obj, ok := b.objects[path]
	return obj.data, obj.contentType, ok
}

func (b *MemoryBlobStore) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.objects)
}
