package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

var _ DocumentStore = (*MemoryStore)(nil)

// MemoryStore is an in-process DocumentStore. Snapshots are delivered
// synchronously from the writing goroutine, ordered by document id, so
// watchers must not write back into the store from inside their callback.
type MemoryStore struct {
	deliverMu sync.Mutex

	mu          sync.Mutex
	collections map[string]map[string]Fields
	watchers    map[string]map[int]SnapshotFunc
	nextWatcher int
	writeErr    error
	watchErr    error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]Fields),
		watchers:    make(map[string]map[int]SnapshotFunc),
	}
}

// FailWrites makes every following write return err. Pass nil to recover.
func (m *MemoryStore) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// FailWatch makes every following Watch call return err. Pass nil to recover.
func (m *MemoryStore) FailWatch(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watchErr = err
}

func (m *MemoryStore) Set(ctx context.Context, collection, id string, fields Fields) error {
	return m.write(ctx, collection, func(docs map[string]Fields) error {
		doc, err := copyFields(fields)
		if err != nil {
			return err
		}
		docs[id] = doc
		return nil
	})
}

func (m *MemoryStore) Merge(ctx context.Context, collection, id string, fields Fields) error {
	return m.write(ctx, collection, func(docs map[string]Fields) error {
		existing, ok := docs[id]
		if !ok {
			return ErrNotFound
		}
		patch, err := copyFields(fields)
		if err != nil {
			return err
		}
		for k, v := range patch {
			existing[k] = v
		}
		return nil
	})
}

func (m *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	return m.write(ctx, collection, func(docs map[string]Fields) error {
		delete(docs, id)
		return nil
	})
}

func (m *MemoryStore) Watch(ctx context.Context, collection string, onChange SnapshotFunc, onError ErrorFunc) (func(), error) {
	m.deliverMu.Lock()
	defer m.deliverMu.Unlock()

	m.mu.Lock()
	if m.watchErr != nil {
		err := m.watchErr
		m.mu.Unlock()
		return nil, err
	}
	if m.watchers[collection] == nil {
		m.watchers[collection] = make(map[int]SnapshotFunc)
	}
	id := m.nextWatcher
	m.nextWatcher++
	m.watchers[collection][id] = onChange
	snapshot := m.snapshotLocked(collection)
	m.mu.Unlock()

	onChange(snapshot)

	var once sync.Once
	remove := func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.watchers[collection], id)
			m.mu.Unlock()
		})
	}
	stop := context.AfterFunc(ctx, remove)
	return func() {
		stop()
		remove()
	}, nil
}

func (m *MemoryStore) write(ctx context.Context, collection string, fn func(docs map[string]Fields) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.deliverMu.Lock()
	defer m.deliverMu.Unlock()

	m.mu.Lock()
	if m.writeErr != nil {
		err := m.writeErr
		m.mu.Unlock()
		return err
	}
	docs := m.collections[collection]
	if docs == nil {
		docs = make(map[string]Fields)
		m.collections[collection] = docs
	}
	if err := fn(docs); err != nil {
		m.mu.Unlock()
		return err
	}
	snapshot := m.snapshotLocked(collection)
	watchers := make([]SnapshotFunc, 0, len(m.watchers[collection]))
	for _, w := range m.watchers[collection] {
		watchers = append(watchers, w)
	}
	m.mu.Unlock()

	for _, w := range watchers {
		w(cloneDocuments(snapshot))
	}
	return nil
}

func (m *MemoryStore) snapshotLocked(collection string) []Document {
	docs := m.collections[collection]
	out := make([]Document, 0, len(docs))
	for id, fields := range docs {
		c, _ := copyFields(fields)
		out = append(out, Document{ID: id, Fields: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func cloneDocuments(docs []Document) []Document {
	out := make([]Document, len(docs))
	for i, d := range docs {
		c, _ := copyFields(d.Fields)
		out[i] = Document{ID: d.ID, Fields: c}
	}
	return out
}

// copyFields deep-copies through JSON so stored values look exactly like
// values decoded from a remote store.
func copyFields(fields Fields) (Fields, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	out := Fields{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return out, nil
}
