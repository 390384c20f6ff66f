package supabase

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"genai-space-backend/internal/store"
)

var _ store.DocumentStore = (*DocumentStore)(nil)

type documentRow struct {
	Collection string       `json:"collection"`
	ID         string       `json:"id"`
	Data       store.Fields `json:"data"`
}

type documentDB interface {
	ListDocuments(ctx context.Context, collection string) ([]store.Document, error)
	MergeDocument(ctx context.Context, collection, id string, fields store.Fields) error
}

type changeFeed interface {
	Subscribe(fn func(collection string)) func()
}

// DocumentStore keeps every collection in the documents table.
type DocumentStore struct {
	client   *Client
	db       documentDB
	realtime changeFeed
	logger   *zap.Logger
}

func NewDocumentStore(client *Client, db *DatabaseClient, realtime *RealtimeClient, logger *zap.Logger) *DocumentStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentStore{
		client:   client,
		db:       db,
		realtime: realtime,
		logger:   logger.Named("documents"),
	}
}

func (s *DocumentStore) Set(ctx context.Context, collection, id string, fields store.Fields) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	row := documentRow{Collection: collection, ID: id, Data: fields}
	if _, _, err := s.client.Supabase.From(documentsTable).
		Upsert(row, "collection,id", "minimal", "").
		Execute(); err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}

func (s *DocumentStore) Merge(ctx context.Context, collection, id string, fields store.Fields) error {
	return s.db.MergeDocument(ctx, collection, id, fields)
}

func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, _, err := s.client.Supabase.From(documentsTable).
		Delete("minimal", "").
		Eq("collection", collection).
		Eq("id", id).
		Execute(); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// Watch subscribes to the change feed, then reads and delivers the
// collection. Every change notification and every reconnect of the feed
// triggers a re-read. A notification that arrives during a read waits for that
// delivery and re-reads afterwards, so no change is lost between the initial
// read and the subscription.
func (s *DocumentStore) Watch(ctx context.Context, collection string, onChange store.SnapshotFunc, onError store.ErrorFunc) (func(), error) {
	watchCtx, cancelCtx := context.WithCancel(context.Background())

	// mu covers a read together with its delivery.
	var mu sync.Mutex
	mu.Lock()

	unsubscribe := s.realtime.Subscribe(func(changed string) {
		if !affects(changed, collection) {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if watchCtx.Err() != nil {
			return
		}
		docs, err := s.db.ListDocuments(watchCtx, collection)
		if err != nil {
			if watchCtx.Err() != nil {
				return
			}
			s.logger.Warn("resync failed", zap.String("collection", collection), zap.Error(err))
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(docs)
	})

	docs, err := s.db.ListDocuments(ctx, collection)
	if err != nil {
		cancelCtx()
		mu.Unlock()
		unsubscribe()
		return nil, err
	}
	onChange(docs)
	mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			unsubscribe()
			cancelCtx()
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-watchCtx.Done():
		}
	}()

	return cancel, nil
}
