package supabase

import (
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// ChangeChannel is the NOTIFY channel raised by the documents trigger. The
// payload is the collection name.
const ChangeChannel = "documents_changed"

const (
	minReconnectInterval = 2 * time.Second
	maxReconnectInterval = time.Minute
	pingInterval         = 90 * time.Second
)

// RealtimeClient fans out document change notifications. Handlers run on the
// single notification goroutine, one at a time.
type RealtimeClient struct {
	listener *pq.Listener
	logger   *zap.Logger
	done     chan struct{}
	closeMu  sync.Once

	mu       sync.Mutex
	handlers map[int]func(collection string)
	nextID   int
}

func NewRealtimeClient(connectionString string, logger *zap.Logger) (*RealtimeClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &RealtimeClient{
		logger:   logger.Named("realtime"),
		done:     make(chan struct{}),
		handlers: make(map[int]func(string)),
	}
	r.listener = pq.NewListener(connectionString, minReconnectInterval, maxReconnectInterval, r.onEvent)
	if err := r.listener.Listen(ChangeChannel); err != nil {
		r.listener.Close()
		return nil, fmt.Errorf("failed to listen on %s: %w", ChangeChannel, err)
	}

	go r.run()
	return r, nil
}

// Subscribe registers fn for every change. fn receives the changed collection,
// or "" after a reconnect when notifications may have been lost.
func (r *RealtimeClient) Subscribe(fn func(collection string)) func() {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.handlers[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.handlers, id)
		r.mu.Unlock()
	}
}

func (r *RealtimeClient) Close() error {
	var err error
	r.closeMu.Do(func() {
		close(r.done)
		err = r.listener.Close()
	})
	return err
}

func (r *RealtimeClient) run() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case n, ok := <-r.listener.Notify:
			if !ok {
				return
			}
			// pq sends nil after re-establishing the connection.
			if n == nil {
				r.logger.Info("change feed reconnected, resyncing")
				r.dispatch("")
				continue
			}
			r.dispatch(n.Extra)
		case <-ticker.C:
			go func() {
				if err := r.listener.Ping(); err != nil {
					r.logger.Warn("change feed ping failed", zap.Error(err))
				}
			}()
		}
	}
}

func (r *RealtimeClient) dispatch(collection string) {
	r.mu.Lock()
	handlers := make([]func(string), 0, len(r.handlers))
	for _, h := range r.handlers {
		handlers = append(handlers, h)
	}
	r.mu.Unlock()

	for _, h := range handlers {
		h(collection)
	}
}

func (r *RealtimeClient) onEvent(ev pq.ListenerEventType, err error) {
	switch ev {
	case pq.ListenerEventDisconnected:
		r.logger.Warn("change feed disconnected", zap.Error(err))
	case pq.ListenerEventConnectionAttemptFailed:
		r.logger.Warn("change feed reconnect attempt failed", zap.Error(err))
	case pq.ListenerEventReconnected:
		r.logger.Info("change feed connection re-established")
	}
}

// affects reports whether a notification for changed concerns collection.
func affects(changed, collection string) bool {
	return changed == "" || changed == collection
}
