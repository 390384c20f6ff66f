// Package cache holds the process-wide view of the submission collection. The
// view is replaced only by snapshots coming from the repository subscription;
// the mutators forward to the repository and never touch it.
package cache

import (
	"context"
	"errors"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"genai-space-backend/internal/models"
)

var ErrAlreadyStarted = errors.New("cache already started")

// Repository is the subset of submissions.Repository the cache depends on.
type Repository interface {
	Create(ctx context.Context, in models.NewSubmission) (models.Submission, error)
	Update(ctx context.Context, id string, u models.SubmissionUpdate) error
	Delete(ctx context.Context, id string) error
	Subscribe(ctx context.Context, onChange func([]models.Submission), onError func(error)) (func(), error)
}

// Diff lists the ids that changed between two consecutive snapshots.
type Diff struct {
	Added   []string
	Changed []string
	Removed []string
}

func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Changed) == 0 && len(d.Removed) == 0
}

// ListenerFunc receives every delivered snapshot with its diff. The snapshot
// slice is shared between listeners and must be treated as read-only.
type ListenerFunc func(snapshot []models.Submission, diff Diff)

type Cache struct {
	repo   Repository
	logger *zap.Logger

	// deliverMu serializes snapshot replacement and listener delivery.
	deliverMu sync.Mutex

	mu        sync.RWMutex
	snapshot  []models.Submission
	index     map[string]int
	ready     bool
	lastErr   error
	cancel    func()
	listeners map[int]ListenerFunc
	nextID    int
}

func New(repo Repository, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		repo:      repo,
		logger:    logger.Named("cache"),
		index:     make(map[string]int),
		listeners: make(map[int]ListenerFunc),
	}
}

// Start establishes the single subscription. It returns the repository error
// when the subscription cannot be established.
func (c *Cache) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.mu.Unlock()

	cancel, err := c.repo.Subscribe(ctx, c.apply, c.recordError)
	if err != nil {
		c.recordError(err)
		return err
	}

	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()
	c.logger.Info("submission cache subscribed")
	return nil
}

// Close tears down the subscription. The last snapshot stays readable.
func (c *Cache) Close() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Submissions returns a copy of the current snapshot in delivery order.
func (c *Cache) Submissions() []models.Submission {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Submission, len(c.snapshot))
	for i, s := range c.snapshot {
		out[i] = s.Clone()
	}
	return out
}

func (c *Cache) Get(id string) (models.Submission, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[id]
	if !ok {
		return models.Submission{}, false
	}
	return c.snapshot[i].Clone(), true
}

// Ready reports whether the first snapshot has arrived.
func (c *Cache) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// LastError returns the most recent read or write failure, if any.
func (c *Cache) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Listen registers fn for every following snapshot. When the cache is ready
// fn is called once right away with the current snapshot and an empty diff.
// The returned function unregisters fn.
func (c *Cache) Listen(fn ListenerFunc) func() {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	ready := c.ready
	snapshot := c.snapshot
	c.mu.Unlock()

	if ready {
		fn(snapshot, Diff{})
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

func (c *Cache) Create(ctx context.Context, in models.NewSubmission) (models.Submission, error) {
	sub, err := c.repo.Create(ctx, in)
	if err != nil {
		c.recordError(err)
		return models.Submission{}, err
	}
	return sub, nil
}

func (c *Cache) Update(ctx context.Context, id string, u models.SubmissionUpdate) error {
	if err := c.repo.Update(ctx, id, u); err != nil {
		c.recordError(err)
		return err
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, id string) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		c.recordError(err)
		return err
	}
	return nil
}

func (c *Cache) recordError(err error) {
	c.logger.Warn("submission store error", zap.Error(err))
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
}

func (c *Cache) apply(subs []models.Submission) {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()

	index := make(map[string]int, len(subs))
	for i, s := range subs {
		index[s.ID] = i
	}

	c.mu.Lock()
	diff := diffSnapshots(c.snapshot, c.index, subs, index)
	c.snapshot = subs
	c.index = index
	c.ready = true
	listeners := make([]ListenerFunc, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.Unlock()

	c.logger.Debug("snapshot applied",
		zap.Int("submissions", len(subs)),
		zap.Int("added", len(diff.Added)),
		zap.Int("changed", len(diff.Changed)),
		zap.Int("removed", len(diff.Removed)))

	for _, l := range listeners {
		l(subs, diff)
	}
}

func diffSnapshots(prev []models.Submission, prevIndex map[string]int, next []models.Submission, nextIndex map[string]int) Diff {
	var d Diff
	for _, s := range next {
		i, ok := prevIndex[s.ID]
		switch {
		case !ok:
			d.Added = append(d.Added, s.ID)
		case !reflect.DeepEqual(prev[i], s):
			d.Changed = append(d.Changed, s.ID)
		}
	}
	for _, s := range prev {
		if _, ok := nextIndex[s.ID]; !ok {
			d.Removed = append(d.Removed, s.ID)
		}
	}
	return d
}
