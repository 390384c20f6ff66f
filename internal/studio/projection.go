package studio

import (
	"sync"

	"genai-space-backend/internal/cache"
	"genai-space-backend/internal/models"
)

// ProjectRowStatus maps the submission linked to a row onto the status the
// row shows. A row without a submission is idle.
func ProjectRowStatus(sub *models.Submission) models.RowStatus {
	if sub == nil {
		return models.RowStatusIdle
	}
	switch sub.Status {
	case models.StatusPending, models.StatusInProgress:
		return models.RowStatusGenerating
	case models.StatusCompleted:
		return models.RowStatusCompleted
	case models.StatusFailed:
		return models.RowStatusError
	}
	return models.RowStatusIdle
}

type rowKey struct {
	userID string
	rowID  int
}

// newer reports whether a supersedes b as the submission linked to a row.
func newer(a, b models.Submission) bool {
	if !a.SubmittedAt.Equal(b.SubmittedAt) {
		return a.SubmittedAt.After(b.SubmittedAt)
	}
	return a.ID > b.ID
}

// Projector tracks the submission linked to every (user, row) pair. It is fed
// by cache snapshots and recomputes only the pairs a diff touches.
type Projector struct {
	mu       sync.RWMutex
	primed   bool
	linked   map[rowKey]models.Submission
	keyOf    map[string]rowKey
	watchers map[string]map[int]chan struct{}
	nextID   int
}

func NewProjector() *Projector {
	return &Projector{
		linked:   make(map[rowKey]models.Submission),
		keyOf:    make(map[string]rowKey),
		watchers: make(map[string]map[int]chan struct{}),
	}
}

// Apply is a cache.ListenerFunc.
func (p *Projector) Apply(snapshot []models.Submission, diff cache.Diff) {
	p.mu.Lock()
	var affected map[string]bool
	if !p.primed {
		affected = p.rebuildLocked(snapshot)
		p.primed = true
	} else {
		affected = p.updateLocked(snapshot, diff)
	}
	var notify []chan struct{}
	for userID := range affected {
		for _, ch := range p.watchers[userID] {
			notify = append(notify, ch)
		}
	}
	p.mu.Unlock()

	for _, ch := range notify {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (p *Projector) rebuildLocked(snapshot []models.Submission) map[string]bool {
	affected := make(map[string]bool)
	for k := range p.linked {
		affected[k.userID] = true
	}
	p.linked = make(map[rowKey]models.Submission)
	p.keyOf = make(map[string]rowKey, len(snapshot))
	for _, s := range snapshot {
		k := rowKey{userID: s.UserID, rowID: s.RowID}
		p.keyOf[s.ID] = k
		affected[s.UserID] = true
		if cur, ok := p.linked[k]; !ok || newer(s, cur) {
			p.linked[k] = s.Clone()
		}
	}
	return affected
}

func (p *Projector) updateLocked(snapshot []models.Submission, diff cache.Diff) map[string]bool {
	if diff.Empty() {
		return nil
	}
	keys := make(map[rowKey]bool)
	for _, ids := range [][]string{diff.Changed, diff.Removed} {
		for _, id := range ids {
			if k, ok := p.keyOf[id]; ok {
				keys[k] = true
			}
		}
	}
	for _, id := range diff.Removed {
		delete(p.keyOf, id)
	}
	touched := make(map[string]bool, len(diff.Added)+len(diff.Changed))
	for _, id := range diff.Added {
		touched[id] = true
	}
	for _, id := range diff.Changed {
		touched[id] = true
	}
	for _, s := range snapshot {
		if touched[s.ID] {
			k := rowKey{userID: s.UserID, rowID: s.RowID}
			p.keyOf[s.ID] = k
			keys[k] = true
		}
	}

	for k := range keys {
		delete(p.linked, k)
	}
	for _, s := range snapshot {
		k := rowKey{userID: s.UserID, rowID: s.RowID}
		if !keys[k] {
			continue
		}
		if cur, ok := p.linked[k]; !ok || newer(s, cur) {
			p.linked[k] = s.Clone()
		}
	}

	affected := make(map[string]bool, len(keys))
	for k := range keys {
		affected[k.userID] = true
	}
	return affected
}

// Linked returns the submission currently linked to the row, or nil.
func (p *Projector) Linked(userID string, rowID int) *models.Submission {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.linked[rowKey{userID: userID, rowID: rowID}]
	if !ok {
		return nil
	}
	c := s.Clone()
	return &c
}

func (p *Projector) Status(userID string, rowID int) models.RowStatus {
	return ProjectRowStatus(p.Linked(userID, rowID))
}

// Watch returns a channel that receives a signal whenever a row of userID
// changes projection. Signals coalesce; the returned function stops them.
func (p *Projector) Watch(userID string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	p.mu.Lock()
	if p.watchers[userID] == nil {
		p.watchers[userID] = make(map[int]chan struct{})
	}
	id := p.nextID
	p.nextID++
	p.watchers[userID][id] = ch
	p.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.watchers[userID], id)
			if len(p.watchers[userID]) == 0 {
				delete(p.watchers, userID)
			}
			p.mu.Unlock()
		})
	}
}
