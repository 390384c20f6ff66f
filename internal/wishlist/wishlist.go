// Package wishlist keeps each user's saved catalog items.
package wishlist

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"genai-space-backend/internal/localstore"
)

const namespace = "wishlist"

var ErrInvalidItem = errors.New("item id is required")

// Service holds an ordered set of item ids per user. The in-memory copy is
// authoritative for the process; persistence is best-effort.
type Service struct {
	kv     localstore.KV
	logger *zap.Logger

	mu    sync.Mutex
	items map[string][]string
}

func NewService(kv localstore.KV, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		kv:     kv,
		logger: logger.Named("wishlist"),
		items:  make(map[string][]string),
	}
}

func (s *Service) List(ctx context.Context, userID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.loadLocked(ctx, userID))
}

// Add appends itemID unless it is already present.
func (s *Service) Add(ctx context.Context, userID, itemID string) ([]string, error) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return nil, ErrInvalidItem
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.loadLocked(ctx, userID)
	if !slices.Contains(items, itemID) {
		items = append(items, itemID)
		s.storeLocked(ctx, userID, items)
	}
	return slices.Clone(items), nil
}

// Remove drops itemID. Removing an absent item is a no-op.
func (s *Service) Remove(ctx context.Context, userID, itemID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.loadLocked(ctx, userID)
	if i := slices.Index(items, itemID); i >= 0 {
		items = slices.Delete(slices.Clone(items), i, i+1)
		s.storeLocked(ctx, userID, items)
	}
	return slices.Clone(items)
}

func (s *Service) loadLocked(ctx context.Context, userID string) []string {
	if items, ok := s.items[userID]; ok {
		return items
	}
	items := []string{}
	if s.kv != nil {
		var stored []string
		found, err := s.kv.Load(ctx, namespace, userID, &stored)
		switch {
		case err != nil:
			s.logger.Warn("discarding stored wishlist", zap.String("user_id", userID), zap.Error(err))
		case found && stored != nil:
			items = stored
		}
	}
	s.items[userID] = items
	return items
}

func (s *Service) storeLocked(ctx context.Context, userID string, items []string) {
	s.items[userID] = items
	if s.kv == nil {
		return
	}
	if err := s.kv.Save(ctx, namespace, userID, items); err != nil {
		s.logger.Warn("failed to persist wishlist", zap.String("user_id", userID), zap.Error(err))
	}
}
