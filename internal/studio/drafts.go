package studio

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"genai-space-backend/internal/localstore"
	"genai-space-backend/internal/models"
)

const (
	DefaultDraftRows = 8
	draftsNamespace  = "drafts"
)

var (
	ErrUnknownRow    = errors.New("unknown draft row")
	ErrImageNotFound = errors.New("image not found in draft row")
	ErrInvalidKind   = errors.New("image kind must be inspiration or area")
)

// DraftBook holds every user's draft rows. Rows live in memory for the life
// of the process and are saved best-effort to the local key/value store.
type DraftBook struct {
	rows   int
	kv     localstore.KV
	logger *zap.Logger

	mu    sync.Mutex
	books map[string][]models.DraftRow
}

func NewDraftBook(rows int, kv localstore.KV, logger *zap.Logger) *DraftBook {
	if rows <= 0 {
		rows = DefaultDraftRows
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftBook{
		rows:   rows,
		kv:     kv,
		logger: logger.Named("drafts"),
		books:  make(map[string][]models.DraftRow),
	}
}

func (b *DraftBook) defaults() []models.DraftRow {
	rows := make([]models.DraftRow, b.rows)
	for i := range rows {
		rows[i] = models.DraftRow{
			ID:                i + 1,
			InspirationImages: []models.UploadedImage{},
			AreaImages:        []models.UploadedImage{},
		}
	}
	return rows
}

// normalize fits stored rows onto the configured row ids, dropping rows
// outside the range and filling gaps with empty rows.
func (b *DraftBook) normalize(stored []models.DraftRow) []models.DraftRow {
	rows := b.defaults()
	for _, r := range stored {
		if r.ID < 1 || r.ID > b.rows {
			continue
		}
		r = r.Clone()
		if r.InspirationImages == nil {
			r.InspirationImages = []models.UploadedImage{}
		}
		if r.AreaImages == nil {
			r.AreaImages = []models.UploadedImage{}
		}
		rows[r.ID-1] = r
	}
	return rows
}

func (b *DraftBook) loadLocked(ctx context.Context, userID string) []models.DraftRow {
	if rows, ok := b.books[userID]; ok {
		return rows
	}
	rows := b.defaults()
	if b.kv != nil {
		var stored []models.DraftRow
		found, err := b.kv.Load(ctx, draftsNamespace, userID, &stored)
		switch {
		case err != nil:
			b.logger.Warn("discarding stored drafts", zap.String("user_id", userID), zap.Error(err))
		case found:
			rows = b.normalize(stored)
		}
	}
	b.books[userID] = rows
	return rows
}

func (b *DraftBook) saveLocked(ctx context.Context, userID string) {
	if b.kv == nil {
		return
	}
	if err := b.kv.Save(ctx, draftsNamespace, userID, b.books[userID]); err != nil {
		b.logger.Warn("failed to persist drafts", zap.String("user_id", userID), zap.Error(err))
	}
}

func (b *DraftBook) Rows(ctx context.Context, userID string) []models.DraftRow {
	b.mu.Lock()
	defer b.mu.Unlock()
	rows := b.loadLocked(ctx, userID)
	out := make([]models.DraftRow, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}

func (b *DraftBook) Row(ctx context.Context, userID string, rowID int) (models.DraftRow, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, err := b.rowLocked(ctx, userID, rowID)
	if err != nil {
		return models.DraftRow{}, err
	}
	return r.Clone(), nil
}

func (b *DraftBook) rowLocked(ctx context.Context, userID string, rowID int) (*models.DraftRow, error) {
	if rowID < 1 || rowID > b.rows {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRow, rowID)
	}
	return &b.loadLocked(ctx, userID)[rowID-1], nil
}

// AddImages appends images to the kind group of the row, preserving order.
func (b *DraftBook) AddImages(ctx context.Context, userID string, rowID int, kind models.ImageKind, images []models.UploadedImage) (models.DraftRow, error) {
	if !kind.Valid() {
		return models.DraftRow{}, ErrInvalidKind
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	r, err := b.rowLocked(ctx, userID, rowID)
	if err != nil {
		return models.DraftRow{}, err
	}
	if kind == models.ImageKindArea {
		r.AreaImages = append(r.AreaImages, images...)
	} else {
		r.InspirationImages = append(r.InspirationImages, images...)
	}
	b.saveLocked(ctx, userID)
	return r.Clone(), nil
}

func (b *DraftBook) RemoveImage(ctx context.Context, userID string, rowID int, kind models.ImageKind, imageID string) (models.DraftRow, error) {
	if !kind.Valid() {
		return models.DraftRow{}, ErrInvalidKind
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	r, err := b.rowLocked(ctx, userID, rowID)
	if err != nil {
		return models.DraftRow{}, err
	}
	group := &r.InspirationImages
	if kind == models.ImageKindArea {
		group = &r.AreaImages
	}
	i := slices.IndexFunc(*group, func(img models.UploadedImage) bool { return img.ID == imageID })
	if i < 0 {
		return models.DraftRow{}, fmt.Errorf("%w: %s", ErrImageNotFound, imageID)
	}
	*group = slices.Delete(*group, i, i+1)
	b.saveLocked(ctx, userID)
	return r.Clone(), nil
}

// MarkSubmitted records when the row was last promoted. The images stay.
func (b *DraftBook) MarkSubmitted(ctx context.Context, userID string, rowID int, at time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, err := b.rowLocked(ctx, userID, rowID)
	if err != nil {
		return err
	}
	r.SubmittedAt = &at
	b.saveLocked(ctx, userID)
	return nil
}
