// Package submissions translates submission operations into document store
// calls and shapes stored documents into models.Submission.
package submissions

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"k8s.io/utils/clock"

	"genai-space-backend/internal/metrics"
	"genai-space-backend/internal/models"
	"genai-space-backend/internal/store"
)

// Collection is the document store collection holding submissions.
const Collection = "submissions"

const idSuffixLength = 9

type Repository struct {
	store  store.DocumentStore
	clock  clock.PassiveClock
	logger *zap.Logger
}

func NewRepository(s store.DocumentStore, clk clock.PassiveClock, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{
		store:  s,
		clock:  clk,
		logger: logger.Named("submissions"),
	}
}

// Create assigns an id to the submission and persists it. A rejected write is
// returned as *store.StoreWriteError and is not retried.
func (r *Repository) Create(ctx context.Context, in models.NewSubmission) (models.Submission, error) {
	sub := models.Submission{
		ID:                r.newID(),
		UserID:            in.UserID,
		UserName:          in.UserName,
		UserEmail:         in.UserEmail,
		RowID:             in.RowID,
		InspirationImages: models.CloneImages(in.InspirationImages),
		AreaImages:        models.CloneImages(in.AreaImages),
		Status:            in.Status,
		Priority:          in.Priority,
		Progress:          in.Progress,
		SubmittedAt:       in.SubmittedAt,
	}
	if sub.Status == "" {
		sub.Status = models.StatusPending
	}
	if sub.Priority == "" {
		sub.Priority = models.PriorityMedium
	}
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = r.clock.Now()
	}

	fields, err := encodeSubmission(sub)
	if err != nil {
		return models.Submission{}, r.writeFailed("create", sub.ID, err)
	}
	if err := r.store.Set(ctx, Collection, sub.ID, fields); err != nil {
		return models.Submission{}, r.writeFailed("create", sub.ID, err)
	}

	r.logger.Debug("submission created",
		zap.String("submission_id", sub.ID),
		zap.String("user_id", sub.UserID),
		zap.Int("row_id", sub.RowID))
	return sub, nil
}

// Update merges the non-nil fields of u into the stored submission. Nothing is
// mutated locally; the change becomes visible through Subscribe.
func (r *Repository) Update(ctx context.Context, id string, u models.SubmissionUpdate) error {
	if u.Empty() {
		return nil
	}
	if err := r.store.Merge(ctx, Collection, id, encodeUpdate(u)); err != nil {
		return r.writeFailed("update", id, err)
	}
	return nil
}

// Delete permanently removes the submission. Deleting an unknown id succeeds.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, Collection, id); err != nil {
		return r.writeFailed("delete", id, err)
	}
	return nil
}

// Subscribe calls onChange with the full current set of submissions every time
// the collection changes. The returned function must be called on teardown.
// Documents that cannot be decoded are skipped and reported to onError.
func (r *Repository) Subscribe(ctx context.Context, onChange func([]models.Submission), onError func(error)) (func(), error) {
	if onError == nil {
		onError = func(error) {}
	}

	handle := func(docs []store.Document) {
		subs := make([]models.Submission, 0, len(docs))
		for _, d := range docs {
			sub, err := decodeSubmission(d)
			if err != nil {
				r.logger.Warn("skipping malformed submission", zap.String("submission_id", d.ID), zap.Error(err))
				onError(&store.StoreReadError{Collection: Collection, Err: err})
				continue
			}
			subs = append(subs, sub)
		}
		onChange(subs)
	}
	handleErr := func(err error) {
		var readErr *store.StoreReadError
		if !errors.As(err, &readErr) {
			err = &store.StoreReadError{Collection: Collection, Err: err}
		}
		onError(err)
	}

	cancel, err := r.store.Watch(ctx, Collection, handle, handleErr)
	if err != nil {
		return nil, &store.StoreReadError{Collection: Collection, Err: err}
	}
	return cancel, nil
}

// writeFailed records one rejected write per operation, whichever caller
// issued it.
func (r *Repository) writeFailed(op, id string, err error) error {
	r.logger.Warn(op+" rejected", zap.String("submission_id", id), zap.Error(err))
	metrics.IncreaseStoreWriteErrorsMetric(op)
	return &store.StoreWriteError{Op: op, ID: id, Err: err}
}

// newID returns a creation-time prefix plus a random suffix, unique enough for
// non-adversarial use and sortable by creation time.
func (r *Repository) newID() string {
	return fmt.Sprintf("%d-%s", r.clock.Now().UnixMilli(), randomSuffix())
}

func randomSuffix() string {
	u := uuid.New()
	s := strconv.FormatUint(binary.BigEndian.Uint64(u[8:]), 36)
	if len(s) < idSuffixLength {
		s = strings.Repeat("0", idSuffixLength-len(s)) + s
	}
	return s[len(s)-idSuffixLength:]
}
