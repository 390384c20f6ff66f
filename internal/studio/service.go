// Package studio implements the user dashboard: draft rows, uploads, row
// status projection and the token-gated promotion of a row into a submission.
package studio

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"k8s.io/utils/clock"

	"genai-space-backend/internal/metrics"
	"genai-space-backend/internal/models"
	"genai-space-backend/internal/services"
	"genai-space-backend/internal/tokens"
)

var (
	ErrIncompleteRow = errors.New("row needs at least one inspiration and one area image")
	ErrNoFiles       = errors.New("no files to upload")
)

// SubmissionCreator is the write side of the submission cache.
type SubmissionCreator interface {
	Create(ctx context.Context, in models.NewSubmission) (models.Submission, error)
}

// User identifies the caller as carried by the auth token.
type User struct {
	ID    string
	Name  string
	Email string
}

type Service struct {
	drafts    *DraftBook
	storage   *services.StorageService
	creator   SubmissionCreator
	ledger    *tokens.Ledger
	projector *Projector
	clock     clock.PassiveClock
	logger    *zap.Logger
}

func NewService(
	drafts *DraftBook,
	storage *services.StorageService,
	creator SubmissionCreator,
	ledger *tokens.Ledger,
	projector *Projector,
	clk clock.PassiveClock,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		drafts:    drafts,
		storage:   storage,
		creator:   creator,
		ledger:    ledger,
		projector: projector,
		clock:     clk,
		logger:    logger.Named("studio"),
	}
}

func (s *Service) Projector() *Projector {
	return s.projector
}

// UploadImages writes all files to the blob store, then appends the images to
// the row in one step. If any write fails nothing is appended.
func (s *Service) UploadImages(ctx context.Context, userID string, rowID int, kind models.ImageKind, files []services.File) ([]models.UploadedImage, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if _, err := s.drafts.Row(ctx, userID, rowID); err != nil {
		return nil, err
	}

	images, err := s.storage.UploadDraftImages(ctx, userID, rowID, kind, files)
	if err != nil {
		return nil, err
	}
	if _, err := s.drafts.AddImages(ctx, userID, rowID, kind, images); err != nil {
		return nil, err
	}
	return images, nil
}

func (s *Service) RemoveImage(ctx context.Context, userID string, rowID int, kind models.ImageKind, imageID string) (models.DraftRow, error) {
	return s.drafts.RemoveImage(ctx, userID, rowID, kind, imageID)
}

func TokenView(b tokens.Balance) models.TokenBalanceResponse {
	return models.TokenBalanceResponse{
		Remaining: b.Remaining(),
		Total:     b.Total,
		Reserved:  b.Reserved,
	}
}

// Dashboard renders every draft row of the user with its projected status.
func (s *Service) Dashboard(ctx context.Context, userID string) models.DashboardResponse {
	balance := s.ledger.Balance(userID)
	rows := s.drafts.Rows(ctx, userID)

	views := make([]models.RowView, len(rows))
	for i, r := range rows {
		linked := s.projector.Linked(userID, r.ID)
		views[i] = models.RowView{
			Row:        r,
			Status:     ProjectRowStatus(linked),
			Submission: linked,
			Cost:       Cost(r),
			CanSubmit:  CanSubmit(r, balance.Remaining()),
		}
	}
	return models.DashboardResponse{Rows: views, Tokens: TokenView(balance)}
}

// Submit promotes a draft row into a new submission. The cost is reserved
// before the store write and only spent once the write succeeds.
func (s *Service) Submit(ctx context.Context, user User, rowID int) (models.Submission, tokens.Balance, error) {
	row, err := s.drafts.Row(ctx, user.ID, rowID)
	if err != nil {
		return models.Submission{}, tokens.Balance{}, err
	}
	if len(row.InspirationImages) == 0 || len(row.AreaImages) == 0 {
		return models.Submission{}, tokens.Balance{}, ErrIncompleteRow
	}

	cost := Cost(row)
	reservation, err := s.ledger.Reserve(user.ID, cost)
	if err != nil {
		if errors.Is(err, tokens.ErrInsufficientTokens) {
			metrics.IncreaseTokenRejectionsMetric()
		}
		return models.Submission{}, s.ledger.Balance(user.ID), err
	}

	now := s.clock.Now()
	sub, err := s.creator.Create(ctx, models.NewSubmission{
		UserID:            user.ID,
		UserName:          user.Name,
		UserEmail:         user.Email,
		RowID:             rowID,
		InspirationImages: row.InspirationImages,
		AreaImages:        row.AreaImages,
		Status:            models.StatusPending,
		Priority:          models.PriorityMedium,
		Progress:          models.InitialProgress,
		SubmittedAt:       now,
	})
	if err != nil {
		reservation.Release()
		return models.Submission{}, s.ledger.Balance(user.ID), fmt.Errorf("failed to create submission: %w", err)
	}
	reservation.Commit()

	if err := s.drafts.MarkSubmitted(ctx, user.ID, rowID, now); err != nil {
		s.logger.Warn("failed to mark row submitted", zap.String("user_id", user.ID), zap.Int("row_id", rowID), zap.Error(err))
	}
	s.logger.Info("row submitted",
		zap.String("user_id", user.ID),
		zap.Int("row_id", rowID),
		zap.String("submission_id", sub.ID),
		zap.Int("cost", cost))
	return sub, s.ledger.Balance(user.ID), nil
}
