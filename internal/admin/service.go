// Package admin implements the admin dashboard: triage of every submission,
// the status state machine with its progress simulation, and result upload.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"k8s.io/utils/clock"

	"genai-space-backend/internal/models"
	"genai-space-backend/internal/services"
)

const (
	DefaultProgressStep = 2 * time.Second

	startedProgress  = 25
	completeProgress = 100
	failedProgress   = 0
	bumpTimeout      = 10 * time.Second
)

// progressBumps are the values written after one and two steps in progress.
var progressBumps = []int{50, 75}

var (
	ErrNotFound          = errors.New("submission not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrNotInProgress     = errors.New("submission is not in progress")
)

var transitions = map[models.Status][]models.Status{
	models.StatusPending:    {models.StatusInProgress},
	models.StatusInProgress: {models.StatusCompleted, models.StatusFailed},
	models.StatusFailed:     {models.StatusPending},
	models.StatusCompleted:  {},
}

// CanTransition reports whether an admin may move a submission from one
// status to the other.
func CanTransition(from, to models.Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// SubmissionCache is the part of cache.Cache the admin dashboard uses.
type SubmissionCache interface {
	Submissions() []models.Submission
	Get(id string) (models.Submission, bool)
	Update(ctx context.Context, id string, u models.SubmissionUpdate) error
	Delete(ctx context.Context, id string) error
}

type Filter struct {
	Status   models.Status
	Priority models.Priority
	Query    string
}

func (f Filter) matches(s models.Submission) bool {
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	if f.Priority != "" && s.Priority != f.Priority {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.UserName), q) ||
		strings.Contains(strings.ToLower(s.UserEmail), q) ||
		strings.Contains(strings.ToLower(s.ID), q)
}

// progressRun is the set of pending progress bumps of one submission.
type progressRun struct {
	timers []clock.Timer
}

type Service struct {
	cache   SubmissionCache
	storage *services.StorageService
	clock   clock.WithDelayedExecution
	step    time.Duration
	logger  *zap.Logger

	mu   sync.Mutex
	runs map[string]*progressRun
}

// NewService creates the admin service. A zero step disables the progress
// simulation.
func NewService(c SubmissionCache, storage *services.StorageService, clk clock.WithDelayedExecution, step time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cache:   c,
		storage: storage,
		clock:   clk,
		step:    step,
		logger:  logger.Named("admin"),
		runs:    make(map[string]*progressRun),
	}
}

// List returns the submissions matching f in snapshot order.
func (s *Service) List(f Filter) []models.Submission {
	all := s.cache.Submissions()
	out := make([]models.Submission, 0, len(all))
	for _, sub := range all {
		if f.matches(sub) {
			out = append(out, sub)
		}
	}
	return out
}

func (s *Service) Stats() models.SubmissionStats {
	var st models.SubmissionStats
	for _, sub := range s.cache.Submissions() {
		st.Total++
		switch sub.Status {
		case models.StatusPending:
			st.Pending++
		case models.StatusInProgress:
			st.InProgress++
		case models.StatusCompleted:
			st.Completed++
		case models.StatusFailed:
			st.Failed++
		}
	}
	return st
}

func (s *Service) Get(id string) (models.Submission, error) {
	sub, ok := s.cache.Get(id)
	if !ok {
		return models.Submission{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sub, nil
}

// SetStatus moves a submission along the admin state machine and writes the
// fields that go with the new status.
func (s *Service) SetStatus(ctx context.Context, id string, to models.Status) error {
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.Get(id)
	if err != nil {
		return err
	}
	if !CanTransition(cur.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, cur.Status, to)
	}

	u := models.SubmissionUpdate{Status: &to}
	now := s.clock.Now()
	switch to {
	case models.StatusInProgress:
		p := startedProgress
		u.Progress = &p
		u.ProcessingStartedAt = &now
	case models.StatusCompleted:
		p := completeProgress
		u.Progress = &p
		u.CompletedAt = &now
	case models.StatusFailed:
		p := failedProgress
		u.Progress = &p
	case models.StatusPending:
		p := models.InitialProgress
		u.Progress = &p
	}

	// Bumps keep running when the write fails, the stored status is unchanged.
	if err := s.cache.Update(ctx, id, u); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	s.cancelRunLocked(id)
	if to == models.StatusInProgress {
		s.scheduleRunLocked(id)
	}

	s.logger.Info("submission status changed",
		zap.String("submission_id", id),
		zap.String("from", string(cur.Status)),
		zap.String("to", string(to)))
	return nil
}

func (s *Service) SetPriority(ctx context.Context, id string, p models.Priority) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, p)
	}
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.cache.Update(ctx, id, models.SubmissionUpdate{Priority: &p}); err != nil {
		return fmt.Errorf("failed to update priority: %w", err)
	}
	return nil
}

func (s *Service) SetNotes(ctx context.Context, id, notes string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.cache.Update(ctx, id, models.SubmissionUpdate{AdminNotes: &notes}); err != nil {
		return fmt.Errorf("failed to update notes: %w", err)
	}
	return nil
}

// UploadResult stores the generated image and completes the submission. It
// is only allowed while the submission is in progress. A failed upload
// leaves the submission untouched.
func (s *Service) UploadResult(ctx context.Context, id string, f services.File) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.Get(id)
	if err != nil {
		return "", err
	}
	if cur.Status != models.StatusInProgress {
		return "", fmt.Errorf("%w: %s is %s", ErrNotInProgress, id, cur.Status)
	}

	url, err := s.storage.UploadGeneratedImage(ctx, id, f)
	if err != nil {
		return "", err
	}

	status := models.StatusCompleted
	progress := completeProgress
	now := s.clock.Now()
	if err := s.cache.Update(ctx, id, models.SubmissionUpdate{
		Status:         &status,
		GeneratedImage: &url,
		CompletedAt:    &now,
		Progress:       &progress,
	}); err != nil {
		return "", fmt.Errorf("failed to record result: %w", err)
	}
	s.cancelRunLocked(id)

	s.logger.Info("result uploaded", zap.String("submission_id", id), zap.String("url", url))
	return url, nil
}

// Delete permanently removes a submission and stops its progress bumps.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}
	s.cancelRunLocked(id)
	s.logger.Info("submission deleted", zap.String("submission_id", id))
	return nil
}

// Close stops every pending progress bump.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.runs {
		s.cancelRunLocked(id)
	}
}

func (s *Service) cancelRunLocked(id string) {
	run, ok := s.runs[id]
	if !ok {
		return
	}
	for _, t := range run.timers {
		t.Stop()
	}
	delete(s.runs, id)
}

func (s *Service) scheduleRunLocked(id string) {
	if s.step <= 0 {
		return
	}
	run := &progressRun{}
	for i, value := range progressBumps {
		last := i == len(progressBumps)-1
		run.timers = append(run.timers, s.clock.AfterFunc(time.Duration(i+1)*s.step, func() {
			s.bump(id, run, value, last)
		}))
	}
	s.runs[id] = run
}

// bump runs on a timer. It must not read the clock: fake clocks fire timers
// while holding their own lock.
func (s *Service) bump(id string, run *progressRun, value int, last bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.runs[id] != run {
		return
	}
	if last {
		delete(s.runs, id)
	}
	cur, ok := s.cache.Get(id)
	if !ok || cur.Status != models.StatusInProgress || cur.Progress >= value {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), bumpTimeout)
	defer cancel()
	if err := s.cache.Update(ctx, id, models.SubmissionUpdate{Progress: &value}); err != nil {
		s.logger.Warn("progress bump failed", zap.String("submission_id", id), zap.Int("progress", value), zap.Error(err))
	}
}

// Assets lists the files of a submission under the names they are saved as
// by "download all".
func (s *Service) Assets(id string) (models.AssetsResponse, error) {
	sub, err := s.Get(id)
	if err != nil {
		return models.AssetsResponse{}, err
	}
	assets := make([]models.Asset, 0, len(sub.InspirationImages)+len(sub.AreaImages)+1)
	for i, img := range sub.InspirationImages {
		assets = append(assets, models.Asset{FileName: fmt.Sprintf("inspiration_%d_%s", i+1, assetName(img)), URL: img.URL})
	}
	for i, img := range sub.AreaImages {
		assets = append(assets, models.Asset{FileName: fmt.Sprintf("area_%d_%s", i+1, assetName(img)), URL: img.URL})
	}
	if sub.GeneratedImage != "" {
		assets = append(assets, models.Asset{FileName: fmt.Sprintf("generated_result_row_%d.jpg", sub.RowID), URL: sub.GeneratedImage})
	}
	return models.AssetsResponse{SubmissionID: sub.ID, Assets: assets}, nil
}

func assetName(img models.UploadedImage) string {
	if img.Name == "" {
		return "image.jpg"
	}
	return img.Name
}
