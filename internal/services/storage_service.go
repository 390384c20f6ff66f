package services

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"k8s.io/utils/clock"

	"genai-space-backend/internal/metrics"
	"genai-space-backend/internal/models"
	"genai-space-backend/internal/store"
)

// File is one uploaded file as received from a multipart form.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// StorageService writes user and admin uploads to the blob store using the
// shared path layout.
type StorageService struct {
	blobs  store.BlobStore
	clock  clock.PassiveClock
	logger *zap.Logger
}

func NewStorageService(blobs store.BlobStore, clk clock.PassiveClock, logger *zap.Logger) *StorageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StorageService{
		blobs:  blobs,
		clock:  clk,
		logger: logger.Named("storage"),
	}
}

// DraftImagePath is users/{userId}/submissions/{rowId}/{kind}/{imageId}-{fileName}.
// The image id keeps a re-upload of the same file name from replacing a blob
// an earlier image still points to.
func DraftImagePath(userID string, rowID int, kind models.ImageKind, imageID, fileName string) string {
	return fmt.Sprintf("users/%s/submissions/%d/%s/%s-%s", userID, rowID, kind, imageID, cleanName(fileName))
}

// GeneratedImagePath is generated/{submissionId}/{fileName}.
func GeneratedImagePath(submissionID, fileName string) string {
	return fmt.Sprintf("generated/%s/%s", submissionID, cleanName(fileName))
}

func cleanName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "upload"
	}
	return name
}

func contentType(f File) string {
	if f.ContentType != "" {
		return f.ContentType
	}
	return http.DetectContentType(f.Data)
}

// UploadDraftImages writes every file and returns the resulting images in
// input order. When any write fails the first failure is returned as
// *store.UploadError and no images are returned; blobs already written are
// left in place.
func (s *StorageService) UploadDraftImages(ctx context.Context, userID string, rowID int, kind models.ImageKind, files []File) ([]models.UploadedImage, error) {
	images := make([]models.UploadedImage, 0, len(files))
	for _, f := range files {
		id := uuid.NewString()
		p := DraftImagePath(userID, rowID, kind, id, f.Name)
		url, err := s.blobs.Write(ctx, p, f.Data, contentType(f))
		if err != nil {
			s.logger.Warn("draft image upload failed",
				zap.String("user_id", userID), zap.String("path", p), zap.Error(err))
			metrics.IncreaseUploadsMetric("draft", "failed")
			return nil, &store.UploadError{Path: p, Err: err}
		}
		images = append(images, models.UploadedImage{
			ID:         id,
			Name:       f.Name,
			Size:       int64(len(f.Data)),
			URL:        url,
			UploadedAt: s.clock.Now(),
		})
	}
	metrics.IncreaseUploadsMetric("draft", "success")
	s.logger.Debug("draft images uploaded",
		zap.String("user_id", userID), zap.Int("row_id", rowID),
		zap.String("kind", string(kind)), zap.Int("count", len(images)))
	return images, nil
}

// UploadGeneratedImage writes an admin result image and returns its URL.
func (s *StorageService) UploadGeneratedImage(ctx context.Context, submissionID string, f File) (string, error) {
	p := GeneratedImagePath(submissionID, f.Name)
	url, err := s.blobs.Write(ctx, p, f.Data, contentType(f))
	if err != nil {
		s.logger.Warn("result upload failed", zap.String("submission_id", submissionID), zap.Error(err))
		metrics.IncreaseUploadsMetric("result", "failed")
		return "", &store.UploadError{Path: p, Err: err}
	}
	metrics.IncreaseUploadsMetric("result", "success")
	return url, nil
}
