package submissions

import (
	"encoding/json"
	"fmt"
	"time"

	"genai-space-backend/internal/models"
	"genai-space-backend/internal/store"
)

// Wire field names, shared by full documents and partial updates.
const (
	fieldStatus              = "status"
	fieldPriority            = "priority"
	fieldProgress            = "progress"
	fieldAdminNotes          = "adminNotes"
	fieldGeneratedImage      = "generatedImage"
	fieldProcessingStartedAt = "processingStartedAt"
	fieldCompletedAt         = "completedAt"
)

type imageDocument struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	URL        string `json:"url"`
	UploadedAt string `json:"uploadedAt"`
}

// document is the stored shape of a submission. Timestamps travel as RFC3339
// strings, the way the browser clients of the same collection write them.
type document struct {
	UserID              string          `json:"userId"`
	UserName            string          `json:"userName"`
	UserEmail           string          `json:"userEmail,omitempty"`
	RowID               int             `json:"rowId"`
	InspirationImages   []imageDocument `json:"inspirationImages"`
	AreaImages          []imageDocument `json:"areaImages"`
	Status              string          `json:"status"`
	Priority            string          `json:"priority"`
	Progress            int             `json:"progress"`
	AdminNotes          string          `json:"adminNotes,omitempty"`
	GeneratedImage      string          `json:"generatedImage,omitempty"`
	SubmittedAt         string          `json:"submittedAt"`
	ProcessingStartedAt string          `json:"processingStartedAt,omitempty"`
	CompletedAt         string          `json:"completedAt,omitempty"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func parseOptionalTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseTime(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toImageDocuments(images []models.UploadedImage) []imageDocument {
	out := make([]imageDocument, len(images))
	for i, img := range images {
		out[i] = imageDocument{
			ID:         img.ID,
			Name:       img.Name,
			Size:       img.Size,
			URL:        img.URL,
			UploadedAt: formatTime(img.UploadedAt),
		}
	}
	return out
}

func fromImageDocuments(docs []imageDocument) ([]models.UploadedImage, error) {
	out := make([]models.UploadedImage, len(docs))
	for i, d := range docs {
		uploadedAt, err := parseTime(d.UploadedAt)
		if err != nil {
			return nil, fmt.Errorf("image %s uploadedAt: %w", d.ID, err)
		}
		out[i] = models.UploadedImage{
			ID:         d.ID,
			Name:       d.Name,
			Size:       d.Size,
			URL:        d.URL,
			UploadedAt: uploadedAt,
		}
	}
	return out, nil
}

func encodeSubmission(s models.Submission) (store.Fields, error) {
	doc := document{
		UserID:            s.UserID,
		UserName:          s.UserName,
		UserEmail:         s.UserEmail,
		RowID:             s.RowID,
		InspirationImages: toImageDocuments(s.InspirationImages),
		AreaImages:        toImageDocuments(s.AreaImages),
		Status:            string(s.Status),
		Priority:          string(s.Priority),
		Progress:          s.Progress,
		AdminNotes:        s.AdminNotes,
		GeneratedImage:    s.GeneratedImage,
		SubmittedAt:       formatTime(s.SubmittedAt),
	}
	if s.ProcessingStartedAt != nil {
		doc.ProcessingStartedAt = formatTime(*s.ProcessingStartedAt)
	}
	if s.CompletedAt != nil {
		doc.CompletedAt = formatTime(*s.CompletedAt)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode submission: %w", err)
	}
	fields := store.Fields{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("encode submission: %w", err)
	}
	return fields, nil
}

func decodeSubmission(d store.Document) (models.Submission, error) {
	raw, err := json.Marshal(d.Fields)
	if err != nil {
		return models.Submission{}, fmt.Errorf("decode submission %s: %w", d.ID, err)
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return models.Submission{}, fmt.Errorf("decode submission %s: %w", d.ID, err)
	}

	sub := models.Submission{
		ID:             d.ID,
		UserID:         doc.UserID,
		UserName:       doc.UserName,
		UserEmail:      doc.UserEmail,
		RowID:          doc.RowID,
		Status:         models.Status(doc.Status),
		Priority:       models.Priority(doc.Priority),
		Progress:       doc.Progress,
		AdminNotes:     doc.AdminNotes,
		GeneratedImage: doc.GeneratedImage,
	}
	if !sub.Status.Valid() {
		return models.Submission{}, fmt.Errorf("decode submission %s: unknown status %q", d.ID, doc.Status)
	}
	if sub.InspirationImages, err = fromImageDocuments(doc.InspirationImages); err != nil {
		return models.Submission{}, fmt.Errorf("decode submission %s: %w", d.ID, err)
	}
	if sub.AreaImages, err = fromImageDocuments(doc.AreaImages); err != nil {
		return models.Submission{}, fmt.Errorf("decode submission %s: %w", d.ID, err)
	}
	if sub.SubmittedAt, err = parseTime(doc.SubmittedAt); err != nil {
		return models.Submission{}, fmt.Errorf("decode submission %s submittedAt: %w", d.ID, err)
	}
	if sub.ProcessingStartedAt, err = parseOptionalTime(doc.ProcessingStartedAt); err != nil {
		return models.Submission{}, fmt.Errorf("decode submission %s processingStartedAt: %w", d.ID, err)
	}
	if sub.CompletedAt, err = parseOptionalTime(doc.CompletedAt); err != nil {
		return models.Submission{}, fmt.Errorf("decode submission %s completedAt: %w", d.ID, err)
	}
	return sub, nil
}

func encodeUpdate(u models.SubmissionUpdate) store.Fields {
	fields := store.Fields{}
	if u.Status != nil {
		fields[fieldStatus] = string(*u.Status)
	}
	if u.Priority != nil {
		fields[fieldPriority] = string(*u.Priority)
	}
	if u.Progress != nil {
		fields[fieldProgress] = *u.Progress
	}
	if u.AdminNotes != nil {
		fields[fieldAdminNotes] = *u.AdminNotes
	}
	if u.GeneratedImage != nil {
		fields[fieldGeneratedImage] = *u.GeneratedImage
	}
	if u.ProcessingStartedAt != nil {
		fields[fieldProcessingStartedAt] = formatTime(*u.ProcessingStartedAt)
	}
	if u.CompletedAt != nil {
		fields[fieldCompletedAt] = formatTime(*u.CompletedAt)
	}
	return fields
}
