package models

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ImageKind names one of the two image groups carried by a draft row and a submission.
type ImageKind string

const (
	ImageKindInspiration ImageKind = "inspiration"
	ImageKindArea        ImageKind = "area"
)

func (k ImageKind) Valid() bool {
	return k == ImageKindInspiration || k == ImageKindArea
}

// InitialProgress is the progress a submission carries when it is created and
// when an admin resets a failed submission back to pending.
const InitialProgress = 10

type UploadedImage struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Submission is a user's request for a generated design, routed between the
// user dashboard and the admin dashboard.
type Submission struct {
	ID                  string          `json:"id"`
	UserID              string          `json:"userId"`
	UserName            string          `json:"userName"`
	UserEmail           string          `json:"userEmail,omitempty"`
	RowID               int             `json:"rowId"`
	InspirationImages   []UploadedImage `json:"inspirationImages"`
	AreaImages          []UploadedImage `json:"areaImages"`
	Status              Status          `json:"status"`
	Priority            Priority        `json:"priority"`
	Progress            int             `json:"progress"`
	AdminNotes          string          `json:"adminNotes,omitempty"`
	GeneratedImage      string          `json:"generatedImage,omitempty"`
	SubmittedAt         time.Time       `json:"submittedAt"`
	ProcessingStartedAt *time.Time      `json:"processingStartedAt,omitempty"`
	CompletedAt         *time.Time      `json:"completedAt,omitempty"`
}

// Clone returns a deep copy so callers can never alias the image slices of a
// cached snapshot.
func (s Submission) Clone() Submission {
	out := s
	out.InspirationImages = CloneImages(s.InspirationImages)
	out.AreaImages = CloneImages(s.AreaImages)
	if s.ProcessingStartedAt != nil {
		t := *s.ProcessingStartedAt
		out.ProcessingStartedAt = &t
	}
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		out.CompletedAt = &t
	}
	return out
}

func CloneImages(images []UploadedImage) []UploadedImage {
	out := make([]UploadedImage, len(images))
	copy(out, images)
	return out
}

// NewSubmission is a submission missing only its generated id.
type NewSubmission struct {
	UserID            string
	UserName          string
	UserEmail         string
	RowID             int
	InspirationImages []UploadedImage
	AreaImages        []UploadedImage
	Status            Status
	Priority          Priority
	Progress          int
	SubmittedAt       time.Time
}

// SubmissionUpdate carries the fields to merge into an existing submission.
// Nil fields are left untouched.
type SubmissionUpdate struct {
	Status              *Status
	Priority            *Priority
	Progress            *int
	AdminNotes          *string
	GeneratedImage      *string
	ProcessingStartedAt *time.Time
	CompletedAt         *time.Time
}

func (u SubmissionUpdate) Empty() bool {
	return u.Status == nil && u.Priority == nil && u.Progress == nil && u.AdminNotes == nil &&
		u.GeneratedImage == nil && u.ProcessingStartedAt == nil && u.CompletedAt == nil
}
