package models

import "time"

// RowStatus is the user-facing status of a draft row. It is derived from the
// submission collection on every change and never stored.
type RowStatus string

const (
	RowStatusIdle       RowStatus = "idle"
	RowStatusGenerating RowStatus = "generating"
	RowStatusCompleted  RowStatus = "completed"
	RowStatusError      RowStatus = "error"
)

// DraftRow is a pre-submission slot holding the two image groups.
type DraftRow struct {
	ID                int             `json:"id"`
	InspirationImages []UploadedImage `json:"inspirationImages"`
	AreaImages        []UploadedImage `json:"areaImages"`
	SubmittedAt       *time.Time      `json:"submittedAt,omitempty"`
}

func (r DraftRow) Images(kind ImageKind) []UploadedImage {
	if kind == ImageKindArea {
		return r.AreaImages
	}
	return r.InspirationImages
}

func (r DraftRow) Clone() DraftRow {
	out := r
	out.InspirationImages = CloneImages(r.InspirationImages)
	out.AreaImages = CloneImages(r.AreaImages)
	if r.SubmittedAt != nil {
		t := *r.SubmittedAt
		out.SubmittedAt = &t
	}
	return out
}
