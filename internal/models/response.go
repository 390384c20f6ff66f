package models

type HealthResponse struct {
	Status string `json:"status"`
	// CacheReady reports whether the first submission snapshot has arrived.
	CacheReady bool `json:"cache_ready"`
}

type TokenBalanceResponse struct {
	Remaining int `json:"remaining"`
	Total     int `json:"total"`
	Reserved  int `json:"reserved,omitempty"`
}

type TokenPackage struct {
	Tokens int    `json:"tokens"`
	Price  string `json:"price"`
}

type TokenPackagesResponse struct {
	Packages []TokenPackage `json:"packages"`
}

// RowView is one draft row as the user dashboard renders it.
type RowView struct {
	Row        DraftRow    `json:"row"`
	Status     RowStatus   `json:"status"`
	Submission *Submission `json:"submission,omitempty"`
	Cost       int         `json:"cost"`
	CanSubmit  bool        `json:"can_submit"`
}

type DashboardResponse struct {
	Rows   []RowView            `json:"rows"`
	Tokens TokenBalanceResponse `json:"tokens"`
}

type UploadResponse struct {
	RowID  int             `json:"row_id"`
	Kind   ImageKind       `json:"kind"`
	Images []UploadedImage `json:"images"`
}

type SubmitResponse struct {
	Submission Submission           `json:"submission"`
	Tokens     TokenBalanceResponse `json:"tokens"`
}

type SubmissionListResponse struct {
	Submissions []Submission `json:"submissions"`
	Total       int          `json:"total"`
}

type SubmissionStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
}

// Asset is one downloadable file of a submission with the name it should be
// saved under.
type Asset struct {
	FileName string `json:"file_name"`
	URL      string `json:"url"`
}

type AssetsResponse struct {
	SubmissionID string  `json:"submission_id"`
	Assets       []Asset `json:"assets"`
}

type WishlistResponse struct {
	Items []string `json:"items"`
}
