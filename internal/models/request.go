package models

type StatusUpdateRequest struct {
	Status Status `json:"status" binding:"required,oneof=pending in_progress completed failed" example:"in_progress"`
}

type PriorityUpdateRequest struct {
	Priority Priority `json:"priority" binding:"required,oneof=low medium high" example:"high"`
}

type NotesUpdateRequest struct {
	// Notes may be empty to clear existing admin notes.
	Notes string `json:"notes"`
}

type PurchaseTokensRequest struct {
	// Tokens must match one of the packages returned by GET /tokens/packages.
	Tokens int `json:"tokens" binding:"required,gt=0" example:"100"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
