// Package transport defines request DTOs for the outreach HTTP API.
package transport

// UpdateStatusRequest moves a record to a new pipeline status.
type UpdateStatusRequest struct {
	Status      string `json:"status" validate:"required"`
	Notes       string `json:"notes"`
	ContactDate string `json:"contactDate" validate:"omitempty,datetime=2006-01-02"`
}

// AddNoteRequest appends a note to an existing record.
type AddNoteRequest struct {
	Note string `json:"note" validate:"required,min=1"`
}
