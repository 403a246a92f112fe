// Package domain defines the outreach pipeline model: per-provider status
// records with an append-only change history.
package domain

import (
	"errors"
	"time"
)

// Pipeline statuses, in pipeline order.
const (
	StatusNotContacted      = "Not Contacted"
	StatusContacted         = "Contacted"
	StatusFollowUpScheduled = "Follow-up Scheduled"
	StatusMeetingScheduled  = "Meeting Scheduled"
	StatusProposalSent      = "Proposal Sent"
	StatusNegotiating       = "Negotiating"
	StatusWon               = "Won"
	StatusLost              = "Lost"
	StatusNotInterested     = "Not Interested"
)

// ValidStatuses lists every accepted status value.
var ValidStatuses = []string{
	StatusNotContacted,
	StatusContacted,
	StatusFollowUpScheduled,
	StatusMeetingScheduled,
	StatusProposalSent,
	StatusNegotiating,
	StatusWon,
	StatusLost,
	StatusNotInterested,
}

// ActiveStatuses are the statuses counted toward the working pipeline.
// Closed outcomes (won, lost, not interested) and untouched records are
// excluded.
var ActiveStatuses = []string{
	StatusContacted,
	StatusFollowUpScheduled,
	StatusMeetingScheduled,
	StatusProposalSent,
	StatusNegotiating,
}

var ErrRecordNotFound = errors.New("outreach record not found")

// IsValidStatus reports whether s is one of the accepted status values.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Record tracks outreach state for one provider.
type Record struct {
	ProviderID  string         `json:"providerId"`
	Status      string         `json:"status"`
	ContactDate string         `json:"contactDate"`
	Notes       string         `json:"notes"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	History     []HistoryEntry `json:"history"`
}

// HistoryEntry records one status transition. Entries are append-only.
type HistoryEntry struct {
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes"`
}

// Summary aggregates the pipeline by status.
type Summary struct {
	Total          int            `json:"total"`
	ActivePipeline int            `json:"activePipeline"`
	ByStatus       map[string]int `json:"byStatus"`
}
