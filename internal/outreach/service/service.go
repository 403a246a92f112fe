// Package service implements the outreach pipeline rules: status transitions
// with append-only history, timestamped notes, and pipeline summaries.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"velden_leads_backend/internal/outreach/domain"
	"velden_leads_backend/internal/outreach/repository"
	"velden_leads_backend/platform/apperr"
	"velden_leads_backend/platform/logger"
)

// Service coordinates outreach tracking.
type Service struct {
	repo *repository.Repository
	log  *logger.Logger
	now  func() time.Time
}

// New creates the outreach service.
func New(repo *repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log.WithComponent("outreach"), now: time.Now}
}

// UpdateStatus sets the status for a provider, creating the record on first
// touch. A contactDate of "" defaults to today. On an existing record the
// previous status is appended to history before the overwrite; notes replace
// the stored notes only when non-empty.
func (s *Service) UpdateStatus(ctx context.Context, providerID, status, notes, contactDate string) (domain.Record, error) {
	if !domain.IsValidStatus(status) {
		return domain.Record{}, apperr.Validation(fmt.Sprintf("invalid status %q", status))
	}

	now := s.now()
	if contactDate == "" {
		contactDate = now.Format("2006-01-02")
	}

	existing, err := s.repo.Get(ctx, providerID)
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		rec := domain.Record{
			ProviderID:  providerID,
			Status:      status,
			ContactDate: contactDate,
			Notes:       notes,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.repo.Upsert(ctx, rec, nil); err != nil {
			return domain.Record{}, apperr.Wrap(apperr.KindInternal, "save outreach record", err)
		}
		s.log.Info("outreach record created", "provider", providerID, "status", status)
		return rec, nil
	case err != nil:
		return domain.Record{}, apperr.Wrap(apperr.KindInternal, "load outreach record", err)
	}

	transition := domain.HistoryEntry{
		OldStatus: existing.Status,
		NewStatus: status,
		Date:      now,
		Notes:     notes,
	}
	updated := existing
	updated.Status = status
	updated.ContactDate = contactDate
	updated.UpdatedAt = now
	if notes != "" {
		updated.Notes = notes
	}

	if err := s.repo.Upsert(ctx, updated, &transition); err != nil {
		return domain.Record{}, apperr.Wrap(apperr.KindInternal, "save outreach record", err)
	}
	s.log.Info("outreach status updated",
		"provider", providerID,
		"from", existing.Status,
		"to", status,
	)
	updated.History = append(existing.History, transition)
	return updated, nil
}

// AddNote appends a timestamped note to an existing record. The record must
// already exist; notes never create pipeline entries on their own.
func (s *Service) AddNote(ctx context.Context, providerID, note string) (domain.Record, error) {
	existing, err := s.repo.Get(ctx, providerID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Record{}, apperr.NotFound("outreach record")
		}
		return domain.Record{}, apperr.Wrap(apperr.KindInternal, "load outreach record", err)
	}

	now := s.now()
	stamped := fmt.Sprintf("[%s] %s", now.Format("2006-01-02 15:04"), note)
	notes := stamped
	if existing.Notes != "" {
		notes = existing.Notes + "\n" + stamped
	}

	if err := s.repo.SetNotes(ctx, providerID, notes, now); err != nil {
		return domain.Record{}, apperr.Wrap(apperr.KindInternal, "save outreach notes", err)
	}
	existing.Notes = notes
	existing.UpdatedAt = now
	return existing, nil
}

// Get returns one record with history.
func (s *Service) Get(ctx context.Context, providerID string) (domain.Record, error) {
	rec, err := s.repo.Get(ctx, providerID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Record{}, apperr.NotFound("outreach record")
		}
		return domain.Record{}, apperr.Wrap(apperr.KindInternal, "load outreach record", err)
	}
	return rec, nil
}

// GetAll returns every tracked record.
func (s *Service) GetAll(ctx context.Context) ([]domain.Record, error) {
	records, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "load outreach records", err)
	}
	return records, nil
}

// ListByStatus returns provider ids currently in the given status.
func (s *Service) ListByStatus(ctx context.Context, status string) ([]string, error) {
	if !domain.IsValidStatus(status) {
		return nil, apperr.Validation(fmt.Sprintf("invalid status %q", status))
	}
	ids, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list by status", err)
	}
	return ids, nil
}

// Summary aggregates the pipeline: counts per status, the total, and the
// active pipeline (every status still being worked).
func (s *Service) Summary(ctx context.Context) (domain.Summary, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return domain.Summary{}, apperr.Wrap(apperr.KindInternal, "summarize pipeline", err)
	}

	byStatus := make(map[string]int, len(domain.ValidStatuses))
	total := 0
	for _, status := range domain.ValidStatuses {
		byStatus[status] = counts[status]
		total += counts[status]
	}
	active := 0
	for _, status := range domain.ActiveStatuses {
		active += counts[status]
	}

	return domain.Summary{Total: total, ActivePipeline: active, ByStatus: byStatus}, nil
}
