// Package service applies classification and scoring to ingested candidates
// and owns the persisted lead set.
package service

import (
	"context"
	"errors"
	"strings"

	"velden_leads_backend/internal/leads/domain"
	"velden_leads_backend/internal/leads/repository"
	"velden_leads_backend/internal/leads/revenue"
	"velden_leads_backend/internal/registry/ingest"
	"velden_leads_backend/platform/apperr"
	"velden_leads_backend/platform/logger"
)

// Service owns the lead set and the classification step of the pipeline.
type Service struct {
	repo            *repository.Repository
	log             *logger.Logger
	checkpointEvery int
}

// New creates the leads service. checkpointEvery bounds how much work an
// interrupted batch can lose.
func New(repo *repository.Repository, checkpointEvery int, log *logger.Logger) *Service {
	if checkpointEvery < 1 {
		checkpointEvery = 10
	}
	return &Service{
		repo:            repo,
		log:             log.WithComponent("leads"),
		checkpointEvery: checkpointEvery,
	}
}

// BuildLead turns a normalized candidate into a fully classified and scored
// lead. Pure: the same candidate always produces the same lead, so
// re-ingestion recomputes rather than caching stale derivations.
func BuildLead(c ingest.Candidate) domain.Lead {
	practice, priority := domain.Classify(c.Name, c.Taxonomies)
	size := domain.Size(c.Name)
	if c.Individual {
		// Practitioners without a group affiliation in the name run solo.
		if size == domain.SizeUnknown {
			size = domain.SizeSoloOrSmall
		}
	}
	points, need := domain.BillingScore(c.Name, practice, size)

	taxonomy := ""
	if len(c.Taxonomies) > 0 {
		descs := c.Taxonomies
		if len(descs) > 2 {
			descs = descs[:2]
		}
		taxonomy = strings.Join(descs, "; ")
	}

	return domain.Lead{
		ProviderID:     c.ProviderID,
		DisplayName:    c.Name,
		Credentials:    c.Credentials,
		Taxonomy:       taxonomy,
		Address:        c.Address,
		City:           c.City,
		RegionCode:     c.Region,
		PostalCode:     c.PostalCode,
		Phone:          c.Phone,
		PracticeType:   practice,
		TargetPriority: priority,
		SizeCategory:   size,
		BillingNeed:    need,
		BillingPoints:  points,
		Revenue:        revenue.Calculate(practice, size),
	}
}

// IngestBatch classifies and stores a batch of candidates, checkpointing the
// lead table at a fixed cadence so an interrupted run loses at most the
// unflushed tail. Existing contact fields survive re-ingestion.
func (s *Service) IngestBatch(ctx context.Context, candidates []ingest.Candidate) (int, error) {
	stored := 0
	for _, c := range candidates {
		if ctx.Err() != nil {
			break
		}

		lead := BuildLead(c)
		if prev, err := s.repo.Get(lead.ProviderID); err == nil {
			lead.Website = prev.Website
			lead.Email = prev.Email
			lead.SearchStatus = prev.SearchStatus
		}
		s.repo.Upsert(lead)
		stored++

		if stored%s.checkpointEvery == 0 {
			if err := s.repo.Save(); err != nil {
				s.log.StoreError("checkpoint lead table", err)
				return stored, err
			}
		}
	}

	if err := s.repo.Save(); err != nil {
		s.log.StoreError("save lead table", err)
		return stored, err
	}

	s.log.Info("ingest batch stored", "leads", stored, "total", s.repo.Len())
	return stored, nil
}

// List returns the full lead table.
func (s *Service) List() []domain.Lead {
	return s.repo.List()
}

// Get returns one lead by provider identifier.
func (s *Service) Get(providerID string) (domain.Lead, error) {
	lead, err := s.repo.Get(providerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Lead{}, apperr.NotFound("lead not found")
		}
		return domain.Lead{}, err
	}
	return lead, nil
}
