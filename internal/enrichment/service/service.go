// Package service drives contact enrichment across the lead table: website
// discovery followed by on-site contact extraction, with periodic checkpoints
// so a long run can be interrupted without losing progress.
package service

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"velden_leads_backend/internal/enrichment/discovery"
	"velden_leads_backend/internal/enrichment/extractor"
	"velden_leads_backend/internal/leads/domain"
	"velden_leads_backend/internal/leads/repository"
	"velden_leads_backend/platform/logger"
)

const (
	StatusFound      = "Found website"
	StatusFoundEmail = "Found website & email"
	StatusNotFound   = "Website not found"
)

// Result summarizes one enrichment pass.
type Result struct {
	Processed  int `json:"processed"`
	WebsiteHit int `json:"websitesFound"`
	EmailHit   int `json:"emailsFound"`
}

// Service enriches leads that have not been searched yet.
type Service struct {
	repo            *repository.Repository
	finder          *discovery.Finder
	extractor       *extractor.Extractor
	log             *logger.Logger
	workers         int
	checkpointEvery int
}

// New creates the enrichment service. workers bounds concurrent leads in
// flight; checkpointEvery controls how often the lead table is flushed.
func New(repo *repository.Repository, finder *discovery.Finder, ex *extractor.Extractor, log *logger.Logger, workers, checkpointEvery int) *Service {
	if workers < 1 {
		workers = 1
	}
	if checkpointEvery < 1 {
		checkpointEvery = 10
	}
	return &Service{
		repo:            repo,
		finder:          finder,
		extractor:       ex,
		log:             log.WithComponent("enrichment"),
		workers:         workers,
		checkpointEvery: checkpointEvery,
	}
}

// Run enriches every lead without a recorded search status. Discovery and
// extraction for a single lead are sequential; leads run concurrently up to
// the worker limit. The table is checkpointed every checkpointEvery completed
// leads and once at the end.
func (s *Service) Run(ctx context.Context) (Result, error) {
	var pending []domain.Lead
	for _, lead := range s.repo.List() {
		if lead.SearchStatus == "" {
			pending = append(pending, lead)
		}
	}
	if len(pending) == 0 {
		s.log.Info("enrichment up to date")
		return Result{}, nil
	}
	s.log.Info("starting enrichment", "pending", len(pending), "workers", s.workers)

	var (
		done     atomic.Int64
		websites atomic.Int64
		emails   atomic.Int64
		saveMu   sync.Mutex
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, lead := range pending {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			foundSite, foundEmail := s.enrichLead(ctx, lead)
			if foundSite {
				websites.Add(1)
			}
			if foundEmail {
				emails.Add(1)
			}
			if n := done.Add(1); n%int64(s.checkpointEvery) == 0 {
				saveMu.Lock()
				err := s.repo.Save()
				saveMu.Unlock()
				if err != nil {
					s.log.StoreError("checkpoint", err)
				} else {
					s.log.Info("checkpoint saved", "completed", n)
				}
			}
			return nil
		})
	}

	runErr := g.Wait()

	if err := s.repo.Save(); err != nil {
		s.log.StoreError("final save", err)
		if runErr == nil {
			runErr = err
		}
	}

	res := Result{
		Processed:  int(done.Load()),
		WebsiteHit: int(websites.Load()),
		EmailHit:   int(emails.Load()),
	}
	s.log.Info("enrichment finished",
		"processed", res.Processed,
		"websites", res.WebsiteHit,
		"emails", res.EmailHit,
	)
	return res, runErr
}

func (s *Service) enrichLead(ctx context.Context, lead domain.Lead) (foundSite, foundEmail bool) {
	site := s.finder.FindWebsite(ctx, lead.DisplayName, lead.City, lead.RegionCode)
	if site == "" {
		if err := s.repo.SetContacts(lead.ProviderID, "", "", StatusNotFound); err != nil {
			s.log.StoreError("set contacts", err)
		}
		return false, false
	}

	contacts := s.extractor.Extract(ctx, site)

	email := ""
	if len(contacts.Emails) > 0 {
		email = contacts.Emails[0]
	}
	status := StatusFound
	if email != "" {
		status = StatusFoundEmail
	}
	if err := s.repo.SetContacts(lead.ProviderID, site, email, status); err != nil {
		s.log.StoreError("set contacts", err)
		return true, email != ""
	}
	s.log.Info("lead enriched",
		"provider", lead.ProviderID,
		"website", site,
		"emailFound", email != "",
	)
	return true, email != ""
}
