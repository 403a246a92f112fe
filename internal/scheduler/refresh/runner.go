package refresh

import (
	"context"
	"fmt"

	enrichsvc "velden_leads_backend/internal/enrichment/service"
	leadsvc "velden_leads_backend/internal/leads/service"
	"velden_leads_backend/internal/registry/ingest"
	"velden_leads_backend/platform/logger"
)

// Runner executes one full refresh: registry ingestion, classification and
// scoring into the lead table, then contact enrichment for leads that have
// never been searched.
type Runner struct {
	ingestor *ingest.Ingestor
	plan     ingest.Plan
	leads    *leadsvc.Service
	enrich   *enrichsvc.Service
	store    *Store
	log      *logger.Logger
}

// NewRunner wires the pipeline stages together.
func NewRunner(ingestor *ingest.Ingestor, plan ingest.Plan, leads *leadsvc.Service, enrich *enrichsvc.Service, store *Store, log *logger.Logger) *Runner {
	return &Runner{
		ingestor: ingestor,
		plan:     plan,
		leads:    leads,
		enrich:   enrich,
		store:    store,
		log:      log.WithComponent("refresh"),
	}
}

// Execute runs the pipeline under the given run id, recording each step in
// the run log. The terminal status reflects whether every stage completed.
func (r *Runner) Execute(ctx context.Context, runID string) error {
	log := r.log.WithRunID(runID)

	if err := r.store.MarkRunning(ctx, runID); err != nil {
		return fmt.Errorf("mark run running: %w", err)
	}
	r.note(ctx, runID, "run started")

	candidates := r.ingestor.Run(ctx, r.plan)
	r.note(ctx, runID, fmt.Sprintf("registry ingestion collected %d candidates", len(candidates)))
	log.Info("ingestion complete", "candidates", len(candidates))

	stored, err := r.leads.IngestBatch(ctx, candidates)
	if err != nil {
		r.fail(ctx, runID, fmt.Sprintf("lead table update failed: %v", err))
		return err
	}
	r.note(ctx, runID, fmt.Sprintf("lead table updated, %d leads stored", stored))

	result, err := r.enrich.Run(ctx)
	if err != nil {
		r.fail(ctx, runID, fmt.Sprintf("enrichment failed: %v", err))
		return err
	}
	r.note(ctx, runID, fmt.Sprintf(
		"enrichment processed %d leads, %d websites, %d emails",
		result.Processed, result.WebsiteHit, result.EmailHit,
	))

	r.note(ctx, runID, "run finished")
	if err := r.store.MarkFinished(ctx, runID, RunSucceeded); err != nil {
		return fmt.Errorf("mark run finished: %w", err)
	}
	log.Info("refresh run finished", "stored", stored, "enriched", result.Processed)
	return nil
}

func (r *Runner) note(ctx context.Context, runID, line string) {
	if err := r.store.AppendLog(ctx, runID, line); err != nil {
		r.log.StoreError("append run log", err)
	}
}

func (r *Runner) fail(ctx context.Context, runID, line string) {
	r.note(ctx, runID, line)
	if err := r.store.MarkFinished(ctx, runID, RunFailed); err != nil {
		r.log.StoreError("mark run failed", err)
	}
}
