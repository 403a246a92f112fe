// Command refresh runs the full lead pipeline once and exits: registry
// ingestion, classification and scoring, then contact enrichment. Useful for
// an initial table build or a manual re-run without the queue.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"velden_leads_backend/internal/config"
	"velden_leads_backend/internal/enrichment/discovery"
	"velden_leads_backend/internal/enrichment/extractor"
	"velden_leads_backend/internal/enrichment/fetch"
	enrichsvc "velden_leads_backend/internal/enrichment/service"
	leadrepo "velden_leads_backend/internal/leads/repository"
	leadsvc "velden_leads_backend/internal/leads/service"
	regclient "velden_leads_backend/internal/registry/client"
	"velden_leads_backend/internal/registry/ingest"
	"velden_leads_backend/internal/scheduler/refresh"
	"velden_leads_backend/platform/db"
	"velden_leads_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting one-shot refresh", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	leadRepo := leadrepo.New(cfg.LeadTablePath)
	if err := leadRepo.Load(); err != nil {
		log.Error("failed to load lead table", "error", err)
		panic("failed to load lead table: " + err.Error())
	}
	log.Info("lead table loaded", "leads", leadRepo.Len())

	trackerDB, err := db.Open(cfg.TrackerDBPath)
	if err != nil {
		log.Error("failed to open tracker db", "error", err)
		panic("failed to open tracker db: " + err.Error())
	}
	defer trackerDB.Close()

	runStore, err := refresh.NewStore(trackerDB)
	if err != nil {
		log.Error("failed to init run store", "error", err)
		panic("failed to init run store: " + err.Error())
	}

	plan, err := ingest.LoadPlan(cfg.PlanPath)
	if err != nil {
		log.Error("failed to load ingestion plan", "error", err, "path", cfg.PlanPath)
		panic("failed to load ingestion plan: " + err.Error())
	}

	registryClient := regclient.New(cfg.RegistryBaseURL, cfg.HTTPTimeout, log)
	ingestor := ingest.New(registryClient, log)
	leadService := leadsvc.New(leadRepo, cfg.CheckpointEvery, log)

	fetchClient := fetch.New(cfg.HTTPTimeout, cfg.MinRequestDelay, cfg.MaxRequestDelay)
	finder := discovery.New(fetchClient, cfg.SearchBaseURL, log)
	contacts := extractor.New(fetchClient, log)
	enrichService := enrichsvc.New(leadRepo, finder, contacts, log, cfg.EnrichWorkers, cfg.CheckpointEvery)

	runner := refresh.NewRunner(ingestor, plan, leadService, enrichService, runStore, log)

	runID := uuid.NewString()
	if err := runStore.Create(ctx, runID); err != nil {
		log.Error("failed to create run record", "error", err)
		panic("failed to create run record: " + err.Error())
	}

	if err := runner.Execute(ctx, runID); err != nil {
		log.Error("refresh run failed", "run_id", runID, "error", err)
		os.Exit(1)
	}
	log.Info("refresh run complete", "run_id", runID)
}
