package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"velden_leads_backend/internal/config"
	"velden_leads_backend/internal/enrichment/discovery"
	"velden_leads_backend/internal/enrichment/extractor"
	"velden_leads_backend/internal/enrichment/fetch"
	enrichsvc "velden_leads_backend/internal/enrichment/service"
	leadrepo "velden_leads_backend/internal/leads/repository"
	leadsvc "velden_leads_backend/internal/leads/service"
	regclient "velden_leads_backend/internal/registry/client"
	"velden_leads_backend/internal/registry/ingest"
	"velden_leads_backend/internal/scheduler"
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
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	leadRepo := leadrepo.New(cfg.LeadTablePath)
	if err := leadRepo.Load(); err != nil {
		log.Error("failed to load lead table", "error", err)
		panic("failed to load lead table: " + err.Error())
	}

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

	worker, err := scheduler.NewWorker(cfg, runner, log)
	if err != nil {
		log.Error("failed to init worker", "error", err)
		panic("failed to init worker: " + err.Error())
	}

	go func() {
		<-ctx.Done()
		log.Info("shutdown signal received, stopping worker")
		worker.Shutdown()
	}()

	log.Info("worker listening", "queue", cfg.AsynqQueue)
	if err := worker.Run(); err != nil {
		log.Error("worker error", "error", err)
		panic("worker error: " + err.Error())
	}
}
