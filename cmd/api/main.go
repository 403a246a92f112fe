package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"velden_leads_backend/internal/config"
	apphttp "velden_leads_backend/internal/http"
	"velden_leads_backend/internal/http/router"
	"velden_leads_backend/internal/leads"
	leadrepo "velden_leads_backend/internal/leads/repository"
	"velden_leads_backend/internal/outreach"
	"velden_leads_backend/internal/scheduler"
	"velden_leads_backend/internal/scheduler/refresh"
	"velden_leads_backend/internal/validation"
	"velden_leads_backend/platform/db"
	"velden_leads_backend/platform/logger"
	"velden_leads_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	leadRepo := leadrepo.New(cfg.LeadTablePath)
	if err := leadRepo.Load(); err != nil {
		log.Error("failed to load lead table", "error", err)
		panic("failed to load lead table: " + err.Error())
	}
	log.Info("lead table loaded", "leads", leadRepo.Len(), "path", cfg.LeadTablePath)

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

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Error("invalid redis url", "error", err)
			panic("invalid redis url: " + err.Error())
		}
		rdb = redis.NewClient(opt)
		defer rdb.Close()
	} else {
		log.Warn("REDIS_URL not configured; assessment cache and refresh queue disabled")
	}

	val := validator.New()

	leadsModule := leads.NewModule(leadRepo, cfg.CheckpointEvery, log)
	outreachModule, err := outreach.NewModule(trackerDB, val, log)
	if err != nil {
		log.Error("failed to init outreach module", "error", err)
		panic("failed to init outreach module: " + err.Error())
	}
	validationModule := validation.NewModule(cfg, rdb, val, log)

	var schedClient *scheduler.Client
	if cfg.RedisURL != "" {
		schedClient, err = scheduler.NewClient(cfg)
		if err != nil {
			log.Error("failed to init scheduler client", "error", err)
			panic("failed to init scheduler client: " + err.Error())
		}
		defer schedClient.Close()
	}
	schedulerModule := scheduler.NewModule(schedClient, runStore, log)

	engine := router.New(cfg, log, []apphttp.Module{
		leadsModule,
		outreachModule,
		validationModule,
		schedulerModule,
	})

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}
