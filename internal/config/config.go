package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	HTTPAddr string

	// Durable stores
	LeadTablePath string // CSV hand-off surface for the display layer
	TrackerDBPath string // SQLite outreach tracker + refresh-run log

	// Ingestion
	PlanPath        string // YAML ingestion plan (regions, search terms)
	RegistryBaseURL string

	// Enrichment
	SearchBaseURL   string
	EnrichWorkers   int
	CheckpointEvery int
	MinRequestDelay time.Duration
	MaxRequestDelay time.Duration
	HTTPTimeout     time.Duration
	DNSTimeout      time.Duration

	// Assessment cache
	RedisURL           string
	AssessmentCacheTTL time.Duration

	// Background jobs
	AsynqQueue       string
	AsynqConcurrency int

	CORSAllowAll bool
	CORSOrigins  []string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		LeadTablePath:      getEnv("LEAD_TABLE_PATH", "data/leads.csv"),
		TrackerDBPath:      getEnv("TRACKER_DB_PATH", "data/outreach.db"),
		PlanPath:           getEnv("INGEST_PLAN_PATH", "ingest_plan.yaml"),
		RegistryBaseURL:    getEnv("REGISTRY_BASE_URL", "https://npiregistry.cms.hhs.gov/api/"),
		SearchBaseURL:      getEnv("SEARCH_BASE_URL", "https://www.google.com/search"),
		EnrichWorkers:      mustInt(getEnv("ENRICH_WORKERS", "4")),
		CheckpointEvery:    mustInt(getEnv("CHECKPOINT_EVERY", "10")),
		MinRequestDelay:    mustDuration(getEnv("MIN_REQUEST_DELAY", "2s")),
		MaxRequestDelay:    mustDuration(getEnv("MAX_REQUEST_DELAY", "4s")),
		HTTPTimeout:        mustDuration(getEnv("HTTP_TIMEOUT", "10s")),
		DNSTimeout:         mustDuration(getEnv("DNS_TIMEOUT", "3s")),
		RedisURL:           getEnv("REDIS_URL", ""),
		AssessmentCacheTTL: mustDuration(getEnv("ASSESSMENT_CACHE_TTL", "24h")),
		AsynqQueue:         getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:   mustInt(getEnv("ASYNQ_CONCURRENCY", "2")),
		CORSAllowAll:       corsAllowAll,
		CORSOrigins:        corsOrigins,
	}

	if cfg.LeadTablePath == "" || cfg.TrackerDBPath == "" {
		return nil, fmt.Errorf("LEAD_TABLE_PATH and TRACKER_DB_PATH are required")
	}
	if cfg.EnrichWorkers < 1 {
		return nil, fmt.Errorf("ENRICH_WORKERS must be at least 1")
	}
	if cfg.MinRequestDelay > cfg.MaxRequestDelay {
		return nil, fmt.Errorf("MIN_REQUEST_DELAY cannot exceed MAX_REQUEST_DELAY")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
