// Package cache memoizes contact assessments in Redis so repeated lookups
// for the same contact pair do not re-probe external sites.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"velden_leads_backend/internal/validation/service"
	"velden_leads_backend/platform/logger"
)

const keyPrefix = "velden:assessment:"

// Cache stores assessments keyed by a digest of the contact pair. Redis
// failures degrade to uncached operation; callers never see cache errors.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// New creates a cache with the given entry TTL.
func New(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *Cache {
	return &Cache{rdb: rdb, ttl: ttl, log: log.WithComponent("assessment-cache")}
}

// Get returns the cached assessment for the pair, or false on miss or any
// Redis failure.
func (c *Cache) Get(ctx context.Context, website, email string) (service.Assessment, bool) {
	raw, err := c.rdb.Get(ctx, key(website, email)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("assessment cache read failed", "error", err)
		}
		return service.Assessment{}, false
	}
	var a service.Assessment
	if err := json.Unmarshal(raw, &a); err != nil {
		return service.Assessment{}, false
	}
	return a, true
}

// Set stores the assessment. Failures are logged and swallowed.
func (c *Cache) Set(ctx context.Context, website, email string, a service.Assessment) {
	raw, err := json.Marshal(a)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key(website, email), raw, c.ttl).Err(); err != nil {
		c.log.Warn("assessment cache write failed", "error", err)
	}
}

func key(website, email string) string {
	sum := sha256.Sum256([]byte(website + "|" + email))
	return keyPrefix + hex.EncodeToString(sum[:16])
}
