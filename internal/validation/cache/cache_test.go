package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"velden_leads_backend/internal/validation/service"
	"velden_leads_backend/platform/logger"
)

func newCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return New(rdb, time.Hour, logger.New("development")), mr
}

func TestCacheRoundTrip(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	want := service.Assessment{
		WebsiteStatus:  service.StatusVerified,
		WebsiteMessage: "Website active",
		EmailStatus:    service.StatusWarning,
		EmailMessage:   "No MX records",
		OverallStatus:  service.StatusWarning,
	}
	c.Set(ctx, "https://harborcounseling.org", "office@harborcounseling.org", want)

	got, ok := c.Get(ctx, "https://harborcounseling.org", "office@harborcounseling.org")
	if !ok {
		t.Fatal("Get returned miss after Set")
	}
	if got != want {
		t.Errorf("Get = %+v, want %+v", got, want)
	}
}

func TestCacheMiss(t *testing.T) {
	c, _ := newCache(t)

	if _, ok := c.Get(context.Background(), "https://other.org", ""); ok {
		t.Error("Get returned hit for a pair that was never cached")
	}
}

func TestCacheKeyedByPair(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	c.Set(ctx, "https://a.org", "x@a.org", service.Assessment{OverallStatus: service.StatusVerified})

	if _, ok := c.Get(ctx, "https://a.org", "y@a.org"); ok {
		t.Error("Get returned a hit for a different email")
	}
	if _, ok := c.Get(ctx, "https://b.org", "x@a.org"); ok {
		t.Error("Get returned a hit for a different website")
	}
}

func TestCacheExpiry(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	c.Set(ctx, "https://a.org", "x@a.org", service.Assessment{OverallStatus: service.StatusVerified})
	mr.FastForward(2 * time.Hour)

	if _, ok := c.Get(ctx, "https://a.org", "x@a.org"); ok {
		t.Error("Get returned a hit after the TTL elapsed")
	}
}
