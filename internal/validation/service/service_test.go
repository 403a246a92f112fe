package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"velden_leads_backend/platform/logger"
)

func newService(t *testing.T) *Service {
	t.Helper()
	return New(2*time.Second, 2*time.Second, logger.New("development"))
}

func TestCheckWebsiteActive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %q, want HEAD", r.Method)
		}
	}))
	defer srv.Close()

	got := newService(t).CheckWebsite(context.Background(), srv.URL)
	if got.Status != StatusVerified || got.Message != "Website active" {
		t.Errorf("CheckWebsite = %+v, want verified / Website active", got)
	}
}

func TestCheckWebsiteErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	got := newService(t).CheckWebsite(context.Background(), srv.URL)
	if got.Status != StatusInvalid || got.Message != "Status 404" {
		t.Errorf("CheckWebsite = %+v, want invalid / Status 404", got)
	}
}

func TestCheckWebsiteMissing(t *testing.T) {
	for _, raw := range []string{"", "n/a"} {
		got := newService(t).CheckWebsite(context.Background(), raw)
		if got.Status != StatusInvalid || got.Message != "No website" {
			t.Errorf("CheckWebsite(%q) = %+v, want invalid / No website", raw, got)
		}
	}
}

func TestCheckWebsiteUntrustedCertificate(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	// The checking client does not trust the test server's self-signed
	// certificate, so the handshake fails.
	got := newService(t).CheckWebsite(context.Background(), srv.URL)
	if got.Status != StatusWarning || got.Message != "SSL certificate issue" {
		t.Errorf("CheckWebsite = %+v, want warning / SSL certificate issue", got)
	}
}

func TestCheckWebsiteTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	svc := New(50*time.Millisecond, time.Second, logger.New("development"))
	got := svc.CheckWebsite(context.Background(), srv.URL)
	if got.Status != StatusWarning || got.Message != "Timeout - may be slow" {
		t.Errorf("CheckWebsite = %+v, want warning / Timeout - may be slow", got)
	}
}

func TestCheckWebsiteConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	got := newService(t).CheckWebsite(context.Background(), url)
	if got.Status != StatusInvalid || got.Message != "Cannot connect" {
		t.Errorf("CheckWebsite = %+v, want invalid / Cannot connect", got)
	}
}

func TestCheckEmailMalformed(t *testing.T) {
	for _, email := range []string{"", "noatsign", "trailing@"} {
		got := newService(t).CheckEmail(context.Background(), email)
		if got.Status != StatusInvalid || got.Message != "No email" {
			t.Errorf("CheckEmail(%q) = %+v, want invalid / No email", email, got)
		}
	}
}

func TestAssessPartial(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	// Live website but no email at all: one invalid check downgrades the
	// pair to partial.
	got := newService(t).Assess(context.Background(), srv.URL, "")
	if got.WebsiteStatus != StatusVerified {
		t.Errorf("WebsiteStatus = %q, want verified", got.WebsiteStatus)
	}
	if got.EmailStatus != StatusInvalid {
		t.Errorf("EmailStatus = %q, want invalid", got.EmailStatus)
	}
	if got.OverallStatus != StatusPartial {
		t.Errorf("OverallStatus = %q, want partial", got.OverallStatus)
	}
}
