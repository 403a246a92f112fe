package extractor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"velden_leads_backend/internal/enrichment/fetch"
	"velden_leads_backend/platform/logger"
)

func newExtractor(t *testing.T, handler http.Handler) (*Extractor, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := fetch.New(2*time.Second, 0, 0)
	return New(client, logger.New("development")), srv
}

func TestExtractEmailsAndPhones(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<p>Reach us at office@harborcounseling.org or call 312.555.0142.</p>
			<script>window.sentryDsn = "key@sentry.io";</script>
		</body></html>`)
	})
	mux.HandleFunc("/contact", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a href="mailto:Intake@HarborCounseling.org?subject=Hello">Email intake</a>
			<a href="tel:8475550100">Call Evanston office</a>
			<p>Placeholder: info@example.com</p>
		</body></html>`)
	})

	ex, srv := newExtractor(t, mux)
	got := ex.Extract(context.Background(), srv.URL)

	wantEmails := []string{"intake@harborcounseling.org", "office@harborcounseling.org"}
	if len(got.Emails) != len(wantEmails) {
		t.Fatalf("Emails = %v, want %v", got.Emails, wantEmails)
	}
	for i := range wantEmails {
		if got.Emails[i] != wantEmails[i] {
			t.Errorf("Emails[%d] = %q, want %q (mailto first)", i, got.Emails[i], wantEmails[i])
		}
	}

	wantPhones := []string{"(847) 555-0100", "(312) 555-0142"}
	if len(got.Phones) != len(wantPhones) {
		t.Fatalf("Phones = %v, want %v", got.Phones, wantPhones)
	}
	for i := range wantPhones {
		if got.Phones[i] != wantPhones[i] {
			t.Errorf("Phones[%d] = %q, want %q (tel first)", i, got.Phones[i], wantPhones[i])
		}
	}
}

func TestExtractSkipsFailedPages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/contact", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><a href="mailto:office@realclinic.org">mail</a></body></html>`)
	})

	ex, srv := newExtractor(t, mux)
	got := ex.Extract(context.Background(), srv.URL)

	if len(got.Emails) != 1 || got.Emails[0] != "office@realclinic.org" {
		t.Errorf("Emails = %v, want the contact page address", got.Emails)
	}
}

func TestExtractCaps(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<p>a@clinic.org b@clinic.org c@clinic.org d@clinic.org</p>
			<p>312-555-0001 312-555-0002 312-555-0003</p>
		</body></html>`)
	})

	ex, srv := newExtractor(t, mux)
	got := ex.Extract(context.Background(), srv.URL)

	if len(got.Emails) != 3 {
		t.Errorf("Emails = %v, want capped at 3", got.Emails)
	}
	if len(got.Phones) != 2 {
		t.Errorf("Phones = %v, want capped at 2", got.Phones)
	}
}

func TestCleanEmail(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"mailto:Office@Clinic.org?subject=hi", "office@clinic.org", true},
		{"OFFICE@CLINIC.ORG", "office@clinic.org", true},
		{"info@example.com", "", false},
		{"admin@sentry.io", "", false},
		{"noreply@test.com", "", false},
		{"contact@yourdomain.com", "", false},
		{"notanemail", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := cleanEmail(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("cleanEmail(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("cleanEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
