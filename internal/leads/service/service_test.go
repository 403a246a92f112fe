package service

import (
	"context"
	"path/filepath"
	"testing"

	"velden_leads_backend/internal/leads/domain"
	"velden_leads_backend/internal/leads/repository"
	"velden_leads_backend/internal/registry/ingest"
	"velden_leads_backend/platform/logger"
)

func newService(t *testing.T) (*Service, *repository.Repository) {
	t.Helper()
	repo := repository.New(filepath.Join(t.TempDir(), "leads.csv"))
	if err := repo.Load(); err != nil {
		t.Fatalf("Load(): %v", err)
	}
	return New(repo, 10, logger.New("development")), repo
}

func TestBuildLead(t *testing.T) {
	lead := BuildLead(ingest.Candidate{
		ProviderID: "1234567890",
		Name:       "Lakeview Psychiatric Associates",
		Taxonomies: []string{"Psychiatry & Neurology, Psychiatry", "Clinic/Center", "Social Worker"},
		Address:    "123 Main St",
		City:       "Chicago",
		Region:     "IL",
		PostalCode: "60601",
		Phone:      "(312) 555-0142",
	})

	if lead.PracticeType != domain.PracticePsychiatry {
		t.Errorf("PracticeType = %q", lead.PracticeType)
	}
	if lead.TargetPriority != domain.PriorityCurrent {
		t.Errorf("TargetPriority = %q", lead.TargetPriority)
	}
	if lead.SizeCategory != domain.SizeSmallGroup {
		t.Errorf("SizeCategory = %q", lead.SizeCategory)
	}
	if lead.BillingNeed != domain.BillingHigh {
		t.Errorf("BillingNeed = %q", lead.BillingNeed)
	}
	if lead.Taxonomy != "Psychiatry & Neurology, Psychiatry; Clinic/Center" {
		t.Errorf("Taxonomy = %q, want first two descriptions", lead.Taxonomy)
	}
	if lead.Revenue.MonthlyCollections != 87500 {
		t.Errorf("MonthlyCollections = %d", lead.Revenue.MonthlyCollections)
	}
	if lead.Website != "" || lead.Email != "" {
		t.Error("contacts must never be derived from the name")
	}
}

func TestBuildLeadIndividualDefaultsToSolo(t *testing.T) {
	lead := BuildLead(ingest.Candidate{
		ProviderID: "1234567893",
		Name:       "Jane Smith",
		Taxonomies: []string{"Psychiatry & Neurology, Psychiatry"},
		Individual: true,
	})
	if lead.SizeCategory != domain.SizeSoloOrSmall {
		t.Errorf("SizeCategory = %q, want solo for individuals", lead.SizeCategory)
	}
}

func TestIngestBatchPreservesContactsOnReingest(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	cand := ingest.Candidate{
		ProviderID: "1234567890",
		Name:       "Harbor Counseling Center",
		Taxonomies: []string{"Counselor, Mental Health"},
		City:       "Chicago",
		Region:     "IL",
	}

	if _, err := svc.IngestBatch(ctx, []ingest.Candidate{cand}); err != nil {
		t.Fatalf("IngestBatch(): %v", err)
	}
	if err := repo.SetContacts("1234567890", "https://harborcounseling.org", "office@harborcounseling.org", "Found website & email"); err != nil {
		t.Fatalf("SetContacts(): %v", err)
	}

	// Re-ingest the same provider; derived fields recompute, contacts stay.
	cand.Name = "Harbor Counseling Center LLC"
	if _, err := svc.IngestBatch(ctx, []ingest.Candidate{cand}); err != nil {
		t.Fatalf("IngestBatch(): %v", err)
	}

	got, err := svc.Get("1234567890")
	if err != nil {
		t.Fatalf("Get(): %v", err)
	}
	if got.DisplayName != "Harbor Counseling Center LLC" {
		t.Errorf("DisplayName = %q, want recomputed", got.DisplayName)
	}
	if got.Website != "https://harborcounseling.org" {
		t.Errorf("Website = %q, want preserved", got.Website)
	}
	if got.Email != "office@harborcounseling.org" {
		t.Errorf("Email = %q, want preserved", got.Email)
	}
	if got.SearchStatus != "Found website & email" {
		t.Errorf("SearchStatus = %q, want preserved", got.SearchStatus)
	}
	if repo.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (no duplicates)", repo.Len())
	}
}

func TestIngestBatchMergeOnly(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	first := []ingest.Candidate{
		{ProviderID: "1", Name: "Alpha Counseling", Taxonomies: []string{"Counselor"}},
		{ProviderID: "2", Name: "Beta Therapy Group", Taxonomies: []string{"Social Worker"}},
	}
	if _, err := svc.IngestBatch(ctx, first); err != nil {
		t.Fatalf("IngestBatch(): %v", err)
	}

	// A later batch that no longer returns provider 2 must not remove it.
	second := []ingest.Candidate{
		{ProviderID: "1", Name: "Alpha Counseling", Taxonomies: []string{"Counselor"}},
	}
	if _, err := svc.IngestBatch(ctx, second); err != nil {
		t.Fatalf("IngestBatch(): %v", err)
	}

	if repo.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (stale leads retained)", repo.Len())
	}
}

func TestGetNotFound(t *testing.T) {
	svc, _ := newService(t)
	if _, err := svc.Get("missing"); err == nil {
		t.Error("Get(missing) err = nil, want not found")
	}
}
