package repository

import (
	"errors"
	"path/filepath"
	"testing"

	"velden_leads_backend/internal/leads/domain"
)

func testLead(id, name string) domain.Lead {
	return domain.Lead{
		ProviderID:     id,
		DisplayName:    name,
		Taxonomy:       "Psychiatry & Neurology, Psychiatry",
		Address:        "123 Main St",
		City:           "Chicago",
		RegionCode:     "IL",
		PostalCode:     "60601",
		Phone:          "(312) 555-0142",
		PracticeType:   domain.PracticePsychiatry,
		TargetPriority: domain.PriorityCurrent,
		SizeCategory:   domain.SizeSmallGroup,
		BillingNeed:    domain.BillingHigh,
		BillingPoints:  5,
		Revenue: domain.RevenueEstimate{
			MonthlyCollections: 87500,
			MonthlyClaims:      360,
			Estimate:           5687.5,
			Low:                4550,
			High:               6825,
		},
	}
}

func TestLoadMissingFileIsEmptySet(t *testing.T) {
	repo := New(filepath.Join(t.TempDir(), "leads.csv"))
	if err := repo.Load(); err != nil {
		t.Fatalf("Load() on missing file: %v", err)
	}
	if repo.Len() != 0 {
		t.Errorf("Len() = %d, want 0", repo.Len())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.csv")
	repo := New(path)
	if err := repo.Load(); err != nil {
		t.Fatalf("Load(): %v", err)
	}

	want := testLead("1234567890", "Lakeview Psychiatric Associates")
	want.Website = "https://lakeviewpsych.com"
	want.Email = "office@lakeviewpsych.com"
	want.SearchStatus = "Found website & email"
	repo.Upsert(want)
	repo.Upsert(testLead("2234567890", "Harbor Counseling Center"))

	if err := repo.Save(); err != nil {
		t.Fatalf("Save(): %v", err)
	}

	reloaded := New(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", reloaded.Len())
	}
	got, err := reloaded.Get("1234567890")
	if err != nil {
		t.Fatalf("Get(): %v", err)
	}
	if got != want {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestUpsertOverwrites(t *testing.T) {
	repo := New(filepath.Join(t.TempDir(), "leads.csv"))

	repo.Upsert(testLead("1234567890", "Old Name"))
	repo.Upsert(testLead("1234567890", "New Name"))

	if repo.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", repo.Len())
	}
	got, err := repo.Get("1234567890")
	if err != nil {
		t.Fatalf("Get(): %v", err)
	}
	if got.DisplayName != "New Name" {
		t.Errorf("DisplayName = %q, want %q", got.DisplayName, "New Name")
	}
}

func TestGetNotFound(t *testing.T) {
	repo := New(filepath.Join(t.TempDir(), "leads.csv"))
	if _, err := repo.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() err = %v, want ErrNotFound", err)
	}
}

func TestListSorted(t *testing.T) {
	repo := New(filepath.Join(t.TempDir(), "leads.csv"))

	a := testLead("1", "Zeta Clinic")
	a.RegionCode, a.City = "IL", "Aurora"
	b := testLead("2", "Alpha Clinic")
	b.RegionCode, b.City = "IL", "Chicago"
	c := testLead("3", "Beta Clinic")
	c.RegionCode, c.City = "IL", "Chicago"
	repo.Upsert(c)
	repo.Upsert(b)
	repo.Upsert(a)

	got := repo.List()
	wantOrder := []string{"1", "2", "3"}
	for i, id := range wantOrder {
		if got[i].ProviderID != id {
			t.Fatalf("List()[%d] = %s, want %s", i, got[i].ProviderID, id)
		}
	}
}

func TestSetContacts(t *testing.T) {
	repo := New(filepath.Join(t.TempDir(), "leads.csv"))
	repo.Upsert(testLead("1234567890", "Lakeview Psychiatric Associates"))

	if err := repo.SetContacts("1234567890", "https://lakeviewpsych.com", "office@lakeviewpsych.com", "Found website & email"); err != nil {
		t.Fatalf("SetContacts(): %v", err)
	}

	// Empty values must not clobber discovered contacts.
	if err := repo.SetContacts("1234567890", "", "", "Website not found"); err != nil {
		t.Fatalf("SetContacts(): %v", err)
	}

	got, _ := repo.Get("1234567890")
	if got.Website != "https://lakeviewpsych.com" {
		t.Errorf("Website = %q, want preserved", got.Website)
	}
	if got.Email != "office@lakeviewpsych.com" {
		t.Errorf("Email = %q, want preserved", got.Email)
	}
	if got.SearchStatus != "Website not found" {
		t.Errorf("SearchStatus = %q, want updated", got.SearchStatus)
	}

	if err := repo.SetContacts("missing", "x", "y", "z"); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetContacts(missing) err = %v, want ErrNotFound", err)
	}
}
