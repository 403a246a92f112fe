// Package repository persists the lead set as a tabular CSV file, the
// hand-off surface consumed by the display layer. The full table is read and
// written wholesale per batch; writes go through a temp-file rename so a
// crashed batch never leaves a half-written table behind.
package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"velden_leads_backend/internal/leads/domain"
)

var ErrNotFound = errors.New("lead not found")

var columns = []string{
	"provider_id", "display_name", "credentials", "taxonomy",
	"address", "city", "region_code", "postal_code", "phone",
	"practice_type", "target_priority", "size_category",
	"billing_need", "billing_points",
	"est_monthly_collections", "est_monthly_claims",
	"est_monthly_revenue", "est_revenue_low", "est_revenue_high",
	"website", "email", "search_status",
}

// Repository is the in-memory lead set backed by the CSV lead table.
// All mutating operations hold the lock for the full read-modify-write cycle.
type Repository struct {
	path string

	mu    sync.RWMutex
	leads map[string]domain.Lead
}

// New creates a repository over the given CSV path. Call Load before use.
func New(path string) *Repository {
	return &Repository{
		path:  path,
		leads: make(map[string]domain.Lead),
	}
}

// Load reads the lead table from disk. A missing file is an empty lead set
// (first run); any other failure is fatal and surfaced to the operator.
func (r *Repository) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Open(r.path)
	if errors.Is(err, os.ErrNotExist) {
		r.leads = make(map[string]domain.Lead)
		return nil
	}
	if err != nil {
		return fmt.Errorf("open lead table: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(columns)

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			r.leads = make(map[string]domain.Lead)
			return nil
		}
		return fmt.Errorf("read lead table header: %w", err)
	}

	leads := make(map[string]domain.Lead)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read lead table: %w", err)
		}
		lead := fromRow(row)
		if lead.ProviderID == "" {
			continue
		}
		leads[lead.ProviderID] = lead
	}

	r.leads = leads
	return nil
}

// Save writes the full lead table atomically: write to a temp file in the
// same directory, then rename over the target.
func (r *Repository) Save() error {
	r.mu.RLock()
	rows := r.sortedLocked()
	r.mu.RUnlock()

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create lead table dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".leads-*.csv")
	if err != nil {
		return fmt.Errorf("create lead table temp file: %w", err)
	}
	tmpPath := tmp.Name()

	writer := csv.NewWriter(tmp)
	writeErr := writer.Write(columns)
	for _, lead := range rows {
		if writeErr != nil {
			break
		}
		writeErr = writer.Write(toRow(lead))
	}
	writer.Flush()
	if writeErr == nil {
		writeErr = writer.Error()
	}
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write lead table: %w", writeErr)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace lead table: %w", err)
	}
	return nil
}

// Upsert stores a lead, overwriting any existing record with the same
// provider identifier. Re-ingestion overwrites, never duplicates.
func (r *Repository) Upsert(lead domain.Lead) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leads[lead.ProviderID] = lead
}

// Get returns the lead for a provider identifier.
func (r *Repository) Get(providerID string) (domain.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lead, ok := r.leads[providerID]
	if !ok {
		return domain.Lead{}, ErrNotFound
	}
	return lead, nil
}

// List returns all leads sorted by region, city, then name.
func (r *Repository) List() []domain.Lead {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedLocked()
}

// Len returns the number of leads in the set.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.leads)
}

// SetContacts merges enrichment output into an existing lead. Empty values
// never overwrite previously discovered contacts.
func (r *Repository) SetContacts(providerID, website, email, searchStatus string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lead, ok := r.leads[providerID]
	if !ok {
		return ErrNotFound
	}
	if website != "" {
		lead.Website = website
	}
	if email != "" {
		lead.Email = email
	}
	if searchStatus != "" {
		lead.SearchStatus = searchStatus
	}
	r.leads[providerID] = lead
	return nil
}

func (r *Repository) sortedLocked() []domain.Lead {
	rows := make([]domain.Lead, 0, len(r.leads))
	for _, lead := range r.leads {
		rows = append(rows, lead)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].RegionCode != rows[j].RegionCode {
			return rows[i].RegionCode < rows[j].RegionCode
		}
		if rows[i].City != rows[j].City {
			return rows[i].City < rows[j].City
		}
		return rows[i].DisplayName < rows[j].DisplayName
	})
	return rows
}

func toRow(l domain.Lead) []string {
	return []string{
		l.ProviderID, l.DisplayName, l.Credentials, l.Taxonomy,
		l.Address, l.City, l.RegionCode, l.PostalCode, l.Phone,
		string(l.PracticeType), string(l.TargetPriority), string(l.SizeCategory),
		string(l.BillingNeed), strconv.Itoa(l.BillingPoints),
		strconv.Itoa(l.Revenue.MonthlyCollections), strconv.Itoa(l.Revenue.MonthlyClaims),
		formatFloat(l.Revenue.Estimate), formatFloat(l.Revenue.Low), formatFloat(l.Revenue.High),
		l.Website, l.Email, l.SearchStatus,
	}
}

func fromRow(row []string) domain.Lead {
	return domain.Lead{
		ProviderID:     row[0],
		DisplayName:    row[1],
		Credentials:    row[2],
		Taxonomy:       row[3],
		Address:        row[4],
		City:           row[5],
		RegionCode:     row[6],
		PostalCode:     row[7],
		Phone:          row[8],
		PracticeType:   domain.PracticeType(row[9]),
		TargetPriority: domain.TargetPriority(row[10]),
		SizeCategory:   domain.SizeCategory(row[11]),
		BillingNeed:    domain.BillingNeed(row[12]),
		BillingPoints:  parseInt(row[13]),
		Revenue: domain.RevenueEstimate{
			MonthlyCollections: parseInt(row[14]),
			MonthlyClaims:      parseInt(row[15]),
			Estimate:           parseFloat(row[16]),
			Low:                parseFloat(row[17]),
			High:               parseFloat(row[18]),
		},
		Website:      row[19],
		Email:        row[20],
		SearchStatus: row[21],
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
