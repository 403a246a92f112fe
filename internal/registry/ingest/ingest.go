// Package ingest pages through the public provider registry and normalizes
// raw records into candidate leads. Classification happens downstream; this
// package only fetches, filters, and deduplicates.
package ingest

import (
	"context"
	"strings"
	"time"

	"velden_leads_backend/internal/registry/client"
	"velden_leads_backend/platform/logger"
	"velden_leads_backend/platform/phone"
)

const pageSize = 200

// Large institutional entities are out of scope for small-practice outreach.
// Fixed string-contains test on the organization name, not a classifier.
var institutionalKeywords = []string{
	"hospital", "health system", "university", "medical center",
	"department of", "state of", "federal", "government",
	"county health", "public health department",
}

// Candidate is a normalized raw registry record, ready for classification.
type Candidate struct {
	ProviderID  string
	Name        string
	Credentials string // individuals only
	Taxonomies  []string
	Address     string
	City        string
	Region      string
	PostalCode  string
	Phone       string
	Individual  bool
}

// Ingestor pulls candidate leads from the registry per an ingestion plan.
type Ingestor struct {
	client *client.Client
	log    *logger.Logger
}

// New creates an ingestor.
func New(c *client.Client, log *logger.Logger) *Ingestor {
	return &Ingestor{client: c, log: log.WithComponent("ingest")}
}

// Run executes the plan: for each (region, term) pair it pages through the
// registry, deduplicating globally by provider identifier. A failed page
// yields zero records for that page and never aborts the remaining
// pages or terms.
func (ing *Ingestor) Run(ctx context.Context, plan Plan) []Candidate {
	seen := make(map[string]struct{})
	var candidates []Candidate

	for _, region := range plan.Regions {
		for _, term := range plan.SearchTerms {
			records := ing.fetchTerm(ctx, plan, client.Query{
				State:               region,
				TaxonomyDescription: term,
				Limit:               pageSize,
			})
			candidates = ing.collect(candidates, seen, records, region, false)
		}

		for _, term := range plan.IndividualTerms {
			records := ing.fetchTerm(ctx, plan, client.Query{
				State:               region,
				TaxonomyDescription: term,
				EnumerationType:     client.EnumerationIndividual,
				Limit:               pageSize,
			})
			candidates = ing.collect(candidates, seen, records, region, true)
		}
	}

	ing.log.Info("ingestion complete", "candidates", len(candidates))
	return candidates
}

// fetchTerm pages one (region, term) pair until the result count is exhausted
// or the plan's page cap is reached.
func (ing *Ingestor) fetchTerm(ctx context.Context, plan Plan, q client.Query) []client.Record {
	first, err := ing.client.Fetch(ctx, q)
	if err != nil {
		return nil
	}

	records := first.Results
	if first.ResultCount <= pageSize {
		return records
	}

	maxPages := first.ResultCount/pageSize + 1
	if maxPages > plan.MaxPages {
		maxPages = plan.MaxPages
	}

	for p := 1; p < maxPages; p++ {
		if ctx.Err() != nil {
			break
		}

		q.Skip = p * pageSize
		page, err := ing.client.Fetch(ctx, q)
		if err != nil {
			continue // best-effort per page
		}
		records = append(records, page.Results...)

		select {
		case <-time.After(plan.PageDelay):
		case <-ctx.Done():
			return records
		}
	}

	ing.log.Debug("term paged", "term", q.TaxonomyDescription, "pages", maxPages, "records", len(records))
	return records
}

func (ing *Ingestor) collect(candidates []Candidate, seen map[string]struct{}, records []client.Record, region string, individual bool) []Candidate {
	for _, rec := range records {
		id := string(rec.Number)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		var cand *Candidate
		if individual {
			cand = extractIndividual(rec, region)
		} else {
			cand = extractOrganization(rec, region)
		}
		if cand == nil {
			continue
		}
		cand.ProviderID = id
		candidates = append(candidates, *cand)
	}
	return candidates
}

// extractOrganization normalizes an organization record, or returns nil when
// the record is filtered out (no organization name, institutional entity,
// missing address, or address outside the requested region).
func extractOrganization(rec client.Record, region string) *Candidate {
	name := strings.TrimSpace(rec.Basic.OrganizationName)
	if name == "" {
		return nil
	}

	nameLower := strings.ToLower(name)
	for _, kw := range institutionalKeywords {
		if strings.Contains(nameLower, kw) {
			return nil
		}
	}

	addr := locationAddress(rec.Addresses)
	if addr == nil || addr.State != region {
		return nil
	}

	return &Candidate{
		Name:       name,
		Taxonomies: taxonomyDescriptions(rec.Taxonomies),
		Address:    strings.TrimSpace(addr.Address1 + " " + addr.Address2),
		City:       addr.City,
		Region:     addr.State,
		PostalCode: zip5(addr.PostalCode),
		Phone:      formatPhone(addr.TelephoneNumber),
	}
}

// extractIndividual normalizes an individual practitioner record.
func extractIndividual(rec client.Record, region string) *Candidate {
	name := rec.Basic.FirstName
	if rec.Basic.MiddleName != "" {
		name += " " + rec.Basic.MiddleName
	}
	name += " " + rec.Basic.LastName
	name = strings.TrimSpace(name)
	if len(name) < 3 {
		return nil
	}

	addr := locationAddress(rec.Addresses)
	if addr == nil || addr.State != region {
		return nil
	}

	taxonomies := taxonomyDescriptions(rec.Taxonomies)
	if len(taxonomies) == 0 {
		return nil
	}

	return &Candidate{
		Name:        name,
		Credentials: ExtractCredentials(name+" "+rec.Basic.Credential, taxonomies),
		Taxonomies:  taxonomies,
		Address:     strings.TrimSpace(addr.Address1 + " " + addr.Address2),
		City:        addr.City,
		Region:      addr.State,
		PostalCode:  zip5(addr.PostalCode),
		Phone:       formatPhone(addr.TelephoneNumber),
		Individual:  true,
	}
}

// locationAddress prefers the practice LOCATION address, falling back to the
// first address on the record.
func locationAddress(addrs []client.Address) *client.Address {
	if len(addrs) == 0 {
		return nil
	}
	for i := range addrs {
		if addrs[i].AddressPurpose == "LOCATION" {
			return &addrs[i]
		}
	}
	return &addrs[0]
}

func taxonomyDescriptions(taxs []client.Taxonomy) []string {
	descs := make([]string, 0, len(taxs))
	for _, t := range taxs {
		if t.Desc != "" {
			descs = append(descs, t.Desc)
		}
	}
	return descs
}

func formatPhone(raw string) string {
	if raw == "" {
		return ""
	}
	if formatted, ok := phone.NormalizeUS(raw); ok {
		return formatted
	}
	return raw
}

func zip5(postal string) string {
	if len(postal) > 5 {
		return postal[:5]
	}
	return postal
}
