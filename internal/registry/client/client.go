// Package client provides the HTTP client for the public NPI provider
// registry.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"velden_leads_backend/platform/logger"
)

const (
	apiVersion     = "2.1"
	defaultTimeout = 30 * time.Second

	// EnumerationIndividual restricts a query to individual practitioners.
	EnumerationIndividual = "NPI-1"
)

// FlexID handles identifier values the registry returns as either a JSON
// number or a string.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	var num int64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = FlexID(strconv.FormatInt(num, 10))
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*f = FlexID(str)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into FlexID", string(data))
}

// Basic holds the name block of a raw registry record.
type Basic struct {
	OrganizationName string `json:"organization_name"`
	FirstName        string `json:"first_name"`
	MiddleName       string `json:"middle_name"`
	LastName         string `json:"last_name"`
	Credential       string `json:"credential"`
}

// Address is a single practice or mailing address.
type Address struct {
	AddressPurpose  string `json:"address_purpose"`
	Address1        string `json:"address_1"`
	Address2        string `json:"address_2"`
	City            string `json:"city"`
	State           string `json:"state"`
	PostalCode      string `json:"postal_code"`
	TelephoneNumber string `json:"telephone_number"`
}

// Taxonomy is a provider specialty description.
type Taxonomy struct {
	Desc    string `json:"desc"`
	Primary bool   `json:"primary"`
}

// Record is one raw provider record as returned by the registry.
type Record struct {
	Number     FlexID     `json:"number"`
	Basic      Basic      `json:"basic"`
	Addresses  []Address  `json:"addresses"`
	Taxonomies []Taxonomy `json:"taxonomies"`
}

// Page is one page of registry results.
type Page struct {
	ResultCount int      `json:"result_count"`
	Results     []Record `json:"results"`
}

// Query describes one registry page request.
type Query struct {
	State               string
	TaxonomyDescription string
	EnumerationType     string // empty = all, EnumerationIndividual = NPI-1
	Limit               int
	Skip                int
}

// Client handles registry requests.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *logger.Logger
}

// New creates a registry client. timeout bounds every page fetch; zero falls
// back to the default.
func New(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		log:        log,
	}
}

// Fetch retrieves one page of registry results. Any failure (transport,
// non-200, malformed payload) is returned to the caller; the ingestor treats
// it as an empty page.
func (c *Client) Fetch(ctx context.Context, q Query) (Page, error) {
	params := url.Values{}
	params.Set("version", apiVersion)
	params.Set("state", q.State)
	params.Set("taxonomy_description", q.TaxonomyDescription)
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("skip", strconv.Itoa(q.Skip))
	if q.EnumerationType != "" {
		params.Set("enumeration_type", q.EnumerationType)
	}

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Page{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.FetchError("registry", q.TaxonomyDescription, err)
		return Page{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.FetchError("registry", q.TaxonomyDescription, fmt.Errorf("status %d", resp.StatusCode))
		return Page{}, fmt.Errorf("registry status %d", resp.StatusCode)
	}

	var page Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		c.log.FetchError("registry", q.TaxonomyDescription, err)
		return Page{}, err
	}

	return page, nil
}
