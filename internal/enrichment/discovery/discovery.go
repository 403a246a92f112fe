// Package discovery locates a plausible organization website for a lead by
// querying an external search provider and filtering the results. The search
// markup is not a stable contract, so parsing tries independent strategies
// and every failure degrades to an empty result.
package discovery

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"velden_leads_backend/internal/enrichment/fetch"
	"velden_leads_backend/platform/logger"
)

const resultLimit = 5

// Directory, social, and aggregator domains that are never an organization's
// own site.
var excludedDomains = []string{
	"yelp.com", "healthgrades.com", "vitals.com", "zocdoc.com",
	"psychologytoday.com", "goodtherapy.org", "facebook.com",
	"linkedin.com", "twitter.com", "instagram.com", "yellowpages.com",
	"bbb.org", "manta.com", "whitepages.com", "npidb.org",
	"npino.com", "hipaaspace.com", "medicare.gov",
}

var allowedTLDs = []string{".com", ".org", ".net", ".us", ".co"}

var legalSuffixRe = regexp.MustCompile(`(?i)\b(LLC|Inc|PLLC|PC|Ltd)\b`)

// Finder issues search queries and picks the first plausible result.
type Finder struct {
	client    *fetch.Client
	searchURL string
	log       *logger.Logger
}

// New creates a finder against the given search endpoint.
func New(client *fetch.Client, searchURL string, log *logger.Logger) *Finder {
	return &Finder{
		client:    client,
		searchURL: searchURL,
		log:       log.WithComponent("discovery"),
	}
}

// FindWebsite returns the first plausible website URL for the lead, or empty
// when nothing survives filtering. An empty first pass is retried once with a
// cleaned query (legal suffixes stripped, generic keywords appended).
func (f *Finder) FindWebsite(ctx context.Context, name, city, region string) string {
	results := f.search(ctx, name+" "+city+" "+region)

	if len(results) == 0 {
		cleaned := strings.TrimSpace(legalSuffixRe.ReplaceAllString(name, ""))
		results = f.search(ctx, cleaned+" "+city+" "+region+" therapy counseling")
	}

	for _, candidate := range results {
		if isPlausibleSite(candidate) {
			return candidate
		}
	}
	return ""
}

// search fetches one results page and extracts candidate URLs. Rate-limited
// or failed responses yield nil, never an error.
func (f *Finder) search(ctx context.Context, query string) []string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("num", strconv.Itoa(resultLimit))
	reqURL := f.searchURL + "?" + params.Encode()

	resp, err := f.client.Get(ctx, reqURL)
	if err != nil {
		f.log.FetchError("search", query, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		f.log.RateLimited("search", query)
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		f.log.FetchError("search", query, err)
		return nil
	}

	// Result markup drifts; try the structured result blocks first, then
	// fall back to redirect-style links anywhere in the page.
	links := resultBlockLinks(doc)
	if len(links) == 0 {
		links = redirectLinks(doc)
	}

	if len(links) > resultLimit {
		links = links[:resultLimit]
	}
	return links
}

// resultBlockLinks extracts direct http(s) anchors inside result containers
// (div class "g").
func resultBlockLinks(doc *html.Node) []string {
	var links []string
	var walk func(n *html.Node, inResult bool)
	walk = func(n *html.Node, inResult bool) {
		if n.Type == html.ElementNode {
			if n.Data == "div" && hasClass(n, "g") {
				inResult = true
			}
			if inResult && n.Data == "a" {
				if href := attr(n, "href"); strings.HasPrefix(href, "http") {
					links = append(links, href)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inResult)
		}
	}
	walk(doc, false)
	return links
}

// redirectLinks extracts target URLs from "/url?q=" style redirect anchors.
func redirectLinks(doc *html.Node) []string {
	var links []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			href := attr(n, "href")
			if idx := strings.Index(href, "/url?q="); idx >= 0 {
				target := href[idx+len("/url?q="):]
				if amp := strings.Index(target, "&"); amp >= 0 {
					target = target[:amp]
				}
				if decoded, err := url.QueryUnescape(target); err == nil {
					target = decoded
				}
				if strings.HasPrefix(target, "http") {
					links = append(links, target)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links
}

// isPlausibleSite rejects directory domains and implausible TLDs.
func isPlausibleSite(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	domain := strings.ToLower(parsed.Hostname())
	if domain == "" {
		return false
	}

	for _, excluded := range excludedDomains {
		if strings.Contains(domain, excluded) {
			return false
		}
	}

	for _, tld := range allowedTLDs {
		if strings.HasSuffix(domain, tld) {
			return true
		}
	}
	return false
}

func hasClass(n *html.Node, class string) bool {
	for _, field := range strings.Fields(attr(n, "class")) {
		if field == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
