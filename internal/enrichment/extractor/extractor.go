// Package extractor crawls a small fixed set of pages on a discovered site
// and pulls candidate emails and phone numbers out of the markup. Contacts
// are only ever extracted from real page evidence, never synthesized from the
// organization name.
package extractor

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"velden_leads_backend/internal/enrichment/fetch"
	"velden_leads_backend/platform/logger"
	"velden_leads_backend/platform/phone"
)

// Likely contact pages, tried in order from the site root.
var candidatePaths = []string{"", "/contact", "/contact-us", "/about"}

const (
	maxEmails = 3
	maxPhones = 2
)

var emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// US phone shapes: optional parens around the area code, dot/dash/space
// separators, or a bare ten-digit run.
var phoneRe = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)

// Placeholder and infrastructure domains that show up in page source but are
// never a real contact address.
var emailDenylist = []string{
	"example.com", "test.com", "yourdomain.com",
	"@sentry", "sentry.io", "@google", "@facebook",
}

// Contacts is the deduplicated extraction result for one site. Link-derived
// contacts (mailto:/tel:) sort ahead of free-text matches.
type Contacts struct {
	Emails []string
	Phones []string
}

// Extractor crawls candidate pages and extracts contact tokens.
type Extractor struct {
	client *fetch.Client
	log    *logger.Logger
}

// New creates an extractor.
func New(client *fetch.Client, log *logger.Logger) *Extractor {
	return &Extractor{client: client, log: log.WithComponent("extractor")}
}

// Extract visits the fixed candidate pages under the site root and returns at
// most three emails and two phones found across them. A page that fails to
// fetch is skipped; the crawl continues.
func (e *Extractor) Extract(ctx context.Context, site string) Contacts {
	root := strings.TrimRight(site, "/")

	emails := newRankedSet(maxEmails)
	phones := newRankedSet(maxPhones)

	for _, path := range candidatePaths {
		if ctx.Err() != nil {
			break
		}
		if emails.full() && phones.full() {
			break
		}
		e.extractPage(ctx, root+path, emails, phones)
	}

	return Contacts{Emails: emails.values(), Phones: phones.values()}
}

func (e *Extractor) extractPage(ctx context.Context, pageURL string, emails, phones *rankedSet) {
	resp, err := e.client.Get(ctx, pageURL)
	if err != nil {
		e.log.FetchError("website", pageURL, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		e.log.FetchError("website", pageURL, err)
		return
	}

	// Explicit contact links are higher confidence than free-text matches.
	for _, href := range linkTargets(doc, "mailto:") {
		if email, ok := cleanEmail(href); ok {
			emails.add(email, true)
		}
	}
	for _, href := range linkTargets(doc, "tel:") {
		if normalized, ok := phone.NormalizeUS(href); ok {
			phones.add(normalized, true)
		}
	}

	text := visibleText(doc)
	for _, match := range emailRe.FindAllString(text, -1) {
		if email, ok := cleanEmail(match); ok {
			emails.add(email, false)
		}
	}
	for _, match := range phoneRe.FindAllString(text, -1) {
		if normalized, ok := phone.NormalizeUS(match); ok {
			phones.add(normalized, false)
		}
	}
}

// cleanEmail strips any mailto: prefix and query suffix, lowercases, and
// applies the denylist.
func cleanEmail(raw string) (string, bool) {
	email := strings.TrimPrefix(raw, "mailto:")
	if idx := strings.Index(email, "?"); idx >= 0 {
		email = email[:idx]
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return "", false
	}
	for _, denied := range emailDenylist {
		if strings.Contains(email, denied) {
			return "", false
		}
	}
	return email, true
}

// linkTargets collects hrefs with the given scheme prefix.
func linkTargets(doc *html.Node, prefix string) []string {
	var targets []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, a := range n.Attr {
				if a.Key == "href" && strings.HasPrefix(a.Val, prefix) {
					targets = append(targets, strings.TrimPrefix(a.Val, prefix))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return targets
}

// visibleText concatenates text nodes, skipping script and style bodies.
func visibleText(doc *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return b.String()
}

// rankedSet is a capped, deduplicating collector that keeps high-confidence
// entries (link-derived) ahead of free-text matches.
type rankedSet struct {
	cap      int
	seen     map[string]bool
	priority []string
	rest     []string
}

func newRankedSet(cap int) *rankedSet {
	return &rankedSet{cap: cap, seen: make(map[string]bool)}
}

func (s *rankedSet) add(value string, highConfidence bool) {
	if s.seen[value] {
		return
	}
	s.seen[value] = true
	if highConfidence {
		s.priority = append(s.priority, value)
	} else {
		s.rest = append(s.rest, value)
	}
}

func (s *rankedSet) full() bool {
	return len(s.priority) >= s.cap
}

func (s *rankedSet) values() []string {
	merged := append(append([]string{}, s.priority...), s.rest...)
	if len(merged) > s.cap {
		merged = merged[:s.cap]
	}
	return merged
}
