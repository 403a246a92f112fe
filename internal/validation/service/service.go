// Package service implements contact quality checks: a liveness probe for
// websites and an MX lookup for email domains. Results feed the outreach
// views so a caller knows whether a contact is worth dialing.
package service

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"velden_leads_backend/platform/logger"
)

// Status values for a single check and for the combined assessment.
const (
	StatusVerified = "verified"
	StatusWarning  = "warning"
	StatusInvalid  = "invalid"
	StatusPartial  = "partial"
)

// CheckResult is the outcome of one probe.
type CheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Assessment combines the website and email checks for one contact pair.
type Assessment struct {
	WebsiteStatus  string `json:"websiteStatus"`
	WebsiteMessage string `json:"websiteMessage"`
	EmailStatus    string `json:"emailStatus"`
	EmailMessage   string `json:"emailMessage"`
	OverallStatus  string `json:"overallStatus"`
}

// Service performs contact validation with bounded timeouts.
type Service struct {
	httpClient *http.Client
	resolver   *net.Resolver
	dnsTimeout time.Duration
	log        *logger.Logger
}

// New creates a validation service. httpTimeout bounds each website probe,
// dnsTimeout each MX lookup.
func New(httpTimeout, dnsTimeout time.Duration, log *logger.Logger) *Service {
	return &Service{
		httpClient: &http.Client{Timeout: httpTimeout},
		resolver:   net.DefaultResolver,
		dnsTimeout: dnsTimeout,
		log:        log.WithComponent("validation"),
	}
}

// Assess runs both checks and derives the overall status: verified only when
// both checks verify, partial when either is invalid, warning otherwise.
func (s *Service) Assess(ctx context.Context, website, email string) Assessment {
	web := s.CheckWebsite(ctx, website)
	mail := s.CheckEmail(ctx, email)

	overall := StatusWarning
	switch {
	case web.Status == StatusVerified && mail.Status == StatusVerified:
		overall = StatusVerified
	case web.Status == StatusInvalid || mail.Status == StatusInvalid:
		overall = StatusPartial
	}

	return Assessment{
		WebsiteStatus:  web.Status,
		WebsiteMessage: web.Message,
		EmailStatus:    mail.Status,
		EmailMessage:   mail.Message,
		OverallStatus:  overall,
	}
}

// CheckWebsite probes the site with a HEAD request, HTTPS first and plain
// HTTP as a degraded fallback.
func (s *Service) CheckWebsite(ctx context.Context, rawURL string) CheckResult {
	if len(rawURL) < 5 {
		return CheckResult{Status: StatusInvalid, Message: "No website"}
	}

	probeURL := rawURL
	if !strings.HasPrefix(probeURL, "http://") && !strings.HasPrefix(probeURL, "https://") {
		probeURL = "https://" + probeURL
	}

	status, err := s.head(ctx, probeURL)
	if err == nil && status < 400 {
		return CheckResult{Status: StatusVerified, Message: "Website active"}
	}
	if err != nil {
		return classifyProbeError(err)
	}

	// HTTPS answered with an error status. Retry over plain HTTP; a site
	// that only serves HTTP still counts, with a warning.
	if strings.HasPrefix(probeURL, "https://") {
		httpURL := "http://" + strings.TrimPrefix(probeURL, "https://")
		httpStatus, httpErr := s.head(ctx, httpURL)
		if httpErr == nil && httpStatus < 400 {
			return CheckResult{Status: StatusWarning, Message: "HTTP only (no HTTPS)"}
		}
	}

	return CheckResult{Status: StatusInvalid, Message: fmt.Sprintf("Status %d", status)}
}

func (s *Service) head(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

func classifyProbeError(err error) CheckResult {
	var certErr *tls.CertificateVerificationError
	var recordErr tls.RecordHeaderError
	switch {
	case errors.As(err, &certErr), errors.As(err, &recordErr):
		return CheckResult{Status: StatusWarning, Message: "SSL certificate issue"}
	case isTimeout(err):
		return CheckResult{Status: StatusWarning, Message: "Timeout - may be slow"}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return CheckResult{Status: StatusInvalid, Message: "Cannot connect"}
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return CheckResult{Status: StatusInvalid, Message: "Cannot connect"}
	}
	return CheckResult{Status: StatusWarning, Message: "Needs manual check"}
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// CheckEmail validates the address domain by looking up its MX records.
func (s *Service) CheckEmail(ctx context.Context, email string) CheckResult {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return CheckResult{Status: StatusInvalid, Message: "No email"}
	}
	domain := email[at+1:]

	lookupCtx, cancel := context.WithTimeout(ctx, s.dnsTimeout)
	defer cancel()

	records, err := s.resolver.LookupMX(lookupCtx, domain)
	if err != nil {
		var dnsErr *net.DNSError
		switch {
		case errors.As(err, &dnsErr) && dnsErr.IsNotFound:
			return CheckResult{Status: StatusInvalid, Message: "Domain doesn't exist"}
		case isTimeout(err):
			return CheckResult{Status: StatusWarning, Message: "DNS timeout"}
		default:
			return CheckResult{Status: StatusWarning, Message: "Needs manual check"}
		}
	}
	if len(records) == 0 {
		return CheckResult{Status: StatusWarning, Message: "No MX records"}
	}
	return CheckResult{Status: StatusVerified, Message: "Valid email domain"}
}
