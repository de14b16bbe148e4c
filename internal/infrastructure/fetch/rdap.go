package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"jobshield/pkg/logger"
)

const defaultRDAPBaseURL = "https://rdap.org"

// RDAPClient resolves domain registration dates through the public RDAP
// bootstrap service. Its DomainAgeDays method satisfies DomainAgeFunc.
type RDAPClient struct {
	client  *http.Client
	baseURL string
	logger  *logger.Logger
}

// NewRDAPClient creates a new RDAPClient
func NewRDAPClient(timeout time.Duration, log *logger.Logger) *RDAPClient {
	return &RDAPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: defaultRDAPBaseURL,
		logger:  log.WithComponent("rdap"),
	}
}

// rdapDomainResponse is the subset of the RDAP domain object we read.
type rdapDomainResponse struct {
	Events []struct {
		EventAction string `json:"eventAction"`
		EventDate   string `json:"eventDate"`
	} `json:"events"`
}

// DomainAgeDays looks up the registration event for domain and returns its
// age in days. Unknown or unparseable registrations are errors; the caller
// treats them as age-unknown.
func (c *RDAPClient) DomainAgeDays(ctx context.Context, domain string) (int, error) {
	url := fmt.Sprintf("%s/domain/%s", c.baseURL, domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return -1, fmt.Errorf("invalid RDAP request for %q: %w", domain, err)
	}
	req.Header.Set("Accept", "application/rdap+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return -1, fmt.Errorf("RDAP lookup for %q: %w", domain, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return -1, fmt.Errorf("RDAP lookup for %q: unexpected status %d", domain, resp.StatusCode)
	}

	var body rdapDomainResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return -1, fmt.Errorf("decode RDAP response for %q: %w", domain, err)
	}

	for _, event := range body.Events {
		if event.EventAction != "registration" {
			continue
		}
		registered, err := time.Parse(time.RFC3339, event.EventDate)
		if err != nil {
			return -1, fmt.Errorf("parse registration date %q: %w", event.EventDate, err)
		}
		age := int(time.Since(registered).Hours() / 24)
		c.logger.Debug().Str("domain", domain).Int("age_days", age).Msg("domain age resolved")
		return age, nil
	}

	return -1, fmt.Errorf("no registration event for %q", domain)
}
