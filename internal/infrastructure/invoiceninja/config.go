package invoiceninja

import (
	"strings"

	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
)

// Default request timeouts. Data calls get the long timeout; the ping used
// by connection tests gets the short one.
const (
	defaultTimeoutSeconds     = 30
	defaultPingTimeoutSeconds = 10
)

// Config holds the connection settings for one Invoice Ninja company.
type Config struct {
	// BaseURL is the Invoice Ninja instance URL, without the /api/v1 suffix
	BaseURL string
	// APIToken is the company-scoped API token (X-API-TOKEN)
	APIToken string
	// CompanyID is sent as X-API-COMPANY to scope multi-company instances
	CompanyID string
	// TimeoutSeconds bounds data requests
	TimeoutSeconds int
	// PingTimeoutSeconds bounds connection tests
	PingTimeoutSeconds int
}

// Validate validates the connection settings and applies timeout defaults.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return syncdomain.ErrMissingBaseURL
	}
	if strings.TrimSpace(c.APIToken) == "" {
		return syncdomain.ErrMissingAPIToken
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.PingTimeoutSeconds <= 0 {
		c.PingTimeoutSeconds = defaultPingTimeoutSeconds
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return nil
}

// ConfigFromCredential builds connection settings from a stored credential.
// The credential must be enabled and complete.
func ConfigFromCredential(cred *syncdomain.Credential) (*Config, error) {
	if cred == nil {
		return nil, syncdomain.ErrNotConfigured
	}
	if err := cred.Usable(); err != nil {
		return nil, err
	}
	cfg := &Config{
		BaseURL:   cred.BaseURL,
		APIToken:  cred.APIToken,
		CompanyID: cred.NinjaCompanyID,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
