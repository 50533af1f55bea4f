package carrier

import (
	"errors"
	"net/url"

	"github.com/maplecart/backend/internal/domain/shipping"
)

// Canada Post endpoint hosts. The sandbox host serves the same API surface
// against test data.
const (
	defaultProdBaseURL = "https://soa-gw.canadapost.ca"
	defaultDevBaseURL  = "https://ct.soa-gw.canadapost.ca"

	defaultTimeoutSeconds = 30
)

// ErrInvalidBaseURL indicates a malformed endpoint override
var ErrInvalidBaseURL = errors.New("carrier: invalid base URL")

// CanadaPostConfig holds the non-credential client configuration. The
// credentials travel per call in shipping.ClientConfig; this config only
// selects endpoints and transport behavior.
type CanadaPostConfig struct {
	// ProdBaseURL and DevBaseURL override the carrier hosts, mainly for
	// tests. Empty values select the published endpoints.
	ProdBaseURL string
	DevBaseURL  string

	TimeoutSeconds int
}

// DefaultCanadaPostConfig returns a config targeting the published endpoints.
func DefaultCanadaPostConfig() *CanadaPostConfig {
	return &CanadaPostConfig{
		ProdBaseURL:    defaultProdBaseURL,
		DevBaseURL:     defaultDevBaseURL,
		TimeoutSeconds: defaultTimeoutSeconds,
	}
}

// Validate checks the config and fills in defaults for empty fields.
func (c *CanadaPostConfig) Validate() error {
	if c.ProdBaseURL == "" {
		c.ProdBaseURL = defaultProdBaseURL
	}
	if c.DevBaseURL == "" {
		c.DevBaseURL = defaultDevBaseURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = defaultTimeoutSeconds
	}
	for _, raw := range []string{c.ProdBaseURL, c.DevBaseURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return ErrInvalidBaseURL
		}
	}
	return nil
}

// BaseURL returns the host for the given carrier environment.
func (c *CanadaPostConfig) BaseURL(env shipping.Environment) string {
	if env == shipping.EnvironmentProd {
		return c.ProdBaseURL
	}
	return c.DevBaseURL
}
