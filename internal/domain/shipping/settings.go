package shipping

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Environment mode values accepted in carrier API settings.
const (
	ModeTest = "test"
	ModeLive = "live"
)

// Sitewide settings keys. The sitewide tier is a flat key/value store read
// key-by-key; these are the only keys the resolver consults.
const (
	SettingKeyCustomerNumber = "carrier.api.customer_number"
	SettingKeyUsername       = "carrier.api.username"
	SettingKeyPassword       = "carrier.api.password"
	SettingKeyContractID     = "carrier.api.contract_id"
	SettingKeyMode           = "carrier.api.mode"
	SettingKeyLogRequest     = "carrier.api.log.request"
	SettingKeyLogResponse    = "carrier.api.log.response"
)

// Settings resolution and validation errors
var (
	// ErrConfigurationMissing is returned when settings are resolved with no
	// store, no shipping method, and no sitewide fallback defined.
	ErrConfigurationMissing = errors.New("shipping: a store or shipping method is required to resolve carrier API settings")

	// ErrConfigurationInvalid is returned when resolved settings are missing
	// required credentials. It is raised before any carrier call is attempted.
	ErrConfigurationInvalid = errors.New("shipping: carrier API configuration is incomplete")

	// ErrMalformedSettingsBlob is returned when a store-level settings blob
	// cannot be decoded. Callers treat it as "no override" and fall through
	// to the next settings tier.
	ErrMalformedSettingsBlob = errors.New("shipping: malformed carrier API settings blob")
)

// LogSettings holds the per-settings diagnostic logging flags.
type LogSettings struct {
	Request  bool `json:"request"`
	Response bool `json:"response"`
}

// APISettings holds the carrier API credentials and options for one call.
// A value is resolved fresh per call from one of three tiers (store override,
// shipping method override, sitewide default) and is immutable once built.
type APISettings struct {
	CustomerNumber string      `json:"customer_number"`
	Username       string      `json:"username"`
	Password       string      `json:"password"`
	ContractID     string      `json:"contract_id"`
	Mode           string      `json:"mode"`
	Log            LogSettings `json:"log"`
}

// APISettingsKeys returns the fixed key set of a carrier settings blob.
func APISettingsKeys() []string {
	return []string{
		"customer_number",
		"username",
		"password",
		"contract_id",
		"mode",
		"log",
	}
}

// Validate checks that the minimum credentials for a carrier call are
// present. ContractID and Log are optional.
func (s APISettings) Validate() error {
	if s.Username == "" || s.Password == "" || s.CustomerNumber == "" {
		return ErrConfigurationInvalid
	}
	return nil
}

// IsConfigured reports whether there is enough information to connect to
// the carrier. Unlike Validate it also requires a mode, matching what the
// admin surface considers a complete configuration.
func (s APISettings) IsConfigured() bool {
	return s.Username != "" && s.Password != "" && s.CustomerNumber != "" && s.Mode != ""
}

// IsZero reports whether no settings fields are populated.
func (s APISettings) IsZero() bool {
	return s == APISettings{}
}

// IsTestMode reports whether the settings select the carrier sandbox.
func (s APISettings) IsTestMode() bool {
	return s.Mode == ModeTest
}

// DecodeSettingsBlob decodes a JSON-encoded settings blob as persisted on a
// store entity. A blob that is not a valid JSON settings object yields
// ErrMalformedSettingsBlob; the decode-or-fallback policy is the caller's.
func DecodeSettingsBlob(blob string) (APISettings, error) {
	var s APISettings
	if err := json.Unmarshal([]byte(blob), &s); err != nil {
		return APISettings{}, fmt.Errorf("%w: %v", ErrMalformedSettingsBlob, err)
	}
	return s, nil
}

// EncodeBlob encodes the settings as the JSON blob persisted on a store
// entity. The inverse of DecodeSettingsBlob.
func (s APISettings) EncodeBlob() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("shipping: failed to encode settings blob: %w", err)
	}
	return string(data), nil
}

// Redacted returns a copy of the settings with the password masked, for
// safe inclusion in logs and admin responses.
func (s APISettings) Redacted() APISettings {
	if s.Password != "" {
		s.Password = strings.Repeat("*", 8)
	}
	return s
}
