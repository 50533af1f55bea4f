package shipping

import (
	"strings"

	"github.com/maplecart/backend/internal/domain/shared"
)

// ShippingMethod is a configured carrier shipping method offered at
// checkout. It can carry its own API settings override; a zero API value
// means the method defers to store or sitewide settings.
type ShippingMethod struct {
	shared.BaseEntity
	Name string

	// API is the method-level settings override.
	API APISettings

	// OriginPostalCode overrides the store postal code as the rating
	// origin when non-empty.
	OriginPostalCode string

	// OptionCodes are the rating options added to every quote request.
	OptionCodes []string

	// ServiceCodes are the carrier services this method offers.
	ServiceCodes []string

	Enabled bool
}

// NewShippingMethod creates a new shipping method offering the given services
func NewShippingMethod(name string, serviceCodes []string) (*ShippingMethod, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_METHOD_NAME", "Shipping method name cannot be empty")
	}
	for _, code := range serviceCodes {
		if !IsKnownServiceCode(code) {
			return nil, shared.NewDomainError("UNKNOWN_SERVICE_CODE", "Unknown carrier service code: "+code)
		}
	}

	return &ShippingMethod{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		ServiceCodes: serviceCodes,
		Enabled:      true,
	}, nil
}

// APIIsConfigured reports whether the method-level override has the minimum
// information to connect to the carrier.
func (m *ShippingMethod) APIIsConfigured() bool {
	return m.API.IsConfigured()
}

// ClearAPISettings empties the method-level override so rating and tracking
// fall back to store or sitewide settings.
func (m *ShippingMethod) ClearAPISettings() {
	m.API = APISettings{}
	m.Touch()
}
