package shipping

import (
	"strings"

	"github.com/maplecart/backend/internal/domain/shared"
	"github.com/maplecart/backend/internal/domain/shared/valueobject"
)

// Store is a storefront that ships orders. It can carry a store-level
// carrier settings override, persisted as a JSON blob; an empty blob means
// the store uses shipping-method or sitewide settings.
type Store struct {
	shared.BaseEntity
	Name                string
	Address             valueobject.Address
	CarrierSettingsBlob string
}

// NewStore creates a new store
func NewStore(name string, address valueobject.Address) (*Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_STORE_NAME", "Store name cannot be empty")
	}

	return &Store{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Address:    address,
	}, nil
}

// HasCarrierSettings reports whether a store-level settings override is set.
func (s *Store) HasCarrierSettings() bool {
	return strings.TrimSpace(s.CarrierSettingsBlob) != ""
}

// SetCarrierSettings persists the given settings as the store override blob.
func (s *Store) SetCarrierSettings(settings APISettings) error {
	blob, err := settings.EncodeBlob()
	if err != nil {
		return err
	}
	s.CarrierSettingsBlob = blob
	s.Touch()
	return nil
}

// ClearCarrierSettings removes the store override so the next tier applies.
func (s *Store) ClearCarrierSettings() {
	s.CarrierSettingsBlob = ""
	s.Touch()
}
