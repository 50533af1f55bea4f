package shipping

import (
	"context"

	"github.com/google/uuid"
)

// StoreRepository persists stores and their carrier-settings blobs.
type StoreRepository interface {
	Save(ctx context.Context, store *Store) error
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)
	FindAll(ctx context.Context, offset, limit int) ([]*Store, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ShippingMethodRepository persists shipping methods.
type ShippingMethodRepository interface {
	Save(ctx context.Context, method *ShippingMethod) error
	FindByID(ctx context.Context, id uuid.UUID) (*ShippingMethod, error)
	FindEnabled(ctx context.Context) ([]*ShippingMethod, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ShipmentRepository persists shipments and selects tracking candidates.
type ShipmentRepository interface {
	Save(ctx context.Context, shipment *Shipment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Shipment, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*Shipment, error)

	// FindForTracking returns shipments that still need tracking updates:
	// non-terminal state and a non-empty tracking pin. When orderIDs is
	// non-empty the result is restricted to those orders.
	FindForTracking(ctx context.Context, orderIDs []uuid.UUID) ([]*Shipment, error)
}

// SitewideSettingsRepository reads sitewide configuration values. Get
// returns shared.ErrNotFound when the key has never been defined.
type SitewideSettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
