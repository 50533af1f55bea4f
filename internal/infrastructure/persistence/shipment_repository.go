package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maplecart/backend/internal/domain/shared"
	"github.com/maplecart/backend/internal/domain/shipping"
	"github.com/maplecart/backend/internal/infrastructure/persistence/models"
)

// GormShipmentRepository implements ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

var _ shipping.ShipmentRepository = (*GormShipmentRepository)(nil)

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// Save creates or updates a shipment
func (r *GormShipmentRepository) Save(ctx context.Context, shipment *shipping.Shipment) error {
	var model models.ShipmentModel
	model.FromDomain(shipment)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByID finds a shipment by its ID
func (r *GormShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.Shipment, error) {
	var model models.ShipmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderID returns every shipment of an order
func (r *GormShipmentRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*shipping.Shipment, error) {
	var shipmentModels []models.ShipmentModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at").
		Find(&shipmentModels).Error; err != nil {
		return nil, err
	}
	return toDomainShipments(shipmentModels), nil
}

// FindForTracking returns shipments that still need tracking updates:
// a non-empty tracking pin and a non-terminal state. A non-empty orderIDs
// slice restricts the result to those orders.
func (r *GormShipmentRepository) FindForTracking(ctx context.Context, orderIDs []uuid.UUID) ([]*shipping.Shipment, error) {
	query := r.db.WithContext(ctx).
		Where("tracking_pin <> ''").
		Where("state NOT IN ?", []string{
			shipping.ShipmentStateCompleted.String(),
			shipping.ShipmentStateCanceled.String(),
		})
	if len(orderIDs) > 0 {
		query = query.Where("order_id IN ?", orderIDs)
	}

	var shipmentModels []models.ShipmentModel
	if err := query.Order("created_at").Find(&shipmentModels).Error; err != nil {
		return nil, err
	}
	return toDomainShipments(shipmentModels), nil
}

func toDomainShipments(shipmentModels []models.ShipmentModel) []*shipping.Shipment {
	shipments := make([]*shipping.Shipment, len(shipmentModels))
	for i := range shipmentModels {
		shipments[i] = shipmentModels[i].ToDomain()
	}
	return shipments
}
