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

// GormShippingMethodRepository implements ShippingMethodRepository using GORM
type GormShippingMethodRepository struct {
	db *gorm.DB
}

var _ shipping.ShippingMethodRepository = (*GormShippingMethodRepository)(nil)

// NewGormShippingMethodRepository creates a new GormShippingMethodRepository
func NewGormShippingMethodRepository(db *gorm.DB) *GormShippingMethodRepository {
	return &GormShippingMethodRepository{db: db}
}

// Save creates or updates a shipping method
func (r *GormShippingMethodRepository) Save(ctx context.Context, method *shipping.ShippingMethod) error {
	var model models.ShippingMethodModel
	if err := model.FromDomain(method); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByID finds a shipping method by its ID
func (r *GormShippingMethodRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.ShippingMethod, error) {
	var model models.ShippingMethodModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindEnabled returns every enabled shipping method
func (r *GormShippingMethodRepository) FindEnabled(ctx context.Context) ([]*shipping.ShippingMethod, error) {
	var methodModels []models.ShippingMethodModel
	if err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Order("name").
		Find(&methodModels).Error; err != nil {
		return nil, err
	}

	methods := make([]*shipping.ShippingMethod, len(methodModels))
	for i := range methodModels {
		methods[i] = methodModels[i].ToDomain()
	}
	return methods, nil
}

// Delete removes a shipping method by ID
func (r *GormShippingMethodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ShippingMethodModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
