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

// GormStoreRepository implements StoreRepository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

var _ shipping.StoreRepository = (*GormStoreRepository)(nil)

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// Save creates or updates a store
func (r *GormStoreRepository) Save(ctx context.Context, store *shipping.Store) error {
	var model models.StoreModel
	model.FromDomain(store)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByID finds a store by its ID
func (r *GormStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.Store, error) {
	var model models.StoreModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of stores plus the total count
func (r *GormStoreRepository) FindAll(ctx context.Context, offset, limit int) ([]*shipping.Store, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.StoreModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var storeModels []models.StoreModel
	if err := r.db.WithContext(ctx).
		Order("name").
		Offset(offset).
		Limit(limit).
		Find(&storeModels).Error; err != nil {
		return nil, 0, err
	}

	stores := make([]*shipping.Store, len(storeModels))
	for i := range storeModels {
		stores[i] = storeModels[i].ToDomain()
	}
	return stores, total, nil
}

// Delete removes a store by ID
func (r *GormStoreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.StoreModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
