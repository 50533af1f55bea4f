package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/maplecart/backend/internal/domain/shared"
	"github.com/maplecart/backend/internal/domain/shipping"
	"github.com/maplecart/backend/internal/infrastructure/persistence/models"
)

// GormSiteSettingsRepository implements SitewideSettingsRepository using GORM
type GormSiteSettingsRepository struct {
	db *gorm.DB
}

var _ shipping.SitewideSettingsRepository = (*GormSiteSettingsRepository)(nil)

// NewGormSiteSettingsRepository creates a new GormSiteSettingsRepository
func NewGormSiteSettingsRepository(db *gorm.DB) *GormSiteSettingsRepository {
	return &GormSiteSettingsRepository{db: db}
}

// Get returns the value stored under key, or shared.ErrNotFound when the
// key has never been defined.
func (r *GormSiteSettingsRepository) Get(ctx context.Context, key string) (string, error) {
	var model models.SiteSettingModel
	if err := r.db.WithContext(ctx).First(&model, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", shared.ErrNotFound
		}
		return "", err
	}
	return model.Value, nil
}

// Set stores a value under key, overwriting any previous value.
func (r *GormSiteSettingsRepository) Set(ctx context.Context, key, value string) error {
	now := time.Now()
	model := models.SiteSettingModel{
		Key:       key,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&model).Error
}
