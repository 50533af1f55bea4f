package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maplecart/backend/internal/domain/shared"
	"github.com/maplecart/backend/internal/domain/shipping"
)

func TestGormSiteSettingsRepository_Get(t *testing.T) {
	t.Run("returns stored value", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSiteSettingsRepository(gormDB)

		now := time.Now()
		rows := sqlmock.NewRows([]string{"key", "value", "created_at", "updated_at"}).
			AddRow(shipping.SettingKeyCustomerNumber, "1234567890", now, now)

		mock.ExpectQuery(`SELECT \* FROM "site_settings" WHERE key = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(shipping.SettingKeyCustomerNumber, 1).
			WillReturnRows(rows)

		value, err := repo.Get(context.Background(), shipping.SettingKeyCustomerNumber)
		require.NoError(t, err)
		assert.Equal(t, "1234567890", value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for undefined key", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSiteSettingsRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "site_settings" WHERE key = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(shipping.SettingKeyPassword, 1).
			WillReturnRows(sqlmock.NewRows([]string{"key", "value", "created_at", "updated_at"}))

		_, err := repo.Get(context.Background(), shipping.SettingKeyPassword)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSiteSettingsRepository_Set(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormSiteSettingsRepository(gormDB)

	mock.ExpectExec(`INSERT INTO "site_settings" .* ON CONFLICT \("key"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Set(context.Background(), shipping.SettingKeyMode, "live")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
