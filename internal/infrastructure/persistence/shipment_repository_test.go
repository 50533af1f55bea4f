package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/maplecart/backend/internal/domain/shared"
	"github.com/maplecart/backend/internal/domain/shipping"
)

// newMockDB creates a GORM DB backed by a mocked SQL connection
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func shipmentColumns() []string {
	return []string{
		"id", "created_at", "updated_at", "order_id", "store_id", "state",
		"tracking_pin", "destination_line1", "destination_line2",
		"destination_city", "destination_province", "destination_postal_code",
		"destination_country", "weight_value", "weight_unit",
		"actual_delivery", "attempted_delivery", "expected_delivery",
		"mailed_on", "current_location",
	}
}

func TestGormShipmentRepository_FindByID(t *testing.T) {
	t.Run("finds existing shipment", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormShipmentRepository(gormDB)

		shipmentID := uuid.New()
		orderID := uuid.New()
		storeID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows(shipmentColumns()).AddRow(
			shipmentID, now, now, orderID, storeID, "shipped",
			"1681334332936901", "100 Main St", "", "Whitehorse", "YT", "Y1A2C6",
			"CA", decimal.NewFromInt(1), "kg",
			"", "", "2026-09-04", "2026-08-31", "RICHMOND",
		)

		mock.ExpectQuery(`SELECT \* FROM "shipments" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(shipmentID, 1).
			WillReturnRows(rows)

		shipment, err := repo.FindByID(context.Background(), shipmentID)

		require.NoError(t, err)
		assert.Equal(t, shipmentID, shipment.ID)
		assert.Equal(t, orderID, shipment.OrderID)
		assert.Equal(t, shipping.ShipmentStateShipped, shipment.State)
		assert.Equal(t, "1681334332936901", shipment.TrackingPIN)
		assert.Equal(t, "Y1A2C6", shipment.Destination.PostalCode())
		assert.Equal(t, "1", shipment.Weight.Kilograms().String())
		assert.Equal(t, "2026-09-04", shipment.ExpectedDelivery)
		assert.Equal(t, "RICHMOND", shipment.CurrentLocation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for non-existent shipment", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormShipmentRepository(gormDB)

		shipmentID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "shipments" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(shipmentID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByID(context.Background(), shipmentID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormShipmentRepository_FindForTracking(t *testing.T) {
	t.Run("excludes terminal states and empty pins", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormShipmentRepository(gormDB)

		shipmentID := uuid.New()
		orderID := uuid.New()
		storeID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows(shipmentColumns()).AddRow(
			shipmentID, now, now, orderID, storeID, "shipped",
			"1681334332936901", "", "", "", "", "Y1A2C6",
			"CA", decimal.NewFromInt(1), "kg",
			"", "", "", "", "",
		)

		mock.ExpectQuery(`SELECT \* FROM "shipments" WHERE tracking_pin <> '' AND state NOT IN \(\$1,\$2\) ORDER BY created_at`).
			WithArgs("completed", "canceled").
			WillReturnRows(rows)

		shipments, err := repo.FindForTracking(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, shipments, 1)
		assert.Equal(t, orderID, shipments[0].OrderID)
		assert.True(t, shipments[0].NeedsTracking())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("restricts to requested orders", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormShipmentRepository(gormDB)

		orderA := uuid.New()
		orderB := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "shipments" WHERE tracking_pin <> '' AND state NOT IN \(\$1,\$2\) AND order_id IN \(\$3,\$4\) ORDER BY created_at`).
			WithArgs("completed", "canceled", orderA, orderB).
			WillReturnRows(sqlmock.NewRows(shipmentColumns()))

		shipments, err := repo.FindForTracking(context.Background(), []uuid.UUID{orderA, orderB})

		require.NoError(t, err)
		assert.Empty(t, shipments)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormShipmentRepository_Save(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormShipmentRepository(gormDB)

	shipment := &shipping.Shipment{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    uuid.New(),
		StoreID:    uuid.New(),
		State:      shipping.ShipmentStateShipped,
	}

	// Save on an entity with a populated ID issues an UPDATE
	mock.ExpectExec(`UPDATE "shipments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), shipment)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
