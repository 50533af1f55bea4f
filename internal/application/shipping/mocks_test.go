package shipping

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/maplecart/backend/internal/domain/shipping"
)

// MockSitewideSettingsRepository is a mock implementation of SitewideSettingsRepository
type MockSitewideSettingsRepository struct {
	mock.Mock
}

func (m *MockSitewideSettingsRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSitewideSettingsRepository) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// MockCarrierGateway is a mock implementation of CarrierGateway
type MockCarrierGateway struct {
	mock.Mock
}

func (m *MockCarrierGateway) GetRates(ctx context.Context, cfg shipping.ClientConfig, req shipping.RateQuoteRequest) (*shipping.RateResponse, error) {
	args := m.Called(ctx, cfg, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.RateResponse), args.Error(1)
}

func (m *MockCarrierGateway) GetTrackingSummary(ctx context.Context, cfg shipping.ClientConfig, pin string) (*shipping.TrackingResponse, error) {
	args := m.Called(ctx, cfg, pin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.TrackingResponse), args.Error(1)
}

// MockStoreRepository is a mock implementation of StoreRepository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) Save(ctx context.Context, store *shipping.Store) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.Store), args.Error(1)
}

func (m *MockStoreRepository) FindAll(ctx context.Context, offset, limit int) ([]*shipping.Store, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*shipping.Store), args.Get(1).(int64), args.Error(2)
}

func (m *MockStoreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockShipmentRepository is a mock implementation of ShipmentRepository
type MockShipmentRepository struct {
	mock.Mock
}

func (m *MockShipmentRepository) Save(ctx context.Context, shipment *shipping.Shipment) error {
	args := m.Called(ctx, shipment)
	return args.Error(0)
}

func (m *MockShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*shipping.Shipment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipping.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindForTracking(ctx context.Context, orderIDs []uuid.UUID) ([]*shipping.Shipment, error) {
	args := m.Called(ctx, orderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipping.Shipment), args.Error(1)
}
