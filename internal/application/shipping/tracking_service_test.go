package shipping

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/maplecart/backend/internal/domain/shared/valueobject"
	"github.com/maplecart/backend/internal/domain/shipping"
)

func newTrackingFixture(t *testing.T) (*TrackingService, *MockCarrierGateway, *MockShipmentRepository, *MockStoreRepository) {
	t.Helper()
	gateway := new(MockCarrierGateway)
	shipments := new(MockShipmentRepository)
	stores := new(MockStoreRepository)
	sitewide := new(MockSitewideSettingsRepository)
	resolver := NewSettingsResolver(sitewide, zap.NewNop())
	svc := NewTrackingService(gateway, resolver, shipments, stores, zap.NewNop())
	return svc, gateway, shipments, stores
}

func newTrackedShipment(t *testing.T, store *shipping.Store, pin string) *shipping.Shipment {
	t.Helper()
	dest := valueobject.MustNewAddress("100 Main St", "Whitehorse", "YT", "Y1A 2C6")
	weight := valueobject.MustNewWeight(decimal.NewFromInt(1), valueobject.Kilogram)
	shipment, err := shipping.NewShipment(uuid.New(), store.ID, dest, weight)
	require.NoError(t, err)
	shipment.State = shipping.ShipmentStateShipped
	shipment.TrackingPIN = pin
	return shipment
}

func TestTrackingService_FetchSummary(t *testing.T) {
	svc, gateway, _, _ := newTrackingFixture(t)

	store := newTestStore(t)
	require.NoError(t, store.SetCarrierSettings(testStoreSettings()))

	gateway.On("GetTrackingSummary", mock.Anything, mock.Anything, "1681334332936901").
		Return(&shipping.TrackingResponse{
			PinSummary: &shipping.PinSummary{
				ExpectedDeliveryDate: "2026-09-04",
				MailedOnDate:         "2026-08-31",
				EventLocation:        "RICHMOND",
			},
		}, nil)

	summary, err := svc.FetchSummary(context.Background(), store, nil, "1681334332936901")
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, "2026-09-04", summary.ExpectedDeliveryDate)
	assert.Equal(t, "2026-08-31", summary.MailedOnDate)
	assert.Equal(t, "RICHMOND", summary.EventLocation)
	assert.Empty(t, summary.ActualDeliveryDate)
}

func TestTrackingService_FetchSummary_NoSummary(t *testing.T) {
	svc, gateway, _, _ := newTrackingFixture(t)

	store := newTestStore(t)
	require.NoError(t, store.SetCarrierSettings(testStoreSettings()))

	gateway.On("GetTrackingSummary", mock.Anything, mock.Anything, mock.Anything).
		Return(&shipping.TrackingResponse{}, nil)

	summary, err := svc.FetchSummary(context.Background(), store, nil, "0000000000000000")
	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestTrackingService_FetchSummary_EmptyPin(t *testing.T) {
	svc, gateway, _, _ := newTrackingFixture(t)

	_, err := svc.FetchSummary(context.Background(), newTestStore(t), nil, "")
	assert.Error(t, err)
	gateway.AssertNotCalled(t, "GetTrackingSummary", mock.Anything, mock.Anything, mock.Anything)
}

func TestTrackingService_FetchSummary_CarrierClientError(t *testing.T) {
	svc, gateway, _, _ := newTrackingFixture(t)

	store := newTestStore(t)
	require.NoError(t, store.SetCarrierSettings(testStoreSettings()))

	gateway.On("GetTrackingSummary", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &shipping.ClientError{StatusCode: 404, Code: "004", Body: "No Pin History"})

	summary, err := svc.FetchSummary(context.Background(), store, nil, "9999999999999999")

	// An unknown pin means no tracking data, not a failure
	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestTrackingService_RefreshAll(t *testing.T) {
	svc, gateway, shipments, stores := newTrackingFixture(t)

	store := newTestStore(t)
	require.NoError(t, store.SetCarrierSettings(testStoreSettings()))

	good := newTrackedShipment(t, store, "1681334332936901")
	unknown := newTrackedShipment(t, store, "9999999999999999")

	shipments.On("FindForTracking", mock.Anything, []uuid.UUID(nil)).
		Return([]*shipping.Shipment{good, unknown}, nil)
	stores.On("FindByID", mock.Anything, store.ID).Return(store, nil)

	gateway.On("GetTrackingSummary", mock.Anything, mock.Anything, good.TrackingPIN).
		Return(&shipping.TrackingResponse{
			PinSummary: &shipping.PinSummary{ActualDeliveryDate: "2026-09-03"},
		}, nil)
	gateway.On("GetTrackingSummary", mock.Anything, mock.Anything, unknown.TrackingPIN).
		Return(nil, &shipping.ClientError{StatusCode: 404, Code: "004", Body: "No Pin History"})

	shipments.On("Save", mock.Anything, good).Return(nil)

	result, err := svc.RefreshAll(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Refreshed)
	assert.Zero(t, result.Failed)
	assert.Equal(t, []uuid.UUID{good.OrderID}, result.UpdatedOrderIDs)
	assert.Equal(t, "2026-09-03", good.ActualDelivery)
	shipments.AssertExpectations(t)
}

func TestTrackingService_RefreshAll_UpdatedOrdersInProcessingOrder(t *testing.T) {
	svc, gateway, shipments, stores := newTrackingFixture(t)

	store := newTestStore(t)
	require.NoError(t, store.SetCarrierSettings(testStoreSettings()))

	// Order IDs chosen so lexicographic order would reverse them
	first := newTrackedShipment(t, store, "1681334332936901")
	first.OrderID = uuid.MustParse("ffffffff-0000-0000-0000-000000000001")
	second := newTrackedShipment(t, store, "1681334332936902")
	second.OrderID = uuid.MustParse("00000000-0000-0000-0000-000000000003")
	again := newTrackedShipment(t, store, "1681334332936903")
	again.OrderID = first.OrderID

	shipments.On("FindForTracking", mock.Anything, []uuid.UUID(nil)).
		Return([]*shipping.Shipment{first, second, again}, nil)
	stores.On("FindByID", mock.Anything, store.ID).Return(store, nil)
	gateway.On("GetTrackingSummary", mock.Anything, mock.Anything, mock.Anything).
		Return(&shipping.TrackingResponse{
			PinSummary: &shipping.PinSummary{ActualDeliveryDate: "2026-09-03"},
		}, nil)
	shipments.On("Save", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.RefreshAll(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Refreshed)
	assert.Equal(t, []uuid.UUID{first.OrderID, second.OrderID}, result.UpdatedOrderIDs)
}

func TestTrackingService_RefreshAll_OrderFilterPassedThrough(t *testing.T) {
	svc, _, shipments, _ := newTrackingFixture(t)

	orderIDs := []uuid.UUID{uuid.New(), uuid.New()}
	shipments.On("FindForTracking", mock.Anything, orderIDs).
		Return([]*shipping.Shipment{}, nil)

	result, err := svc.RefreshAll(context.Background(), orderIDs)
	require.NoError(t, err)
	assert.Zero(t, result.Refreshed)
	assert.Empty(t, result.UpdatedOrderIDs)
	shipments.AssertExpectations(t)
}

func TestTrackingService_RefreshAll_EmptySummarySkipsSave(t *testing.T) {
	svc, gateway, shipments, stores := newTrackingFixture(t)

	store := newTestStore(t)
	require.NoError(t, store.SetCarrierSettings(testStoreSettings()))
	shipment := newTrackedShipment(t, store, "1681334332936901")

	shipments.On("FindForTracking", mock.Anything, []uuid.UUID(nil)).
		Return([]*shipping.Shipment{shipment}, nil)
	stores.On("FindByID", mock.Anything, store.ID).Return(store, nil)
	gateway.On("GetTrackingSummary", mock.Anything, mock.Anything, mock.Anything).
		Return(&shipping.TrackingResponse{PinSummary: &shipping.PinSummary{}}, nil)

	result, err := svc.RefreshAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, result.Refreshed)
	shipments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
