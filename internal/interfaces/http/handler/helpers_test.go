package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appshipping "github.com/maplecart/backend/internal/application/shipping"
	"github.com/maplecart/backend/internal/domain/shared"
	"github.com/maplecart/backend/internal/domain/shared/valueobject"
	"github.com/maplecart/backend/internal/domain/shipping"
	"github.com/maplecart/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// newTestRouter builds a versioned router and registers the given handlers
func newTestRouter(registrars ...interface {
	RegisterRoutes(rg *gin.RouterGroup)
}) *gin.Engine {
	router := gin.New()
	api := router.Group("/api/v1")
	for _, registrar := range registrars {
		registrar.RegisterRoutes(api)
	}
	return router
}

func serveJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ---------------------------------------------------------------------------
// Repository fakes
// ---------------------------------------------------------------------------

type fakeStoreRepository struct {
	stores    map[uuid.UUID]*shipping.Store
	returnErr error
}

func newFakeStoreRepository() *fakeStoreRepository {
	return &fakeStoreRepository{stores: make(map[uuid.UUID]*shipping.Store)}
}

func (f *fakeStoreRepository) Save(ctx context.Context, store *shipping.Store) error {
	if f.returnErr != nil {
		return f.returnErr
	}
	f.stores[store.ID] = store
	return nil
}

func (f *fakeStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.Store, error) {
	if f.returnErr != nil {
		return nil, f.returnErr
	}
	if store, ok := f.stores[id]; ok {
		return store, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeStoreRepository) FindAll(ctx context.Context, offset, limit int) ([]*shipping.Store, int64, error) {
	if f.returnErr != nil {
		return nil, 0, f.returnErr
	}
	var result []*shipping.Store
	for _, store := range f.stores {
		result = append(result, store)
	}
	return result, int64(len(f.stores)), nil
}

func (f *fakeStoreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if f.returnErr != nil {
		return f.returnErr
	}
	delete(f.stores, id)
	return nil
}

type fakeMethodRepository struct {
	methods   map[uuid.UUID]*shipping.ShippingMethod
	returnErr error
}

func newFakeMethodRepository() *fakeMethodRepository {
	return &fakeMethodRepository{methods: make(map[uuid.UUID]*shipping.ShippingMethod)}
}

func (f *fakeMethodRepository) Save(ctx context.Context, method *shipping.ShippingMethod) error {
	if f.returnErr != nil {
		return f.returnErr
	}
	f.methods[method.ID] = method
	return nil
}

func (f *fakeMethodRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.ShippingMethod, error) {
	if f.returnErr != nil {
		return nil, f.returnErr
	}
	if method, ok := f.methods[id]; ok {
		return method, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeMethodRepository) FindEnabled(ctx context.Context) ([]*shipping.ShippingMethod, error) {
	if f.returnErr != nil {
		return nil, f.returnErr
	}
	var result []*shipping.ShippingMethod
	for _, method := range f.methods {
		if method.Enabled {
			result = append(result, method)
		}
	}
	return result, nil
}

func (f *fakeMethodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if f.returnErr != nil {
		return f.returnErr
	}
	delete(f.methods, id)
	return nil
}

// ---------------------------------------------------------------------------
// Service fakes
// ---------------------------------------------------------------------------

type fakeRateQuoter struct {
	rates        []shipping.ShippingRate
	lastStore    *shipping.Store
	lastMethod   *shipping.ShippingMethod
	lastShipment *shipping.Shipment
}

func (f *fakeRateQuoter) GetRates(ctx context.Context, store *shipping.Store, method *shipping.ShippingMethod, shipment *shipping.Shipment) []shipping.ShippingRate {
	f.lastStore = store
	f.lastMethod = method
	f.lastShipment = shipment
	return f.rates
}

type fakeTrackingService struct {
	summary      *shipping.TrackingSummary
	summaryErr   error
	result       appshipping.RefreshResult
	refreshErr   error
	lastPin      string
	lastStore    *shipping.Store
	lastOrderIDs []uuid.UUID
}

func (f *fakeTrackingService) FetchSummary(ctx context.Context, store *shipping.Store, method *shipping.ShippingMethod, pin string) (*shipping.TrackingSummary, error) {
	f.lastStore = store
	f.lastPin = pin
	return f.summary, f.summaryErr
}

func (f *fakeTrackingService) RefreshAll(ctx context.Context, orderIDs []uuid.UUID) (appshipping.RefreshResult, error) {
	f.lastOrderIDs = orderIDs
	return f.result, f.refreshErr
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func newTestStore() *shipping.Store {
	address := valueobject.MustNewAddress("100 Main St", "Kelowna", "BC", "V1X 5V1")
	store, _ := shipping.NewStore("Kelowna Outlet", address)
	return store
}

func newTestMethod() *shipping.ShippingMethod {
	method, _ := shipping.NewShippingMethod("Canada Post", []string{"DOM.EP"})
	return method
}

func nopLogger() *zap.Logger {
	return zap.NewNop()
}
