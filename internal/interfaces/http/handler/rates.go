package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maplecart/backend/internal/domain/shared/valueobject"
	"github.com/maplecart/backend/internal/domain/shipping"
	"github.com/maplecart/backend/internal/interfaces/http/dto"
	"github.com/maplecart/backend/internal/interfaces/http/middleware"
)

// rateQuoter requests carrier rates for a shipment
type rateQuoter interface {
	GetRates(ctx context.Context, store *shipping.Store, method *shipping.ShippingMethod, shipment *shipping.Shipment) []shipping.ShippingRate
}

// RatesHandler handles rate quoting and carrier service catalog endpoints
type RatesHandler struct {
	BaseHandler
	rating  rateQuoter
	stores  shipping.StoreRepository
	methods shipping.ShippingMethodRepository
	logger  *zap.Logger
}

// NewRatesHandler creates a new RatesHandler
func NewRatesHandler(
	rating rateQuoter,
	stores shipping.StoreRepository,
	methods shipping.ShippingMethodRepository,
	logger *zap.Logger,
) *RatesHandler {
	return &RatesHandler{
		rating:  rating,
		stores:  stores,
		methods: methods,
		logger:  logger,
	}
}

// RegisterRoutes registers rating routes
func (h *RatesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rates := rg.Group("/rates")
	{
		rates.POST("/quote", h.Quote)
		rates.GET("/services", h.Services)
		rates.GET("/options", h.Options)
	}
}

// Quote returns priced carrier services for a destination and weight.
// A quote that cannot be priced yields an empty rate list, never an error.
func (h *RatesHandler) Quote(c *gin.Context) {
	var req dto.RateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}
	methodID, err := uuid.Parse(req.MethodID)
	if err != nil {
		h.BadRequest(c, "Invalid shipping method ID")
		return
	}

	store, err := h.stores.FindByID(c.Request.Context(), storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	method, err := h.methods.FindByID(c.Request.Context(), methodID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	unit := valueobject.Kilogram
	if req.Weight.Unit != "" {
		unit, err = valueobject.ParseWeightUnit(req.Weight.Unit)
		if err != nil {
			h.BadRequest(c, "Invalid weight unit")
			return
		}
	}
	weight, err := valueobject.NewWeight(req.Weight.Value, unit)
	if err != nil {
		h.BadRequest(c, "Invalid weight")
		return
	}

	destination := valueobject.RehydrateAddress(
		"", "",
		req.Destination.City,
		req.Destination.Province,
		valueobject.NormalizePostalCode(req.Destination.PostalCode),
		req.Destination.Country,
	)

	shipment := &shipping.Shipment{
		Destination: destination,
		Weight:      weight,
	}

	rates := h.rating.GetRates(c.Request.Context(), store, method, shipment)

	responses := make([]dto.RateResponse, len(rates))
	for i, rate := range rates {
		responses[i] = dto.RateResponse{
			ServiceCode: rate.ServiceCode,
			ServiceName: rate.ServiceName,
			Amount:      rate.Amount.Amount().StringFixed(2),
			Currency:    string(rate.Amount.Currency()),
		}
	}

	h.Success(c, responses)
}

// Services returns the carrier service catalog
func (h *RatesHandler) Services(c *gin.Context) {
	h.Success(c, toServiceResponses(shipping.Services()))
}

// Options returns the catalog of rating option codes
func (h *RatesHandler) Options(c *gin.Context) {
	h.Success(c, toServiceResponses(shipping.RateOptions()))
}

func toServiceResponses(services []shipping.ShippingService) []dto.ServiceResponse {
	responses := make([]dto.ServiceResponse, len(services))
	for i, service := range services {
		responses[i] = dto.ServiceResponse{
			Code:  service.Code,
			Label: service.Label,
		}
	}
	return responses
}
