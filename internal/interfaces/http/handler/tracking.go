package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appshipping "github.com/maplecart/backend/internal/application/shipping"
	"github.com/maplecart/backend/internal/domain/shipping"
	"github.com/maplecart/backend/internal/interfaces/http/dto"
	"github.com/maplecart/backend/internal/interfaces/http/middleware"
)

// trackingService fetches carrier tracking summaries and refreshes
// open shipments
type trackingService interface {
	FetchSummary(ctx context.Context, store *shipping.Store, method *shipping.ShippingMethod, pin string) (*shipping.TrackingSummary, error)
	RefreshAll(ctx context.Context, orderIDs []uuid.UUID) (appshipping.RefreshResult, error)
}

// TrackingHandler handles tracking endpoints
type TrackingHandler struct {
	BaseHandler
	tracking trackingService
	stores   shipping.StoreRepository
	logger   *zap.Logger
}

// NewTrackingHandler creates a new TrackingHandler
func NewTrackingHandler(tracking trackingService, stores shipping.StoreRepository, logger *zap.Logger) *TrackingHandler {
	return &TrackingHandler{
		tracking: tracking,
		stores:   stores,
		logger:   logger,
	}
}

// RegisterRoutes registers tracking routes
func (h *TrackingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tracking := rg.Group("/tracking")
	{
		tracking.GET("/:pin/summary", h.GetSummary)
		tracking.POST("/refresh", h.Refresh)
	}
}

// GetSummary fetches the latest tracking summary for a pin. An optional
// store_id query parameter selects the settings tier; without it only the
// sitewide settings apply.
func (h *TrackingHandler) GetSummary(c *gin.Context) {
	pin := c.Param("pin")

	var store *shipping.Store
	if storeIDParam := c.Query("store_id"); storeIDParam != "" {
		storeID, err := uuid.Parse(storeIDParam)
		if err != nil {
			h.BadRequest(c, "Invalid store ID")
			return
		}
		store, err = h.stores.FindByID(c.Request.Context(), storeID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
	}

	summary, err := h.tracking.FetchSummary(c.Request.Context(), store, nil, pin)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if summary == nil {
		h.NotFound(c, "No tracking events for this pin")
		return
	}

	h.Success(c, dto.TrackingSummaryResponse{
		Pin:                  pin,
		ActualDeliveryDate:   summary.ActualDeliveryDate,
		AttemptedDate:        summary.AttemptedDate,
		ExpectedDeliveryDate: summary.ExpectedDeliveryDate,
		MailedOnDate:         summary.MailedOnDate,
		EventLocation:        summary.EventLocation,
	})
}

// Refresh runs a tracking refresh cycle, optionally scoped to a set of
// orders
func (h *TrackingHandler) Refresh(c *gin.Context) {
	var req dto.TrackingRefreshRequest
	// An empty body refreshes every open shipment
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.HandleValidationError(c, err)
			return
		}
	}

	orderIDs := make([]uuid.UUID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid order ID: "+raw)
			return
		}
		orderIDs = append(orderIDs, id)
	}

	result, err := h.tracking.RefreshAll(c.Request.Context(), orderIDs)
	if err != nil {
		h.logger.Error("Tracking refresh failed", zap.Error(err))
		h.HandleError(c, err)
		return
	}

	updated := make([]string, len(result.UpdatedOrderIDs))
	for i, id := range result.UpdatedOrderIDs {
		updated[i] = id.String()
	}

	h.Success(c, dto.TrackingRefreshResponse{
		Refreshed:       result.Refreshed,
		Failed:          result.Failed,
		UpdatedOrderIDs: updated,
	})
}
