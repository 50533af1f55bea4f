package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maplecart/backend/internal/domain/shared/valueobject"
	"github.com/maplecart/backend/internal/domain/shipping"
	"github.com/maplecart/backend/internal/interfaces/http/dto"
	"github.com/maplecart/backend/internal/interfaces/http/middleware"
)

// ShippingMethodHandler handles shipping method endpoints
type ShippingMethodHandler struct {
	BaseHandler
	methods shipping.ShippingMethodRepository
	logger  *zap.Logger
}

// NewShippingMethodHandler creates a new ShippingMethodHandler
func NewShippingMethodHandler(methods shipping.ShippingMethodRepository, logger *zap.Logger) *ShippingMethodHandler {
	return &ShippingMethodHandler{
		methods: methods,
		logger:  logger,
	}
}

// RegisterRoutes registers shipping method routes
func (h *ShippingMethodHandler) RegisterRoutes(rg *gin.RouterGroup) {
	methods := rg.Group("/shipping-methods")
	{
		methods.GET("", h.ListEnabled)
		methods.POST("", h.Create)
		methods.GET("/:id", h.Get)
		methods.PUT("/:id", h.Update)
		methods.PUT("/:id/carrier-settings", h.UpdateCarrierSettings)
		methods.DELETE("/:id/carrier-settings", h.DeleteCarrierSettings)
	}
}

// ListEnabled returns all enabled shipping methods
func (h *ShippingMethodHandler) ListEnabled(c *gin.Context) {
	methods, err := h.methods.FindEnabled(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list shipping methods", zap.Error(err))
		h.InternalError(c, "Failed to list shipping methods")
		return
	}

	responses := make([]dto.ShippingMethodResponse, len(methods))
	for i, method := range methods {
		responses[i] = toShippingMethodResponse(method)
	}

	h.Success(c, responses)
}

// Get returns a single shipping method
func (h *ShippingMethodHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	method, err := h.methods.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toShippingMethodResponse(method))
}

// Create creates a new shipping method
func (h *ShippingMethodHandler) Create(c *gin.Context) {
	var req dto.CreateShippingMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	method, err := shipping.NewShippingMethod(req.Name, req.ServiceCodes)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	method.OptionCodes = req.OptionCodes
	method.OriginPostalCode = valueobject.NormalizePostalCode(req.OriginPostalCode)

	if err := h.methods.Save(c.Request.Context(), method); err != nil {
		h.logger.Error("Failed to save shipping method", zap.Error(err))
		h.InternalError(c, "Failed to save shipping method")
		return
	}

	h.Created(c, toShippingMethodResponse(method))
}

// Update updates a shipping method
func (h *ShippingMethodHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateShippingMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	method, err := h.methods.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	for _, code := range req.ServiceCodes {
		if !shipping.IsKnownServiceCode(code) {
			h.BadRequest(c, "Unknown carrier service code: "+code)
			return
		}
	}

	method.Name = req.Name
	method.ServiceCodes = req.ServiceCodes
	method.OptionCodes = req.OptionCodes
	method.OriginPostalCode = valueobject.NormalizePostalCode(req.OriginPostalCode)
	method.Enabled = req.Enabled
	method.Touch()

	if err := h.methods.Save(c.Request.Context(), method); err != nil {
		h.logger.Error("Failed to save shipping method", zap.Error(err))
		h.InternalError(c, "Failed to save shipping method")
		return
	}

	h.Success(c, toShippingMethodResponse(method))
}

// UpdateCarrierSettings replaces the method-level carrier settings override
func (h *ShippingMethodHandler) UpdateCarrierSettings(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.CarrierSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	method, err := h.methods.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	method.API = toAPISettings(req)
	method.Touch()

	if err := h.methods.Save(c.Request.Context(), method); err != nil {
		h.logger.Error("Failed to save shipping method", zap.Error(err))
		h.InternalError(c, "Failed to save shipping method")
		return
	}

	h.Success(c, toCarrierSettingsResponse(method.API.Redacted()))
}

// DeleteCarrierSettings removes the method-level override so store or
// sitewide settings apply
func (h *ShippingMethodHandler) DeleteCarrierSettings(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	method, err := h.methods.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	method.ClearAPISettings()

	if err := h.methods.Save(c.Request.Context(), method); err != nil {
		h.logger.Error("Failed to save shipping method", zap.Error(err))
		h.InternalError(c, "Failed to save shipping method")
		return
	}

	h.NoContent(c)
}

// parseID parses the :id path parameter
func (h *ShippingMethodHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shipping method ID")
		return uuid.Nil, false
	}
	return id, true
}

func toShippingMethodResponse(method *shipping.ShippingMethod) dto.ShippingMethodResponse {
	return dto.ShippingMethodResponse{
		ID:               method.ID.String(),
		Name:             method.Name,
		ServiceCodes:     method.ServiceCodes,
		OptionCodes:      method.OptionCodes,
		OriginPostalCode: method.OriginPostalCode,
		Enabled:          method.Enabled,
		APIConfigured:    method.APIIsConfigured(),
		TimestampResponse: dto.TimestampResponse{
			CreatedAt: method.CreatedAt,
			UpdatedAt: method.UpdatedAt,
		},
	}
}
