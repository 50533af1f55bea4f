package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maplecart/backend/internal/domain/shipping"
	"github.com/maplecart/backend/internal/domain/shared/valueobject"
	"github.com/maplecart/backend/internal/interfaces/http/dto"
	"github.com/maplecart/backend/internal/interfaces/http/middleware"
)

// StoreHandler handles store and store carrier-settings endpoints
type StoreHandler struct {
	BaseHandler
	stores shipping.StoreRepository
	logger *zap.Logger
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(stores shipping.StoreRepository, logger *zap.Logger) *StoreHandler {
	return &StoreHandler{
		stores: stores,
		logger: logger,
	}
}

// RegisterRoutes registers store routes
func (h *StoreHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stores := rg.Group("/stores")
	{
		stores.GET("", h.List)
		stores.POST("", h.Create)
		stores.GET("/:id", h.Get)
		stores.PUT("/:id", h.Update)
		stores.GET("/:id/carrier-settings", h.GetCarrierSettings)
		stores.PUT("/:id/carrier-settings", h.UpdateCarrierSettings)
		stores.DELETE("/:id/carrier-settings", h.DeleteCarrierSettings)
	}
}

// List returns stores with pagination
func (h *StoreHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	offset := (req.Page - 1) * req.PageSize
	stores, total, err := h.stores.FindAll(c.Request.Context(), offset, req.PageSize)
	if err != nil {
		h.logger.Error("Failed to list stores", zap.Error(err))
		h.InternalError(c, "Failed to list stores")
		return
	}

	responses := make([]dto.StoreResponse, len(stores))
	for i, store := range stores {
		responses[i] = toStoreResponse(store)
	}

	h.SuccessWithMeta(c, responses, total, req.Page, req.PageSize)
}

// Get returns a single store
func (h *StoreHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	store, err := h.stores.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toStoreResponse(store))
}

// Create creates a new store
func (h *StoreHandler) Create(c *gin.Context) {
	var req dto.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	address, err := toAddress(req.Address)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	store, err := shipping.NewStore(req.Name, address)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.stores.Save(c.Request.Context(), store); err != nil {
		h.logger.Error("Failed to save store", zap.Error(err))
		h.InternalError(c, "Failed to save store")
		return
	}

	h.Created(c, toStoreResponse(store))
}

// Update updates a store's name and address
func (h *StoreHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	store, err := h.stores.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	address, err := toAddress(req.Address)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	store.Name = req.Name
	store.Address = address
	store.Touch()

	if err := h.stores.Save(c.Request.Context(), store); err != nil {
		h.logger.Error("Failed to save store", zap.Error(err))
		h.InternalError(c, "Failed to save store")
		return
	}

	h.Success(c, toStoreResponse(store))
}

// GetCarrierSettings returns the store-level carrier settings override,
// with the password masked
func (h *StoreHandler) GetCarrierSettings(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	store, err := h.stores.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if !store.HasCarrierSettings() {
		h.NotFound(c, "Store has no carrier settings override")
		return
	}

	settings, err := shipping.DecodeSettingsBlob(store.CarrierSettingsBlob)
	if err != nil {
		h.logger.Warn("Store carrier settings blob is malformed",
			zap.String("store_id", store.ID.String()),
			zap.Error(err))
		h.NotFound(c, "Store has no carrier settings override")
		return
	}

	h.Success(c, toCarrierSettingsResponse(settings.Redacted()))
}

// UpdateCarrierSettings replaces the store-level carrier settings override
func (h *StoreHandler) UpdateCarrierSettings(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.CarrierSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	store, err := h.stores.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := store.SetCarrierSettings(toAPISettings(req)); err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.stores.Save(c.Request.Context(), store); err != nil {
		h.logger.Error("Failed to save store", zap.Error(err))
		h.InternalError(c, "Failed to save store")
		return
	}

	h.Success(c, toCarrierSettingsResponse(toAPISettings(req).Redacted()))
}

// DeleteCarrierSettings removes the store-level override so the shipping
// method or sitewide settings apply
func (h *StoreHandler) DeleteCarrierSettings(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	store, err := h.stores.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	store.ClearCarrierSettings()

	if err := h.stores.Save(c.Request.Context(), store); err != nil {
		h.logger.Error("Failed to save store", zap.Error(err))
		h.InternalError(c, "Failed to save store")
		return
	}

	h.NoContent(c)
}

// parseID parses the :id path parameter
func (h *StoreHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return uuid.Nil, false
	}
	return id, true
}

// ---------------------------------------------------------------------------
// Conversions
// ---------------------------------------------------------------------------

func toAddress(req dto.AddressRequest) (valueobject.Address, error) {
	opts := []valueobject.AddressOption{}
	if req.Line2 != "" {
		opts = append(opts, valueobject.WithLine2(req.Line2))
	}
	if req.Country != "" {
		opts = append(opts, valueobject.WithCountry(req.Country))
	}
	return valueobject.NewAddress(req.Line1, req.City, req.Province, req.PostalCode, opts...)
}

func toAddressResponse(address valueobject.Address) dto.AddressResponse {
	return dto.AddressResponse{
		Line1:      address.Line1(),
		Line2:      address.Line2(),
		City:       address.City(),
		Province:   address.Province(),
		PostalCode: address.PostalCode(),
		Country:    address.Country(),
	}
}

func toStoreResponse(store *shipping.Store) dto.StoreResponse {
	return dto.StoreResponse{
		ID:                 store.ID.String(),
		Name:               store.Name,
		Address:            toAddressResponse(store.Address),
		HasCarrierSettings: store.HasCarrierSettings(),
		TimestampResponse: dto.TimestampResponse{
			CreatedAt: store.CreatedAt,
			UpdatedAt: store.UpdatedAt,
		},
	}
}

func toAPISettings(req dto.CarrierSettingsRequest) shipping.APISettings {
	return shipping.APISettings{
		CustomerNumber: req.CustomerNumber,
		Username:       req.Username,
		Password:       req.Password,
		ContractID:     req.ContractID,
		Mode:           req.Mode,
		Log: shipping.LogSettings{
			Request:  req.Log.Request,
			Response: req.Log.Response,
		},
	}
}

func toCarrierSettingsResponse(settings shipping.APISettings) dto.CarrierSettingsResponse {
	return dto.CarrierSettingsResponse{
		CustomerNumber: settings.CustomerNumber,
		Username:       settings.Username,
		Password:       settings.Password,
		ContractID:     settings.ContractID,
		Mode:           settings.Mode,
		Log: dto.LogSettingsDTO{
			Request:  settings.Log.Request,
			Response: settings.Log.Response,
		},
	}
}
