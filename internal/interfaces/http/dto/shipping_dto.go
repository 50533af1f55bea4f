package dto

import (
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Address
// ---------------------------------------------------------------------------

// AddressRequest carries an address in a request body
type AddressRequest struct {
	Line1      string `json:"line1" binding:"required,max=255"`
	Line2      string `json:"line2" binding:"omitempty,max=255"`
	City       string `json:"city" binding:"required,max=100"`
	Province   string `json:"province" binding:"required,max=10"`
	PostalCode string `json:"postal_code" binding:"required,postal_code"`
	Country    string `json:"country" binding:"omitempty,len=2"`
}

// AddressResponse carries an address in a response body
type AddressResponse struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// ---------------------------------------------------------------------------
// Store
// ---------------------------------------------------------------------------

// CreateStoreRequest creates a new store
type CreateStoreRequest struct {
	Name    string         `json:"name" binding:"required,max=255"`
	Address AddressRequest `json:"address" binding:"required"`
}

// UpdateStoreRequest updates a store's name and address
type UpdateStoreRequest struct {
	Name    string         `json:"name" binding:"required,max=255"`
	Address AddressRequest `json:"address" binding:"required"`
}

// StoreResponse represents a store in responses
type StoreResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Address            AddressResponse `json:"address"`
	HasCarrierSettings bool            `json:"has_carrier_settings"`
	TimestampResponse
}

// ---------------------------------------------------------------------------
// Carrier settings
// ---------------------------------------------------------------------------

// LogSettingsDTO carries the diagnostic logging flags of a settings tier
type LogSettingsDTO struct {
	Request  bool `json:"request"`
	Response bool `json:"response"`
}

// CarrierSettingsRequest updates carrier API settings on a store or method
type CarrierSettingsRequest struct {
	CustomerNumber string         `json:"customer_number" binding:"required,max=20"`
	Username       string         `json:"username" binding:"required,max=100"`
	Password       string         `json:"password" binding:"required,max=100"`
	ContractID     string         `json:"contract_id" binding:"omitempty,max=20"`
	Mode           string         `json:"mode" binding:"required,oneof=test live"`
	Log            LogSettingsDTO `json:"log"`
}

// CarrierSettingsResponse represents carrier API settings with the password
// already masked
type CarrierSettingsResponse struct {
	CustomerNumber string         `json:"customer_number"`
	Username       string         `json:"username"`
	Password       string         `json:"password"`
	ContractID     string         `json:"contract_id,omitempty"`
	Mode           string         `json:"mode"`
	Log            LogSettingsDTO `json:"log"`
}

// ---------------------------------------------------------------------------
// Shipping method
// ---------------------------------------------------------------------------

// CreateShippingMethodRequest creates a shipping method
type CreateShippingMethodRequest struct {
	Name             string   `json:"name" binding:"required,max=255"`
	ServiceCodes     []string `json:"service_codes" binding:"required,min=1"`
	OptionCodes      []string `json:"option_codes"`
	OriginPostalCode string   `json:"origin_postal_code" binding:"omitempty,postal_code"`
}

// UpdateShippingMethodRequest updates a shipping method
type UpdateShippingMethodRequest struct {
	Name             string   `json:"name" binding:"required,max=255"`
	ServiceCodes     []string `json:"service_codes" binding:"required,min=1"`
	OptionCodes      []string `json:"option_codes"`
	OriginPostalCode string   `json:"origin_postal_code" binding:"omitempty,postal_code"`
	Enabled          bool     `json:"enabled"`
}

// ShippingMethodResponse represents a shipping method in responses
type ShippingMethodResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	ServiceCodes     []string `json:"service_codes"`
	OptionCodes      []string `json:"option_codes,omitempty"`
	OriginPostalCode string   `json:"origin_postal_code,omitempty"`
	Enabled          bool     `json:"enabled"`
	APIConfigured    bool     `json:"api_configured"`
	TimestampResponse
}

// ServiceResponse represents a carrier service or rating option
type ServiceResponse struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// ---------------------------------------------------------------------------
// Rating
// ---------------------------------------------------------------------------

// WeightRequest carries a parcel weight
type WeightRequest struct {
	Value decimal.Decimal `json:"value" binding:"required"`
	Unit  string          `json:"unit" binding:"omitempty,oneof=kg g lb oz"`
}

// RateQuoteRequest requests shipping rates for a destination and weight
type RateQuoteRequest struct {
	StoreID  string `json:"store_id" binding:"required,uuid"`
	MethodID string `json:"method_id" binding:"required,uuid"`

	Destination struct {
		City       string `json:"city" binding:"omitempty,max=100"`
		Province   string `json:"province" binding:"omitempty,max=10"`
		PostalCode string `json:"postal_code" binding:"required"`
		Country    string `json:"country" binding:"omitempty,len=2"`
	} `json:"destination" binding:"required"`

	Weight WeightRequest `json:"weight" binding:"required"`
}

// RateResponse represents a single priced service option
type RateResponse struct {
	ServiceCode string `json:"service_code"`
	ServiceName string `json:"service_name"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
}

// ---------------------------------------------------------------------------
// Tracking
// ---------------------------------------------------------------------------

// TrackingSummaryResponse represents the latest tracking summary for a pin
type TrackingSummaryResponse struct {
	Pin                  string `json:"pin"`
	ActualDeliveryDate   string `json:"actual_delivery_date,omitempty"`
	AttemptedDate        string `json:"attempted_date,omitempty"`
	ExpectedDeliveryDate string `json:"expected_delivery_date,omitempty"`
	MailedOnDate         string `json:"mailed_on_date,omitempty"`
	EventLocation        string `json:"event_location,omitempty"`
}

// TrackingRefreshRequest scopes a tracking refresh to specific orders.
// An empty order list refreshes every open shipment with a pin.
type TrackingRefreshRequest struct {
	OrderIDs []string `json:"order_ids" binding:"omitempty,dive,uuid"`
}

// TrackingRefreshResponse reports the outcome of a refresh cycle
type TrackingRefreshResponse struct {
	Refreshed       int      `json:"refreshed"`
	Failed          int      `json:"failed"`
	UpdatedOrderIDs []string `json:"updated_order_ids"`
}
