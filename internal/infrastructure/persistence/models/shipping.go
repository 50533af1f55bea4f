package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maplecart/backend/internal/domain/shared/valueobject"
	"github.com/maplecart/backend/internal/domain/shipping"
)

// StoreModel is the persistence model for the Store domain entity.
type StoreModel struct {
	BaseModel
	Name string `gorm:"type:varchar(255);not null"`

	AddressLine1      string `gorm:"type:varchar(255)"`
	AddressLine2      string `gorm:"type:varchar(255)"`
	AddressCity       string `gorm:"type:varchar(100)"`
	AddressProvince   string `gorm:"type:varchar(10)"`
	AddressPostalCode string `gorm:"type:varchar(20)"`
	AddressCountry    string `gorm:"type:varchar(2)"`

	// CarrierSettings is the store-level API settings override, stored as
	// an opaque JSON blob. Empty means no override.
	CarrierSettings string `gorm:"type:jsonb;column:carrier_settings"`
}

// TableName returns the table name for GORM
func (StoreModel) TableName() string {
	return "stores"
}

// ToDomain converts the persistence model to a domain Store entity.
func (m *StoreModel) ToDomain() *shipping.Store {
	return &shipping.Store{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Address: valueobject.RehydrateAddress(
			m.AddressLine1, m.AddressLine2, m.AddressCity,
			m.AddressProvince, m.AddressPostalCode, m.AddressCountry,
		),
		CarrierSettingsBlob: m.CarrierSettings,
	}
}

// FromDomain populates the persistence model from a domain Store entity.
func (m *StoreModel) FromDomain(s *shipping.Store) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Name = s.Name
	m.AddressLine1 = s.Address.Line1()
	m.AddressLine2 = s.Address.Line2()
	m.AddressCity = s.Address.City()
	m.AddressProvince = s.Address.Province()
	m.AddressPostalCode = s.Address.PostalCode()
	m.AddressCountry = s.Address.Country()
	m.CarrierSettings = s.CarrierSettingsBlob
}

// ShippingMethodModel is the persistence model for the ShippingMethod domain entity.
type ShippingMethodModel struct {
	BaseModel
	Name string `gorm:"type:varchar(255);not null"`

	// APISettings is the method-level settings override as a JSON blob.
	APISettings string `gorm:"type:jsonb;column:api_settings"`

	OriginPostalCode string `gorm:"type:varchar(20)"`
	OptionCodesJSON  string `gorm:"type:jsonb;column:option_codes"`
	ServiceCodesJSON string `gorm:"type:jsonb;column:service_codes"`
	Enabled          bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ShippingMethodModel) TableName() string {
	return "shipping_methods"
}

// ToDomain converts the persistence model to a domain ShippingMethod entity.
func (m *ShippingMethodModel) ToDomain() *shipping.ShippingMethod {
	method := &shipping.ShippingMethod{
		BaseEntity:       m.BaseModel.ToDomain(),
		Name:             m.Name,
		OriginPostalCode: m.OriginPostalCode,
		Enabled:          m.Enabled,
	}

	if m.APISettings != "" {
		if settings, err := shipping.DecodeSettingsBlob(m.APISettings); err == nil {
			method.API = settings
		}
	}
	method.OptionCodes = decodeStringList(m.OptionCodesJSON)
	method.ServiceCodes = decodeStringList(m.ServiceCodesJSON)

	return method
}

// FromDomain populates the persistence model from a domain ShippingMethod entity.
func (m *ShippingMethodModel) FromDomain(method *shipping.ShippingMethod) error {
	m.FromDomainBaseEntity(method.BaseEntity)
	m.Name = method.Name
	m.OriginPostalCode = method.OriginPostalCode
	m.Enabled = method.Enabled

	if method.API.IsZero() {
		m.APISettings = ""
	} else {
		blob, err := method.API.EncodeBlob()
		if err != nil {
			return err
		}
		m.APISettings = blob
	}

	var err error
	if m.OptionCodesJSON, err = encodeStringList(method.OptionCodes); err != nil {
		return err
	}
	if m.ServiceCodesJSON, err = encodeStringList(method.ServiceCodes); err != nil {
		return err
	}
	return nil
}

// ShipmentModel is the persistence model for the Shipment domain entity.
type ShipmentModel struct {
	BaseModel
	OrderID uuid.UUID `gorm:"type:uuid;not null;index:idx_shipments_order"`
	StoreID uuid.UUID `gorm:"type:uuid;not null;index:idx_shipments_store"`
	State   string    `gorm:"type:varchar(20);not null;index:idx_shipments_state"`

	TrackingPIN string `gorm:"type:varchar(50);column:tracking_pin;index:idx_shipments_tracking_pin"`

	DestinationLine1      string `gorm:"type:varchar(255)"`
	DestinationLine2      string `gorm:"type:varchar(255)"`
	DestinationCity       string `gorm:"type:varchar(100)"`
	DestinationProvince   string `gorm:"type:varchar(10)"`
	DestinationPostalCode string `gorm:"type:varchar(20)"`
	DestinationCountry    string `gorm:"type:varchar(2)"`

	WeightValue decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	WeightUnit  string          `gorm:"type:varchar(5);not null;default:'kg'"`

	// Tracking-derived fields hold carrier-formatted strings verbatim.
	ActualDelivery    string `gorm:"type:varchar(50)"`
	AttemptedDelivery string `gorm:"type:varchar(50)"`
	ExpectedDelivery  string `gorm:"type:varchar(50)"`
	MailedOn          string `gorm:"type:varchar(50)"`
	CurrentLocation   string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (ShipmentModel) TableName() string {
	return "shipments"
}

// ToDomain converts the persistence model to a domain Shipment entity.
func (m *ShipmentModel) ToDomain() *shipping.Shipment {
	return &shipping.Shipment{
		BaseEntity:  m.BaseModel.ToDomain(),
		OrderID:     m.OrderID,
		StoreID:     m.StoreID,
		State:       shipping.ShipmentState(m.State),
		TrackingPIN: m.TrackingPIN,
		Destination: valueobject.RehydrateAddress(
			m.DestinationLine1, m.DestinationLine2, m.DestinationCity,
			m.DestinationProvince, m.DestinationPostalCode, m.DestinationCountry,
		),
		Weight:            valueobject.RehydrateWeight(m.WeightValue, valueobject.WeightUnit(m.WeightUnit)),
		ActualDelivery:    m.ActualDelivery,
		AttemptedDelivery: m.AttemptedDelivery,
		ExpectedDelivery:  m.ExpectedDelivery,
		MailedOn:          m.MailedOn,
		CurrentLocation:   m.CurrentLocation,
	}
}

// FromDomain populates the persistence model from a domain Shipment entity.
func (m *ShipmentModel) FromDomain(s *shipping.Shipment) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.OrderID = s.OrderID
	m.StoreID = s.StoreID
	m.State = s.State.String()
	m.TrackingPIN = s.TrackingPIN
	m.DestinationLine1 = s.Destination.Line1()
	m.DestinationLine2 = s.Destination.Line2()
	m.DestinationCity = s.Destination.City()
	m.DestinationProvince = s.Destination.Province()
	m.DestinationPostalCode = s.Destination.PostalCode()
	m.DestinationCountry = s.Destination.Country()
	m.WeightValue = s.Weight.Value()
	m.WeightUnit = string(s.Weight.Unit())
	m.ActualDelivery = s.ActualDelivery
	m.AttemptedDelivery = s.AttemptedDelivery
	m.ExpectedDelivery = s.ExpectedDelivery
	m.MailedOn = s.MailedOn
	m.CurrentLocation = s.CurrentLocation
}

// SiteSettingModel is the persistence model for one sitewide settings entry.
type SiteSettingModel struct {
	Key       string    `gorm:"type:varchar(255);primary_key"`
	Value     string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SiteSettingModel) TableName() string {
	return "site_settings"
}

// decodeStringList parses a JSON array column into a string slice.
func decodeStringList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

// encodeStringList serializes a string slice as a JSON array column.
func encodeStringList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
