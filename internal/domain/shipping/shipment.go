package shipping

import (
	"github.com/google/uuid"

	"github.com/maplecart/backend/internal/domain/shared"
	"github.com/maplecart/backend/internal/domain/shared/valueobject"
)

// ShipmentState represents the delivery lifecycle state of a shipment
type ShipmentState string

const (
	ShipmentStateDraft     ShipmentState = "draft"
	ShipmentStateReady     ShipmentState = "ready"
	ShipmentStateShipped   ShipmentState = "shipped"
	ShipmentStateCompleted ShipmentState = "completed"
	ShipmentStateCanceled  ShipmentState = "canceled"
)

// IsValid checks if the state is a valid ShipmentState
func (s ShipmentState) IsValid() bool {
	switch s {
	case ShipmentStateDraft, ShipmentStateReady, ShipmentStateShipped,
		ShipmentStateCompleted, ShipmentStateCanceled:
		return true
	}
	return false
}

// IsTerminal reports whether the shipment no longer needs tracking updates.
func (s ShipmentState) IsTerminal() bool {
	return s == ShipmentStateCompleted || s == ShipmentStateCanceled
}

// String returns the string representation of ShipmentState
func (s ShipmentState) String() string {
	return string(s)
}

// TrackingSummary is the carrier's latest known delivery-lifecycle facts
// for a tracking pin. All fields are optional; values are carrier-formatted
// strings stored verbatim.
type TrackingSummary struct {
	ActualDeliveryDate   string
	AttemptedDate        string
	ExpectedDeliveryDate string
	MailedOnDate         string
	EventLocation        string
}

// IsZero reports whether the summary carries no data at all.
func (t TrackingSummary) IsZero() bool {
	return t == TrackingSummary{}
}

// Shipment is a carrier shipment for one order. The tracking-derived fields
// hold the carrier's delivery facts verbatim and are only ever overwritten
// by non-empty incoming values.
type Shipment struct {
	shared.BaseEntity
	OrderID uuid.UUID
	StoreID uuid.UUID
	State   ShipmentState

	// TrackingPIN is the carrier tracking identifier, empty until the
	// shipment is inducted.
	TrackingPIN string

	// Destination is the first shipping-profile address of the order.
	Destination valueobject.Address
	Weight      valueobject.Weight

	// Tracking-derived fields, refreshed from the carrier.
	ActualDelivery    string
	AttemptedDelivery string
	ExpectedDelivery  string
	MailedOn          string
	CurrentLocation   string
}

// NewShipment creates a new shipment for an order
func NewShipment(orderID, storeID uuid.UUID, destination valueobject.Address, weight valueobject.Weight) (*Shipment, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Store ID cannot be empty")
	}

	return &Shipment{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     orderID,
		StoreID:     storeID,
		State:       ShipmentStateDraft,
		Destination: destination,
		Weight:      weight,
	}, nil
}

// HasTrackingPIN reports whether the shipment carries a tracking identifier.
func (s *Shipment) HasTrackingPIN() bool {
	return s.TrackingPIN != ""
}

// NeedsTracking reports whether the shipment is eligible for a tracking
// refresh: it has a tracking pin and has not reached a terminal state.
func (s *Shipment) NeedsTracking() bool {
	return s.HasTrackingPIN() && !s.State.IsTerminal()
}

// ApplyTrackingSummary copies each non-empty summary field onto the
// shipment. Empty incoming values never erase previously stored values.
func (s *Shipment) ApplyTrackingSummary(summary TrackingSummary) {
	if summary.ActualDeliveryDate != "" {
		s.ActualDelivery = summary.ActualDeliveryDate
	}
	if summary.AttemptedDate != "" {
		s.AttemptedDelivery = summary.AttemptedDate
	}
	if summary.ExpectedDeliveryDate != "" {
		s.ExpectedDelivery = summary.ExpectedDeliveryDate
	}
	if summary.MailedOnDate != "" {
		s.MailedOn = summary.MailedOnDate
	}
	if summary.EventLocation != "" {
		s.CurrentLocation = summary.EventLocation
	}
	s.Touch()
}
