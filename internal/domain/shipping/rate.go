package shipping

import (
	"github.com/maplecart/backend/internal/domain/shared/valueobject"
)

// ShippingRate is a priced carrier service option for a shipment. The
// amount is always in the carrier settlement currency (CAD) regardless of
// the store currency.
type ShippingRate struct {
	ServiceCode string
	ServiceName string
	Amount      valueobject.Money
}

// ShippingService is a carrier service offering.
type ShippingService struct {
	Code  string
	Label string
}

// serviceCatalog lists every rateable Canada Post service, in the carrier's
// published order.
var serviceCatalog = []ShippingService{
	{Code: "DOM.EP", Label: "Expedited Parcel"},
	{Code: "DOM.RP", Label: "Regular Parcel"},
	{Code: "DOM.PC", Label: "Priority"},
	{Code: "DOM.XP", Label: "Xpresspost"},
	{Code: "DOM.XP.CERT", Label: "Xpresspost Certified"},
	{Code: "DOM.LIB", Label: "Library Materials"},
	{Code: "USA.EP", Label: "Expedited Parcel USA"},
	{Code: "USA.PW.ENV", Label: "Priority Worldwide Envelope USA"},
	{Code: "USA.PW.PAK", Label: "Priority Worldwide Pak USA"},
	{Code: "USA.PW.PARCEL", Label: "Priority Worldwide Parcel USA"},
	{Code: "USA.SP.AIR", Label: "Small Packet USA Air"},
	{Code: "USA.TP", Label: "Tracked Packet - USA"},
	{Code: "USA.TP.LVM", Label: "Tracked Packet - USA (Large Volume Mailers)"},
	{Code: "USA.XP", Label: "Xpresspost USA"},
	{Code: "INT.XP", Label: "Xpresspost International"},
	{Code: "INT.IP.AIR", Label: "International Parcel Air"},
	{Code: "INT.IP.SURF", Label: "International Parcel Surface"},
	{Code: "INT.PW.ENV", Label: "Priority Worldwide Envelope International"},
	{Code: "INT.PW.PAK", Label: "Priority Worldwide Pak International"},
	{Code: "INT.PW.PARCEL", Label: "Priority Worldwide Parcel International"},
	{Code: "INT.SP.AIR", Label: "Small Packet International Air"},
	{Code: "INT.SP.SURF", Label: "Small Packet International Surface"},
	{Code: "INT.TP", Label: "Tracked Packet - International"},
}

// optionCatalog lists the rating option codes that can be added to a quote
// request. Some options conflict with each other (e.g. PA18, PA19 and DNS);
// the carrier rejects conflicting combinations at request time.
var optionCatalog = []ShippingService{
	{Code: "SO", Label: "Signature"},
	{Code: "COV", Label: "Coverage"},
	{Code: "COD", Label: "Collect on Delivery"},
	{Code: "PA18", Label: "Proof of Age Required - 18"},
	{Code: "PA19", Label: "Proof of Age Required - 19"},
	{Code: "HFP", Label: "Card for Pickup"},
	{Code: "DNS", Label: "Do Not Safe Drop"},
	{Code: "LAD", Label: "Leave at Door"},
}

// Services returns the full carrier service catalog.
func Services() []ShippingService {
	out := make([]ShippingService, len(serviceCatalog))
	copy(out, serviceCatalog)
	return out
}

// RateOptions returns the catalog of rating option codes.
func RateOptions() []ShippingService {
	out := make([]ShippingService, len(optionCatalog))
	copy(out, optionCatalog)
	return out
}

// ServiceLabel returns the human-readable label for a service code.
func ServiceLabel(code string) (string, bool) {
	for _, s := range serviceCatalog {
		if s.Code == code {
			return s.Label, true
		}
	}
	return "", false
}

// IsKnownServiceCode reports whether the code is in the service catalog.
func IsKnownServiceCode(code string) bool {
	_, ok := ServiceLabel(code)
	return ok
}
