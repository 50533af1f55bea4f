package carrier

import "encoding/xml"

// Wire types for the Canada Post rating and tracking services. Rating uses
// the rate-v4 vocabulary, tracking uses track-v2; both are XML over HTTPS
// with basic auth.

const (
	rateNamespace  = "http://www.canadapost.ca/ws/ship/rate-v4"
	trackNamespace = "http://www.canadapost.ca/ws/track-v2"

	rateContentType  = "application/vnd.cpc.ship.rate-v4+xml"
	trackContentType = "application/vnd.cpc.track-v2+xml"
)

// mailingScenario is the body of a rate-quote request.
type mailingScenario struct {
	XMLName        xml.Name `xml:"mailing-scenario"`
	Xmlns          string   `xml:"xmlns,attr"`
	CustomerNumber string   `xml:"customer-number"`
	ContractID     string   `xml:"contract-id,omitempty"`

	Options *scenarioOptions `xml:"options,omitempty"`

	ParcelCharacteristics parcelCharacteristics `xml:"parcel-characteristics"`
	OriginPostalCode      string                `xml:"origin-postal-code"`
	Destination           scenarioDestination   `xml:"destination"`
}

type scenarioOptions struct {
	Options []scenarioOption `xml:"option"`
}

type scenarioOption struct {
	OptionCode string `xml:"option-code"`
}

type parcelCharacteristics struct {
	// Weight is in kilograms, three decimal places.
	Weight string `xml:"weight"`
}

// scenarioDestination holds exactly one of its three variants.
type scenarioDestination struct {
	Domestic      *domesticDestination      `xml:"domestic,omitempty"`
	UnitedStates  *unitedStatesDestination  `xml:"united-states,omitempty"`
	International *internationalDestination `xml:"international,omitempty"`
}

type domesticDestination struct {
	PostalCode string `xml:"postal-code"`
}

type unitedStatesDestination struct {
	ZipCode string `xml:"zip-code"`
}

type internationalDestination struct {
	CountryCode string `xml:"country-code"`
	PostalCode  string `xml:"postal-code,omitempty"`
}

// priceQuotes is the body of a rate-quote response.
type priceQuotes struct {
	XMLName xml.Name     `xml:"price-quotes"`
	Quotes  []priceQuote `xml:"price-quote"`
}

type priceQuote struct {
	ServiceCode  string       `xml:"service-code"`
	ServiceName  string       `xml:"service-name"`
	PriceDetails priceDetails `xml:"price-details"`
}

type priceDetails struct {
	Due string `xml:"due"`
}

// trackingSummary is the body of a tracking summary response. PinSummary is
// nil when the carrier has no history for the pin.
type trackingSummary struct {
	XMLName    xml.Name    `xml:"tracking-summary"`
	PinSummary *pinSummary `xml:"pin-summary"`
}

type pinSummary struct {
	ActualDeliveryDate   string `xml:"actual-delivery-date"`
	AttemptedDate        string `xml:"attempted-date"`
	ExpectedDeliveryDate string `xml:"expected-delivery-date"`
	MailedOnDate         string `xml:"mailed-on-date"`
	EventLocation        string `xml:"event-location"`
}

// apiMessages is the error body returned by every Canada Post service.
type apiMessages struct {
	XMLName  xml.Name     `xml:"messages"`
	Messages []apiMessage `xml:"message"`
}

type apiMessage struct {
	Code        string `xml:"code"`
	Description string `xml:"description"`
}
