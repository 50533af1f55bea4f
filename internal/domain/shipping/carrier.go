package shipping

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Environment selects the carrier endpoint set.
type Environment string

const (
	// EnvironmentProd targets the production carrier endpoints.
	EnvironmentProd Environment = "prod"
	// EnvironmentDev targets the carrier sandbox endpoints.
	EnvironmentDev Environment = "dev"
)

// DiagnosticsSink receives incidental diagnostic output emitted by the
// carrier client during a single call. A nil sink discards output.
type DiagnosticsSink interface {
	Printf(format string, args ...any)
}

// ClientConfig is the carrier-call-ready projection of APISettings. It is
// derived one-to-one from a resolved settings value and never persisted.
type ClientConfig struct {
	Username       string
	Password       string
	CustomerNumber string
	ContractID     string
	Env            Environment

	// Diagnostics, when non-nil, captures incidental client output for the
	// duration of the call it is attached to.
	Diagnostics DiagnosticsSink
}

// RateQuoteRequest carries the inputs of a single rate-quote call.
// Weight is always expressed in kilograms. An empty destination country
// means a domestic shipment.
type RateQuoteRequest struct {
	OriginPostalCode      string
	DestinationPostalCode string
	DestinationCountry    string
	WeightKg              decimal.Decimal
	OptionCodes           []string
	ServiceCodes          []string
}

// PriceDetails is the nested price node of a carrier price quote.
type PriceDetails struct {
	Due string
}

// PriceQuote is one priced service entry of a carrier rating response.
type PriceQuote struct {
	ServiceCode  string
	ServiceName  string
	PriceDetails PriceDetails
}

// RateResponse is the nested structure returned by the carrier rating call.
// A response with no price quotes is valid and yields no rates.
type RateResponse struct {
	PriceQuotes []PriceQuote
}

// PinSummary is the nested summary node of a carrier tracking response.
// Any subset of fields may be populated.
type PinSummary struct {
	ActualDeliveryDate   string
	AttemptedDate        string
	ExpectedDeliveryDate string
	MailedOnDate         string
	EventLocation        string
}

// TrackingResponse is the nested structure returned by the carrier tracking
// call. PinSummary is nil when the carrier has no summary for the pin.
type TrackingResponse struct {
	PinSummary *PinSummary
}

// ClientError is the classified error raised by the carrier client. It
// carries the machine-readable response body returned by the carrier;
// transport-level failures are classified the same way with a zero status.
type ClientError struct {
	StatusCode int
	Code       string
	Body       string
}

// Error implements the error interface
func (e *ClientError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("shipping: carrier client error %s (HTTP %d)", e.Code, e.StatusCode)
	}
	return fmt.Sprintf("shipping: carrier client error (HTTP %d)", e.StatusCode)
}

// CarrierGateway is the port interface for the carrier web API. The gateway
// holds no credentials of its own; each call receives a ClientConfig built
// from freshly resolved settings.
type CarrierGateway interface {
	// GetRates performs a single rate-quote call. It returns a *ClientError
	// for any classified carrier or transport failure.
	GetRates(ctx context.Context, cfg ClientConfig, req RateQuoteRequest) (*RateResponse, error)

	// GetTrackingSummary performs a single tracking-summary call for the
	// given tracking pin. Error semantics match GetRates.
	GetTrackingSummary(ctx context.Context, cfg ClientConfig, pin string) (*TrackingResponse, error)
}
