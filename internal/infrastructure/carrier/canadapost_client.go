package carrier

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/maplecart/backend/internal/domain/shipping"
)

// maxResponseSize is the maximum allowed response size from Canada Post (10MB)
const maxResponseSize = 10 * 1024 * 1024

// CanadaPostClient implements the CarrierGateway interface against the
// Canada Post rating and tracking web services.
type CanadaPostClient struct {
	config     *CanadaPostConfig
	httpClient *http.Client
}

var _ shipping.CarrierGateway = (*CanadaPostClient)(nil)

// NewCanadaPostClient creates a new client with the given configuration
func NewCanadaPostClient(config *CanadaPostConfig) (*CanadaPostClient, error) {
	if config == nil {
		config = DefaultCanadaPostConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &CanadaPostClient{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// ---------------------------------------------------------------------------
// Rating
// ---------------------------------------------------------------------------

// GetRates performs a rate-quote call for the given mailing scenario.
func (c *CanadaPostClient) GetRates(ctx context.Context, cfg shipping.ClientConfig, req shipping.RateQuoteRequest) (*shipping.RateResponse, error) {
	scenario := buildMailingScenario(cfg, req)
	payload, err := xml.Marshal(scenario)
	if err != nil {
		return nil, fmt.Errorf("carrier: failed to encode mailing scenario: %w", err)
	}
	payload = append([]byte(xml.Header), payload...)

	endpoint := c.config.BaseURL(cfg.Env) + "/rs/ship/price"
	body, err := c.doRequest(ctx, cfg, http.MethodPost, endpoint, rateContentType, payload)
	if err != nil {
		return nil, err
	}

	var quotes priceQuotes
	if err := xml.Unmarshal(body, &quotes); err != nil {
		return nil, fmt.Errorf("carrier: failed to decode rate response: %w", err)
	}

	resp := &shipping.RateResponse{
		PriceQuotes: make([]shipping.PriceQuote, 0, len(quotes.Quotes)),
	}
	for _, q := range quotes.Quotes {
		resp.PriceQuotes = append(resp.PriceQuotes, shipping.PriceQuote{
			ServiceCode: q.ServiceCode,
			ServiceName: q.ServiceName,
			PriceDetails: shipping.PriceDetails{
				Due: q.PriceDetails.Due,
			},
		})
	}
	return resp, nil
}

// buildMailingScenario maps a rate request to the carrier wire form. The
// destination variant follows the country: CA (or empty) is domestic, US is
// united-states, anything else is international.
func buildMailingScenario(cfg shipping.ClientConfig, req shipping.RateQuoteRequest) mailingScenario {
	scenario := mailingScenario{
		Xmlns:          rateNamespace,
		CustomerNumber: cfg.CustomerNumber,
		ContractID:     cfg.ContractID,
		ParcelCharacteristics: parcelCharacteristics{
			Weight: req.WeightKg.StringFixed(3),
		},
		OriginPostalCode: req.OriginPostalCode,
	}

	if len(req.OptionCodes) > 0 {
		opts := &scenarioOptions{Options: make([]scenarioOption, 0, len(req.OptionCodes))}
		for _, code := range req.OptionCodes {
			opts.Options = append(opts.Options, scenarioOption{OptionCode: code})
		}
		scenario.Options = opts
	}

	switch req.DestinationCountry {
	case "", "CA":
		scenario.Destination.Domestic = &domesticDestination{PostalCode: req.DestinationPostalCode}
	case "US":
		scenario.Destination.UnitedStates = &unitedStatesDestination{ZipCode: req.DestinationPostalCode}
	default:
		scenario.Destination.International = &internationalDestination{
			CountryCode: req.DestinationCountry,
			PostalCode:  req.DestinationPostalCode,
		}
	}

	return scenario
}

// ---------------------------------------------------------------------------
// Tracking
// ---------------------------------------------------------------------------

// GetTrackingSummary performs a tracking-summary call for the given pin.
func (c *CanadaPostClient) GetTrackingSummary(ctx context.Context, cfg shipping.ClientConfig, pin string) (*shipping.TrackingResponse, error) {
	endpoint := c.config.BaseURL(cfg.Env) + "/vis/track/pin/" + url.PathEscape(pin) + "/summary"
	body, err := c.doRequest(ctx, cfg, http.MethodGet, endpoint, trackContentType, nil)
	if err != nil {
		return nil, err
	}

	var summary trackingSummary
	if err := xml.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("carrier: failed to decode tracking response: %w", err)
	}

	resp := &shipping.TrackingResponse{}
	if summary.PinSummary != nil {
		resp.PinSummary = &shipping.PinSummary{
			ActualDeliveryDate:   summary.PinSummary.ActualDeliveryDate,
			AttemptedDate:        summary.PinSummary.AttemptedDate,
			ExpectedDeliveryDate: summary.PinSummary.ExpectedDeliveryDate,
			MailedOnDate:         summary.PinSummary.MailedOnDate,
			EventLocation:        summary.PinSummary.EventLocation,
		}
	}
	return resp, nil
}

// ---------------------------------------------------------------------------
// Transport
// ---------------------------------------------------------------------------

// doRequest performs one authenticated HTTP exchange with the carrier. Any
// failure, transport-level or HTTP-level, comes back as *shipping.ClientError
// so callers can classify it uniformly. Raw payloads are written to the
// diagnostics sink when one is attached.
func (c *CanadaPostClient) doRequest(ctx context.Context, cfg shipping.ClientConfig, method, endpoint, contentType string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("carrier: failed to create request: %w", err)
	}

	req.SetBasicAuth(cfg.Username, cfg.Password)
	req.Header.Set("Accept", contentType)
	req.Header.Set("Accept-Language", "en-CA")
	if payload != nil {
		req.Header.Set("Content-Type", contentType)
	}

	if cfg.Diagnostics != nil {
		cfg.Diagnostics.Printf("%s %s\n%s\n", method, endpoint, payload)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &shipping.ClientError{Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &shipping.ClientError{StatusCode: resp.StatusCode, Body: err.Error()}
	}

	if cfg.Diagnostics != nil {
		cfg.Diagnostics.Printf("HTTP %d\n%s\n", resp.StatusCode, body)
	}

	if resp.StatusCode >= 400 {
		return nil, &shipping.ClientError{
			StatusCode: resp.StatusCode,
			Code:       firstMessageCode(body),
			Body:       string(body),
		}
	}

	return body, nil
}

// firstMessageCode extracts the first machine-readable error code from a
// carrier messages body, if there is one.
func firstMessageCode(body []byte) string {
	var msgs apiMessages
	if err := xml.Unmarshal(body, &msgs); err != nil {
		return ""
	}
	if len(msgs.Messages) == 0 {
		return ""
	}
	return msgs.Messages[0].Code
}
