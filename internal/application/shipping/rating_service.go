package shipping

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/maplecart/backend/internal/domain/shared/valueobject"
	"github.com/maplecart/backend/internal/domain/shipping"
)

// minRateableWeightKg is the smallest weight submitted for a quote; the
// carrier rejects zero-weight parcels.
var minRateableWeightKg = decimal.RequireFromString("0.1")

// RatingService produces priced carrier service options for a shipment.
//
// GetRates never returns an error: a shipment that cannot be rated, for any
// reason, simply yields no rate options at checkout. Failures are logged
// with enough detail to diagnose them offline.
type RatingService struct {
	gateway  shipping.CarrierGateway
	resolver *SettingsResolver
	logger   *zap.Logger
}

// NewRatingService creates a new RatingService
func NewRatingService(gateway shipping.CarrierGateway, resolver *SettingsResolver, logger *zap.Logger) *RatingService {
	return &RatingService{
		gateway:  gateway,
		resolver: resolver,
		logger:   logger,
	}
}

// GetRates resolves settings, performs one carrier rate-quote call and maps
// the quotes to shipping rates. Amounts are always CAD.
func (s *RatingService) GetRates(ctx context.Context, store *shipping.Store, method *shipping.ShippingMethod, shipment *shipping.Shipment) []shipping.ShippingRate {
	if shipment == nil || shipment.Destination.IsEmpty() {
		s.logger.Debug("Skipping rate request for shipment without destination postal code")
		return []shipping.ShippingRate{}
	}

	settings, err := s.resolver.Resolve(ctx, store, method)
	if err != nil {
		s.logger.Error("Failed to resolve carrier API settings", zap.Error(err))
		return []shipping.ShippingRate{}
	}

	cfg, err := BuildClientConfig(settings)
	if err != nil {
		s.logger.Error("Carrier API settings are incomplete, cannot rate", zap.Error(err))
		return []shipping.ShippingRate{}
	}

	origin := s.originPostalCode(store, method)
	if origin == "" {
		s.logger.Warn("No origin postal code available, cannot rate",
			zap.String("shipment_id", shipment.ID.String()))
		return []shipping.ShippingRate{}
	}

	weightKg := shipment.Weight.Kilograms()
	if weightKg.LessThan(minRateableWeightKg) {
		weightKg = minRateableWeightKg
	}

	req := shipping.RateQuoteRequest{
		OriginPostalCode:      origin,
		DestinationPostalCode: shipment.Destination.PostalCode(),
		DestinationCountry:    shipment.Destination.Country(),
		WeightKg:              weightKg,
	}
	if method != nil {
		req.OptionCodes = method.OptionCodes
		req.ServiceCodes = method.ServiceCodes
	}

	gate := NewDiagnosticsGate(settings.Log)
	if gate.LogRequest {
		s.logger.Info("Carrier rate request",
			zap.String("origin", req.OriginPostalCode),
			zap.String("destination", req.DestinationPostalCode),
			zap.String("weight_kg", req.WeightKg.String()),
			zap.Strings("options", req.OptionCodes),
			zap.Strings("services", req.ServiceCodes))
	}

	// The sandbox endpoints emit incidental output; capture it so it never
	// reaches the process streams.
	if settings.IsTestMode() {
		capture := NewCaptureBuffer()
		cfg.Diagnostics = capture
		defer func() {
			if out := capture.Drain(); out != "" {
				s.logger.Debug("Carrier client output", zap.String("output", out))
			}
		}()
	}

	resp, err := s.gateway.GetRates(ctx, cfg, req)
	if err != nil {
		var clientErr *shipping.ClientError
		if errors.As(err, &clientErr) && gate.LogResponse {
			s.logger.Info("Carrier rate response",
				zap.Int("status", clientErr.StatusCode),
				zap.String("body", clientErr.Body))
		}
		s.logger.Warn("Carrier rate request failed", zap.Error(err))
		return []shipping.ShippingRate{}
	}

	// Successful quote payloads log under the request flag; the response
	// flag covers carrier error bodies.
	if gate.LogRequest {
		s.logger.Info("Carrier rate response",
			zap.Int("quotes", len(resp.PriceQuotes)),
			zap.Any("price_quotes", resp.PriceQuotes))
	}

	return s.mapQuotes(resp.PriceQuotes, req.ServiceCodes)
}

// originPostalCode picks the rating origin: the shipping-method override
// wins over the store address.
func (s *RatingService) originPostalCode(store *shipping.Store, method *shipping.ShippingMethod) string {
	if method != nil && method.OriginPostalCode != "" {
		return valueobject.NormalizePostalCode(method.OriginPostalCode)
	}
	if store != nil {
		return store.Address.PostalCode()
	}
	return ""
}

// mapQuotes converts carrier price quotes to shipping rates, restricted to
// the allowed service codes when the set is non-empty. Quotes with an
// unparseable price are dropped rather than failing the whole result.
func (s *RatingService) mapQuotes(quotes []shipping.PriceQuote, allowed []string) []shipping.ShippingRate {
	allowedSet := make(map[string]bool, len(allowed))
	for _, code := range allowed {
		allowedSet[code] = true
	}

	rates := make([]shipping.ShippingRate, 0, len(quotes))
	for _, quote := range quotes {
		if len(allowedSet) > 0 && !allowedSet[quote.ServiceCode] {
			continue
		}

		amount, err := valueobject.NewMoneyCADFromString(quote.PriceDetails.Due)
		if err != nil {
			s.logger.Warn("Dropping quote with unparseable price",
				zap.String("service_code", quote.ServiceCode),
				zap.String("due", quote.PriceDetails.Due))
			continue
		}

		name := quote.ServiceName
		if name == "" {
			if label, ok := shipping.ServiceLabel(quote.ServiceCode); ok {
				name = label
			} else {
				name = quote.ServiceCode
			}
		}

		rates = append(rates, shipping.ShippingRate{
			ServiceCode: quote.ServiceCode,
			ServiceName: name,
			Amount:      amount,
		})
	}
	return rates
}
