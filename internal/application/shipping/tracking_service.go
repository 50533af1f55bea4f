package shipping

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maplecart/backend/internal/domain/shared"
	"github.com/maplecart/backend/internal/domain/shipping"
)

// TrackingService fetches delivery progress from the carrier and folds it
// into stored shipments.
type TrackingService struct {
	gateway   shipping.CarrierGateway
	resolver  *SettingsResolver
	shipments shipping.ShipmentRepository
	stores    shipping.StoreRepository
	logger    *zap.Logger
}

// NewTrackingService creates a new TrackingService
func NewTrackingService(
	gateway shipping.CarrierGateway,
	resolver *SettingsResolver,
	shipments shipping.ShipmentRepository,
	stores shipping.StoreRepository,
	logger *zap.Logger,
) *TrackingService {
	return &TrackingService{
		gateway:   gateway,
		resolver:  resolver,
		shipments: shipments,
		stores:    stores,
		logger:    logger,
	}
}

// FetchSummary performs one carrier tracking call for the given pin. A nil
// summary with a nil error means the carrier has no summary for the pin;
// carrier-side failures (such as an unknown pin) degrade to that same
// absence rather than an error.
func (s *TrackingService) FetchSummary(ctx context.Context, store *shipping.Store, method *shipping.ShippingMethod, pin string) (*shipping.TrackingSummary, error) {
	if pin == "" {
		return nil, shared.NewDomainError("MISSING_PIN", "Tracking pin cannot be empty")
	}

	settings, err := s.resolver.Resolve(ctx, store, method)
	if err != nil {
		return nil, err
	}
	cfg, err := BuildClientConfig(settings)
	if err != nil {
		return nil, err
	}

	if settings.IsTestMode() {
		capture := NewCaptureBuffer()
		cfg.Diagnostics = capture
		defer func() {
			if out := capture.Drain(); out != "" {
				s.logger.Debug("Carrier client output", zap.String("output", out))
			}
		}()
	}

	gate := NewDiagnosticsGate(settings.Log)
	if gate.LogRequest {
		s.logger.Info("Carrier tracking request", zap.String("pin", pin))
	}

	resp, err := s.gateway.GetTrackingSummary(ctx, cfg, pin)
	if err != nil {
		var clientErr *shipping.ClientError
		if errors.As(err, &clientErr) {
			if gate.LogResponse {
				s.logger.Info("Carrier tracking response",
					zap.Int("status", clientErr.StatusCode),
					zap.String("body", clientErr.Body))
			}
			// A pin the carrier does not know is not an error, just no data.
			return nil, nil
		}
		return nil, err
	}

	if resp.PinSummary == nil {
		return nil, nil
	}
	return &shipping.TrackingSummary{
		ActualDeliveryDate:   resp.PinSummary.ActualDeliveryDate,
		AttemptedDate:        resp.PinSummary.AttemptedDate,
		ExpectedDeliveryDate: resp.PinSummary.ExpectedDeliveryDate,
		MailedOnDate:         resp.PinSummary.MailedOnDate,
		EventLocation:        resp.PinSummary.EventLocation,
	}, nil
}

// RefreshResult reports the outcome of a batch tracking refresh.
type RefreshResult struct {
	// UpdatedOrderIDs lists the orders whose shipments received tracking
	// data, in processing order and without duplicates.
	UpdatedOrderIDs []uuid.UUID
	Refreshed       int
	Failed          int
}

// RefreshAll updates tracking data for every shipment that still needs it.
// When orderIDs is non-empty only shipments of those orders are refreshed.
//
// A shipment whose refresh fails is logged and skipped; one bad pin never
// aborts the batch.
func (s *TrackingService) RefreshAll(ctx context.Context, orderIDs []uuid.UUID) (RefreshResult, error) {
	var result RefreshResult

	candidates, err := s.shipments.FindForTracking(ctx, orderIDs)
	if err != nil {
		return result, err
	}

	updated := make(map[uuid.UUID]bool)
	storeCache := make(map[uuid.UUID]*shipping.Store)

	for _, shipment := range candidates {
		store, ok := storeCache[shipment.StoreID]
		if !ok {
			store, err = s.stores.FindByID(ctx, shipment.StoreID)
			if err != nil {
				s.logger.Warn("Failed to load store for shipment, skipping",
					zap.String("shipment_id", shipment.ID.String()),
					zap.String("store_id", shipment.StoreID.String()),
					zap.Error(err))
				result.Failed++
				continue
			}
			storeCache[shipment.StoreID] = store
		}

		summary, err := s.FetchSummary(ctx, store, nil, shipment.TrackingPIN)
		if err != nil {
			s.logger.Warn("Failed to fetch tracking summary, skipping shipment",
				zap.String("shipment_id", shipment.ID.String()),
				zap.String("pin", shipment.TrackingPIN),
				zap.Error(err))
			result.Failed++
			continue
		}
		if summary == nil || summary.IsZero() {
			continue
		}

		shipment.ApplyTrackingSummary(*summary)
		if err := s.shipments.Save(ctx, shipment); err != nil {
			s.logger.Error("Failed to save refreshed shipment",
				zap.String("shipment_id", shipment.ID.String()),
				zap.Error(err))
			result.Failed++
			continue
		}

		result.Refreshed++
		if !updated[shipment.OrderID] {
			updated[shipment.OrderID] = true
			result.UpdatedOrderIDs = append(result.UpdatedOrderIDs, shipment.OrderID)
		}
	}

	return result, nil
}
