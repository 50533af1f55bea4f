package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appshipping "github.com/maplecart/backend/internal/application/shipping"
)

// ---------------------------------------------------------------------------
// TrackingRefresher
// ---------------------------------------------------------------------------

// TrackingRefresher runs one tracking refresh cycle over open shipments.
type TrackingRefresher interface {
	RefreshAll(ctx context.Context, orderIDs []uuid.UUID) (appshipping.RefreshResult, error)
}

// ---------------------------------------------------------------------------
// TrackingTriggerConfig
// ---------------------------------------------------------------------------

// TrackingTriggerConfig holds configuration for the tracking refresh trigger
type TrackingTriggerConfig struct {
	// Interval is how often to refresh tracking summaries
	Interval time.Duration

	// RefreshTimeout bounds a single refresh cycle
	RefreshTimeout time.Duration
}

// DefaultTrackingTriggerConfig returns default trigger configuration
func DefaultTrackingTriggerConfig() TrackingTriggerConfig {
	return TrackingTriggerConfig{
		Interval:       time.Hour,
		RefreshTimeout: 10 * time.Minute,
	}
}

// Validate checks the configuration
func (c TrackingTriggerConfig) Validate() error {
	if c.Interval < time.Minute || c.RefreshTimeout <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// ---------------------------------------------------------------------------
// TrackingTrigger
// ---------------------------------------------------------------------------

// TrackingTrigger periodically refreshes tracking summaries for shipments
// that carry a pin and have not reached a terminal state.
type TrackingTrigger struct {
	config    TrackingTriggerConfig
	refresher TrackingRefresher
	logger    *zap.Logger

	cancel     context.CancelFunc
	wg         sync.WaitGroup
	mu         sync.Mutex
	isRunning  bool
	refreshing bool
}

// NewTrackingTrigger creates a new tracking refresh trigger
func NewTrackingTrigger(config TrackingTriggerConfig, refresher TrackingRefresher, logger *zap.Logger) *TrackingTrigger {
	return &TrackingTrigger{
		config:    config,
		refresher: refresher,
		logger:    logger,
	}
}

// Start starts the trigger
func (t *TrackingTrigger) Start(ctx context.Context) error {
	if err := t.config.Validate(); err != nil {
		return err
	}

	t.mu.Lock()
	if t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = true
	t.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	t.wg.Add(1)
	go t.runLoop(ctx)

	t.logger.Info("Tracking trigger started",
		zap.Duration("interval", t.config.Interval),
		zap.Duration("refresh_timeout", t.config.RefreshTimeout),
	)

	return nil
}

// Stop gracefully stops the trigger
func (t *TrackingTrigger) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = false
	t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.logger.Info("Tracking trigger stopped")
		return nil
	case <-ctx.Done():
		t.logger.Warn("Tracking trigger stop timed out")
		return ctx.Err()
	}
}

// TriggerNow runs a refresh cycle immediately, outside the ticker schedule.
func (t *TrackingTrigger) TriggerNow(ctx context.Context) (appshipping.RefreshResult, error) {
	t.mu.Lock()
	if t.refreshing {
		t.mu.Unlock()
		return appshipping.RefreshResult{}, ErrRefreshInProgress
	}
	t.refreshing = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.refreshing = false
		t.mu.Unlock()
	}()

	refreshCtx, cancel := context.WithTimeout(ctx, t.config.RefreshTimeout)
	defer cancel()

	return t.refresher.RefreshAll(refreshCtx, nil)
}

// runLoop runs refresh cycles on the configured interval
func (t *TrackingTrigger) runLoop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.refresh(ctx)
		}
	}
}

// refresh executes one refresh cycle
func (t *TrackingTrigger) refresh(ctx context.Context) {
	started := time.Now()

	result, err := t.TriggerNow(ctx)
	if err != nil {
		t.logger.Error("Tracking refresh cycle failed", zap.Error(err))
		return
	}

	t.logger.Info("Tracking refresh cycle completed",
		zap.Int("refreshed", result.Refreshed),
		zap.Int("failed", result.Failed),
		zap.Int("updated_orders", len(result.UpdatedOrderIDs)),
		zap.Duration("elapsed", time.Since(started)),
	)
}
