package main

import (
	"context"
	"flag"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appshipping "github.com/maplecart/backend/internal/application/shipping"
	"github.com/maplecart/backend/internal/infrastructure/carrier"
	"github.com/maplecart/backend/internal/infrastructure/config"
	"github.com/maplecart/backend/internal/infrastructure/logger"
	"github.com/maplecart/backend/internal/infrastructure/persistence"
)

// tracking runs one tracking refresh cycle and exits. Intended for cron.
func main() {
	var (
		ordersFlag string
		timeout    time.Duration
		logLevel   string
	)

	flag.StringVar(&ordersFlag, "orders", "", "Comma-separated order IDs to refresh (default: all open shipments)")
	flag.DurationVar(&timeout, "timeout", 10*time.Minute, "Refresh cycle timeout")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	var orderIDs []uuid.UUID
	if ordersFlag != "" {
		for _, raw := range strings.Split(ordersFlag, ",") {
			id, err := uuid.Parse(strings.TrimSpace(raw))
			if err != nil {
				log.Fatal("Invalid order ID", zap.String("value", raw), zap.Error(err))
			}
			orderIDs = append(orderIDs, id)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	gateway, err := carrier.NewCanadaPostClient(&carrier.CanadaPostConfig{
		ProdBaseURL:    cfg.Carrier.ProdBaseURL,
		DevBaseURL:     cfg.Carrier.DevBaseURL,
		TimeoutSeconds: cfg.Carrier.TimeoutSeconds,
	})
	if err != nil {
		log.Fatal("Invalid carrier client configuration", zap.Error(err))
	}

	storeRepo := persistence.NewGormStoreRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	sitewideRepo := persistence.NewGormSiteSettingsRepository(db.DB)

	resolver := appshipping.NewSettingsResolver(sitewideRepo, log)
	trackingService := appshipping.NewTrackingService(gateway, resolver, shipmentRepo, storeRepo, log)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	started := time.Now()
	result, err := trackingService.RefreshAll(ctx, orderIDs)
	if err != nil {
		log.Fatal("Tracking refresh failed", zap.Error(err))
	}

	log.Info("Tracking refresh completed",
		zap.Int("refreshed", result.Refreshed),
		zap.Int("failed", result.Failed),
		zap.Int("updated_orders", len(result.UpdatedOrderIDs)),
		zap.Duration("elapsed", time.Since(started)),
	)
}
