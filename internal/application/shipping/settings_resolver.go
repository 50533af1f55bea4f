package shipping

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/maplecart/backend/internal/domain/shared"
	"github.com/maplecart/backend/internal/domain/shipping"
)

// SettingsResolver resolves the carrier API settings in effect for a call.
// Precedence is store override, then shipping-method override, then the
// sitewide key/value settings. Resolution happens fresh for every carrier
// call; nothing caches a resolved value across calls.
type SettingsResolver struct {
	sitewide shipping.SitewideSettingsRepository
	logger   *zap.Logger
}

// NewSettingsResolver creates a new SettingsResolver
func NewSettingsResolver(sitewide shipping.SitewideSettingsRepository, logger *zap.Logger) *SettingsResolver {
	return &SettingsResolver{
		sitewide: sitewide,
		logger:   logger,
	}
}

// Resolve returns the settings in effect for the given store and shipping
// method, either of which may be nil.
//
// A store blob that is present but malformed is treated as no override: the
// resolver logs it and falls through to the next tier rather than failing
// the call. shipping.ErrConfigurationMissing is returned only when there is
// no store, no method, and no sitewide key defined at all.
func (r *SettingsResolver) Resolve(ctx context.Context, store *shipping.Store, method *shipping.ShippingMethod) (shipping.APISettings, error) {
	if store != nil && store.HasCarrierSettings() {
		settings, err := shipping.DecodeSettingsBlob(store.CarrierSettingsBlob)
		switch {
		case errors.Is(err, shipping.ErrMalformedSettingsBlob):
			r.logger.Warn("Malformed store carrier settings blob, falling back",
				zap.String("store_id", store.ID.String()),
				zap.Error(err))
		case err != nil:
			return shipping.APISettings{}, err
		case !settings.IsZero():
			return settings, nil
		}
	}

	if method != nil && !method.API.IsZero() {
		return method.API, nil
	}

	settings, defined, err := r.resolveSitewide(ctx)
	if err != nil {
		return shipping.APISettings{}, err
	}
	if !defined && store == nil && method == nil {
		return shipping.APISettings{}, shipping.ErrConfigurationMissing
	}
	return settings, nil
}

// resolveSitewide assembles settings from the flat sitewide key/value store.
// The second return reports whether any key was defined at all.
func (r *SettingsResolver) resolveSitewide(ctx context.Context) (shipping.APISettings, bool, error) {
	var settings shipping.APISettings
	defined := false

	read := func(key string) (string, error) {
		value, err := r.sitewide.Get(ctx, key)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return "", nil
			}
			return "", err
		}
		defined = true
		return value, nil
	}

	fields := []struct {
		key string
		dst *string
	}{
		{shipping.SettingKeyCustomerNumber, &settings.CustomerNumber},
		{shipping.SettingKeyUsername, &settings.Username},
		{shipping.SettingKeyPassword, &settings.Password},
		{shipping.SettingKeyContractID, &settings.ContractID},
		{shipping.SettingKeyMode, &settings.Mode},
	}
	for _, f := range fields {
		value, err := read(f.key)
		if err != nil {
			return shipping.APISettings{}, false, err
		}
		*f.dst = value
	}

	for _, f := range []struct {
		key string
		dst *bool
	}{
		{shipping.SettingKeyLogRequest, &settings.Log.Request},
		{shipping.SettingKeyLogResponse, &settings.Log.Response},
	} {
		value, err := read(f.key)
		if err != nil {
			return shipping.APISettings{}, false, err
		}
		if value == "" {
			continue
		}
		flag, parseErr := strconv.ParseBool(value)
		if parseErr != nil {
			r.logger.Warn("Ignoring non-boolean sitewide log flag",
				zap.String("key", f.key),
				zap.String("value", value))
			continue
		}
		*f.dst = flag
	}

	return settings, defined, nil
}
