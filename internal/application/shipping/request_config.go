package shipping

import (
	"github.com/maplecart/backend/internal/domain/shipping"
)

// BuildClientConfig projects resolved API settings into a carrier-call-ready
// client config. Settings are validated first; incomplete credentials yield
// shipping.ErrConfigurationInvalid before any carrier call is attempted.
//
// Mode maps to the carrier environment asymmetrically: only the exact value
// "live" selects production, every other value (including empty) selects the
// sandbox. Misconfiguration therefore fails toward the sandbox.
func BuildClientConfig(settings shipping.APISettings) (shipping.ClientConfig, error) {
	if err := settings.Validate(); err != nil {
		return shipping.ClientConfig{}, err
	}

	env := shipping.EnvironmentDev
	if settings.Mode == shipping.ModeLive {
		env = shipping.EnvironmentProd
	}

	return shipping.ClientConfig{
		Username:       settings.Username,
		Password:       settings.Password,
		CustomerNumber: settings.CustomerNumber,
		ContractID:     settings.ContractID,
		Env:            env,
	}, nil
}
