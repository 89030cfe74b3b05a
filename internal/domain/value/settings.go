package value

import (
	"resell_margin/internal/domain"
	"resell_margin/pkg/errcodes"
)

// Settings is the user-scoped margin calculation configuration.
// ExchangeRate of zero means "use the live rate"; a positive value is a
// manual override.
type Settings struct {
	ExchangeRate    float64
	PlatformFeeRate float64
	ShippingCost    float64
	TargetProfit    float64
}

// DefaultSettings are applied when a user has never saved anything.
func DefaultSettings() Settings {
	return Settings{
		ExchangeRate:    190,
		PlatformFeeRate: 0.05,
		ShippingCost:    3000,
		TargetProfit:    10000,
	}
}

func (s Settings) Validate() error {
	if s.ExchangeRate < 0 {
		return domain.NewError(errcodes.InvalidExchangeRate, "exchange rate must not be negative")
	}

	if s.PlatformFeeRate < 0 || s.PlatformFeeRate >= 1 {
		return domain.NewError(errcodes.InvalidPlatformFeeRate, "platform fee rate must be within [0, 1)")
	}

	if s.ShippingCost < 0 {
		return domain.NewError(errcodes.InvalidShippingCost, "shipping cost must not be negative")
	}

	if s.TargetProfit < 0 {
		return domain.NewError(errcodes.ValidationError, "target profit must not be negative")
	}

	return nil
}
