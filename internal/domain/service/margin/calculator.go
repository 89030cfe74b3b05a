// Package margin holds the pure pricing arithmetic behind every
// profitability figure the service shows. All functions are total: bad input
// degrades to zero, never to an error.
package margin

import (
	"math"

	"resell_margin/internal/domain/entity"
	"resell_margin/internal/domain/value"
)

// PriceInput pairs the two prices a margin is computed from.
type PriceInput struct {
	// WholesalePrice is the marketplace price, CNY.
	WholesalePrice float64
	// RetailPrice is the retail comparison price, KRW.
	RetailPrice float64
}

// ExpectedRevenue is the payout after currency conversion and the platform
// fee: wholesale × rate × (1 − fee), rounded to whole KRW. Zero when the
// wholesale price or the rate is not positive.
func ExpectedRevenue(wholesalePrice, rate, feeRate float64) int64 {
	if wholesalePrice <= 0 || rate <= 0 {
		return 0
	}

	return int64(math.Round(wholesalePrice * rate * (1 - feeRate)))
}

// ExpectedCost is the acquisition cost: retail price plus shipping, rounded
// to whole KRW. Zero when the retail price is not positive.
func ExpectedCost(retailPrice, shippingCost float64) int64 {
	if retailPrice <= 0 {
		return 0
	}

	return int64(math.Round(retailPrice + shippingCost))
}

func Profit(revenue, cost int64) int64 {
	return revenue - cost
}

// ROI is (profit / cost) × 100, two decimals. Zero on non-positive cost so a
// missing retail price never divides by zero.
func ROI(profit, cost int64) float64 {
	if cost <= 0 {
		return 0
	}

	return round2(float64(profit) / float64(cost) * 100)
}

// Compute derives the full margin for one price pair.
func Compute(input PriceInput, settings value.Settings) entity.MarginResult {
	revenue := ExpectedRevenue(input.WholesalePrice, settings.ExchangeRate, settings.PlatformFeeRate)
	cost := ExpectedCost(input.RetailPrice, settings.ShippingCost)
	profit := Profit(revenue, cost)

	return entity.MarginResult{
		Revenue:    revenue,
		Cost:       cost,
		Profit:     profit,
		ROI:        ROI(profit, cost),
		Profitable: profit > 0,
	}
}

// ComputeBulk derives margins for many price pairs under one settings tuple.
func ComputeBulk(inputs []PriceInput, settings value.Settings) []entity.MarginResult {
	results := make([]entity.MarginResult, 0, len(inputs))
	for _, input := range inputs {
		results = append(results, Compute(input, settings))
	}

	return results
}

// OptimalBidPrice undercuts the market lowest ask by exactly one CNY to take
// the top slot at the highest possible price. Asks at or below one CNY are
// returned unchanged.
func OptimalBidPrice(marketLowestAsk float64) float64 {
	if marketLowestAsk <= 1 {
		return marketLowestAsk
	}

	return round2(marketLowestAsk - 1)
}

// MaxBidPriceForTargetProfit solves the revenue formula in reverse: the
// highest wholesale price that still clears targetProfit after fees and
// conversion. Zero when the settings cannot support the division.
func MaxBidPriceForTargetProfit(retailPrice, targetProfit float64, settings value.Settings) float64 {
	if settings.ExchangeRate <= 0 || settings.PlatformFeeRate >= 1 {
		return 0
	}

	total := retailPrice + targetProfit + settings.ShippingCost

	return round2(total / settings.ExchangeRate / (1 - settings.PlatformFeeRate))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
