package entity

import "time"

// RateSource tags the provenance of an exchange rate.
type RateSource string

const (
	RateSourceManual  RateSource = "manual"
	RateSourceCached  RateSource = "cached"
	RateSourceRemote  RateSource = "remote"
	RateSourceDefault RateSource = "default"
)

// ExchangeRate is a resolved conversion rate for one currency pair.
type ExchangeRate struct {
	From      string
	To        string
	Rate      float64
	FetchedAt time.Time
	Source    RateSource
}
