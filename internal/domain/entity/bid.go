package entity

import "time"

// BidStatus is the lifecycle state of a stored bid.
type BidStatus string

const (
	BidStatusActive  BidStatus = "active"
	BidStatusUpdated BidStatus = "updated"
	BidStatusFailed  BidStatus = "failed"
)

// BidRequest is one listing submission. RequestID is the client-generated
// idempotency token; it must be fresh per logical bid attempt and is reused
// only when the caller explicitly wants the marketplace to deduplicate.
type BidRequest struct {
	RequestID           string
	GlobalSkuID         int64
	Price               float64
	Quantity            int
	Currency            string
	CountryCode         string
	DeliveryCountryCode string
}

// ListingAck is the marketplace's acknowledgement of a submitted or updated
// listing.
type ListingAck struct {
	SellerBiddingNo string
	Tips            string
}

// BidResult is the outcome of one bid attempt within a batch.
type BidResult struct {
	GlobalSkuID     int64
	Price           float64
	Success         bool
	SellerBiddingNo string
	Tips            string
	Error           string
}

// BulkBidResult accumulates a sequential batch run. The batch never aborts
// on a single item's failure.
type BulkBidResult struct {
	Succeeded int
	Failed    int
	Results   []BidResult
}

// Bid is a persisted bid record, keyed by user.
type Bid struct {
	ID              string
	UserID          string
	RequestID       string
	GlobalSkuID     int64
	SellerBiddingNo string
	Price           float64
	Quantity        int
	Currency        string
	Status          BidStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
