package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	// Marketplace (POIZON) client.
	MarketplaceError       failure.ErrorCode = "MarketplaceError"
	MarketplaceUnavailable failure.ErrorCode = "MarketplaceUnavailable"
	CredentialsMissing     failure.ErrorCode = "CredentialsMissing"
	ProductNotFound        failure.ErrorCode = "ProductNotFound"

	// Retail (Naver) client.
	RetailSearchError failure.ErrorCode = "RetailSearchError"

	// Bidding.
	InvalidBidPrice  failure.ErrorCode = "InvalidBidPrice"
	InvalidSkuID     failure.ErrorCode = "InvalidSkuID"
	InvalidBiddingNo failure.ErrorCode = "InvalidBiddingNo"
	InvalidStyleCode failure.ErrorCode = "InvalidStyleCode"
	BidNotFound      failure.ErrorCode = "BidNotFound"

	// Settings.
	InvalidExchangeRate    failure.ErrorCode = "InvalidExchangeRate"
	InvalidPlatformFeeRate failure.ErrorCode = "InvalidPlatformFeeRate"
	InvalidShippingCost    failure.ErrorCode = "InvalidShippingCost"
	SettingsNotFound       failure.ErrorCode = "SettingsNotFound"
)
