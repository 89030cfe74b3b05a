package server

import (
	"git.appkode.ru/pub/go/failure"

	"resell_margin/internal/domain"
	"resell_margin/pkg/errcodes"
)

// asHTTPError classifies a domain error so reply.Error picks the right
// status code. Unclassified errors stay as they are and render as 500.
func asHTTPError(err error) error {
	if err == nil {
		return nil
	}

	code, ok := domain.GetCode(err)
	if !ok {
		return err
	}

	switch code {
	case errcodes.ValidationError,
		errcodes.InvalidBidPrice,
		errcodes.InvalidSkuID,
		errcodes.InvalidBiddingNo,
		errcodes.InvalidStyleCode,
		errcodes.InvalidExchangeRate,
		errcodes.InvalidPlatformFeeRate,
		errcodes.InvalidShippingCost:
		return failure.NewInvalidArgumentErrorFromError(err,
			failure.WithCode(code), failure.WithDescription(err.Error()))
	case errcodes.NotFound,
		errcodes.BidNotFound,
		errcodes.ProductNotFound,
		errcodes.SettingsNotFound:
		return failure.NewNotFoundErrorFromError(err,
			failure.WithCode(code), failure.WithDescription(err.Error()))
	case errcodes.Forbidden:
		return failure.NewForbiddenErrorFromError(err,
			failure.WithCode(code), failure.WithDescription(err.Error()))
	default:
		return err
	}
}
