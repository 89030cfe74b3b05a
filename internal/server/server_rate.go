package server

import (
	"context"
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"

	"resell_margin/internal/domain/entity"
	"resell_margin/internal/infrastructure/exchange"
	"resell_margin/pkg/errcodes"
	"resell_margin/pkg/httpx/reply"
	"resell_margin/pkg/rest"
)

type rateProvider interface {
	GetRate(ctx context.Context, from, to string, opts exchange.Options) entity.ExchangeRate
}

type RateServer struct {
	rateProvider rateProvider
}

func NewRateServer(rateProvider rateProvider) RateServer {
	return RateServer{
		rateProvider: rateProvider,
	}
}

// getV1Rates resolves the two pairs the margin pipeline works with. The
// manualRate query parameter overrides only the CNY to KRW pair; forceRefresh
// bypasses the cache for both.
func (s RateServer) getV1Rates(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var manualRate float64

	if raw := r.URL.Query().Get("manualRate"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			return failure.NewInvalidArgumentError(
				"bad manualRate",
				failure.WithCode(errcodes.InvalidExchangeRate),
				failure.WithDescription("manualRate must be a non-negative number"),
			)
		}

		manualRate = parsed
	}

	forceRefresh := r.URL.Query().Get("forceRefresh") == "true"

	rates := rest.Rates{
		Rates: []rest.Rate{
			newRESTRate(s.rateProvider.GetRate(ctx, "CNY", "KRW", exchange.Options{
				ManualRate:   manualRate,
				ForceRefresh: forceRefresh,
			})),
			newRESTRate(s.rateProvider.GetRate(ctx, "USD", "CNY", exchange.Options{
				ForceRefresh: forceRefresh,
			})),
		},
	}

	reply.JSON(ctx, w, http.StatusOK, rates)

	return nil
}
