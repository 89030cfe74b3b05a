package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"resell_margin/internal/domain"
	"resell_margin/internal/domain/entity"
	"resell_margin/internal/domain/service/analysis"
	"resell_margin/internal/domain/value"
	"resell_margin/internal/infrastructure/exchange"
	"resell_margin/pkg/errcodes"
	"resell_margin/pkg/middlewarex"
	"resell_margin/pkg/rest"
	"resell_margin/pkg/tests"
)

type fakeAnalysisService struct {
	analyzedCodes []string
	report        entity.AnalysisReport
}

func (f *fakeAnalysisService) Analyze(_ context.Context, styleCodes []string, _ value.Settings) entity.AnalysisReport {
	f.analyzedCodes = styleCodes
	return f.report
}

type fakeBiddingService struct {
	bulkResult entity.BulkBidResult
	updateErr  error
}

func (f *fakeBiddingService) PlaceBulkBids(_ context.Context, inputs []analysis.BidInput) (entity.BulkBidResult, error) {
	if len(inputs) == 0 {
		return entity.BulkBidResult{}, domain.NewError(errcodes.ValidationError, "at least one bid is required")
	}

	return f.bulkResult, nil
}

func (f *fakeBiddingService) UpdateBid(_ context.Context, sellerBiddingNo string, _ float64, _ int) (entity.ListingAck, error) {
	if f.updateErr != nil {
		return entity.ListingAck{}, f.updateErr
	}

	return entity.ListingAck{SellerBiddingNo: sellerBiddingNo}, nil
}

type fakeSettingsStore struct {
	perUser map[string]value.Settings
	saved   map[string]value.Settings
}

func (f *fakeSettingsStore) GetForUser(_ context.Context, userID string) (value.Settings, error) {
	if settings, ok := f.perUser[userID]; ok {
		return settings, nil
	}

	return value.DefaultSettings(), nil
}

func (f *fakeSettingsStore) UpsertForUser(_ context.Context, userID string, settings value.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	if f.saved == nil {
		f.saved = map[string]value.Settings{}
	}

	f.saved[userID] = settings

	return nil
}

type fakeBidStore struct {
	bids []entity.Bid
}

func (f *fakeBidStore) ListForUser(_ context.Context, _ string) ([]entity.Bid, error) {
	return f.bids, nil
}

type fakeRateProvider struct{}

func (fakeRateProvider) GetRate(_ context.Context, from, to string, opts exchange.Options) entity.ExchangeRate {
	if opts.ManualRate > 0 {
		return entity.ExchangeRate{From: from, To: to, Rate: opts.ManualRate, Source: entity.RateSourceManual}
	}

	return entity.ExchangeRate{From: from, To: to, Rate: 190, Source: entity.RateSourceCached}
}

type testEnv struct {
	api             tests.APIClient
	analysisService *fakeAnalysisService
	biddingService  *fakeBiddingService
	settingsStore   *fakeSettingsStore
	bidStore        *fakeBidStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		analysisService: &fakeAnalysisService{},
		biddingService:  &fakeBiddingService{},
		settingsStore:   &fakeSettingsStore{},
		bidStore:        &fakeBidStore{},
	}

	srv := NewServer(
		NewAnalysisServer(env.analysisService, env.settingsStore),
		NewBidServer(env.biddingService, env.bidStore),
		NewSettingsServer(env.settingsStore),
		NewRateServer(fakeRateProvider{}),
	)

	router := chi.NewRouter()
	router.Use(middlewarex.TraceID, middlewarex.UserID)
	srv.RegisterRoutes(router)

	httpServer := httptest.NewServer(router)
	t.Cleanup(httpServer.Close)

	env.api = tests.NewAPIClient(httpServer.URL, nil)

	return env
}

func userHeader(userID string) http.Header {
	header := http.Header{}
	header.Set("X-User-Id", userID)

	return header
}

func TestPostV1Analysis(t *testing.T) {
	rq := require.New(t)

	env := newTestEnv(t)
	env.analysisService.report = entity.AnalysisReport{
		Products: []entity.ProductAnalysis{{
			Product: entity.Product{GlobalSpuID: 9001, Title: "Dunk Low", ArticleNumber: "DD1503-101"},
			Rows: []entity.AnalysisRow{{
				Sku:        entity.SkuRecord{GlobalSkuID: 101, Size: "260"},
				Wholesale:  entity.WholesalePrice{Amount: 840, Source: entity.PriceSourceMarket},
				LowestAsk:  840,
				OptimalBid: 839,
				Margin:     entity.MarginResult{Revenue: 151620, Cost: 151000, Profit: 620, ROI: 0.41, Profitable: true},
			}},
		}},
		Failures: map[string]string{"BAD-CODE": "no products found"},
	}

	var response rest.AnalysisReport

	resp, err := env.api.Post(context.Background(), "/v1/analysis", userHeader("user-1"), rest.BulkAnalysisRequest{
		Requests: []rest.AnalysisRequest{
			{CustomCode: "DD1503-101"},
			{ArticleNumber: "BAD-CODE"},
		},
	}, &response, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.Equal([]string{"DD1503-101", "BAD-CODE"}, env.analysisService.analyzedCodes,
		"custom code wins over the article number when both are set")

	rq.Len(response.Products, 1)
	rq.EqualValues(9001, response.Products[0].SpuID)
	rq.Len(response.Products[0].Rows, 1)

	row := response.Products[0].Rows[0]
	rq.EqualValues(101, row.SkuID)
	rq.Equal("market", row.WholesalePriceSource)
	rq.EqualValues(839, row.OptimalBid)
	rq.True(row.Profitable)

	rq.Equal("no products found", response.Failures["BAD-CODE"])
}

func TestPostV1Analysis_EmptyRequest(t *testing.T) {
	env := newTestEnv(t)

	var errResponse rest.Error

	resp, err := env.api.Post(context.Background(), "/v1/analysis", userHeader("user-1"),
		rest.BulkAnalysisRequest{}, nil, &errResponse)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.EqualValues(t, "ValidationError", errResponse.Code)
}

func TestPostV1Bids(t *testing.T) {
	rq := require.New(t)

	env := newTestEnv(t)
	env.biddingService.bulkResult = entity.BulkBidResult{
		Succeeded: 1,
		Failed:    1,
		Results: []entity.BidResult{
			{GlobalSkuID: 101, Price: 839, Success: true, SellerBiddingNo: "SB-1", Tips: "ok"},
			{GlobalSkuID: 102, Price: 0, Error: "bid price must be positive"},
		},
	}

	var response rest.BulkBidResponse

	resp, err := env.api.Post(context.Background(), "/v1/bids", userHeader("user-1"), rest.BulkBidRequest{
		Bids: []rest.BidRequest{
			{SkuID: 101, Price: 839},
			{SkuID: 102},
		},
	}, &response, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.Equal(1, response.Succeeded)
	rq.Equal(1, response.Failed)
	rq.Equal("SB-1", response.Results[0].SellerBiddingNo)
	rq.Equal("bid price must be positive", response.Results[1].Error)
}

func TestPostV1Bids_EmptyBatch(t *testing.T) {
	env := newTestEnv(t)

	var errResponse rest.Error

	resp, err := env.api.Post(context.Background(), "/v1/bids", userHeader("user-1"),
		rest.BulkBidRequest{}, nil, &errResponse)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPutV1Bid(t *testing.T) {
	rq := require.New(t)

	env := newTestEnv(t)

	var response rest.BidResult

	resp, err := env.api.Put(context.Background(), "/v1/bids/SB-77", userHeader("user-1"),
		rest.BidUpdateRequest{Price: 845}, &response, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.True(response.Success)
	rq.Equal("SB-77", response.SellerBiddingNo)
}

func TestPutV1Bid_InvalidPrice(t *testing.T) {
	env := newTestEnv(t)
	env.biddingService.updateErr = domain.NewError(errcodes.InvalidBidPrice, "bid price must be positive")

	var errResponse rest.Error

	resp, err := env.api.Put(context.Background(), "/v1/bids/SB-77", userHeader("user-1"),
		rest.BidUpdateRequest{Price: -1}, nil, &errResponse)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.EqualValues(t, "InvalidBidPrice", errResponse.Code)
}

func TestGetV1Bids(t *testing.T) {
	rq := require.New(t)

	env := newTestEnv(t)
	env.bidStore.bids = []entity.Bid{{
		ID:              "cv001",
		GlobalSkuID:     101,
		SellerBiddingNo: "SB-1",
		Price:           839,
		Quantity:        1,
		Status:          entity.BidStatusActive,
		CreatedAt:       time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}}

	var response rest.BidList

	resp, err := env.api.Get(context.Background(), "/v1/bids", userHeader("user-1"), &response, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Len(response.Bids, 1)
	rq.Equal("active", response.Bids[0].Status)
	rq.Equal("2026-08-30T12:00:00Z", response.Bids[0].CreatedAt)
}

func TestSettingsRoundTrip(t *testing.T) {
	rq := require.New(t)

	env := newTestEnv(t)

	var current rest.Settings

	resp, err := env.api.Get(context.Background(), "/v1/settings", userHeader("user-1"), &current, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.EqualValues(190, current.ExchangeRate, "unknown user gets the defaults")

	resp, err = env.api.Put(context.Background(), "/v1/settings", userHeader("user-1"), rest.Settings{
		ExchangeRate:    195,
		PlatformFeeRate: 0.06,
		ShippingCost:    3500,
		TargetProfit:    12000,
	}, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.EqualValues(195, env.settingsStore.saved["user-1"].ExchangeRate)
}

func TestPutV1Settings_Invalid(t *testing.T) {
	env := newTestEnv(t)

	var errResponse rest.Error

	resp, err := env.api.Put(context.Background(), "/v1/settings", userHeader("user-1"),
		rest.Settings{PlatformFeeRate: 1.5}, nil, &errResponse)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.EqualValues(t, "InvalidPlatformFeeRate", errResponse.Code)
}

func TestGetV1Rates(t *testing.T) {
	rq := require.New(t)

	env := newTestEnv(t)

	var response rest.Rates

	resp, err := env.api.Get(context.Background(), "/v1/rates?manualRate=195", userHeader("user-1"), &response, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Len(response.Rates, 2)

	rq.Equal("CNY", response.Rates[0].From)
	rq.Equal("manual", response.Rates[0].Source)
	rq.EqualValues(195, response.Rates[0].Rate)

	rq.Equal("USD", response.Rates[1].From)
	rq.Equal("cached", response.Rates[1].Source)
}

func TestGetV1Rates_BadManualRate(t *testing.T) {
	env := newTestEnv(t)

	var errResponse rest.Error

	resp, err := env.api.Get(context.Background(), "/v1/rates?manualRate=abc", userHeader("user-1"), nil, &errResponse)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.EqualValues(t, "InvalidExchangeRate", errResponse.Code)
}
