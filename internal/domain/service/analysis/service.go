// Package analysis ties marketplace search, market-price lookups, retail
// price summaries and the margin arithmetic into the per-SKU rows the
// operator works with, and drives bid submission.
package analysis

import (
	"context"
	"log/slog"
	"math"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/xid"

	"resell_margin/internal/config"
	"resell_margin/internal/domain"
	"resell_margin/internal/domain/entity"
	"resell_margin/internal/domain/service/margin"
	"resell_margin/internal/domain/value"
	"resell_margin/internal/infrastructure/exchange"
	"resell_margin/internal/infrastructure/naver"
	"resell_margin/pkg/contextx"
	"resell_margin/pkg/errcodes"
	"resell_margin/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	defaultRegion   = "US"
	defaultCurrency = "USD"

	// retailCacheTTL memoizes retail summaries within an analysis session.
	// Retail prices move slower than marketplace asks, a short TTL is safe
	// and saves one search call per duplicated (styleCode, size) pair.
	retailCacheTTL = 10 * time.Minute
)

type MarketplaceClient interface {
	SearchByStyleCode(ctx context.Context, styleCode, region string) ([]entity.Product, error)
	SearchByCustomCode(ctx context.Context, customCode, region string) ([]entity.Product, error)
	ListSkusByProductID(ctx context.Context, globalSpuIDs []int64, region string) ([]entity.Product, error)
	GetMarketPrice(ctx context.Context, globalSkuID int64, biddingType int, region, currency string) (entity.MarketPrice, error)
	CreateListing(ctx context.Context, bid entity.BidRequest) (entity.ListingAck, error)
	UpdateListing(ctx context.Context, sellerBiddingNo string, price float64, quantity int, currency string) (entity.ListingAck, error)
}

type RetailPriceClient interface {
	SearchSummary(ctx context.Context, query string, filters entity.RetailFilters) (entity.RetailPriceSummary, error)
}

type RateProvider interface {
	GetRate(ctx context.Context, from, to string, opts exchange.Options) entity.ExchangeRate
}

type BidRepository interface {
	Save(ctx context.Context, bid entity.Bid) error
	UpdateStatus(ctx context.Context, userID, sellerBiddingNo string, status entity.BidStatus) error
}

// BidInput is one item of a bulk bid submission.
type BidInput struct {
	GlobalSkuID int64
	Price       float64
	Quantity    int
}

type Service struct {
	marketplace MarketplaceClient
	retail      RetailPriceClient
	rates       RateProvider
	bids        BidRepository

	retailCache *gocache.Cache

	preferCustomCode bool
	region           string
	currency         string
}

func NewService(
	marketplace MarketplaceClient,
	retail RetailPriceClient,
	rates RateProvider,
	bids BidRepository,
	cfg config.Analysis,
) *Service {
	return &Service{
		marketplace:      marketplace,
		retail:           retail,
		rates:            rates,
		bids:             bids,
		retailCache:      gocache.New(retailCacheTTL, retailCacheTTL),
		preferCustomCode: cfg.PreferCustomCode,
		region:           defaultRegion,
		currency:         defaultCurrency,
	}
}

// Analyze builds one AnalysisRow per SKU of every matched product. A bad
// style code is reported in the Failures map and never aborts the rest of
// the batch.
func (s *Service) Analyze(ctx context.Context, styleCodes []string, settings value.Settings) entity.AnalysisReport {
	report := entity.AnalysisReport{
		Products: []entity.ProductAnalysis{},
		Failures: map[string]string{},
	}

	effective := s.effectiveSettings(ctx, settings)

	for _, styleCode := range styleCodes {
		if styleCode == "" {
			report.Failures[styleCode] = "style code is required"
			continue
		}

		products, err := s.lookup(ctx, styleCode)
		if err != nil {
			logger(ctx).Warn("product lookup failed",
				slog.String("styleCode", styleCode), logx.Error(err))

			report.Failures[styleCode] = err.Error()

			continue
		}

		if len(products) == 0 {
			report.Failures[styleCode] = "no products found"
			continue
		}

		for _, product := range products {
			report.Products = append(report.Products, s.analyzeProduct(ctx, product, styleCode, effective))
		}
	}

	return report
}

// lookup prefers the custom-code search because it carries sales-volume
// statistics; a failed call or an empty match both fall back to the
// article-number search. The preference is policy, not an API contract.
func (s *Service) lookup(ctx context.Context, styleCode string) ([]entity.Product, error) {
	if s.preferCustomCode {
		products, err := s.marketplace.SearchByCustomCode(ctx, styleCode, s.region)
		if err == nil && len(products) > 0 {
			return products, nil
		}

		if err != nil {
			logger(ctx).Debug("custom code search failed, falling back",
				slog.String("styleCode", styleCode), logx.Error(err))
		}
	}

	return s.marketplace.SearchByStyleCode(ctx, styleCode, s.region) //nolint:wrapcheck
}

func (s *Service) analyzeProduct(ctx context.Context, product entity.Product, styleCode string, settings value.Settings) entity.ProductAnalysis {
	if product.ArticleNumber == "" {
		product.ArticleNumber = styleCode
	}

	result := entity.ProductAnalysis{
		Product: product,
		Rows:    make([]entity.AnalysisRow, 0, len(product.Skus)),
	}

	// Market-price and retail lookups run one SKU at a time. The marketplace
	// signs every request with a fresh timestamp and rate-limits bursts, so
	// sequential is the safe shape here.
	for _, sku := range product.Skus {
		result.Rows = append(result.Rows, s.analyzeSku(ctx, sku, styleCode, settings))
	}

	return result
}

func (s *Service) analyzeSku(ctx context.Context, sku entity.SkuRecord, styleCode string, settings value.Settings) entity.AnalysisRow {
	row := entity.AnalysisRow{Sku: sku}

	var marketPrice entity.MarketPrice

	if sku.GlobalSkuID > 0 {
		var err error

		marketPrice, err = s.marketplace.GetMarketPrice(ctx, sku.GlobalSkuID, 0, s.region, s.currency)
		if err != nil {
			logger(ctx).Warn("market price lookup failed, row degraded",
				slog.Int64("globalSkuId", sku.GlobalSkuID), logx.Error(err))

			row.Degraded = true
		}
	}

	row.Wholesale, row.LowestAsk = s.resolveWholesalePrice(ctx, sku, marketPrice)

	summary, err := s.retailSummary(ctx, styleCode, sku.Size)
	if err != nil {
		logger(ctx).Warn("retail price lookup failed, row degraded",
			slog.String("styleCode", styleCode), slog.String("size", sku.Size), logx.Error(err))

		row.Degraded = true
	} else {
		row.RetailPrice = summary.LowestPrice
	}

	row.Margin = margin.Compute(margin.PriceInput{
		WholesalePrice: row.Wholesale.Amount,
		RetailPrice:    float64(row.RetailPrice),
	}, settings)

	row.OptimalBid = margin.OptimalBidPrice(row.LowestAsk)
	row.MaxProfitableBid = margin.MaxBidPriceForTargetProfit(float64(row.RetailPrice), settings.TargetProfit, settings)

	return row
}

// resolveWholesalePrice applies the documented priority: the live market
// figure, then the SKU's direct price field, then the embedded minimum-price
// value, then an explicit "none". Market figures arrive as USD cents and are
// converted to CNY with a live rate rather than a hardcoded constant.
func (s *Service) resolveWholesalePrice(ctx context.Context, sku entity.SkuRecord, marketPrice entity.MarketPrice) (entity.WholesalePrice, float64) {
	if best := marketPrice.Best(); best > 0 {
		usdToCny := s.rates.GetRate(ctx, "USD", "CNY", exchange.Options{}).Rate
		lowestAsk := math.Round(float64(best)/100*usdToCny*100) / 100
		amount := math.Round(float64(best) / 100 * usdToCny)

		return entity.WholesalePrice{Amount: amount, Source: entity.PriceSourceMarket}, lowestAsk
	}

	if sku.Price > 0 {
		return entity.WholesalePrice{Amount: sku.Price, Source: entity.PriceSourceSku}, 0
	}

	if amount, ok := sku.MinPrice.Resolve(); ok {
		return entity.WholesalePrice{Amount: amount, Source: entity.PriceSourceMinPrice}, 0
	}

	return entity.WholesalePrice{Source: entity.PriceSourceNone}, 0
}

func (s *Service) retailSummary(ctx context.Context, styleCode, size string) (entity.RetailPriceSummary, error) {
	key := styleCode + "/" + size

	if cached, ok := s.retailCache.Get(key); ok {
		return cached.(entity.RetailPriceSummary), nil //nolint:forcetypeassert
	}

	summary, err := s.retail.SearchSummary(ctx, naver.BuildQuery(styleCode, size), entity.RetailFilters{ExcludeOverseas: true})
	if err != nil {
		return entity.RetailPriceSummary{}, err //nolint:wrapcheck
	}

	s.retailCache.SetDefault(key, summary)

	return summary, nil
}

// effectiveSettings resolves the rate the margin arithmetic will use: a
// positive stored rate is a manual override, zero means take the live
// CNY to KRW rate.
func (s *Service) effectiveSettings(ctx context.Context, settings value.Settings) value.Settings {
	rate := s.rates.GetRate(ctx, "CNY", "KRW", exchange.Options{ManualRate: settings.ExchangeRate})
	settings.ExchangeRate = rate.Rate

	return settings
}

// PlaceBulkBids submits bids strictly sequentially, validates each item
// before any network call and never aborts the batch on one failure. Every
// attempt gets a fresh request id; the marketplace deduplicates on it, so
// reuse across logically distinct bids would silently drop bids.
func (s *Service) PlaceBulkBids(ctx context.Context, inputs []BidInput) (entity.BulkBidResult, error) {
	if len(inputs) == 0 {
		return entity.BulkBidResult{}, domain.NewError(errcodes.ValidationError, "at least one bid is required")
	}

	result := entity.BulkBidResult{Results: make([]entity.BidResult, 0, len(inputs))}

	for _, input := range inputs {
		itemResult := s.placeBid(ctx, input)

		if itemResult.Success {
			result.Succeeded++
		} else {
			result.Failed++
		}

		result.Results = append(result.Results, itemResult)
	}

	return result, nil
}

func (s *Service) placeBid(ctx context.Context, input BidInput) entity.BidResult {
	itemResult := entity.BidResult{GlobalSkuID: input.GlobalSkuID, Price: input.Price}

	if input.GlobalSkuID <= 0 {
		itemResult.Error = "valid sku id is required"
		return itemResult
	}

	if input.Price <= 0 {
		itemResult.Error = "bid price must be positive"
		return itemResult
	}

	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	bid := entity.BidRequest{
		RequestID:           "bid-" + xid.New().String(),
		GlobalSkuID:         input.GlobalSkuID,
		Price:               input.Price,
		Quantity:            quantity,
		Currency:            s.currency,
		CountryCode:         s.region,
		DeliveryCountryCode: s.region,
	}

	ack, err := s.marketplace.CreateListing(ctx, bid)
	if err != nil {
		itemResult.Error = err.Error()
		return itemResult
	}

	itemResult.Success = true
	itemResult.SellerBiddingNo = ack.SellerBiddingNo
	itemResult.Tips = ack.Tips

	s.saveBid(ctx, bid, ack)

	return itemResult
}

// UpdateBid changes an existing listing's price.
func (s *Service) UpdateBid(ctx context.Context, sellerBiddingNo string, price float64, quantity int) (entity.ListingAck, error) {
	if sellerBiddingNo == "" {
		return entity.ListingAck{}, domain.NewError(errcodes.InvalidBiddingNo, "seller bidding number is required")
	}

	if price <= 0 {
		return entity.ListingAck{}, domain.NewError(errcodes.InvalidBidPrice, "bid price must be positive")
	}

	if quantity <= 0 {
		quantity = 1
	}

	ack, err := s.marketplace.UpdateListing(ctx, sellerBiddingNo, price, quantity, s.currency)
	if err != nil {
		return entity.ListingAck{}, err //nolint:wrapcheck
	}

	userID, userErr := contextx.UserIDFromContext(ctx)
	if userErr == nil {
		if err := s.bids.UpdateStatus(ctx, userID.String(), sellerBiddingNo, entity.BidStatusUpdated); err != nil {
			logger(ctx).Warn("bid status update failed", logx.Error(err))
		}
	}

	return ack, nil
}

// saveBid records the accepted bid. The listing already exists on the
// marketplace at this point, so a storage failure is logged, not surfaced.
func (s *Service) saveBid(ctx context.Context, bid entity.BidRequest, ack entity.ListingAck) {
	userID, err := contextx.UserIDFromContext(ctx)
	if err != nil {
		userID = "anonymous"
	}

	record := entity.Bid{
		UserID:          userID.String(),
		RequestID:       bid.RequestID,
		GlobalSkuID:     bid.GlobalSkuID,
		SellerBiddingNo: ack.SellerBiddingNo,
		Price:           bid.Price,
		Quantity:        bid.Quantity,
		Currency:        bid.Currency,
		Status:          entity.BidStatusActive,
	}

	if err := s.bids.Save(ctx, record); err != nil {
		logger(ctx).Warn("bid persistence failed",
			slog.String("sellerBiddingNo", ack.SellerBiddingNo), logx.Error(err))
	}
}
