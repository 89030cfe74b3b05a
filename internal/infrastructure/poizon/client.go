// Package poizon is the signed client for the wholesale marketplace API.
// Every call is a POST whose body carries the business parameters, the
// identity key, a fresh millisecond timestamp and an MD5 signature over all
// of them.
package poizon

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"resell_margin/internal/config"
	"resell_margin/internal/domain"
	"resell_margin/internal/domain/entity"
	"resell_margin/pkg/errcodes"
	"resell_margin/pkg/httpx"
	"resell_margin/pkg/logx"
)

const (
	endpointSearchByArticleNumber = "/dop/api/v1/pop/api/v1/intl-commodity/intl/sku/sku-basic-info/by-article-number"
	endpointSearchByCustomCode    = "/dop/api/v1/pop/api/v1/intl-commodity/intl/sku/sku-basic-info/by-custom-code"
	endpointSkusByGlobalSpu       = "/dop/api/v1/pop/api/v1/intl-commodity/intl/sku/sku-basic-info/by-global-spu"
	endpointMarketPrice           = "/dop/api/v1/pop/api/v1/recommend-bid/price"
	endpointCreateListing         = "/dop/api/v1/pop/api/v1/submit-bid/normal-autonomous-bidding"
	endpointUpdateListing         = "/dop/api/v1/pop/api/v1/submit-bid/update-normal-autonomous-bidding"
	endpointSpusByBrand           = "/dop/api/v1/pop/api/v1/intl-commodity/intl/spu/spu-basic-info/scroll-by-brandId"
)

// BiddingTypeShipToVerify is the listing mode market prices are quoted for
// unless the caller asks for another one.
const BiddingTypeShipToVerify = 20

const (
	defaultLanguage = "en"
	defaultTimeZone = "Asia/Shanghai"

	// maxSpuIDsPerCall is the documented ceiling of the by-global-spu
	// endpoint; oversized id lists are truncated, not rejected.
	maxSpuIDsPerCall = 5

	defaultPageSize = 20
)

// Client talks to the marketplace with two HTTP clients: reads go through a
// retrying transport, writes never do. createListing and updateListing are
// not idempotent; a silent transport-level retry could double a bid, so
// retrying a write is only ever an explicit caller decision carried by a
// fresh requestId.
type Client struct {
	baseURL   string
	appKey    string
	appSecret string

	readClient  *http.Client
	writeClient *http.Client

	now func() time.Time
}

// NewClient validates the credentials and builds the two transports.
func NewClient(cfg config.Poizon) (*Client, error) {
	if cfg.AppKey == "" || cfg.AppSecret == "" {
		return nil, domain.NewError(errcodes.CredentialsMissing,
			"poizon credentials are not set, check POIZON_APP_KEY and POIZON_APP_SECRET")
	}

	logging := httpx.NewLoggingRoundTripper(
		http.DefaultTransport,
		httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
	)

	return &Client{
		baseURL:   cfg.BaseURL,
		appKey:    cfg.AppKey,
		appSecret: cfg.AppSecret,
		readClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: httpx.NewRetryRoundTripper(logging, cfg.MaxRetries),
		},
		writeClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: logging,
		},
		now: time.Now,
	}, nil
}

// SearchByStyleCode looks a product up by its article number. The
// marketplace may return zero, one or many product entries for one code.
func (c *Client) SearchByStyleCode(ctx context.Context, styleCode, region string) ([]entity.Product, error) {
	if styleCode == "" {
		return nil, domain.NewError(errcodes.InvalidStyleCode, "style code is required")
	}

	params := map[string]any{
		"articleNumber": styleCode,
		"region":        region,
		"statisticsDataQry": map[string]string{
			"language": defaultLanguage,
			"region":   region,
		},
	}

	var entries []searchEntryWire
	if err := c.call(ctx, c.readClient, endpointSearchByArticleNumber, params, &entries); err != nil {
		return nil, err
	}

	products := make([]entity.Product, 0, len(entries))
	for _, entry := range entries {
		products = append(products, entry.toDomain())
	}

	return products, nil
}

// SearchByCustomCode looks a product up by the seller's custom code. Unlike
// the article-number endpoint it returns sales-volume statistics, but it may
// legitimately match nothing for a valid code.
func (c *Client) SearchByCustomCode(ctx context.Context, customCode, region string) ([]entity.Product, error) {
	if customCode == "" {
		return nil, domain.NewError(errcodes.InvalidStyleCode, "custom code is required")
	}

	params := map[string]any{
		"customCode":         customCode,
		"region":             region,
		"sellerStatusEnable": false,
		"buyStatusEnable":    false,
		"statisticsDataQry": map[string]string{
			"language": defaultLanguage,
			"region":   region,
		},
	}

	var entries []searchEntryWire
	if err := c.call(ctx, c.readClient, endpointSearchByCustomCode, params, &entries); err != nil {
		return nil, err
	}

	products := make([]entity.Product, 0, len(entries))
	for _, entry := range entries {
		products = append(products, entry.toDomain())
	}

	return products, nil
}

// ListSkusByProductID fetches the size lists of up to five products at once.
// An oversized id list is truncated to the documented maximum.
func (c *Client) ListSkusByProductID(ctx context.Context, globalSpuIDs []int64, region string) ([]entity.Product, error) {
	if len(globalSpuIDs) == 0 {
		return nil, domain.NewError(errcodes.ValidationError, "at least one product id is required")
	}

	if len(globalSpuIDs) > maxSpuIDsPerCall {
		globalSpuIDs = globalSpuIDs[:maxSpuIDsPerCall]
	}

	params := map[string]any{
		"globalSpuIds":       globalSpuIDs,
		"region":             region,
		"sellerStatusEnable": false,
		"buyStatusEnable":    false,
		"statisticsDataQry": map[string]string{
			"language": defaultLanguage,
			"region":   region,
		},
	}

	var resp skuListResponseWire
	if err := c.call(ctx, c.readClient, endpointSkusByGlobalSpu, params, &resp); err != nil {
		return nil, err
	}

	products := make([]entity.Product, 0, len(resp.Contents))
	for _, spu := range resp.Contents {
		products = append(products, spu.toDomain())
	}

	return products, nil
}

// GetMarketPrice fetches the current lowest-ask figures for one SKU, in
// minor units of the requested currency. A non-positive biddingType falls
// back to ship-to-verify.
func (c *Client) GetMarketPrice(ctx context.Context, globalSkuID int64, biddingType int, region, currency string) (entity.MarketPrice, error) {
	if globalSkuID <= 0 {
		return entity.MarketPrice{}, domain.NewError(errcodes.InvalidSkuID, "sku id is required")
	}

	if biddingType <= 0 {
		biddingType = BiddingTypeShipToVerify
	}

	params := map[string]any{
		"globalSkuId": globalSkuID,
		"biddingType": biddingType,
		"region":      region,
		"currency":    currency,
		"countryCode": region,
	}

	var resp marketPriceWire
	if err := c.call(ctx, c.readClient, endpointMarketPrice, params, &resp); err != nil {
		return entity.MarketPrice{}, err
	}

	return resp.toDomain(currency), nil
}

// CreateListing submits a new bid. The requestId is the marketplace-side
// deduplication key; input validation belongs to the orchestrator.
func (c *Client) CreateListing(ctx context.Context, bid entity.BidRequest) (entity.ListingAck, error) {
	params := map[string]any{
		"requestId":           bid.RequestID,
		"globalSkuId":         bid.GlobalSkuID,
		"price":               bid.Price,
		"quantity":            bid.Quantity,
		"countryCode":         bid.CountryCode,
		"deliveryCountryCode": bid.DeliveryCountryCode,
		"currency":            bid.Currency,
		"refererSource":       "pop",
	}

	var resp listingResponseWire
	if err := c.call(ctx, c.writeClient, endpointCreateListing, params, &resp); err != nil {
		return entity.ListingAck{}, err
	}

	return entity.ListingAck{SellerBiddingNo: resp.SellerBiddingNo, Tips: resp.Tips}, nil
}

// UpdateListing changes the price or quantity of an existing bid.
func (c *Client) UpdateListing(ctx context.Context, sellerBiddingNo string, price float64, quantity int, currency string) (entity.ListingAck, error) {
	if sellerBiddingNo == "" {
		return entity.ListingAck{}, domain.NewError(errcodes.InvalidBiddingNo, "seller bidding number is required")
	}

	params := map[string]any{
		"sellerBiddingNo": sellerBiddingNo,
		"price":           price,
		"quantity":        quantity,
		"currency":        currency,
	}

	var resp listingResponseWire
	if err := c.call(ctx, c.writeClient, endpointUpdateListing, params, &resp); err != nil {
		return entity.ListingAck{}, err
	}

	return entity.ListingAck{SellerBiddingNo: resp.SellerBiddingNo, Tips: resp.Tips}, nil
}

// ListProductsByBrand pages through the brand catalog. Pass an empty
// scrollID for the first page; an empty ScrollID in the result means the
// listing is exhausted.
func (c *Client) ListProductsByBrand(ctx context.Context, brandIDs []int64, scrollID string, pageSize int, region string) (entity.ProductPage, error) {
	if len(brandIDs) == 0 {
		return entity.ProductPage{}, domain.NewError(errcodes.ValidationError, "at least one brand id is required")
	}

	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	params := map[string]any{
		"brandIdList": brandIDs,
		"pageSize":    pageSize,
		"pageNum":     1,
		"region":      region,
		"statisticsDataQry": map[string]string{
			"language": defaultLanguage,
			"region":   region,
		},
	}

	// The first page is requested with a literal empty scrollId, the field
	// is not omitted. It is excluded from the signature as an empty value.
	params["scrollId"] = scrollID

	var resp brandScrollWire
	if err := c.call(ctx, c.readClient, endpointSpusByBrand, params, &resp); err != nil {
		return entity.ProductPage{}, err
	}

	page := entity.ProductPage{ScrollID: resp.ScrollID}

	page.Products = make([]entity.Product, 0, len(resp.Contents))
	for _, spu := range resp.Contents {
		page.Products = append(page.Products, spu.toDomain())
	}

	return page, nil
}

// call merges the common parameters in, signs the set and executes the POST.
// out receives the envelope's data payload on success.
func (c *Client) call(ctx context.Context, httpClient *http.Client, endpoint string, business map[string]any, out any) error {
	params := make(map[string]any, len(business)+4)
	params["app_key"] = c.appKey
	params["timestamp"] = c.now().UnixMilli()
	params["language"] = defaultLanguage
	params["timeZone"] = defaultTimeZone

	for key, v := range business {
		params[key] = v
	}

	params["sign"] = Sign(params, c.appSecret)

	body, err := json.Marshal(params)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "marshal request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "build request")
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return domain.WrapError(err, errcodes.MarketplaceUnavailable, "marketplace request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.WrapError(err, errcodes.MarketplaceUnavailable, "read marketplace response")
	}

	if resp.StatusCode != http.StatusOK {
		return domain.WrapError(
			fmt.Errorf("http status %d", resp.StatusCode),
			errcodes.MarketplaceUnavailable,
			"marketplace request failed",
		)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return domain.WrapError(err, errcodes.MarketplaceError, "decode marketplace envelope")
	}

	if env.Code != http.StatusOK {
		apiErr := &APIError{Code: env.Code, Msg: env.Msg, TraceID: env.TraceID}

		return domain.WrapError(apiErr, errcodes.MarketplaceError, apiErr.Error())
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return domain.WrapError(err, errcodes.MarketplaceError, "decode marketplace payload")
		}
	}

	return nil
}
