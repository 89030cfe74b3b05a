// This file should be generated from the openapi specification and be named types.gen.go
package rest

// Error error model
type Error struct {
	// Code error code
	Code ErrorCode `json:"code"`

	// Message human readable message (to be shown in the UI)
	Message string `json:"message"`
}

// ErrorCode error code
type ErrorCode string

// AnalysisRequest request for a margin analysis of a single product
type AnalysisRequest struct {
	// ArticleNumber marketplace article number of the product
	ArticleNumber string `json:"articleNumber,omitempty"`

	// CustomCode seller custom code, preferred over the article number when set
	CustomCode string `json:"customCode,omitempty"`
}

// BulkAnalysisRequest request for a margin analysis of several products
type BulkAnalysisRequest struct {
	// Requests products to analyze, processed in order
	Requests []AnalysisRequest `json:"requests"`
}

// AnalysisReport outcome of a bulk margin analysis
type AnalysisReport struct {
	// Products analyzed products, one entry per marketplace match
	Products []AnalysisResponse `json:"products"`

	// Failures product codes that produced nothing, with the reason
	Failures map[string]string `json:"failures"`
}

// AnalysisResponse per-size margin analysis of a product
type AnalysisResponse struct {
	// SpuID marketplace product identifier
	SpuID int64 `json:"spuId"`

	// Title product title
	Title string `json:"title"`

	// ArticleNumber marketplace article number
	ArticleNumber string `json:"articleNumber"`

	// StyleCode manufacturer style code used for retail search
	StyleCode string `json:"styleCode"`

	// LogoURL product image url
	LogoURL string `json:"logoUrl,omitempty"`

	// Rows per-size analysis rows
	Rows []AnalysisRow `json:"rows"`
}

// AnalysisRow margin analysis of a single size
type AnalysisRow struct {
	// SkuID marketplace sku identifier
	SkuID int64 `json:"skuId"`

	// Size human readable size label
	Size string `json:"size"`

	// WholesalePrice current wholesale price, CNY
	WholesalePrice float64 `json:"wholesalePrice"`

	// WholesalePriceSource origin of the wholesale price value
	WholesalePriceSource string `json:"wholesalePriceSource"`

	// LowestAsk lowest competing ask on the marketplace, CNY
	LowestAsk float64 `json:"lowestAsk"`

	// OptimalBid suggested undercutting bid, CNY
	OptimalBid float64 `json:"optimalBid"`

	// MaxProfitableBid highest bid that still meets the target profit, CNY
	MaxProfitableBid float64 `json:"maxProfitableBid"`

	// RetailPrice retail reference price, KRW
	RetailPrice int64 `json:"retailPrice"`

	// Revenue expected payout after platform fee, KRW
	Revenue int64 `json:"revenue"`

	// Cost total acquisition cost, KRW
	Cost int64 `json:"cost"`

	// Profit expected profit, KRW
	Profit int64 `json:"profit"`

	// ROI return on investment, percent
	ROI float64 `json:"roi"`

	// Profitable whether the size is worth bidding on
	Profitable bool `json:"profitable"`

	// Degraded true when market data for the size could not be fetched
	Degraded bool `json:"degraded"`
}

// BidRequest request to place a single bid
type BidRequest struct {
	// SkuID marketplace sku identifier
	SkuID int64 `json:"skuId"`

	// Price bid price, CNY
	Price float64 `json:"price"`

	// Quantity number of items, defaults to 1
	Quantity int `json:"quantity,omitempty"`
}

// BulkBidRequest request to place several bids sequentially
type BulkBidRequest struct {
	// Bids bids to place, processed in order
	Bids []BidRequest `json:"bids"`
}

// BidResult outcome of a single bid attempt
type BidResult struct {
	// SkuID marketplace sku identifier
	SkuID int64 `json:"skuId"`

	// Price bid price, CNY
	Price float64 `json:"price"`

	// Success whether the marketplace accepted the bid
	Success bool `json:"success"`

	// SellerBiddingNo marketplace bidding identifier, set on success
	SellerBiddingNo string `json:"sellerBiddingNo,omitempty"`

	// Tips marketplace hint attached to the accepted bid
	Tips string `json:"tips,omitempty"`

	// Error marketplace error message, set on failure
	Error string `json:"error,omitempty"`
}

// BulkBidResponse outcome of a bulk bid submission
type BulkBidResponse struct {
	// Succeeded number of accepted bids
	Succeeded int `json:"succeeded"`

	// Failed number of rejected bids
	Failed int `json:"failed"`

	// Results per-bid outcomes in submission order
	Results []BidResult `json:"results"`
}

// BidUpdateRequest request to change the price of an existing bid
type BidUpdateRequest struct {
	// Price new bid price, CNY
	Price float64 `json:"price"`

	// Quantity number of items, defaults to 1
	Quantity int `json:"quantity,omitempty"`
}

// Bid stored bid record
type Bid struct {
	// ID internal bid identifier
	ID string `json:"id"`

	// SkuID marketplace sku identifier
	SkuID int64 `json:"skuId"`

	// SellerBiddingNo marketplace bidding identifier
	SellerBiddingNo string `json:"sellerBiddingNo,omitempty"`

	// Price bid price, CNY
	Price float64 `json:"price"`

	// Quantity number of items
	Quantity int `json:"quantity"`

	// Status bid status
	Status string `json:"status"`

	// CreatedAt creation time, RFC 3339
	CreatedAt string `json:"createdAt"`

	// UpdatedAt last update time, RFC 3339
	UpdatedAt string `json:"updatedAt"`
}

// BidList stored bids of the current user
type BidList struct {
	// Bids bids ordered by creation time, newest first
	Bids []Bid `json:"bids"`
}

// Settings margin calculation settings of the current user
type Settings struct {
	// ExchangeRate manual CNY to KRW rate, 0 means use the live rate
	ExchangeRate float64 `json:"exchangeRate"`

	// PlatformFeeRate marketplace fee share, 0..1
	PlatformFeeRate float64 `json:"platformFeeRate"`

	// ShippingCost shipping cost per item, KRW
	ShippingCost float64 `json:"shippingCost"`

	// TargetProfit desired profit per item, KRW
	TargetProfit float64 `json:"targetProfit"`
}

// Rate resolved exchange rate for a currency pair
type Rate struct {
	// From source currency code
	From string `json:"from"`

	// To target currency code
	To string `json:"to"`

	// Rate units of target currency per unit of source currency
	Rate float64 `json:"rate"`

	// Source where the rate came from: manual, cached, remote or default
	Source string `json:"source"`
}

// Rates resolved exchange rates
type Rates struct {
	// Rates rates for the pairs the service works with
	Rates []Rate `json:"rates"`
}
