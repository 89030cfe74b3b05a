package entity

// Product is the marketplace SPU: the parent grouping of sellable sizes.
type Product struct {
	GlobalSpuID   int64
	SpuID         int64
	BrandID       int64
	Title         string
	Brand         string
	ArticleNumber string
	CategoryName  string
	Fit           string
	LogoURL       string
	Skus          []SkuRecord
}

// SkuRecord is a sellable size/variant of a product as returned by
// marketplace search. Read-only downstream; enrichment with a market price
// produces an AnalysisRow instead of mutating the record.
type SkuRecord struct {
	GlobalSkuID int64
	GlobalSpuID int64
	RegionSkuID int64
	DwSkuID     int64

	Properties string
	Color      string
	Size       string
	SizeUS     string
	SizeEU     string
	SizeUK     string
	SizeJP     string
	SizeKR     string

	// Price is the direct wholesale price field, CNY. Often absent.
	Price float64
	// MinPrice is the raw embedded minimum-price value. Its shape varies per
	// listing, see WholesalePrice decoding.
	MinPrice MinPrice

	Active     bool
	Buyable    bool
	UserHasBid bool
	Barcodes   []string
	SortOrder  int

	LocalSoldNum  int64
	GlobalSoldNum int64
}

// MarketPrice holds lowest-ask figures for one SKU in minor currency units
// (cents). Fetched per SKU and never cached, asks move too fast.
type MarketPrice struct {
	GlobalMinPrice        int64
	LocalMinPrice         int64
	USMinPrice            int64
	OtherPlatformMinPrice int64
	Currency              string
}

// Best returns the highest-confidence lowest-ask figure: the US one, then
// local, then global. Zero when none is known.
func (p MarketPrice) Best() int64 {
	switch {
	case p.USMinPrice > 0:
		return p.USMinPrice
	case p.LocalMinPrice > 0:
		return p.LocalMinPrice
	default:
		return p.GlobalMinPrice
	}
}

// ProductPage is one page of a brand-scoped product listing. ScrollID is the
// token for the next page, empty when the listing is exhausted.
type ProductPage struct {
	Products []Product
	ScrollID string
}
