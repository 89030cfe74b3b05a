package entity

// RetailItem is one normalized retail search hit. Title has its HTML markup
// stripped; Overseas and Trusted are derived from keyword/allow-list matching.
type RetailItem struct {
	Title    string
	Link     string
	Image    string
	Price    int64
	MallName string
	Overseas bool
	Trusted  bool
}

// RetailFilters narrows a retail search result set before summarizing.
type RetailFilters struct {
	ExcludeOverseas bool
	TrustedOnly     bool
	MinPrice        int64
	MaxPrice        int64
}

// RetailPriceSummary reduces a filtered, price-sorted retail result set.
// AveragePrice is the rounded mean of at most the 5 cheapest items, which
// keeps a single anomalous listing from skewing the figure. TrustedPrice is
// zero when no trusted seller was present. Items holds at most the 3 cheapest
// hits as sample data. An all-zero summary means the filters left nothing, it
// is not an error.
type RetailPriceSummary struct {
	LowestPrice  int64
	AveragePrice int64
	TrustedPrice int64
	Total        int
	Items        []RetailItem
}
