package entity

// MarginResult is the arithmetic outcome for one (wholesale, retail) price
// pair. Figures are KRW except ROI which is a percentage.
type MarginResult struct {
	Revenue    int64
	Cost       int64
	Profit     int64
	ROI        float64
	Profitable bool
}

// AnalysisRow is the per-SKU projection shown to the operator: resolved
// prices plus the derived margin. It is recomputed from scratch whenever
// settings change, never patched in place.
type AnalysisRow struct {
	Sku SkuRecord

	Wholesale WholesalePrice
	// LowestAsk is the live market lowest ask, CNY. Zero on a degraded row.
	LowestAsk        float64
	OptimalBid       float64
	MaxProfitableBid float64

	// RetailPrice is the retail comparison point, KRW.
	RetailPrice int64
	Margin      MarginResult

	// Degraded marks a row whose market or retail lookup failed; the row is
	// still produced so one bad SKU never hides its siblings.
	Degraded bool
}

// ProductAnalysis groups the rows of one product.
type ProductAnalysis struct {
	Product Product
	Rows    []AnalysisRow
}

// AnalysisReport is the outcome of a multi-code analysis pass. Failures maps
// a style code to the reason it produced nothing; codes that merely matched
// zero products are reported there too so the caller can tell them apart from
// transport errors by message.
type AnalysisReport struct {
	Products []ProductAnalysis
	Failures map[string]string
}
