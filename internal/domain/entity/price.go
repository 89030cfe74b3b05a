package entity

// WholesalePriceSource tags where a resolved wholesale price came from, in
// descending confidence order.
type WholesalePriceSource string

const (
	PriceSourceMarket   WholesalePriceSource = "market"
	PriceSourceSku      WholesalePriceSource = "sku"
	PriceSourceMinPrice WholesalePriceSource = "minPrice"
	PriceSourceNone     WholesalePriceSource = "none"
)

// WholesalePrice is a resolved wholesale price in CNY together with its
// provenance. Amount is zero iff Source is PriceSourceNone.
type WholesalePrice struct {
	Amount float64
	Source WholesalePriceSource
}

// MinPriceKind discriminates the shapes the marketplace uses for the embedded
// minimum-price field of a SKU.
type MinPriceKind int

const (
	MinPriceAbsent MinPriceKind = iota
	MinPriceNumber
	MinPriceByCurrency
)

// MinPrice is the embedded minimum-price value of a SKU. The marketplace
// returns it either as a bare number or as a per-currency object; the decoder
// in the poizon package fills in the matching variant.
type MinPrice struct {
	Kind       MinPriceKind
	Number     float64
	ByCurrency map[string]float64
}

// Resolve returns the CNY figure of the variant: the bare number, then the
// CNY key, then the USD key. ok is false when no usable figure exists.
func (m MinPrice) Resolve() (amount float64, ok bool) {
	switch m.Kind {
	case MinPriceNumber:
		if m.Number > 0 {
			return m.Number, true
		}
	case MinPriceByCurrency:
		if v := m.ByCurrency["CNY"]; v > 0 {
			return v, true
		}
		if v := m.ByCurrency["USD"]; v > 0 {
			return v, true
		}
	}

	return 0, false
}
