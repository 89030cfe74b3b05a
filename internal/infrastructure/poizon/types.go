package poizon

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"resell_margin/internal/domain/entity"
)

// envelope is the common response wrapper of every marketplace endpoint.
// code 200 means success, anything else is a remote failure.
type envelope struct {
	Code    int                 `json:"code"`
	Msg     string              `json:"msg"`
	Data    jsoniter.RawMessage `json:"data"`
	TraceID string              `json:"trace_id"`
}

// APIError carries a non-success envelope verbatim: remote code, remote
// message, remote trace id.
type APIError struct {
	Code    int
	Msg     string
	TraceID string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("poizon api error: [%d] %s", e.Code, e.Msg)
}

type sizeInfoWire struct {
	SizeKey string `json:"sizeKey"`
	Value   string `json:"value"`
	Default bool   `json:"default"`
}

type salePvInfoWire struct {
	Level           int            `json:"level"`
	PropertyValueID int64          `json:"propertyValueId"`
	Name            string         `json:"name"`
	Value           string         `json:"value"`
	DefinitionID    int64          `json:"definitionId"`
	SizeInfos       []sizeInfoWire `json:"sizeInfos"`
}

type barcodeInfoWire struct {
	CodeTypeStr string `json:"codeTypeStr"`
	CodeInfo    string `json:"codeInfo"`
}

// minPriceWire accepts the two shapes the marketplace uses for the embedded
// minimum price: a bare number or a per-currency object.
type minPriceWire struct {
	value entity.MinPrice
}

func (m *minPriceWire) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		m.value = entity.MinPrice{Kind: entity.MinPriceAbsent}
		return nil
	}

	var number float64
	if err := json.Unmarshal(data, &number); err == nil {
		m.value = entity.MinPrice{Kind: entity.MinPriceNumber, Number: number}
		return nil
	}

	var byCurrency map[string]float64
	if err := json.Unmarshal(data, &byCurrency); err == nil {
		m.value = entity.MinPrice{Kind: entity.MinPriceByCurrency, ByCurrency: byCurrency}
		return nil
	}

	// Unknown shape, treat as absent rather than failing the whole decode.
	m.value = entity.MinPrice{Kind: entity.MinPriceAbsent}

	return nil
}

type skuInfoWire struct {
	GlobalSkuID          int64             `json:"globalSkuId"`
	GlobalSpuID          int64             `json:"globalSpuId"`
	RegionSkuID          int64             `json:"regionSkuId"`
	DwSkuID              int64             `json:"dwSkuId"`
	Properties           string            `json:"properties"`
	LogoURL              string            `json:"logoUrl"`
	Price                float64           `json:"price"`
	Stock                int               `json:"stock"`
	RegionSalePvInfoList []salePvInfoWire  `json:"regionSalePvInfoList"`
	MinPrice             minPriceWire      `json:"minPrice"`
	BuyStatus            int               `json:"buyStatus"`
	UserHasBid           bool              `json:"userHasBid"`
	Status               int               `json:"status"`
	Sort                 int               `json:"sort"`
	BarCode              string            `json:"barCode"`
	BarcodeInfoList      []barcodeInfoWire `json:"barcodeInfoList"`
	LocalSoldNum         int64             `json:"localSoldNum"`
	GlobalSoldNum        int64             `json:"globalSoldNum"`
}

type spuInfoWire struct {
	Title         string `json:"title"`
	ArticleNumber string `json:"articleNumber"`
	BrandName     string `json:"brandName"`
	BrandID       int64  `json:"brandId"`
	CategoryName  string `json:"categoryName"`
	Fit           string `json:"fit"`
	LogoURL       string `json:"logoUrl"`
	SpuID         int64  `json:"spuId"`
	GlobalSpuID   int64  `json:"globalSpuId"`
	Status        int    `json:"status"`
}

type searchEntryWire struct {
	SpuInfo     spuInfoWire   `json:"spuInfo"`
	SpuID       int64         `json:"spuId"`
	Region      string        `json:"region"`
	GlobalSpuID int64         `json:"globalSpuId"`
	SkuInfoList []skuInfoWire `json:"skuInfoList"`
}

type skuListItemWire struct {
	GlobalSkuID   int64   `json:"globalSkuId"`
	Properties    string  `json:"properties"`
	Price         float64 `json:"price"`
	Stock         int     `json:"stock"`
	LocalSoldNum  int64   `json:"localSoldNum"`
	GlobalSoldNum int64   `json:"globalSoldNum"`
}

type spuWithSkusWire struct {
	GlobalSpuID int64             `json:"globalSpuId"`
	Title       string            `json:"title"`
	LogoURL     string            `json:"logoUrl"`
	Brand       string            `json:"brand"`
	SkuList     []skuListItemWire `json:"skuList"`
}

type skuListResponseWire struct {
	Contents []spuWithSkusWire `json:"contents"`
}

type marketPriceWire struct {
	GlobalMinPrice        int64 `json:"globalMinPrice"`
	LocalMinPrice         int64 `json:"localMinPrice"`
	USMinPrice            int64 `json:"usMinPrice"`
	OtherPlatformMinPrice int64 `json:"otherPlatformMinPrice"`
}

type listingResponseWire struct {
	SellerBiddingNo string `json:"sellerBiddingNo"`
	Tips            string `json:"tips"`
}

type brandSpuWire struct {
	SpuID         int64        `json:"spuId"`
	GlobalSpuID   int64        `json:"globalSpuId"`
	Title         string       `json:"title"`
	LogoURL       string       `json:"logoUrl"`
	BrandID       int64        `json:"brandId"`
	BrandName     string       `json:"brandName"`
	ArticleNumber string       `json:"articleNumber"`
	CategoryName  string       `json:"categoryName"`
	MinPrice      minPriceWire `json:"minPrice"`
}

type brandScrollWire struct {
	Contents []brandSpuWire `json:"contents"`
	ScrollID string         `json:"scrollId"`
}

func (w searchEntryWire) toDomain() entity.Product {
	product := entity.Product{
		GlobalSpuID:   w.GlobalSpuID,
		SpuID:         w.SpuID,
		BrandID:       w.SpuInfo.BrandID,
		Title:         w.SpuInfo.Title,
		Brand:         w.SpuInfo.BrandName,
		ArticleNumber: w.SpuInfo.ArticleNumber,
		CategoryName:  w.SpuInfo.CategoryName,
		Fit:           w.SpuInfo.Fit,
		LogoURL:       w.SpuInfo.LogoURL,
	}

	product.Skus = make([]entity.SkuRecord, 0, len(w.SkuInfoList))
	for _, sku := range w.SkuInfoList {
		product.Skus = append(product.Skus, sku.toDomain(w.GlobalSpuID))
	}

	return product
}

func (w skuInfoWire) toDomain(globalSpuID int64) entity.SkuRecord {
	sku := entity.SkuRecord{
		GlobalSkuID:   w.GlobalSkuID,
		GlobalSpuID:   globalSpuID,
		RegionSkuID:   w.RegionSkuID,
		DwSkuID:       w.DwSkuID,
		Properties:    w.Properties,
		Price:         w.Price,
		MinPrice:      w.MinPrice.value,
		Active:        w.Status == 1,
		Buyable:       w.BuyStatus == 1,
		UserHasBid:    w.UserHasBid,
		SortOrder:     w.Sort,
		LocalSoldNum:  w.LocalSoldNum,
		GlobalSoldNum: w.GlobalSoldNum,
	}

	if w.GlobalSpuID != 0 {
		sku.GlobalSpuID = w.GlobalSpuID
	}

	if w.BarCode != "" {
		sku.Barcodes = append(sku.Barcodes, w.BarCode)
	}

	for _, bc := range w.BarcodeInfoList {
		sku.Barcodes = append(sku.Barcodes, bc.CodeTypeStr+": "+bc.CodeInfo)
	}

	w.fillDescriptors(&sku)

	return sku
}

// fillDescriptors extracts color and size descriptors from the property
// value list the way the marketplace structures them: Color has definition
// id 1, Size definition id 6, region-specific sizes live in sizeInfos.
func (w skuInfoWire) fillDescriptors(sku *entity.SkuRecord) {
	for _, pv := range w.RegionSalePvInfoList {
		switch {
		case pv.Name == "Color" || pv.DefinitionID == 1:
			sku.Color = pv.Value
		case pv.Name == "Size" || pv.DefinitionID == 6:
			sku.Size = pv.Value

			for _, size := range pv.SizeInfos {
				switch size.SizeKey {
				case "US", "US Men", "US Women":
					if sku.SizeUS == "" || size.SizeKey != "US Women" {
						sku.SizeUS = size.Value
					}
				case "EU":
					sku.SizeEU = size.Value
				case "UK":
					sku.SizeUK = size.Value
				case "JP":
					sku.SizeJP = size.Value
				case "KR":
					sku.SizeKR = size.Value
				}
			}
		}
	}

	if sku.Size == "" {
		sku.Size = w.Properties
	}
}

func (w spuWithSkusWire) toDomain() entity.Product {
	product := entity.Product{
		GlobalSpuID: w.GlobalSpuID,
		Title:       w.Title,
		Brand:       w.Brand,
		LogoURL:     w.LogoURL,
	}

	product.Skus = make([]entity.SkuRecord, 0, len(w.SkuList))
	for _, sku := range w.SkuList {
		product.Skus = append(product.Skus, entity.SkuRecord{
			GlobalSkuID:   sku.GlobalSkuID,
			GlobalSpuID:   w.GlobalSpuID,
			Properties:    sku.Properties,
			Size:          sku.Properties,
			Price:         sku.Price,
			LocalSoldNum:  sku.LocalSoldNum,
			GlobalSoldNum: sku.GlobalSoldNum,
		})
	}

	return product
}

func (w brandSpuWire) toDomain() entity.Product {
	return entity.Product{
		GlobalSpuID:   w.GlobalSpuID,
		SpuID:         w.SpuID,
		BrandID:       w.BrandID,
		Title:         w.Title,
		Brand:         w.BrandName,
		ArticleNumber: w.ArticleNumber,
		CategoryName:  w.CategoryName,
		LogoURL:       w.LogoURL,
	}
}

func (w marketPriceWire) toDomain(currency string) entity.MarketPrice {
	return entity.MarketPrice{
		GlobalMinPrice:        w.GlobalMinPrice,
		LocalMinPrice:         w.LocalMinPrice,
		USMinPrice:            w.USMinPrice,
		OtherPlatformMinPrice: w.OtherPlatformMinPrice,
		Currency:              currency,
	}
}
