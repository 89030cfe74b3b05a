package poizon

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"resell_margin/internal/config"
	"resell_margin/internal/domain"
	"resell_margin/internal/domain/entity"
	"resell_margin/pkg/errcodes"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(config.Poizon{
		BaseURL:   server.URL,
		AppKey:    "test-key",
		AppSecret: "test-secret",
		Timeout:   5 * time.Second,
	})
	require.NoError(t, err)

	client.now = func() time.Time { return time.UnixMilli(1700000000000) }

	return client
}

func TestNewClient_MissingCredentials(t *testing.T) {
	_, err := NewClient(config.Poizon{BaseURL: "https://open.example.com"})

	require.Error(t, err)

	code, ok := domain.GetCode(err)
	require.True(t, ok)
	require.Equal(t, errcodes.CredentialsMissing, code)
}

func TestSearchByStyleCode(t *testing.T) {
	rq := require.New(t)

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		rq.Equal(http.MethodPost, r.Method)
		rq.Equal("/dop/api/v1/pop/api/v1/intl-commodity/intl/sku/sku-basic-info/by-article-number", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		rq.NoError(err)

		var params map[string]any
		rq.NoError(json.Unmarshal(body, &params))

		rq.Equal("test-key", params["app_key"])
		rq.Equal("DD1503-101", params["articleNumber"])
		rq.Equal("en", params["language"])
		rq.Equal("Asia/Shanghai", params["timeZone"])
		rq.NotEmpty(params["sign"])

		// The signature must be reproducible from the body without the sign
		// field itself.
		sent := params["sign"]
		delete(params, "sign")
		params["timestamp"] = int64(params["timestamp"].(float64))
		rq.Equal(sent, Sign(params, "test-secret"))

		w.Write([]byte(`{"code":200,"msg":"success","data":[{
			"globalSpuId": 101,
			"spuInfo": {"title":"Dunk Low","brandName":"Nike","articleNumber":"DD1503-101"},
			"skuInfoList": [{
				"globalSkuId": 1001,
				"properties": "260",
				"status": 1,
				"buyStatus": 1,
				"regionSalePvInfoList": [
					{"name":"Size","definitionId":6,"value":"260","sizeInfos":[
						{"sizeKey":"EU","value":"41"},
						{"sizeKey":"KR","value":"260"}
					]},
					{"name":"Color","definitionId":1,"value":"White"}
				],
				"minPrice": {"CNY": 850, "USD": 120}
			}]
		}]}`))
	})

	products, err := client.SearchByStyleCode(context.Background(), "DD1503-101", "US")
	rq.NoError(err)
	rq.Len(products, 1)

	product := products[0]
	rq.EqualValues(101, product.GlobalSpuID)
	rq.Equal("Dunk Low", product.Title)
	rq.Len(product.Skus, 1)

	sku := product.Skus[0]
	rq.EqualValues(1001, sku.GlobalSkuID)
	rq.Equal("260", sku.Size)
	rq.Equal("White", sku.Color)
	rq.Equal("41", sku.SizeEU)
	rq.Equal("260", sku.SizeKR)
	rq.True(sku.Active)
	rq.True(sku.Buyable)

	amount, ok := sku.MinPrice.Resolve()
	rq.True(ok)
	rq.EqualValues(850, amount)
}

func TestSearchByStyleCode_EmptyCode(t *testing.T) {
	client := testClient(t, func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected for invalid input")
	})

	_, err := client.SearchByStyleCode(context.Background(), "", "US")

	code, ok := domain.GetCode(err)
	require.True(t, ok)
	require.Equal(t, errcodes.InvalidStyleCode, code)
}

func TestSearchByCustomCode_DecodesEntryList(t *testing.T) {
	rq := require.New(t)

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		rq.Contains(r.URL.Path, "by-custom-code")

		// Both search endpoints answer with a list of entries, even when a
		// custom code matches exactly one product.
		w.Write([]byte(`{"code":200,"msg":"success","data":[{
			"globalSpuId": 101,
			"spuInfo": {"title":"Dunk Low","articleNumber":"DD1503-101"},
			"skuInfoList": [{"globalSkuId":1001,"properties":"260"}]
		}]}`))
	})

	products, err := client.SearchByCustomCode(context.Background(), "MY-CODE", "US")
	rq.NoError(err)
	rq.Len(products, 1)
	rq.EqualValues(101, products[0].GlobalSpuID)
	rq.Equal("Dunk Low", products[0].Title)
	rq.Len(products[0].Skus, 1)
}

func TestSearchByCustomCode_EmptyMatchIsNotAnError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"code":200,"msg":"success","data":[]}`))
	})

	products, err := client.SearchByCustomCode(context.Background(), "MY-CODE", "US")

	require.NoError(t, err)
	require.Empty(t, products)
}

func TestCall_RemoteErrorEnvelope(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"code":401,"msg":"sign check failed","trace_id":"abc"}`))
	})

	_, err := client.GetMarketPrice(context.Background(), 1001, 0, "US", "USD")
	require.Error(t, err)

	code, ok := domain.GetCode(err)
	require.True(t, ok)
	require.Equal(t, errcodes.MarketplaceError, code)
	require.Contains(t, err.Error(), "[401] sign check failed")
}

func TestListSkusByProductID_TruncatesOversizedList(t *testing.T) {
	rq := require.New(t)

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		rq.NoError(err)

		var params struct {
			GlobalSpuIDs []int64 `json:"globalSpuIds"`
		}
		rq.NoError(json.Unmarshal(body, &params))
		rq.Len(params.GlobalSpuIDs, 5)

		w.Write([]byte(`{"code":200,"msg":"success","data":{"contents":[]}}`))
	})

	_, err := client.ListSkusByProductID(context.Background(), []int64{1, 2, 3, 4, 5, 6, 7}, "US")
	rq.NoError(err)
}

func TestGetMarketPrice(t *testing.T) {
	rq := require.New(t)

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		rq.NoError(err)

		var params map[string]any
		rq.NoError(json.Unmarshal(body, &params))
		rq.EqualValues(BiddingTypeShipToVerify, params["biddingType"], "non-positive bidding type falls back to ship-to-verify")

		w.Write([]byte(`{"code":200,"msg":"success","data":{
			"globalMinPrice": 11000,
			"localMinPrice": 11500,
			"usMinPrice": 12000
		}}`))
	})

	price, err := client.GetMarketPrice(context.Background(), 1001, 0, "US", "USD")
	rq.NoError(err)

	rq.Equal(entity.MarketPrice{
		GlobalMinPrice: 11000,
		LocalMinPrice:  11500,
		USMinPrice:     12000,
		Currency:       "USD",
	}, price)
	rq.EqualValues(12000, price.Best())
}

func TestGetMarketPrice_ExplicitBiddingType(t *testing.T) {
	rq := require.New(t)

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		rq.NoError(err)

		var params map[string]any
		rq.NoError(json.Unmarshal(body, &params))
		rq.EqualValues(30, params["biddingType"])

		w.Write([]byte(`{"code":200,"msg":"success","data":{"usMinPrice": 9000}}`))
	})

	price, err := client.GetMarketPrice(context.Background(), 1001, 30, "US", "USD")
	rq.NoError(err)
	rq.EqualValues(9000, price.USMinPrice)
}

func TestCreateListing(t *testing.T) {
	rq := require.New(t)

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		rq.NoError(err)

		var params map[string]any
		rq.NoError(json.Unmarshal(body, &params))

		rq.Equal("req-1", params["requestId"])
		rq.Equal("pop", params["refererSource"])

		w.Write([]byte(`{"code":200,"msg":"success","data":{"sellerBiddingNo":"SB-42","tips":"listed"}}`))
	})

	ack, err := client.CreateListing(context.Background(), entity.BidRequest{
		RequestID:           "req-1",
		GlobalSkuID:         1001,
		Price:               849,
		Quantity:            1,
		Currency:            "USD",
		CountryCode:         "US",
		DeliveryCountryCode: "US",
	})
	rq.NoError(err)
	rq.Equal("SB-42", ack.SellerBiddingNo)
	rq.Equal("listed", ack.Tips)
}

func TestUpdateListing(t *testing.T) {
	rq := require.New(t)

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		rq.Contains(r.URL.Path, "update-normal-autonomous-bidding")

		body, err := io.ReadAll(r.Body)
		rq.NoError(err)

		var params map[string]any
		rq.NoError(json.Unmarshal(body, &params))

		rq.Equal("SB-77", params["sellerBiddingNo"])
		rq.EqualValues(845, params["price"])
		rq.EqualValues(1, params["quantity"])
		rq.Equal("USD", params["currency"])
		rq.NotContains(params, "requestId", "updates carry no deduplication key")

		w.Write([]byte(`{"code":200,"msg":"success","data":{"sellerBiddingNo":"SB-77","tips":"price updated"}}`))
	})

	ack, err := client.UpdateListing(context.Background(), "SB-77", 845, 1, "USD")
	rq.NoError(err)
	rq.Equal("SB-77", ack.SellerBiddingNo)
	rq.Equal("price updated", ack.Tips)
}

func TestUpdateListing_EmptyBiddingNo(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected")
	})

	_, err := client.UpdateListing(context.Background(), "", 845, 1, "USD")

	code, ok := domain.GetCode(err)
	require.True(t, ok)
	require.Equal(t, errcodes.InvalidBiddingNo, code)
}

func TestListProductsByBrand(t *testing.T) {
	rq := require.New(t)

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		rq.Contains(r.URL.Path, "scroll-by-brandId")

		body, err := io.ReadAll(r.Body)
		rq.NoError(err)

		var params map[string]any
		rq.NoError(json.Unmarshal(body, &params))

		rq.EqualValues(1, params["pageNum"])
		rq.EqualValues(20, params["pageSize"], "page size defaults when not set")
		rq.Equal("", params["scrollId"], "first page sends a literal empty scrollId")

		w.Write([]byte(`{"code":200,"msg":"success","data":{
			"scrollId":"scroll-2",
			"contents":[{"globalSpuId":9001,"title":"Dunk Low","articleNumber":"DD1503-101"}]
		}}`))
	})

	page, err := client.ListProductsByBrand(context.Background(), []int64{13}, "", 0, "US")
	rq.NoError(err)
	rq.Equal("scroll-2", page.ScrollID)
	rq.Len(page.Products, 1)
	rq.EqualValues(9001, page.Products[0].GlobalSpuID)
}

func TestListProductsByBrand_NoBrands(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected")
	})

	_, err := client.ListProductsByBrand(context.Background(), nil, "", 0, "US")

	code, ok := domain.GetCode(err)
	require.True(t, ok)
	require.Equal(t, errcodes.ValidationError, code)
}
