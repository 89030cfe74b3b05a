// Package naver queries the retail shopping search API and reduces result
// sets to price summaries used as the resale comparison point.
package naver

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"resell_margin/internal/config"
	"resell_margin/internal/domain"
	"resell_margin/internal/domain/entity"
	"resell_margin/pkg/errcodes"
	"resell_margin/pkg/httpx"
	"resell_margin/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

const (
	searchPath = "/v1/search/shop.json"

	// searchDisplay is how many price-ascending hits one summary is built
	// from.
	searchDisplay = 20

	// averageTopN bounds the average to the cheapest items so one anomalous
	// listing cannot skew it.
	averageTopN = 5

	// sampleItems is how many cheapest hits a summary carries as examples.
	sampleItems = 3
)

//nolint:gochecknoglobals
var overseasKeywords = []string{"해외배송", "해외직구", "직구", "overseas", "global"}

//nolint:gochecknoglobals
var trustedMalls = []string{"kream", "크림", "soldout", "솔드아웃", "무신사", "musinsa", "29cm"}

var htmlTagPattern = regexp.MustCompile(`</?[^>]+(>|$)`) //nolint:gochecknoglobals

type searchResponseWire struct {
	Total   int        `json:"total"`
	Start   int        `json:"start"`
	Display int        `json:"display"`
	Items   []itemWire `json:"items"`
}

type itemWire struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Image    string `json:"image"`
	LPrice   string `json:"lprice"`
	HPrice   string `json:"hprice"`
	MallName string `json:"mallName"`
}

// Client is the retail search API client. Reads are retried on the
// transient status set, there are no writes.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

func NewClient(cfg config.Naver) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, domain.NewError(errcodes.CredentialsMissing,
			"naver credentials are not set, check NAVER_CLIENT_ID and NAVER_CLIENT_SECRET")
	}

	logging := httpx.NewLoggingRoundTripper(
		http.DefaultTransport,
		httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
	)

	return &Client{
		baseURL:      cfg.BaseURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: httpx.NewRetryRoundTripper(logging, cfg.MaxRetries),
		},
	}, nil
}

// BuildQuery combines a style code and an optional size token.
func BuildQuery(styleCode, size string) string {
	if size == "" {
		return styleCode
	}

	return styleCode + " " + size
}

// SearchSummary issues a price-ascending search and reduces the filtered
// result set to a price summary. An empty filtered set yields an all-zero
// summary, not an error.
func (c *Client) SearchSummary(ctx context.Context, query string, filters entity.RetailFilters) (entity.RetailPriceSummary, error) {
	if query == "" {
		return entity.RetailPriceSummary{}, domain.NewError(errcodes.ValidationError, "search query is required")
	}

	resp, err := c.search(ctx, query)
	if err != nil {
		return entity.RetailPriceSummary{}, err
	}

	items := make([]entity.RetailItem, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, item.toDomain())
	}

	filtered := filterItems(items, filters)

	return summarize(filtered, resp.Total), nil
}

func (c *Client) search(ctx context.Context, query string) (searchResponseWire, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("display", strconv.Itoa(searchDisplay))
	params.Set("start", "1")
	params.Set("sort", "asc")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+searchPath+"?"+params.Encode(), nil)
	if err != nil {
		return searchResponseWire{}, domain.WrapError(err, errcodes.InternalServerError, "build request")
	}

	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return searchResponseWire{}, domain.WrapError(err, errcodes.RetailSearchError, "retail search request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return searchResponseWire{}, domain.WrapError(err, errcodes.RetailSearchError, "read retail search response")
	}

	if resp.StatusCode != http.StatusOK {
		return searchResponseWire{}, domain.WrapError(
			fmt.Errorf("http status %d: %s", resp.StatusCode, body),
			errcodes.RetailSearchError,
			"retail search request failed",
		)
	}

	var wire searchResponseWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return searchResponseWire{}, domain.WrapError(err, errcodes.RetailSearchError, "decode retail search response")
	}

	return wire, nil
}

func (w itemWire) toDomain() entity.RetailItem {
	price, _ := strconv.ParseInt(w.LPrice, 10, 64)
	title := htmlTagPattern.ReplaceAllString(w.Title, "")

	return entity.RetailItem{
		Title:    title,
		Link:     w.Link,
		Image:    w.Image,
		Price:    price,
		MallName: w.MallName,
		Overseas: isOverseas(title, w.MallName),
		Trusted:  isTrustedMall(w.MallName),
	}
}

func isOverseas(title, mallName string) bool {
	haystack := strings.ToLower(title + " " + mallName)

	for _, keyword := range overseasKeywords {
		if strings.Contains(haystack, keyword) {
			return true
		}
	}

	return false
}

func isTrustedMall(mallName string) bool {
	haystack := strings.ToLower(mallName)

	for _, mall := range trustedMalls {
		if strings.Contains(haystack, mall) {
			return true
		}
	}

	return false
}

func filterItems(items []entity.RetailItem, filters entity.RetailFilters) []entity.RetailItem {
	filtered := make([]entity.RetailItem, 0, len(items))

	for _, item := range items {
		if filters.ExcludeOverseas && item.Overseas {
			continue
		}

		if filters.TrustedOnly && !item.Trusted {
			continue
		}

		if filters.MinPrice > 0 && item.Price < filters.MinPrice {
			continue
		}

		if filters.MaxPrice > 0 && item.Price > filters.MaxPrice {
			continue
		}

		filtered = append(filtered, item)
	}

	return filtered
}

// summarize expects items already price-ascending, which the search request
// guarantees via sort=asc.
func summarize(items []entity.RetailItem, total int) entity.RetailPriceSummary {
	if len(items) == 0 {
		return entity.RetailPriceSummary{Total: total, Items: []entity.RetailItem{}}
	}

	lowest := items[0].Price
	for _, item := range items {
		if item.Price < lowest {
			lowest = item.Price
		}
	}

	top := items
	if len(top) > averageTopN {
		top = top[:averageTopN]
	}

	var sum int64
	for _, item := range top {
		sum += item.Price
	}

	average := int64(math.Round(float64(sum) / float64(len(top))))

	var trusted int64
	for _, item := range items {
		if item.Trusted && (trusted == 0 || item.Price < trusted) {
			trusted = item.Price
		}
	}

	samples := top
	if len(samples) > sampleItems {
		samples = samples[:sampleItems]
	}

	return entity.RetailPriceSummary{
		LowestPrice:  lowest,
		AveragePrice: average,
		TrustedPrice: trusted,
		Total:        total,
		Items:        samples,
	}
}
