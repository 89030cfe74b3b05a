// Package exchange resolves currency conversion rates with a layered
// fallback: manual override, unexpired cache, remote fetch, hardcoded
// default. Rate resolution never fails; every downstream margin computation
// needs some rate, and blocking the whole pricing pipeline on a transient
// network issue would be worse than degrading to a default.
package exchange

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/sync/singleflight"

	"resell_margin/internal/config"
	"resell_margin/internal/domain/entity"
	"resell_margin/pkg/contextx"
	"resell_margin/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// defaultRates are the last-resort figures per currency pair.
//
//nolint:gochecknoglobals
var defaultRates = map[string]float64{
	"CNY/KRW": 190,
	"USD/CNY": 7,
}

type rateAPIResponseWire struct {
	Result          string             `json:"result"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

// Options steer a single rate resolution.
type Options struct {
	// ManualRate wins over everything and is never cached.
	ManualRate float64
	// ForceRefresh bypasses a valid cache entry.
	ForceRefresh bool
}

type cacheEntry struct {
	rate   entity.ExchangeRate
	expiry time.Time
}

// Provider resolves rates per currency pair. The cache is the only shared
// mutable state of the whole service; concurrent refreshes of the same pair
// are collapsed into one remote fetch.
type Provider struct {
	baseURL    string
	apiKey     string
	cacheTTL   time.Duration
	httpClient *http.Client

	mu    sync.Mutex
	cache map[string]cacheEntry

	group singleflight.Group

	now func() time.Time
}

func NewProvider(cfg config.Exchange) *Provider {
	return &Provider{
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		cacheTTL: cfg.CacheTTL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache: make(map[string]cacheEntry),
		now:   time.Now,
	}
}

// GetRate resolves the rate for one currency pair. It never returns an
// error: a failed remote fetch degrades to the hardcoded default.
func (p *Provider) GetRate(ctx context.Context, from, to string, opts Options) entity.ExchangeRate {
	if opts.ManualRate > 0 {
		return entity.ExchangeRate{
			From:      from,
			To:        to,
			Rate:      opts.ManualRate,
			FetchedAt: p.now(),
			Source:    entity.RateSourceManual,
		}
	}

	key := from + "/" + to

	if !opts.ForceRefresh {
		if cached, ok := p.cached(key); ok {
			cached.Source = entity.RateSourceCached
			return cached
		}
	}

	result, err, _ := p.group.Do(key, func() (any, error) {
		return p.fetch(ctx, from, to)
	})
	if err != nil {
		logger(ctx).Warn(
			"exchange rate fetch failed, using default",
			slog.String("pair", key),
			logx.Error(err),
		)

		return p.defaultRate(from, to)
	}

	rate := result.(entity.ExchangeRate) //nolint:forcetypeassert

	p.store(key, rate)

	return rate
}

// ClearCache drops every cached entry. Tests and the settings refresh flow
// use it.
func (p *Provider) ClearCache() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cache = make(map[string]cacheEntry)
}

func (p *Provider) cached(key string) (entity.ExchangeRate, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.cache[key]
	if !ok || !p.now().Before(entry.expiry) {
		return entity.ExchangeRate{}, false
	}

	return entry.rate, true
}

func (p *Provider) store(key string, rate entity.ExchangeRate) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cache[key] = cacheEntry{rate: rate, expiry: p.now().Add(p.cacheTTL)}
}

func (p *Provider) fetch(ctx context.Context, from, to string) (entity.ExchangeRate, error) {
	if p.apiKey == "" {
		return entity.ExchangeRate{}, fmt.Errorf("exchange rate api key is not set")
	}

	url := fmt.Sprintf("%s/v6/%s/latest/%s", p.baseURL, p.apiKey, from)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return entity.ExchangeRate{}, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return entity.ExchangeRate{}, fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return entity.ExchangeRate{}, fmt.Errorf("io.ReadAll: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return entity.ExchangeRate{}, fmt.Errorf("http status %d", resp.StatusCode)
	}

	var wire rateAPIResponseWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return entity.ExchangeRate{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	if wire.Result != "success" {
		return entity.ExchangeRate{}, fmt.Errorf("remote result %q", wire.Result)
	}

	rate, ok := wire.ConversionRates[to]
	if !ok || rate <= 0 {
		return entity.ExchangeRate{}, fmt.Errorf("no %s rate in response", to)
	}

	return entity.ExchangeRate{
		From:      from,
		To:        to,
		Rate:      rate,
		FetchedAt: p.now(),
		Source:    entity.RateSourceRemote,
	}, nil
}

func (p *Provider) defaultRate(from, to string) entity.ExchangeRate {
	rate, ok := defaultRates[from+"/"+to]
	if !ok {
		rate = 1
	}

	return entity.ExchangeRate{
		From:      from,
		To:        to,
		Rate:      rate,
		FetchedAt: p.now(),
		Source:    entity.RateSourceDefault,
	}
}
