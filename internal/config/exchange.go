package config

import "time"

type Exchange struct {
	BaseURL  string        `env:"EXCHANGE_BASE_URL" envDefault:"https://v6.exchangerate-api.com"`
	APIKey   string        `env:"EXCHANGE_API_KEY" json:"-"`
	Timeout  time.Duration `env:"EXCHANGE_TIMEOUT" envDefault:"10s"`
	CacheTTL time.Duration `env:"EXCHANGE_CACHE_TTL" envDefault:"1h"`
}
