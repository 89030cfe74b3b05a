package config

import "time"

type Poizon struct {
	BaseURL    string        `env:"POIZON_BASE_URL" envDefault:"https://open.poizon.com"`
	AppKey     string        `env:"POIZON_APP_KEY" json:"-"`
	AppSecret  string        `env:"POIZON_APP_SECRET" json:"-"`
	Timeout    time.Duration `env:"POIZON_TIMEOUT" envDefault:"30s"`
	MaxRetries int           `env:"POIZON_MAX_RETRIES" envDefault:"2"`
}
