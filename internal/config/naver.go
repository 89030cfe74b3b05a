package config

import "time"

type Naver struct {
	BaseURL      string        `env:"NAVER_BASE_URL" envDefault:"https://openapi.naver.com"`
	ClientID     string        `env:"NAVER_CLIENT_ID" json:"-"`
	ClientSecret string        `env:"NAVER_CLIENT_SECRET" json:"-"`
	Timeout      time.Duration `env:"NAVER_TIMEOUT" envDefault:"10s"`
	MaxRetries   int           `env:"NAVER_MAX_RETRIES" envDefault:"2"`
}
