package config

import "time"

type Server struct {
	Address         string        `env:"HTTP_ADDRESS" envDefault:":8080"`
	MetricsAddress  string        `env:"METRICS_ADDRESS" envDefault:":9090"`
	ProbeAddress    string        `env:"PROBE_ADDRESS" envDefault:":8091"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"2m"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}
