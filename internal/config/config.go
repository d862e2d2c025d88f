// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every knob the service reads at startup.
type Config struct {
	DatabaseURL   string        `env:"DATABASE_URL,required"`
	RedisAddr     string        `env:"REDIS_ADDR,required"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	ListenAddr    string        `env:"LISTEN_ADDR" envDefault:":8080"`
	BaseURL       string        `env:"BASE_URL" envDefault:"http://localhost:8080"`
	SessionSecret string        `env:"SESSION_SECRET,required"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	AdminUsername string        `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string        `env:"ADMIN_PASSWORD" envDefault:"adminpass"`
	WorkerCount   int           `env:"WORKER_COUNT" envDefault:"1"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if cfg.WorkerCount <= 0 {
		return nil, fmt.Errorf("config.Load: WORKER_COUNT must be positive")
	}
	return cfg, nil
}
