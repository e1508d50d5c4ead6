package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
	Port        string `env:"PORT" envDefault:"8080"`
	AppEnv      string `env:"APP_ENV" envDefault:"local"`
	DevMode     bool   `env:"DEV_MODE"`

	RegisterRateLimit         int `env:"REGISTER_RATE_LIMIT" envDefault:"5"`
	RegisterRateWindowSeconds int `env:"REGISTER_RATE_WINDOW_SECONDS" envDefault:"600"`
	LoginRateLimit            int `env:"LOGIN_RATE_LIMIT" envDefault:"12"`
	LoginRateWindowSeconds    int `env:"LOGIN_RATE_WINDOW_SECONDS" envDefault:"600"`
}

// config holds the process-wide configuration, set once in main.
var config = defaultConfig()

func defaultConfig() Config {
	return Config{
		Port:                      "8080",
		AppEnv:                    "local",
		RegisterRateLimit:         5,
		RegisterRateWindowSeconds: 600,
		LoginRateLimit:            12,
		LoginRateWindowSeconds:    600,
	}
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
