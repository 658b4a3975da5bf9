package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type (
	Config struct {
		App  `json:"app"`
		HTTP `json:"http"`
		Mail `json:"mail"`
	}

	App struct {
		Environment string `json:"environment" env:"ENV" env-default:"development"`
		Debug       bool   `json:"debug"       env:"DEBUG" env-default:"false"`
	}

	HTTP struct {
		Port string `json:"port" env:"PORT" env-default:"8080"`
	}

	Mail struct {
		ResendAPIKey string `json:"resend_api_key" env:"RESEND_API_KEY"`
		OrderInbox   string `json:"order_inbox"    env:"ORDER_INBOX" env-default:"alimahmoud001a@gmail.com"`
		OrderFrom    string `json:"order_from"     env:"ORDER_FROM"  env-default:"orders@yourdomain.com"`
	}
)

// Load reads configuration from the process environment.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	return cfg, nil
}
