package config

import (
	"time"
)

type AppConfig struct {
	RateLimitEnabled bool
	RateLimitConfigs map[string]RateLimitConfig

	EnforceHTTPS bool

	Environment string
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		RateLimitEnabled: true,
		RateLimitConfigs: map[string]RateLimitConfig{
			"/pets": {
				Requests: 100,
				Window:   time.Minute,
			},
			"/pets-statistics": {
				Requests: 30,
				Window:   time.Minute,
			},
		},
		EnforceHTTPS: false,
		Environment:  "development",
	}
}
