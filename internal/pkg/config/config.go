package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ServerAddr      string        `env:"SERVER_ADDR" envDefault:":8080"`
	AdminAddr       string        `env:"ADMIN_ADDR" envDefault:":9091"`
	PostgresURL     string        `env:"POSTGRES_URL,required"`
	CentralDBName   string        `env:"CENTRAL_DB_NAME" envDefault:"central_db"`
	RedisAddr       string        `env:"REDIS_ADDR"` // optional; alerts fall back to stdout
	JWTSecret       string        `env:"JWT_SECRET,required"`
	JWTExpiry       time.Duration `env:"JWT_EXPIRY" envDefault:"1h"`
	BaseURL         string        `env:"BASE_URL" envDefault:"http://localhost:8080"`
	LoginRatePerMin int           `env:"LOGIN_RATE_PER_MIN" envDefault:"20"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
