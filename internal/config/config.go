package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	HTTPPort string `validate:"required,numeric"`
	AppEnv   string `validate:"oneof=development production"`
	LogLevel string `validate:"oneof=debug info"`

	DatabaseURL string

	SessionBackend string        `validate:"oneof=userid memory redis postgres jwt"`
	SessionTTL     time.Duration `validate:"gt=0"`
	RedisAddr      string        `validate:"required_if=SessionBackend redis"`
	RedisPassword  string
	JWTSecret      string `validate:"required_if=SessionBackend jwt"`

	RobotsPerPage    int           `validate:"gt=0"`
	SimulatedLatency time.Duration `validate:"gte=0"`
}

// Production reports whether cookies must carry the Secure flag.
func (c Config) Production() bool {
	return c.AppEnv == EnvProduction
}

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}
	cfg := Config{
		HTTPPort:       get("HTTP_PORT", "8080"),
		AppEnv:         get("APP_ENV", EnvDevelopment),
		LogLevel:       get("LOG_LEVEL", "info"),
		DatabaseURL:    getenv("DATABASE_URL"),
		SessionBackend: get("SESSION_BACKEND", "memory"),
		RedisAddr:      getenv("REDIS_ADDR"),
		RedisPassword:  getenv("REDIS_PASSWORD"),
		JWTSecret:      getenv("JWT_SECRET"),
	}
	var err error
	if cfg.SessionTTL, err = time.ParseDuration(get("SESSION_TTL", "168h")); err != nil {
		return Config{}, fmt.Errorf("config: SESSION_TTL: %w", err)
	}
	if cfg.SimulatedLatency, err = time.ParseDuration(get("SIMULATED_LATENCY", "0s")); err != nil {
		return Config{}, fmt.Errorf("config: SIMULATED_LATENCY: %w", err)
	}
	if cfg.RobotsPerPage, err = strconv.Atoi(get("ROBOTS_PER_PAGE", "10")); err != nil {
		return Config{}, fmt.Errorf("config: ROBOTS_PER_PAGE: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
