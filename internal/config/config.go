package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// defaultBaseURL is the production backend, used when API_BASE_URL is unset.
const defaultBaseURL = "https://sonic-delivery.up.railway.app"

type Config struct {
	Env string `validate:"required,oneof=development stage production"`

	API   API   `validate:"required"`
	Cache Cache `validate:"required"`

	// TokenFile is where the bearer token is persisted between runs.
	TokenFile string `validate:"required"`

	// MetricsAddr enables the prometheus exposition listener when non-empty.
	MetricsAddr string
}

type API struct {
	BaseURL string        `validate:"required,url"`
	Timeout time.Duration `validate:"gt=0"`
}

type Cache struct {
	Capacity int           `validate:"gte=1"`
	TTL      time.Duration `validate:"gt=0"`
}

func New() Config {
	return Config{
		Env: env("ENV", "development"),

		API: API{
			BaseURL: strings.TrimRight(env("API_BASE_URL", defaultBaseURL), "/"),
			Timeout: envDuration("HTTP_TIMEOUT", 15*time.Second),
		},

		Cache: Cache{
			Capacity: envInt("CACHE_CAPACITY", 128),
			TTL:      envDuration("CACHE_TTL", 5*time.Minute),
		},

		TokenFile:   env("TOKEN_FILE", defaultTokenFile()),
		MetricsAddr: env("METRICS_ADDR", ""),
	}
}

func (c Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sonic-courier-token"
	}
	return filepath.Join(home, ".sonic-courier", "token")
}

func env(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}
