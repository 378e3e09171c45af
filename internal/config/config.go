package config

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const DefaultAPIURL = "https://35dee773a9ec441e9f38d5fc249406ce.api.mockbin.io/"

type Config struct {
	// client
	APIURL       string
	FetchTimeout time.Duration
	Style        string

	// feed server
	PostgresURL         string
	Port                string
	PriceUpdateInterval time.Duration
	DefaultUser         string
	RateLimitRPS        float64
	RateLimitBurst      int

	LogLevel string
}

// Load reads .env if present and then the environment. A missing .env is
// not an error; malformed numeric values fall back to their defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIURL:              getEnv("HOLDINGS_API_URL", DefaultAPIURL),
		FetchTimeout:        getEnvAsDuration("HOLDINGS_FETCH_TIMEOUT", 0),
		Style:               getEnv("HOLDINGS_STYLE", "notty"),
		PostgresURL:         os.Getenv("POSTGRES_URL"),
		Port:                getEnv("PORT", "8080"),
		PriceUpdateInterval: time.Duration(getEnvAsInt("PRICE_UPDATE_INTERVAL", 3600)) * time.Second,
		DefaultUser:         getEnv("DEFAULT_USER", "demo-user"),
		RateLimitRPS:        getEnvAsFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:      getEnvAsInt("RATE_LIMIT_BURST", 30),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}
}

// NewLogger returns a logrus logger writing to out at the given level,
// defaulting to info when the level is unknown.
func NewLogger(level string, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		logger.Warnf("unknown LOG_LEVEL %q, using info", level)
	}
	logger.SetLevel(lvl)
	return logger
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if iv, err := strconv.Atoi(v); err == nil && iv > 0 {
			return iv
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if fv, err := strconv.ParseFloat(v, 64); err == nil && fv > 0 {
			return fv
		}
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("30s") or plain seconds ("30").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d >= 0 {
		return d
	}
	if iv, err := strconv.Atoi(v); err == nil && iv >= 0 {
		return time.Duration(iv) * time.Second
	}
	return fallback
}
