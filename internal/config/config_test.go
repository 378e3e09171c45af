package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"HOLDINGS_API_URL", "HOLDINGS_FETCH_TIMEOUT", "HOLDINGS_STYLE", "POSTGRES_URL",
		"PORT", "PRICE_UPDATE_INTERVAL", "DEFAULT_USER", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, time.Duration(0), cfg.FetchTimeout)
	assert.Equal(t, "notty", cfg.Style)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Hour, cfg.PriceUpdateInterval)
	assert.Equal(t, "demo-user", cfg.DefaultUser)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.Equal(t, 30, cfg.RateLimitBurst)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HOLDINGS_API_URL", "http://localhost:9999/holdings")
	t.Setenv("HOLDINGS_FETCH_TIMEOUT", "5s")
	t.Setenv("PRICE_UPDATE_INTERVAL", "60")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")
	cfg := Load()
	assert.Equal(t, "http://localhost:9999/holdings", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, time.Minute, cfg.PriceUpdateInterval)
	assert.Equal(t, 30, cfg.RateLimitBurst)
}

func TestGetEnvAsDuration_PlainSeconds(t *testing.T) {
	t.Setenv("X_TIMEOUT", "12")
	assert.Equal(t, 12*time.Second, getEnvAsDuration("X_TIMEOUT", 0))
	t.Setenv("X_TIMEOUT", "-3s")
	assert.Equal(t, time.Second, getEnvAsDuration("X_TIMEOUT", time.Second))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("debug", &buf)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	l = NewLogger("chatty", &buf)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.Contains(t, buf.String(), "unknown LOG_LEVEL")
}
