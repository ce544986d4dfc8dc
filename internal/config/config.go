package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"portfolioadvisor/internal/pricing"
)

type Server struct {
	Port              string `json:"port" toml:"port"`
	RequestTimeoutSec int    `json:"request_timeout_sec" toml:"request_timeout_sec"`
	MaxBodyBytes      int64  `json:"max_body_bytes" toml:"max_body_bytes"`
}

// Market configures current-price resolution.
type Market struct {
	LiveEnabled           bool               `json:"live_enabled" toml:"live_enabled"`
	Endpoint              string             `json:"endpoint" toml:"endpoint"`
	UserAgent             string             `json:"user_agent" toml:"user_agent"`
	DefaultLocation       string             `json:"default_location" toml:"default_location"`
	LiveTimeoutSec        int                `json:"live_timeout_sec" toml:"live_timeout_sec"`
	MaxRequestsPerMinute  int                `json:"max_requests_per_minute" toml:"max_requests_per_minute"`
	Burst                 int                `json:"burst" toml:"burst"`
	MinRequestIntervalSec int                `json:"min_request_interval_sec" toml:"min_request_interval_sec"`
	CacheTTLSeconds       int                `json:"cache_ttl_sec" toml:"cache_ttl_sec"`
	FallbackPrices        map[string]float64 `json:"fallback_prices" toml:"fallback_prices"`
	FallbackDefault       float64            `json:"fallback_default" toml:"fallback_default"`
}

// History configures the historical price store.
type History struct {
	Driver          string `json:"driver" toml:"driver"` // "memory" or "postgres"
	DSN             string `json:"dsn" toml:"dsn"`
	ToleranceDays   int    `json:"tolerance_days" toml:"tolerance_days"`
	QueryTimeoutSec int    `json:"query_timeout_sec" toml:"query_timeout_sec"`
	SeedDays        int    `json:"seed_days" toml:"seed_days"`
}

type Allocation struct {
	DefaultRates         map[string]float64 `json:"default_rates" toml:"default_rates"`
	BaselineLookbackDays int                `json:"baseline_lookback_days" toml:"baseline_lookback_days"`
}

type Logging struct {
	Level string `json:"level" toml:"level"`
	Env   string `json:"env" toml:"env"`
}

type Config struct {
	Server     Server     `json:"server" toml:"server"`
	Market     Market     `json:"market" toml:"market"`
	History    History    `json:"history" toml:"history"`
	Allocation Allocation `json:"allocation" toml:"allocation"`
	Logging    Logging    `json:"logging" toml:"logging"`
}

func Default() Config {
	fallback := pricing.DefaultFallback()
	return Config{
		Server: Server{Port: "8080", RequestTimeoutSec: 15, MaxBodyBytes: 1 << 20},
		Market: Market{
			LiveEnabled:           true,
			Endpoint:              "https://api.duckduckgo.com",
			UserAgent:             "portfolioadvisor/1.0",
			DefaultLocation:       "india",
			LiveTimeoutSec:        10,
			MaxRequestsPerMinute:  30,
			Burst:                 5,
			MinRequestIntervalSec: 0,
			CacheTTLSeconds:       600,
			FallbackPrices:        fallback.Prices,
			FallbackDefault:       fallback.Default,
		},
		History: History{
			Driver:          "memory",
			ToleranceDays:   7,
			QueryTimeoutSec: 5,
			SeedDays:        60,
		},
		Allocation: Allocation{
			DefaultRates:         map[string]float64{"FD": 6.5, "Bank": 3.5, "SIP": 12.0},
			BaselineLookbackDays: 30,
		},
		Logging: Logging{Level: "info", Env: "production"},
	}
}

// Load reads config from path: TOML when the file ends in .toml, JSON
// otherwise. If path is empty, config.toml or config.json in the working
// directory is used when present; a missing file yields defaults.
// Environment variables override individual fields afterwards.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		for _, candidate := range []string{"config.toml", "config.json"} {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := decode(path, b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, cfg.Validate()
}

func decode(path string, b []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(b, cfg)
	}
	return json.Unmarshal(b, cfg)
}

// Validate rejects values the services cannot start with.
func (c Config) Validate() error {
	switch c.History.Driver {
	case "memory":
	case "postgres":
		if c.History.DSN == "" {
			return errors.New("history.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown history driver %q", c.History.Driver)
	}
	if c.History.SeedDays < 0 {
		return fmt.Errorf("history.seed_days must not be negative, got %d", c.History.SeedDays)
	}
	if c.History.ToleranceDays < 0 {
		return fmt.Errorf("history.tolerance_days must not be negative, got %d", c.History.ToleranceDays)
	}
	for k, v := range c.Allocation.DefaultRates {
		if v < 0 {
			return fmt.Errorf("allocation.default_rates.%s must not be negative", k)
		}
	}
	return nil
}

// Fallback is the static price table the resolvers share.
func (m Market) Fallback() pricing.FallbackTable {
	return pricing.FallbackTable{Prices: m.FallbackPrices, Default: m.FallbackDefault}
}

func (m Market) LiveTimeout() time.Duration { return seconds(m.LiveTimeoutSec) }
func (m Market) CacheTTL() time.Duration    { return seconds(m.CacheTTLSeconds) }
func (m Market) MinInterval() time.Duration { return seconds(m.MinRequestIntervalSec) }

func (h History) Tolerance() time.Duration    { return time.Duration(h.ToleranceDays) * 24 * time.Hour }
func (h History) QueryTimeout() time.Duration { return seconds(h.QueryTimeoutSec) }

func (a Allocation) BaselineLookback() time.Duration {
	return time.Duration(a.BaselineLookbackDays) * 24 * time.Hour
}

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	envInt("REQUEST_TIMEOUT_SEC", 1, &cfg.Server.RequestTimeoutSec)

	envBool("LIVE_ENABLED", &cfg.Market.LiveEnabled)
	if v := os.Getenv("LIVE_ENDPOINT"); v != "" {
		cfg.Market.Endpoint = v
	}
	if v := os.Getenv("DEFAULT_LOCATION"); v != "" {
		cfg.Market.DefaultLocation = v
	}
	envInt("LIVE_TIMEOUT_SEC", 1, &cfg.Market.LiveTimeoutSec)
	envInt("LIVE_MAX_RPM", 0, &cfg.Market.MaxRequestsPerMinute)
	envInt("LIVE_BURST", 1, &cfg.Market.Burst)
	envInt("LIVE_MIN_INTERVAL_SEC", 0, &cfg.Market.MinRequestIntervalSec)
	envInt("PRICE_CACHE_TTL_SEC", 0, &cfg.Market.CacheTTLSeconds)

	if v := os.Getenv("HISTORY_DRIVER"); v != "" {
		cfg.History.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("HISTORY_DSN"); v != "" {
		cfg.History.DSN = v
	}
	envInt("HISTORY_TOLERANCE_DAYS", 0, &cfg.History.ToleranceDays)
	envInt("BASELINE_LOOKBACK_DAYS", 1, &cfg.Allocation.BaselineLookbackDays)

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Logging.Env = v
	}
}

// envInt sets *dst from the named variable when it parses and is >= floor.
func envInt(name string, floor int, dst *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	x, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || x < floor {
		return
	}
	*dst = x
}

func envBool(name string, dst *bool) {
	switch strings.ToLower(os.Getenv(name)) {
	case "1", "true", "yes", "y":
		*dst = true
	case "0", "false", "no", "n":
		*dst = false
	}
}
