package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds service configuration loaded from YAML and env.
type Config struct {
	ServerPort string

	ForecastURL     string
	AirQualityURL   string
	GeocodingURL    string
	UpstreamTimeout time.Duration
	UserAgent       string

	RequestTimeout time.Duration

	CacheBackend  string // "memory", "sqlite" or "memcached"
	WeatherTTL    time.Duration
	AirQualityTTL time.Duration
	GeocodeTTL    time.Duration
	SweepInterval time.Duration

	SQLitePath string

	MemcachedAddrs        string
	MemcachedTimeout      time.Duration
	MemcachedMaxIdleConns int

	CoalesceEnabled bool
	CoalesceTimeout time.Duration

	RateLimitRPS   int
	RateLimitBurst int

	ShutdownTimeout               time.Duration
	ShutdownInFlightTimeout       time.Duration
	ShutdownInFlightCheckInterval time.Duration

	// AdminToken guards the cache admin endpoint. Empty disables it.
	AdminToken string

	WarmCache       bool
	WarmInterval    time.Duration
	WarmCoordinates []WarmCoordinate
}

// WarmCoordinate is a coordinate pair refreshed by the cache warmer.
type WarmCoordinate struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

type fileConfig struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Upstream struct {
		ForecastURL   string `yaml:"forecast_url"`
		AirQualityURL string `yaml:"air_quality_url"`
		GeocodingURL  string `yaml:"geocoding_url"`
		Timeout       string `yaml:"timeout"`
		UserAgent     string `yaml:"user_agent"`
	} `yaml:"upstream"`

	Request struct {
		Timeout string `yaml:"timeout"`
	} `yaml:"request"`

	Cache struct {
		Backend       string `yaml:"backend"`
		WeatherTTL    string `yaml:"weather_ttl"`
		AirQualityTTL string `yaml:"air_quality_ttl"`
		GeocodeTTL    string `yaml:"geocode_ttl"`
		SweepInterval string `yaml:"sweep_interval"`
		SQLite        struct {
			Path string `yaml:"path"`
		} `yaml:"sqlite"`
		Memcached struct {
			Addrs        string `yaml:"addrs"`
			Timeout      string `yaml:"timeout"`
			MaxIdleConns int    `yaml:"max_idle_conns"`
		} `yaml:"memcached"`
	} `yaml:"cache"`

	Reliability struct {
		CoalesceEnabled *bool  `yaml:"coalesce_enabled"`
		CoalesceTimeout string `yaml:"coalesce_timeout"`
		RateLimitRPS    int    `yaml:"rate_limit_rps"`
		RateLimitBurst  int    `yaml:"rate_limit_burst"`
	} `yaml:"reliability"`

	Shutdown struct {
		Timeout               string `yaml:"timeout"`
		InFlightTimeout       string `yaml:"in_flight_timeout"`
		InFlightCheckInterval string `yaml:"in_flight_check_interval"`
	} `yaml:"shutdown"`

	Warming struct {
		Enabled     bool             `yaml:"enabled"`
		Interval    string           `yaml:"interval"`
		Coordinates []WarmCoordinate `yaml:"coordinates"`
	} `yaml:"warming"`
}

// Load reads configuration from config/{ENV_NAME}.yaml (default dev) with
// env overrides. A .env file in the working directory is loaded first when
// present. The admin token comes from ADMIN_TOKEN only, never from YAML.
func Load() (*Config, error) {
	_ = godotenv.Load()

	env := os.Getenv("ENV_NAME")
	if env == "" {
		env = "dev"
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("config: get working directory: %w", err)
	}
	configPath := filepath.Join(cwd, "config", env+".yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg := &Config{}

	cfg.ServerPort = os.Getenv("SERVER_PORT")
	if cfg.ServerPort == "" {
		cfg.ServerPort = fc.Server.Port
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}

	cfg.ForecastURL = fc.Upstream.ForecastURL
	if cfg.ForecastURL == "" {
		cfg.ForecastURL = "https://api.open-meteo.com/v1/forecast"
	}
	cfg.AirQualityURL = fc.Upstream.AirQualityURL
	if cfg.AirQualityURL == "" {
		cfg.AirQualityURL = "https://air-quality-api.open-meteo.com/v1/air-quality"
	}
	cfg.GeocodingURL = fc.Upstream.GeocodingURL
	if cfg.GeocodingURL == "" {
		cfg.GeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	}
	cfg.UpstreamTimeout = parseDuration(fc.Upstream.Timeout, 15*time.Second)
	cfg.UserAgent = fc.Upstream.UserAgent
	if cfg.UserAgent == "" {
		cfg.UserAgent = "WeatherMasterPro/2.0 (https://github.com/weathermaster)"
	}

	cfg.RequestTimeout = parseDuration(fc.Request.Timeout, 20*time.Second)

	cfg.CacheBackend = strings.TrimSpace(strings.ToLower(os.Getenv("CACHE_BACKEND")))
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = strings.TrimSpace(strings.ToLower(fc.Cache.Backend))
	}
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = "memory"
	}
	cfg.WeatherTTL = parseDuration(fc.Cache.WeatherTTL, 5*time.Minute)
	cfg.AirQualityTTL = parseDuration(fc.Cache.AirQualityTTL, time.Hour)
	cfg.GeocodeTTL = parseDuration(fc.Cache.GeocodeTTL, 24*time.Hour)
	cfg.SweepInterval = parseDuration(fc.Cache.SweepInterval, 10*time.Minute)

	cfg.SQLitePath = os.Getenv("SQLITE_PATH")
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = fc.Cache.SQLite.Path
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = filepath.Join(cwd, "data", "forecast-cache.db")
	}

	cfg.MemcachedAddrs = strings.TrimSpace(os.Getenv("MEMCACHED_ADDRS"))
	if cfg.MemcachedAddrs == "" {
		cfg.MemcachedAddrs = strings.TrimSpace(fc.Cache.Memcached.Addrs)
	}
	if cfg.MemcachedAddrs == "" {
		cfg.MemcachedAddrs = "localhost:11211"
	}
	cfg.MemcachedTimeout = parseDuration(fc.Cache.Memcached.Timeout, 500*time.Millisecond)
	cfg.MemcachedMaxIdleConns = fc.Cache.Memcached.MaxIdleConns
	if cfg.MemcachedMaxIdleConns <= 0 {
		cfg.MemcachedMaxIdleConns = 2
	}

	cfg.CoalesceEnabled = true
	if fc.Reliability.CoalesceEnabled != nil {
		cfg.CoalesceEnabled = *fc.Reliability.CoalesceEnabled
	}
	cfg.CoalesceTimeout = parseDuration(fc.Reliability.CoalesceTimeout, 10*time.Second)
	cfg.RateLimitRPS = fc.Reliability.RateLimitRPS
	if cfg.RateLimitRPS < 0 {
		cfg.RateLimitRPS = 0
	}
	cfg.RateLimitBurst = fc.Reliability.RateLimitBurst
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = 2 * cfg.RateLimitRPS
	}

	cfg.ShutdownTimeout = parseDuration(fc.Shutdown.Timeout, 30*time.Second)
	cfg.ShutdownInFlightTimeout = parseDuration(fc.Shutdown.InFlightTimeout, 10*time.Second)
	cfg.ShutdownInFlightCheckInterval = parseDuration(fc.Shutdown.InFlightCheckInterval, 100*time.Millisecond)

	cfg.AdminToken = os.Getenv("ADMIN_TOKEN")

	cfg.WarmCache = fc.Warming.Enabled
	cfg.WarmInterval = parseDuration(fc.Warming.Interval, 0)
	cfg.WarmCoordinates = fc.Warming.Coordinates

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseDuration parses a duration string and returns defaultVal if parsing
// fails or the string is empty.
func parseDuration(s string, defaultVal time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultVal
	}
	return d
}

// validate performs post-load validation. RequestTimeout is widened when it
// would expire before the upstream client gives up.
func validate(cfg *Config) error {
	if cfg.UpstreamTimeout <= 0 {
		return fmt.Errorf("upstream.timeout must be positive")
	}
	if cfg.RequestTimeout <= cfg.UpstreamTimeout {
		cfg.RequestTimeout = cfg.UpstreamTimeout + time.Second
	}
	switch cfg.CacheBackend {
	case "memory", "sqlite", "memcached":
		// valid
	default:
		return fmt.Errorf("cache.backend must be memory, sqlite or memcached, got %q", cfg.CacheBackend)
	}
	if cfg.WarmCache && len(cfg.WarmCoordinates) == 0 {
		return fmt.Errorf("warming.enabled requires warming.coordinates")
	}
	return nil
}
