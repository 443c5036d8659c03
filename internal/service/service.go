// Package service implements the cache-aside forecast proxy: check the cache,
// fetch upstream on a miss, process and cache the result, and fall back to
// the newest stale entry when the forecast upstream fails.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/weathermaster/forecast-proxy/internal/cache"
	"github.com/weathermaster/forecast-proxy/internal/client"
	"github.com/weathermaster/forecast-proxy/internal/derive"
	"github.com/weathermaster/forecast-proxy/internal/models"
	"github.com/weathermaster/forecast-proxy/internal/observability"
	"github.com/weathermaster/forecast-proxy/internal/validation"
)

// Envelope strings surfaced to callers on failure.
const (
	errInvalidCoordinates    = "invalid coordinates"
	errWeatherUnavailable    = "weather data unavailable"
	errAirQualityUnavailable = "air quality data unavailable"
	errGeocodingUnavailable  = "geocoding unavailable"
	warnStaleData            = "data may be stale"
)

const apiVersion = "1.0"

// Config holds the proxy's cache TTLs and coalescing settings.
type Config struct {
	WeatherTTL      time.Duration
	AirQualityTTL   time.Duration
	GeocodeTTL      time.Duration
	CoalesceEnabled bool
	CoalesceTimeout time.Duration
}

// Proxy orchestrates cache-aside fetches against the upstream provider. It is
// stateless per request apart from the store and client handles.
type Proxy struct {
	client     client.ForecastClient
	store      cache.Store
	weatherTTL time.Duration
	airTTL     time.Duration
	geocodeTTL time.Duration
	coalescer  *coalescer[json.RawMessage] // nil when disabled
	stampede   *stampedeTracker
}

// NewProxy creates a Proxy with the provided dependencies. Zero TTLs fall
// back to the product defaults (5m weather, 1h air quality, 24h geocoding).
func NewProxy(c client.ForecastClient, store cache.Store, cfg Config) *Proxy {
	if cfg.WeatherTTL <= 0 {
		cfg.WeatherTTL = 5 * time.Minute
	}
	if cfg.AirQualityTTL <= 0 {
		cfg.AirQualityTTL = time.Hour
	}
	if cfg.GeocodeTTL <= 0 {
		cfg.GeocodeTTL = 24 * time.Hour
	}
	var co *coalescer[json.RawMessage]
	if cfg.CoalesceEnabled && cfg.CoalesceTimeout > 0 {
		co = newCoalescer[json.RawMessage](cfg.CoalesceTimeout)
	}
	return &Proxy{
		client:     c,
		store:      store,
		weatherTTL: cfg.WeatherTTL,
		airTTL:     cfg.AirQualityTTL,
		geocodeTTL: cfg.GeocodeTTL,
		coalescer:  co,
		stampede:   newStampedeTracker(),
	}
}

// loggerFromContext extracts the request-scoped zap.Logger if present.
func loggerFromContext(ctx context.Context) *zap.Logger {
	if v := ctx.Value("logger"); v != nil {
		if l, ok := v.(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return nil
}

// GetWeather retrieves processed forecast data for a coordinate pair.
// Coordinates are validated before any cache or network I/O. A fresh cache
// hit short-circuits the upstream call; on upstream failure the newest stale
// entry for the coordinate prefix is served with a warning, and only when
// none exists does the caller see a failure envelope.
func (p *Proxy) GetWeather(ctx context.Context, lat, lon float64, overrides map[string]string, prefs models.UserPreferences) models.Result {
	logger := loggerFromContext(ctx)

	if err := validation.Coordinates(lat, lon); err != nil {
		return models.Failure(models.KindInvalidInput, errInvalidCoordinates)
	}
	prefs = prefs.Normalized()

	opts := mergeOptions(overrides, prefs)
	prefix := weatherKeyPrefix(lat, lon)
	key := prefix + optionsDigest(opts)

	if payload, ok := p.cacheGet(ctx, key, "weather", logger); ok {
		return models.Result{Success: true, Data: payload, Cached: true}
	}

	misses := p.stampede.begin(key)
	defer p.stampede.end(key)
	if misses > 1 {
		observability.StampedeDetectedTotal.WithLabelValues("weather").Inc()
	}

	fetch := func() (json.RawMessage, error) {
		raw, err := p.client.FetchForecast(ctx, forecastParams(lat, lon, opts))
		if err != nil {
			return nil, err
		}
		meta := models.Metadata{
			Latitude:   lat,
			Longitude:  lon,
			Timestamp:  time.Now().UTC(),
			Units:      prefs.Units,
			APIVersion: apiVersion,
		}
		processed := derive.Process(raw, prefs, meta, time.Now())
		payload, err := json.Marshal(processed)
		if err != nil {
			return nil, fmt.Errorf("encode processed weather: %w", err)
		}
		p.cachePut(ctx, key, payload, p.weatherTTL, logger)
		return payload, nil
	}

	payload, err := p.fetchCoalesced(ctx, key, "weather", fetch)
	if err != nil {
		if logger != nil {
			logger.Warn("forecast upstream failed",
				zap.Float64("lat", lat), zap.Float64("lon", lon),
				zap.String("category", string(client.CategorizeError(err))),
				zap.Error(err))
		}
		stale, ok, staleErr := p.store.FindNewestByPrefix(ctx, prefix)
		if staleErr != nil {
			observability.CacheErrorsTotal.WithLabelValues("fallback").Inc()
		}
		if staleErr == nil && ok {
			observability.CacheFallbacksTotal.WithLabelValues("weather").Inc()
			if logger != nil {
				logger.Info("serving stale forecast", zap.String("key_prefix", prefix))
			}
			return models.Result{
				Success:  true,
				Data:     stale,
				Cached:   true,
				Fallback: true,
				Warning:  warnStaleData,
			}
		}
		res := models.Failure(models.KindUpstreamUnavailable, errWeatherUnavailable)
		res.Details = err.Error()
		return res
	}

	return models.Result{Success: true, Data: payload, Cached: false}
}

// GetAirQuality retrieves processed air-quality data. Same cache-aside shape
// as GetWeather with a longer TTL and no stale fallback: when the upstream
// fails, the caller gets a failure envelope directly. The asymmetry with the
// weather path is deliberate.
func (p *Proxy) GetAirQuality(ctx context.Context, lat, lon float64) models.Result {
	logger := loggerFromContext(ctx)

	if err := validation.Coordinates(lat, lon); err != nil {
		return models.Failure(models.KindInvalidInput, errInvalidCoordinates)
	}

	key := airQualityKey(lat, lon)
	if payload, ok := p.cacheGet(ctx, key, "airquality", logger); ok {
		return models.Result{Success: true, Data: payload, Cached: true}
	}

	misses := p.stampede.begin(key)
	defer p.stampede.end(key)
	if misses > 1 {
		observability.StampedeDetectedTotal.WithLabelValues("airquality").Inc()
	}

	fetch := func() (json.RawMessage, error) {
		raw, err := p.client.FetchAirQuality(ctx, lat, lon)
		if err != nil {
			return nil, err
		}
		payload, err := json.Marshal(derive.ProcessAirQuality(raw))
		if err != nil {
			return nil, fmt.Errorf("encode air quality: %w", err)
		}
		p.cachePut(ctx, key, payload, p.airTTL, logger)
		return payload, nil
	}

	payload, err := p.fetchCoalesced(ctx, key, "airquality", fetch)
	if err != nil {
		if logger != nil {
			logger.Warn("air quality upstream failed",
				zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
		}
		res := models.Failure(models.KindUpstreamUnavailable, errAirQualityUnavailable)
		res.Details = err.Error()
		return res
	}

	return models.Result{Success: true, Data: payload, Cached: false}
}

// SearchLocations proxies the geocoding API with a 24h cache. Limit is
// clamped to [1,20] and the language to the supported set.
func (p *Proxy) SearchLocations(ctx context.Context, query string, limit int, lang string) models.Result {
	logger := loggerFromContext(ctx)

	query = strings.TrimSpace(query)
	if query == "" {
		return models.Failure(models.KindInvalidInput, validation.ErrQueryEmpty.Error())
	}
	limit = validation.GeocodeLimit(limit)
	lang = validation.GeocodeLang(lang)

	key := geocodeKey(query, limit, lang)
	if payload, ok := p.cacheGet(ctx, key, "geocode", logger); ok {
		return models.Result{Success: true, Data: payload, Cached: true}
	}

	raw, err := p.client.SearchLocations(ctx, query, limit, lang)
	if err != nil {
		if logger != nil {
			logger.Warn("geocoding upstream failed", zap.String("query", query), zap.Error(err))
		}
		res := models.Failure(models.KindUpstreamUnavailable, errGeocodingUnavailable)
		res.Details = err.Error()
		return res
	}
	payload, err := json.Marshal(raw)
	if err != nil {
		res := models.Failure(models.KindUpstreamUnavailable, errGeocodingUnavailable)
		res.Details = err.Error()
		return res
	}
	p.cachePut(ctx, key, payload, p.geocodeTTL, logger)

	return models.Result{Success: true, Data: payload, Cached: false}
}

// ClearCache removes every cached entry and returns the count removed.
// Authorization is enforced by the HTTP layer.
func (p *Proxy) ClearCache(ctx context.Context) (int, error) {
	n, err := p.store.ClearAll(ctx)
	if err != nil {
		observability.CacheErrorsTotal.WithLabelValues("clear").Inc()
		return 0, err
	}
	observability.CacheClearedTotal.Add(float64(n))
	return n, nil
}

// cacheGet reads the store, counting backend errors as misses.
func (p *Proxy) cacheGet(ctx context.Context, key, namespace string, logger *zap.Logger) (json.RawMessage, bool) {
	payload, ok, err := p.store.Get(ctx, key)
	if err != nil {
		observability.CacheErrorsTotal.WithLabelValues("get").Inc()
		observability.CacheMissesTotal.WithLabelValues(namespace).Inc()
		if logger != nil {
			logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if !ok {
		observability.CacheMissesTotal.WithLabelValues(namespace).Inc()
		return nil, false
	}
	observability.CacheHitsTotal.WithLabelValues(namespace).Inc()
	if logger != nil {
		logger.Debug("cache hit", zap.String("key", key))
	}
	return payload, true
}

// cachePut writes the store, logging and swallowing failures. Caching is
// best-effort, never a correctness requirement.
func (p *Proxy) cachePut(ctx context.Context, key string, payload json.RawMessage, ttl time.Duration, logger *zap.Logger) {
	if err := p.store.Put(ctx, key, payload, ttl); err != nil {
		observability.CacheErrorsTotal.WithLabelValues("put").Inc()
		if logger != nil {
			logger.Warn("cache put failed", zap.String("key", key), zap.Error(err))
		}
	}
}

// fetchCoalesced runs fetch through the coalescer when enabled so concurrent
// misses for one key share a single upstream call.
func (p *Proxy) fetchCoalesced(ctx context.Context, key, namespace string, fetch func() (json.RawMessage, error)) (json.RawMessage, error) {
	if p.coalescer == nil {
		return fetch()
	}
	payload, shared, err := p.coalescer.GetOrDo(ctx, key, fetch)
	if shared && err == nil {
		observability.CoalescingHitsTotal.WithLabelValues(namespace).Inc()
	}
	return payload, err
}
