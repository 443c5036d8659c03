package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/weathermaster/forecast-proxy/internal/models"
	"github.com/weathermaster/forecast-proxy/internal/observability"
)

// WeatherFetcher is implemented by the service layer to fetch weather for a
// coordinate pair. Used by Warmer to avoid a circular dependency on the
// service package.
type WeatherFetcher interface {
	GetWeather(ctx context.Context, lat, lon float64, overrides map[string]string, prefs models.UserPreferences) models.Result
}

// Coordinate is a lat/lon pair to prefetch.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Warmer prefetches forecasts for a fixed list of coordinates so the first
// real request after startup hits a warm cache.
type Warmer struct {
	fetcher WeatherFetcher
	logger  *zap.Logger
}

// NewWarmer creates a Warmer that uses the given fetcher and logger.
func NewWarmer(fetcher WeatherFetcher, logger *zap.Logger) *Warmer {
	return &Warmer{fetcher: fetcher, logger: logger}
}

// Warm fetches each coordinate concurrently. Returns an error when any
// coordinate failed; successes are still cached.
func (w *Warmer) Warm(ctx context.Context, coords []Coordinate) error {
	observability.CacheWarmingTotal.Inc()
	if w.logger != nil {
		w.logger.Info("warming cache", zap.Int("coordinates", len(coords)))
	}
	prefs := models.DefaultPreferences()
	var wg sync.WaitGroup
	errCh := make(chan error, len(coords))
	for _, c := range coords {
		wg.Add(1)
		go func(c Coordinate) {
			defer wg.Done()
			res := w.fetcher.GetWeather(ctx, c.Lat, c.Lon, nil, prefs)
			if !res.Success {
				observability.CacheWarmingFailures.Inc()
				errCh <- fmt.Errorf("warm %.4f,%.4f: %s", c.Lat, c.Lon, res.Error)
			}
		}(c)
	}
	wg.Wait()
	close(errCh)
	var failed int
	var first error
	for err := range errCh {
		if first == nil {
			first = err
		}
		failed++
	}
	if first != nil {
		return fmt.Errorf("cache warming: %d of %d coordinates failed: %w", failed, len(coords), first)
	}
	return nil
}

// WarmPeriodic re-warms the coordinates on every interval tick until ctx is
// cancelled. Per-run failures are logged and do not stop the loop.
func (w *Warmer) WarmPeriodic(ctx context.Context, coords []Coordinate, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Warm(ctx, coords); err != nil && w.logger != nil {
				w.logger.Warn("periodic cache warming", zap.Error(err))
			}
		}
	}
}
