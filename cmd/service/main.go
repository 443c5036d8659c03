package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/weathermaster/forecast-proxy/internal/cache"
	"github.com/weathermaster/forecast-proxy/internal/client"
	"github.com/weathermaster/forecast-proxy/internal/config"
	httphandler "github.com/weathermaster/forecast-proxy/internal/http"
	"github.com/weathermaster/forecast-proxy/internal/lifecycle"
	"github.com/weathermaster/forecast-proxy/internal/observability"
	"github.com/weathermaster/forecast-proxy/internal/service"
)

func main() {
	logger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	meteoClient := client.NewOpenMeteoClient(
		cfg.ForecastURL,
		cfg.AirQualityURL,
		cfg.GeocodingURL,
		cfg.UserAgent,
		cfg.UpstreamTimeout,
	)

	var store cache.Store
	var cachePing func() error
	switch cfg.CacheBackend {
	case "sqlite":
		s, err := cache.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			logger.Fatal("sqlite store", zap.Error(err))
		}
		store = s
		logger.Info("cache backend: sqlite", zap.String("path", cfg.SQLitePath))
	case "memcached":
		s, err := cache.NewMemcachedStore(cfg.MemcachedAddrs, cfg.MemcachedTimeout, cfg.MemcachedMaxIdleConns)
		if err != nil {
			logger.Fatal("memcached store", zap.Error(err))
		}
		store = s
		cachePing = s.Ping
		logger.Info("cache backend: memcached", zap.String("addrs", cfg.MemcachedAddrs))
	default:
		store = cache.NewMemoryStore()
		logger.Info("cache backend: memory")
	}

	proxy := service.NewProxy(meteoClient, store, service.Config{
		WeatherTTL:      cfg.WeatherTTL,
		AirQualityTTL:   cfg.AirQualityTTL,
		GeocodeTTL:      cfg.GeocodeTTL,
		CoalesceEnabled: cfg.CoalesceEnabled,
		CoalesceTimeout: cfg.CoalesceTimeout,
	})

	sweeper := cache.NewSweeper(store, logger)
	if cfg.SweepInterval > 0 {
		if err := sweeper.Start(cfg.SweepInterval); err != nil {
			logger.Fatal("cache sweeper", zap.Error(err))
		}
		logger.Info("cache sweeper started", zap.Duration("interval", cfg.SweepInterval))
	}

	if cfg.WarmCache {
		coords := make([]cache.Coordinate, 0, len(cfg.WarmCoordinates))
		for _, c := range cfg.WarmCoordinates {
			coords = append(coords, cache.Coordinate{Lat: c.Lat, Lon: c.Lon})
		}
		warmer := cache.NewWarmer(proxy, logger)
		warmCtx, warmCancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := warmer.Warm(warmCtx, coords); err != nil {
			logger.Warn("cache warming failed", zap.Error(err))
		}
		warmCancel()
		if cfg.WarmInterval > 0 {
			go func() {
				if err := warmer.WarmPeriodic(context.Background(), coords, cfg.WarmInterval); err != nil && err != context.Canceled {
					logger.Error("periodic cache warming stopped", zap.Error(err))
				}
			}()
		}
	}

	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}
	handler := httphandler.NewHandler(proxy, cfg.AdminToken, logger, cachePing)

	router := mux.NewRouter()
	router.Use(httphandler.CorrelationIDMiddleware(logger))
	router.Use(httphandler.MetricsMiddleware)
	router.HandleFunc("/health", handler.GetHealth).Methods("GET")
	router.Handle("/metrics", observability.MetricsHandler())
	router.HandleFunc("/cache", handler.CacheAdmin).Methods("GET")
	apiRouter := router.PathPrefix("/").Subrouter()
	apiRouter.Use(httphandler.RateLimitMiddleware(limiter))
	apiRouter.Use(httphandler.TimeoutMiddleware(cfg.RequestTimeout))
	apiRouter.HandleFunc("/weather", handler.GetWeather).Methods("GET")
	apiRouter.HandleFunc("/air-quality", handler.GetAirQuality).Methods("GET")
	apiRouter.HandleFunc("/geocode", handler.SearchLocations).Methods("GET")

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", ":"+cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	<-ctx.Done()
	stop()

	logger.Info("graceful shutdown triggered")
	lifecycle.SetShuttingDown(true)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	inFlight := httphandler.InFlightCount()
	logger.Info("waiting for in-flight requests", zap.Int64("count", inFlight))
	waitCtx, waitCancel := context.WithTimeout(context.Background(), cfg.ShutdownInFlightTimeout)
	defer waitCancel()
	if err := httphandler.WaitForInFlight(waitCtx, cfg.ShutdownInFlightCheckInterval); err != nil {
		logger.Warn("in-flight requests not completed", zap.Error(err), zap.Int64("remaining", httphandler.InFlightCount()))
	}

	sweeper.Stop()

	if err := observability.FlushTelemetry(context.Background(), logger); err != nil {
		logger.Error("telemetry flush", zap.Error(err))
	}

	if err := store.Close(); err != nil {
		logger.Error("cache store close", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
