package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/weathermaster/forecast-proxy/internal/observability"
)

// ForecastClient abstracts the upstream weather provider so the service layer
// is testable without network access.
type ForecastClient interface {
	FetchForecast(ctx context.Context, params url.Values) (*ForecastResponse, error)
	FetchAirQuality(ctx context.Context, lat, lon float64) (*AirQualityResponse, error)
	SearchLocations(ctx context.Context, query string, limit int, lang string) (*GeocodeResponse, error)
}

var (
	// ErrUpstreamFailure covers network errors and timeouts.
	ErrUpstreamFailure = errors.New("upstream request failed")
	// ErrUpstreamStatus covers non-200 responses.
	ErrUpstreamStatus = errors.New("upstream returned non-200 status")
	// ErrUnparseableBody covers bodies that are not valid JSON.
	ErrUnparseableBody = errors.New("upstream body not parseable")
	// ErrEmptyPayload covers parseable responses with no usable data.
	ErrEmptyPayload = errors.New("upstream payload empty")
)

// Upstream endpoint labels used in metrics.
const (
	endpointForecast   = "forecast"
	endpointAirQuality = "air_quality"
	endpointGeocoding  = "geocoding"
)

// OpenMeteoClient calls the Open-Meteo forecast, air-quality, and geocoding
// APIs. One attempt per call: a failure goes straight back to the caller,
// which decides between stale fallback and a failure envelope.
type OpenMeteoClient struct {
	forecastURL   string
	airQualityURL string
	geocodingURL  string
	userAgent     string
	client        *http.Client
}

// NewOpenMeteoClient creates a client with the given endpoint URLs and request
// timeout. TLS verification stays at the default (enabled).
func NewOpenMeteoClient(forecastURL, airQualityURL, geocodingURL, userAgent string, timeout time.Duration) *OpenMeteoClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &OpenMeteoClient{
		forecastURL:   forecastURL,
		airQualityURL: airQualityURL,
		geocodingURL:  geocodingURL,
		userAgent:     userAgent,
		client:        &http.Client{Timeout: timeout},
	}
}

// FetchForecast issues one GET to the forecast endpoint with the given query
// parameters (already merged by the service layer).
func (c *OpenMeteoClient) FetchForecast(ctx context.Context, params url.Values) (*ForecastResponse, error) {
	body, err := c.get(ctx, endpointForecast, c.forecastURL, params)
	if err != nil {
		return nil, err
	}
	var fc ForecastResponse
	if err := json.Unmarshal(body, &fc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseableBody, err)
	}
	if fc.CurrentWeather == nil && fc.Hourly == nil && fc.Daily == nil {
		return nil, ErrEmptyPayload
	}
	return &fc, nil
}

// FetchAirQuality issues one GET to the air-quality endpoint.
func (c *OpenMeteoClient) FetchAirQuality(ctx context.Context, lat, lon float64) (*AirQualityResponse, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	params.Set("hourly", "pm10,pm2_5,carbon_monoxide,nitrogen_dioxide,sulphur_dioxide,ozone")
	params.Set("domains", "cams_global")
	params.Set("timezone", "auto")

	body, err := c.get(ctx, endpointAirQuality, c.airQualityURL, params)
	if err != nil {
		return nil, err
	}
	var aq AirQualityResponse
	if err := json.Unmarshal(body, &aq); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseableBody, err)
	}
	if aq.Hourly == nil || len(aq.Hourly.Time) == 0 {
		return nil, ErrEmptyPayload
	}
	return &aq, nil
}

// SearchLocations issues one GET to the geocoding endpoint.
func (c *OpenMeteoClient) SearchLocations(ctx context.Context, query string, limit int, lang string) (*GeocodeResponse, error) {
	params := url.Values{}
	params.Set("name", query)
	params.Set("count", strconv.Itoa(limit))
	params.Set("language", lang)
	params.Set("format", "json")

	body, err := c.get(ctx, endpointGeocoding, c.geocodingURL, params)
	if err != nil {
		return nil, err
	}
	var gc GeocodeResponse
	if err := json.Unmarshal(body, &gc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseableBody, err)
	}
	return &gc, nil
}

func (c *OpenMeteoClient) get(ctx context.Context, endpoint, baseURL string, params url.Values) ([]byte, error) {
	start := time.Now()

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream URL %q: %w", baseURL, err)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		c.observe(endpoint, "error", start)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%w: timeout: %v", ErrUpstreamFailure, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	c.observe(endpoint, statusLabel(resp.StatusCode), start)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d", ErrUpstreamStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstreamFailure, err)
	}
	if len(body) == 0 {
		return nil, ErrEmptyPayload
	}
	return body, nil
}

func (c *OpenMeteoClient) observe(endpoint, status string, start time.Time) {
	observability.UpstreamRequestsTotal.WithLabelValues(endpoint, status).Inc()
	observability.UpstreamRequestDuration.WithLabelValues(endpoint, status).Observe(time.Since(start).Seconds())
}

func statusLabel(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "success"
	case statusCode == http.StatusTooManyRequests:
		return "rate_limited"
	case statusCode >= 400 && statusCode < 500:
		return "client_error"
	case statusCode >= 500:
		return "server_error"
	default:
		return "error"
	}
}
