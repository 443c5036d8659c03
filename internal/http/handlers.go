package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/weathermaster/forecast-proxy/internal/lifecycle"
	"github.com/weathermaster/forecast-proxy/internal/models"
	"github.com/weathermaster/forecast-proxy/internal/service"
)

// Query parameters consumed by the handlers themselves. Everything else on
// the weather route is forwarded upstream as an override.
var reservedWeatherParams = map[string]bool{
	"lat":       true,
	"lon":       true,
	"latitude":  true,
	"longitude": true,
	"units":     true,
	"lang":      true,
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	proxy      *service.Proxy
	adminToken string
	logger     *zap.Logger
	// cachePing, when set, is called by the health handler to check cache
	// reachability. Set when the backend is memcached.
	cachePing func() error

	healthStatusMu   sync.Mutex
	healthStatusPrev string
}

// NewHandler returns a new Handler. An empty adminToken disables the cache
// admin endpoint entirely.
func NewHandler(proxy *service.Proxy, adminToken string, logger *zap.Logger, cachePing func() error) *Handler {
	return &Handler{
		proxy:      proxy,
		adminToken: adminToken,
		logger:     logger,
		cachePing:  cachePing,
	}
}

// GetWeather handles GET /weather?lat=..&lon=..
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := parseCoords(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	prefs := models.UserPreferences{Units: q.Get("units"), Language: q.Get("lang")}
	overrides := make(map[string]string)
	for k, vs := range q {
		if reservedWeatherParams[k] || len(vs) == 0 {
			continue
		}
		overrides[k] = vs[0]
	}

	result := h.proxy.GetWeather(r.Context(), lat, lon, overrides, prefs)
	writeResult(w, result)
}

// GetAirQuality handles GET /air-quality?lat=..&lon=..
func (h *Handler) GetAirQuality(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := parseCoords(w, r)
	if !ok {
		return
	}
	result := h.proxy.GetAirQuality(r.Context(), lat, lon)
	writeResult(w, result)
}

// SearchLocations handles GET /geocode?q=..&limit=..&lang=..
func (h *Handler) SearchLocations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}
	result := h.proxy.SearchLocations(r.Context(), q.Get("q"), limit, q.Get("lang"))
	writeResult(w, result)
}

// CacheAdmin handles GET /cache?action=clear. The request must carry the
// configured admin token in X-Admin-Token; anything else is rejected before
// any cache mutation happens.
func (h *Handler) CacheAdmin(w http.ResponseWriter, r *http.Request) {
	if h.adminToken == "" || r.Header.Get("X-Admin-Token") != h.adminToken {
		writeResult(w, models.Failure(models.KindUnauthorized, "unauthorized"))
		return
	}
	if r.URL.Query().Get("action") != "clear" {
		writeResult(w, models.Failure(models.KindInvalidInput, "unknown cache action"))
		return
	}

	n, err := h.proxy.ClearCache(r.Context())
	if err != nil {
		res := models.Failure(models.KindUpstreamUnavailable, "cache clear failed")
		res.Details = err.Error()
		writeResult(w, res)
		return
	}
	data, _ := json.Marshal(map[string]int{"cleared": n})
	writeResult(w, models.Result{Success: true, Data: data})
}

// GetHealth handles GET /health.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	statusCode := http.StatusOK
	reason := ""

	checks := make(map[string]string)
	if h.cachePing != nil {
		if h.cachePing() == nil {
			checks["cache"] = "healthy"
		} else {
			checks["cache"] = "unhealthy"
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
			reason = "cache_unreachable"
		}
	}
	if lifecycle.IsShuttingDown() {
		status = "shutting-down"
		statusCode = http.StatusServiceUnavailable
		reason = "signal"
	}

	h.healthStatusMu.Lock()
	prev := h.healthStatusPrev
	if prev != "" && prev != status {
		h.logger.Info("health status transition",
			zap.String("previous_status", prev),
			zap.String("current_status", status),
			zap.String("reason", reason))
	}
	h.healthStatusPrev = status
	h.healthStatusMu.Unlock()

	writeJSON(w, statusCode, map[string]interface{}{
		"status":    status,
		"service":   "forecast-proxy",
		"version":   "dev",
		"checks":    checks,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// parseCoords reads and validates presence of lat/lon query parameters.
// Missing or malformed values produce a 400 before any cache or upstream I/O.
func parseCoords(w http.ResponseWriter, r *http.Request) (float64, float64, bool) {
	q := r.URL.Query()
	latRaw, lonRaw := q.Get("lat"), q.Get("lon")
	if latRaw == "" || lonRaw == "" {
		writeResult(w, models.Failure(models.KindInvalidInput, "lat and lon are required"))
		return 0, 0, false
	}
	lat, errLat := strconv.ParseFloat(latRaw, 64)
	lon, errLon := strconv.ParseFloat(lonRaw, 64)
	if errLat != nil || errLon != nil {
		writeResult(w, models.Failure(models.KindInvalidInput, "lat and lon must be numbers"))
		return 0, 0, false
	}
	return lat, lon, true
}

// writeResult maps a service envelope to its HTTP status and writes it.
func writeResult(w http.ResponseWriter, res models.Result) {
	writeJSON(w, statusForResult(res), res)
}

func statusForResult(res models.Result) int {
	if res.Success {
		return http.StatusOK
	}
	switch res.Kind {
	case models.KindInvalidInput:
		return http.StatusBadRequest
	case models.KindUnauthorized:
		return http.StatusUnauthorized
	case models.KindUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON writes a JSON response with the specified HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
