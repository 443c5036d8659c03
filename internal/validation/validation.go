package validation

import (
	"errors"
	"math"
)

// ErrInvalidCoordinates is returned when latitude or longitude is out of range.
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// ErrQueryEmpty is returned when a geocoding query is empty after trimming.
var ErrQueryEmpty = errors.New("query is required")

// Coordinates checks lat ∈ [-90,90] and lon ∈ [-180,180]. Callers must reject
// before any cache or network I/O.
func Coordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}

// GeocodeLimit clamps a result limit to [1,20], falling back to 5 for
// out-of-range values.
func GeocodeLimit(limit int) int {
	if limit < 1 || limit > 20 {
		return 5
	}
	return limit
}

// GeocodeLang restricts the language to the supported set, defaulting to pt.
func GeocodeLang(lang string) string {
	switch lang {
	case "pt", "en", "es", "fr", "de":
		return lang
	}
	return "pt"
}
