package validation

import (
	"errors"
	"math"
	"testing"
)

// TestCoordinates verifies range checking on latitude and longitude.
func TestCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lon     float64
		wantErr bool
	}{
		{"valid origin", 0, 0, false},
		{"valid extremes", 90, 180, false},
		{"valid negative extremes", -90, -180, false},
		{"valid city", -23.5505, -46.6333, false},
		{"lat too high", 90.001, 0, true},
		{"lat too low", -91, 0, true},
		{"lon too high", 0, 180.5, true},
		{"lon too low", 0, -181, true},
		{"NaN lat", math.NaN(), 0, true},
		{"NaN lon", 0, math.NaN(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Coordinates(tt.lat, tt.lon)
			if (err != nil) != tt.wantErr {
				t.Errorf("Coordinates(%v, %v) error = %v, wantErr %v", tt.lat, tt.lon, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidCoordinates) {
				t.Errorf("Coordinates(%v, %v) error = %v, want ErrInvalidCoordinates", tt.lat, tt.lon, err)
			}
		})
	}
}

// TestGeocodeLimit verifies clamping of the geocoding result limit.
func TestGeocodeLimit(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 5},
		{-3, 5},
		{1, 1},
		{10, 10},
		{20, 20},
		{21, 5},
		{100, 5},
	}
	for _, tt := range tests {
		if got := GeocodeLimit(tt.in); got != tt.want {
			t.Errorf("GeocodeLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// TestGeocodeLang verifies the supported language set with pt fallback.
func TestGeocodeLang(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"pt", "pt"},
		{"en", "en"},
		{"es", "es"},
		{"fr", "fr"},
		{"de", "de"},
		{"", "pt"},
		{"jp", "pt"},
		{"PT", "pt"},
	}
	for _, tt := range tests {
		if got := GeocodeLang(tt.in); got != tt.want {
			t.Errorf("GeocodeLang(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
