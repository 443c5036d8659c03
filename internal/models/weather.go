package models

import "time"

// CurrentWeather is the processed snapshot of current conditions.
type CurrentWeather struct {
	Temperature     float64  `json:"temperature"`
	WindSpeed       float64  `json:"windspeed"`
	WindDirection   float64  `json:"winddirection"`
	WindCompass     string   `json:"wind_compass"`
	WeatherCode     int      `json:"weathercode"`
	Time            string   `json:"time"`
	Description     string   `json:"description"`
	Icon            string   `json:"icon"`
	FeelsLike       *float64 `json:"feels_like,omitempty"`
	TemperatureUnit string   `json:"temperature_unit"`
	WindSpeedUnit   string   `json:"windspeed_unit"`
	WindDirUnit     string   `json:"winddirection_unit"`
}

// HourlySample is one processed hourly record. Fields missing upstream stay nil.
type HourlySample struct {
	Time                     string   `json:"time"`
	Temperature              *float64 `json:"temperature"`
	Humidity                 *float64 `json:"humidity"`
	PrecipitationProbability *float64 `json:"precipitation_probability"`
	WeatherCode              *int     `json:"weather_code"`
	WindSpeed                *float64 `json:"wind_speed"`
	WindDirection            *float64 `json:"wind_direction"`
	CloudCover               *float64 `json:"cloud_cover"`
}

// DailySample is one processed daily record. Fields missing upstream stay nil.
type DailySample struct {
	Time             string   `json:"time"`
	WeatherCode      *int     `json:"weather_code"`
	TemperatureMax   *float64 `json:"temperature_max"`
	TemperatureMin   *float64 `json:"temperature_min"`
	PrecipitationSum *float64 `json:"precipitation_sum"`
	WindSpeedMax     *float64 `json:"wind_speed_max"`
	Sunrise          *string  `json:"sunrise"`
	Sunset           *string  `json:"sunset"`
	UVIndexMax       *float64 `json:"uv_index_max"`
}

// Alert is a threshold-based weather alert. Regenerated on every processing
// pass, never cached on its own.
type Alert struct {
	Type        string    `json:"type"`     // info, warning, danger
	Severity    string    `json:"severity"` // low, medium, high
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	ValidUntil  time.Time `json:"valid_until"`
}

// Metadata describes the request that produced a processed payload.
type Metadata struct {
	Latitude   float64   `json:"lat"`
	Longitude  float64   `json:"lon"`
	Timestamp  time.Time `json:"timestamp"`
	Units      string    `json:"units"`
	APIVersion string    `json:"api_version"`
}

// ProcessedWeather is the cacheable result of a forecast fetch.
// Hourly is bounded to 24 samples and Daily to 7 regardless of upstream size.
type ProcessedWeather struct {
	Current  *CurrentWeather `json:"current,omitempty"`
	Hourly   []HourlySample  `json:"hourly,omitempty"`
	Daily    []DailySample   `json:"daily,omitempty"`
	Alerts   []Alert         `json:"alerts"`
	Summary  string          `json:"summary"`
	Metadata Metadata        `json:"metadata"`
}
