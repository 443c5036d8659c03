package service

import (
	"net/url"

	"github.com/weathermaster/forecast-proxy/internal/models"
)

// Default field selections requested from the forecast API. Callers may
// override any of these or request additional parameters; latitude and
// longitude always come from the validated inputs and cannot be overridden.
const (
	defaultHourlyFields = "temperature_2m,relative_humidity_2m,precipitation_probability," +
		"precipitation,weather_code,wind_speed_10m,wind_direction_10m"
	defaultDailyFields = "weather_code,temperature_2m_max,temperature_2m_min," +
		"precipitation_sum,precipitation_probability_max,wind_speed_10m_max,sunrise,sunset"
)

func defaultForecastOptions() map[string]string {
	return map[string]string{
		"hourly":          defaultHourlyFields,
		"daily":           defaultDailyFields,
		"current_weather": "true",
		"timezone":        "auto",
		"forecast_days":   "7",
		"past_days":       "1",
		"models":          "best_match",
	}
}

// mergeOptions layers caller overrides on top of the defaults, with unit
// parameters injected for imperial preferences. Latitude and longitude are
// stripped so they never leak into the options digest.
func mergeOptions(overrides map[string]string, prefs models.UserPreferences) map[string]string {
	opts := defaultForecastOptions()
	if prefs.Units == models.UnitsImperial {
		opts["temperature_unit"] = "fahrenheit"
		opts["wind_speed_unit"] = "mph"
		opts["precipitation_unit"] = "inch"
	}
	for k, v := range overrides {
		if k == "latitude" || k == "longitude" {
			continue
		}
		opts[k] = v
	}
	return opts
}

// forecastParams builds the upstream query from validated coordinates plus
// the merged options.
func forecastParams(lat, lon float64, opts map[string]string) url.Values {
	params := url.Values{}
	params.Set("latitude", formatCoord(lat))
	params.Set("longitude", formatCoord(lon))
	for k, v := range opts {
		params.Set(k, v)
	}
	return params
}
