// Package derive contains the pure functions that turn raw upstream payloads
// into processed, display-ready values: current/hourly/daily series, threshold
// alerts, textual summaries, the simplified AQI, and the weather-code lookup
// tables. Nothing here performs I/O.
package derive

import (
	"fmt"
	"strconv"
	"time"

	"github.com/weathermaster/forecast-proxy/internal/client"
	"github.com/weathermaster/forecast-proxy/internal/models"
)

// Series bounds applied regardless of upstream payload size.
const (
	maxHourlySamples = 24
	maxDailySamples  = 7
)

// Process builds a ProcessedWeather from a raw forecast response. Alerts and
// the summary are recomputed on every call; they are never cached separately
// from the parent payload.
func Process(raw *client.ForecastResponse, prefs models.UserPreferences, meta models.Metadata, now time.Time) models.ProcessedWeather {
	prefs = prefs.Normalized()
	out := models.ProcessedWeather{
		Current:  buildCurrent(raw, prefs),
		Hourly:   buildHourly(raw),
		Daily:    buildDaily(raw),
		Metadata: meta,
	}
	if out.Current != nil && len(out.Hourly) > 0 && out.Hourly[0].Humidity != nil {
		fl := FeelsLike(out.Current.Temperature, out.Current.WindSpeed, *out.Hourly[0].Humidity)
		out.Current.FeelsLike = &fl
	}
	out.Alerts = GenerateAlerts(out, now)
	out.Summary = Summary(out.Current, prefs.Language)
	return out
}

// Summary renders the one-line description of current conditions, or a fixed
// unavailable string when the snapshot is absent.
func Summary(current *models.CurrentWeather, lang string) string {
	if current == nil {
		if lang == models.LangEnglish {
			return "Data unavailable"
		}
		return "Dados indisponíveis"
	}
	desc := Description(current.WeatherCode, lang)
	temp := strconv.FormatFloat(current.Temperature, 'f', -1, 64)
	wind := strconv.FormatFloat(current.WindSpeed, 'f', -1, 64)
	if lang == models.LangEnglish {
		return fmt.Sprintf("Currently: %s, %s°C. Wind: %s km/h.", desc, temp, wind)
	}
	return fmt.Sprintf("Atualmente: %s, %s°C. Vento: %s km/h.", desc, temp, wind)
}

func buildCurrent(raw *client.ForecastResponse, prefs models.UserPreferences) *models.CurrentWeather {
	cw := raw.CurrentWeather
	if cw == nil {
		return nil
	}
	isDay := true
	if cw.IsDay != nil {
		isDay = *cw.IsDay != 0
	}
	tempUnit, windUnit := "°C", "km/h"
	if prefs.Units == models.UnitsImperial {
		tempUnit, windUnit = "°F", "mph"
	}
	return &models.CurrentWeather{
		Temperature:     cw.Temperature,
		WindSpeed:       cw.WindSpeed,
		WindDirection:   cw.WindDirection,
		WindCompass:     WindDirection(cw.WindDirection),
		WeatherCode:     cw.WeatherCode,
		Time:            cw.Time,
		Description:     Description(cw.WeatherCode, prefs.Language),
		Icon:            Icon(cw.WeatherCode, isDay),
		TemperatureUnit: tempUnit,
		WindSpeedUnit:   windUnit,
		WindDirUnit:     "°",
	}
}

func buildHourly(raw *client.ForecastResponse) []models.HourlySample {
	h := raw.Hourly
	if h == nil {
		return nil
	}
	n := min(maxHourlySamples, len(h.Time))
	out := make([]models.HourlySample, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.HourlySample{
			Time:                     h.Time[i],
			Temperature:              at(h.Temperature2m, i),
			Humidity:                 at(h.RelativeHumidity2m, i),
			PrecipitationProbability: at(h.PrecipitationProbability, i),
			WeatherCode:              at(h.WeatherCode, i),
			WindSpeed:                at(h.WindSpeed10m, i),
			WindDirection:            at(h.WindDirection10m, i),
			CloudCover:               at(h.CloudCover, i),
		})
	}
	return out
}

func buildDaily(raw *client.ForecastResponse) []models.DailySample {
	d := raw.Daily
	if d == nil {
		return nil
	}
	n := min(maxDailySamples, len(d.Time))
	out := make([]models.DailySample, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.DailySample{
			Time:             d.Time[i],
			WeatherCode:      at(d.WeatherCode, i),
			TemperatureMax:   at(d.Temperature2mMax, i),
			TemperatureMin:   at(d.Temperature2mMin, i),
			PrecipitationSum: at(d.PrecipitationSum, i),
			WindSpeedMax:     at(d.WindSpeed10mMax, i),
			Sunrise:          strAt(d.Sunrise, i),
			Sunset:           strAt(d.Sunset, i),
			UVIndexMax:       at(d.UVIndexMax, i),
		})
	}
	return out
}

// ProcessAirQuality builds an AirQuality from the latest available hour of a
// raw air-quality response.
func ProcessAirQuality(raw *client.AirQualityResponse) models.AirQuality {
	h := raw.Hourly
	last := len(h.Time) - 1
	current := models.Pollutants{
		Time:            h.Time[last],
		PM10:            val(h.PM10, last),
		PM25:            val(h.PM25, last),
		CarbonMonoxide:  val(h.CarbonMonoxide, last),
		NitrogenDioxide: val(h.NitrogenDioxide, last),
		SulphurDioxide:  val(h.SulphurDioxide, last),
		Ozone:           val(h.Ozone, last),
	}
	aqi := CalculateAQI(current)
	return models.AirQuality{
		Current:     current,
		AQI:         aqi,
		Description: AQIDescription(aqi.Value),
		Units: map[string]string{
			"pm10":             "µg/m³",
			"pm2_5":            "µg/m³",
			"carbon_monoxide":  "µg/m³",
			"nitrogen_dioxide": "µg/m³",
			"sulphur_dioxide":  "µg/m³",
			"ozone":            "µg/m³",
		},
	}
}

// at returns the i-th element of a nullable column, or nil when the column is
// short or the value is missing.
func at[T any](col []*T, i int) *T {
	if i >= len(col) {
		return nil
	}
	return col[i]
}

func strAt(col []string, i int) *string {
	if i >= len(col) {
		return nil
	}
	return &col[i]
}

// val reads a pollutant concentration, treating missing values as zero the
// way the original processing did.
func val(col []*float64, i int) float64 {
	if i >= len(col) || col[i] == nil {
		return 0
	}
	return *col[i]
}
