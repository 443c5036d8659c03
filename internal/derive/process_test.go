package derive

import (
	"fmt"
	"testing"
	"time"

	"github.com/weathermaster/forecast-proxy/internal/client"
	"github.com/weathermaster/forecast-proxy/internal/models"
)

func intPtr(v int) *int { return &v }

func forecastFixture(hourlyLen, dailyLen int) *client.ForecastResponse {
	raw := &client.ForecastResponse{
		CurrentWeather: &client.CurrentConditions{
			Temperature:   21.5,
			WindSpeed:     10,
			WindDirection: 90,
			WeatherCode:   0,
			IsDay:         intPtr(1),
			Time:          "2026-08-30T12:00",
		},
	}
	if hourlyLen > 0 {
		h := &client.HourlyBlock{}
		for i := 0; i < hourlyLen; i++ {
			h.Time = append(h.Time, fmt.Sprintf("2026-08-30T%02d:00", i%24))
			h.Temperature2m = append(h.Temperature2m, float64Ptr(20+float64(i)))
			h.RelativeHumidity2m = append(h.RelativeHumidity2m, float64Ptr(55))
			h.PrecipitationProbability = append(h.PrecipitationProbability, float64Ptr(10))
			h.WeatherCode = append(h.WeatherCode, intPtr(1))
			h.WindSpeed10m = append(h.WindSpeed10m, float64Ptr(12))
			h.WindDirection10m = append(h.WindDirection10m, float64Ptr(180))
		}
		raw.Hourly = h
	}
	if dailyLen > 0 {
		d := &client.DailyBlock{}
		for i := 0; i < dailyLen; i++ {
			d.Time = append(d.Time, fmt.Sprintf("2026-09-%02d", i+1))
			d.WeatherCode = append(d.WeatherCode, intPtr(2))
			d.Temperature2mMax = append(d.Temperature2mMax, float64Ptr(25))
			d.Temperature2mMin = append(d.Temperature2mMin, float64Ptr(15))
			d.Sunrise = append(d.Sunrise, "06:30")
			d.Sunset = append(d.Sunset, "19:45")
		}
		raw.Daily = d
	}
	return raw
}

// TestProcess verifies assembly of the processed payload from a full raw
// response: current snapshot, derived fields, series, and summary.
func TestProcess(t *testing.T) {
	meta := models.Metadata{Latitude: -23.5505, Longitude: -46.6333, Units: models.UnitsMetric}
	got := Process(forecastFixture(12, 3), models.DefaultPreferences(), meta, time.Now())

	if got.Current == nil {
		t.Fatal("Process() Current = nil, want snapshot")
	}
	if got.Current.Description != "Céu limpo" {
		t.Errorf("Current.Description = %q, want %q", got.Current.Description, "Céu limpo")
	}
	if got.Current.Icon != "fas fa-sun" {
		t.Errorf("Current.Icon = %q, want %q", got.Current.Icon, "fas fa-sun")
	}
	if got.Current.WindCompass != "L" {
		t.Errorf("Current.WindCompass = %q, want %q", got.Current.WindCompass, "L")
	}
	if got.Current.FeelsLike == nil {
		t.Error("Current.FeelsLike = nil, want value derived from first hourly humidity")
	}
	if len(got.Hourly) != 12 {
		t.Errorf("len(Hourly) = %d, want 12", len(got.Hourly))
	}
	if len(got.Daily) != 3 {
		t.Errorf("len(Daily) = %d, want 3", len(got.Daily))
	}
	if got.Summary != "Atualmente: Céu limpo, 21.5°C. Vento: 10 km/h." {
		t.Errorf("Summary = %q", got.Summary)
	}
	if got.Metadata.Latitude != meta.Latitude {
		t.Errorf("Metadata.Latitude = %v, want %v", got.Metadata.Latitude, meta.Latitude)
	}
}

// TestProcess_SeriesTruncation checks the hourly and daily series bounds.
func TestProcess_SeriesTruncation(t *testing.T) {
	got := Process(forecastFixture(48, 14), models.DefaultPreferences(), models.Metadata{}, time.Now())
	if len(got.Hourly) != 24 {
		t.Errorf("len(Hourly) = %d, want 24", len(got.Hourly))
	}
	if len(got.Daily) != 7 {
		t.Errorf("len(Daily) = %d, want 7", len(got.Daily))
	}
}

// TestProcess_MissingBlocks checks behavior when upstream omits whole blocks.
func TestProcess_MissingBlocks(t *testing.T) {
	got := Process(&client.ForecastResponse{}, models.DefaultPreferences(), models.Metadata{}, time.Now())
	if got.Current != nil {
		t.Errorf("Current = %+v, want nil", got.Current)
	}
	if got.Hourly != nil || got.Daily != nil {
		t.Error("Hourly/Daily should be nil when upstream omits the blocks")
	}
	if got.Summary != "Dados indisponíveis" {
		t.Errorf("Summary = %q, want %q", got.Summary, "Dados indisponíveis")
	}
	if len(got.Alerts) != 0 {
		t.Errorf("Alerts = %+v, want none", got.Alerts)
	}
}

// TestProcess_EnglishSummary checks language selection in the summary.
func TestProcess_EnglishSummary(t *testing.T) {
	prefs := models.UserPreferences{Units: models.UnitsMetric, Language: models.LangEnglish}
	got := Process(forecastFixture(1, 0), prefs, models.Metadata{}, time.Now())
	if got.Summary != "Currently: Clear sky, 21.5°C. Wind: 10 km/h." {
		t.Errorf("Summary = %q", got.Summary)
	}
}

// TestProcess_MissingColumnValues checks short or null columns yield nil
// fields rather than panicking.
func TestProcess_MissingColumnValues(t *testing.T) {
	raw := &client.ForecastResponse{
		Hourly: &client.HourlyBlock{
			Time:          []string{"2026-08-30T00:00", "2026-08-30T01:00"},
			Temperature2m: []*float64{float64Ptr(18), nil},
		},
	}
	got := Process(raw, models.DefaultPreferences(), models.Metadata{}, time.Now())
	if len(got.Hourly) != 2 {
		t.Fatalf("len(Hourly) = %d, want 2", len(got.Hourly))
	}
	if got.Hourly[0].Temperature == nil || *got.Hourly[0].Temperature != 18 {
		t.Errorf("Hourly[0].Temperature = %v, want 18", got.Hourly[0].Temperature)
	}
	if got.Hourly[1].Temperature != nil {
		t.Errorf("Hourly[1].Temperature = %v, want nil", *got.Hourly[1].Temperature)
	}
	if got.Hourly[0].Humidity != nil {
		t.Error("Hourly[0].Humidity should be nil for an absent column")
	}
}

// TestProcessAirQuality verifies the latest-hour selection and zero defaults
// for missing pollutant values.
func TestProcessAirQuality(t *testing.T) {
	raw := &client.AirQualityResponse{
		Hourly: &client.AirHourlyBlock{
			Time:            []string{"2026-08-30T10:00", "2026-08-30T11:00"},
			PM25:            []*float64{float64Ptr(5), float64Ptr(40)},
			PM10:            []*float64{float64Ptr(10), float64Ptr(20)},
			NitrogenDioxide: []*float64{float64Ptr(8), nil},
		},
	}
	got := ProcessAirQuality(raw)
	if got.Current.Time != "2026-08-30T11:00" {
		t.Errorf("Current.Time = %q, want latest hour", got.Current.Time)
	}
	if got.Current.PM25 != 40 {
		t.Errorf("Current.PM25 = %v, want 40", got.Current.PM25)
	}
	if got.Current.NitrogenDioxide != 0 {
		t.Errorf("Current.NitrogenDioxide = %v, want 0 for null reading", got.Current.NitrogenDioxide)
	}
	if got.Current.Ozone != 0 {
		t.Errorf("Current.Ozone = %v, want 0 for absent column", got.Current.Ozone)
	}
	if got.AQI.Level != "Insalubre para grupos sensíveis" {
		t.Errorf("AQI.Level = %q for pm2.5 = 40", got.AQI.Level)
	}
	if got.Description == "" {
		t.Error("Description should not be empty")
	}
	if got.Units["pm2_5"] != "µg/m³" {
		t.Errorf("Units[pm2_5] = %q, want µg/m³", got.Units["pm2_5"])
	}
}
