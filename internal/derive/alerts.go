package derive

import (
	"time"

	"github.com/weathermaster/forecast-proxy/internal/models"
)

// Alert thresholds, in the units the upstream reports (°C, km/h, %).
const (
	heatThreshold = 35.0
	coldThreshold = 5.0
	windThreshold = 60.0
	rainThreshold = 80.0
)

// GenerateAlerts evaluates the fixed threshold rules against processed data.
// Rules run in a fixed order and every match is included, except heat and
// cold which are mutually exclusive. No alerts are generated when the current
// snapshot is absent.
func GenerateAlerts(w models.ProcessedWeather, now time.Time) []models.Alert {
	alerts := []models.Alert{}
	if w.Current == nil {
		return alerts
	}
	current := w.Current

	if current.Temperature > heatThreshold {
		alerts = append(alerts, models.Alert{
			Type:        "warning",
			Severity:    "medium",
			Title:       "Alerta de Calor",
			Description: "Temperatura acima de 35°C. Tome precauções contra o calor.",
			Icon:        "fas fa-temperature-high",
			ValidUntil:  now.Add(3 * time.Hour),
		})
	} else if current.Temperature < coldThreshold {
		alerts = append(alerts, models.Alert{
			Type:        "warning",
			Severity:    "medium",
			Title:       "Alerta de Frio",
			Description: "Temperatura abaixo de 5°C. Proteja-se do frio.",
			Icon:        "fas fa-temperature-low",
			ValidUntil:  now.Add(3 * time.Hour),
		})
	}

	if current.WindSpeed > windThreshold {
		alerts = append(alerts, models.Alert{
			Type:        "danger",
			Severity:    "high",
			Title:       "Alerta de Ventos Fortes",
			Description: "Ventos acima de 60 km/h. Tome cuidado ao circular.",
			Icon:        "fas fa-wind",
			ValidUntil:  now.Add(2 * time.Hour),
		})
	}

	if len(w.Hourly) > 0 && w.Hourly[0].PrecipitationProbability != nil &&
		*w.Hourly[0].PrecipitationProbability > rainThreshold {
		alerts = append(alerts, models.Alert{
			Type:        "info",
			Severity:    "low",
			Title:       "Alerta de Chuva",
			Description: "Alta probabilidade de chuva nas próximas horas.",
			Icon:        "fas fa-cloud-rain",
			ValidUntil:  now.Add(3 * time.Hour),
		})
	}

	return alerts
}
