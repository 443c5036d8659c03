package derive

import (
	"strconv"

	"github.com/weathermaster/forecast-proxy/internal/models"
)

// FormatTemperature renders a temperature with its unit, converting to
// Fahrenheit for imperial preferences.
func FormatTemperature(temp float64, units string) string {
	if units == models.UnitsImperial {
		return strconv.FormatFloat(round1(temp*9/5+32), 'f', -1, 64) + "°F"
	}
	return strconv.FormatFloat(round1(temp), 'f', -1, 64) + "°C"
}

// FormatWindSpeed renders a wind speed with its unit, converting km/h to mph
// for imperial preferences.
func FormatWindSpeed(speed float64, units string) string {
	if units == models.UnitsImperial {
		return strconv.FormatFloat(round1(speed*0.621371), 'f', -1, 64) + " mph"
	}
	return strconv.FormatFloat(round1(speed), 'f', -1, 64) + " km/h"
}
