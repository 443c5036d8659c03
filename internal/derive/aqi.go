package derive

import (
	"math"

	"github.com/weathermaster/forecast-proxy/internal/models"
)

// aqiBand is one segment of the piecewise-linear concentration-to-index scale.
type aqiBand struct {
	concLo, concHi float64
	aqiLo, aqiHi   float64
	level          string
	color          string
	healthEffects  string
}

// Simplified 6-band scale over the weighted pollutant maximum.
var aqiBands = []aqiBand{
	{0, 12, 0, 50, "Boa", "#2ecc71", "Nenhum"},
	{12.1, 35.4, 51, 100, "Moderada", "#f1c40f", "Irritação leve em pessoas muito sensíveis"},
	{35.5, 55.4, 101, 150, "Insalubre para grupos sensíveis", "#e67e22", "Problemas respiratórios em pessoas sensíveis"},
	{55.5, 150.4, 151, 200, "Insalubre", "#e74c3c", "Problemas respiratórios para toda a população"},
	{150.5, 250.4, 201, 300, "Muito Insalubre", "#8e44ad", "Efeitos graves na saúde"},
	{250.5, 500.4, 301, 500, "Perigosa", "#c0392b", "Efeitos emergenciais na saúde de toda a população"},
}

// Pollutant weights applied before mapping to the scale. PM2.5 dominates;
// PM10 and NO2 are discounted.
const (
	weightPM10 = 0.5
	weightNO2  = 0.2
)

// CalculateAQI computes the simplified air-quality index from pollutant
// concentrations: the maximum of weighted PM2.5, PM10, and NO2 mapped to an
// integer 0-500 with a category label, display color, and health-effects
// string.
func CalculateAQI(p models.Pollutants) models.AQI {
	maxValue := math.Max(p.PM25, math.Max(p.PM10*weightPM10, p.NitrogenDioxide*weightNO2))

	band := aqiBands[len(aqiBands)-1]
	for _, b := range aqiBands {
		if maxValue <= b.concHi {
			band = b
			break
		}
	}

	var value float64
	if band.concHi == band.concLo {
		value = band.aqiLo
	} else {
		value = band.aqiLo + (maxValue-band.concLo)/(band.concHi-band.concLo)*(band.aqiHi-band.aqiLo)
	}
	if value < 0 {
		value = 0
	}
	if value > 500 {
		value = 500
	}

	return models.AQI{
		Value:         int(math.Round(value)),
		Level:         band.level,
		Color:         band.color,
		HealthEffects: band.healthEffects,
	}
}

// AQIDescription returns the band description for an already-computed index
// value.
func AQIDescription(aqi int) string {
	switch {
	case aqi <= 50:
		return "A qualidade do ar é considerada satisfatória."
	case aqi <= 100:
		return "A qualidade do ar é aceitável."
	case aqi <= 150:
		return "Membros de grupos sensíveis podem sentir efeitos na saúde."
	case aqi <= 200:
		return "Todos podem começar a sentir efeitos na saúde."
	case aqi <= 300:
		return "Alerta de saúde: todos podem sentir efeitos mais graves."
	default:
		return "Aviso de emergência de saúde."
	}
}
