package models

// Pollutants holds concentrations for the latest available hour, in µg/m³.
type Pollutants struct {
	Time            string  `json:"time"`
	PM10            float64 `json:"pm10"`
	PM25            float64 `json:"pm2_5"`
	CarbonMonoxide  float64 `json:"carbon_monoxide"`
	NitrogenDioxide float64 `json:"nitrogen_dioxide"`
	SulphurDioxide  float64 `json:"sulphur_dioxide"`
	Ozone           float64 `json:"ozone"`
}

// AQI is the simplified air-quality index on the 0-500 scale.
type AQI struct {
	Value         int    `json:"value"`
	Level         string `json:"level"`
	Color         string `json:"color"`
	HealthEffects string `json:"health_effects"`
}

// AirQuality is the cacheable result of an air-quality fetch.
type AirQuality struct {
	Current     Pollutants        `json:"current"`
	AQI         AQI               `json:"aqi"`
	Description string            `json:"description"`
	Units       map[string]string `json:"units"`
}
