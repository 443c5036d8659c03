package client

// ForecastResponse mirrors the Open-Meteo /v1/forecast payload for the fields
// this service consumes. Per-sample values are pointers because upstream emits
// null for missing readings.
type ForecastResponse struct {
	Latitude       float64            `json:"latitude"`
	Longitude      float64            `json:"longitude"`
	Timezone       string             `json:"timezone"`
	CurrentWeather *CurrentConditions `json:"current_weather"`
	Hourly         *HourlyBlock       `json:"hourly"`
	Daily          *DailyBlock        `json:"daily"`
}

// CurrentConditions is the current_weather block.
type CurrentConditions struct {
	Temperature   float64 `json:"temperature"`
	WindSpeed     float64 `json:"windspeed"`
	WindDirection float64 `json:"winddirection"`
	WeatherCode   int     `json:"weathercode"`
	IsDay         *int    `json:"is_day"`
	Time          string  `json:"time"`
}

// HourlyBlock holds parallel arrays keyed by the time column.
type HourlyBlock struct {
	Time                     []string   `json:"time"`
	Temperature2m            []*float64 `json:"temperature_2m"`
	RelativeHumidity2m       []*float64 `json:"relative_humidity_2m"`
	PrecipitationProbability []*float64 `json:"precipitation_probability"`
	WeatherCode              []*int     `json:"weather_code"`
	WindSpeed10m             []*float64 `json:"wind_speed_10m"`
	WindDirection10m         []*float64 `json:"wind_direction_10m"`
	CloudCover               []*float64 `json:"cloud_cover"`
}

// DailyBlock holds parallel arrays keyed by the time column.
type DailyBlock struct {
	Time             []string   `json:"time"`
	WeatherCode      []*int     `json:"weather_code"`
	Temperature2mMax []*float64 `json:"temperature_2m_max"`
	Temperature2mMin []*float64 `json:"temperature_2m_min"`
	PrecipitationSum []*float64 `json:"precipitation_sum"`
	WindSpeed10mMax  []*float64 `json:"wind_speed_10m_max"`
	Sunrise          []string   `json:"sunrise"`
	Sunset           []string   `json:"sunset"`
	UVIndexMax       []*float64 `json:"uv_index_max"`
}

// AirQualityResponse mirrors the Open-Meteo air-quality payload.
type AirQualityResponse struct {
	Hourly *AirHourlyBlock `json:"hourly"`
}

// AirHourlyBlock holds pollutant concentration arrays.
type AirHourlyBlock struct {
	Time            []string   `json:"time"`
	PM10            []*float64 `json:"pm10"`
	PM25            []*float64 `json:"pm2_5"`
	CarbonMonoxide  []*float64 `json:"carbon_monoxide"`
	NitrogenDioxide []*float64 `json:"nitrogen_dioxide"`
	SulphurDioxide  []*float64 `json:"sulphur_dioxide"`
	Ozone           []*float64 `json:"ozone"`
}

// GeocodeResponse mirrors the Open-Meteo geocoding search payload.
type GeocodeResponse struct {
	Results []GeocodeMatch `json:"results"`
}

// GeocodeMatch is one geocoding result.
type GeocodeMatch struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code"`
	Admin1      string  `json:"admin1"`
	Population  int64   `json:"population"`
	Timezone    string  `json:"timezone"`
}
