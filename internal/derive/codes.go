package derive

// UnknownCondition is returned for weather codes missing from the tables.
const UnknownCondition = "Condição desconhecida"

// UnknownIcon is returned for weather codes missing from the icon table.
const UnknownIcon = "fas fa-question-circle"

// WMO weather interpretation codes as emitted by Open-Meteo.
var descriptionsPT = map[int]string{
	0:  "Céu limpo",
	1:  "Principalmente limpo",
	2:  "Parcialmente nublado",
	3:  "Nublado",
	45: "Nevoeiro",
	48: "Nevoeiro com geada",
	51: "Chuvisco leve",
	53: "Chuvisco moderado",
	55: "Chuvisco denso",
	61: "Chuva leve",
	63: "Chuva moderada",
	65: "Chuva forte",
	71: "Queda de neve leve",
	73: "Queda de neve moderada",
	75: "Queda de neve forte",
	77: "Grãos de neve",
	80: "Pancadas de chuva leves",
	81: "Pancadas de chuva moderadas",
	82: "Pancadas de chuva violentas",
	85: "Pancadas de neve leves",
	86: "Pancadas de neve fortes",
	95: "Tempestade",
	96: "Tempestade com granizo leve",
	99: "Tempestade com granizo forte",
}

var descriptionsEN = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

var icons = map[int]string{
	2:  "fas fa-cloud",
	3:  "fas fa-cloud",
	45: "fas fa-smog",
	48: "fas fa-smog",
	51: "fas fa-cloud-rain",
	53: "fas fa-cloud-rain",
	55: "fas fa-cloud-rain",
	61: "fas fa-cloud-showers-heavy",
	63: "fas fa-cloud-showers-heavy",
	65: "fas fa-cloud-showers-heavy",
	71: "fas fa-snowflake",
	73: "fas fa-snowflake",
	75: "fas fa-snowflake",
	77: "fas fa-snowflake",
	80: "fas fa-cloud-showers-heavy",
	81: "fas fa-cloud-showers-heavy",
	82: "fas fa-cloud-showers-heavy",
	85: "fas fa-snowflake",
	86: "fas fa-snowflake",
	95: "fas fa-bolt",
	96: "fas fa-bolt",
	99: "fas fa-bolt",
}

// Description maps a weather code to its human-readable description in the
// given language (pt or en; anything else falls back to pt). Unknown codes
// map to the UnknownCondition sentinel, never an error.
func Description(code int, lang string) string {
	table := descriptionsPT
	if lang == "en" {
		table = descriptionsEN
	}
	if d, ok := table[code]; ok {
		return d
	}
	return UnknownCondition
}

// Icon maps a weather code to a Font Awesome icon class. Codes 0 and 1 have
// day/night variants.
func Icon(code int, isDay bool) string {
	switch code {
	case 0:
		if isDay {
			return "fas fa-sun"
		}
		return "fas fa-moon"
	case 1:
		if isDay {
			return "fas fa-cloud-sun"
		}
		return "fas fa-cloud-moon"
	}
	if ic, ok := icons[code]; ok {
		return ic
	}
	return UnknownIcon
}
