package derive

import "math"

// FeelsLike computes the perceived temperature. Wind chill applies below 10°C
// with wind above 5 km/h; the heat index applies above 27°C with humidity
// above 40%. The branches are disjoint by construction; otherwise the input
// temperature is returned unchanged. Result is rounded to one decimal place.
func FeelsLike(temp, windSpeed, humidity float64) float64 {
	feels := temp

	if temp < 10 && windSpeed > 5 {
		w := math.Pow(windSpeed, 0.16)
		feels = 13.12 + 0.6215*temp - 11.37*w + 0.3965*temp*w
	}

	if temp > 27 && humidity > 40 {
		feels = -42.379 + 2.04901523*temp + 10.14333127*humidity -
			0.22475541*temp*humidity
	}

	return round1(feels)
}

// WindDirection converts degrees to an 8-point compass label using the
// Portuguese cardinal points (L for east, O for west).
func WindDirection(degrees float64) string {
	directions := []string{"N", "NE", "L", "SE", "S", "SO", "O", "NO"}
	idx := int(math.Round(math.Mod(math.Mod(degrees, 360)+360, 360)/45)) % 8
	return directions[idx]
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
