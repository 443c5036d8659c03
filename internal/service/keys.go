package service

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

// Coordinates are formatted to a fixed 4 decimal places before entering a
// cache key, so 23.5 and 23.50 cannot fragment into distinct keys.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// weatherKeyPrefix is the stale-fallback namespace for a coordinate pair. The
// full key appends an options digest; FindNewestByPrefix matches on this part.
func weatherKeyPrefix(lat, lon float64) string {
	return "weather_" + formatCoord(lat) + "_" + formatCoord(lon) + "_"
}

func airQualityKey(lat, lon float64) string {
	return "airquality_" + formatCoord(lat) + "_" + formatCoord(lon)
}

func geocodeKey(query string, limit int, lang string) string {
	sum := sha256.Sum256([]byte(query))
	return "geocode_" + hex.EncodeToString(sum[:])[:16] + "_" + strconv.Itoa(limit) + "_" + lang
}

// optionsDigest hashes the merged option set in sorted-key order, so
// identical options always produce the same digest regardless of caller map
// iteration order.
func optionsDigest(opts map[string]string) string {
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(opts[k])
		b.WriteByte('&')
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])[:16]
}
