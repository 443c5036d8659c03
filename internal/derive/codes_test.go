package derive

import "testing"

// TestDescription verifies the weather-code lookup in both languages and the
// unknown-code sentinel.
func TestDescription(t *testing.T) {
	tests := []struct {
		name string
		code int
		lang string
		want string
	}{
		{"clear sky pt", 0, "pt", "Céu limpo"},
		{"clear sky en", 0, "en", "Clear sky"},
		{"fog pt", 45, "pt", "Nevoeiro"},
		{"severe thunderstorm pt", 99, "pt", "Tempestade com granizo forte"},
		{"severe thunderstorm en", 99, "en", "Thunderstorm with heavy hail"},
		{"unknown code pt", 999, "pt", UnknownCondition},
		{"unknown code en", 999, "en", UnknownCondition},
		{"negative code", -1, "pt", UnknownCondition},
		{"unsupported lang falls back to pt", 0, "fr", "Céu limpo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Description(tt.code, tt.lang); got != tt.want {
				t.Errorf("Description(%d, %q) = %q, want %q", tt.code, tt.lang, got, tt.want)
			}
		})
	}
}

// TestDescription_AllKnownCodesCovered checks that every code in the pt table
// has an en counterpart and vice versa.
func TestDescription_AllKnownCodesCovered(t *testing.T) {
	for code := range descriptionsPT {
		if _, ok := descriptionsEN[code]; !ok {
			t.Errorf("code %d present in pt table but missing from en table", code)
		}
	}
	for code := range descriptionsEN {
		if _, ok := descriptionsPT[code]; !ok {
			t.Errorf("code %d present in en table but missing from pt table", code)
		}
	}
}

// TestIcon verifies day/night variants and the unknown-code fallback.
func TestIcon(t *testing.T) {
	tests := []struct {
		name  string
		code  int
		isDay bool
		want  string
	}{
		{"clear day", 0, true, "fas fa-sun"},
		{"clear night", 0, false, "fas fa-moon"},
		{"mainly clear day", 1, true, "fas fa-cloud-sun"},
		{"mainly clear night", 1, false, "fas fa-cloud-moon"},
		{"overcast", 3, true, "fas fa-cloud"},
		{"snow", 75, false, "fas fa-snowflake"},
		{"thunderstorm", 95, true, "fas fa-bolt"},
		{"unknown code", 999, true, UnknownIcon},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Icon(tt.code, tt.isDay); got != tt.want {
				t.Errorf("Icon(%d, %v) = %q, want %q", tt.code, tt.isDay, got, tt.want)
			}
		})
	}
}
