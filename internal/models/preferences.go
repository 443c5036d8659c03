package models

// Unit systems and languages accepted from callers.
const (
	UnitsMetric   = "metric"
	UnitsImperial = "imperial"

	LangPortuguese = "pt"
	LangEnglish    = "en"
)

// UserPreferences carries per-request display settings. The proxy is a pure
// function of its explicit inputs; there is no ambient session state.
type UserPreferences struct {
	Units    string
	Language string
}

// DefaultPreferences matches the original product defaults.
func DefaultPreferences() UserPreferences {
	return UserPreferences{Units: UnitsMetric, Language: LangPortuguese}
}

// Normalized returns a copy with unknown values replaced by defaults.
func (p UserPreferences) Normalized() UserPreferences {
	out := p
	if out.Units != UnitsImperial {
		out.Units = UnitsMetric
	}
	switch out.Language {
	case LangPortuguese, LangEnglish, "es", "fr", "de":
	default:
		out.Language = LangPortuguese
	}
	return out
}
