package models

import "testing"

// TestNormalized verifies unknown units and languages fall back to defaults.
func TestNormalized(t *testing.T) {
	tests := []struct {
		name string
		in   UserPreferences
		want UserPreferences
	}{
		{"empty", UserPreferences{}, UserPreferences{Units: UnitsMetric, Language: LangPortuguese}},
		{"metric pt kept", UserPreferences{Units: UnitsMetric, Language: LangPortuguese}, UserPreferences{Units: UnitsMetric, Language: LangPortuguese}},
		{"imperial en kept", UserPreferences{Units: UnitsImperial, Language: LangEnglish}, UserPreferences{Units: UnitsImperial, Language: LangEnglish}},
		{"unknown units", UserPreferences{Units: "kelvin", Language: LangEnglish}, UserPreferences{Units: UnitsMetric, Language: LangEnglish}},
		{"unknown language", UserPreferences{Units: UnitsImperial, Language: "jp"}, UserPreferences{Units: UnitsImperial, Language: LangPortuguese}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalized(); got != tt.want {
				t.Errorf("Normalized() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestFailure verifies the failure envelope shape.
func TestFailure(t *testing.T) {
	res := Failure(KindInvalidInput, "invalid coordinates")
	if res.Success {
		t.Error("Failure() Success = true")
	}
	if res.Error != "invalid coordinates" {
		t.Errorf("Failure() Error = %q", res.Error)
	}
	if res.Kind != KindInvalidInput {
		t.Errorf("Failure() Kind = %v", res.Kind)
	}
	if res.Data != nil {
		t.Error("Failure() Data should be empty")
	}
}
