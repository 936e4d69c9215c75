// ABOUTME: Unit tests for data models
// ABOUTME: Tests date ordering, formatting, truncation, and validators

package models

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDateCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Date
		want int
	}{
		{"equal", Date{2004, 12, 18}, Date{2004, 12, 18}, 0},
		{"year wins", Date{2003, 12, 31}, Date{2004, 1, 1}, -1},
		{"month", Date{2004, 6, 1}, Date{2004, 5, 30}, 1},
		{"day", Date{2004, 6, 1}, Date{2004, 6, 2}, -1},
		{"invalid dates compare as integers", Date{2004, 13, 40}, Date{2004, 12, 31}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDateTimeCompare(t *testing.T) {
	base := DateTime{Date: Date{1999, 7, 4}, Hour: 21, Minute: 30}

	later := base
	later.Minute = 31
	if base.Compare(later) != -1 {
		t.Error("expected earlier minute to sort first")
	}

	nextDay := DateTime{Date: Date{1999, 7, 5}}
	if nextDay.Compare(base) != 1 {
		t.Error("expected date to dominate hour and minute")
	}

	if base.Compare(base) != 0 {
		t.Error("expected equal date-times to compare 0")
	}
}

func TestDateTimeString(t *testing.T) {
	dt := DateTime{Date: Date{1949, 10, 10}, Hour: 20, Minute: 5}
	if got := dt.String(); got != "10/10/1949 20:05" {
		t.Errorf("got %q", got)
	}
	if got := dt.Date.String(); got != "10/10/1949" {
		t.Errorf("got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	s := Sighting{
		City:    strings.Repeat("c", 100),
		State:   "tex",
		Country: "us",
		Shape:   "rectangular",
		Comment: strings.Repeat("x", 300),
	}
	got := s.Truncate()

	if len(got.City) != MaxCity {
		t.Errorf("city len %d, want %d", len(got.City), MaxCity)
	}
	if got.State != "te" {
		t.Errorf("state %q", got.State)
	}
	if got.Country != "us" {
		t.Errorf("country %q", got.Country)
	}
	if got.Shape != "rectangul" {
		t.Errorf("shape %q", got.Shape)
	}
	if len(got.Comment) != MaxComment {
		t.Errorf("comment len %d", len(got.Comment))
	}
	if len(s.City) != 100 {
		t.Error("Truncate must not modify the receiver")
	}
}

func TestTruncateCountsCharacters(t *testing.T) {
	full := strings.Repeat("a", MaxCity-1) + "é"
	got := Sighting{City: full}.Truncate()
	if got.City != full {
		t.Errorf("city at cap was clipped: %q", got.City)
	}

	over := Sighting{City: strings.Repeat("a", MaxCity) + "é", Shape: "ovalé-ovalé"}.Truncate()
	if over.City != strings.Repeat("a", MaxCity) {
		t.Errorf("city over cap %q", over.City)
	}
	if over.Shape != "ovalé-ova" {
		t.Errorf("shape %q", over.Shape)
	}
	if !utf8.ValidString(over.City) || !utf8.ValidString(over.Shape) {
		t.Error("truncation split a character")
	}
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr bool
	}{
		{"valid", 29.8830556, -97.9411111, false},
		{"bounds", 90, -180, false},
		{"lat too high", 90.1, 0, true},
		{"lng too low", 0, -180.1, true},
		{"nan", math.NaN(), 0, true},
		{"inf", 0, math.Inf(1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinates(tt.lat, tt.lng)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoordinates() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCode(t *testing.T) {
	if err := ValidateCode(""); err != nil {
		t.Errorf("empty code should be allowed: %v", err)
	}
	if err := ValidateCode("tx"); err != nil {
		t.Errorf("two letter code should be allowed: %v", err)
	}
	if err := ValidateCode("usa"); err == nil {
		t.Error("expected error for three letter code")
	}
}
