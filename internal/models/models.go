// ABOUTME: Core data models for sighting records
// ABOUTME: Provides dates, date-times, the Sighting record, and field caps

package models

import (
	"cmp"
	"fmt"
	"math"
)

// Advisory field caps in characters. The parser and formatter truncate to these; the core never enforces them.
const (
	MaxCity    = 69
	MaxShape   = 9
	MaxComment = 235
	CodeLen    = 2
)

// Date is a calendar date stored as opaque integers. No calendar validation is performed.
type Date struct {
	Year  int `json:"year" yaml:"year"`
	Month int `json:"month" yaml:"month"`
	Day   int `json:"day" yaml:"day"`
}

// Compare orders dates by year, then month, then day.
func (d Date) Compare(o Date) int {
	if c := cmp.Compare(d.Year, o.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(d.Month, o.Month); c != 0 {
		return c
	}
	return cmp.Compare(d.Day, o.Day)
}

// String renders the date as M/D/YYYY.
func (d Date) String() string {
	return fmt.Sprintf("%d/%d/%d", d.Month, d.Day, d.Year)
}

// DateTime is a Date with an hour and minute.
type DateTime struct {
	Date   `yaml:",inline"`
	Hour   int `json:"hour" yaml:"hour"`
	Minute int `json:"minute" yaml:"minute"`
}

// Compare orders date-times by date, then hour, then minute.
func (t DateTime) Compare(o DateTime) int {
	if c := t.Date.Compare(o.Date); c != 0 {
		return c
	}
	if c := cmp.Compare(t.Hour, o.Hour); c != 0 {
		return c
	}
	return cmp.Compare(t.Minute, o.Minute)
}

// String renders the date-time as M/D/YYYY H:MM.
func (t DateTime) String() string {
	return fmt.Sprintf("%s %d:%02d", t.Date.String(), t.Hour, t.Minute)
}

// Sighting is a single reported UFO sighting.
type Sighting struct {
	OccurredAt      DateTime `json:"occurred_at"`
	City            string   `json:"city"`
	State           string   `json:"state,omitempty"`
	Country         string   `json:"country,omitempty"`
	Shape           string   `json:"shape"`
	DurationSeconds int      `json:"duration_seconds"`
	Comment         string   `json:"comment"`
	ReportedAt      Date     `json:"reported_at"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
}

// Truncate clips the string fields to their advisory caps, returning a copy.
func (s Sighting) Truncate() Sighting {
	s.City = clip(s.City, MaxCity)
	s.State = clip(s.State, CodeLen)
	s.Country = clip(s.Country, CodeLen)
	s.Shape = clip(s.Shape, MaxShape)
	s.Comment = clip(s.Comment, MaxComment)
	return s
}

// clip keeps the first n characters of s. Caps count characters, not bytes,
// so decoded single-byte text keeps its on-disk width.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// ValidateCoordinates checks if latitude and longitude are within valid ranges.
func ValidateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return fmt.Errorf("coordinates cannot be NaN")
	}
	if math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return fmt.Errorf("coordinates cannot be infinite")
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateCode checks a state or country code: empty, or exactly two characters.
func ValidateCode(code string) error {
	if code != "" && len(code) != CodeLen {
		return fmt.Errorf("code %q must be exactly %d characters", code, CodeLen)
	}
	return nil
}
