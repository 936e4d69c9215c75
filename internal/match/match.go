// ABOUTME: Named match predicates for filtering sightings
// ABOUTME: String fields match by prefix or exactly; date fields match exact days

package match

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harper/ufo/internal/models"
)

// ErrUnknownField is returned when a predicate name is not registered.
var ErrUnknownField = errors.New("unknown filter field")

// Predicate reports whether a sighting satisfies a bound query.
type Predicate func(*models.Sighting) bool

// StringField names a string-valued filter.
type StringField int

const (
	City StringField = iota
	State
	Country
	Shape
	numStringFields
)

type stringEntry struct {
	name  string
	get   func(*models.Sighting) string
	match func(field, query string) bool
}

func equal(field, query string) bool { return field == query }

var stringRegistry = [numStringFields]stringEntry{
	City:    {"city", func(s *models.Sighting) string { return s.City }, strings.HasPrefix},
	State:   {"state", func(s *models.Sighting) string { return s.State }, equal},
	Country: {"country", func(s *models.Sighting) string { return s.Country }, equal},
	Shape:   {"shape", func(s *models.Sighting) string { return s.Shape }, equal},
}

// LookupString resolves a string predicate by name.
func LookupString(name string) (StringField, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, e := range stringRegistry {
		if e.name == name {
			return StringField(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

func (f StringField) String() string {
	if f < 0 || f >= numStringFields {
		return fmt.Sprintf("StringField(%d)", int(f))
	}
	return stringRegistry[f].name
}

// Test applies the field's match rule directly. City is a case-sensitive
// byte-wise prefix match; the others are exact.
func (f StringField) Test(s *models.Sighting, query string) bool {
	e := stringRegistry[f]
	return e.match(e.get(s), query)
}

// Bind returns a predicate matching query against f.
func (f StringField) Bind(query string) Predicate {
	return func(s *models.Sighting) bool { return f.Test(s, query) }
}

// DateField names a date-valued filter.
type DateField int

const (
	Occurred DateField = iota
	Reported
	numDateFields
)

var dateNames = [numDateFields]string{
	Occurred: "occurred",
	Reported: "reported",
}

// LookupDate resolves a date predicate by name.
func LookupDate(name string) (DateField, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range dateNames {
		if n == name {
			return DateField(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

func (f DateField) String() string {
	if f < 0 || f >= numDateFields {
		return fmt.Sprintf("DateField(%d)", int(f))
	}
	return dateNames[f]
}

// Test reports whether the field's year, month, and day equal query.
func (f DateField) Test(s *models.Sighting, query models.Date) bool {
	if f == Occurred {
		return s.OccurredAt.Date == query
	}
	return s.ReportedAt == query
}

// Bind returns a predicate matching query against f.
func (f DateField) Bind(query models.Date) Predicate {
	return func(s *models.Sighting) bool { return f.Test(s, query) }
}

// IsDateField reports whether name refers to a date predicate.
func IsDateField(name string) bool {
	_, err := LookupDate(name)
	return err == nil
}
