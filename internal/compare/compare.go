// ABOUTME: Named field comparators for ordering sightings
// ABOUTME: Each comparator is a total order flipped by a sort direction

package compare

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"github.com/harper/ufo/internal/models"
)

// ErrUnknownField is returned when a comparator name is not registered.
var ErrUnknownField = errors.New("unknown sort field")

// Direction flips the natural ordering of a comparator.
type Direction int

const (
	Ascending  Direction = 1
	Descending Direction = -1
)

// ParseDirection accepts "asc"/"ascending" and "desc"/"descending".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending", "a", "+":
		return Ascending, nil
	case "desc", "descending", "d", "-":
		return Descending, nil
	}
	return 0, fmt.Errorf("invalid direction %q (use asc or desc)", s)
}

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Field names a sortable sighting field.
type Field int

const (
	OccurredAt Field = iota
	ReportedAt
	City
	State
	Country
	Shape
	Duration
	numFields
)

type entry struct {
	name string
	cmp  func(a, b *models.Sighting) int
}

var registry = [numFields]entry{
	OccurredAt: {"occurred", func(a, b *models.Sighting) int { return a.OccurredAt.Compare(b.OccurredAt) }},
	ReportedAt: {"reported", func(a, b *models.Sighting) int { return a.ReportedAt.Compare(b.ReportedAt) }},
	City:       {"city", func(a, b *models.Sighting) int { return strings.Compare(a.City, b.City) }},
	State:      {"state", func(a, b *models.Sighting) int { return strings.Compare(a.State, b.State) }},
	Country:    {"country", func(a, b *models.Sighting) int { return strings.Compare(a.Country, b.Country) }},
	Shape:      {"shape", func(a, b *models.Sighting) int { return strings.Compare(a.Shape, b.Shape) }},
	Duration:   {"duration", func(a, b *models.Sighting) int { return cmp.Compare(a.DurationSeconds, b.DurationSeconds) }},
}

// Fields returns every registered field in menu order.
func Fields() []Field {
	out := make([]Field, numFields)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// Lookup resolves a comparator by name, e.g. "city" or "reported".
func Lookup(name string) (Field, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, e := range registry {
		if e.name == name {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

func (f Field) String() string {
	if f < 0 || f >= numFields {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return registry[f].name
}

// Compare returns -1, 0, or +1 ordering a before b under dir.
// Equal durations compare 0, so runs of ties never swap.
func (f Field) Compare(a, b *models.Sighting, dir Direction) int {
	c := registry[f].cmp(a, b)
	switch {
	case c < 0:
		c = -1
	case c > 0:
		c = 1
	}
	return c * int(dir)
}
