// ABOUTME: Tests for the comparator registry
// ABOUTME: Verifies lookups, directions, and per-field ordering

package compare

import (
	"testing"

	"github.com/harper/ufo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for _, f := range Fields() {
		got, err := Lookup(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	got, err := Lookup("  CITY ")
	require.NoError(t, err)
	assert.Equal(t, City, got)

	_, err = Lookup("color")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("desc")
	require.NoError(t, err)
	assert.Equal(t, Descending, d)

	d, err = ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, Ascending, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

func TestCompareFields(t *testing.T) {
	a := &models.Sighting{
		OccurredAt:      models.DateTime{Date: models.Date{Year: 2001, Month: 1, Day: 1}, Hour: 10},
		ReportedAt:      models.Date{Year: 2001, Month: 2, Day: 1},
		City:            "austin",
		State:           "tx",
		Country:         "us",
		Shape:           "disk",
		DurationSeconds: 30,
	}
	b := &models.Sighting{
		OccurredAt:      models.DateTime{Date: models.Date{Year: 2001, Month: 1, Day: 1}, Hour: 11},
		ReportedAt:      models.Date{Year: 2000, Month: 12, Day: 31},
		City:            "boston",
		State:           "ma",
		Country:         "us",
		Shape:           "cigar",
		DurationSeconds: 600,
	}

	tests := []struct {
		field Field
		want  int
	}{
		{OccurredAt, -1},
		{ReportedAt, 1},
		{City, -1},
		{State, 1},
		{Country, 0},
		{Shape, 1},
		{Duration, -1},
	}
	for _, tt := range tests {
		t.Run(tt.field.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.field.Compare(a, b, Ascending))
			assert.Equal(t, -tt.want, tt.field.Compare(a, b, Descending))
		})
	}
}

func TestCompareEqualDurationsIsZero(t *testing.T) {
	a := &models.Sighting{DurationSeconds: 120}
	b := &models.Sighting{DurationSeconds: 120}
	assert.Equal(t, 0, Duration.Compare(a, b, Ascending))
	assert.Equal(t, 0, Duration.Compare(a, b, Descending))
}

func TestCompareIsByteWise(t *testing.T) {
	a := &models.Sighting{City: "Zurich"}
	b := &models.Sighting{City: "amsterdam"}
	assert.Equal(t, -1, City.Compare(a, b, Ascending), "uppercase sorts before lowercase")
}
