// ABOUTME: Tests for the predicate registry
// ABOUTME: Covers prefix and exact string matching and date matching

package match

import (
	"testing"

	"github.com/harper/ufo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCityIsCaseSensitivePrefix(t *testing.T) {
	pred := City.Bind("han")

	assert.True(t, pred(&models.Sighting{City: "hanover"}))
	assert.True(t, pred(&models.Sighting{City: "han"}))
	assert.False(t, pred(&models.Sighting{City: "Hanover"}), "case-sensitive")
	assert.False(t, pred(&models.Sighting{City: "shanghai"}), "prefix only, not substring")
	assert.False(t, pred(&models.Sighting{City: "ha"}))
}

func TestExactStringFields(t *testing.T) {
	s := &models.Sighting{State: "tx", Country: "us", Shape: "disk"}

	assert.True(t, State.Test(s, "tx"))
	assert.False(t, State.Test(s, "t"))
	assert.True(t, Country.Test(s, "us"))
	assert.False(t, Country.Test(s, "US"))
	assert.True(t, Shape.Test(s, "disk"))
	assert.False(t, Shape.Test(s, "dis"))
}

func TestEmptyFieldMatchesEmptyQuery(t *testing.T) {
	s := &models.Sighting{}
	assert.True(t, State.Test(s, ""))
	assert.True(t, City.Test(s, ""))
}

func TestDateFields(t *testing.T) {
	s := &models.Sighting{
		OccurredAt: models.DateTime{Date: models.Date{Year: 1995, Month: 3, Day: 2}, Hour: 23, Minute: 59},
		ReportedAt: models.Date{Year: 1995, Month: 4, Day: 1},
	}

	assert.True(t, Occurred.Test(s, models.Date{Year: 1995, Month: 3, Day: 2}), "time of day is ignored")
	assert.False(t, Occurred.Test(s, models.Date{Year: 1995, Month: 4, Day: 1}))
	assert.True(t, Reported.Bind(models.Date{Year: 1995, Month: 4, Day: 1})(s))
	assert.False(t, Reported.Test(s, models.Date{Year: 1995, Month: 3, Day: 2}))
}

func TestLookups(t *testing.T) {
	f, err := LookupString("Shape")
	require.NoError(t, err)
	assert.Equal(t, Shape, f)

	_, err = LookupString("occurred")
	assert.ErrorIs(t, err, ErrUnknownField)

	d, err := LookupDate("reported")
	require.NoError(t, err)
	assert.Equal(t, Reported, d)

	assert.True(t, IsDateField("occurred"))
	assert.False(t, IsDateField("city"))
}
