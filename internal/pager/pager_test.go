// ABOUTME: Tests for the windowed pager
// ABOUTME: Covers paging, end detection, and reset

package pager

import (
	"fmt"
	"testing"

	"github.com/harper/ufo/internal/models"
	"github.com/harper/ufo/internal/store"
	"github.com/stretchr/testify/assert"
)

func numbered(n int) *store.Store {
	recs := make([]models.Sighting, n)
	for i := range recs {
		recs[i] = models.Sighting{City: fmt.Sprint(i)}
	}
	return store.FromSlice(recs)
}

func cityAt(t *testing.T, st *store.Store, h store.Handle) string {
	t.Helper()
	rec, err := st.Get(h)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	return rec.City
}

func TestPageForward(t *testing.T) {
	st := numbered(25)
	p := New(st, 10)

	assert.Len(t, p.Window(), 10)
	assert.False(t, p.AtEnd())

	assert.True(t, p.PageForward())
	assert.Equal(t, 10, p.Offset())
	assert.Equal(t, "10", cityAt(t, st, p.Cursor()))

	assert.True(t, p.PageForward())
	assert.Equal(t, 20, p.Offset())
	assert.True(t, p.AtEnd())
	assert.Len(t, p.Window(), 5)

	// Fewer than a window remain: the cursor lands on the last record.
	assert.False(t, p.PageForward())
	assert.Equal(t, 24, p.Offset())
	assert.Equal(t, "24", cityAt(t, st, p.Cursor()))
}

func TestReset(t *testing.T) {
	st := numbered(15)
	p := New(st, 10)
	p.PageForward()
	p.Reset()

	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, st.Head(), p.Cursor())
}

func TestEmptyStore(t *testing.T) {
	p := New(store.New(), 0)

	assert.Equal(t, DefaultWindow, p.WindowSize())
	assert.True(t, p.AtEnd())
	assert.Empty(t, p.Window())
	assert.False(t, p.PageForward())
}

func TestRemovedCursorResets(t *testing.T) {
	st := numbered(30)
	p := New(st, 10)
	p.PageForward()

	_, err := st.RemoveAt(p.Cursor(), 0)
	assert.NoError(t, err)

	assert.True(t, p.PageForward())
	assert.Equal(t, 10, p.Offset())
	assert.Equal(t, "11", cityAt(t, st, p.Cursor()), "record 10 was removed")
}
