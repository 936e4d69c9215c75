// ABOUTME: Bounded linear search over the record store
// ABOUTME: Collects up to one window of matching handles in store order

package query

import (
	"github.com/harper/ufo/internal/match"
	"github.com/harper/ufo/internal/store"
)

// Capacity is the fixed number of slots in a ResultSet.
const Capacity = 10

// ResultSet is a snapshot of up to Capacity matching handles. Slots past Len
// are Nil. Handles are not updated when the store changes afterwards.
type ResultSet struct {
	slots  [Capacity]store.Handle
	n      int
	resume store.Handle
}

// Len returns the number of matches.
func (r *ResultSet) Len() int {
	return r.n
}

// Empty reports whether the search found nothing.
func (r *ResultSet) Empty() bool {
	return r.n == 0
}

// At returns the i-th match, or Nil when i is not a filled slot.
func (r *ResultSet) At(i int) store.Handle {
	if i < 0 || i >= r.n {
		return store.Nil
	}
	return r.slots[i]
}

// Handles returns the filled slots in match order.
func (r *ResultSet) Handles() []store.Handle {
	out := make([]store.Handle, r.n)
	copy(out, r.slots[:r.n])
	return out
}

// Resume is the handle a follow-up search should start from, or Nil when the
// scan reached the end of the store.
func (r *ResultSet) Resume() store.Handle {
	return r.resume
}

// Search walks st from start testing pred, stopping after capacity matches or
// at the tail. capacity is clamped to [0, Capacity]. The store is not modified.
func Search(st *store.Store, start store.Handle, pred match.Predicate, capacity int) ResultSet {
	capacity = max(0, min(capacity, Capacity))

	var rs ResultSet
	if capacity == 0 {
		rs.resume = start
		if !st.Valid(start) {
			rs.resume = store.Nil
		}
		return rs
	}

	for h, rec := range st.From(start) {
		if !pred(rec) {
			continue
		}
		rs.slots[rs.n] = h
		rs.n++
		if rs.n == capacity {
			rs.resume = st.Next(h)
			break
		}
	}
	return rs
}
