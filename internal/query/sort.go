// ABOUTME: In-place bubble sort over the record store
// ABOUTME: Reorders by relinking neighbours so record handles stay valid

package query

import (
	"github.com/harper/ufo/internal/compare"
	"github.com/harper/ufo/internal/store"
)

// Sort orders st by field and dir, swapping a neighbour pair only when it
// compares strictly greater. Passes repeat until one makes no swaps. The
// total number of swaps is returned.
func Sort(st *store.Store, field compare.Field, dir compare.Direction) int {
	total := 0
	for {
		swaps := sortPass(st, field, dir)
		total += swaps
		if swaps == 0 {
			return total
		}
	}
}

func sortPass(st *store.Store, field compare.Field, dir compare.Direction) int {
	swaps := 0
	prev := store.Nil
	cur := st.Head()
	for {
		next := st.Next(cur)
		if next.IsNil() {
			return swaps
		}
		a, _ := st.Get(cur)
		b, _ := st.Get(next)
		if field.Compare(a, b, dir) > 0 {
			// cur moves one place toward the tail and is compared again.
			_ = st.SwapNext(prev, cur)
			prev = next
			swaps++
			continue
		}
		prev = cur
		cur = next
	}
}

// IsSorted reports whether every adjacent pair in st compares <= 0.
func IsSorted(st *store.Store, field compare.Field, dir compare.Direction) bool {
	var prev store.Handle
	for h, rec := range st.All() {
		if !prev.IsNil() {
			a, _ := st.Get(prev)
			if field.Compare(a, rec, dir) > 0 {
				return false
			}
		}
		prev = h
	}
	return true
}
