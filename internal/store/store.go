// ABOUTME: Ordered in-memory collection of sightings
// ABOUTME: Linked list over an arena addressed by generational handles

package store

import (
	"iter"

	"github.com/harper/ufo/internal/models"
)

// Handle addresses a record in a Store. The zero Handle is the nil handle.
// A handle to a removed record is stale and is rejected by every accessor.
type Handle struct {
	slot uint32
	gen  uint32
}

// Nil is the handle that refers to no record.
var Nil Handle

// IsNil reports whether h refers to no record.
func (h Handle) IsNil() bool {
	return h.gen == 0
}

type node struct {
	rec  models.Sighting
	next Handle
	gen  uint32
	live bool
}

// Store is an ordered sequence of sightings. The zero value is an empty store.
// It is not safe for concurrent use.
type Store struct {
	nodes []node
	free  []uint32
	head  Handle
	n     int
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// FromSlice builds a store holding recs in slice order.
func FromSlice(recs []models.Sighting) *Store {
	s := New()
	for i := len(recs) - 1; i >= 0; i-- {
		s.InsertFront(recs[i])
	}
	return s
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	return s.n
}

// LenFrom counts the records from h to the tail, inclusive. Stale or nil handles count 0.
func (s *Store) LenFrom(h Handle) int {
	n := 0
	for cur := h; s.Valid(cur); cur = s.nodes[cur.slot].next {
		n++
	}
	return n
}

// Head returns the first record's handle, or Nil when the store is empty.
func (s *Store) Head() Handle {
	return s.head
}

// Valid reports whether h refers to a record currently in the store.
func (s *Store) Valid(h Handle) bool {
	if h.IsNil() || int(h.slot) >= len(s.nodes) {
		return false
	}
	nd := &s.nodes[h.slot]
	return nd.live && nd.gen == h.gen
}

// Get returns the record addressed by h.
func (s *Store) Get(h Handle) (*models.Sighting, error) {
	if !s.Valid(h) {
		return nil, ErrStaleHandle
	}
	return &s.nodes[h.slot].rec, nil
}

// Next returns the successor of h, or Nil at the tail or for an invalid handle.
func (s *Store) Next(h Handle) Handle {
	if !s.Valid(h) {
		return Nil
	}
	return s.nodes[h.slot].next
}

// InsertFront prepends rec and returns its handle.
func (s *Store) InsertFront(rec models.Sighting) Handle {
	var slot uint32
	if k := len(s.free); k > 0 {
		slot = s.free[k-1]
		s.free = s.free[:k-1]
	} else {
		slot = uint32(len(s.nodes)) //nolint:gosec // store sizes stay far below 2^32
		s.nodes = append(s.nodes, node{})
	}

	nd := &s.nodes[slot]
	nd.gen++
	nd.live = true
	nd.rec = rec
	nd.next = s.head

	h := Handle{slot: slot, gen: nd.gen}
	s.head = h
	s.n++
	return h
}

// Advance follows up to steps successor links from h. It returns the furthest
// record reached and how many links were followed; it never runs past the tail.
func (s *Store) Advance(h Handle, steps int) (Handle, int, error) {
	if !s.Valid(h) {
		return Nil, 0, ErrStaleHandle
	}
	taken := 0
	for taken < steps {
		next := s.nodes[h.slot].next
		if next.IsNil() {
			break
		}
		h = next
		taken++
	}
	return h, taken, nil
}

// RemoveAt removes the record pos links after start. It returns false without
// error when start is Nil, ErrStaleHandle when start was removed, and
// ErrIndexOutOfRange when fewer than pos records follow start.
func (s *Store) RemoveAt(start Handle, pos int) (bool, error) {
	if start.IsNil() {
		return false, nil
	}
	if !s.Valid(start) {
		return false, ErrStaleHandle
	}
	if pos < 0 {
		return false, ErrIndexOutOfRange
	}

	target, taken, _ := s.Advance(start, pos)
	if taken != pos {
		return false, ErrIndexOutOfRange
	}

	next := s.nodes[target.slot].next
	if target == s.head {
		s.head = next
	} else {
		prev := s.prevOf(target)
		s.nodes[prev.slot].next = next
	}
	s.release(target)
	return true, nil
}

// SwapNext exchanges h with its successor by relinking. prev must be h's
// predecessor, or Nil when h is the head; any other prev is rejected with
// ErrIndexOutOfRange and the list is left unchanged. Field contents never move, so
// handles held elsewhere keep addressing the same records.
func (s *Store) SwapNext(prev, h Handle) error {
	if !s.Valid(h) || (!prev.IsNil() && !s.Valid(prev)) {
		return ErrStaleHandle
	}
	if (prev.IsNil() && s.head != h) || (!prev.IsNil() && s.nodes[prev.slot].next != h) {
		return ErrIndexOutOfRange
	}
	b := s.nodes[h.slot].next
	if b.IsNil() {
		return ErrIndexOutOfRange
	}

	s.nodes[h.slot].next = s.nodes[b.slot].next
	s.nodes[b.slot].next = h
	if prev.IsNil() {
		s.head = b
	} else {
		s.nodes[prev.slot].next = b
	}
	return nil
}

// All iterates the store from the head in current order.
func (s *Store) All() iter.Seq2[Handle, *models.Sighting] {
	return s.From(s.head)
}

// From iterates from h to the tail. Iteration over an invalid handle yields nothing.
func (s *Store) From(h Handle) iter.Seq2[Handle, *models.Sighting] {
	return func(yield func(Handle, *models.Sighting) bool) {
		for cur := h; s.Valid(cur); cur = s.nodes[cur.slot].next {
			if !yield(cur, &s.nodes[cur.slot].rec) {
				return
			}
		}
	}
}

// Records returns copies of every record in store order.
func (s *Store) Records() []models.Sighting {
	out := make([]models.Sighting, 0, s.n)
	for _, rec := range s.All() {
		out = append(out, *rec)
	}
	return out
}

// Clear removes every record. Outstanding handles become stale.
func (s *Store) Clear() {
	for cur := s.head; !cur.IsNil(); {
		next := s.nodes[cur.slot].next
		s.release(cur)
		cur = next
	}
	s.head = Nil
}

func (s *Store) prevOf(h Handle) Handle {
	for cur := s.head; !cur.IsNil(); cur = s.nodes[cur.slot].next {
		if s.nodes[cur.slot].next == h {
			return cur
		}
	}
	return Nil
}

func (s *Store) release(h Handle) {
	nd := &s.nodes[h.slot]
	nd.live = false
	nd.rec = models.Sighting{}
	nd.next = Nil
	s.free = append(s.free, h.slot)
	s.n--
}
