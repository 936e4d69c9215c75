// ABOUTME: Browsing session over a sighting store
// ABOUTME: Owns the pager, active filter, and the normal/filtered view mode

package session

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harper/ufo/internal/compare"
	"github.com/harper/ufo/internal/logging"
	"github.com/harper/ufo/internal/match"
	"github.com/harper/ufo/internal/models"
	"github.com/harper/ufo/internal/pager"
	"github.com/harper/ufo/internal/query"
	"github.com/harper/ufo/internal/store"
)

// Mode is the viewing mode of a session.
type Mode int

const (
	// Normal pages through the whole store.
	Normal Mode = iota
	// Filtered pages through search results.
	Filtered
)

func (m Mode) String() string {
	if m == Filtered {
		return "filtered"
	}
	return "normal"
}

// Entry is one displayed record with its position in the view.
type Entry struct {
	Index    int
	Handle   store.Handle
	Sighting *models.Sighting
}

type filter struct {
	desc string
	pred match.Predicate
}

// Session is the single-user state threaded through every browsing operation.
// It is not safe for concurrent use.
type Session struct {
	st      *store.Store
	pg      *pager.Pager
	mode    Mode
	filter  *filter
	results query.ResultSet
	page    int
	logger  *log.Logger

	// exhausted is set once a filtered re-run finds nothing further.
	exhausted bool
}

// New creates a session over st in Normal mode.
func New(st *store.Store, logger *log.Logger) *Session {
	if st == nil {
		st = store.New()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Session{
		st:     st,
		pg:     pager.New(st, pager.DefaultWindow),
		logger: logger,
	}
}

// Store returns the underlying store.
func (s *Session) Store() *store.Store {
	return s.st
}

// Len returns the number of records in the store.
func (s *Session) Len() int {
	return s.st.Len()
}

// Mode returns the current viewing mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// FilterDescription describes the active filter, or "" in Normal mode.
func (s *Session) FilterDescription() string {
	if s.mode != Filtered {
		return ""
	}
	return s.filter.desc
}

// Offset returns the position of the first displayed record. In Filtered mode
// it counts matches already paged past.
func (s *Session) Offset() int {
	if s.mode == Filtered {
		return s.page * query.Capacity
	}
	return s.pg.Offset()
}

// Replace swaps in a freshly loaded store and returns to Normal mode.
func (s *Session) Replace(st *store.Store) {
	s.st = st
	s.pg = pager.New(st, pager.DefaultWindow)
	s.toNormal()
	s.logger.Debug("store replaced", "records", st.Len())
}

// View returns the records in the current window.
func (s *Session) View() []Entry {
	var handles []store.Handle
	if s.mode == Filtered {
		handles = s.results.Handles()
	} else {
		handles = s.pg.Window()
	}

	out := make([]Entry, 0, len(handles))
	for _, h := range handles {
		rec, err := s.st.Get(h)
		if err != nil {
			continue
		}
		out = append(out, Entry{Index: len(out), Handle: h, Sighting: rec})
	}
	return out
}

// SortBy sorts the store by the named comparator. An active filter is re-run
// from the head so the filtered view follows the new order.
func (s *Session) SortBy(name string, dir compare.Direction) (int, error) {
	field, err := compare.Lookup(name)
	if err != nil {
		return 0, err
	}
	swaps := query.Sort(s.st, field, dir)
	s.logger.Debug("sorted", "field", field, "dir", dir, "swaps", swaps)

	s.pg.Reset()
	if s.mode == Filtered {
		s.search(s.filter)
	}
	return swaps, nil
}

// SearchByString filters with a named string predicate. It returns the number
// of matches in the first window; zero leaves the session in Normal mode.
func (s *Session) SearchByString(name, q string) (int, error) {
	field, err := match.LookupString(name)
	if err != nil {
		return 0, err
	}
	return s.search(&filter{
		desc: fmt.Sprintf("%s = %q", field, q),
		pred: field.Bind(q),
	}), nil
}

// SearchByDate filters with a named date predicate.
func (s *Session) SearchByDate(name string, d models.Date) (int, error) {
	field, err := match.LookupDate(name)
	if err != nil {
		return 0, err
	}
	return s.search(&filter{
		desc: fmt.Sprintf("%s on %s", field, d),
		pred: field.Bind(d),
	}), nil
}

func (s *Session) search(f *filter) int {
	s.page = 0
	n := s.runFilter(f, s.st.Head())
	s.logger.Debug("filtered", "filter", f.desc, "matches", n)
	return n
}

// runFilter searches from start and switches mode by whether anything matched.
func (s *Session) runFilter(f *filter, start store.Handle) int {
	rs := query.Search(s.st, start, f.pred, query.Capacity)
	if rs.Empty() {
		s.toNormal()
		return 0
	}
	s.filter = f
	s.results = rs
	s.exhausted = false
	s.mode = Filtered
	return rs.Len()
}

// PageForward shows the next window. In Filtered mode the search is re-run
// from where the previous window stopped. It returns false at end of data,
// leaving the current window in place.
func (s *Session) PageForward() bool {
	if s.mode == Normal {
		if s.pg.AtEnd() {
			return false
		}
		return s.pg.PageForward()
	}

	if s.exhausted {
		return false
	}
	resume := s.results.Resume()
	if resume.IsNil() {
		s.exhausted = true
		return false
	}
	rs := query.Search(s.st, resume, s.filter.pred, query.Capacity)
	if rs.Empty() {
		s.exhausted = true
		return false
	}
	s.results = rs
	s.page++
	return true
}

// PageReset returns to the head of the unfiltered store.
func (s *Session) PageReset() {
	s.toNormal()
}

// Add prepends rec and returns to the unfiltered view at the head.
func (s *Session) Add(rec models.Sighting) store.Handle {
	h := s.st.InsertFront(rec)
	s.toNormal()
	s.logger.Debug("added sighting", "city", rec.City, "records", s.st.Len())
	return h
}

// RemoveAt removes the record shown at index in the current window. It
// returns false when nothing was removed, and store.ErrIndexOutOfRange when
// index is past the window.
func (s *Session) RemoveAt(index int) (bool, error) {
	var ok bool
	var err error
	if s.mode == Filtered {
		h := s.results.At(index)
		if h.IsNil() {
			return false, store.ErrIndexOutOfRange
		}
		ok, err = s.st.RemoveAt(h, 0)
	} else {
		if index >= s.pg.WindowSize() {
			return false, store.ErrIndexOutOfRange
		}
		ok, err = s.st.RemoveAt(s.pg.Cursor(), index)
	}
	if err != nil {
		return false, err
	}
	if ok {
		s.logger.Debug("removed sighting", "index", index, "records", s.st.Len())
	}
	s.toNormal()
	return ok, nil
}

func (s *Session) toNormal() {
	s.mode = Normal
	s.filter = nil
	s.results = query.ResultSet{}
	s.page = 0
	s.exhausted = false
	s.pg.Reset()
}
