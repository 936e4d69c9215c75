// ABOUTME: Windowed cursor over the record store
// ABOUTME: Pages forward in fixed-size windows and resets to the head

package pager

import (
	"github.com/harper/ufo/internal/store"
)

// DefaultWindow is the number of records shown per page.
const DefaultWindow = 10

// Pager tracks the first record of the current window and its offset from the head.
type Pager struct {
	st     *store.Store
	window int
	cursor store.Handle
	offset int
}

// New creates a pager positioned at the head of st. Non-positive windows use DefaultWindow.
func New(st *store.Store, window int) *Pager {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Pager{st: st, window: window, cursor: st.Head()}
}

// Cursor returns the first record of the current window.
func (p *Pager) Cursor() store.Handle {
	return p.cursor
}

// Offset returns the cursor's distance from the head.
func (p *Pager) Offset() int {
	return p.offset
}

// WindowSize returns the page size.
func (p *Pager) WindowSize() int {
	return p.window
}

// Reset moves the cursor back to the head.
func (p *Pager) Reset() {
	p.cursor = p.st.Head()
	p.offset = 0
}

// AtEnd reports whether no records exist past the current window.
func (p *Pager) AtEnd() bool {
	return p.offset+p.window >= p.st.Len()
}

// PageForward advances the cursor one window. When fewer than a window of
// successors exist the cursor lands on the last record and false is returned.
// A cursor whose record was removed is reset to the head first.
func (p *Pager) PageForward() bool {
	if !p.st.Valid(p.cursor) {
		p.Reset()
		if p.cursor.IsNil() {
			return false
		}
	}
	next, taken, err := p.st.Advance(p.cursor, p.window)
	if err != nil {
		return false
	}
	p.cursor = next
	p.offset += taken
	return taken == p.window
}

// Window returns up to one window of handles starting at the cursor.
func (p *Pager) Window() []store.Handle {
	out := make([]store.Handle, 0, p.window)
	for h := range p.st.From(p.cursor) {
		out = append(out, h)
		if len(out) == p.window {
			break
		}
	}
	return out
}
