// ABOUTME: Interactive text menu for browsing a sighting file
// ABOUTME: Reads one command per line and drives a session, saving on request

package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/harper/ufo/internal/compare"
	"github.com/harper/ufo/internal/logging"
	"github.com/harper/ufo/internal/match"
	"github.com/harper/ufo/internal/models"
	"github.com/harper/ufo/internal/session"
	"github.com/harper/ufo/internal/storage"
	"github.com/harper/ufo/internal/store"
	"github.com/harper/ufo/internal/ui"
)

// Options configures a menu.
type Options struct {
	// Path is the data file used by load and save when no path is typed.
	Path string
	// Load controls encoding and leniency for load and save.
	Load storage.LoadOptions
	// Logger receives diagnostics. Nil disables them.
	Logger *log.Logger
}

// Menu is the prompt loop over one session.
type Menu struct {
	in     *bufio.Scanner
	out    io.Writer
	sess   *session.Session
	opts   Options
	logger *log.Logger
	dirty  bool
}

// New creates a menu reading commands from in and writing to out.
func New(in io.Reader, out io.Writer, sess *session.Session, opts Options) *Menu {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Menu{
		in:     bufio.NewScanner(in),
		out:    out,
		sess:   sess,
		opts:   opts,
		logger: logger,
	}
}

// Run shows the first window and processes commands until quit or end of input.
func (m *Menu) Run() error {
	m.show()
	for {
		line, ok := m.prompt("ufo> ")
		if !ok {
			break
		}
		quit, err := m.Exec(line)
		if err != nil {
			fmt.Fprintln(m.out, color.RedString("✗ %v", err))
			continue
		}
		if quit {
			return nil
		}
	}
	if m.dirty {
		fmt.Fprintln(m.out, color.YellowString("⚠ unsaved changes discarded"))
	}
	return m.in.Err()
}

// Dirty reports whether the store changed since the last load or save.
func (m *Menu) Dirty() bool {
	return m.dirty
}

// Exec runs one command line. It reports whether the menu should exit,
// which happens on quit or after a successful save.
func (m *Menu) Exec(line string) (bool, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(args[0]), args[1:]

	switch cmd {
	case "n", "next":
		if !m.sess.PageForward() {
			fmt.Fprintln(m.out, color.New(color.Faint).Sprint("(end of sightings)"))
			return false, nil
		}
		m.show()
	case "r", "reset":
		m.sess.PageReset()
		m.show()
	case "s", "sort":
		return false, m.sort(args)
	case "f", "filter", "search":
		return false, m.filter(line, args)
	case "v", "view":
		return false, m.view(args)
	case "a", "add":
		return false, m.add()
	case "d", "delete", "rm":
		return false, m.remove(args)
	case "l", "load":
		return false, m.load(args)
	case "w", "save":
		if err := m.save(args); err != nil {
			return false, err
		}
		return true, nil
	case "p", "print", "ls":
		m.show()
	case "h", "help", "?":
		m.help()
	case "q", "quit", "exit":
		if m.dirty && len(args) == 0 {
			fmt.Fprintln(m.out, color.YellowString("⚠ unsaved changes; save with 'w' or quit with 'q!'"))
			return false, nil
		}
		return true, nil
	case "q!":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
	return false, nil
}

func (m *Menu) sort(args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("usage: sort <field> [asc|desc]")
	}
	dir := compare.Ascending
	if len(args) == 2 {
		var err error
		if dir, err = compare.ParseDirection(args[1]); err != nil {
			return err
		}
	}
	swaps, err := m.sess.SortBy(args[0], dir)
	if err != nil {
		return err
	}
	if swaps > 0 {
		m.dirty = true
	}
	m.show()
	return nil
}

func (m *Menu) filter(line string, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: filter <field> <value>")
	}
	name := args[0]

	var n int
	var err error
	if match.IsDateField(name) {
		var d models.Date
		if d, err = storage.ParseDate(args[1]); err != nil {
			return err
		}
		n, err = m.sess.SearchByDate(name, d)
	} else {
		// Queries may contain spaces, e.g. "san marcos".
		n, err = m.sess.SearchByString(name, queryText(line, name))
	}
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(m.out, color.New(color.Faint).Sprint("No matches."))
		return nil
	}
	m.show()
	return nil
}

// queryText returns everything after the field name on the command line.
func queryText(line, field string) string {
	_, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	return strings.TrimSpace(strings.TrimPrefix(rest, field))
}

func (m *Menu) view(args []string) error {
	idx, err := indexArg(args)
	if err != nil {
		return err
	}
	view := m.sess.View()
	if idx >= len(view) {
		return store.ErrIndexOutOfRange
	}
	fmt.Fprint(m.out, ui.FormatDetail(view[idx].Sighting))
	return nil
}

func (m *Menu) remove(args []string) error {
	idx, err := indexArg(args)
	if err != nil {
		return err
	}
	ok, err := m.sess.RemoveAt(idx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(m.out, color.New(color.Faint).Sprint("Nothing to remove."))
		return nil
	}
	m.dirty = true
	fmt.Fprintln(m.out, color.GreenString("✓ Removed sighting %d", idx))
	m.show()
	return nil
}

// addPrompts lists the fields asked for by add, in data file order.
var addPrompts = [storage.NumFields]string{
	"occurred (M/D/YYYY H:MM)",
	"city",
	"state (2 letters)",
	"country (2 letters)",
	"shape",
	"duration seconds",
	"comment",
	"reported (M/D/YYYY)",
	"latitude",
	"longitude",
}

func (m *Menu) add() error {
	fields := make([]string, 0, storage.NumFields)
	for _, p := range addPrompts {
		v, ok := m.prompt(p + ": ")
		if !ok {
			return errors.New("add cancelled")
		}
		fields = append(fields, strings.TrimSpace(v))
	}

	rec, err := storage.ParseFields(fields)
	if err != nil {
		return err
	}
	if err := models.ValidateCoordinates(rec.Latitude, rec.Longitude); err != nil {
		return err
	}
	m.sess.Add(rec)
	m.dirty = true
	fmt.Fprintln(m.out, color.GreenString("✓ Added %s", ui.FormatLocation(&rec)))
	m.show()
	return nil
}

func (m *Menu) load(args []string) error {
	path := m.pathArg(args)
	if path == "" {
		return errors.New("usage: load <file>")
	}
	st, err := storage.Load(path, m.opts.Load)
	if err != nil {
		return err
	}
	m.sess.Replace(st)
	m.opts.Path = path
	m.dirty = false
	m.logger.Info("loaded data file", "path", path, "records", st.Len())
	fmt.Fprintln(m.out, color.GreenString("✓ Loaded %d sightings from %s", st.Len(), path))
	m.show()
	return nil
}

func (m *Menu) save(args []string) error {
	path := m.pathArg(args)
	if path == "" {
		return errors.New("usage: save <file>")
	}
	if err := storage.Save(path, m.sess.Store(), m.opts.Load.Encoding); err != nil {
		return err
	}
	m.opts.Path = path
	m.dirty = false
	m.logger.Info("saved data file", "path", path, "records", m.sess.Len())
	fmt.Fprintln(m.out, color.GreenString("✓ Saved %d sightings to %s", m.sess.Len(), path))
	return nil
}

func (m *Menu) pathArg(args []string) string {
	if len(args) > 0 {
		return strings.Join(args, " ")
	}
	return m.opts.Path
}

func indexArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errors.New("expected one index from the listing")
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil || idx < 0 {
		return 0, fmt.Errorf("invalid index %q", args[0])
	}
	return idx, nil
}

// show prints the current window under a header.
func (m *Menu) show() {
	view := m.sess.View()
	fmt.Fprintln(m.out, ui.FormatPageHeader(m.sess.Offset(), len(view), m.sess.Len(), m.sess.FilterDescription()))
	for _, e := range view {
		fmt.Fprintln(m.out, ui.FormatSighting(e.Index, e.Sighting))
	}
}

func (m *Menu) help() {
	fmt.Fprintln(m.out, `Commands:
  n, next                     show the next page
  r, reset                    back to the first page, clearing any filter
  p, print                    show the current page again
  s, sort <field> [asc|desc]  sort by occurred, reported, city, state, country, shape, duration
  f, filter <field> <value>   filter by city (prefix), state, country, shape,
                              occurred or reported (M/D/YYYY)
  v, view <n>                 show every field of listing entry n
  a, add                      add a sighting at the front
  d, delete <n>               delete listing entry n
  l, load [file]              load a data file
  w, save [file]              save to the data file and exit
  q, quit                     exit (q! discards unsaved changes)`)
}

func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return m.in.Text(), true
}
