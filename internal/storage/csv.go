// ABOUTME: Delimited text format for sighting data files
// ABOUTME: Loads files into a store and saves a store back in the same line format

package storage

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harper/ufo/internal/models"
	"github.com/harper/ufo/internal/store"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// NumFields is the number of comma separated fields per line:
// occurred, city, state, country, shape, duration, comment, reported, latitude, longitude.
const NumFields = 10

// Supported file encodings.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin1"
)

// LoadOptions controls how a data file is read.
type LoadOptions struct {
	// Encoding is EncodingUTF8 (default) or EncodingLatin1.
	Encoding string
	// Lenient skips malformed lines with a warning instead of failing the load.
	Lenient bool
	// Logger receives warnings for skipped lines. Nil disables them.
	Logger *log.Logger
}

// ParseDate parses M/D/YYYY. Values are not calendar-checked.
func ParseDate(s string) (models.Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return models.Date{}, fmt.Errorf("%w: date %q is not M/D/YYYY", ErrMalformed, s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return models.Date{}, fmt.Errorf("%w: date %q: %v", ErrMalformed, s, err)
		}
		nums[i] = n
	}
	return models.Date{Year: nums[2], Month: nums[0], Day: nums[1]}, nil
}

// ParseDateTime parses M/D/YYYY H:MM. A missing time of day reads as 0:00.
func ParseDateTime(s string) (models.DateTime, error) {
	datePart, timePart, hasTime := strings.Cut(strings.TrimSpace(s), " ")
	d, err := ParseDate(datePart)
	if err != nil {
		return models.DateTime{}, err
	}
	dt := models.DateTime{Date: d}
	if !hasTime {
		return dt, nil
	}

	h, m, ok := strings.Cut(strings.TrimSpace(timePart), ":")
	if !ok {
		return models.DateTime{}, fmt.Errorf("%w: time %q is not H:MM", ErrMalformed, timePart)
	}
	if dt.Hour, err = strconv.Atoi(h); err != nil {
		return models.DateTime{}, fmt.Errorf("%w: hour %q", ErrMalformed, h)
	}
	if dt.Minute, err = strconv.Atoi(m); err != nil {
		return models.DateTime{}, fmt.Errorf("%w: minute %q", ErrMalformed, m)
	}
	return dt, nil
}

// ParseFields converts one line's fields into a sighting. Empty numeric and
// date fields are left zero so partially filled lines still load.
func ParseFields(fields []string) (models.Sighting, error) {
	if len(fields) != NumFields {
		return models.Sighting{}, fmt.Errorf("%w: got %d fields, want %d", ErrMalformed, len(fields), NumFields)
	}

	s := models.Sighting{
		City:    fields[1],
		State:   fields[2],
		Country: fields[3],
		Shape:   fields[4],
		Comment: fields[6],
	}

	var err error
	if fields[0] != "" {
		if s.OccurredAt, err = ParseDateTime(fields[0]); err != nil {
			return models.Sighting{}, err
		}
	}
	if fields[5] != "" {
		if s.DurationSeconds, err = parseDuration(fields[5]); err != nil {
			return models.Sighting{}, err
		}
	}
	if fields[7] != "" {
		if s.ReportedAt, err = ParseDate(fields[7]); err != nil {
			return models.Sighting{}, err
		}
	}
	if s.Latitude, err = parseFloat("latitude", fields[8]); err != nil {
		return models.Sighting{}, err
	}
	if s.Longitude, err = parseFloat("longitude", fields[9]); err != nil {
		return models.Sighting{}, err
	}
	return s.Truncate(), nil
}

// parseDuration accepts whole seconds, truncating fractional values like "1.5".
func parseDuration(v string) (int, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: duration %q", ErrMalformed, v)
	}
	return int(f), nil
}

func parseFloat(name, v string) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrMalformed, name, v)
	}
	return f, nil
}

// FormatFields renders a sighting as one line's fields.
func FormatFields(s models.Sighting) []string {
	s = s.Truncate()
	return []string{
		s.OccurredAt.String(),
		s.City,
		s.State,
		s.Country,
		s.Shape,
		strconv.Itoa(s.DurationSeconds),
		s.Comment,
		s.ReportedAt.String(),
		strconv.FormatFloat(s.Latitude, 'f', -1, 64),
		strconv.FormatFloat(s.Longitude, 'f', -1, 64),
	}
}

func isHeader(fields []string) bool {
	return len(fields) > 0 && strings.EqualFold(strings.TrimSpace(fields[0]), "datetime")
}

func decoder(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(name) {
	case "", EncodingUTF8, "utf8":
		return nil, nil
	case EncodingLatin1, "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder(), nil
	}
	return nil, fmt.Errorf("unsupported encoding %q", name)
}

func encoder(name string) (*encoding.Encoder, error) {
	switch strings.ToLower(name) {
	case "", EncodingUTF8, "utf8":
		return nil, nil
	case EncodingLatin1, "iso-8859-1":
		return encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()), nil
	}
	return nil, fmt.Errorf("unsupported encoding %q", name)
}

// Read parses every line of r into a new store, preserving line order.
// A leading "datetime,..." header line is skipped.
func Read(r io.Reader, opts LoadOptions) (*store.Store, error) {
	dec, err := decoder(opts.Encoding)
	if err != nil {
		return nil, err
	}
	if dec != nil {
		r = transform.NewReader(r, dec)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var recs []models.Sighting
	first := true
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if opts.Lenient && errors.As(err, &perr) {
				warn(opts.Logger, perr.StartLine, err)
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		line, _ := cr.FieldPos(0)
		if first {
			first = false
			if isHeader(fields) {
				continue
			}
		}

		s, err := ParseFields(fields)
		if err != nil {
			if opts.Lenient {
				warn(opts.Logger, line, err)
				continue
			}
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		recs = append(recs, s)
	}
	return store.FromSlice(recs), nil
}

func warn(logger *log.Logger, line int, err error) {
	if logger != nil {
		logger.Warn("skipping malformed line", "line", line, "err", err)
	}
}

// Write emits st in store order, one record per line, with no newline after
// the last record.
func Write(w io.Writer, st *store.Store, enc string) error {
	e, err := encoder(enc)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	for _, rec := range st.All() {
		if err := cw.Write(FormatFields(*rec)); err != nil {
			return fmt.Errorf("format record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("format records: %w", err)
	}

	out := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	if e != nil {
		if out, err = e.Bytes(out); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	}
	_, err = w.Write(out)
	return err
}

// Load reads the data file at path. The file is closed on every return path.
func Load(path string, opts LoadOptions) (*store.Store, error) {
	f, err := os.Open(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer func() { _ = f.Close() }()

	st, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return st, nil
}

// Save writes st to path atomically through a temp file in the same directory.
func Save(path string, st *store.Store, enc string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil { //nolint:gosec // user data directory
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := tmp.Chmod(0644); err != nil { //nolint:gosec // data files are meant to be shared
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := Write(tmp, st, enc); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}
