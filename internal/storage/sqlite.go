// ABOUTME: SQLite snapshot storage for sighting data
// ABOUTME: Saves and restores a whole store, keeping its order, using pure Go SQLite

package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/harper/ufo/internal/models"
	"github.com/harper/ufo/internal/store"
	_ "modernc.org/sqlite"
)

// SQLiteDB holds store snapshots in a local SQLite database.
type SQLiteDB struct {
	db   *sql.DB
	path string
}

// Snapshot describes one saved store.
type Snapshot struct {
	ID        uuid.UUID
	Source    string
	Count     int
	CreatedAt time.Time
}

// NewSQLiteDB opens or creates the database at path.
// Creates the directory and database file if they don't exist.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil { //nolint:gosec // 0750 is appropriate for user data directory
		return nil, fmt.Errorf("create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteDB{db: db, path: path}

	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// migrate creates or updates the database schema.
func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS snapshots (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS sightings (
			snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			occurred_year INTEGER NOT NULL,
			occurred_month INTEGER NOT NULL,
			occurred_day INTEGER NOT NULL,
			occurred_hour INTEGER NOT NULL,
			occurred_minute INTEGER NOT NULL,
			city TEXT NOT NULL,
			state TEXT NOT NULL,
			country TEXT NOT NULL,
			shape TEXT NOT NULL,
			duration_seconds INTEGER NOT NULL,
			comment TEXT NOT NULL,
			reported_year INTEGER NOT NULL,
			reported_month INTEGER NOT NULL,
			reported_day INTEGER NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			PRIMARY KEY (snapshot_id, position)
		);

		CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// SaveStore writes st as a new snapshot in one transaction and returns its ID.
func (s *SQLiteDB) SaveStore(st *store.Store, source string) (uuid.UUID, error) {
	id := uuid.New()

	tx, err := s.db.Begin()
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		"INSERT INTO snapshots (id, source, created_at) VALUES (?, ?, ?)",
		id.String(), source, time.Now().UTC(),
	); err != nil {
		return uuid.Nil, fmt.Errorf("insert snapshot: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO sightings (
		snapshot_id, position,
		occurred_year, occurred_month, occurred_day, occurred_hour, occurred_minute,
		city, state, country, shape, duration_seconds, comment,
		reported_year, reported_month, reported_day, latitude, longitude
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return uuid.Nil, fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	pos := 0
	for _, rec := range st.All() {
		if _, err := stmt.Exec(
			id.String(), pos,
			rec.OccurredAt.Year, rec.OccurredAt.Month, rec.OccurredAt.Day, rec.OccurredAt.Hour, rec.OccurredAt.Minute,
			rec.City, rec.State, rec.Country, rec.Shape, rec.DurationSeconds, rec.Comment,
			rec.ReportedAt.Year, rec.ReportedAt.Month, rec.ReportedAt.Day, rec.Latitude, rec.Longitude,
		); err != nil {
			return uuid.Nil, fmt.Errorf("insert sighting %d: %w", pos, err)
		}
		pos++
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// ListSnapshots returns all snapshots, newest first.
func (s *SQLiteDB) ListSnapshots() ([]Snapshot, error) {
	rows, err := s.db.Query(`
		SELECT s.id, s.source, s.created_at, COUNT(g.position)
		FROM snapshots s LEFT JOIN sightings g ON g.snapshot_id = s.id
		GROUP BY s.id ORDER BY s.created_at DESC, s.rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snaps []Snapshot
	for rows.Next() {
		var idStr string
		var snap Snapshot
		if err := rows.Scan(&idStr, &snap.Source, &snap.CreatedAt, &snap.Count); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap.ID, _ = uuid.Parse(idStr)
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// LoadStore restores the snapshot with the given ID. A Nil ID loads the newest.
func (s *SQLiteDB) LoadStore(id uuid.UUID) (*store.Store, error) {
	if id == uuid.Nil {
		snaps, err := s.ListSnapshots()
		if err != nil {
			return nil, err
		}
		if len(snaps) == 0 {
			return nil, ErrNotFound
		}
		id = snaps[0].ID
	}

	var exists int
	err := s.db.QueryRow("SELECT COUNT(*) FROM snapshots WHERE id = ?", id.String()).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	rows, err := s.db.Query(`SELECT
		occurred_year, occurred_month, occurred_day, occurred_hour, occurred_minute,
		city, state, country, shape, duration_seconds, comment,
		reported_year, reported_month, reported_day, latitude, longitude
		FROM sightings WHERE snapshot_id = ? ORDER BY position`, id.String())
	if err != nil {
		return nil, fmt.Errorf("query sightings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var recs []models.Sighting
	for rows.Next() {
		var rec models.Sighting
		if err := rows.Scan(
			&rec.OccurredAt.Year, &rec.OccurredAt.Month, &rec.OccurredAt.Day, &rec.OccurredAt.Hour, &rec.OccurredAt.Minute,
			&rec.City, &rec.State, &rec.Country, &rec.Shape, &rec.DurationSeconds, &rec.Comment,
			&rec.ReportedAt.Year, &rec.ReportedAt.Month, &rec.ReportedAt.Day, &rec.Latitude, &rec.Longitude,
		); err != nil {
			return nil, fmt.Errorf("scan sighting: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return store.FromSlice(recs), nil
}

// DeleteSnapshot removes a snapshot and its sightings.
func (s *SQLiteDB) DeleteSnapshot(id uuid.UUID) error {
	res, err := s.db.Exec("DELETE FROM snapshots WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
