// ABOUTME: Export and import functionality for sighting data
// ABOUTME: Supports YAML backup format and markdown table export

package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harper/ufo/internal/models"
	"github.com/harper/ufo/internal/store"
	"gopkg.in/yaml.v3"
)

// BackupVersion is the current backup format version.
const BackupVersion = "1.0"

// BackupTool identifies backups written by this program.
const BackupTool = "ufo"

// Backup represents the YAML backup format. Sightings are listed in store order.
type Backup struct {
	Version    string           `yaml:"version"`
	ID         string           `yaml:"id"`
	ExportedAt time.Time        `yaml:"exported_at"`
	Tool       string           `yaml:"tool"`
	Source     string           `yaml:"source,omitempty"`
	Sightings  []SightingBackup `yaml:"sightings"`
}

// SightingBackup represents a sighting in the backup format.
type SightingBackup struct {
	OccurredAt      string  `yaml:"occurred_at"`
	City            string  `yaml:"city"`
	State           string  `yaml:"state,omitempty"`
	Country         string  `yaml:"country,omitempty"`
	Shape           string  `yaml:"shape,omitempty"`
	DurationSeconds int     `yaml:"duration_seconds"`
	Comment         string  `yaml:"comment,omitempty"`
	ReportedAt      string  `yaml:"reported_at"`
	Latitude        float64 `yaml:"latitude"`
	Longitude       float64 `yaml:"longitude"`
}

func toBackup(s *models.Sighting) SightingBackup {
	return SightingBackup{
		OccurredAt:      s.OccurredAt.String(),
		City:            s.City,
		State:           s.State,
		Country:         s.Country,
		Shape:           s.Shape,
		DurationSeconds: s.DurationSeconds,
		Comment:         s.Comment,
		ReportedAt:      s.ReportedAt.String(),
		Latitude:        s.Latitude,
		Longitude:       s.Longitude,
	}
}

func (b SightingBackup) toModel() (models.Sighting, error) {
	occurred, err := ParseDateTime(b.OccurredAt)
	if err != nil {
		return models.Sighting{}, fmt.Errorf("occurred_at: %w", err)
	}
	reported, err := ParseDate(b.ReportedAt)
	if err != nil {
		return models.Sighting{}, fmt.Errorf("reported_at: %w", err)
	}
	return models.Sighting{
		OccurredAt:      occurred,
		City:            b.City,
		State:           b.State,
		Country:         b.Country,
		Shape:           b.Shape,
		DurationSeconds: b.DurationSeconds,
		Comment:         b.Comment,
		ReportedAt:      reported,
		Latitude:        b.Latitude,
		Longitude:       b.Longitude,
	}, nil
}

// ExportToYAML exports st to the YAML backup format. source names the data
// file the store was loaded from and may be empty.
func ExportToYAML(st *store.Store, source string) ([]byte, error) {
	backup := Backup{
		Version:    BackupVersion,
		ID:         uuid.NewString(),
		ExportedAt: time.Now().UTC(),
		Tool:       BackupTool,
		Source:     source,
		Sightings:  make([]SightingBackup, 0, st.Len()),
	}
	for _, rec := range st.All() {
		backup.Sightings = append(backup.Sightings, toBackup(rec))
	}
	return yaml.Marshal(backup)
}

// ImportFromYAML builds a store from a YAML backup, preserving its order.
func ImportFromYAML(data []byte) (*store.Store, error) {
	var backup Backup
	if err := yaml.Unmarshal(data, &backup); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if backup.Version != BackupVersion {
		return nil, fmt.Errorf("unsupported backup version: %s (expected %s)", backup.Version, BackupVersion)
	}

	if backup.Tool != BackupTool {
		return nil, fmt.Errorf("wrong tool: %s (expected %s)", backup.Tool, BackupTool)
	}

	recs := make([]models.Sighting, 0, len(backup.Sightings))
	for i, b := range backup.Sightings {
		s, err := b.toModel()
		if err != nil {
			return nil, fmt.Errorf("sighting %d: %w", i, err)
		}
		recs = append(recs, s)
	}
	return store.FromSlice(recs), nil
}

// ExportToMarkdown renders st as a markdown table in store order.
func ExportToMarkdown(st *store.Store) []byte {
	var sb strings.Builder

	now := time.Now().UTC()
	sb.WriteString(fmt.Sprintf("# Sighting Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	if st.Len() == 0 {
		sb.WriteString("No sightings.\n")
		return []byte(sb.String())
	}

	sb.WriteString("| Occurred | Location | Shape | Duration | Reported | Coordinates |\n")
	sb.WriteString("|----------|----------|-------|----------|----------|-------------|\n")

	for _, rec := range st.All() {
		location := strings.Join(nonEmpty(rec.City, rec.State, rec.Country), ", ")
		if location == "" {
			location = "-"
		}
		coords := fmt.Sprintf("(%.4f, %.4f)", rec.Latitude, rec.Longitude)
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %ds | %s | %s |\n",
			rec.OccurredAt, escapeCell(location), escapeCell(rec.Shape),
			rec.DurationSeconds, rec.ReportedAt, coords))
	}

	return []byte(sb.String())
}

func nonEmpty(parts ...string) []string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
