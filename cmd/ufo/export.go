// ABOUTME: Export command for CSV, GeoJSON, markdown, YAML, and SQLite snapshots
// ABOUTME: Writes the data file in another format without changing it

package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harper/ufo/internal/config"
	"github.com/harper/ufo/internal/geojson"
	"github.com/harper/ufo/internal/storage"
	"github.com/harper/ufo/internal/store"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:     "export",
	Aliases: []string{"e"},
	Short:   "Export sightings in various formats",
	Long: `Export sightings as CSV, GeoJSON, Markdown, or YAML, or save a snapshot to SQLite.

Output goes to stdout unless --output is given. The sqlite format adds a snapshot
to the snapshot database instead (see 'ufo snapshots').

Examples:
  # Map every sighting as a point
  ufo export --format geojson -o sightings.geojson

  # One MultiPoint feature per shape
  ufo export --format geojson --geometry shapes

  # Portable backup
  ufo export --format yaml -o backup.yaml

  # Re-encode a Latin-1 file as UTF-8
  ufo export -f scrubbed.csv --encoding latin1 --format csv --to-encoding utf-8 -o clean.csv

  # Snapshot into SQLite
  ufo export --format sqlite`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		geometry, _ := cmd.Flags().GetString("geometry")
		output, _ := cmd.Flags().GetString("output")

		st, err := loadStore()
		if err != nil {
			return err
		}

		if format == "sqlite" {
			return exportSnapshot(cmd, st)
		}

		var data []byte
		switch format {
		case "csv":
			enc, _ := cmd.Flags().GetString("to-encoding")
			if enc == "" {
				enc = cfg.GetEncoding()
			}
			var buf bytes.Buffer
			if err := storage.Write(&buf, st, enc); err != nil {
				return err
			}
			data = buf.Bytes()
		case "geojson":
			var fc *geojson.FeatureCollection
			switch geometry {
			case "points":
				fc = geojson.ToPointsFeatureCollection(st)
			case "shapes":
				fc = geojson.ToShapeFeatureCollection(st)
			default:
				return fmt.Errorf("unsupported geometry: %s (use 'points' or 'shapes')", geometry)
			}
			if data, err = fc.ToJSONIndent(); err != nil {
				return fmt.Errorf("failed to encode geojson: %w", err)
			}
		case "markdown":
			data = storage.ExportToMarkdown(st)
		case "yaml":
			if data, err = storage.ExportToYAML(st, cfg.GetDataFile()); err != nil {
				return fmt.Errorf("failed to export yaml: %w", err)
			}
		default:
			return fmt.Errorf("unsupported format: %s (use 'csv', 'geojson', 'markdown', 'yaml', or 'sqlite')", format)
		}

		if output == "" {
			out := cmd.OutOrStdout()
			if _, err := out.Write(data); err != nil {
				return err
			}
			if len(data) > 0 && data[len(data)-1] != '\n' {
				fmt.Fprintln(out)
			}
			return nil
		}
		if err := os.WriteFile(config.ExpandPath(output), data, 0644); err != nil { //nolint:gosec // exports are meant to be shared
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), color.GreenString("✓ Exported %d sightings to %s", st.Len(), output))
		return nil
	},
}

func exportSnapshot(cmd *cobra.Command, st *store.Store) error {
	db, err := openSnapshotDB(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	id, err := db.SaveStore(st, cfg.GetDataFile())
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, color.GreenString("✓ Snapshot %s", id))
	fmt.Fprintf(out, "  %d sightings from %s\n", st.Len(), cfg.GetDataFile())
	return nil
}

// openSnapshotDB opens --db or the configured snapshot database.
func openSnapshotDB(cmd *cobra.Command) (*storage.SQLiteDB, error) {
	path := cfg.GetSnapshotDB()
	if cmd.Flags().Changed("db") {
		p, _ := cmd.Flags().GetString("db")
		path = config.ExpandPath(p)
	}
	db, err := storage.NewSQLiteDB(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}
	logger.Debug("opened snapshot database", "path", path)
	return db, nil
}

func init() {
	exportCmd.Flags().String("format", "csv", "output format: csv, geojson, markdown, yaml, or sqlite")
	exportCmd.Flags().String("geometry", "points", "geojson geometry: points or shapes")
	exportCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().String("to-encoding", "", "csv output encoding (default: same as input)")
	exportCmd.Flags().String("db", "", "snapshot database (default from config)")

	rootCmd.AddCommand(exportCmd)
}
