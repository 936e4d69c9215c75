// ABOUTME: Import command for restoring sightings from a YAML backup or SQLite snapshot
// ABOUTME: Replaces the data file with the imported sightings after confirmation

package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harper/ufo/internal/config"
	"github.com/harper/ufo/internal/storage"
	"github.com/harper/ufo/internal/store"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import sightings from a YAML backup or SQLite snapshot",
	Long: `Replace the data file with sightings from a YAML backup created by
'ufo export --format yaml', or from a SQLite snapshot created by
'ufo export --format sqlite'.

WARNING: This overwrites the data file.

Examples:
  ufo import backup.yaml
  ufo import --snapshot latest
  ufo import --snapshot 1b4e28ba-2fa1-11d2-883f-0016d3cca427 --confirm`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot, _ := cmd.Flags().GetString("snapshot")

		var st *store.Store
		var source string
		var err error
		switch {
		case snapshot != "":
			st, source, err = importSnapshot(cmd, snapshot)
		case len(args) == 1:
			st, source, err = importYAML(args[0])
		default:
			return fmt.Errorf("give a YAML file or --snapshot")
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			fmt.Fprintf(out, "Replace %s with %d sightings from %s? [y/N] ", cfg.GetDataFile(), st.Len(), source)
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Fprintln(out, "Canceled.")
				return nil
			}
		}

		if err := saveStore(st); err != nil {
			return err
		}
		fmt.Fprintln(out, color.GreenString("Import complete"))
		fmt.Fprintf(out, "  %d sightings written to %s\n", st.Len(), cfg.GetDataFile())
		return nil
	},
}

func importYAML(path string) (*store.Store, string, error) {
	path = config.ExpandPath(path)
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".db" || ext == ".sqlite" {
		return nil, "", fmt.Errorf("%s looks like a database; use --db %s --snapshot latest", path, path)
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}
	st, err := storage.ImportFromYAML(data)
	if err != nil {
		return nil, "", fmt.Errorf("failed to import: %w", err)
	}
	return st, path, nil
}

func importSnapshot(cmd *cobra.Command, ref string) (*store.Store, string, error) {
	id := uuid.Nil
	if ref != "latest" {
		var err error
		if id, err = uuid.Parse(ref); err != nil {
			return nil, "", fmt.Errorf("invalid snapshot id %q: %w", ref, err)
		}
	}

	db, err := openSnapshotDB(cmd)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = db.Close() }()

	st, err := db.LoadStore(id)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load snapshot %s: %w", ref, err)
	}
	return st, "snapshot " + ref, nil
}

func init() {
	importCmd.Flags().Bool("confirm", false, "skip confirmation prompt")
	importCmd.Flags().String("snapshot", "", "snapshot id to restore, or 'latest'")
	importCmd.Flags().String("db", "", "snapshot database (default from config)")

	rootCmd.AddCommand(importCmd)
}
