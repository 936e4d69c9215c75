// ABOUTME: Snapshots command
// ABOUTME: Lists and deletes SQLite snapshots of the data file

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List or delete SQLite snapshots",
	Long: `List snapshots saved with 'ufo export --format sqlite', newest first.

Examples:
  ufo snapshots
  ufo snapshots --delete 1b4e28ba-2fa1-11d2-883f-0016d3cca427`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openSnapshotDB(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		out := cmd.OutOrStdout()
		if del, _ := cmd.Flags().GetString("delete"); del != "" {
			id, err := uuid.Parse(del)
			if err != nil {
				return fmt.Errorf("invalid snapshot id %q: %w", del, err)
			}
			if err := db.DeleteSnapshot(id); err != nil {
				return fmt.Errorf("failed to delete snapshot %s: %w", del, err)
			}
			fmt.Fprintln(out, color.GreenString("✓ Deleted snapshot %s", id))
			return nil
		}

		snaps, err := db.ListSnapshots()
		if err != nil {
			return err
		}
		if len(snaps) == 0 {
			fmt.Fprintln(out, "No snapshots yet. Use 'ufo export --format sqlite' to create one.")
			return nil
		}
		for _, s := range snaps {
			fmt.Fprintf(out, "%s  %s  %6d sightings  %s\n",
				color.New(color.Faint).Sprint(s.ID.String()),
				s.CreatedAt.Local().Format("2006-01-02 15:04"),
				s.Count,
				s.Source)
		}
		return nil
	},
}

func init() {
	snapshotsCmd.Flags().String("delete", "", "delete the snapshot with this id")
	snapshotsCmd.Flags().String("db", "", "snapshot database (default from config)")

	rootCmd.AddCommand(snapshotsCmd)
}
