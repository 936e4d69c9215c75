// ABOUTME: Sort command
// ABOUTME: Reorders the data file by a field and saves it

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harper/ufo/internal/compare"
	"github.com/harper/ufo/internal/session"
	"github.com/spf13/cobra"
)

var sortCmd = &cobra.Command{
	Use:   "sort <field>",
	Short: "Sort the data file by a field",
	Long: `Sort every sighting in the data file and save the new order.

Fields: occurred, reported, city, state, country, shape, duration.

Examples:
  ufo sort occurred
  ufo sort duration --desc`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadStore()
		if err != nil {
			return err
		}

		dir := compare.Ascending
		if desc, _ := cmd.Flags().GetBool("desc"); desc {
			dir = compare.Descending
		}
		swaps, err := session.New(st, logger).SortBy(args[0], dir)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if swaps == 0 {
			fmt.Fprintln(out, color.New(color.Faint).Sprintf("Already sorted by %s %s.", args[0], dir))
			return nil
		}
		if err := saveStore(st); err != nil {
			return err
		}
		fmt.Fprintln(out, color.GreenString("✓ Sorted %d sightings by %s %s", st.Len(), args[0], dir))
		return nil
	},
}

func init() {
	sortCmd.Flags().BoolP("desc", "d", false, "sort descending")

	rootCmd.AddCommand(sortCmd)
}
