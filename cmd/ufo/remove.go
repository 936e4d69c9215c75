// ABOUTME: Sighting remove command
// ABOUTME: Deletes the sighting at a position in the data file after confirmation

package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/ufo/internal/ui"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <position>",
	Aliases: []string{"rm"},
	Short:   "Remove a sighting by its position",
	Long: `Remove the sighting at a zero-based position in the data file, as numbered
by 'ufo list' (page 2 starts at 10).

Examples:
  ufo remove 0
  ufo remove 17 --confirm`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := strconv.Atoi(args[0])
		if err != nil || pos < 0 {
			return fmt.Errorf("invalid position %q", args[0])
		}

		st, err := loadStore()
		if err != nil {
			return err
		}

		h, taken, err := st.Advance(st.Head(), pos)
		if err != nil || taken != pos || h.IsNil() {
			return fmt.Errorf("no sighting at position %d (have %d)", pos, st.Len())
		}
		rec, err := st.Get(h)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			fmt.Fprint(out, ui.FormatDetail(rec))
			fmt.Fprintf(out, "Remove this sighting? [y/N] ")
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}
		}

		location := ui.FormatLocation(rec)
		if _, err := st.RemoveAt(st.Head(), pos); err != nil {
			return fmt.Errorf("failed to remove sighting: %w", err)
		}
		if err := saveStore(st); err != nil {
			return err
		}

		fmt.Fprintln(out, color.GreenString("✓ Removed sighting %d in %s", pos, location))
		return nil
	},
}

func init() {
	removeCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(removeCmd)
}
