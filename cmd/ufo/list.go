// ABOUTME: Sighting list command
// ABOUTME: Prints one page of the data file, optionally sorted, without saving

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/harper/ufo/internal/compare"
	"github.com/harper/ufo/internal/session"
	"github.com/harper/ufo/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List a page of sightings",
	Long: `List ten sightings at a time from the data file.

Sorting here only affects the listing; use 'ufo sort' to save a new order.

Examples:
  ufo list
  ufo list --page 3
  ufo list --sort reported --desc`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadStore()
		if err != nil {
			return err
		}
		sess := session.New(st, logger)

		if field, _ := cmd.Flags().GetString("sort"); field != "" {
			dir := compare.Ascending
			if desc, _ := cmd.Flags().GetBool("desc"); desc {
				dir = compare.Descending
			}
			if _, err := sess.SortBy(field, dir); err != nil {
				return err
			}
		}

		page, _ := cmd.Flags().GetInt("page")
		printPage(cmd.OutOrStdout(), sess, page)
		return nil
	},
}

// printPage pages forward page times and prints the resulting window.
func printPage(out io.Writer, sess *session.Session, page int) {
	for i := 1; i < page; i++ {
		if !sess.PageForward() {
			fmt.Fprintln(out, color.New(color.Faint).Sprintf("(only %d pages)", i))
			break
		}
	}

	view := sess.View()
	fmt.Fprintln(out, ui.FormatPageHeader(sess.Offset(), len(view), sess.Len(), sess.FilterDescription()))
	for _, e := range view {
		fmt.Fprintln(out, ui.FormatSighting(e.Index, e.Sighting))
	}
}

func init() {
	listCmd.Flags().StringP("sort", "s", "", "sort field: occurred, reported, city, state, country, shape, duration")
	listCmd.Flags().Bool("desc", false, "sort descending")
	listCmd.Flags().IntP("page", "p", 1, "page number to show")

	rootCmd.AddCommand(listCmd)
}
