// ABOUTME: Sighting search command
// ABOUTME: Filters the data file by city, state, country, shape, or date

package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/ufo/internal/match"
	"github.com/harper/ufo/internal/session"
	"github.com/harper/ufo/internal/storage"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:     "search <field> <value>",
	Aliases: []string{"find"},
	Short:   "Filter sightings by a field",
	Long: `Show sightings matching a field, ten at a time.

city matches by case-sensitive prefix. state, country, and shape match exactly.
occurred and reported take a date as M/D/YYYY.

Examples:
  ufo search city "san m"
  ufo search shape disk --page 2
  ufo search reported 4/27/2004`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadStore()
		if err != nil {
			return err
		}
		sess := session.New(st, logger)

		field, value := args[0], strings.Join(args[1:], " ")
		var n int
		if match.IsDateField(field) {
			d, err := storage.ParseDate(value)
			if err != nil {
				return err
			}
			n, err = sess.SearchByDate(field, d)
			if err != nil {
				return err
			}
		} else {
			n, err = sess.SearchByString(field, value)
			if err != nil {
				return err
			}
		}

		if n == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), color.New(color.Faint).Sprintf("No sightings match %s %q.", field, value))
			return nil
		}

		page, _ := cmd.Flags().GetInt("page")
		printPage(cmd.OutOrStdout(), sess, page)
		return nil
	},
}

func init() {
	searchCmd.Flags().IntP("page", "p", 1, "page of matches to show")

	rootCmd.AddCommand(searchCmd)
}
