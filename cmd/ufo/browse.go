// ABOUTME: Interactive browse command
// ABOUTME: Opens the data file in the text menu for paging, sorting, filtering, and editing

package main

import (
	"os"

	"github.com/harper/ufo/internal/menu"
	"github.com/harper/ufo/internal/session"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:     "browse",
	Aliases: []string{"b"},
	Short:   "Browse sightings interactively",
	Long: `Open the data file in an interactive menu. Type 'help' at the prompt for commands.

Changes stay in memory until saved with 'w'. A missing data file starts an empty list.

Examples:
  ufo browse
  ufo browse -f ~/data/scrubbed.csv --encoding latin1 --lenient`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadStoreOrEmpty()
		if err != nil {
			return err
		}

		m := menu.New(os.Stdin, cmd.OutOrStdout(), session.New(st, logger), menu.Options{
			Path:   cfg.GetDataFile(),
			Load:   cfg.LoadOptions(logger),
			Logger: logger,
		})
		return m.Run()
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
