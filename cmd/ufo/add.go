// ABOUTME: Sighting add command
// ABOUTME: Validates a new sighting from flags and saves it at the front of the data file

package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harper/ufo/internal/models"
	"github.com/harper/ufo/internal/storage"
	"github.com/harper/ufo/internal/ui"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:     "add <city> --at <M/D/YYYY H:MM> --lat <latitude> --lng <longitude>",
	Aliases: []string{"a"},
	Short:   "Add a sighting",
	Long: `Add a sighting at the front of the data file.

Examples:
  ufo add roswell --at "7/2/1947 23:00" --lat 33.39 --lng -104.52 --state nm --country us --shape disk
  ufo add "san marcos" --at "10/10/1949 20:30" --lat 29.88 --lng -97.94 --duration 2700 --comment "bright"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()

		atStr, _ := flags.GetString("at")
		occurred, err := storage.ParseDateTime(atStr)
		if err != nil {
			return fmt.Errorf("invalid --at (use M/D/YYYY H:MM, e.g., 10/10/1949 20:30): %w", err)
		}

		reported := today()
		if s, _ := flags.GetString("reported"); s != "" {
			if reported, err = storage.ParseDate(s); err != nil {
				return fmt.Errorf("invalid --reported (use M/D/YYYY): %w", err)
			}
		}

		lat, _ := flags.GetFloat64("lat")
		lng, _ := flags.GetFloat64("lng")
		if err := models.ValidateCoordinates(lat, lng); err != nil {
			return err
		}

		state, _ := flags.GetString("state")
		country, _ := flags.GetString("country")
		for _, code := range []string{state, country} {
			if code == "" {
				continue
			}
			if err := models.ValidateCode(code); err != nil {
				return err
			}
		}

		shape, _ := flags.GetString("shape")
		duration, _ := flags.GetInt("duration")
		comment, _ := flags.GetString("comment")

		rec := models.Sighting{
			OccurredAt:      occurred,
			City:            args[0],
			State:           state,
			Country:         country,
			Shape:           shape,
			DurationSeconds: duration,
			Comment:         comment,
			ReportedAt:      reported,
			Latitude:        lat,
			Longitude:       lng,
		}.Truncate()

		st, err := loadStoreOrEmpty()
		if err != nil {
			return err
		}
		st.InsertFront(rec)
		if err := saveStore(st); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.GreenString("✓ Added sighting in %s", ui.FormatLocation(&rec)))
		fmt.Fprintf(out, "  %s @ (%.4f, %.4f)\n", rec.OccurredAt, lat, lng)
		return nil
	},
}

func today() models.Date {
	now := time.Now()
	return models.Date{Year: now.Year(), Month: int(now.Month()), Day: now.Day()}
}

func init() {
	addCmd.Flags().String("at", "", "when it happened (M/D/YYYY H:MM)")
	addCmd.Flags().Float64("lat", 0, "latitude (-90 to 90)")
	addCmd.Flags().Float64("lng", 0, "longitude (-180 to 180)")
	addCmd.Flags().String("state", "", "two letter state code")
	addCmd.Flags().String("country", "", "two letter country code")
	addCmd.Flags().String("shape", "", "reported shape (e.g., 'disk')")
	addCmd.Flags().Int("duration", 0, "duration in seconds")
	addCmd.Flags().StringP("comment", "c", "", "witness description")
	addCmd.Flags().String("reported", "", "report date (M/D/YYYY, default today)")
	_ = addCmd.MarkFlagRequired("at")
	_ = addCmd.MarkFlagRequired("lat")
	_ = addCmd.MarkFlagRequired("lng")

	rootCmd.AddCommand(addCmd)
}
