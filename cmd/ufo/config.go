// ABOUTME: Config command
// ABOUTME: Shows and updates the ufo config file

package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harper/ufo/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the config file location and the settings in effect.

Examples:
  ufo config
  ufo config set data_file ~/data/scrubbed.csv
  ufo config set encoding latin1`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", color.New(color.Faint).Sprint("config:     "), config.GetConfigPath())
		fmt.Fprintf(out, "%s %s\n", color.New(color.Faint).Sprint("data_file:  "), cfg.GetDataFile())
		fmt.Fprintf(out, "%s %s\n", color.New(color.Faint).Sprint("encoding:   "), cfg.GetEncoding())
		fmt.Fprintf(out, "%s %t\n", color.New(color.Faint).Sprint("lenient:    "), cfg.Lenient)
		fmt.Fprintf(out, "%s %s\n", color.New(color.Faint).Sprint("log_level:  "), orDefault(cfg.LogLevel, "warn"))
		fmt.Fprintf(out, "%s %s\n", color.New(color.Faint).Sprint("log_file:   "), orDefault(cfg.LogFile, "stderr"))
		fmt.Fprintf(out, "%s %s\n", color.New(color.Faint).Sprint("snapshot_db:"), cfg.GetSnapshotDB())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Start from the file, not the flag-adjusted config.
		fileCfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := setConfigValue(fileCfg, args[0], args[1]); err != nil {
			return err
		}
		if err := fileCfg.Validate(); err != nil {
			return err
		}
		if err := fileCfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Set %s = %s", args[0], args[1]))
		return nil
	},
}

func setConfigValue(c *config.Config, key, value string) error {
	switch key {
	case "data_file":
		c.DataFile = value
	case "encoding":
		c.Encoding = value
	case "lenient":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("lenient must be true or false")
		}
		c.Lenient = b
	case "log_level":
		c.LogLevel = value
	case "log_file":
		c.LogFile = value
	case "snapshot_db":
		c.SnapshotDB = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func init() {
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
