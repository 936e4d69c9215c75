// ABOUTME: Root Cobra command and global flags
// ABOUTME: Resolves config, the data file, and the diagnostic logger for every subcommand

package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harper/ufo/internal/config"
	"github.com/harper/ufo/internal/logging"
	"github.com/harper/ufo/internal/storage"
	"github.com/harper/ufo/internal/store"
	"github.com/spf13/cobra"
)

var (
	cfg      *config.Config
	logger   *log.Logger
	closeLog func() error
)

var rootCmd = &cobra.Command{
	Use:   "ufo",
	Short: "Browse and edit UFO sighting data files",
	Long: `
██╗   ██╗███████╗ ██████╗
██║   ██║██╔════╝██╔═══██╗
██║   ██║█████╗  ██║   ██║
██║   ██║██╔══╝  ██║   ██║
╚██████╔╝██║     ╚██████╔╝
 ╚═════╝ ╚═╝      ╚═════╝

     Page, sort, filter, and edit sighting reports

Examples:
  ufo browse -f scrubbed.csv
  ufo list --sort duration --desc
  ufo search city "san m"
  ufo export --format geojson -o sightings.geojson`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		flags := cmd.Flags()
		if flags.Changed("file") {
			cfg.DataFile, _ = flags.GetString("file")
		}
		if flags.Changed("encoding") {
			cfg.Encoding, _ = flags.GetString("encoding")
		}
		if flags.Changed("lenient") {
			cfg.Lenient, _ = flags.GetBool("lenient")
		}
		if flags.Changed("log-file") {
			cfg.LogFile, _ = flags.GetString("log-file")
		}
		if verbose, _ := flags.GetBool("verbose"); verbose {
			cfg.LogLevel = "debug"
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, closeLog, err = logging.Open(logging.Options{
			Level: cfg.LogLevel,
			File:  config.ExpandPath(cfg.LogFile),
		})
		if err != nil {
			return fmt.Errorf("failed to open log: %w", err)
		}
		logger.Debug("resolved data file", "path", cfg.GetDataFile(), "encoding", cfg.GetEncoding())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("file", "f", "", "sightings data file (default from config)")
	rootCmd.PersistentFlags().String("encoding", "", "data file encoding: utf-8 or latin1")
	rootCmd.PersistentFlags().Bool("lenient", false, "skip malformed lines instead of failing")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "write diagnostic logs to a file")
}

// execute runs the root command and then releases the log file, including
// when the command failed and cobra skipped its post-run hooks.
func execute() error {
	err := rootCmd.Execute()
	if cerr := closeLogger(); err == nil {
		err = cerr
	}
	return err
}

// closeLogger closes the log file opened by the pre-run hook, if any.
func closeLogger() error {
	if closeLog == nil {
		return nil
	}
	err := closeLog()
	closeLog = nil
	return err
}

// loadStore reads the configured data file.
func loadStore() (*store.Store, error) {
	path := cfg.GetDataFile()
	st, err := storage.Load(path, cfg.LoadOptions(logger))
	if err != nil {
		return nil, err
	}
	logger.Info("loaded data file", "path", path, "records", st.Len())
	return st, nil
}

// loadStoreOrEmpty is loadStore, but a missing data file yields an empty store.
func loadStoreOrEmpty() (*store.Store, error) {
	st, err := loadStore()
	if errors.Is(err, storage.ErrNotFound) {
		logger.Warn("data file does not exist yet", "path", cfg.GetDataFile())
		return store.New(), nil
	}
	return st, err
}

// saveStore writes st back to the configured data file.
func saveStore(st *store.Store) error {
	path := cfg.GetDataFile()
	if err := storage.Save(path, st, cfg.GetEncoding()); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	logger.Info("saved data file", "path", path, "records", st.Len())
	return nil
}
