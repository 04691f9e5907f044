package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/balkashynov/studylog/internal/app"
	"github.com/balkashynov/studylog/internal/clock"
	"github.com/balkashynov/studylog/internal/config"
	"github.com/balkashynov/studylog/internal/db"
	"github.com/balkashynov/studylog/internal/logging"
	"github.com/balkashynov/studylog/internal/storage/redis"
	"github.com/balkashynov/studylog/internal/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	configPath string

	// Set up by withApp before any command body runs
	cfg         *config.Config
	application *app.App
	closeSlot   = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "studylog",
	Short: "A CLI study-time log",
	Long: `studylog records study sessions and shows where your time went.
Log sessions, browse and filter them, see today/week totals and per-subject
breakdowns, and export everything as CSV - all from the terminal.`,
	SilenceUsage: true,
}

// initApp loads config, opens the durable slot and builds the application
func initApp() error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	logger := logging.Setup(cfg.Logging)

	slot, closer, err := openSlot(cfg)
	if err != nil {
		return err
	}
	closeSlot = closer

	s := store.New(slot,
		store.WithKey(cfg.Storage.Key),
		store.WithLogger(logger),
	)
	application = app.New(s, clock.RealClock{}, cfg.Stats.Days)

	logger.Debug().
		Str("storage", cfg.Storage.Type).
		Int("sessions", s.Len()).
		Msg("studylog ready")
	return nil
}

// openSlot opens the configured storage backend
func openSlot(cfg *config.Config) (store.Slot, func() error, error) {
	switch cfg.Storage.Type {
	case "redis":
		slot, err := redis.Open(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return slot, slot.Close, nil
	default:
		database, err := db.Open(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		return db.NewSlotStore(database), func() error { return db.Close(database) }, nil
	}
}

// withApp wraps a command function to initialize the application first
func withApp(fn func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := initApp(); err != nil {
			return fmt.Errorf("failed to start studylog: %w", err)
		}
		defer func() {
			if err := closeSlot(); err != nil {
				log.Warn().Err(err).Msg("Failed to close storage")
			}
		}()
		return fn(cmd, args)
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "studylog %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default ~/.studylog/config.yaml)")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.SetHelpCommand(helpCmd)
}
