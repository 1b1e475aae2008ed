package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/balkashynov/workclock/internal/config"
	"github.com/balkashynov/workclock/internal/db"
	"github.com/balkashynov/workclock/internal/ledger"
	"github.com/balkashynov/workclock/internal/log"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	configPath string
	debug      bool

	cfg     = config.Default()
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "workclock",
	Short: "A terminal work-time ledger",
	Long: `workclock records how long you work. Start the clock, stop it, leave a note,
and read the monthly ledger with the balance carried over from previous months.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
			logFile = nil
		}
	},
}

// setup loads the config file and points the logger at the log file
func setup(cmd *cobra.Command, args []string) error {
	path, required := configPath, configPath != ""
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}

	loaded, err := config.Load(path, required)
	if err != nil {
		return err
	}
	if debug {
		loaded.LogLevel = "debug"
	}
	cfg = loaded

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	logCfg := log.Config{Level: cfg.LogLevel}
	if f, err := log.OpenFile(cfg.LogPath()); err == nil {
		logFile = f
		logCfg.Output = f
	} else {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}
	log.Configure(logCfg)

	logger := log.WithComponent("commands")
	logger.Debug().
		Str("command", cmd.Name()).
		Str("config", path).
		Str("database", cfg.DatabasePath()).
		Msg("starting")
	return nil
}

// withStore opens the ledger store for the duration of fn
func withStore(fn func(cmd *cobra.Command, args []string, store *db.Store) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		store, err := db.Open(cfg.DatabasePath())
		if err != nil {
			return err
		}
		defer store.Close()
		return fn(cmd, args, store)
	}
}

func newReporter(store ledger.Store) *ledger.Reporter {
	return ledger.NewReporter(store,
		ledger.WithNoiseThreshold(cfg.NoiseThreshold),
		ledger.WithLogger(log.WithComponent("report")),
	)
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is the user config dir)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write debug messages to the log file")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(aboutCmd)
	rootCmd.SetHelpCommand(helpCmd)
}
