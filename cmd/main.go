package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"clockdeck/internal/storage"
	"clockdeck/internal/ui/preferences"
)

const (
	appName = "ClockDeck"
	appID   = "dev.clockdeck.app"
)

type options struct {
	configPath string
	dbPath     string
	verbose    bool
	background bool
	mute       bool

	logger *zap.Logger
	out    io.Writer
}

func main() {
	if err := newRootCommand(&options{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "clockdeck",
		Short: "Stopwatch, countdown timers and alarms",
		Long: `ClockDeck is a desktop clock with a lap-ranking stopwatch, named
countdown timers and recurring alarms.

Run without arguments to open the desktop window.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.out == nil {
				opts.out = cmd.OutOrStdout()
			}
			if opts.logger != nil {
				return nil
			}
			config := zap.NewProductionConfig()
			if opts.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDesktop(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "settings file (default: user config dir)")
	flags.StringVar(&opts.dbPath, "db", "", "database file (overrides the settings value)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&opts.background, "background", false, "start hidden in the system tray")
	flags.BoolVar(&opts.mute, "mute", false, "silence alarm chimes for this run")

	root.AddCommand(newTimerCommand(opts))
	root.AddCommand(newAlarmCommand(opts))
	root.AddCommand(newNextCommand(opts))
	root.AddCommand(newStopwatchCommand(opts))
	return root
}

// loadSettings returns the settings and the file they came from.
func (opts *options) loadSettings() (preferences.Settings, string, error) {
	path := opts.configPath
	if path == "" {
		resolved, err := storage.SettingsPath(appName)
		if err != nil {
			return preferences.Settings{}, "", err
		}
		path = resolved
	}
	settings, err := storage.LoadSettings(path)
	if err != nil {
		return preferences.Settings{}, "", err
	}
	if opts.mute {
		settings.Muted = true
	}
	return settings, path, nil
}

func (opts *options) databasePath(settings preferences.Settings) (string, error) {
	switch {
	case opts.dbPath != "":
		return opts.dbPath, nil
	case settings.DatabasePath != "":
		return settings.DatabasePath, nil
	}
	return storage.DatabasePath(appName)
}

func (opts *options) openStore() (*storage.Store, error) {
	settings, _, err := opts.loadSettings()
	if err != nil {
		return nil, err
	}
	path, err := opts.databasePath(settings)
	if err != nil {
		return nil, err
	}
	return storage.Open(path, opts.logger.Named("store"))
}
