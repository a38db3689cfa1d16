package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/grocer/internal/config"
	"github.com/mmynk/grocer/internal/storage"
	"github.com/mmynk/grocer/internal/storage/memory"
	"github.com/mmynk/grocer/internal/storage/sqlite"
	"github.com/mmynk/grocer/pkg/logging"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// configFile is set by the --config flag.
var configFile string

// cfg holds the configuration loaded by PersistentPreRunE.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "grocer",
	Short:         "Grocery list account, list and item services",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}

		v := config.New()
		for name, key := range bindServeFlags {
			if f := cmd.Flags().Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}

		loaded, err := config.Load(v, configFile)
		if err != nil {
			return err
		}

		level, err := logging.ParseLevel(loaded.Log.Level)
		if err != nil {
			return err
		}
		logging.Setup(level, loaded.Log.Format)

		cfg = loaded
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("grocer", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./grocer.yaml if present)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// openStore builds the storage backend selected by the configuration.
func openStore(c *config.Config) (storage.Store, error) {
	switch c.Storage.Driver {
	case config.DriverMemory:
		slog.Warn("Using in-memory storage; data is lost on exit")
		return memory.New(), nil
	case config.DriverSQLite:
		store, err := sqlite.New(c.Storage.Path)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "database", c.Storage.Path)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
}
