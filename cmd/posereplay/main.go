// Package main provides the posereplay CLI: offline replays of landmark
// recordings, recording conversion and the local workout history.
package main

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/2beens/posecoach/internal/config"
)

const (
	defaultEnv           = "development"
	defaultConfigPath    = "./config.toml"
	defaultHistoryDBPath = "./.posecoach/history.db"
	defaultLogLevel      = "warn"
)

var (
	rootEnv        string
	rootConfigPath string
	rootLogLevel   string
	rootHistoryDB  string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "posereplay",
		Short:         "Replay pose recordings and score them offline",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootEnv, "env", defaultEnv, "config environment [dev | development | prod | production]")
	flags.StringVar(&rootConfigPath, "config", defaultConfigPath, "path for the TOML config file")
	flags.StringVar(&rootLogLevel, "log-level", defaultLogLevel, "log level")
	flags.StringVar(&rootHistoryDB, "history-db", "", "path of the sqlite workout history")

	rootCmd.AddCommand(newReplayCmd())
	rootCmd.AddCommand(newRecordCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newExercisesCmd())

	return rootCmd
}

func setupLogging(out io.Writer) error {
	level, err := log.ParseLevel(rootLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	log.SetOutput(out)
	log.SetLevel(level)
	return nil
}

// loadConfig reads the config file when it exists. The CLI works without one.
func loadConfig() *config.Config {
	if _, err := os.Stat(rootConfigPath); err != nil {
		log.Debugf("config [%s] not used: %s", rootConfigPath, err)
		return &config.Config{}
	}
	cfg, err := config.Load(rootEnv, rootConfigPath)
	if err != nil {
		log.Warnf("failed to load config [%s]: %s", rootConfigPath, err)
		return &config.Config{}
	}
	return cfg
}

func historyDBPath(cfg *config.Config) string {
	if rootHistoryDB != "" {
		return rootHistoryDB
	}
	if cfg.HistoryDBPath != "" {
		return cfg.HistoryDBPath
	}
	return defaultHistoryDBPath
}
