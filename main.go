package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const defaultEnvFile = ".env"

var envFile string

var rootCmd = &cobra.Command{
	Use:   "game-session",
	Short: "Word-guessing game session coordinator",
	Long: `game-session runs the session coordinator and its guess service on a
single-worker actor runtime, serves the game over HTTP, and records
concluded rounds in SQLite.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default)",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE:  runMigrate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", defaultEnvFile, "dotenv file loaded before reading the environment")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// config loads the configuration and applies the log level.
func config(cmd *cobra.Command) (Config, error) {
	cfg, err := loadConfig(envFile, cmd.Flags().Changed("env-file"))
	if err != nil {
		return Config{}, err
	}
	setupLogging(cfg.LogLevel)
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
}
