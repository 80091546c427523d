// Package main is the entry point for the career CLI
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/mech-api/internal/config"
)

var (
	flagStorage    string
	flagRedisAddr  string
	flagSQLitePath string
	flagLogLevel   string

	application *app
)

var rootCmd = &cobra.Command{
	Use:   "career",
	Short: "Pilot career and encounter management",
	Long: `career manages persistent pilots (skills, XP, wounds, abilities) and
the encounters they fight in. Every command prints an operation result as JSON.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defer func() {
		if application != nil {
			application.Close()
		}
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagStorage, "storage", "", "pilot storage backend: redis or sqlite (env CAREER_STORAGE)")
	flags.StringVar(&flagRedisAddr, "redis-addr", "", "redis address (env REDIS_ADDR)")
	flags.StringVar(&flagSQLitePath, "sqlite-path", "", "sqlite database file (env CAREER_SQLITE_PATH)")
	flags.StringVar(&flagLogLevel, "log-level", "", "debug, info, warn or error (env LOG_LEVEL)")

	rootCmd.AddCommand(pilotCmd)
	rootCmd.AddCommand(encounterCmd)
	rootCmd.AddCommand(forceCmd)
	rootCmd.AddCommand(doctorCmd)
}

// setup loads configuration, applies flag overrides and installs the logger
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Level(),
	})))

	if application != nil {
		application.Close()
	}
	application = newApp(cfg)
	return nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("storage") {
		cfg.Storage = flagStorage
	}
	if flags.Changed("redis-addr") {
		cfg.RedisAddr = flagRedisAddr
	}
	if flags.Changed("sqlite-path") {
		cfg.SQLitePath = flagSQLitePath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
