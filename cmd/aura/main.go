// Package main is the Aura journaling service CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/easeaico/aura/internal/config"
)

var version = "dev"

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"log-level":  "LOG_LEVEL",
	"log-format": "LOG_FORMAT",
	"listen":     "LISTEN_ADDR",
	"static-dir": "STATIC_DIR",
}

func main() {
	if err := rootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rootCommand builds the CLI tree. Subcommands receive the loaded config through load.
func rootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "aura",
		Short:         "Aura journaling and mood analysis service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json")

	load := func(cmd *cobra.Command) (config.Config, error) {
		v, err := config.New(configPath)
		if err != nil {
			return config.Config{}, err
		}
		for name, key := range flagKeys {
			flag := cmd.Flags().Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return config.Config{}, fmt.Errorf("failed to bind flag --%s: %w", name, err)
			}
		}
		cfg, err := config.Load(v)
		if err != nil {
			return config.Config{}, err
		}
		setupLogger(cfg)
		return cfg, nil
	}

	rootCmd.AddCommand(
		serveCommand(load),
		migrateCommand(load),
		clearCommand(load),
		validateCommand(load),
		versionCommand(),
	)
	return rootCmd
}

type loadFunc func(cmd *cobra.Command) (config.Config, error)

func setupLogger(cfg config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("slog logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)
}
