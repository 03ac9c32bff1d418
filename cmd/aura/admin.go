package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/easeaico/aura/internal/storage"
)

func migrateCommand(load loadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			// NewStore migrates on open.
			store, err := storage.NewStore(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
			store.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "database schema is up to date")
			return nil
		},
	}
}

func clearCommand(load loadFunc) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every journal entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete entries without --yes")
			}
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			store, err := storage.NewStore(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer store.Close()

			n, err := store.Journal.DeleteAll(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d entries\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}

func validateCommand(load loadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check configuration for missing settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			problems := cfg.Validate()
			for _, p := range problems {
				fmt.Fprintln(cmd.OutOrStdout(), "-", p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%d configuration problem(s)", len(problems))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "configuration ok")
			return nil
		},
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
