package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AbrarBb/findie/internal/config"
	"github.com/AbrarBb/findie/internal/migration"
	"github.com/AbrarBb/findie/pkg/logger"
)

func newMigrateCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := migration.NewMigrator(cfg.DBUrl).Up(); err != nil {
					return err
				}
				logger.Info("Migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back all migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := migration.NewMigrator(cfg.DBUrl).Down(); err != nil {
					return err
				}
				logger.Info("Migrations rolled back")
				return nil
			},
		},
		&cobra.Command{
			Use:   "steps N",
			Short: "Apply (N>0) or roll back (N<0) N migrations",
			Args:  cobra.ExactArgs(1),
			// N may be negative, which flag parsing would read as a shorthand flag.
			DisableFlagParsing: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := parseSteps(args[0])
				if err != nil {
					return err
				}
				return migration.NewMigrator(cfg.DBUrl).Steps(n)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			RunE: func(cmd *cobra.Command, args []string) error {
				version, dirty, ok, err := migration.NewMigrator(cfg.DBUrl).Version()
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
				return nil
			},
		},
	)

	return cmd
}

func parseSteps(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid step count %q: %w", arg, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("step count must not be zero")
	}
	return n, nil
}
