package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/todaku-reader/todaku-api/internal/platform/logger"
	"github.com/todaku-reader/todaku-api/internal/platform/sqlstore"
)

func newMigrateCommand(configFile *string) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}

	run := func(action func(cmd *cobra.Command, m *sqlstore.Migrator) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configFile)
			if err != nil {
				return err
			}
			log, err := logger.New(os.Stderr, cfg.Server.LogLevel, "text")
			if err != nil {
				return err
			}
			db, err := openDatabase(cmd.Context(), cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close()
			return action(cmd, db.migrator)
		}
	}

	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, m *sqlstore.Migrator) error {
				applied, err := m.Up(cmd.Context())
				if err != nil {
					return err
				}
				color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", applied)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, m *sqlstore.Migrator) error {
				if err := m.Down(cmd.Context()); err != nil {
					return err
				}
				color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "rolled back one migration")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show applied and pending migrations",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, m *sqlstore.Migrator) error {
				states, err := m.Status(cmd.Context())
				if err != nil {
					return err
				}
				return printMigrationStatus(cmd.OutOrStdout(), states)
			}),
		},
	)
	return migrateCmd
}

func printMigrationStatus(w io.Writer, states []sqlstore.MigrationState) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tSTATE\tFILE")
	for _, s := range states {
		state := "pending"
		if s.Applied {
			state = "applied"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", s.Version, state, s.Path)
	}
	return tw.Flush()
}

