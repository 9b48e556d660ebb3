package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strataquery/strata/internal/config"
	"github.com/strataquery/strata/pkg/db/migrations"
	"github.com/strataquery/strata/pkg/db/store"
)

func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Metadata store migration utilities",
		Long:  "Inspect and manage the schema migrations of the metadata store.",
	}

	cmd.AddCommand(newMigrateUpCommand())
	cmd.AddCommand(newMigrateStatusCommand())
	cmd.AddCommand(newMigrateRollbackCommand())

	return cmd
}

func openStore(ctx context.Context) (*store.SQLiteStore, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	s, err := store.NewSQLiteStore(store.SQLiteConfig{
		Path: cfg.Metadata.SQLite.Path,
	})
	if err != nil {
		return nil, err
	}

	if err := s.Connect(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to connect metadata store: %w", err)
	}

	return s, nil
}

func newMigrateUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			s, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Migrate(ctx); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Println("Migrations applied")
			return nil
		},
	}
}

func newMigrateStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			s, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			statuses, err := migrations.NewMigrator(s.DB()).Status(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("%-8s %-10s %s\n", "VERSION", "APPLIED", "DESCRIPTION")
			for _, st := range statuses {
				applied := "pending"
				if st.Applied {
					applied = "yes"
				}
				fmt.Printf("%-8d %-10s %s\n", st.Version, applied, st.Description)
			}
			return nil
		},
	}
}

func newMigrateRollbackCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rollback",
		Short: "Roll back the last applied migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			s, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := migrations.NewMigrator(s.DB()).Rollback(ctx); err != nil {
				return err
			}

			fmt.Println("Rolled back last migration")
			return nil
		},
	}
}
