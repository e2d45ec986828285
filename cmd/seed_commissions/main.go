package main

import (
	"commission-central/internal/config"
	"commission-central/internal/database"
	"commission-central/internal/repository"
	"commission-central/internal/utils"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var driver string

	cmd := &cobra.Command{
		Use:          "seed_commissions",
		Short:        "Create the commission tables and load the sample dataset",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := utils.GetLogger()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if driver == "" {
				driver = cfg.DataSource
			}

			db, err := openDatabase(cfg, driver)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			if err := repository.CreateCommissionSchema(ctx, db); err != nil {
				return err
			}

			data, err := repository.NewSampleCommissionRepository().LoadCommissionData(ctx)
			if err != nil {
				return err
			}
			if err := repository.SeedCommissionData(ctx, db, data); err != nil {
				return err
			}

			log.WithField("driver", driver).Infof("Seeded %d team members", len(data.TeamMembers))
			return nil
		},
	}

	cmd.Flags().StringVar(&driver, "driver", "", "mysql or sqlite (defaults to DATA_SOURCE)")

	return cmd
}

func openDatabase(cfg *config.Config, driver string) (*sqlx.DB, error) {
	switch driver {
	case "mysql":
		return database.NewMySQL(cfg)
	case "sqlite":
		return database.NewSQLite(cfg)
	default:
		return nil, fmt.Errorf("cannot seed data source %q", driver)
	}
}
