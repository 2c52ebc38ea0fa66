package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/stocktrade-simulator/internal/repository"
	"github.com/stocktrade-simulator/internal/seed"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Add any missing demo companies to the stock catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			db, err := initDatabase(cfg)
			if err != nil {
				return fmt.Errorf("connect database %s: %w", describeDatabase(cfg), err)
			}
			defer closeDatabase(db)

			if err := repository.AutoMigrate(db); err != nil {
				return fmt.Errorf("migrate database: %w", err)
			}

			n, err := seed.New(repository.NewInstrumentRepository(db)).Seed(cmd.Context())
			if err != nil {
				return err
			}
			log.Printf("Seed complete: %d stocks added", n)
			return nil
		},
	}
}
