package main

import (
	"context"
	"fmt"

	"creditlens/internal/analysis"
	"creditlens/internal/db"
	"creditlens/internal/seed"
	"creditlens/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with a demo analyzed report",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "user",
			Aliases:  []string{"u"},
			Usage:    "User ID to own the demo report",
			Required: true,
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		reportID, err := seed.SeedDemoReport(
			ctx,
			c.String("user"),
			store.NewReportRepository(pool),
			store.NewAccountRepository(pool),
			store.NewNegativeItemRepository(pool),
			store.NewViolationRepository(pool),
			analysis.PolicyFromName(cfg.ScorePolicy),
		)
		if err != nil {
			return fmt.Errorf("failed to seed demo report: %w", err)
		}

		logrus.WithField("report_id", reportID).Info("Demo report seeded")

		return nil
	},
}
