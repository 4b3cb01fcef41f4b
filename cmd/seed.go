package cmd

import (
	"context"
	"fmt"

	"github.com/asaidimu/go-lister/sqlite"
	"github.com/urfave/cli/v3"
)

// SeedCommand creates the seed command
func SeedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Write the built-in datasets to a SQLite database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "out",
				Aliases:  []string{"o"},
				Usage:    "SQLite database file to write",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return run(ctx, c, func(e *env) error {
				return seedDatabase(ctx, e, c.String("out"))
			})
		},
	}
}

// seedDatabase replaces the tables in path with the datasets of e.
func seedDatabase(ctx context.Context, e *env, path string) error {
	db, err := sqlite.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	interactor := sqlite.NewInteractor(db, e.logger, nil, nil)
	for _, d := range e.datasets {
		if err := interactor.DropTable(ctx, d.Shape.Name); err != nil {
			return err
		}
		n, err := interactor.Seed(ctx, d.Shape, d.Records)
		if err != nil {
			return fmt.Errorf("seeding %s: %w", d.Shape.Name, err)
		}
		fmt.Fprintf(e.out, "%s %d records\n", metaStyle.Render(d.Shape.Name), n)
	}
	return nil
}
