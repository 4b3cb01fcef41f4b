package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// StatsCommand creates the stats command
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show the summary statistics of every dataset",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dataset",
				Aliases: []string{"d"},
				Usage:   "Only show this dataset",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return run(ctx, c, func(e *env) error {
				return showStats(e, c.String("dataset"))
			})
		},
	}
}

func showStats(e *env, only string) error {
	names := e.store.Collections()
	if only != "" {
		names = []string{only}
	}
	engine := e.engine()
	for _, name := range names {
		d, collection, err := e.dataset(name)
		if err != nil {
			return err
		}
		records, _ := collection.Snapshot()
		stats := engine.Aggregate(records, records, d.Stats)

		fmt.Fprintln(e.out, titleStyle.Render(fmt.Sprintf("%s (%d records)", name, len(records))))
		if len(d.Stats) == 0 {
			fmt.Fprintln(e.out, noDataStyle.Render("No statistics defined."))
			continue
		}
		renderStats(e.out, d.Stats, stats)
	}
	return nil
}
