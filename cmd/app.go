// Package cmd implements the lister command line: the dashboard's list
// screens, statistics and global search, run against the built-in datasets
// or a SQLite copy of them.
package cmd

import (
	"github.com/asaidimu/go-lister/config"
	"github.com/urfave/cli/v3"
)

// App returns the root command.
func App() *cli.Command {
	return &cli.Command{
		Name:  "lister",
		Usage: "Query the course platform's list screens from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path",
				Value: config.DefaultPath,
			},
			&cli.StringFlag{
				Name:  "database",
				Usage: "Read datasets from this SQLite file instead of the built-in fixtures",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Print the collected metrics after the command",
			},
		},
		Commands: []*cli.Command{
			QueryCommand(),
			SearchCommand(),
			StatsCommand(),
			DeleteCommand(),
			SeedCommand(),
		},
	}
}
