package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/asaidimu/go-lister/core/search"
	"github.com/asaidimu/go-lister/fixtures"
	"github.com/urfave/cli/v3"
)

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search courses, lessons and instructors like the dashboard's search box",
		ArgsUsage: "[query]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "query",
				Usage: "Search query; the first argument is used when omitted",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results; defaults to search_limit",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Select the first result and print where it navigates",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			q := c.String("query")
			if q == "" {
				q = strings.Join(c.Args().Slice(), " ")
			}
			return run(ctx, c, func(e *env) error {
				return searchAll(e, q, c.Int("limit"), c.Bool("open"))
			})
		},
	}
}

func searchAll(e *env, q string, limit int, open bool) error {
	if limit <= 0 {
		limit = e.cfg.SearchLimit
	}
	index, err := fixtures.NewSearchIndex(e.logger, limit)
	if err != nil {
		return fmt.Errorf("building search index: %w", err)
	}
	index.WithObserver(e.recorder)

	session := search.NewSession(index, search.NavigatorFunc(func(target string) error {
		fmt.Fprintf(e.out, "%s %s\n", metaStyle.Render("navigate"), targetStyle.Render(target))
		return nil
	}))
	results := session.Type(q)
	renderEntries(e.out, q, results)

	if open && len(results) > 0 {
		return session.Select(results[0])
	}
	return nil
}
