package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/asaidimu/go-lister/config"
	"github.com/asaidimu/go-lister/core/listing"
	"github.com/asaidimu/go-lister/core/query"
	"github.com/asaidimu/go-lister/core/schema"
	"github.com/urfave/cli/v3"
)

// QueryCommand creates the query command
func QueryCommand() *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "List a dataset through filters, search and sort",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "dataset",
				Aliases:  []string{"d"},
				Usage:    "Dataset to list",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "Equality filter as field=value; \"all\" clears it",
			},
			&cli.StringFlag{
				Name:    "search",
				Aliases: []string{"s"},
				Usage:   "Free-text search over the dataset's search fields",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Sort key as field[:asc|desc[:numeric|lexicographic]]",
			},
			&cli.StringFlag{
				Name:  "preset",
				Usage: "Named sort preset (recent, progress, title)",
			},
			&cli.StringSliceFlag{
				Name:  "fields",
				Usage: "Columns to show; defaults to every field",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return run(ctx, c, func(e *env) error {
				return listDataset(e, listOptions{
					dataset: c.String("dataset"),
					filters: c.StringSlice("filter"),
					search:  c.String("search"),
					sort:    c.String("sort"),
					preset:  c.String("preset"),
					fields:  c.StringSlice("fields"),
				})
			})
		},
	}
}

type listOptions struct {
	dataset string
	filters []string
	search  string
	sort    string
	preset  string
	fields  []string
}

func listDataset(e *env, opts listOptions) error {
	state, d, err := e.listing(opts.dataset)
	if err != nil {
		return err
	}
	if err := applyOptions(state, d.Shape, opts); err != nil {
		return err
	}

	view, err := state.View()
	if err != nil {
		return err
	}

	fields := opts.fields
	if len(fields) == 0 {
		fields = d.Shape.FieldNames()
	}
	for _, f := range fields {
		if !d.Shape.HasField(f) {
			return fmt.Errorf("column %s.%s: %w", d.Shape.Name, f, query.ErrUnknownField)
		}
	}

	title := fmt.Sprintf("%s (%d of %d)", d.Shape.Name, view.Count, view.Total)
	renderRecords(e.out, title, fields, view.Records)
	renderStats(e.out, d.Stats, view.Stats)
	return nil
}

func applyOptions(state *listing.State[schema.Record], shape *schema.Shape, opts listOptions) error {
	for _, f := range opts.filters {
		field, raw, ok := strings.Cut(f, "=")
		if !ok || field == "" {
			return fmt.Errorf("filter %q: expected field=value", f)
		}
		def := shape.FindField(field)
		if def == nil {
			return fmt.Errorf("filter on %s.%s: %w", shape.Name, field, query.ErrUnknownField)
		}
		var value query.FilterValue = raw
		if !query.IsWildcard(raw) {
			v, err := parseValue(def, raw)
			if err != nil {
				return err
			}
			value = v
		}
		if err := state.SetFilter(field, value); err != nil {
			return err
		}
	}

	state.SetSearch(opts.search)

	switch {
	case opts.sort != "" && opts.preset != "":
		return fmt.Errorf("--sort and --preset are mutually exclusive")
	case opts.preset != "":
		return state.SetSortPreset(opts.preset)
	case opts.sort != "":
		spec, err := config.ParseSort(opts.sort)
		if err != nil {
			return err
		}
		return state.SetSort(*spec)
	}
	return nil
}
