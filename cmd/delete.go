package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/asaidimu/go-lister/core/dataset"
	"github.com/urfave/cli/v3"
)

// noticeTimeout bounds the wait for the change notification.
const noticeTimeout = time.Second

// DeleteCommand creates the delete command
func DeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a record and show the resulting notification and statistics",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "dataset",
				Aliases:  []string{"d"},
				Usage:    "Dataset to delete from",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("delete expects exactly one record id")
			}
			return run(ctx, c, func(e *env) error {
				return deleteRecord(ctx, e, c.String("dataset"), c.Args().First())
			})
		},
	}
}

func deleteRecord(ctx context.Context, e *env, name, rawID string) error {
	d, collection, err := e.dataset(name)
	if err != nil {
		return err
	}
	id, err := parseValue(d.Shape.FindField(d.Shape.Identity()), rawID)
	if err != nil {
		return err
	}

	notices := make(chan dataset.Event, 1)
	subID := collection.RegisterSubscription(dataset.RegisterSubscriptionOptions{
		Event: dataset.RecordDeleteSuccess,
		Callback: func(_ context.Context, event dataset.Event) error {
			select {
			case notices <- event:
			default:
			}
			return nil
		},
	})
	defer collection.UnregisterSubscription(subID)

	if _, err := collection.Delete(id); err != nil {
		return err
	}

	select {
	case event := <-notices:
		fmt.Fprintf(e.out, "%s %s\n", titleStyle.Render(event.Title), event.Description)
	case <-time.After(noticeTimeout):
		e.logger.Warn("No delete notification received")
	case <-ctx.Done():
		return ctx.Err()
	}

	records, _ := collection.Snapshot()
	renderStats(e.out, d.Stats, e.engine().Aggregate(records, records, d.Stats))
	return nil
}
