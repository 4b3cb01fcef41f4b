package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/asaidimu/go-lister/config"
	"github.com/asaidimu/go-lister/core/dataset"
	"github.com/asaidimu/go-lister/core/listing"
	"github.com/asaidimu/go-lister/core/query"
	"github.com/asaidimu/go-lister/core/schema"
	"github.com/asaidimu/go-lister/fixtures"
	"github.com/asaidimu/go-lister/metrics"
	"github.com/asaidimu/go-lister/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// env is what every command runs against: the configuration, the logger, the
// metrics and a store holding the dashboard datasets.
type env struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	recorder *metrics.Recorder
	datasets []fixtures.Dataset
	store    *dataset.Store
	out      io.Writer
}

// run builds the env for c, calls fn and prints the metrics when asked to.
func run(ctx context.Context, c *cli.Command, fn func(e *env) error) error {
	e, err := newEnv(ctx, c)
	if err != nil {
		return err
	}
	defer e.logger.Sync() //nolint:errcheck

	stop := e.recorder.Watch(e.store)
	defer stop()

	if err := fn(e); err != nil {
		return err
	}
	if c.Bool("metrics") {
		return printMetrics(e.out, e.registry)
	}
	return nil
}

func newEnv(ctx context.Context, c *cli.Command) (*env, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("database") {
		cfg.Database = c.String("database")
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return nil, err
	}

	datasets, err := fixtures.Datasets()
	if err != nil {
		return nil, err
	}
	if cfg.Database != "" {
		if err := loadFromDatabase(ctx, cfg.Database, datasets, logger); err != nil {
			return nil, err
		}
	}

	store, err := dataset.NewStore(logger)
	if err != nil {
		return nil, err
	}
	if err := fixtures.Load(store, datasets, logger); err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	return &env{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		recorder: metrics.NewRecorder(registry),
		datasets: datasets,
		store:    store,
		out:      c.Root().Writer,
	}, nil
}

// loadFromDatabase replaces the fixture records of every dataset that has a
// table in the database.
func loadFromDatabase(ctx context.Context, path string, datasets []fixtures.Dataset, logger *zap.Logger) error {
	db, err := sqlite.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	interactor := sqlite.NewInteractor(db, logger, nil, nil)
	for n, d := range datasets {
		exists, err := interactor.TableExists(ctx, d.Shape.Name)
		if err != nil {
			return fmt.Errorf("checking table %s: %w", d.Shape.Name, err)
		}
		if !exists {
			logger.Warn("Dataset not found in database, using fixtures", zap.String("dataset", d.Shape.Name), zap.String("database", path))
			continue
		}
		records, err := interactor.Load(ctx, d.Shape)
		if err != nil {
			return err
		}
		datasets[n].Records = records
	}
	return nil
}

func (e *env) engine() *query.Engine {
	return query.NewEngine(e.logger).WithObserver(e.recorder)
}

func (e *env) dataset(name string) (fixtures.Dataset, *dataset.Collection, error) {
	d, ok := fixtures.Find(e.datasets, name)
	if !ok {
		return fixtures.Dataset{}, nil, fmt.Errorf("unknown dataset %q (have %s)", name, strings.Join(e.store.Collections(), ", "))
	}
	collection, err := e.store.Collection(name)
	if err != nil {
		return fixtures.Dataset{}, nil, err
	}
	return d, collection, nil
}

// listing returns the list state of a dataset with the configured defaults.
func (e *env) listing(name string) (*listing.State[schema.Record], fixtures.Dataset, error) {
	d, collection, err := e.dataset(name)
	if err != nil {
		return nil, d, err
	}
	state, err := listing.New(listing.Config[schema.Record]{
		Collection:   collection,
		SearchFields: e.cfg.SearchFieldsFor(name),
		Stats:        d.Stats,
		DefaultSort:  e.cfg.SortFor(name, d.DefaultSort),
		Engine:       e.engine(),
		Logger:       e.logger,
	})
	if err != nil {
		return nil, d, err
	}
	return state, d, nil
}

// parseValue converts command-line text to the type of field so that numeric
// and boolean filters compare equal to the stored values.
func parseValue(field *schema.FieldDefinition, raw string) (any, error) {
	switch field.Type {
	case schema.FieldTypeNumber, schema.FieldTypeInteger:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("field %s expects a number: %w", field.Name, err)
		}
		return n, nil
	case schema.FieldTypeBoolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("field %s expects true or false: %w", field.Name, err)
		}
		return b, nil
	}
	return raw, nil
}
