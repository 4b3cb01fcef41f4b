// Package sqlite stores record datasets in SQLite tables so that the listing
// engine can be fed from a database file instead of the built-in fixtures. A
// shape maps to one table; records are written with Seed and read back, in
// insertion order, with Load.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/asaidimu/go-lister/core/schema"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// dbRunner abstracts the methods shared by *sql.DB and *sql.Tx so the same
// code runs inside and outside a transaction.
type dbRunner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Interactor reads and writes datasets in a SQLite database. It operates on
// the connection pool, or on a transaction when created with one.
type Interactor struct {
	db      *sql.DB
	tx      *sql.Tx
	logger  *zap.Logger
	options *Options
}

// Open opens the SQLite database at path. ":memory:" gives a private
// in-memory database; it is limited to one connection so that every query
// sees the same database.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// NewInteractor creates an Interactor. tx may be nil.
func NewInteractor(db *sql.DB, logger *zap.Logger, options *Options, tx *sql.Tx) *Interactor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if options == nil {
		options = DefaultOptions()
	}
	return &Interactor{db: db, tx: tx, logger: logger, options: options}
}

func (i *Interactor) runner() dbRunner {
	if i.tx != nil {
		return i.tx
	}
	return i.db
}

// readRows converts rows into records, coercing column values back to the
// types of their fields. NULL columns are left out of the record.
func readRows(logger *zap.Logger, shape *schema.Shape, rows *sql.Rows) ([]schema.Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	results := []schema.Record{}
	for rows.Next() {
		values := make([]any, len(columns))
		scanArgs := make([]any, len(columns))
		for i := range values {
			scanArgs[i] = &values[i]
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(schema.Record, len(columns))
		for i, col := range columns {
			val := values[i]
			if val == nil {
				continue
			}
			field := shape.FindField(col)
			if field == nil {
				logger.Warn("Column not found in shape, using raw value", zap.String("column", col))
				row[col] = val
				continue
			}
			row[col] = coerce(field.Type, val)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after scanning rows: %w", err)
	}
	return results, nil
}

func coerce(fieldType schema.FieldType, val any) any {
	switch fieldType {
	case schema.FieldTypeBoolean:
		if n, ok := val.(int64); ok {
			return n != 0
		}
	case schema.FieldTypeString, schema.FieldTypeEnum:
		if b, ok := val.([]byte); ok {
			return string(b)
		}
	case schema.FieldTypeInteger:
		if f, ok := val.(float64); ok {
			return int64(f)
		}
	case schema.FieldTypeNumber:
		if n, ok := val.(int64); ok {
			return float64(n)
		}
	}
	return val
}

// Seed creates the table for shape if needed and inserts records inside a
// single transaction. It returns the number of rows written.
func (i *Interactor) Seed(ctx context.Context, shape *schema.Shape, records []schema.Record) (int64, error) {
	if i.tx != nil {
		return i.seed(ctx, shape, records)
	}
	txi, err := i.StartTransaction(ctx)
	if err != nil {
		return 0, err
	}
	n, err := txi.seed(ctx, shape, records)
	if err != nil {
		if rbErr := txi.Rollback(ctx); rbErr != nil {
			i.logger.Error("Failed to roll back seed", zap.String("table", shape.Name), zap.Error(rbErr))
		}
		return 0, err
	}
	if err := txi.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit seed of %s: %w", shape.Name, err)
	}
	return n, nil
}

func (i *Interactor) seed(ctx context.Context, shape *schema.Shape, records []schema.Record) (int64, error) {
	if err := i.CreateTable(ctx, shape); err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	stmt, columns := i.insertSQL(shape)
	i.logger.Debug("Executing SQL INSERT", zap.String("sql", stmt), zap.Int("rows", len(records)))

	var written int64
	for n, record := range records {
		args := make([]any, len(columns))
		for c, col := range columns {
			args[c] = record[col]
		}
		if _, err := i.runner().ExecContext(ctx, stmt, args...); err != nil {
			i.logger.Error("Failed to execute INSERT query", zap.Error(err), zap.String("sql", stmt))
			return 0, fmt.Errorf("failed to insert %s record %d: %w", shape.Name, n, err)
		}
		written++
	}
	return written, nil
}

func (i *Interactor) insertSQL(shape *schema.Shape) (string, []string) {
	columns := shape.FieldNames()
	quoted := make([]string, len(columns))
	for c, col := range columns {
		quoted[c] = i.quoteIdentifier(col)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);", i.tableName(shape.Name), strings.Join(quoted, ", "), placeholders), columns
}

// Load reads every record of shape's table in insertion order.
func (i *Interactor) Load(ctx context.Context, shape *schema.Shape) ([]schema.Record, error) {
	columns := shape.FieldNames()
	quoted := make([]string, len(columns))
	for c, col := range columns {
		quoted[c] = i.quoteIdentifier(col)
	}
	stmt := fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid;", strings.Join(quoted, ", "), i.tableName(shape.Name))
	i.logger.Debug("Executing SQL SELECT", zap.String("sql", stmt))

	rows, err := i.runner().QueryContext(ctx, stmt)
	if err != nil {
		i.logger.Error("Failed to execute SELECT query", zap.Error(err), zap.String("sql", stmt))
		return nil, fmt.Errorf("failed to load %s: %w", shape.Name, err)
	}
	defer rows.Close()
	return readRows(i.logger, shape, rows)
}

// StartTransaction begins a transaction and returns an Interactor scoped to it.
func (i *Interactor) StartTransaction(ctx context.Context) (*Interactor, error) {
	if i.tx != nil {
		return nil, fmt.Errorf("cannot start a new transaction from an existing transactional interactor")
	}
	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	i.logger.Debug("Transaction initiated, returning new transactional interactor")
	return NewInteractor(i.db, i.logger, i.options, tx), nil
}

// Commit commits the current transaction.
func (i *Interactor) Commit(ctx context.Context) error {
	if i.tx == nil {
		return fmt.Errorf("commit not applicable: not in a transactional context")
	}
	i.logger.Debug("Committing transaction")
	return i.tx.Commit()
}

// Rollback rolls back the current transaction.
func (i *Interactor) Rollback(ctx context.Context) error {
	if i.tx == nil {
		return fmt.Errorf("rollback not applicable: not in a transactional context")
	}
	i.logger.Debug("Rolling back transaction")
	return i.tx.Rollback()
}
