package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/asaidimu/go-lister/core/schema"
)

// Options controls how shapes are mapped to tables.
type Options struct {
	// TablePrefix is prepended to every table name.
	TablePrefix string
	// IfNotExists makes CreateTable a no-op for existing tables.
	IfNotExists bool
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() *Options {
	return &Options{IfNotExists: true}
}

// quoteIdentifier quotes a table or column name so that keywords and
// punctuation in field names are safe to use.
func (i *Interactor) quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// tableName returns the quoted, prefixed table name for a shape.
func (i *Interactor) tableName(baseName string) string {
	return i.quoteIdentifier(i.options.TablePrefix + baseName)
}

// CreateTable creates the table backing a shape.
func (i *Interactor) CreateTable(ctx context.Context, shape *schema.Shape) error {
	stmt, err := i.CreateTableSQL(shape)
	if err != nil {
		return fmt.Errorf("failed to generate SQL for table %s: %w", shape.Name, err)
	}
	if _, err := i.runner().ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to execute SQL statement '%s': %w", stmt, err)
	}
	return nil
}

// CreateTableSQL generates the DDL for a shape. The identifier column is UNIQUE
// NOT NULL and never the primary key, so rowid order stays insertion order.
// Enum fields get a CHECK constraint.
func (i *Interactor) CreateTableSQL(shape *schema.Shape) (string, error) {
	if shape == nil || len(shape.Fields) == 0 {
		return "", fmt.Errorf("shape has no fields")
	}
	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	if i.options.IfNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(i.tableName(shape.Name) + " (\n")

	var columns []string
	for _, name := range shape.FieldNames() {
		columnDef, err := i.buildColumnDefinition(name, shape.Fields[name], name == shape.Identity())
		if err != nil {
			return "", fmt.Errorf("error on field '%s': %w", name, err)
		}
		columns = append(columns, "    "+columnDef)
	}
	sb.WriteString(strings.Join(columns, ",\n"))
	sb.WriteString("\n);")
	return sb.String(), nil
}

// buildColumnDefinition constructs the DDL for a single column.
func (i *Interactor) buildColumnDefinition(name string, field *schema.FieldDefinition, identity bool) (string, error) {
	parts := []string{i.quoteIdentifier(name), ColumnType(field.Type)}

	if identity || (field.Required != nil && *field.Required) {
		parts = append(parts, "NOT NULL")
	}
	if identity {
		parts = append(parts, "UNIQUE")
	}
	if field.Type == schema.FieldTypeEnum && len(field.Values) > 0 {
		checkValues := make([]string, 0, len(field.Values))
		for _, v := range field.Values {
			literal, err := formatLiteral(v)
			if err != nil {
				return "", err
			}
			checkValues = append(checkValues, literal)
		}
		parts = append(parts, fmt.Sprintf("CHECK(%s IN (%s))", i.quoteIdentifier(name), strings.Join(checkValues, ", ")))
	}
	return strings.Join(parts, " "), nil
}

// ColumnType maps a field type to its SQLite column type.
func ColumnType(fieldType schema.FieldType) string {
	switch fieldType {
	case schema.FieldTypeString, schema.FieldTypeEnum:
		return "TEXT"
	case schema.FieldTypeNumber:
		return "REAL"
	case schema.FieldTypeInteger, schema.FieldTypeBoolean:
		return "INTEGER"
	default:
		return "BLOB"
	}
}

// formatLiteral renders an enum value as a SQL literal.
func formatLiteral(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "NULL", nil
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'", nil
	case bool:
		if v {
			return "1", nil
		}
		return "0", nil
	}
	if _, ok := schema.Number(value); ok {
		return fmt.Sprintf("%v", value), nil
	}
	return "", fmt.Errorf("unsupported enum value %v (%T)", value, value)
}

// DropTable drops the table backing a shape.
func (i *Interactor) DropTable(ctx context.Context, name string) error {
	table := i.tableName(name)
	if _, err := i.runner().ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s;", table)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", table, err)
	}
	return nil
}

// TableExists reports whether the table backing a shape exists.
func (i *Interactor) TableExists(ctx context.Context, name string) (bool, error) {
	var found string
	err := i.runner().QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name = ?;",
		i.options.TablePrefix+name,
	).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
