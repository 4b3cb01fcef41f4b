// Package schema describes the records held by list screens: which fields a
// record shape carries, what type each field has, which field identifies a
// record and which fields the free-text search looks at by default.
package schema

import (
	"maps"
	"slices"
	"strconv"
)

// FieldType represents the primitive field types a record may carry.
type FieldType string

const (
	FieldTypeString  FieldType = "string"  // Text data
	FieldTypeNumber  FieldType = "number"  // Numeric data
	FieldTypeInteger FieldType = "integer" // Whole numbers
	FieldTypeBoolean FieldType = "boolean" // True/false values
	FieldTypeEnum    FieldType = "enum"    // One out of a set of pre-defined values (statuses, roles)
)

// DefaultIDField is used when a Shape does not name its identifier field.
const DefaultIDField = "id"

// Record is a single structured value with named primitive fields. Records are
// treated as immutable: every change produces a new Record.
type Record map[string]any

// Get returns the value stored under field and whether it was present.
func (r Record) Get(field string) (any, bool) {
	v, ok := r[field]
	return v, ok
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}

// With returns a copy of the record with patch applied on top. The receiver is
// left untouched.
func (r Record) With(patch map[string]any) Record {
	next := make(Record, len(r)+len(patch))
	maps.Copy(next, r)
	maps.Copy(next, patch)
	return next
}

// FieldDefinition defines a field within a shape.
type FieldDefinition struct {
	Name string    `json:"name" toml:"name"`
	Type FieldType `json:"type" toml:"type"`
	// Required indicates if the field is mandatory.
	Required *bool `json:"required,omitempty" toml:"required,omitempty"`
	// Values specifies the allowed values for an 'enum' type field.
	Values []any `json:"values,omitempty" toml:"values,omitempty"`
	// Description provides a brief explanation of the field.
	Description *string `json:"description,omitempty" toml:"description,omitempty"`
}

// Shape defines the structure shared by every record of one dataset, e.g. all
// courses or all payments.
type Shape struct {
	Name        string                      `json:"name" toml:"name"`
	Description *string                     `json:"description,omitempty" toml:"description,omitempty"`
	IDField     string                      `json:"idField,omitempty" toml:"id_field,omitempty"`
	Fields      map[string]*FieldDefinition `json:"fields" toml:"fields"`
	// SearchFields are the fields a free-text search inspects when the caller
	// does not name any.
	SearchFields []string `json:"searchFields,omitempty" toml:"search_fields,omitempty"`
}

// Identity returns the name of the field holding the record identifier.
func (s *Shape) Identity() string {
	if s == nil || s.IDField == "" {
		return DefaultIDField
	}
	return s.IDField
}

// FindField returns the definition of the named field, or nil.
func (s *Shape) FindField(name string) *FieldDefinition {
	if s == nil {
		return nil
	}
	if field, ok := s.Fields[name]; ok {
		return field
	}
	for _, field := range s.Fields {
		if field.Name == name {
			return field
		}
	}
	return nil
}

// HasField reports whether the shape defines the named field.
func (s *Shape) HasField(name string) bool {
	return s.FindField(name) != nil
}

// FieldNames returns the shape's field names in a deterministic order, with the
// identifier field first.
func (s *Shape) FieldNames() []string {
	id := s.Identity()
	names := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		if name != id {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	if _, ok := s.Fields[id]; ok {
		names = append([]string{id}, names...)
	}
	return names
}

// KeyOf normalizes an identifier value into a comparable key so that 1, int64(1)
// and 1.0 identify the same record. Unsupported types yield "".
func KeyOf(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return "s:" + val
	case bool:
		return "b:" + strconv.FormatBool(val)
	}
	if n, ok := Number(v); ok {
		return "n:" + strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}

// Number converts any Go numeric value to float64. Strings are not parsed.
func Number(v any) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case float32:
		return float64(val), true
	case float64:
		return val, true
	default:
		return 0, false
	}
}

// Issue represents a validation problem found in a record or dataset.
type Issue struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Path     string `json:"path,omitempty"`
	Severity string `json:"severity,omitempty"` // e.g., "error", "warning"
}

// ValidationResult is the outcome of validating one record.
type ValidationResult struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues"`
}
