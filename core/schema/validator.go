package schema

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Errors reported when a dataset does not satisfy its shape. They are
// integration errors: the static datasets handed to the engine are expected to
// be correct, so these surface when a dataset is loaded, never per query.
var (
	ErrMissingID     = errors.New("record has no identifier")
	ErrDuplicateID   = errors.New("duplicate record identifier")
	ErrInvalidRecord = errors.New("record does not conform to shape")
)

// Validator checks records against a Shape. It checks field types, enum
// membership, required fields and identifier presence/uniqueness.
type Validator struct {
	shape  *Shape
	issues []Issue
}

// NewValidator creates a new Validator for the given shape. The returned
// validator can be reused for multiple validation operations.
func NewValidator(shape *Shape) *Validator {
	return &Validator{
		shape:  shape,
		issues: make([]Issue, 0),
	}
}

// Validate checks a single record. The `loose` parameter ignores missing
// required fields, which is what partial updates need.
func (v *Validator) Validate(data Record, loose bool) ValidationResult {
	v.issues = make([]Issue, 0)
	v.validateData(data, "")

	issues := v.issues
	if loose {
		issues = slices.DeleteFunc(slices.Clone(issues), func(issue Issue) bool {
			return issue.Code == "REQUIRED_FIELD_MISSING"
		})
	}
	return ValidationResult{Valid: len(issues) == 0, Issues: issues}
}

// ValidateDataset checks every record and the identifier invariant: each
// record must carry an identifier that is unique within the dataset.
func (v *Validator) ValidateDataset(records []Record) error {
	id := v.shape.Identity()
	seen := make(map[string]int, len(records))

	for i, record := range records {
		value, ok := record[id]
		key := KeyOf(value)
		if !ok || key == "" {
			return fmt.Errorf("%s[%d]: %w (field %q)", v.shape.Name, i, ErrMissingID, id)
		}
		if first, dup := seen[key]; dup {
			return fmt.Errorf("%s[%d]: %w %v (first seen at %d)", v.shape.Name, i, ErrDuplicateID, value, first)
		}
		seen[key] = i

		result := v.Validate(record, false)
		if !result.Valid {
			issue := result.Issues[0]
			return fmt.Errorf("%s[%d]: %w: %s", v.shape.Name, i, ErrInvalidRecord, issue.Message)
		}
	}
	return nil
}

// validateData checks all fields in the data.
func (v *Validator) validateData(data Record, path string) {
	for fieldName, fieldDef := range v.shape.Fields {
		fieldPath := v.buildPath(path, fieldName)
		value, exists := data[fieldName]

		if fieldDef.Required != nil && *fieldDef.Required && !exists {
			v.addIssue("REQUIRED_FIELD_MISSING", fmt.Sprintf("Required field '%s' is missing", fieldName), fieldPath)
			continue
		}
		if !exists {
			continue
		}
		v.validateFieldValue(value, fieldDef, fieldPath)
	}

	for dataKey := range data {
		if !v.shape.HasField(dataKey) {
			v.addIssue("UNEXPECTED_FIELD", fmt.Sprintf("Unexpected field '%s' not defined in shape", dataKey), v.buildPath(path, dataKey))
		}
	}
}

// validateFieldValue validates a single field's value against its definition.
func (v *Validator) validateFieldValue(value any, fieldDef *FieldDefinition, path string) {
	if value == nil {
		if fieldDef.Required != nil && *fieldDef.Required {
			v.addIssue("NULL_VALUE", "Field cannot be null", path)
		}
		return
	}

	switch fieldDef.Type {
	case FieldTypeString:
		if _, ok := value.(string); !ok {
			v.addIssue("TYPE_MISMATCH", fmt.Sprintf("Expected string, got %T", value), path)
		}
	case FieldTypeNumber:
		if !isNumericType(value) {
			v.addIssue("TYPE_MISMATCH", fmt.Sprintf("Expected number, got %T", value), path)
		}
	case FieldTypeInteger:
		if !isIntegerType(value) {
			v.addIssue("TYPE_MISMATCH", fmt.Sprintf("Expected integer, got %T", value), path)
		}
	case FieldTypeBoolean:
		if _, ok := value.(bool); !ok {
			v.addIssue("TYPE_MISMATCH", fmt.Sprintf("Expected boolean, got %T", value), path)
		}
	case FieldTypeEnum:
		if len(fieldDef.Values) > 0 {
			v.validateEnumValue(value, fieldDef.Values, path)
		}
	}
}

// validateEnumValue checks that value is one of the allowed values.
func (v *Validator) validateEnumValue(value any, allowed []any, path string) {
	key := KeyOf(value)
	for _, candidate := range allowed {
		if KeyOf(candidate) == key {
			return
		}
	}
	v.addIssue("INVALID_ENUM_VALUE", fmt.Sprintf("Value '%v' is not one of %v", value, allowed), path)
}

// isNumericType checks if a value is a numeric type.
func isNumericType(value any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	}
	return false
}

// isIntegerType checks if a value is a whole number. Records decoded from JSON
// carry float64, so integral floats count.
func isIntegerType(value any) bool {
	switch val := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float64:
		return val == math.Trunc(val)
	case float32:
		return float64(val) == math.Trunc(float64(val))
	}
	return false
}

// buildPath constructs a dot-separated path string for error reporting.
func (v *Validator) buildPath(basePath, fieldName string) string {
	if basePath == "" {
		return fieldName
	}
	return basePath + "." + fieldName
}

// addIssue adds a new validation issue to the validator's list of issues.
func (v *Validator) addIssue(code, message, path string) {
	v.issues = append(v.issues, Issue{
		Code:     code,
		Message:  message,
		Path:     path,
		Severity: "error",
	})
}
