package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func userShape() *Shape {
	return &Shape{
		Name: "users",
		Fields: map[string]*FieldDefinition{
			"id":     {Name: "id", Type: FieldTypeInteger, Required: boolPtr(true)},
			"name":   {Name: "name", Type: FieldTypeString, Required: boolPtr(true)},
			"email":  {Name: "email", Type: FieldTypeString},
			"status": {Name: "status", Type: FieldTypeEnum, Values: []any{"active", "inactive", "suspended"}},
			"score":  {Name: "score", Type: FieldTypeNumber},
			"admin":  {Name: "admin", Type: FieldTypeBoolean},
		},
		SearchFields: []string{"name", "email"},
	}
}

func TestShape_Identity(t *testing.T) {
	assert.Equal(t, "id", userShape().Identity())
	assert.Equal(t, "code", (&Shape{IDField: "code"}).Identity())
	var nilShape *Shape
	assert.Equal(t, DefaultIDField, nilShape.Identity())
}

func TestShape_FieldNames(t *testing.T) {
	names := userShape().FieldNames()
	assert.Equal(t, []string{"id", "admin", "email", "name", "score", "status"}, names)
}

func TestRecord_WithDoesNotMutate(t *testing.T) {
	original := Record{"id": 1, "status": "active"}
	next := original.With(map[string]any{"status": "inactive"})

	assert.Equal(t, "active", original["status"])
	assert.Equal(t, "inactive", next["status"])
	assert.Equal(t, 1, next["id"])
}

func TestKeyOf(t *testing.T) {
	assert.Equal(t, KeyOf(1), KeyOf(int64(1)))
	assert.Equal(t, KeyOf(1), KeyOf(1.0))
	assert.NotEqual(t, KeyOf(1), KeyOf("1"))
	assert.Equal(t, "", KeyOf(nil))
	assert.Equal(t, "", KeyOf([]int{1}))
}

func TestValidator_Validate(t *testing.T) {
	v := NewValidator(userShape())

	tests := []struct {
		name  string
		data  Record
		loose bool
		valid bool
		code  string
	}{
		{"valid record", Record{"id": 1, "name": "Alex", "status": "active", "score": 9.5, "admin": false}, false, true, ""},
		{"integral float id", Record{"id": 2.0, "name": "Emma"}, false, true, ""},
		{"missing required", Record{"id": 1}, false, false, "REQUIRED_FIELD_MISSING"},
		{"missing required loose", Record{"id": 1}, true, true, ""},
		{"wrong type", Record{"id": 1, "name": 42}, false, false, "TYPE_MISMATCH"},
		{"fractional id", Record{"id": 1.5, "name": "x"}, false, false, "TYPE_MISMATCH"},
		{"bad enum", Record{"id": 1, "name": "x", "status": "banned"}, false, false, "INVALID_ENUM_VALUE"},
		{"unexpected field", Record{"id": 1, "name": "x", "extra": true}, false, false, "UNEXPECTED_FIELD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.data, tt.loose)
			assert.Equal(t, tt.valid, result.Valid)
			if tt.code != "" {
				require.NotEmpty(t, result.Issues)
				assert.Equal(t, tt.code, result.Issues[0].Code)
			}
		})
	}
}

func TestValidator_ValidateDataset(t *testing.T) {
	v := NewValidator(userShape())

	t.Run("valid dataset", func(t *testing.T) {
		err := v.ValidateDataset([]Record{
			{"id": 1, "name": "Alex"},
			{"id": 2, "name": "Sarah"},
		})
		assert.NoError(t, err)
	})

	t.Run("empty dataset", func(t *testing.T) {
		assert.NoError(t, v.ValidateDataset(nil))
	})

	t.Run("missing id", func(t *testing.T) {
		err := v.ValidateDataset([]Record{{"name": "Alex"}})
		assert.ErrorIs(t, err, ErrMissingID)
	})

	t.Run("duplicate id across numeric types", func(t *testing.T) {
		err := v.ValidateDataset([]Record{
			{"id": 1, "name": "Alex"},
			{"id": 1.0, "name": "Alex again"},
		})
		assert.ErrorIs(t, err, ErrDuplicateID)
	})

	t.Run("invalid record", func(t *testing.T) {
		err := v.ValidateDataset([]Record{{"id": 1, "name": true}})
		assert.ErrorIs(t, err, ErrInvalidRecord)
	})
}
