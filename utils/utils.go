// Package utils converts between typed Go values and the schema.Record form
// the listing engine works on.
package utils

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/asaidimu/go-lister/core/schema"
)

// StructToRecord converts a Go struct into a schema.Record.
//
// The struct is marshaled to JSON and decoded back into a map, so `json:"tag"`
// annotations decide the field names and `omitempty` fields that are empty are
// absent from the record. Numbers come back as float64, which the engine
// compares by value, so an int field still matches an int filter.
//
// The input must be a struct or a non-nil pointer to a struct.
//
// Example:
//
//	type User struct {
//		ID     int    `json:"id"`
//		Name   string `json:"name"`
//		Status string `json:"status"`
//	}
//	record, err := StructToRecord(User{ID: 1, Name: "Alex Johnson", Status: "active"})
//	// record is schema.Record{"id": 1.0, "name": "Alex Johnson", "status": "active"}
func StructToRecord[T any](value T) (schema.Record, error) {
	val := reflect.ValueOf(value)

	if !val.IsValid() {
		return nil, fmt.Errorf("input value cannot be nil")
	}
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, fmt.Errorf("input value cannot be a nil pointer to a struct")
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("input value must be a struct or a pointer to a struct, got %s", val.Kind())
	}

	jsonBytes, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("StructToRecord: failed to marshal input to JSON: %w", err)
	}

	var record schema.Record
	if err := json.Unmarshal(jsonBytes, &record); err != nil {
		return nil, fmt.Errorf("StructToRecord: failed to unmarshal JSON to record: %w", err)
	}
	return record, nil
}

// StructsToRecords converts a slice of structs, keeping their order.
func StructsToRecords[T any](values []T) ([]schema.Record, error) {
	records := make([]schema.Record, 0, len(values))
	for i, v := range values {
		record, err := StructToRecord(v)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// RecordToStruct is the inverse of StructToRecord: it converts a record into a
// new instance of the struct type T.
//
// T must be a struct type or a pointer to a struct type. Record fields without
// a matching struct field are ignored.
//
// Example:
//
//	user, err := RecordToStruct[User](schema.Record{"id": 1, "name": "Alex Johnson"})
//	// user is User{ID: 1, Name: "Alex Johnson"}
func RecordToStruct[T any](record schema.Record) (T, error) {
	var zero T

	if record == nil {
		return zero, fmt.Errorf("RecordToStruct: input record cannot be nil")
	}

	typ := reflect.TypeOf(zero)
	if typ == nil {
		return zero, fmt.Errorf("RecordToStruct: generic type T must be a struct type, got interface")
	}
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return zero, fmt.Errorf("RecordToStruct: generic type T must be a struct type (or pointer to struct), got %s", typ.Kind())
	}

	jsonBytes, err := json.Marshal(record)
	if err != nil {
		return zero, fmt.Errorf("RecordToStruct: failed to marshal record to JSON: %w", err)
	}

	var result T
	if err := json.Unmarshal(jsonBytes, &result); err != nil {
		return zero, fmt.Errorf("RecordToStruct: failed to unmarshal JSON to target struct: %w", err)
	}
	return result, nil
}
