package hydrator

import (
	"fmt"
	"reflect"
)

// ConstructionError reports a type that could not be constructed, Field names the populated field if any
type ConstructionError struct {
	Type  reflect.Type
	Field string
	Err   error
}

func (e *ConstructionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("failed to construct %v: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("failed to construct %v for field %v: %v", e.Type, e.Field, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// TransformError reports a filter or a scheme transform failure for Type field
type TransformError struct {
	Type  reflect.Type
	Field string
	Err   error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("failed to transform %v.%v: %v", e.Type, e.Field, e.Err)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}
