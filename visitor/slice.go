package visitor

import (
	"fmt"
	"reflect"
)

// SliceOf creates a positional visitor for any slice or array value
func SliceOf(value interface{}) (Visitor[int, interface{}], error) {
	switch actual := value.(type) {
	case []interface{}:
		return TypedSliceOf[interface{}](actual), nil
	case []map[string]interface{}:
		return TypedSliceOf[map[string]interface{}](actual), nil
	case []string:
		return TypedSliceOf[string](actual), nil
	case []int:
		return TypedSliceOf[int](actual), nil
	case []float64:
		return TypedSliceOf[float64](actual), nil
	case []bool:
		return TypedSliceOf[bool](actual), nil
	}
	val := reflect.ValueOf(value)
	switch val.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, fmt.Errorf("expected slice, got %T", value)
	}
	return func(f func(key int, element interface{}) (bool, error)) error {
		for i := 0; i < val.Len(); i++ {
			continueVisit, err := f(i, val.Index(i).Interface())
			if err != nil {
				return err
			}
			if !continueVisit {
				break
			}
		}
		return nil
	}, nil
}

// TypedSliceOf creates a positional visitor for typed slice
func TypedSliceOf[E any](slice []E) Visitor[int, interface{}] {
	return func(f func(key int, element interface{}) (bool, error)) error {
		for i, e := range slice {
			continueVisit, err := f(i, e)
			if err != nil {
				return err
			}
			if !continueVisit {
				break
			}
		}
		return nil
	}
}

// IsSequence returns true if value is a slice or an array, []byte is not a sequence
func IsSequence(value interface{}) bool {
	switch value.(type) {
	case nil, []byte:
		return false
	case []interface{}:
		return true
	}
	kind := reflect.TypeOf(value).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

// Len returns sequence length or -1
func Len(value interface{}) int {
	if !IsSequence(value) {
		return -1
	}
	return reflect.ValueOf(value).Len()
}
