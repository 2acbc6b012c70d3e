package visitor

import (
	"fmt"
	"reflect"
)

// MapOf creates a string keyed visitor for any map value, non string keys are formatted with fmt.Sprint
func MapOf(value interface{}) (Visitor[string, interface{}], error) {
	switch actual := value.(type) {
	case map[string]interface{}:
		return TypedMapOf[string, interface{}](actual), nil
	case map[interface{}]interface{}:
		return TypedMapOf[interface{}, interface{}](actual), nil
	case map[string]string:
		return TypedMapOf[string, string](actual), nil
	case map[string]int:
		return TypedMapOf[string, int](actual), nil
	case map[string]bool:
		return TypedMapOf[string, bool](actual), nil
	case map[string]float64:
		return TypedMapOf[string, float64](actual), nil
	case map[int]interface{}:
		return TypedMapOf[int, interface{}](actual), nil
	}
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Map {
		return nil, fmt.Errorf("expected map, got %T", value)
	}
	return func(f func(key string, element interface{}) (bool, error)) error {
		iter := val.MapRange()
		for iter.Next() {
			continueVisit, err := f(keyOf(iter.Key().Interface()), iter.Value().Interface())
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

// TypedMapOf creates a string keyed visitor for typed map
func TypedMapOf[K comparable, V any](aMap map[K]V) Visitor[string, interface{}] {
	return func(f func(key string, element interface{}) (bool, error)) error {
		for k, e := range aMap {
			continueVisit, err := f(keyOf(k), e)
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

// IsMap returns true if value is a map
func IsMap(value interface{}) bool {
	switch value.(type) {
	case map[string]interface{}, map[interface{}]interface{}:
		return true
	case nil:
		return false
	}
	return reflect.TypeOf(value).Kind() == reflect.Map
}

func keyOf(key interface{}) string {
	if text, ok := key.(string); ok {
		return text
	}
	return fmt.Sprint(key)
}
