package conv

import (
	"reflect"
	"strconv"

	"github.com/viant/hydrator/visitor"
)

// AsMap coerces value into a string keyed map:
// nil is an empty map, maps keep their entries with keys formatted as text,
// structs expose their exported fields, sequences use positional keys ("0", "1", ...),
// and any other value is wrapped as {"0": value}.
func AsMap(value interface{}) (map[string]interface{}, error) {
	switch actual := value.(type) {
	case nil:
		return map[string]interface{}{}, nil
	case map[string]interface{}:
		return actual, nil
	}
	if rValue := reflect.ValueOf(value); rValue.Kind() == reflect.Ptr && rValue.IsNil() {
		return map[string]interface{}{}, nil
	}
	if visitor.IsMap(value) {
		visit, err := visitor.MapOf(value)
		if err != nil {
			return nil, err
		}
		return visit.Collect()
	}
	if visitor.IsSequence(value) {
		visit, err := visitor.SliceOf(value)
		if err != nil {
			return nil, err
		}
		result := make(map[string]interface{}, visitor.Len(value))
		err = visit(func(index int, element interface{}) (bool, error) {
			result[strconv.Itoa(index)] = element
			return true, nil
		})
		return result, err
	}
	if isStruct(value) {
		visit, err := visitor.StructOf(value)
		if err != nil {
			return nil, err
		}
		return visit.Collect()
	}
	return map[string]interface{}{"0": value}, nil
}

func isStruct(value interface{}) bool {
	rType := reflect.TypeOf(value)
	if rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	return rType.Kind() == reflect.Struct && rType != timeType
}
