package visitor

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	"github.com/viant/xunsafe"
)

var structCache sync.Map //map[reflect.Type][]*xunsafe.Field

// StructOf creates a visitor over exported fields of a struct or a pointer to struct
func StructOf(value interface{}) (Visitor[string, interface{}], error) {
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Ptr:
		if rValue.IsNil() || rValue.Elem().Kind() != reflect.Struct {
			return nil, fmt.Errorf("expected struct or pointer to struct, got %T", value)
		}
	case reflect.Struct:
		holder := reflect.New(rValue.Type())
		holder.Elem().Set(rValue)
		rValue = holder
	default:
		return nil, fmt.Errorf("expected struct or pointer to struct, got %T", value)
	}
	fields := exportedFields(rValue.Type().Elem())
	ptr := rValue.UnsafePointer()
	return func(f func(key string, element interface{}) (bool, error)) error {
		return visitFields(ptr, fields, f)
	}, nil
}

func visitFields(ptr unsafe.Pointer, fields []*xunsafe.Field, f func(key string, element interface{}) (bool, error)) error {
	for _, field := range fields {
		value := reflect.NewAt(field.Type, field.Pointer(ptr)).Elem().Interface()
		continueVisit, err := f(field.Name, value)
		if err != nil {
			return err
		}
		if !continueVisit {
			break
		}
	}
	return nil
}

func exportedFields(structType reflect.Type) []*xunsafe.Field {
	if cached, ok := structCache.Load(structType); ok {
		return cached.([]*xunsafe.Field)
	}
	var fields []*xunsafe.Field
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}
		fields = append(fields, xunsafe.NewField(field))
	}
	structCache.Store(structType, fields)
	return fields
}
