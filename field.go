package hydrator

import (
	"reflect"
	"unsafe"

	"github.com/viant/tagly/format/text"
	"github.com/viant/xunsafe"
)

// Field represents a hydrated field, promoted fields of embedded structs are addressed through their path
type Field struct {
	Name       string
	Key        string //key declared by tag
	Type       reflect.Type
	TimeLayout string
	Index      int
	path       []*xunsafe.Field
}

// Pointer returns field pointer for supplied owner pointer
func (f *Field) Pointer(ptr unsafe.Pointer) unsafe.Pointer {
	for _, field := range f.path {
		ptr = field.Pointer(ptr)
	}
	return ptr
}

// Value returns field value
func (f *Field) Value(ptr unsafe.Pointer) interface{} {
	return f.value(ptr).Interface()
}

// Set sets field value, value has to be assignable to the field type
func (f *Field) Set(ptr unsafe.Pointer, value reflect.Value) {
	f.value(ptr).Set(value)
}

func (f *Field) value(ptr unsafe.Pointer) reflect.Value {
	return reflect.NewAt(f.Type, f.Pointer(ptr)).Elem()
}

// FormatName formats field name with supplied case format
func (f *Field) FormatName(caseFormat text.CaseFormat) string {
	if !caseFormat.IsDefined() {
		return f.Name
	}
	return text.CaseFormatUpperCamel.Format(f.Name, caseFormat)
}
