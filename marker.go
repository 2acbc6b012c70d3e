package hydrator

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/viant/xunsafe"
)

// SetMarkerTag defines presence marker holder tag
const SetMarkerTag = "setMarker"

// IsSetMarker returns true if tag defines presence marker holder
func IsSetMarker(tag reflect.StructTag) bool {
	value, ok := tag.Lookup(SetMarkerTag)
	return ok && value != "false"
}

// Marker records hydrated fields in a holder struct of bool flags named after the owner fields, i.e.
//
//	type Entity struct {
//		Id   int
//		Name string
//		Has  *EntityHas `setMarker:"true"`
//	}
type Marker struct {
	holder     *xunsafe.Field
	holderType reflect.Type
	fields     []*xunsafe.Field //aligned with owner fields, nil for fields without a flag
	index      map[string]int
}

// Set flags field at index as set, it allocates the holder if needed
func (m *Marker) Set(ptr unsafe.Pointer, index int) error {
	if index < 0 || index >= len(m.fields) {
		return fmt.Errorf("field at index %v was missing in set marker", index)
	}
	if m.fields[index] == nil {
		return nil
	}
	m.fields[index].SetBool(m.ensureHolder(ptr), true)
	return nil
}

// IsSet returns true if named field was flagged
func (m *Marker) IsSet(ptr unsafe.Pointer, name string) bool {
	pos, ok := m.index[name]
	if !ok || m.fields[pos] == nil {
		return false
	}
	holder := reflect.NewAt(m.holder.Type, m.holder.Pointer(ptr)).Elem()
	if holder.IsNil() {
		return false
	}
	return m.fields[pos].Bool(holder.UnsafePointer())
}

func (m *Marker) ensureHolder(ptr unsafe.Pointer) unsafe.Pointer {
	holder := reflect.NewAt(m.holder.Type, m.holder.Pointer(ptr)).Elem()
	if holder.IsNil() {
		holder.Set(reflect.New(m.holderType))
	}
	return holder.UnsafePointer()
}

func newMarker(holder reflect.StructField, fields []*Field) (*Marker, error) {
	if holder.Type.Kind() != reflect.Ptr || holder.Type.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("marker holder %v has to be a pointer to struct, but had %v", holder.Name, holder.Type)
	}
	ret := &Marker{
		holder:     xunsafe.NewField(holder),
		holderType: holder.Type.Elem(),
		fields:     make([]*xunsafe.Field, len(fields)),
		index:      make(map[string]int, len(fields)),
	}
	for _, field := range fields {
		ret.index[field.Name] = field.Index
	}
	for i := 0; i < ret.holderType.NumField(); i++ {
		markerField := ret.holderType.Field(i)
		pos, ok := ret.index[markerField.Name]
		if !ok {
			continue
		}
		if markerField.Type.Kind() != reflect.Bool {
			return nil, fmt.Errorf("marker field %v has to be bool, but had %v", markerField.Name, markerField.Type)
		}
		ret.fields[pos] = xunsafe.NewField(markerField)
	}
	return ret, nil
}
