package hydrator

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/viant/hydrator/format"
	"github.com/viant/xunsafe"
)

var (
	timeType        = reflect.TypeOf(time.Time{})
	constructorType = reflect.TypeOf((*Constructor)(nil)).Elem()
	types           sync.Map //map[reflect.Type]*Type
)

type (
	//SchemeProvider declares type level scheme
	SchemeProvider interface {
		HydrationScheme() Scheme
	}

	//MappingProvider declares type level mapping
	MappingProvider interface {
		HydrationMapping() Mapping
	}

	//Initializer sets constructor defaults of a freshly allocated value
	Initializer interface {
		Init() error
	}

	//Constructor constructs a value from a single raw value
	Constructor interface {
		Construct(value interface{}) error
	}
)

// Type represents a hydrated struct type descriptor
type Type struct {
	rType       reflect.Type
	fields      []*Field
	index       map[string]int
	scheme      Scheme
	mapping     Mapping
	marker      *Marker
	initializer bool
}

// Type returns struct type
func (t *Type) Type() reflect.Type {
	return t.rType
}

// Fields returns hydrated fields
func (t *Type) Fields() []*Field {
	return t.fields
}

// Field returns a field for supplied name or nil
func (t *Type) Field(name string) *Field {
	pos, ok := t.index[name]
	if !ok {
		return nil
	}
	return t.fields[pos]
}

// Scheme returns type level scheme
func (t *Type) Scheme() Scheme {
	return t.scheme
}

// Mapping returns type level mapping, including keys declared by tags
func (t *Type) Mapping() Mapping {
	return t.mapping
}

// Marker returns presence marker or nil
func (t *Type) Marker() *Marker {
	return t.marker
}

// New returns a pointer to a freshly constructed value
func (t *Type) New() (reflect.Value, error) {
	value := reflect.New(t.rType)
	if t.initializer {
		if err := value.Interface().(Initializer).Init(); err != nil {
			return reflect.Value{}, &ConstructionError{Type: t.rType, Err: err}
		}
	}
	return value, nil
}

// LookupType returns cached type descriptor for a struct or a pointer to struct type
func LookupType(rType reflect.Type) (*Type, error) {
	structType := ensureStruct(rType)
	if structType == nil {
		return nil, &ConstructionError{Type: rType, Err: fmt.Errorf("expected struct type")}
	}
	if cached, ok := types.Load(structType); ok {
		return cached.(*Type), nil
	}
	aType, err := newType(structType)
	if err != nil {
		return nil, err
	}
	actual, _ := types.LoadOrStore(structType, aType)
	return actual.(*Type), nil
}

func newType(structType reflect.Type) (*Type, error) {
	ret := &Type{rType: structType, index: map[string]int{}}
	var markerHolder *reflect.StructField
	if err := ret.addFields(structType, &markerHolder); err != nil {
		return nil, &ConstructionError{Type: structType, Err: err}
	}
	if markerHolder != nil {
		marker, err := newMarker(*markerHolder, ret.fields)
		if err != nil {
			return nil, &ConstructionError{Type: structType, Err: err}
		}
		ret.marker = marker
	}
	for _, field := range ret.fields {
		if field.Key == "" {
			continue
		}
		if ret.mapping == nil {
			ret.mapping = Mapping{}
		}
		ret.mapping[field.Name] = field.Key
	}
	zero := reflect.New(structType).Interface()
	if provider, ok := zero.(MappingProvider); ok {
		ret.mapping = ret.mapping.Merge(provider.HydrationMapping())
	}
	if provider, ok := zero.(SchemeProvider); ok {
		scheme := provider.HydrationScheme()
		for name, rule := range scheme {
			if err := rule.validate(); err != nil {
				return nil, &ConstructionError{Type: structType, Field: name, Err: err}
			}
		}
		ret.scheme = scheme
	}
	_, ret.initializer = zero.(Initializer)
	return ret, nil
}

type embedding struct {
	structType reflect.Type
	path       []*xunsafe.Field
}

// addFields collects fields depth by depth, a name is promoted from its shallowest depth only when unique there
func (t *Type) addFields(structType reflect.Type, markerHolder **reflect.StructField) error {
	taken := map[string]bool{}
	level := []embedding{{structType: structType}}
	for depth := 0; len(level) > 0; depth++ {
		var next []embedding
		var candidates []*Field
		counts := map[string]int{}
		for _, item := range level {
			for i := 0; i < item.structType.NumField(); i++ {
				structField := item.structType.Field(i)
				if taken[structField.Name] { //shadowed by a shallower field
					continue
				}
				counts[structField.Name]++
				if structField.Anonymous && structField.Type.Kind() == reflect.Struct && structField.Type != timeType {
					tag, err := format.Parse(structField.Tag)
					if err != nil {
						return fmt.Errorf("invalid embedded %v tag: %w", structField.Name, err)
					}
					if !tag.Ignore {
						next = append(next, embedding{structType: structField.Type, path: appendPath(item.path, xunsafe.NewField(structField))})
					}
					continue
				}
				if !structField.IsExported() {
					continue
				}
				if IsSetMarker(structField.Tag) {
					if depth == 0 {
						holder := structField
						*markerHolder = &holder
					}
					continue
				}
				tag, err := format.Parse(structField.Tag)
				if err != nil {
					return fmt.Errorf("invalid field %v tag: %w", structField.Name, err)
				}
				if tag.Ignore {
					continue
				}
				field := &Field{
					Name:       structField.Name,
					Type:       structField.Type,
					TimeLayout: tag.TimeLayout,
					path:       appendPath(item.path, xunsafe.NewField(structField)),
				}
				if tag.HasName() {
					field.Key = tag.Name
				}
				candidates = append(candidates, field)
			}
		}
		for _, field := range candidates {
			if counts[field.Name] > 1 { //ambiguous selector
				continue
			}
			field.Index = len(t.fields)
			t.index[field.Name] = field.Index
			t.fields = append(t.fields, field)
		}
		for name := range counts {
			taken[name] = true
		}
		level = next
	}
	return nil
}

func appendPath(ancestors []*xunsafe.Field, field *xunsafe.Field) []*xunsafe.Field {
	result := make([]*xunsafe.Field, 0, len(ancestors)+1)
	result = append(result, ancestors...)
	return append(result, field)
}

func ensureStruct(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}
	switch t.Kind() {
	case reflect.Struct:
		return t
	case reflect.Ptr:
		return ensureStruct(t.Elem())
	}
	return nil
}

// isHydratable returns true for struct types populated field by field, time.Time and Constructor implementations are constructed instead
func isHydratable(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || t == timeType {
		return false
	}
	return !reflect.PointerTo(t).Implements(constructorType)
}
