package hydrator

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/viant/hydrator/conv"
	"github.com/viant/hydrator/visitor"
)

// Hydrate returns a new T populated from data.
// Each field is looked up under its mapped key (call mapping, type mapping, tag, case formatted or plain field name),
// filtered, then resolved with the merged scheme; fields without a matching key keep their constructor defaults.
func Hydrate[T any](data map[string]interface{}, opts ...Option) (*T, error) {
	rType := reflect.TypeOf((*T)(nil)).Elem()
	if rType.Kind() != reflect.Struct {
		return nil, &ConstructionError{Type: rType, Err: fmt.Errorf("expected struct type")}
	}
	value, err := hydrateType(rType, data, newOptions(opts))
	if err != nil {
		return nil, err
	}
	return value.Interface().(*T), nil
}

// HydrateType returns a pointer to a new rType value populated from data
func HydrateType(rType reflect.Type, data map[string]interface{}, opts ...Option) (interface{}, error) {
	value, err := hydrateType(rType, data, newOptions(opts))
	if err != nil {
		return nil, err
	}
	return value.Interface(), nil
}

func hydrateType(rType reflect.Type, data map[string]interface{}, options *options) (reflect.Value, error) {
	aType, err := LookupType(rType)
	if err != nil {
		return reflect.Value{}, err
	}
	for name, rule := range options.scheme {
		if err = rule.validate(); err != nil {
			return reflect.Value{}, &ConstructionError{Type: aType.rType, Field: name, Err: err}
		}
	}
	return options.hydrate(aType, data)
}

func (o *options) nested() *options {
	return &options{filter: o.filter, caseFormat: o.caseFormat, converter: o.converter}
}

func (o *options) hydrate(aType *Type, data map[string]interface{}) (reflect.Value, error) {
	value, err := aType.New()
	if err != nil {
		return reflect.Value{}, err
	}
	ptr := value.UnsafePointer()
	scheme := aType.scheme.Merge(o.scheme)
	mapping := aType.mapping.Merge(o.mapping)
	for _, field := range aType.fields {
		raw, ok := data[o.key(field, mapping)]
		if !ok {
			continue
		}
		fieldValue, err := o.resolve(aType, field, ptr, raw, scheme)
		if err != nil {
			return reflect.Value{}, err
		}
		field.Set(ptr, fieldValue)
		if aType.marker != nil {
			if err = aType.marker.Set(ptr, field.Index); err != nil {
				return reflect.Value{}, &ConstructionError{Type: aType.rType, Field: field.Name, Err: err}
			}
		}
	}
	return value, nil
}

func (o *options) key(field *Field, mapping Mapping) string {
	if key, ok := mapping[field.Name]; ok {
		return key
	}
	return field.FormatName(o.caseFormat)
}

func (o *options) resolve(aType *Type, field *Field, ptr unsafe.Pointer, raw interface{}, scheme Scheme) (reflect.Value, error) {
	value := raw
	if o.filter != nil {
		var err error
		if value, err = o.filter(raw, field.Name, field.Value(ptr)); err != nil {
			return reflect.Value{}, &TransformError{Type: aType.rType, Field: field.Name, Err: err}
		}
	}
	rule, ok := scheme[field.Name]
	if !ok {
		return o.assign(field, value)
	}
	switch rule.kind {
	case RuleTransform:
		result, err := rule.transform(value)
		if err != nil {
			return reflect.Value{}, &TransformError{Type: aType.rType, Field: field.Name, Err: err}
		}
		return o.fit(field, result)
	default:
		if field.Type.Kind() == reflect.Slice && visitor.IsSequence(value) {
			itemType := rule.rType
			if isSliceOf(itemType, field.Type) {
				itemType = itemType.Elem()
			}
			return o.sequence(field, itemType, value, rule.kind)
		}
		item, err := o.build(field, rule.rType, value, rule.kind == RuleNested)
		if err != nil {
			return reflect.Value{}, err
		}
		return o.fit(field, item)
	}
}

// assign assigns value directly, hydratable fields (and slices of them) given maps are hydrated by convention
func (o *options) assign(field *Field, value interface{}) (reflect.Value, error) {
	if isHydratable(field.Type) && visitor.IsMap(value) {
		item, err := o.build(field, field.Type, value, true)
		if err != nil {
			return reflect.Value{}, err
		}
		return o.fit(field, item)
	}
	if field.Type.Kind() == reflect.Slice && isHydratable(field.Type.Elem()) && visitor.IsSequence(value) {
		return o.sequence(field, field.Type.Elem(), value, 0)
	}
	return o.fit(field, value)
}

// build hydrates itemType from value coerced to a map when nested and itemType is hydratable, otherwise constructs itemType from value
func (o *options) build(field *Field, itemType reflect.Type, value interface{}, nested bool) (interface{}, error) {
	if nested && isHydratable(itemType) {
		data, err := conv.AsMap(value)
		if err != nil {
			return nil, &ConstructionError{Type: itemType, Field: field.Name, Err: err}
		}
		nestedType, err := LookupType(itemType)
		if err != nil {
			return nil, err
		}
		result, err := o.nested().hydrate(nestedType, data)
		if err != nil {
			return nil, err
		}
		return result.Interface(), nil
	}
	result, err := o.construct(field, itemType, value)
	if err != nil {
		return nil, &ConstructionError{Type: itemType, Field: field.Name, Err: err}
	}
	return result.Interface(), nil
}

// construct constructs itemType with value as its sole argument
func (o *options) construct(field *Field, itemType reflect.Type, value interface{}) (reflect.Value, error) {
	if itemType.Kind() == reflect.Ptr {
		itemType = itemType.Elem()
	}
	result := reflect.New(itemType)
	if constructor, ok := result.Interface().(Constructor); ok {
		return result, constructor.Construct(value)
	}
	return result, o.converter.Convert(value, result.Interface(), o.convertOptions(field)...)
}

// sequence builds field slice item by item, without a rule kind only map items are hydrated
func (o *options) sequence(field *Field, itemType reflect.Type, value interface{}, kind RuleKind) (reflect.Value, error) {
	visit, err := visitor.SliceOf(value)
	if err != nil {
		return reflect.Value{}, &ConstructionError{Type: field.Type, Field: field.Name, Err: err}
	}
	size := visitor.Len(value)
	slice := reflect.MakeSlice(field.Type, size, size)
	elemType := field.Type.Elem()
	err = visit(func(index int, element interface{}) (bool, error) {
		item := element
		if kind != 0 || visitor.IsMap(element) {
			var err error
			if item, err = o.build(field, itemType, element, kind != RuleConstruct); err != nil {
				return false, err
			}
		}
		itemValue, err := o.converter.Value(item, elemType, o.convertOptions(field)...)
		if err != nil {
			return false, &ConstructionError{Type: elemType, Field: fmt.Sprintf("%v[%d]", field.Name, index), Err: err}
		}
		slice.Index(index).Set(itemValue)
		return true, nil
	})
	if err != nil {
		return reflect.Value{}, err
	}
	return slice, nil
}

// fit converts value to the field type
func (o *options) fit(field *Field, value interface{}) (reflect.Value, error) {
	result, err := o.converter.Value(value, field.Type, o.convertOptions(field)...)
	if err != nil {
		return reflect.Value{}, &ConstructionError{Type: field.Type, Field: field.Name, Err: err}
	}
	return result, nil
}

func (o *options) convertOptions(field *Field) []conv.Option {
	if field.TimeLayout == "" {
		return nil
	}
	return []conv.Option{conv.WithTimeLayout(field.TimeLayout)}
}

// isSliceOf returns true if rType is a slice type assignable to slice field type
func isSliceOf(rType reflect.Type, sliceType reflect.Type) bool {
	return rType.Kind() == reflect.Slice && rType.AssignableTo(sliceType)
}
