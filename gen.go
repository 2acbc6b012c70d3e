package hydrator

import "reflect"

// GenMarkerFields generates presence marker holder fields, one bool flag per hydrated field of t,
// i.e. reflect.PointerTo(reflect.StructOf(GenMarkerFields(t)))
func GenMarkerFields(t reflect.Type) ([]reflect.StructField, error) {
	aType, err := LookupType(t)
	if err != nil {
		return nil, err
	}
	boolType := reflect.TypeOf(true)
	result := make([]reflect.StructField, 0, len(aType.fields))
	for _, field := range aType.fields {
		result = append(result, reflect.StructField{Name: field.Name, Type: boolType})
	}
	return result, nil
}
