package hydrator

import (
	"fmt"
	"reflect"
)

// RuleKind defines scheme rule kind
type RuleKind int

const (
	//RuleNested hydrates a field value as a nested type, or constructs it when the type is not hydratable
	RuleNested RuleKind = iota + 1
	//RuleConstruct constructs a field value from the raw value
	RuleConstruct
	//RuleTransform assigns transform function result
	RuleTransform
)

type (
	//TransformFunc transforms a field value
	TransformFunc func(value interface{}) (interface{}, error)

	//Rule describes how a field value is produced, only one of nested type or transform is ever set
	Rule struct {
		kind      RuleKind
		rType     reflect.Type
		transform TransformFunc
	}

	//Scheme maps a field name to its rule
	Scheme map[string]Rule

	//Mapping maps a field name to an external data source key
	Mapping map[string]string
)

// Nested returns a rule hydrating the field as rType
func Nested(rType reflect.Type) Rule {
	return Rule{kind: RuleNested, rType: rType}
}

// NestedOf returns a rule hydrating the field as T
func NestedOf[T any]() Rule {
	return Nested(reflect.TypeOf((*T)(nil)).Elem())
}

// Construct returns a rule constructing rType from the raw value
func Construct(rType reflect.Type) Rule {
	return Rule{kind: RuleConstruct, rType: rType}
}

// ConstructOf returns a rule constructing T from the raw value
func ConstructOf[T any]() Rule {
	return Construct(reflect.TypeOf((*T)(nil)).Elem())
}

// Transform returns a rule assigning fn result
func Transform(fn TransformFunc) Rule {
	return Rule{kind: RuleTransform, transform: fn}
}

// TransformOf returns a rule assigning typed fn result
func TransformOf[V any](fn func(value interface{}) (V, error)) Rule {
	return Transform(func(value interface{}) (interface{}, error) {
		return fn(value)
	})
}

// Kind returns rule kind
func (r Rule) Kind() RuleKind {
	return r.kind
}

// Type returns nested or constructed type
func (r Rule) Type() reflect.Type {
	return r.rType
}

func (r Rule) validate() error {
	switch r.kind {
	case RuleNested, RuleConstruct:
		if r.rType == nil {
			return fmt.Errorf("rule type was empty")
		}
	case RuleTransform:
		if r.transform == nil {
			return fmt.Errorf("rule transform was empty")
		}
	default:
		return fmt.Errorf("rule was undefined")
	}
	return nil
}

// Merge returns s merged with other, other rules take precedence, neither scheme is modified
func (s Scheme) Merge(other Scheme) Scheme {
	if len(other) == 0 {
		return s
	}
	if len(s) == 0 {
		return other
	}
	result := make(Scheme, len(s)+len(other))
	for k, v := range s {
		result[k] = v
	}
	for k, v := range other {
		result[k] = v
	}
	return result
}

// Merge returns m merged with other, other keys take precedence, neither mapping is modified
func (m Mapping) Merge(other Mapping) Mapping {
	if len(other) == 0 {
		return m
	}
	if len(m) == 0 {
		return other
	}
	result := make(Mapping, len(m)+len(other))
	for k, v := range m {
		result[k] = v
	}
	for k, v := range other {
		result[k] = v
	}
	return result
}
