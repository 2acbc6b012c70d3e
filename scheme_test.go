package hydrator

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScheme_Merge(t *testing.T) {
	upper := Transform(func(value interface{}) (interface{}, error) { return value, nil })
	var testCases = []struct {
		description string
		base        Scheme
		other       Scheme
		expect      map[string]RuleKind
	}{
		{
			description: "empty other",
			base:        Scheme{"Age": NestedOf[Address]()},
			expect:      map[string]RuleKind{"Age": RuleNested},
		},
		{
			description: "empty base",
			other:       Scheme{"Age": upper},
			expect:      map[string]RuleKind{"Age": RuleTransform},
		},
		{
			description: "other takes precedence",
			base:        Scheme{"Age": NestedOf[Address](), "Name": ConstructOf[Celsius]()},
			other:       Scheme{"Age": upper},
			expect:      map[string]RuleKind{"Age": RuleTransform, "Name": RuleConstruct},
		},
	}

	for _, testCase := range testCases {
		baseLen, otherLen := len(testCase.base), len(testCase.other)
		actual := testCase.base.Merge(testCase.other)
		assert.Equal(t, len(testCase.expect), len(actual), testCase.description)
		for name, kind := range testCase.expect {
			assert.Equal(t, kind, actual[name].Kind(), testCase.description+" "+name)
		}
		assert.Equal(t, baseLen, len(testCase.base), testCase.description)
		assert.Equal(t, otherLen, len(testCase.other), testCase.description)
	}
}

func TestMapping_Merge(t *testing.T) {
	base := Mapping{"Age": "age", "Name": "name"}
	other := Mapping{"Age": "years"}
	actual := base.Merge(other)
	assert.Equal(t, Mapping{"Age": "years", "Name": "name"}, actual)
	assert.Equal(t, Mapping{"Age": "age", "Name": "name"}, base)
	assert.Equal(t, base, base.Merge(nil))
	assert.Equal(t, other, Mapping(nil).Merge(other))
}

func TestRule(t *testing.T) {
	var testCases = []struct {
		description string
		rule        Rule
		expectKind  RuleKind
		expectType  reflect.Type
		expectError bool
	}{
		{
			description: "nested",
			rule:        NestedOf[Address](),
			expectKind:  RuleNested,
			expectType:  reflect.TypeOf(Address{}),
		},
		{
			description: "nested pointer",
			rule:        Nested(reflect.TypeOf(&Address{})),
			expectKind:  RuleNested,
			expectType:  reflect.TypeOf(&Address{}),
		},
		{
			description: "construct",
			rule:        ConstructOf[Celsius](),
			expectKind:  RuleConstruct,
			expectType:  reflect.TypeOf(Celsius(0)),
		},
		{
			description: "transform",
			rule:        TransformOf(func(value interface{}) (int, error) { return 1, nil }),
			expectKind:  RuleTransform,
		},
		{
			description: "nil nested type",
			rule:        Nested(nil),
			expectKind:  RuleNested,
			expectError: true,
		},
		{
			description: "nil transform",
			rule:        Transform(nil),
			expectKind:  RuleTransform,
			expectError: true,
		},
		{
			description: "undefined",
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expectKind, testCase.rule.Kind(), testCase.description)
		assert.Equal(t, testCase.expectType, testCase.rule.Type(), testCase.description)
		err := testCase.rule.validate()
		assert.Equal(t, testCase.expectError, err != nil, testCase.description)
	}
}
