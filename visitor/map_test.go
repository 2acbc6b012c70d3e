package visitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapOf(t *testing.T) {
	var testCases = []struct {
		description string
		value       interface{}
		expect      map[string]interface{}
		expectError bool
	}{
		{
			description: "string keyed map",
			value:       map[string]interface{}{"a": 1, "b": "x"},
			expect:      map[string]interface{}{"a": 1, "b": "x"},
		},
		{
			description: "yaml style map",
			value:       map[interface{}]interface{}{1: true, "k": 2},
			expect:      map[string]interface{}{"1": true, "k": 2},
		},
		{
			description: "reflection map",
			value:       map[float64]string{1.5: "x"},
			expect:      map[string]interface{}{"1.5": "x"},
		},
		{
			description: "not a map",
			value:       []int{1},
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		visit, err := MapOf(testCase.value)
		if testCase.expectError {
			assert.NotNil(t, err, testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		actual, err := visit.Collect()
		assert.Nil(t, err, testCase.description)
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestIsMap(t *testing.T) {
	assert.True(t, IsMap(map[string]int{}))
	assert.True(t, IsMap(map[interface{}]interface{}{}))
	assert.False(t, IsMap(nil))
	assert.False(t, IsMap("abc"))
}
